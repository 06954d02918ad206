package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fuel-logistics-service/internal/ports"
)

// RedisTravelCache is a Redis-backed cache for origin->destination travel
// results. Entries expire after TTL so stale routing data eventually drops
// out; a zero TTL keeps entries forever.
type RedisTravelCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelCache(client *redis.Client, ttl time.Duration) *RedisTravelCache {
	return &RedisTravelCache{Client: client, TTL: ttl}
}

func travelKey(origin, destination string) string {
	return "travel:" + origin + "|" + destination
}

// Fetch cached travel results for one origin and multiple destinations.
func (r *RedisTravelCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.TravelResult, error) {
	if r.Client == nil {
		return nil, errors.New("travel cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel cache: origin must not be empty")
	}

	uniq := dedupe(destinations)
	if len(uniq) == 0 {
		return map[string]ports.TravelResult{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, d := range uniq {
		keys = append(keys, travelKey(origin, d))
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel cache: mget: %w", err)
	}

	out := make(map[string]ports.TravelResult, len(uniq))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var meters, seconds int
		if _, err := fmt.Sscanf(raw, "%d|%d", &meters, &seconds); err != nil {
			// A corrupt entry behaves like a miss.
			continue
		}
		out[uniq[i]] = ports.TravelResult{
			DistanceMeters:  meters,
			DurationSeconds: seconds,
		}
	}

	return out, nil
}

// Store many travel results for a single origin.
func (r *RedisTravelCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.TravelResult,
) error {
	if r.Client == nil {
		return errors.New("travel cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert travel cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for dest, res := range results {
		if dest == "" {
			return errors.New("insert travel cache: empty destination key")
		}
		value := fmt.Sprintf("%d|%d", res.DistanceMeters, res.DurationSeconds)
		pipe.Set(ctx, travelKey(origin, dest), value, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel cache: pipeline exec: %w", err)
	}
	return nil
}
