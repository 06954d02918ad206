package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuel-logistics-service/internal/platform/obs"
	"fuel-logistics-service/internal/ports"
)

// SQLTravelCache is a Postgres-backed cache for origin->destination travel
// results, for deployments that share the cache between instances.
type SQLTravelCache struct {
	DB *sql.DB
}

func NewSQLTravelCache(db *sql.DB) *SQLTravelCache {
	return &SQLTravelCache{DB: db}
}

// Fetch cached travel results for one origin and multiple destinations.
func (s *SQLTravelCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.TravelResult, err error) {
	defer obs.Time(ctx, "travel.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel cache: origin must not be empty")
	}

	uniq := dedupe(destinations)
	if len(uniq) == 0 {
		return map[string]ports.TravelResult{}, nil
	}

	q := `
	SELECT destination, distance_meters, duration_seconds
	FROM travel_cache
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.TravelResult, len(uniq))
	for rows.Next() {
		var dest string
		var meters, seconds int
		if err := rows.Scan(&dest, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get travel cache: scan rows: %w", err)
		}
		out[dest] = ports.TravelResult{
			DistanceMeters:  meters,
			DurationSeconds: seconds,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many travel results for a single origin.
func (s *SQLTravelCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.TravelResult,
) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert travel cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return fmt.Errorf("insert travel cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert travel cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("insert travel cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel cache commit: %w", err)
	}

	return nil
}
