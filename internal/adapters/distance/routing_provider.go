package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"fuel-logistics-service/internal/domain"
	"fuel-logistics-service/internal/platform/obs"
	"fuel-logistics-service/internal/ports"
)

// RoutingProvider implements TravelEstimator for the transport triangle.
//
// It coordinates:
//   - Location-name normalization
//   - Persistent travel-result caching
//   - External routing API calls with retry/backoff
//   - A haversine fallback when no API key is configured
//
// The provider is safe for concurrent use.
type RoutingProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   ports.TravelCache
	coords  map[string]domain.Coordinates
}

// NewRoutingProvider builds a provider over the known locations. An empty API
// key is allowed: every estimate then falls back to haversine distance at the
// configured average truck speed.
func NewRoutingProvider(apiKey string, cache ports.TravelCache, locations []*domain.Location) (*RoutingProvider, error) {
	if len(locations) == 0 {
		return nil, errors.New("routing provider: at least one location is required")
	}

	coords := make(map[string]domain.Coordinates, len(locations))
	for _, loc := range locations {
		coords[normalize(loc.Name)] = loc.Coords
	}

	return &RoutingProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-hgv",
		cache:   cache,
		coords:  coords,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Estimate returns travel distance and duration between two named locations.
func (p *RoutingProvider) Estimate(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.TravelResult, err error) {
	defer obs.Time(ctx, "routing.Estimate")(&err)

	normOrigin := normalize(origin)
	normDestination := normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.TravelResult{}, errors.New("estimate travel: origin and destination must be non-empty")
	}

	if normOrigin == normDestination {
		return ports.TravelResult{}, nil
	}

	// Check the persistent cache before touching the external API.
	if p.cache != nil {
		hits, err := p.cache.GetMany(ctx, normOrigin, []string{normDestination})
		if err != nil {
			return ports.TravelResult{}, fmt.Errorf("estimate travel: cache read: %w", err)
		}
		if hit, ok := hits[normDestination]; ok {
			return hit, nil
		}
	}

	originCoord, ok := p.coords[normOrigin]
	if !ok {
		return ports.TravelResult{}, fmt.Errorf("estimate travel: unknown location %q", origin)
	}
	destCoord, ok := p.coords[normDestination]
	if !ok {
		return ports.TravelResult{}, fmt.Errorf("estimate travel: unknown location %q", destination)
	}

	var result ports.TravelResult
	if p.apiKey == "" {
		result = haversineEstimate(originCoord, destCoord)
	} else {
		fetched, err := p.fetchMatrixRow(ctx, originCoord, []string{normDestination}, []domain.Coordinates{destCoord})
		if err != nil {
			return ports.TravelResult{}, fmt.Errorf("estimate travel: %w", err)
		}
		result, ok = fetched[normDestination]
		if !ok {
			return ports.TravelResult{}, fmt.Errorf("estimate travel: no result for %q -> %q", origin, destination)
		}
	}

	if p.cache != nil {
		if err := p.cache.PutMany(ctx, normOrigin, map[string]ports.TravelResult{normDestination: result}); err != nil {
			log.Printf("travel cache write failed: %v", err)
		}
	}

	return result, nil
}

// Prefetch warms the cache with all pairwise legs between the known
// locations, bounding concurrent API calls with a small semaphore.
func (p *RoutingProvider) Prefetch(ctx context.Context) error {
	names := make([]string, 0, len(p.coords))
	for name := range p.coords {
		names = append(names, name)
	}

	sem := make(chan struct{}, 3)
	errCh := make(chan error, len(names)*len(names))
	done := make(chan struct{})

	pending := 0
	for _, origin := range names {
		for _, dest := range names {
			if origin == dest {
				continue
			}
			pending++
			go func(o, d string) {
				sem <- struct{}{}
				defer func() {
					<-sem
					done <- struct{}{}
				}()
				if _, err := p.Estimate(ctx, o, d); err != nil {
					errCh <- fmt.Errorf("prefetch %q -> %q: %w", o, d, err)
				}
			}(origin, dest)
		}
	}

	for i := 0; i < pending; i++ {
		<-done
	}
	close(errCh)

	for err := range errCh {
		return err
	}
	return nil
}
