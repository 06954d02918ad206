package ports

import "context"

// Distance and travel duration between two locations.
type TravelResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between locations.
type TravelEstimator interface {
	// Return travel distance and estimated duration between two locations.
	Estimate(ctx context.Context, origin string, destination string) (TravelResult, error)
}

// Persistent cache keyed by (origin, destination). Keys are expected to be
// consistent (e.g., already normalized) by the caller.
type TravelCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]TravelResult, error)
	PutMany(ctx context.Context, origin string, results map[string]TravelResult) error
}
