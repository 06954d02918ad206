package distance

import (
	"context"
	"fmt"

	"fuel-logistics-service/internal/ports"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

type MockEstimator struct {
	m map[string]ports.TravelResult
}

func NewMockEstimator(pairs []MockPair) *MockEstimator {
	m := make(map[string]ports.TravelResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.TravelResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockEstimator{m: m}
}

func (e *MockEstimator) Estimate(ctx context.Context, origin, destination string) (ports.TravelResult, error) {
	r, ok := e.m[origin+"|"+destination]
	if !ok {
		return ports.TravelResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}
