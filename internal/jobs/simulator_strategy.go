package jobs

import (
	"context"
	"log"
	"time"

	"fuel-logistics-service/internal/domain"
	"fuel-logistics-service/internal/services/capacity"
)

// SimulatorStrategy runs the in-process greedy capacity simulator. It is fast
// enough that it produces a single progress entry; the cancel flag is only
// honored if it was raised before the run started.
type SimulatorStrategy struct{}

func (SimulatorStrategy) Name() string { return "simulator" }

func (SimulatorStrategy) Run(_ context.Context, req Request) (*Result, error) {
	start := time.Now()

	if Cancelled(req.CancelFlagPath) {
		return &Result{SolverStatus: "CANCELLED"}, nil
	}

	res, err := capacity.Simulate(req.Input)
	if err != nil {
		return nil, err
	}

	totalTrips := 0
	for _, count := range res.Breakdown {
		totalTrips += count
	}
	deliveries := res.Breakdown[domain.TripShuttle] +
		res.Breakdown[domain.TripShuttleFromLivigno] +
		res.Breakdown[domain.TripFullRound]

	entry := ProgressEntry{
		Seq:                 1,
		Solutions:           1,
		ObjectiveLiters:     res.TotalLiters,
		ObjectiveDeliveries: deliveries,
		ElapsedSeconds:      time.Since(start).Seconds(),
	}
	if err := AppendProgress(req.ProgressLogPath, entry); err != nil {
		log.Printf("progress write failed path=%s err=%v", req.ProgressLogPath, err)
	}

	return &Result{
		TotalLiters:  res.TotalLiters,
		TotalTrips:   totalTrips,
		SolverStatus: "HEURISTIC",
		Capacity:     res,
	}, nil
}
