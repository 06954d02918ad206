package jobs

import (
	"time"

	"fuel-logistics-service/internal/domain"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Terminal reports whether the job can no longer change state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Result is the outcome of an optimization run, produced either by the
// internal greedy simulator or by the external solver.
type Result struct {
	TotalLiters           int
	TotalTrips            int
	SolverObjectiveLiters *int
	SolverStatus          string
	Warnings              []string

	// Capacity holds the per-day detail when the internal simulator ran.
	Capacity *domain.CapacityResult
}

// Job is a registry entry for one background optimization. It lives only in
// the orchestrator's in-process registry; nothing survives a restart. Status
// transitions exactly once PENDING -> RUNNING -> {COMPLETED | FAILED}.
type Job struct {
	ID              string
	Status          Status
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	Result          *Result
	Err             string
	ProgressLogPath string
	CancelFlagPath  string
}
