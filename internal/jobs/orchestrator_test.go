package jobs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fuel-logistics-service/internal/services/capacity"
)

func testInput() capacity.Input {
	return capacity.Input{
		Days:         5,
		TiranoShifts: capacity.UniformShifts("tirano", 2, 9, 5),
		NumTrailers:  4,
		NumVehicles:  3,
	}
}

func waitForStatus(t *testing.T, o *Orchestrator, id string, want Status) *StatusView {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		view, err := o.Get(id, true)
		require.NoError(t, err)
		if view.Status == want {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached %s", id, want)
	return nil
}

func TestSubmitAndComplete(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	job, err := o.Submit(SimulatorStrategy{}, testInput(), 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)

	view := waitForStatus(t, o, job.ID, StatusCompleted)

	require.NotNil(t, view.Result)
	require.Equal(t, 140000, view.Result.TotalLiters)
	require.Equal(t, 16, view.Result.TotalTrips)
	require.Equal(t, "HEURISTIC", view.Result.SolverStatus)
	require.NotNil(t, view.Result.Capacity)

	require.NotNil(t, view.Progress)
	require.Equal(t, 140000, view.Progress.ObjectiveLiters)
	require.NotNil(t, view.ProgressSummary)
	require.Equal(t, 1, view.ProgressSummary.TotalImprovements)
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	_, err := o.Submit(SimulatorStrategy{}, capacity.Input{Days: -1}, 0, 0)
	require.Error(t, err)

	_, err = o.Submit(nil, testInput(), 0, 0)
	require.Error(t, err)
}

func TestGetUnknownJob(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	_, err := o.Get("no-such-job", false)
	require.ErrorIs(t, err, ErrJobNotFound)

	_, err = o.Cancel("no-such-job")
	require.ErrorIs(t, err, ErrJobNotFound)
}

// pollingStrategy spins until the cancel flag appears, then reports its
// best-so-far result, mimicking a cooperative external solver.
type pollingStrategy struct{}

func (pollingStrategy) Name() string { return "polling" }

func (pollingStrategy) Run(_ context.Context, req Request) (*Result, error) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if Cancelled(req.CancelFlagPath) {
			return &Result{SolverStatus: "CANCELLED"}, nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil, errors.New("cancel flag never raised")
}

func TestCancelStopsCooperativeStrategy(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	job, err := o.Submit(pollingStrategy{}, testInput(), 0, 0)
	require.NoError(t, err)

	waitForStatus(t, o, job.ID, StatusRunning)

	status, err := o.Cancel(job.ID)
	require.NoError(t, err)
	require.Equal(t, StatusRunning, status)

	view := waitForStatus(t, o, job.ID, StatusCompleted)
	require.Equal(t, "CANCELLED", view.Result.SolverStatus)
}

type failingStrategy struct{ panics bool }

func (failingStrategy) Name() string { return "failing" }

func (s failingStrategy) Run(context.Context, Request) (*Result, error) {
	if s.panics {
		panic("solver crashed")
	}
	return nil, errors.New("no feasible plan")
}

func TestFailedStrategyIsCaptured(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	job, err := o.Submit(failingStrategy{}, testInput(), 0, 0)
	require.NoError(t, err)

	view := waitForStatus(t, o, job.ID, StatusFailed)
	require.Contains(t, view.Err, "no feasible plan")
	require.Nil(t, view.Result)
}

func TestPanickingStrategyIsCaptured(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), 0)

	job, err := o.Submit(failingStrategy{panics: true}, testInput(), 0, 0)
	require.NoError(t, err)

	view := waitForStatus(t, o, job.ID, StatusFailed)
	require.Contains(t, view.Err, "solver crashed")
}

func TestSweepRemovesExpiredJobs(t *testing.T) {
	o := NewOrchestrator(t.TempDir(), time.Minute)

	job, err := o.Submit(SimulatorStrategy{}, testInput(), 0, 0)
	require.NoError(t, err)
	waitForStatus(t, o, job.ID, StatusCompleted)

	progressPath := job.ProgressLogPath
	_, err = os.Stat(progressPath)
	require.NoError(t, err)

	// Jump past the retention window; the next status query sweeps.
	o.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = o.Get(job.ID, false)
	require.ErrorIs(t, err, ErrJobNotFound)

	_, err = os.Stat(progressPath)
	require.True(t, os.IsNotExist(err))
}
