package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"fuel-logistics-service/internal/services/capacity"
)

// ErrJobNotFound marks an unknown or already garbage-collected job id,
// distinct from a job that ran and failed.
var ErrJobNotFound = errors.New("job not found")

// Request is the logical input handed to an optimization strategy. The
// progress log and cancel flag paths are the only channel between the
// orchestrator and an externally running solver.
type Request struct {
	Input            capacity.Input
	TimeLimitSeconds int
	NumSearchWorkers int
	ProgressLogPath  string
	CancelFlagPath   string
}

// Strategy runs one optimization to completion. Implementations should append
// ProgressEntry lines to the progress log as they improve and are expected to
// poll the cancel flag, stopping early with their best-so-far result.
// Cancellation is advisory: a strategy may finish despite a cancel request.
type Strategy interface {
	Name() string
	Run(ctx context.Context, req Request) (*Result, error)
}

// Orchestrator owns the process-wide job registry. Submission spawns a
// detached background run; callers poll for status. The registry is the only
// coupling between submitter and background work, so every access goes
// through the mutex.
type Orchestrator struct {
	mu   sync.RWMutex
	jobs map[string]*Job

	dir       string
	retention time.Duration
	now       func() time.Time
}

// DefaultRetention is how long finished (or stuck) jobs are kept before the
// opportunistic sweep deletes them and their backing files.
const DefaultRetention = time.Hour

func NewOrchestrator(dir string, retention time.Duration) *Orchestrator {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Orchestrator{
		jobs:      make(map[string]*Job),
		dir:       dir,
		retention: retention,
		now:       time.Now,
	}
}

// Submit registers a new PENDING job and launches the strategy in the
// background. It returns immediately with the job id; it never blocks on the
// optimization itself. Malformed input is rejected here, before anything is
// registered.
func (o *Orchestrator) Submit(strategy Strategy, input capacity.Input, timeLimitSeconds, numSearchWorkers int) (*Job, error) {
	if strategy == nil {
		return nil, errors.New("submit job: strategy must be non-nil")
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return nil, fmt.Errorf("submit job: create job dir %q: %w", o.dir, err)
	}

	id := uuid.NewString()
	job := &Job{
		ID:              id,
		Status:          StatusPending,
		CreatedAt:       o.now(),
		ProgressLogPath: filepath.Join(o.dir, id+".progress.jsonl"),
		CancelFlagPath:  filepath.Join(o.dir, id+".cancel"),
	}

	o.mu.Lock()
	o.jobs[id] = job
	o.mu.Unlock()

	req := Request{
		Input:            input,
		TimeLimitSeconds: timeLimitSeconds,
		NumSearchWorkers: numSearchWorkers,
		ProgressLogPath:  job.ProgressLogPath,
		CancelFlagPath:   job.CancelFlagPath,
	}
	go o.run(id, strategy, req)

	log.Printf("job submitted id=%s strategy=%s", id, strategy.Name())
	return o.snapshot(id)
}

// run executes the strategy in a detached goroutine. The submitter is already
// gone, so failures (including panics) are captured into the job record and
// never re-raised.
func (o *Orchestrator) run(id string, strategy Strategy, req Request) {
	o.mu.Lock()
	job, ok := o.jobs[id]
	if !ok {
		o.mu.Unlock()
		return
	}
	started := o.now()
	job.Status = StatusRunning
	job.StartedAt = &started
	o.mu.Unlock()

	var (
		result *Result
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("strategy %s panicked: %v", strategy.Name(), r)
			}
		}()
		result, err = strategy.Run(context.Background(), req)
	}()

	o.mu.Lock()
	completed := o.now()
	job.CompletedAt = &completed
	if err != nil {
		job.Status = StatusFailed
		job.Err = err.Error()
	} else {
		job.Status = StatusCompleted
		job.Result = result
	}
	status := job.Status
	o.mu.Unlock()

	log.Printf("job finished id=%s status=%s dur=%dms", id, status, completed.Sub(started).Milliseconds())
}

// StatusView is a point-in-time snapshot of a job, optionally enriched with
// progress read from the log file.
type StatusView struct {
	ID              string
	Status          Status
	ElapsedMs       int64
	Result          *Result
	Err             string
	Progress        *ProgressEntry
	ProgressHistory []ProgressDelta
	ProgressSummary *ProgressSummary
}

// Get returns the job's current status, its latest progress entry, and, when
// includeHistory is set, the full improvement history with derived statistics.
// Every status query also runs the retention sweep.
func (o *Orchestrator) Get(id string, includeHistory bool) (*StatusView, error) {
	o.sweep()

	snap, err := o.snapshot(id)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		ID:        snap.ID,
		Status:    snap.Status,
		ElapsedMs: o.elapsed(snap).Milliseconds(),
		Result:    snap.Result,
		Err:       snap.Err,
	}

	entries, err := ReadProgress(snap.ProgressLogPath)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		view.Progress = &last
	}
	if includeHistory {
		view.ProgressHistory = History(entries)
		view.ProgressSummary = Summarize(entries, o.elapsed(snap).Seconds())
	}

	return view, nil
}

// Cancel writes the cancel flag for a job. The signal is cooperative and
// best-effort: the orchestrator never forcibly terminates the background
// work, and a strategy that finishes without checking the flag still
// completes normally.
func (o *Orchestrator) Cancel(id string) (Status, error) {
	snap, err := o.snapshot(id)
	if err != nil {
		return "", err
	}

	if !snap.Status.Terminal() {
		if err := os.WriteFile(snap.CancelFlagPath, []byte("cancel\n"), 0o644); err != nil {
			log.Printf("cancel flag write failed id=%s err=%v", id, err)
		}
	}
	return snap.Status, nil
}

// Cancelled reports whether the cancel flag exists at path. Strategies poll
// this between units of work.
func Cancelled(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (o *Orchestrator) snapshot(id string) (*Job, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	job, ok := o.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %q: %w", id, ErrJobNotFound)
	}
	snap := *job
	return &snap, nil
}

func (o *Orchestrator) elapsed(job *Job) time.Duration {
	start := job.CreatedAt
	if job.StartedAt != nil {
		start = *job.StartedAt
	}
	end := o.now()
	if job.CompletedAt != nil {
		end = *job.CompletedAt
	}
	return end.Sub(start)
}

// sweep garbage-collects jobs whose terminal age (or age since creation for
// jobs that never completed) exceeds the retention window. Backing files are
// removed best-effort: the writer may still be mid-write and deletion
// failures are swallowed.
func (o *Orchestrator) sweep() {
	now := o.now()

	o.mu.Lock()
	defer o.mu.Unlock()

	for id, job := range o.jobs {
		ref := job.CreatedAt
		if job.CompletedAt != nil {
			ref = *job.CompletedAt
		}
		if now.Sub(ref) <= o.retention {
			continue
		}

		_ = os.Remove(job.ProgressLogPath)
		_ = os.Remove(job.CancelFlagPath)
		delete(o.jobs, id)
		log.Printf("job swept id=%s status=%s", id, job.Status)
	}
}
