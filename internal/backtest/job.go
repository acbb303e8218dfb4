package backtest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus is a job's position in its lifecycle.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is one scheduled backtest run. The engine itself is synchronous; Job
// wraps a run with an identity and lifecycle for callers that dispatch work
// in the background.
type Job struct {
	ID        string
	Request   Request
	Status    JobStatus
	Result    *Result
	Err       error
	CreatedAt time.Time
	StartedAt time.Time
	EndedAt   time.Time
}

// Runner dispatches backtest jobs and tracks their lifecycle. Snapshot reads
// and status transitions are guarded by one mutex; the runs themselves share
// nothing.
type Runner struct {
	engine *Engine
	runMu  sync.Mutex // serializes engine runs; the engine is single-run

	mu   sync.Mutex
	jobs map[string]*Job
}

// NewRunner creates a Runner backed by engine.
func NewRunner(engine *Engine) *Runner {
	return &Runner{
		engine: engine,
		jobs:   make(map[string]*Job),
	}
}

// Submit registers a pending job for req and returns its ID. The job does
// not run until Run is called with the ID.
func (r *Runner) Submit(req Request) string {
	job := &Job{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    JobPending,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	return job.ID
}

// Run executes the identified job synchronously and records its outcome.
// Running an unknown ID is a no-op returning false.
func (r *Runner) Run(ctx context.Context, id string) bool {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if !ok || job.Status != JobPending {
		r.mu.Unlock()
		return false
	}
	job.Status = JobRunning
	job.StartedAt = time.Now()
	req := job.Request
	r.mu.Unlock()

	r.runMu.Lock()
	result, err := r.engine.Run(ctx, req)
	r.runMu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	job.EndedAt = time.Now()
	if err != nil {
		job.Status = JobFailed
		job.Err = err
		return true
	}
	job.Status = JobCompleted
	job.Result = result
	return true
}

// Get returns a snapshot of the identified job.
func (r *Runner) Get(id string) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}
