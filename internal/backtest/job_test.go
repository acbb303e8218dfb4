package backtest

import (
	"context"
	"testing"
	"time"

	"tradoverse/internal/domain"
)

func TestRunnerLifecycle(t *testing.T) {
	e := testEngine(t, map[string][]float64{"AAPL": risingCloses(40)})
	r := NewRunner(e)

	id := r.Submit(Request{
		Symbols:  []string{"AAPL"},
		Strategy: domain.StrategyMomentum,
		Start:    day(2024, 1, 1),
		End:      day(2024, 3, 1),
	})

	job, ok := r.Get(id)
	if !ok || job.Status != JobPending {
		t.Fatalf("submitted job: ok=%v status=%s, want pending", ok, job.Status)
	}

	if !r.Run(context.Background(), id) {
		t.Fatal("Run returned false for a pending job")
	}

	job, _ = r.Get(id)
	if job.Status != JobCompleted {
		t.Fatalf("status = %s, want completed", job.Status)
	}
	if job.Result == nil || job.Result.TotalTrades < 1 {
		t.Errorf("completed job has no result trades: %+v", job.Result)
	}
	if job.EndedAt.Before(job.StartedAt) {
		t.Error("job ended before it started")
	}
}

func TestRunnerFailedJob(t *testing.T) {
	e := testEngine(t, nil)
	r := NewRunner(e)

	id := r.Submit(Request{
		Symbols: []string{"AAPL"},
		Start:   day(2024, 3, 1), // inverted range fails validation
		End:     day(2024, 1, 1),
	})
	r.Run(context.Background(), id)

	job, _ := r.Get(id)
	if job.Status != JobFailed || job.Err == nil {
		t.Errorf("status=%s err=%v, want failed with error", job.Status, job.Err)
	}
}

func TestRunnerUnknownAndRepeatedRuns(t *testing.T) {
	e := testEngine(t, map[string][]float64{"AAPL": risingCloses(10)})
	r := NewRunner(e)

	if r.Run(context.Background(), "no-such-id") {
		t.Error("Run returned true for unknown job")
	}

	id := r.Submit(Request{
		Symbols: []string{"AAPL"},
		Start:   day(2024, 1, 1),
		End:     day(2024, 2, 1),
	})
	if !r.Run(context.Background(), id) {
		t.Fatal("first run refused")
	}
	if r.Run(context.Background(), id) {
		t.Error("completed job ran twice")
	}
}

func TestRunnerSnapshotIsolation(t *testing.T) {
	e := testEngine(t, map[string][]float64{"AAPL": risingCloses(10)})
	r := NewRunner(e)

	id := r.Submit(Request{
		Symbols: []string{"AAPL"},
		Start:   day(2024, 1, 1),
		End:     day(2024, 2, 1),
	})

	snap, _ := r.Get(id)
	snap.Status = JobFailed // mutating the snapshot must not affect the job

	job, _ := r.Get(id)
	if job.Status != JobPending {
		t.Errorf("snapshot mutation leaked: status = %s", job.Status)
	}

	if job.CreatedAt.After(time.Now()) {
		t.Error("job created in the future")
	}
}
