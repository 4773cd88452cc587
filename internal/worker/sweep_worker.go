package worker

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// StaleJobFailer fails jobs that have been running since before the cutoff
type StaleJobFailer interface {
	FailStale(ctx context.Context, cutoff time.Time) (int, error)
}

// SweepWorker fails jobs whose worker never reported back
type SweepWorker struct {
	jobs       StaleJobFailer
	jobTimeout time.Duration
}

func NewSweepWorker(jobs StaleJobFailer, jobTimeout time.Duration) *SweepWorker {
	return &SweepWorker{jobs: jobs, jobTimeout: jobTimeout}
}

// ProcessTask runs one sweep. It is scheduled periodically.
func (w *SweepWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	n, err := w.jobs.FailStale(ctx, time.Now().Add(-w.jobTimeout))
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("Sweep failed %d stale jobs", n)
	}
	return nil
}
