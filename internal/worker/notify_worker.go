package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

// notifiedTTL bounds how long delivered (job, status) markers are kept
const notifiedTTL = 7 * 24 * time.Hour

// Error codes pushed alongside failed jobs
const (
	CodeDispatchFailed = "WORKER_DISPATCH_FAILED"
	CodeJobTimedOut    = "JOB_TIMED_OUT"
	CodeJobFailed      = "JOB_FAILED"
)

// Broadcaster pushes job events to connected clients
type Broadcaster interface {
	BroadcastJob(songID string, job *model.Job)
	BroadcastError(songID string, code, message string)
}

// NotifyWorker turns advisory notifications into job events. It always re-reads
// the song, so the task payload only says which song to look at.
type NotifyWorker struct {
	store *store.SongStore
	hub   Broadcaster
}

// NewNotifyWorker creates a new notify worker
func NewNotifyWorker(songStore *store.SongStore, hub Broadcaster) *NotifyWorker {
	return &NotifyWorker{store: songStore, hub: hub}
}

// ProcessTask broadcasts every terminal job of the song that has not been
// announced yet. Running it any number of times sends each event once.
func (w *NotifyWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.NotifyTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w: %v", asynq.SkipRetry, err)
	}

	song, err := w.store.Get(ctx, payload.SongID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("Notify for unknown song %s dropped", payload.SongID)
			return nil
		}
		return err
	}

	for _, kind := range model.ValidJobKinds {
		job := song.Job(kind)
		if job.ID == "" || !job.Status.IsTerminal() {
			continue
		}

		first, err := w.store.MarkNotified(ctx, job.ID, job.Status, notifiedTTL)
		if err != nil {
			return fmt.Errorf("failed to mark notification: %w", err)
		}
		if !first {
			continue
		}

		w.hub.BroadcastJob(song.ID, job)
		if job.Status == model.JobStatusFailed {
			w.hub.BroadcastError(song.ID, failureCode(payload.Event), failureMessage(job))
		}
		log.Printf("Notified %s job %s %s for song %s (%s)", kind, job.ID, job.Status, song.ID, payload.Event)
	}
	return nil
}

func failureCode(event string) string {
	switch event {
	case model.EventDispatchFailed:
		return CodeDispatchFailed
	case model.EventJobTimedOut:
		return CodeJobTimedOut
	default:
		return CodeJobFailed
	}
}

func failureMessage(job *model.Job) string {
	if job.Error != nil && *job.Error != "" {
		return *job.Error
	}
	return fmt.Sprintf("%s job failed", job.Kind)
}
