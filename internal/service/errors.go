package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

var (
	ErrSongNotFound         = errors.New("song not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrPreconditionNotMet   = errors.New("precondition not met")
	ErrAlreadyInFlight      = errors.New("job already in flight")
	ErrSongBusy             = errors.New("song has a running job")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrWorkerDispatchFailed = errors.New("worker dispatch failed")
	// ErrStaleJob marks a worker write for a job that is no longer current or running.
	ErrStaleJob             = errors.New("stale job")
	ErrInvalidInput         = errors.New("invalid input")
	ErrStorageUnavailable   = errors.New("storage not configured")
	ErrFileNotAvailable     = errors.New("file not available")
)

// TaskEnqueuer is the part of *asynq.Client the services use
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// enqueueNotify schedules the advisory notification for a song. A nil enqueuer is a no-op.
func enqueueNotify(ctx context.Context, enqueuer TaskEnqueuer, songID, event string) error {
	if enqueuer == nil {
		return nil
	}

	data, err := json.Marshal(model.NotifyTaskPayload{SongID: songID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = enqueuer.EnqueueContext(ctx, asynq.NewTask(model.TaskTypeNotify, data),
		asynq.Queue("notify"),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.Retention(time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// mapStoreErr converts store sentinels to service sentinels
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrSongNotFound
	case errors.Is(err, store.ErrProjectNotFound):
		return ErrProjectNotFound
	}
	return err
}

// ownedBy hides songs of other users behind ErrSongNotFound
func ownedBy(song *model.Song, userID string) error {
	if song.UserID != userID {
		return ErrSongNotFound
	}
	return nil
}

// refuseRunning rejects changes to a song while one of its jobs is running
func refuseRunning(song *model.Song) error {
	for _, kind := range model.ValidJobKinds {
		if song.Job(kind).Status == model.JobStatusRunning {
			return fmt.Errorf("%w: %s job is running", ErrSongBusy, kind)
		}
	}
	return nil
}
