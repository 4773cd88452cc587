package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

type recordingHub struct {
	mu     sync.Mutex
	events []model.Job
	errors []model.WSError
}

func (h *recordingHub) BroadcastJob(songID string, job *model.Job) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, *job)
}

func (h *recordingHub) BroadcastError(songID string, code, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, model.WSError{Code: code, Message: message})
}

func newStore(t *testing.T) *store.SongStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.NewSongStore(rdb)
}

func notifyTask(t *testing.T, songID string) *asynq.Task {
	t.Helper()
	return notifyEvent(t, songID, model.EventCutDone)
}

func notifyEvent(t *testing.T, songID, event string) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(model.NotifyTaskPayload{SongID: songID, Event: event})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(model.TaskTypeNotify, data)
}

func TestNotifyWorker_BroadcastsEachTerminalJobOnce(t *testing.T) {
	songs := newStore(t)
	ctx := context.Background()
	_ = songs.Create(ctx, &model.Song{
		ID:          "song-1",
		AnalysisJob: model.Job{ID: "a1", Kind: model.JobKindAnalysis, Status: model.JobStatusReady},
		CutJob:      model.Job{ID: "c1", Kind: model.JobKindGeneration, Status: model.JobStatusRunning},
	})

	hub := &recordingHub{}
	w := NewNotifyWorker(songs, hub)

	for i := 0; i < 3; i++ {
		if err := w.ProcessTask(ctx, notifyTask(t, "song-1")); err != nil {
			t.Fatal(err)
		}
	}
	if len(hub.events) != 1 || hub.events[0].ID != "a1" {
		t.Fatalf("events = %+v, want only a1", hub.events)
	}

	// Worker write lands after the first notifications.
	_, _ = songs.Update(ctx, "song-1", func(s *model.Song) error {
		s.CutJob.Status = model.JobStatusReady
		return nil
	})
	for i := 0; i < 2; i++ {
		_ = w.ProcessTask(ctx, notifyTask(t, "song-1"))
	}
	if len(hub.events) != 2 || hub.events[1].ID != "c1" || hub.events[1].Status != model.JobStatusReady {
		t.Errorf("events = %+v", hub.events)
	}
}

func TestNotifyWorker_FailedJobsCarryErrorCode(t *testing.T) {
	songs := newStore(t)
	ctx := context.Background()
	reason := "worker timed out"
	_ = songs.Create(ctx, &model.Song{
		ID:          "song-1",
		AnalysisJob: model.Job{ID: "a1", Kind: model.JobKindAnalysis, Status: model.JobStatusFailed, Error: &reason},
		CutJob:      model.Job{Kind: model.JobKindGeneration, Status: model.JobStatusPending},
	})
	_ = songs.Create(ctx, &model.Song{
		ID:          "song-2",
		AnalysisJob: model.Job{ID: "a2", Kind: model.JobKindAnalysis, Status: model.JobStatusReady},
		CutJob:      model.Job{ID: "c2", Kind: model.JobKindGeneration, Status: model.JobStatusFailed},
	})

	hub := &recordingHub{}
	w := NewNotifyWorker(songs, hub)

	if err := w.ProcessTask(ctx, notifyEvent(t, "song-1", model.EventJobTimedOut)); err != nil {
		t.Fatal(err)
	}
	if err := w.ProcessTask(ctx, notifyEvent(t, "song-2", model.EventDispatchFailed)); err != nil {
		t.Fatal(err)
	}

	want := []model.WSError{
		{Code: CodeJobTimedOut, Message: reason},
		{Code: CodeDispatchFailed, Message: "generation job failed"},
	}
	if len(hub.errors) != len(want) {
		t.Fatalf("errors = %+v, want %+v", hub.errors, want)
	}
	for i := range want {
		if hub.errors[i] != want[i] {
			t.Errorf("errors[%d] = %+v, want %+v", i, hub.errors[i], want[i])
		}
	}
	if len(hub.events) != 3 {
		t.Errorf("events = %+v, want 3 job events", hub.events)
	}
}

func TestNotifyWorker_UnknownSongAndBadPayload(t *testing.T) {
	w := NewNotifyWorker(newStore(t), &recordingHub{})

	if err := w.ProcessTask(context.Background(), notifyTask(t, "missing")); err != nil {
		t.Errorf("unknown song: err = %v, want nil", err)
	}

	err := w.ProcessTask(context.Background(), asynq.NewTask(model.TaskTypeNotify, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("bad payload: err = %v, want SkipRetry", err)
	}
}

type fakeFailer struct {
	cutoff time.Time
	n      int
	err    error
}

func (f *fakeFailer) FailStale(ctx context.Context, cutoff time.Time) (int, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestSweepWorker(t *testing.T) {
	f := &fakeFailer{n: 2}
	w := NewSweepWorker(f, 15*time.Minute)

	before := time.Now()
	if err := w.ProcessTask(context.Background(), asynq.NewTask(model.TaskTypeSweep, nil)); err != nil {
		t.Fatal(err)
	}
	age := before.Sub(f.cutoff)
	if age < 15*time.Minute-time.Second || age > 15*time.Minute+time.Second {
		t.Errorf("cutoff is %v before now, want ~15m", age)
	}

	f.err = errors.New("redis down")
	if err := w.ProcessTask(context.Background(), asynq.NewTask(model.TaskTypeSweep, nil)); err == nil {
		t.Error("expected sweep error")
	}
}
