package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

const testUser = "user-1"

type fakeDispatcher struct {
	mu          sync.Mutex
	err         error
	delay       time.Duration
	analyses    []*client.AnalysisDispatch
	generations []*client.GenerationDispatch
}

func (d *fakeDispatcher) DispatchAnalysis(ctx context.Context, req *client.AnalysisDispatch) error {
	time.Sleep(d.delay)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.analyses = append(d.analyses, req)
	return d.err
}

func (d *fakeDispatcher) DispatchGeneration(ctx context.Context, req *client.GenerationDispatch) error {
	time.Sleep(d.delay)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generations = append(d.generations, req)
	return d.err
}

func (d *fakeDispatcher) generationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.generations)
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (e *fakeEnqueuer) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = string(data)
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://signed.example/%s?filename=%s&expires=%d", key, filename, int(expiry.Seconds())), nil
}

type testEnv struct {
	mr         *miniredis.Miniredis
	store      *store.SongStore
	projStore  *store.ProjectStore
	dispatcher *fakeDispatcher
	enqueuer   *fakeEnqueuer
	storage    *fakeStorage
	jobs       *JobService
	songs      *SongService
	downloads  *DownloadService
	projects   *ProjectService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		mr:         mr,
		store:      store.NewSongStore(rdb),
		projStore:  store.NewProjectStore(rdb),
		dispatcher: &fakeDispatcher{},
		enqueuer:   &fakeEnqueuer{},
		storage:    newFakeStorage(),
	}
	env.jobs = NewJobService(env.store, env.dispatcher, env.enqueuer, cutplan.DefaultOptions())
	env.songs = NewSongService(env.store, env.projStore, env.storage, cutplan.DefaultOptions(), time.Minute)
	env.downloads = NewDownloadService(env.store, env.storage)
	env.projects = NewProjectService(env.projStore, env.songs)
	return env
}

func beatsEvery(step, end float64) []float64 {
	var beats []float64
	for i := 0; float64(i)*step <= end; i++ {
		beats = append(beats, float64(i)*step)
	}
	return beats
}

// testAnalysis is intro 0-20, verse 20-50, chorus 50-80, verse 80-110,
// chorus 110-140, outro 140-150 at 120 BPM.
func testAnalysis() *model.SongAnalysis {
	return &model.SongAnalysis{
		Sections: []model.RawSection{
			{Label: "intro", Start: 0, End: 20},
			{Label: "verse", Start: 20, End: 50},
			{Label: "chorus", Start: 50, End: 80},
			{Label: "verse", Start: 80, End: 110},
			{Label: "chorus", Start: 110, End: 140},
			{Label: "outro", Start: 140, End: 150},
		},
		Beats: beatsEvery(0.5, 150),
		BPM:   120,
	}
}

// seedSong stores a song. With analyzed set, analysis is ready and the target is 90s.
func (env *testEnv) seedSong(t *testing.T, id string, analyzed bool) *model.Song {
	t.Helper()
	song := &model.Song{
		ID:               id,
		UserID:           testUser,
		OriginalFilename: "track.mp3",
		StorageKey:       "songs/" + testUser + "/" + id + "/track.mp3",
		SectionTags:      []model.TagAssignment{},
		AnalysisJob:      model.Job{Kind: model.JobKindAnalysis, Status: model.JobStatusPending},
		CutJob:           model.Job{Kind: model.JobKindGeneration, Status: model.JobStatusPending},
		CreatedAt:        time.Now(),
	}
	if analyzed {
		target := 90000
		song.Analysis = testAnalysis()
		song.AnalysisJob = model.Job{ID: "analysis-0", Kind: model.JobKindAnalysis, Status: model.JobStatusReady}
		song.TargetDurationMs = &target
	}
	if err := env.store.Create(context.Background(), song); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return song
}

func (env *testEnv) get(t *testing.T, id string) *model.Song {
	t.Helper()
	song, err := env.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	return song
}
