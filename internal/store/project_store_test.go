package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/internal/model"
)

func newProjectStore(t *testing.T) (*ProjectStore, *SongStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewProjectStore(rdb), NewSongStore(rdb)
}

func TestProjectStore(t *testing.T) {
	projects, songs := newProjectStore(t)
	ctx := context.Background()

	p := &model.Project{ID: "project-1", UserID: "user-1", Name: "Regionals", CreatedAt: time.Now()}
	if err := projects.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := projects.Create(ctx, p); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate create: err = %v", err)
	}

	got, err := projects.Get(ctx, "project-1")
	if err != nil || got.Name != "Regionals" {
		t.Fatalf("Get: %v / %+v", err, got)
	}

	updated, err := projects.Update(ctx, "project-1", func(p *model.Project) error {
		p.Name = "Nationals"
		return nil
	})
	if err != nil || updated.Name != "Nationals" || updated.UpdatedAt.IsZero() {
		t.Errorf("Update: %v / %+v", err, updated)
	}

	song := newSong("song-1")
	song.ProjectID = "project-1"
	_ = songs.Create(ctx, song)
	if ids, _ := songs.ListByProject(ctx, "project-1"); len(ids) != 1 || ids[0] != "song-1" {
		t.Errorf("project songs = %v", ids)
	}

	if err := projects.Delete(ctx, got); err != nil {
		t.Fatal(err)
	}
	if _, err := projects.Get(ctx, "project-1"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Get after delete: err = %v", err)
	}
	if ids, _ := projects.ListByUser(ctx, "user-1"); len(ids) != 0 {
		t.Errorf("user projects = %v", ids)
	}
	if ids, _ := songs.ListByProject(ctx, "project-1"); len(ids) != 0 {
		t.Errorf("project song index = %v", ids)
	}
	if _, err := projects.Update(ctx, "project-1", func(*model.Project) error { return nil }); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Update after delete: err = %v", err)
	}
}
