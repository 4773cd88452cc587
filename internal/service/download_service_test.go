package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/choreosync/api/internal/model"
)

func (env *testEnv) giveCut(t *testing.T, id string) {
	t.Helper()
	_, err := env.store.Update(context.Background(), id, func(s *model.Song) error {
		s.Cut = &model.CutResult{StorageKey: "cuts/" + id + ".mp3", DurationMs: 90000}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGetDownload(t *testing.T) {
	env := newTestEnv(t)
	env.seedSong(t, "song-1", true)
	ctx := context.Background()

	orig, err := env.downloads.GetDownload(ctx, testUser, "song-1", DownloadOriginal)
	if err != nil {
		t.Fatal(err)
	}
	if orig.Filename != "track.mp3" || !strings.Contains(orig.URL, "expires=3600") {
		t.Errorf("original = %+v", orig)
	}

	if _, err := env.downloads.GetDownload(ctx, testUser, "song-1", DownloadCut); !errors.Is(err, ErrFileNotAvailable) {
		t.Errorf("no cut: err = %v", err)
	}

	env.giveCut(t, "song-1")
	cut, err := env.downloads.GetDownload(ctx, testUser, "song-1", DownloadCut)
	if err != nil {
		t.Fatal(err)
	}
	if cut.Filename != "cut-track.mp3" || !strings.Contains(cut.URL, "cuts/song-1.mp3") {
		t.Errorf("cut = %+v", cut)
	}

	if _, err := env.downloads.GetDownload(ctx, "intruder", "song-1", DownloadCut); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("foreign: err = %v", err)
	}
}

func TestBatchDownload(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"a", "b", "c"} {
		env.seedSong(t, id, true)
	}
	env.giveCut(t, "a")
	env.giveCut(t, "c")
	ctx := context.Background()

	resp, err := env.downloads.BatchDownload(ctx, testUser, []string{"a", "b", "c", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Downloads) != 2 || resp.Downloads[0].SongID != "a" || resp.Downloads[1].SongID != "c" {
		t.Errorf("downloads = %+v", resp.Downloads)
	}

	if _, err := env.downloads.BatchDownload(ctx, testUser, []string{"b"}); !errors.Is(err, ErrFileNotAvailable) {
		t.Errorf("no cuts: err = %v", err)
	}
	if _, err := env.downloads.BatchDownload(ctx, "intruder", []string{"a"}); !errors.Is(err, ErrFileNotAvailable) {
		t.Errorf("foreign: err = %v", err)
	}
}

func TestDownload_NoStorage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDownloadService(env.store, nil)

	if _, err := svc.GetDownload(context.Background(), testUser, "x", DownloadCut); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("err = %v", err)
	}
}
