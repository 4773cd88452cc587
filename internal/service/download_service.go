package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

// Download types
const (
	DownloadCut      = "cut"
	DownloadOriginal = "original"
)

const (
	signedURLExpiry = time.Hour
	batchSignLimit  = 8
)

// DownloadService signs download URLs for originals and cuts
type DownloadService struct {
	store   *store.SongStore
	storage client.StorageClient
}

func NewDownloadService(songStore *store.SongStore, storage client.StorageClient) *DownloadService {
	return &DownloadService{store: songStore, storage: storage}
}

// GetDownload signs a one-hour URL for a song's cut or original.
func (s *DownloadService) GetDownload(ctx context.Context, userID, songID, fileType string) (*model.DownloadResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	song, err := s.store.Get(ctx, songID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := ownedBy(song, userID); err != nil {
		return nil, err
	}

	key, filename := song.StorageKey, song.OriginalFilename
	if fileType == DownloadCut {
		if song.Cut == nil || song.Cut.StorageKey == "" {
			return nil, fmt.Errorf("%w: no cut file available", ErrFileNotAvailable)
		}
		key, filename = song.Cut.StorageKey, cutFilename(song)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no %s file available", ErrFileNotAvailable, fileType)
	}

	url, err := s.storage.GetSignedURL(ctx, key, filename, signedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &model.DownloadResponse{URL: url, Filename: filename}, nil
}

// BatchDownload signs cut URLs for the user's songs concurrently. Songs that are
// missing, foreign, uncut or fail to sign are left out. An empty result is
// ErrFileNotAvailable.
func (s *DownloadService) BatchDownload(ctx context.Context, userID string, songIDs []string) (*model.BatchDownloadResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	items := make([]*model.BatchDownloadItem, len(songIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSignLimit)
	for i, id := range songIDs {
		i, id := i, id
		g.Go(func() error {
			item, err := s.signCut(gctx, userID, id)
			if err != nil {
				if !errors.Is(err, ErrSongNotFound) && !errors.Is(err, ErrFileNotAvailable) {
					log.Printf("Failed to sign cut for song %s: %v", id, err)
				}
				return nil
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &model.BatchDownloadResponse{Downloads: []model.BatchDownloadItem{}}
	for _, item := range items {
		if item != nil {
			resp.Downloads = append(resp.Downloads, *item)
		}
	}
	if len(resp.Downloads) == 0 {
		return nil, fmt.Errorf("%w: no cuts available", ErrFileNotAvailable)
	}
	return resp, nil
}

func (s *DownloadService) signCut(ctx context.Context, userID, songID string) (*model.BatchDownloadItem, error) {
	song, err := s.store.Get(ctx, songID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := ownedBy(song, userID); err != nil {
		return nil, err
	}
	if song.Cut == nil || song.Cut.StorageKey == "" {
		return nil, ErrFileNotAvailable
	}

	filename := cutFilename(song)
	url, err := s.storage.GetSignedURL(ctx, song.Cut.StorageKey, filename, signedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &model.BatchDownloadItem{SongID: songID, URL: url, Filename: filename}, nil
}

func cutFilename(song *model.Song) string {
	return "cut-" + song.OriginalFilename
}
