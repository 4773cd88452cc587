package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	xxhash "github.com/OneOfOne/xxhash"
	"github.com/google/uuid"

	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

// NewSong describes an uploaded track
type NewSong struct {
	UserID      string
	ProjectID   string
	Filename    string
	ContentType string
	Body        io.Reader
}

// SongService handles song creation, targets, tags and cut previews
type SongService struct {
	store    *store.SongStore
	projects *store.ProjectStore
	storage  client.StorageClient
	opts     cutplan.Options
	cacheTTL time.Duration
}

func NewSongService(songStore *store.SongStore, projectStore *store.ProjectStore, storage client.StorageClient, opts cutplan.Options, cacheTTL time.Duration) *SongService {
	return &SongService{
		store:    songStore,
		projects: projectStore,
		storage:  storage,
		opts:     opts,
		cacheTTL: cacheTTL,
	}
}

// Create uploads the original track and stores a new song with both jobs pending.
// A project, when given, must belong to the user.
func (s *SongService) Create(ctx context.Context, in *NewSong) (*model.Song, error) {
	if in.ProjectID != "" {
		if _, err := s.project(ctx, in.UserID, in.ProjectID); err != nil {
			return nil, err
		}
	}

	songID := uuid.New().String()
	filename := path.Base(strings.ReplaceAll(in.Filename, "\\", "/"))
	key := fmt.Sprintf("songs/%s/%s/%s", in.UserID, songID, filename)

	if s.storage == nil {
		log.Printf("Storage not configured, skipping upload of %s", key)
	} else if err := s.storage.Upload(ctx, key, in.Body, in.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload song: %w", err)
	}

	now := time.Now()
	song := &model.Song{
		ID:               songID,
		ProjectID:        in.ProjectID,
		UserID:           in.UserID,
		OriginalFilename: filename,
		StorageKey:       key,
		SectionTags:      []model.TagAssignment{},
		AnalysisJob:      model.Job{Kind: model.JobKindAnalysis, Status: model.JobStatusPending},
		CutJob:           model.Job{Kind: model.JobKindGeneration, Status: model.JobStatusPending},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.Create(ctx, song); err != nil {
		if s.storage != nil {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				log.Printf("Failed to remove orphaned upload %s: %v", key, delErr)
			}
		}
		return nil, fmt.Errorf("failed to save song: %w", err)
	}

	log.Printf("Song %s created for user %s", songID, in.UserID)
	return song, nil
}

// Get returns a song owned by the user.
func (s *SongService) Get(ctx context.Context, userID, songID string) (*model.Song, error) {
	song, err := s.store.Get(ctx, songID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := ownedBy(song, userID); err != nil {
		return nil, err
	}
	return song, nil
}

// List returns the user's songs, newest first.
func (s *SongService) List(ctx context.Context, userID string) ([]*model.Song, error) {
	ids, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return s.load(ctx, ids)
}

// ListByProject returns the songs of one of the user's projects, newest first.
func (s *SongService) ListByProject(ctx context.Context, userID, projectID string) ([]*model.Song, error) {
	if _, err := s.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	ids, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project songs: %w", err)
	}
	return s.load(ctx, ids)
}

// Delete removes a song and its stored files. Songs with a running job are
// refused with ErrSongBusy.
func (s *SongService) Delete(ctx context.Context, userID, songID string) error {
	song, err := s.store.Delete(ctx, songID, func(song *model.Song) error {
		if err := ownedBy(song, userID); err != nil {
			return err
		}
		return refuseRunning(song)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	s.removeFiles(ctx, song)
	log.Printf("Song %s deleted by user %s", songID, userID)
	return nil
}

func (s *SongService) removeFiles(ctx context.Context, song *model.Song) {
	keys := []string{song.StorageKey}
	if song.Cut != nil {
		keys = append(keys, song.Cut.StorageKey)
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if s.storage == nil {
			log.Printf("Storage not configured, leaving %s", key)
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Printf("Failed to remove %s: %v", key, err)
		}
	}
}

// project returns a project owned by the user.
func (s *SongService) project(ctx context.Context, userID, projectID string) (*model.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if project.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// load reads songs by id, skipping ones deleted in the meantime, newest first.
func (s *SongService) load(ctx context.Context, ids []string) ([]*model.Song, error) {
	songs := make([]*model.Song, 0, len(ids))
	for _, id := range ids {
		song, err := s.store.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool {
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})
	return songs, nil
}

// SetTarget sets the routine type. Fixed routine types imply their duration;
// custom requires an explicit one.
func (s *SongService) SetTarget(ctx context.Context, userID, songID string, req *model.SetTargetRequest) (*model.Song, error) {
	target, err := resolveTarget(req)
	if err != nil {
		return nil, err
	}

	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		if err := ownedBy(song, userID); err != nil {
			return err
		}
		routine := req.RoutineType
		song.RoutineType = &routine
		song.TargetDurationMs = &target
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return song, nil
}

// SetTags applies tag edits in order. Tags can only name sections of the
// song's current analysis.
func (s *SongService) SetTags(ctx context.Context, userID, songID string, edits []model.TagEdit) (*model.Song, error) {
	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		if err := ownedBy(song, userID); err != nil {
			return err
		}
		if song.Analysis == nil {
			return fmt.Errorf("%w: song must be analyzed before tagging", ErrPreconditionNotMet)
		}

		sections, err := cutplan.Normalize(song.Analysis.Sections)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(sections))
		for _, sec := range sections {
			known[sec.Name] = true
		}

		tags := song.SectionTags
		for _, edit := range edits {
			if !known[edit.Section] {
				return fmt.Errorf("%w: unknown section %q", ErrInvalidInput, edit.Section)
			}
			tags = cutplan.ApplyTagEdit(tags, edit.Section, edit.Tag)
		}
		song.SectionTags = tags
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return song, nil
}

// Preview composes the plan a generation request would dispatch, optionally with
// different tags or target. It never changes the song. Plans are cached under a
// hash of the inputs.
func (s *SongService) Preview(ctx context.Context, userID, songID string, req *model.PreviewRequest) (*model.CutPlan, error) {
	song, err := s.Get(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if song.Analysis == nil {
		return nil, fmt.Errorf("%w: song must be analyzed first", ErrPreconditionNotMet)
	}

	in := cutplan.Input{
		Analysis: *song.Analysis,
		Tags:     song.SectionTags,
	}
	if req != nil && req.Tags != nil {
		in.Tags = req.Tags
	}
	switch {
	case req != nil && req.TargetDurationMs != nil:
		in.TargetDurationMs = *req.TargetDurationMs
	case song.TargetDurationMs != nil:
		in.TargetDurationMs = *song.TargetDurationMs
	default:
		return nil, fmt.Errorf("%w: set a routine type or target duration first", ErrPreconditionNotMet)
	}

	hash, err := previewHash(in, s.opts)
	if err != nil {
		return nil, err
	}

	if cached, err := s.store.CachedPlan(ctx, songID, hash); err != nil {
		log.Printf("Preview cache read failed for song %s: %v", songID, err)
	} else if cached != nil {
		return cached, nil
	}

	plan, err := cutplan.Compose(in, s.opts)
	if err != nil {
		return nil, err
	}

	if err := s.store.CachePlan(ctx, songID, hash, plan, s.cacheTTL); err != nil {
		log.Printf("Preview cache write failed for song %s: %v", songID, err)
	}
	return plan, nil
}

func resolveTarget(req *model.SetTargetRequest) (int, error) {
	if req.RoutineType == model.RoutineCustom {
		if req.TargetDurationMs == nil {
			return 0, fmt.Errorf("%w: custom routine needs targetDurationMs", ErrInvalidInput)
		}
		return *req.TargetDurationMs, nil
	}
	target, ok := model.RoutineDurations[req.RoutineType]
	if !ok {
		return 0, fmt.Errorf("%w: unknown routine type %q", ErrInvalidInput, req.RoutineType)
	}
	return target, nil
}

// previewHash is the xxhash of every input that can change the plan.
func previewHash(in cutplan.Input, opts cutplan.Options) (uint64, error) {
	buf, err := json.Marshal(struct {
		In   cutplan.Input
		Opts cutplan.Options
	}{in, opts})
	if err != nil {
		return 0, fmt.Errorf("failed to hash preview input: %w", err)
	}
	return xxhash.Checksum64(buf), nil
}
