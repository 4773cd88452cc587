// Package store persists songs in Redis. Every write goes through an optimistic
// WATCH/MULTI transaction on the song key, which is the only lock in the system.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/internal/model"
)

const (
	songKeyPrefix   = "song:"
	userSongsKey    = "user:%s:songs"
	projectSongsKey = "project:%s:songs"
	runningJobsKey  = "jobs:running"
	notifiedKey     = "notified:%s:%s"
	previewKey      = "preview:%s:%x"

	maxTxRetries = 10
)

var (
	ErrNotFound = errors.New("song not found")
	ErrExists   = errors.New("song already exists")
	// ErrConflict is returned when a transaction keeps losing to concurrent writers.
	ErrConflict = errors.New("song modified concurrently")
)

// RunningJob identifies a running job in the sweep index.
type RunningJob struct {
	SongID    string
	Kind      model.JobKind
	StartedAt time.Time
}

// SongStore is the authoritative song store
type SongStore struct {
	redis *redis.Client
}

func NewSongStore(redisClient *redis.Client) *SongStore {
	return &SongStore{redis: redisClient}
}

func songKey(id string) string {
	return songKeyPrefix + id
}

// Create stores a new song. It fails with ErrExists if the id is taken.
func (s *SongStore) Create(ctx context.Context, song *model.Song) error {
	data, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("failed to marshal song: %w", err)
	}

	ok, err := s.redis.SetNX(ctx, songKey(song.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save song: %w", err)
	}
	if !ok {
		return ErrExists
	}

	_, err = s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		if song.UserID != "" {
			pipe.SAdd(ctx, fmt.Sprintf(userSongsKey, song.UserID), song.ID)
		}
		if song.ProjectID != "" {
			pipe.SAdd(ctx, fmt.Sprintf(projectSongsKey, song.ProjectID), song.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index song: %w", err)
	}
	return nil
}

// Get loads a song by id.
func (s *SongStore) Get(ctx context.Context, id string) (*model.Song, error) {
	return getSong(ctx, s.redis, id)
}

// ListByUser returns the ids of the user's songs.
func (s *SongStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	return s.redis.SMembers(ctx, fmt.Sprintf(userSongsKey, userID)).Result()
}

// ListByProject returns the ids of the project's songs.
func (s *SongStore) ListByProject(ctx context.Context, projectID string) ([]string, error) {
	return s.redis.SMembers(ctx, fmt.Sprintf(projectSongsKey, projectID)).Result()
}

// Update applies fn to the current song and writes the result atomically. If the
// song changes between read and write, fn runs again on the fresh copy. An error
// from fn aborts the update with nothing written and is returned unchanged.
func (s *SongStore) Update(ctx context.Context, id string, fn func(*model.Song) error) (*model.Song, error) {
	key := songKey(id)
	var updated *model.Song

	txf := func(tx *redis.Tx) error {
		song, err := getSong(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(song); err != nil {
			return err
		}
		song.UpdatedAt = time.Now()

		data, err := json.Marshal(song)
		if err != nil {
			return fmt.Errorf("failed to marshal song: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			indexRunning(ctx, pipe, song)
			return nil
		})
		if err != nil {
			return err
		}
		updated = song
		return nil
	}

	if err := watch(ctx, s.redis, txf, key); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a song and its index entries once check accepts it. The
// removed song is returned so the caller can clean up its files.
func (s *SongStore) Delete(ctx context.Context, id string, check func(*model.Song) error) (*model.Song, error) {
	key := songKey(id)
	var deleted *model.Song

	txf := func(tx *redis.Tx) error {
		song, err := getSong(ctx, tx, id)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(song); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if song.UserID != "" {
				pipe.SRem(ctx, fmt.Sprintf(userSongsKey, song.UserID), id)
			}
			if song.ProjectID != "" {
				pipe.SRem(ctx, fmt.Sprintf(projectSongsKey, song.ProjectID), id)
			}
			for _, kind := range model.ValidJobKinds {
				pipe.ZRem(ctx, runningJobsKey, id+"|"+string(kind))
			}
			return nil
		})
		if err != nil {
			return err
		}
		deleted = song
		return nil
	}

	if err := watch(ctx, s.redis, txf, key); err != nil {
		return nil, err
	}
	return deleted, nil
}

// watch runs txf under WATCH on keys, retrying while other writers win.
func watch(ctx context.Context, rdb *redis.Client, txf func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := rdb.Watch(ctx, txf, keys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

// RunningSince lists running jobs started at or before the cutoff.
func (s *SongStore) RunningSince(ctx context.Context, cutoff time.Time) ([]RunningJob, error) {
	members, err := s.redis.ZRangeByScoreWithScores(ctx, runningJobsKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", cutoff.UnixMilli()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read running jobs: %w", err)
	}

	jobs := make([]RunningJob, 0, len(members))
	for _, m := range members {
		member, _ := m.Member.(string)
		songID, kind, ok := strings.Cut(member, "|")
		if !ok {
			continue
		}
		jobs = append(jobs, RunningJob{
			SongID:    songID,
			Kind:      model.JobKind(kind),
			StartedAt: time.UnixMilli(int64(m.Score)),
		})
	}
	return jobs, nil
}

// MarkNotified records that a (job, status) event was delivered. It returns false
// when the marker already existed.
func (s *SongStore) MarkNotified(ctx context.Context, jobID string, status model.JobStatus, ttl time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, fmt.Sprintf(notifiedKey, jobID, status), 1, ttl).Result()
}

// CachedPlan returns a cached preview plan, or nil on a miss.
func (s *SongStore) CachedPlan(ctx context.Context, songID string, hash uint64) (*model.CutPlan, error) {
	data, err := s.redis.Get(ctx, fmt.Sprintf(previewKey, songID, hash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var plan model.CutPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CachePlan stores a preview plan under its input hash.
func (s *SongStore) CachePlan(ctx context.Context, songID string, hash uint64, plan *model.CutPlan, ttl time.Duration) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, fmt.Sprintf(previewKey, songID, hash), data, ttl).Err()
}

func getSong(ctx context.Context, c getter, id string) (*model.Song, error) {
	data, err := c.Get(ctx, songKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var song model.Song
	if err := json.Unmarshal(data, &song); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song: %w", err)
	}
	return &song, nil
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// indexRunning keeps jobs:running in step with the song's job states.
func indexRunning(ctx context.Context, pipe redis.Pipeliner, song *model.Song) {
	for _, kind := range model.ValidJobKinds {
		job := song.Job(kind)
		member := song.ID + "|" + string(kind)
		if job.Status == model.JobStatusRunning && job.StartedAt != nil {
			pipe.ZAdd(ctx, runningJobsKey, redis.Z{Score: float64(job.StartedAt.UnixMilli()), Member: member})
		} else {
			pipe.ZRem(ctx, runningJobsKey, member)
		}
	}
}
