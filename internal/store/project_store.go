package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/internal/model"
)

const (
	projectKeyPrefix = "project:"
	userProjectsKey  = "user:%s:projects"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectStore keeps projects, which group a user's songs
type ProjectStore struct {
	redis *redis.Client
}

func NewProjectStore(redisClient *redis.Client) *ProjectStore {
	return &ProjectStore{redis: redisClient}
}

func projectKey(id string) string {
	return projectKeyPrefix + id
}

// Create stores a new project. It fails with ErrExists if the id is taken.
func (s *ProjectStore) Create(ctx context.Context, project *model.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	ok, err := s.redis.SetNX(ctx, projectKey(project.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	if !ok {
		return ErrExists
	}

	if err := s.redis.SAdd(ctx, fmt.Sprintf(userProjectsKey, project.UserID), project.ID).Err(); err != nil {
		return fmt.Errorf("failed to index project: %w", err)
	}
	return nil
}

// Get loads a project by id.
func (s *ProjectStore) Get(ctx context.Context, id string) (*model.Project, error) {
	return getProject(ctx, s.redis, id)
}

// ListByUser returns the ids of the user's projects.
func (s *ProjectStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	return s.redis.SMembers(ctx, fmt.Sprintf(userProjectsKey, userID)).Result()
}

// Update applies fn to the current project and writes it back atomically.
func (s *ProjectStore) Update(ctx context.Context, id string, fn func(*model.Project) error) (*model.Project, error) {
	key := projectKey(id)
	var updated *model.Project

	txf := func(tx *redis.Tx) error {
		project, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(project); err != nil {
			return err
		}
		project.UpdatedAt = time.Now()

		data, err := json.Marshal(project)
		if err != nil {
			return fmt.Errorf("failed to marshal project: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = project
		return nil
	}

	if err := watch(ctx, s.redis, txf, key); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the project record, its user index entry and its song index.
// Songs must be deleted first.
func (s *ProjectStore) Delete(ctx context.Context, project *model.Project) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, projectKey(project.ID), fmt.Sprintf(projectSongsKey, project.ID))
		pipe.SRem(ctx, fmt.Sprintf(userProjectsKey, project.UserID), project.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func getProject(ctx context.Context, c getter, id string) (*model.Project, error) {
	data, err := c.Get(ctx, projectKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	var project model.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &project, nil
}
