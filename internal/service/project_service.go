package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

// ProjectService manages projects. Deleting a project deletes its songs.
type ProjectService struct {
	projects *store.ProjectStore
	songs    *SongService
}

func NewProjectService(projectStore *store.ProjectStore, songs *SongService) *ProjectService {
	return &ProjectService{projects: projectStore, songs: songs}
}

// Create stores a new project for the user.
func (s *ProjectService) Create(ctx context.Context, userID, name string) (*model.Project, error) {
	name, err := projectName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &model.Project{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	log.Printf("Project %s created for user %s", project.ID, userID)
	return project, nil
}

// Get returns a project owned by the user.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*model.Project, error) {
	return s.songs.project(ctx, userID, projectID)
}

// List returns the user's projects, newest first.
func (s *ProjectService) List(ctx context.Context, userID string) ([]*model.Project, error) {
	ids, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*model.Project, 0, len(ids))
	for _, id := range ids {
		project, err := s.projects.Get(ctx, id)
		if errors.Is(err, store.ErrProjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

// Rename changes a project's name.
func (s *ProjectService) Rename(ctx context.Context, userID, projectID, name string) (*model.Project, error) {
	name, err := projectName(name)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Update(ctx, projectID, func(p *model.Project) error {
		if p.UserID != userID {
			return ErrProjectNotFound
		}
		p.Name = name
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return project, nil
}

// Songs returns the project's songs, newest first.
func (s *ProjectService) Songs(ctx context.Context, userID, projectID string) ([]*model.Song, error) {
	return s.songs.ListByProject(ctx, userID, projectID)
}

// Delete removes the project with all its songs and their files. Nothing is
// deleted while any of the songs has a running job.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return err
	}

	songs, err := s.songs.ListByProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	for _, song := range songs {
		if err := refuseRunning(song); err != nil {
			return fmt.Errorf("song %s: %w", song.ID, err)
		}
	}

	for _, song := range songs {
		if err := s.songs.Delete(ctx, userID, song.ID); err != nil && !errors.Is(err, ErrSongNotFound) {
			return fmt.Errorf("failed to delete song %s: %w", song.ID, err)
		}
	}

	if err := s.projects.Delete(ctx, project); err != nil {
		return err
	}
	log.Printf("Project %s deleted with %d songs", projectID, len(songs))
	return nil
}

func projectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	return name, nil
}
