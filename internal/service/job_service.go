package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/store"
)

const staleJobReason = "worker timed out"

// JobService drives the analysis and generation job lifecycle of songs.
//
// A job is created in running state by a request, and leaves running exactly
// once: through the worker's write, a dispatch failure or the stale-job sweep.
// Every transition is a compare-and-swap on the song key, so concurrent requests
// and late worker writes resolve to a single winner.
type JobService struct {
	store      *store.SongStore
	dispatcher client.Dispatcher
	enqueuer   TaskEnqueuer
	opts       cutplan.Options
	now        func() time.Time
}

func NewJobService(songStore *store.SongStore, dispatcher client.Dispatcher, enqueuer TaskEnqueuer, opts cutplan.Options) *JobService {
	return &JobService{
		store:      songStore,
		dispatcher: dispatcher,
		enqueuer:   enqueuer,
		opts:       opts,
		now:        time.Now,
	}
}

// RequestAnalysis starts an analysis job and dispatches it to the Analysis Worker.
func (s *JobService) RequestAnalysis(ctx context.Context, userID, songID string) (*model.JobStartResponse, error) {
	var dispatch *client.AnalysisDispatch

	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		if err := ownedBy(song, userID); err != nil {
			return err
		}
		if song.AnalysisJob.Status == model.JobStatusRunning {
			return fmt.Errorf("%w: analysis %s is running", ErrAlreadyInFlight, song.AnalysisJob.ID)
		}

		song.AnalysisJob = s.newRunningJob(model.JobKindAnalysis, nil)
		dispatch = &client.AnalysisDispatch{
			SongID:     song.ID,
			JobID:      song.AnalysisJob.ID,
			StorageKey: song.StorageKey,
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.dispatcher.DispatchAnalysis(ctx, dispatch); err != nil {
		return nil, s.dispatchFailed(ctx, songID, model.JobKindAnalysis, dispatch.JobID, err)
	}

	log.Printf("Analysis job %s dispatched for song %s", dispatch.JobID, songID)
	return startResponse(song, model.JobKindAnalysis), nil
}

// RequestGeneration composes a CutPlan from the song's analysis, tags and target,
// starts a generation job and dispatches the plan to the Render Worker. Engine
// errors abort before any state change.
func (s *JobService) RequestGeneration(ctx context.Context, userID, songID string) (*model.JobStartResponse, error) {
	var dispatch *client.GenerationDispatch

	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		if err := ownedBy(song, userID); err != nil {
			return err
		}
		if err := generationReady(song); err != nil {
			return err
		}
		if song.CutJob.Status == model.JobStatusRunning {
			return fmt.Errorf("%w: generation %s is running", ErrAlreadyInFlight, song.CutJob.ID)
		}

		plan, err := cutplan.Compose(cutplan.Input{
			Analysis:         *song.Analysis,
			Tags:             song.SectionTags,
			TargetDurationMs: *song.TargetDurationMs,
		}, s.opts)
		if err != nil {
			return err
		}

		song.CutJob = s.newRunningJob(model.JobKindGeneration, plan)
		dispatch = &client.GenerationDispatch{
			SongID:     song.ID,
			JobID:      song.CutJob.ID,
			StorageKey: song.StorageKey,
			Plan:       plan,
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.dispatcher.DispatchGeneration(ctx, dispatch); err != nil {
		return nil, s.dispatchFailed(ctx, songID, model.JobKindGeneration, dispatch.JobID, err)
	}

	log.Printf("Generation job %s dispatched for song %s (%d sections, %.2f%% tempo)",
		dispatch.JobID, songID, len(dispatch.Plan.Sections), dispatch.Plan.TempoAdjustmentPct)
	return startResponse(song, model.JobKindGeneration), nil
}

// GetJobStatus returns the persisted state of the song's current job of a kind.
func (s *JobService) GetJobStatus(ctx context.Context, userID, songID string, kind model.JobKind) (*model.JobStatusResponse, error) {
	song, err := s.store.Get(ctx, songID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := ownedBy(song, userID); err != nil {
		return nil, err
	}
	return model.NewJobStatusResponse(songID, song.Job(kind)), nil
}

// RecordAnalysisResult applies the Analysis Worker's write. Only the running job
// with the same id can complete; anything else returns ErrStaleJob.
func (s *JobService) RecordAnalysisResult(ctx context.Context, songID string, req *model.AnalysisResultRequest) (*model.Song, error) {
	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		job := &song.AnalysisJob
		if err := claimRunning(job, req.JobID); err != nil {
			return err
		}

		if req.Status == model.JobStatusFailed {
			s.finish(job, model.JobStatusFailed, req.Error)
			return nil
		}

		if req.Analysis == nil {
			s.finish(job, model.JobStatusFailed, "worker reported ready without an analysis")
			return nil
		}
		if _, err := cutplan.Normalize(req.Analysis.Sections); err != nil {
			s.finish(job, model.JobStatusFailed, err.Error())
			return nil
		}

		song.Analysis = req.Analysis
		if req.Analysis.BPM > 0 {
			bpm := req.Analysis.BPM
			song.BPM = &bpm
		}
		if req.DurationMs != nil {
			d := *req.DurationMs
			song.OriginalDurationMs = &d
		}
		s.finish(job, model.JobStatusReady, "")
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	log.Printf("Analysis job %s for song %s is %s", req.JobID, songID, song.AnalysisJob.Status)
	s.notify(ctx, songID, model.EventAnalysisDone)
	return song, nil
}

// RecordCutResult applies the Render Worker's write, with the same guard as
// RecordAnalysisResult.
func (s *JobService) RecordCutResult(ctx context.Context, songID string, req *model.CutResultRequest) (*model.Song, error) {
	song, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		job := &song.CutJob
		if err := claimRunning(job, req.JobID); err != nil {
			return err
		}

		if req.Status == model.JobStatusFailed {
			s.finish(job, model.JobStatusFailed, req.Error)
			return nil
		}

		song.Cut = &model.CutResult{
			StorageKey: req.StorageKey,
			DurationMs: req.DurationMs,
			Metadata:   cutMetadata(req, job.Plan),
		}
		s.finish(job, model.JobStatusReady, "")
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	log.Printf("Generation job %s for song %s is %s", req.JobID, songID, song.CutJob.Status)
	s.notify(ctx, songID, model.EventCutDone)
	return song, nil
}

// FailStale fails every job that has been running since before the cutoff. It
// returns the number of jobs it failed.
func (s *JobService) FailStale(ctx context.Context, cutoff time.Time) (int, error) {
	running, err := s.store.RunningSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range running {
		_, err := s.store.Update(ctx, r.SongID, func(song *model.Song) error {
			job := song.Job(r.Kind)
			if job.Status != model.JobStatusRunning || job.StartedAt == nil || job.StartedAt.After(cutoff) {
				return ErrStaleJob
			}
			s.finish(job, model.JobStatusFailed, staleJobReason)
			return nil
		})
		switch {
		case err == nil:
			failed++
			log.Printf("Failed stale %s job for song %s", r.Kind, r.SongID)
			s.notify(ctx, r.SongID, model.EventJobTimedOut)
		case errors.Is(err, ErrStaleJob), errors.Is(err, store.ErrNotFound):
		default:
			return failed, fmt.Errorf("failed to expire %s job for song %s: %w", r.Kind, r.SongID, err)
		}
	}
	return failed, nil
}

// dispatchFailed moves the job to failed and returns ErrWorkerDispatchFailed.
func (s *JobService) dispatchFailed(ctx context.Context, songID string, kind model.JobKind, jobID string, cause error) error {
	reason := fmt.Sprintf("dispatch failed: %v", cause)
	_, err := s.store.Update(ctx, songID, func(song *model.Song) error {
		job := song.Job(kind)
		if err := claimRunning(job, jobID); err != nil {
			return err
		}
		s.finish(job, model.JobStatusFailed, reason)
		return nil
	})
	if err != nil && !errors.Is(err, ErrStaleJob) {
		log.Printf("Failed to record dispatch failure for job %s: %v", jobID, err)
	}

	log.Printf("Dispatch of %s job %s failed: %v", kind, jobID, cause)
	s.notify(ctx, songID, model.EventDispatchFailed)
	return fmt.Errorf("%w: %v", ErrWorkerDispatchFailed, cause)
}

func (s *JobService) newRunningJob(kind model.JobKind, plan *model.CutPlan) model.Job {
	now := s.now()
	return model.Job{
		ID:        uuid.New().String(),
		Kind:      kind,
		Status:    model.JobStatusRunning,
		Plan:      plan,
		CreatedAt: &now,
		StartedAt: &now,
	}
}

func (s *JobService) finish(job *model.Job, status model.JobStatus, reason string) {
	now := s.now()
	job.Status = status
	job.CompletedAt = &now
	job.Error = nil
	if status == model.JobStatusFailed {
		if reason == "" {
			reason = "worker reported failure"
		}
		job.Error = &reason
	}
}

func (s *JobService) notify(ctx context.Context, songID, event string) {
	if err := enqueueNotify(ctx, s.enqueuer, songID, event); err != nil {
		log.Printf("Failed to enqueue notification for song %s: %v", songID, err)
	}
}

// claimRunning checks that job is the running instance with the given id.
func claimRunning(job *model.Job, jobID string) error {
	if job.ID != jobID || job.Status != model.JobStatusRunning {
		return fmt.Errorf("%w: job %s is not the running %s job", ErrStaleJob, jobID, job.Kind)
	}
	return nil
}

func generationReady(song *model.Song) error {
	switch {
	case song.AnalysisJob.Status != model.JobStatusReady || song.Analysis == nil:
		return fmt.Errorf("%w: song must be analyzed first", ErrPreconditionNotMet)
	case song.TargetDurationMs == nil || *song.TargetDurationMs <= 0:
		return fmt.Errorf("%w: set a routine type or target duration first", ErrPreconditionNotMet)
	}
	return nil
}

// cutMetadata prefers the worker's metadata and falls back to the dispatched plan.
func cutMetadata(req *model.CutResultRequest, plan *model.CutPlan) model.CutMetadata {
	if req.Metadata != nil {
		return *req.Metadata
	}
	meta := model.CutMetadata{FinalDurationMs: req.DurationMs}
	if plan != nil {
		meta.SectionsUsed = plan.SectionNames()
		meta.CrossfadePoints = plan.CrossfadePoints
		meta.TempoAdjustmentPct = plan.TempoAdjustmentPct
	}
	return meta
}

func startResponse(song *model.Song, kind model.JobKind) *model.JobStartResponse {
	job := song.Job(kind)
	return &model.JobStartResponse{
		SongID:    song.ID,
		JobID:     job.ID,
		Kind:      kind,
		Status:    job.Status,
		Plan:      job.Plan,
		StartedAt: job.StartedAt,
	}
}
