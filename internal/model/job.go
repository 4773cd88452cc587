package model

import "time"

// Job is one analysis or generation attempt for a song
type Job struct {
	ID          string     `json:"id,omitempty"`
	Kind        JobKind    `json:"kind"`
	Status      JobStatus  `json:"status"`
	Error       *string    `json:"error,omitempty"`
	Plan        *CutPlan   `json:"plan,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Task types
const (
	TaskTypeNotify = "notify:song"
	TaskTypeSweep  = "jobs:sweep"
)

// Notification events
const (
	EventDispatchFailed = "dispatch_failed"
	EventAnalysisDone   = "analysis_complete"
	EventCutDone        = "cut_complete"
	EventJobTimedOut    = "job_timed_out"
)

// NotifyTaskPayload is enqueued by the webhook for advisory side effects
type NotifyTaskPayload struct {
	SongID string `json:"songId"`
	Event  string `json:"event"`
}

// JobStatusResponse is returned by the job status endpoint
type JobStatusResponse struct {
	SongID      string     `json:"songId"`
	JobID       string     `json:"jobId,omitempty"`
	Kind        JobKind    `json:"kind"`
	Status      JobStatus  `json:"status"`
	Error       *string    `json:"error,omitempty"`
	Plan        *CutPlan   `json:"plan,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// JobStartResponse is returned when a job request is accepted
type JobStartResponse struct {
	SongID    string     `json:"songId"`
	JobID     string     `json:"jobId"`
	Kind      JobKind    `json:"kind"`
	Status    JobStatus  `json:"status"`
	Plan      *CutPlan   `json:"plan,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// NewJobStatusResponse builds the public status view of a song's job
func NewJobStatusResponse(songID string, job *Job) *JobStatusResponse {
	return &JobStatusResponse{
		SongID:      songID,
		JobID:       job.ID,
		Kind:        job.Kind,
		Status:      job.Status,
		Error:       job.Error,
		Plan:        job.Plan,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
	}
}
