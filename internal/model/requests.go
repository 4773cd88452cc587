package model

// SetTargetRequest sets a song's routine type and target duration
type SetTargetRequest struct {
	RoutineType      RoutineType `json:"routineType" validate:"required,oneof=solo duo small_group large_group production custom"`
	TargetDurationMs *int        `json:"targetDurationMs" validate:"omitempty,min=10000,max=900000"`
}

// SetTagsRequest applies tag edits in order. A nil tag clears every tag on the section.
type SetTagsRequest struct {
	Tags []TagEdit `json:"tags" validate:"required,min=1,dive"`
}

// TagEdit is a single tag write
type TagEdit struct {
	Section string      `json:"section" validate:"required,max=64"`
	Tag     *SectionTag `json:"tag" validate:"omitempty,oneof=MUST KEEP SKIP OPEN FINALE"`
}

// PreviewRequest overrides the stored tags and/or target for a preview
type PreviewRequest struct {
	Tags             []TagAssignment `json:"tags" validate:"omitempty,dive"`
	TargetDurationMs *int            `json:"targetDurationMs" validate:"omitempty,min=1000"`
}

// DownloadResponse is a signed URL for a song file
type DownloadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// BatchDownloadRequest asks for signed cut URLs for several songs
type BatchDownloadRequest struct {
	SongIDs []string `json:"songIds" validate:"required,min=1,max=100,dive,required"`
}

// BatchDownloadItem is one entry of a batch download response
type BatchDownloadItem struct {
	SongID   string `json:"songId"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// BatchDownloadResponse lists the songs whose cuts could be signed
type BatchDownloadResponse struct {
	Downloads []BatchDownloadItem `json:"downloads"`
}

// WebhookRequest is the advisory completion notification sent by a worker
type WebhookRequest struct {
	SongID  string                 `json:"song_id" validate:"required"`
	Event   string                 `json:"event" validate:"required"`
	Payload map[string]interface{} `json:"payload"`
}

// WebhookResponse acknowledges an accepted webhook
type WebhookResponse struct {
	Received bool `json:"received"`
}

// AnalysisResultRequest is the Analysis Worker's direct write
type AnalysisResultRequest struct {
	JobID      string        `json:"job_id" validate:"required"`
	Status     JobStatus     `json:"status" validate:"required,oneof=ready failed"`
	Analysis   *SongAnalysis `json:"analysis" validate:"required_if=Status ready"`
	DurationMs *int          `json:"duration_ms" validate:"omitempty,min=0"`
	Error      string        `json:"error"`
}

// CutResultRequest is the Render Worker's direct write
type CutResultRequest struct {
	JobID      string       `json:"job_id" validate:"required"`
	Status     JobStatus    `json:"status" validate:"required,oneof=ready failed"`
	StorageKey string       `json:"cut_storage_key" validate:"required_if=Status ready"`
	DurationMs int          `json:"cut_duration_ms" validate:"omitempty,min=0"`
	Metadata   *CutMetadata `json:"cut_metadata"`
	Error      string       `json:"error"`
}

// WorkerWriteResponse reports whether a worker write changed the job
type WorkerWriteResponse struct {
	Applied bool `json:"applied"`
}
