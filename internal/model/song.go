package model

import "time"

// Song is the single source of truth for a track's analysis, tags and job state.
type Song struct {
	ID                 string          `json:"id"`
	ProjectID          string          `json:"projectId"`
	UserID             string          `json:"userId"`
	OriginalFilename   string          `json:"originalFilename"`
	StorageKey         string          `json:"storageKey"`
	OriginalDurationMs *int            `json:"originalDurationMs,omitempty"`
	BPM                *float64        `json:"bpm,omitempty"`
	Analysis           *SongAnalysis   `json:"analysis,omitempty"`
	RoutineType        *RoutineType    `json:"routineType,omitempty"`
	TargetDurationMs   *int            `json:"targetDurationMs,omitempty"`
	SectionTags        []TagAssignment `json:"sectionTags"`
	AnalysisJob        Job             `json:"analysisJob"`
	CutJob             Job             `json:"cutJob"`
	Cut                *CutResult      `json:"cut,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Job returns a pointer to the song's current job of the given kind.
func (s *Song) Job(kind JobKind) *Job {
	if kind == JobKindAnalysis {
		return &s.AnalysisJob
	}
	return &s.CutJob
}

// SongAnalysis is the Analysis Worker's completion payload.
type SongAnalysis struct {
	Sections  []RawSection `json:"sections"`
	Beats     []float64    `json:"beats"`
	Downbeats []float64    `json:"downbeats"`
	BPM       float64      `json:"bpm"`
}

// RawSection is a section as reported by the analyzer, before naming.
type RawSection struct {
	Label string  `json:"label" validate:"required"`
	Start float64 `json:"start" validate:"min=0"`
	End   float64 `json:"end" validate:"gtfield=Start"`
}

// TagAssignment attaches one tag to one named section. Order is write order.
type TagAssignment struct {
	Section string     `json:"section" validate:"required"`
	Tag     SectionTag `json:"tag" validate:"required,oneof=MUST KEEP SKIP OPEN FINALE"`
}

// CutResult is what the Render Worker persists when a cut is ready.
type CutResult struct {
	StorageKey string      `json:"storageKey"`
	DurationMs int         `json:"durationMs"`
	Metadata   CutMetadata `json:"metadata"`
}

// CutMetadata describes how a rendered cut was assembled.
type CutMetadata struct {
	SectionsUsed       []string  `json:"sections_used"`
	CrossfadePoints    []float64 `json:"crossfade_points"`
	TempoAdjustmentPct float64   `json:"tempo_adjustment_pct"`
	FinalDurationMs    int       `json:"final_duration_ms"`
}
