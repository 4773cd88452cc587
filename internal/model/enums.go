package model

// Section labels
type SectionLabel string

const (
	SectionIntro        SectionLabel = "intro"
	SectionVerse        SectionLabel = "verse"
	SectionChorus       SectionLabel = "chorus"
	SectionBridge       SectionLabel = "bridge"
	SectionOutro        SectionLabel = "outro"
	SectionInstrumental SectionLabel = "instrumental"
)

var ValidSectionLabels = []SectionLabel{
	SectionIntro, SectionVerse, SectionChorus,
	SectionBridge, SectionOutro, SectionInstrumental,
}

// Section tags
type SectionTag string

const (
	TagMust   SectionTag = "MUST"
	TagKeep   SectionTag = "KEEP"
	TagSkip   SectionTag = "SKIP"
	TagOpen   SectionTag = "OPEN"
	TagFinale SectionTag = "FINALE"
)

var ValidSectionTags = []SectionTag{TagMust, TagKeep, TagSkip, TagOpen, TagFinale}

// IsPosition reports whether the tag places a section rather than selecting it.
func (t SectionTag) IsPosition() bool {
	return t == TagOpen || t == TagFinale
}

// IsValid reports whether t is one of the known tags.
func (t SectionTag) IsValid() bool {
	for _, v := range ValidSectionTags {
		if v == t {
			return true
		}
	}
	return false
}

// Job status
type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusRunning JobStatus = "running"
	JobStatusReady   JobStatus = "ready"
	JobStatusFailed  JobStatus = "failed"
)

// IsTerminal reports whether no further transition is possible for the job instance.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusReady || s == JobStatusFailed
}

// Job kinds
type JobKind string

const (
	JobKindAnalysis   JobKind = "analysis"
	JobKindGeneration JobKind = "generation"
)

var ValidJobKinds = []JobKind{JobKindAnalysis, JobKindGeneration}

// Selection modes
type PlanMode string

const (
	PlanModeAuto   PlanMode = "auto"
	PlanModeManual PlanMode = "manual"
)

// Routine types
type RoutineType string

const (
	RoutineSolo       RoutineType = "solo"
	RoutineDuo        RoutineType = "duo"
	RoutineSmallGroup RoutineType = "small_group"
	RoutineLargeGroup RoutineType = "large_group"
	RoutineProduction RoutineType = "production"
	RoutineCustom     RoutineType = "custom"
)

// RoutineDurations maps each fixed routine type to its target cut length in milliseconds.
var RoutineDurations = map[RoutineType]int{
	RoutineSolo:       150000, // 2:30
	RoutineDuo:        150000, // 2:30
	RoutineSmallGroup: 165000, // 2:45
	RoutineLargeGroup: 180000, // 3:00
	RoutineProduction: 240000, // 4:00
}
