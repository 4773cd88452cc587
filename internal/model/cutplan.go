package model

// Warning codes attached to a CutPlan
const (
	WarningMalformedTagging          = "MALFORMED_TAGGING"
	WarningDurationToleranceExceeded = "DURATION_TOLERANCE_EXCEEDED"
)

// CutPlan is the engine's instruction set for assembling a cut. Never patched in place.
type CutPlan struct {
	Sections           []SectionRef `json:"sections"`
	CrossfadePoints    []float64    `json:"crossfadePoints"`
	CrossfadeSeconds   float64      `json:"crossfadeSeconds"`
	TempoAdjustmentPct float64      `json:"tempoAdjustmentPct"`
	RawDurationMs      int          `json:"rawDurationMs"`
	PlannedDurationMs  int          `json:"plannedDurationMs"`
	TargetDurationMs   int          `json:"targetDurationMs"`
	Mode               PlanMode     `json:"mode"`
	Warnings           []Warning    `json:"warnings,omitempty"`
}

// SectionNames returns the plan's section names in play order.
func (p *CutPlan) SectionNames() []string {
	names := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		names[i] = s.Name
	}
	return names
}

// HasWarning reports whether a warning with the given code is attached.
func (p *CutPlan) HasWarning(code string) bool {
	for _, w := range p.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// SectionRef is a selected section plus the span actually played
type SectionRef struct {
	Name      string       `json:"name"`
	Label     SectionLabel `json:"label"`
	Start     float64      `json:"start"`
	End       float64      `json:"end"`
	PlayStart float64      `json:"playStart"`
	PlayEnd   float64      `json:"playEnd"`
}

// Warning is a non-fatal condition found while planning
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
