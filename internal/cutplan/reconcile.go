package cutplan

import (
	"fmt"
	"math"

	"github.com/choreosync/api/internal/model"
)

// Reconciliation is the tempo change that closes the gap to the target.
type Reconciliation struct {
	RawSeconds     float64
	PlannedSeconds float64
	// TempoPct is positive to speed up, negative to slow down.
	TempoPct float64
	Warnings []model.Warning
}

// Reconcile computes the tempo adjustment for a planned set of transitions:
// (raw/target - 1) * 100, where raw is the summed play spans minus one crossfade
// per join. Values beyond maxPct are clamped and flagged, never rejected.
func Reconcile(t *Transitions, targetSeconds, maxPct float64) (*Reconciliation, error) {
	if targetSeconds <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, targetSeconds)
	}

	raw := 0.0
	for _, s := range t.Sections {
		raw += s.PlayEnd - s.PlayStart
	}
	if n := len(t.Sections); n > 1 {
		raw -= float64(n-1) * t.Crossfade
	}

	var warnings []model.Warning
	pct := (raw/targetSeconds - 1) * 100
	if math.Abs(pct) > maxPct {
		warnings = append(warnings, model.Warning{
			Code:    model.WarningDurationToleranceExceeded,
			Message: fmt.Sprintf("needs %.2f%% tempo change, clamped to %.2f%%", pct, math.Copysign(maxPct, pct)),
		})
		pct = math.Copysign(maxPct, pct)
	}
	pct = math.Round(pct*100) / 100

	return &Reconciliation{
		RawSeconds:     raw,
		PlannedSeconds: raw / (1 + pct/100),
		TempoPct:       pct,
		Warnings:       warnings,
	}, nil
}
