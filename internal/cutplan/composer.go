package cutplan

import (
	"fmt"
	"math"

	"github.com/choreosync/api/internal/model"
)

// Options tunes the transition planner and the reconciler.
type Options struct {
	MaxTempoPct    float64
	CrossfadeBeats float64
	FloorBeats     float64
	MinCrossfade   float64
	MaxCrossfade   float64
}

// DefaultOptions returns the production engine settings.
func DefaultOptions() Options {
	return Options{
		MaxTempoPct:    8,
		CrossfadeBeats: 2,
		FloorBeats:     2,
		MinCrossfade:   0.3,
		MaxCrossfade:   2.0,
	}
}

// Input is everything Compose needs about a song.
type Input struct {
	Analysis         model.SongAnalysis
	Tags             []model.TagAssignment
	TargetDurationMs int
}

// Compose turns an analysis, the user's tags and a target into a CutPlan.
func Compose(in Input, opts Options) (*model.CutPlan, error) {
	if in.TargetDurationMs <= 0 {
		return nil, fmt.Errorf("%w: %d ms", ErrInvalidTarget, in.TargetDurationMs)
	}
	target := float64(in.TargetDurationMs) / 1000

	sections, err := Normalize(in.Analysis.Sections)
	if err != nil {
		return nil, err
	}

	tagging, warnings := ResolveTags(sections, in.Tags)

	selection, err := Select(sections, tagging, target)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, selection.Warnings...)

	transitions, err := PlanTransitions(selection.Sections, NewBeatGrid(in.Analysis), opts)
	if err != nil {
		return nil, err
	}

	rec, err := Reconcile(transitions, target, opts.MaxTempoPct)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, rec.Warnings...)

	return &model.CutPlan{
		Sections:           transitions.Sections,
		CrossfadePoints:    transitions.Points,
		CrossfadeSeconds:   transitions.Crossfade,
		TempoAdjustmentPct: rec.TempoPct,
		RawDurationMs:      toMs(rec.RawSeconds),
		PlannedDurationMs:  toMs(rec.PlannedSeconds),
		TargetDurationMs:   in.TargetDurationMs,
		Mode:               selection.Mode,
		Warnings:           warnings,
	}, nil
}

func toMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}
