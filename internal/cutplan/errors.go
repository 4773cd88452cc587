// Package cutplan composes a competition cut from a song's analyzed sections.
//
// The engine is a pure pipeline: Normalize names the raw sections, ResolveTags
// applies the user's tag writes, Select picks and orders sections, PlanTransitions
// snaps the joins to the beat grid and Reconcile computes the tempo change that
// closes the remaining gap to the target. Compose runs all of it. Nothing here
// touches audio or shared state, so the same inputs always give the same plan.
package cutplan

import (
	"errors"
	"fmt"

	"github.com/choreosync/api/internal/model"
)

var (
	// ErrMalformedAnalysis is returned for empty, unordered or overlapping sections.
	ErrMalformedAnalysis = errors.New("malformed analysis")
	// ErrEmptySelection is returned when no section satisfies the tags.
	ErrEmptySelection = errors.New("empty selection")
	// ErrInsufficientBeatGrid is returned when a selected section has fewer than two beats.
	ErrInsufficientBeatGrid = errors.New("insufficient beat grid")
	// ErrInvalidTarget is returned when the target duration is not positive.
	ErrInvalidTarget = errors.New("invalid target duration")
)

func malformedTagging(format string, args ...interface{}) model.Warning {
	return model.Warning{
		Code:    model.WarningMalformedTagging,
		Message: fmt.Sprintf(format, args...),
	}
}
