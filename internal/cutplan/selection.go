package cutplan

import (
	"fmt"
	"math"
	"sort"

	"github.com/choreosync/api/internal/model"
)

// labelScores ranks sections for auto mode: chorus > verse > bridge > intro = outro > instrumental.
var labelScores = map[model.SectionLabel]int{
	model.SectionChorus:       10,
	model.SectionVerse:        6,
	model.SectionBridge:       5,
	model.SectionIntro:        3,
	model.SectionOutro:        3,
	model.SectionInstrumental: 2,
}

// Score returns the fixed heuristic score of a section label.
func Score(label model.SectionLabel) int {
	return labelScores[label]
}

// Selection is the ordered subset of sections chosen for a cut.
type Selection struct {
	Sections []Section
	Mode     model.PlanMode
	// Duration is the summed span of the selected sections, in seconds.
	Duration float64
	// Gap is Duration minus the target. Positive means too long.
	Gap      float64
	Warnings []model.Warning
}

// Select picks and orders sections for a target duration in seconds.
//
// SKIP always excludes and MUST always includes. With no positive tag the song is
// in auto mode and every non-skipped section competes by score. Otherwise only
// tagged sections are candidates: MUST, OPEN and FINALE are fixed while KEEP
// sections are fitted to the target. Fitting walks candidates by descending score
// (earliest start first on ties) and stops at the first one that does not bring
// the total strictly closer to the target.
func Select(sections []Section, tags Tagging, targetSeconds float64) (*Selection, error) {
	if targetSeconds <= 0 || math.IsNaN(targetSeconds) || math.IsInf(targetSeconds, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, targetSeconds)
	}

	manual := tags.HasPositiveTag()
	mode := model.PlanModeAuto
	if manual {
		mode = model.PlanModeManual
	}

	var warnings []model.Warning
	var fixed, optional []Section

	for _, s := range sections {
		tag := tags.Tag(s.Name)
		if tag == model.TagSkip {
			if s.Name == tags.Open || s.Name == tags.Finale {
				warnings = append(warnings, malformedTagging("%q is positioned but also SKIP; SKIP wins", s.Name))
			}
			continue
		}
		if !manual {
			optional = append(optional, s)
			continue
		}
		switch {
		case tag == model.TagMust || s.Name == tags.Open || s.Name == tags.Finale:
			fixed = append(fixed, s)
		case tag == model.TagKeep:
			optional = append(optional, s)
		}
	}

	ranked, err := rankByScore(optional)
	if err != nil {
		return nil, err
	}

	chosen, total := fitToTarget(fixed, ranked, targetSeconds)
	if len(chosen) == 0 {
		return nil, fmt.Errorf("%w: every section is excluded by the tags", ErrEmptySelection)
	}

	ordered, orderWarnings := orderSections(chosen, tags)
	warnings = append(warnings, orderWarnings...)

	return &Selection{
		Sections: ordered,
		Mode:     mode,
		Duration: total,
		Gap:      total - targetSeconds,
		Warnings: warnings,
	}, nil
}

// rankByScore sorts candidates by descending score, then ascending start.
func rankByScore(candidates []Section) ([]Section, error) {
	ranked := append([]Section(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := Score(ranked[i].Label), Score(ranked[j].Label)
		if si != sj {
			return si > sj
		}
		return ranked[i].Start < ranked[j].Start
	})

	// Normalized sections have strictly increasing starts; equal keys mean bad input.
	for i := 1; i < len(ranked); i++ {
		a, b := ranked[i-1], ranked[i]
		if Score(a.Label) == Score(b.Label) && a.Start == b.Start {
			return nil, fmt.Errorf("%w: %q and %q share score and start", ErrMalformedAnalysis, a.Name, b.Name)
		}
	}
	return ranked, nil
}

// fitToTarget starts from the fixed sections and adds ranked ones while each
// addition strictly reduces the distance to the target. The first ranked section
// is taken unconditionally when nothing is fixed.
func fitToTarget(fixed, ranked []Section, target float64) ([]Section, float64) {
	chosen := append([]Section(nil), fixed...)
	total := 0.0
	for _, s := range fixed {
		total += s.Duration()
	}

	for _, s := range ranked {
		next := total + s.Duration()
		if len(chosen) > 0 && math.Abs(next-target) >= math.Abs(total-target) {
			break
		}
		chosen = append(chosen, s)
		total = next
	}
	return chosen, total
}

// orderSections restores chronological order, then moves OPEN to the front and
// FINALE to the end. When both name the same section OPEN wins.
func orderSections(chosen []Section, tags Tagging) ([]Section, []model.Warning) {
	var warnings []model.Warning

	ordered := append([]Section(nil), chosen...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	finale := tags.Finale
	if tags.Open != "" && tags.Open == tags.Finale {
		warnings = append(warnings, malformedTagging("%q is tagged both OPEN and FINALE; OPEN wins", tags.Open))
		finale = ""
	}

	var opener, closer *Section
	middle := make([]Section, 0, len(ordered))
	for i := range ordered {
		s := ordered[i]
		switch {
		case tags.Open != "" && s.Name == tags.Open:
			opener = &s
		case finale != "" && s.Name == finale:
			closer = &s
		default:
			middle = append(middle, s)
		}
	}

	result := make([]Section, 0, len(ordered))
	if opener != nil {
		result = append(result, *opener)
	}
	result = append(result, middle...)
	if closer != nil {
		result = append(result, *closer)
	}
	return result, warnings
}
