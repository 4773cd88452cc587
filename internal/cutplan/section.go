package cutplan

import (
	"fmt"
	"math"
	"strings"

	"github.com/choreosync/api/internal/model"
)

// boundaryEpsilon absorbs the millisecond rounding analyzers apply to section edges.
const boundaryEpsilon = 1e-6

// Section is a named, chronologically indexed section of a song.
type Section struct {
	Name  string
	Label model.SectionLabel
	Start float64
	End   float64
	Index int
}

// Duration returns the section span in seconds.
func (s Section) Duration() float64 {
	return s.End - s.Start
}

// labelAliases maps analyzer vocabularies onto the six section labels.
var labelAliases = map[string]model.SectionLabel{
	"intro":        model.SectionIntro,
	"verse":        model.SectionVerse,
	"chorus":       model.SectionChorus,
	"bridge":       model.SectionBridge,
	"outro":        model.SectionOutro,
	"instrumental": model.SectionInstrumental,
	"inst":         model.SectionInstrumental,
	"solo":         model.SectionInstrumental,
	"break":        model.SectionInstrumental,
	"start":        model.SectionIntro,
	"end":          model.SectionOutro,
}

// NormalizeLabel maps a raw analyzer label to a section label.
func NormalizeLabel(raw string) (model.SectionLabel, bool) {
	label, ok := labelAliases[strings.ToLower(strings.TrimSpace(raw))]
	return label, ok
}

// Normalize validates raw analyzer sections and names them label+occurrence
// ("chorus1", "chorus2") in chronological order.
func Normalize(raw []model.RawSection) ([]Section, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrMalformedAnalysis)
	}

	counts := make(map[model.SectionLabel]int)
	sections := make([]Section, 0, len(raw))

	for i, r := range raw {
		label, ok := NormalizeLabel(r.Label)
		if !ok {
			return nil, fmt.Errorf("%w: section %d has unknown label %q", ErrMalformedAnalysis, i, r.Label)
		}
		if math.IsNaN(r.Start) || math.IsNaN(r.End) || math.IsInf(r.Start, 0) || math.IsInf(r.End, 0) {
			return nil, fmt.Errorf("%w: section %d has a non-finite bound", ErrMalformedAnalysis, i)
		}
		if r.Start < 0 {
			return nil, fmt.Errorf("%w: section %d starts before zero", ErrMalformedAnalysis, i)
		}
		if r.Start >= r.End {
			return nil, fmt.Errorf("%w: section %d has start %.3f >= end %.3f", ErrMalformedAnalysis, i, r.Start, r.End)
		}
		if i > 0 {
			prev := raw[i-1]
			if r.Start < prev.Start {
				return nil, fmt.Errorf("%w: section %d is out of order", ErrMalformedAnalysis, i)
			}
			if r.Start < prev.End-boundaryEpsilon {
				return nil, fmt.Errorf("%w: section %d overlaps section %d", ErrMalformedAnalysis, i, i-1)
			}
		}

		counts[label]++
		sections = append(sections, Section{
			Name:  fmt.Sprintf("%s%d", label, counts[label]),
			Label: label,
			Start: r.Start,
			End:   r.End,
			Index: i,
		})
	}

	return sections, nil
}

// SectionNames returns the names of sections in the given order.
func SectionNames(sections []Section) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}
