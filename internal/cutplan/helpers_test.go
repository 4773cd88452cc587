package cutplan

import (
	"reflect"
	"testing"

	"github.com/choreosync/api/internal/model"
)

// referenceSections is intro 0-20, verse 20-50, chorus 50-80, verse 80-110,
// chorus 110-140, outro 140-150.
func referenceSections() []model.RawSection {
	return []model.RawSection{
		{Label: "intro", Start: 0, End: 20},
		{Label: "verse", Start: 20, End: 50},
		{Label: "chorus", Start: 50, End: 80},
		{Label: "verse", Start: 80, End: 110},
		{Label: "chorus", Start: 110, End: 140},
		{Label: "outro", Start: 140, End: 150},
	}
}

// beatsEvery returns a regular grid from 0 to end inclusive.
func beatsEvery(step, end float64) []float64 {
	var beats []float64
	for i := 0; float64(i)*step <= end+1e-9; i++ {
		beats = append(beats, float64(i)*step)
	}
	return beats
}

// referenceAnalysis is the reference song at 120 BPM.
func referenceAnalysis() model.SongAnalysis {
	return model.SongAnalysis{
		Sections:  referenceSections(),
		Beats:     beatsEvery(0.5, 150),
		Downbeats: beatsEvery(2, 150),
		BPM:       120,
	}
}

func mustNormalize(t *testing.T, raw []model.RawSection) []Section {
	t.Helper()
	sections, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return sections
}

func tagsOf(pairs ...string) []model.TagAssignment {
	var out []model.TagAssignment
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.TagAssignment{Section: pairs[i], Tag: model.SectionTag(pairs[i+1])})
	}
	return out
}

func selectNames(t *testing.T, raw []model.RawSection, tags []model.TagAssignment, target float64) ([]string, *Selection) {
	t.Helper()
	sections := mustNormalize(t, raw)
	tagging, _ := ResolveTags(sections, tags)
	sel, err := Select(sections, tagging, target)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	return SectionNames(sel.Sections), sel
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sections = %v, want %v", got, want)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
