package cutplan

import "github.com/choreosync/api/internal/model"

// Tagging is the resolved view of a song's tag writes.
type Tagging struct {
	// Membership holds MUST, KEEP or SKIP per section name.
	Membership map[string]model.SectionTag
	// Open and Finale name the positioned sections, if any.
	Open   string
	Finale string
}

// Tag returns the membership tag of a section, or "" when untagged.
func (t Tagging) Tag(name string) model.SectionTag {
	return t.Membership[name]
}

// HasPositiveTag reports whether any MUST, KEEP, OPEN or FINALE is present.
// Its presence switches selection from auto to manual mode.
func (t Tagging) HasPositiveTag() bool {
	if t.Open != "" || t.Finale != "" {
		return true
	}
	for _, tag := range t.Membership {
		if tag == model.TagMust || tag == model.TagKeep {
			return true
		}
	}
	return false
}

// ResolveTags replays tag assignments in write order. Membership tags are one per
// section and position tags one per song; in both cases the last write wins.
// Assignments on unknown sections and overwritten position tags produce warnings.
func ResolveTags(sections []Section, assignments []model.TagAssignment) (Tagging, []model.Warning) {
	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s.Name] = true
	}

	tagging := Tagging{Membership: make(map[string]model.SectionTag)}
	var warnings []model.Warning

	for _, a := range assignments {
		if !known[a.Section] {
			warnings = append(warnings, malformedTagging("%s tag on unknown section %q ignored", a.Tag, a.Section))
			continue
		}

		switch a.Tag {
		case model.TagMust, model.TagKeep, model.TagSkip:
			tagging.Membership[a.Section] = a.Tag
		case model.TagOpen:
			if tagging.Open != "" && tagging.Open != a.Section {
				warnings = append(warnings, malformedTagging("OPEN moved from %q to %q", tagging.Open, a.Section))
			}
			tagging.Open = a.Section
		case model.TagFinale:
			if tagging.Finale != "" && tagging.Finale != a.Section {
				warnings = append(warnings, malformedTagging("FINALE moved from %q to %q", tagging.Finale, a.Section))
			}
			tagging.Finale = a.Section
		default:
			warnings = append(warnings, malformedTagging("unknown tag %q on %q ignored", a.Tag, a.Section))
		}
	}

	return tagging, warnings
}

// ApplyTagEdit folds one write into a stored assignment list using the same rules
// as ResolveTags, so the list never holds superseded entries. A nil tag clears
// every tag on the section.
func ApplyTagEdit(assignments []model.TagAssignment, section string, tag *model.SectionTag) []model.TagAssignment {
	out := make([]model.TagAssignment, 0, len(assignments)+1)
	for _, a := range assignments {
		switch {
		case tag == nil:
			if a.Section == section {
				continue
			}
		case tag.IsPosition():
			if a.Tag == *tag {
				continue
			}
		default:
			if a.Section == section && !a.Tag.IsPosition() {
				continue
			}
		}
		out = append(out, a)
	}
	if tag != nil {
		out = append(out, model.TagAssignment{Section: section, Tag: *tag})
	}
	return out
}
