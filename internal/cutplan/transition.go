package cutplan

import (
	"fmt"
	"math"
	"sort"

	"github.com/choreosync/api/internal/model"
)

// BeatGrid is the sorted list of beat timestamps used to snap joins.
type BeatGrid struct {
	Beats []float64
	BPM   float64
}

// NewBeatGrid builds a grid from an analysis, falling back to downbeats when no
// beats were detected.
func NewBeatGrid(analysis model.SongAnalysis) BeatGrid {
	src := analysis.Beats
	if len(src) == 0 {
		src = analysis.Downbeats
	}
	beats := append([]float64(nil), src...)
	sort.Float64s(beats)
	return BeatGrid{Beats: beats, BPM: analysis.BPM}
}

// Period returns the beat length in seconds, from the BPM when known and from the
// median beat spacing otherwise. Zero means the grid cannot be used.
func (g BeatGrid) Period() float64 {
	if g.BPM > 0 {
		return 60 / g.BPM
	}
	if len(g.Beats) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(g.Beats)-1)
	for i := 1; i < len(g.Beats); i++ {
		gaps = append(gaps, g.Beats[i]-g.Beats[i-1])
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 0 {
		return (gaps[mid-1] + gaps[mid]) / 2
	}
	return gaps[mid]
}

// CountIn returns the number of beats in [start, end].
func (g BeatGrid) CountIn(start, end float64) int {
	lo := sort.SearchFloat64s(g.Beats, start)
	hi := sort.Search(len(g.Beats), func(i int) bool { return g.Beats[i] > end })
	return hi - lo
}

// nearestAfter returns the beat closest to t among beats strictly after floor.
// Ties resolve to the earlier beat.
func (g BeatGrid) nearestAfter(t, floor float64) (float64, bool) {
	i := sort.SearchFloat64s(g.Beats, t)
	best, found := 0.0, false
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(g.Beats) || g.Beats[j] <= floor {
			continue
		}
		if !found || math.Abs(g.Beats[j]-t) < math.Abs(best-t) {
			best, found = g.Beats[j], true
		}
	}
	return best, found
}

// atOrBefore returns the latest beat in (floor, t].
func (g BeatGrid) atOrBefore(t, floor float64) (float64, bool) {
	i := sort.Search(len(g.Beats), func(i int) bool { return g.Beats[i] > t })
	if i == 0 || g.Beats[i-1] <= floor {
		return 0, false
	}
	return g.Beats[i-1], true
}

// Transitions is the selection with beat-snapped play spans and join points.
type Transitions struct {
	Sections  []model.SectionRef
	Points    []float64
	Crossfade float64
}

// PlanTransitions snaps each join between consecutive selected sections to the
// beat nearest the outgoing section's end. A join that lands after that end
// extends the outgoing section and delays the incoming one by the same amount;
// if that would leave the incoming section shorter than FloorBeats beats plus the
// crossfade, the join snaps back to the last beat at or before the end instead.
// The first start and the last end are never moved.
//
// Every section keeps at least FloorBeats beats outside its crossfades. A middle
// section takes part in two of them. The crossfade shrinks to fit the shortest
// span, down to MinCrossfade; below that the grid is insufficient.
func PlanTransitions(selected []Section, grid BeatGrid, opts Options) (*Transitions, error) {
	period := grid.Period()
	if period <= 0 {
		return nil, fmt.Errorf("%w: no usable beat period", ErrInsufficientBeatGrid)
	}

	for _, s := range selected {
		if n := grid.CountIn(s.Start, s.End); n < 2 {
			return nil, fmt.Errorf("%w: %q has %d beats", ErrInsufficientBeatGrid, s.Name, n)
		}
	}

	crossfade := clamp(opts.CrossfadeBeats*period, opts.MinCrossfade, opts.MaxCrossfade)
	keep := opts.FloorBeats * period
	floor := keep + crossfade

	refs := make([]model.SectionRef, len(selected))
	for i, s := range selected {
		refs[i] = model.SectionRef{
			Name:      s.Name,
			Label:     s.Label,
			Start:     s.Start,
			End:       s.End,
			PlayStart: s.Start,
			PlayEnd:   s.End,
		}
	}

	points := make([]float64, 0, len(refs)-1)
	for i := 0; i+1 < len(refs); i++ {
		out, in := &refs[i], &refs[i+1]
		boundary := out.End

		point, ok := grid.nearestAfter(boundary, out.PlayStart)
		if ok && point > boundary && in.PlayEnd-(in.PlayStart+point-boundary) < floor {
			point, ok = grid.atOrBefore(boundary, out.PlayStart)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no beat to join %q into %q", ErrInsufficientBeatGrid, out.Name, in.Name)
		}

		out.PlayEnd = point
		if point > boundary {
			in.PlayStart += point - boundary
		}
		points = append(points, point)
	}

	crossfade, err := fitCrossfade(refs, crossfade, keep, opts.MinCrossfade)
	if err != nil {
		return nil, err
	}

	return &Transitions{Sections: refs, Points: points, Crossfade: crossfade}, nil
}

// fitCrossfade returns the longest crossfade, up to want, that leaves every
// section keep seconds of its own.
func fitCrossfade(refs []model.SectionRef, want, keep, minCrossfade float64) (float64, error) {
	if len(refs) < 2 {
		return want, nil
	}

	crossfade, shortest := want, ""
	for i, r := range refs {
		joins := 2.0
		if i == 0 || i == len(refs)-1 {
			joins = 1
		}
		if fit := (r.PlayEnd - r.PlayStart - keep) / joins; fit < crossfade {
			crossfade, shortest = fit, r.Name
		}
	}

	if crossfade < 0 || crossfade < minCrossfade {
		return 0, fmt.Errorf("%w: %q is too short to crossfade", ErrInsufficientBeatGrid, shortest)
	}
	return crossfade, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
