package segmenter

import (
	"time"

	"clipsaw/internal/audio"
)

// Build converts an activity mask into final segment boundaries:
//
//  1. collect maximal active runs as raw candidates
//  2. merge candidates separated by silent gaps shorter than MinSilence
//     (before duration filtering, so merging can rescue short fragments)
//  3. discard candidates shorter than MinClip
//  4. split candidates longer than MaxClip, preferring interior silence;
//     an undersized remainder folds into the previous piece when the
//     combined length still fits under MaxClip, otherwise it is discarded
//  5. score each segment with the mean energy of its covered frames
//
// Zero active spans yield an empty list, not an error. Segments never
// overlap and are ordered by start time by construction.
func Build(mask Mask, frames []audio.Frame, opts Options) []Segment {
	raw := activeRuns(mask)
	merged := mergeAcrossShortGaps(raw, opts.MinSilence)

	kept := merged[:0:0]
	for _, c := range merged {
		if c.Duration() >= opts.MinClip {
			kept = append(kept, c)
		}
	}

	var final []Segment
	for _, c := range kept {
		final = append(final, split(c, mask, opts)...)
	}

	for i := range final {
		final[i].Score = meanEnergy(frames, final[i].Start, final[i].End)
	}
	return final
}

// activeRuns collects the maximal active spans as raw candidates.
func activeRuns(mask Mask) []Segment {
	var runs []Segment
	for _, s := range mask {
		if s.Active {
			runs = append(runs, Segment{Start: s.Start, End: s.End})
		}
	}
	return runs
}

// mergeAcrossShortGaps joins adjacent candidates whose separating silent gap
// was too short to count as a real pause. The bound is inclusive: a gap of
// exactly minSilence keeps the boundary.
func mergeAcrossShortGaps(runs []Segment, minSilence time.Duration) []Segment {
	if len(runs) == 0 {
		return nil
	}

	merged := []Segment{runs[0]}
	for _, r := range runs[1:] {
		last := &merged[len(merged)-1]
		if r.Start-last.End < minSilence {
			last.End = r.End
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// split cuts a candidate longer than MaxClip into consecutive sub-segments.
// Each cut prefers the interior silent span whose midpoint is closest to the
// ideal split point, looking back at most SplitTolerance so no sub-segment
// ever exceeds MaxClip, and never past MinClip so the snapped piece stays
// long enough; without such a span it hard-splits at the ideal point. An
// undersized tail is folded into the previous piece when that still fits,
// otherwise dropped.
func split(c Segment, mask Mask, opts Options) []Segment {
	if opts.MaxClip <= 0 || c.Duration() <= opts.MaxClip {
		return []Segment{c}
	}

	var pieces []Segment
	rest := c
	for rest.Duration() > opts.MaxClip {
		ideal := rest.Start + opts.MaxClip
		cut := ideal
		if at, ok := nearestSilence(mask, rest.Start, rest.Start+opts.MinClip, ideal, opts.SplitTolerance); ok {
			cut = at
		}
		pieces = append(pieces, Segment{Start: rest.Start, End: cut})
		rest.Start = cut
	}

	if rest.Duration() >= opts.MinClip {
		return append(pieces, rest)
	}

	// undersized tail
	last := &pieces[len(pieces)-1]
	if rest.End-last.Start <= opts.MaxClip {
		last.End = rest.End
	}
	return pieces
}

// nearestSilence finds the silent span midpoint closest to the ideal cut
// point within (lo, ideal], at most tolerance before it. Midpoints before
// floor are skipped: cutting there would leave a piece shorter than the
// minimum clip duration.
func nearestSilence(mask Mask, lo, floor, ideal, tolerance time.Duration) (time.Duration, bool) {
	var best time.Duration
	found := false

	for _, s := range mask {
		if s.Active {
			continue
		}
		mid := s.Start + (s.End-s.Start)/2
		if mid <= lo || mid < floor || mid > ideal {
			continue
		}
		if ideal-mid > tolerance {
			continue
		}
		if !found || ideal-mid < ideal-best {
			best = mid
			found = true
		}
	}

	return best, found
}

// meanEnergy averages the energy of frames whose midpoint lies inside the
// segment.
func meanEnergy(frames []audio.Frame, start, end time.Duration) float64 {
	var sum float64
	var n int
	for _, f := range frames {
		mid := f.Start + (f.End-f.Start)/2
		if mid >= start && mid < end {
			sum += f.Energy
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
