package segmenter

import "sort"

// Select caps the segment list at maxSegments entries, keeping the highest
// scored ones (equal scores: earlier start wins), and returns the survivors
// re-sorted by start time. A cap of 0 keeps everything. An empty input is a
// normal terminal state and yields an empty result.
func Select(segments []Segment, maxSegments int) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})

	if maxSegments <= 0 || len(out) <= maxSegments {
		return out
	}

	ranked := make([]Segment, len(out))
	copy(ranked, out)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Start < ranked[j].Start
	})
	ranked = ranked[:maxSegments]

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Start < ranked[j].Start
	})
	return ranked
}
