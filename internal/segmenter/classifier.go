package segmenter

import (
	"time"

	"clipsaw/internal/audio"
)

// Classify labels each energy frame active or silent and builds the activity
// mask. Silent runs shorter than minSilence that sit between two active runs
// are folded back into activity, so short dropouts inside speech do not
// fragment a segment. This runs before any segment boundary is computed.
func Classify(frames []audio.Frame, threshold float64, minSilence time.Duration) Mask {
	if len(frames) == 0 {
		return nil
	}

	mask := make(Mask, 0, len(frames))
	for _, f := range frames {
		mask = appendSpan(mask, Span{
			Start:  f.Start,
			End:    f.End,
			Active: f.Energy >= threshold,
		})
	}

	return mergeShortDropouts(mask, minSilence)
}

// appendSpan adds a span, coalescing it with the previous one when the
// activity state matches.
func appendSpan(mask Mask, s Span) Mask {
	if n := len(mask); n > 0 && mask[n-1].Active == s.Active {
		mask[n-1].End = s.End
		return mask
	}
	return append(mask, s)
}

// mergeShortDropouts relabels interior silent spans shorter than minSilence
// as active. Leading and trailing silence is never speech, so it stays
// silent regardless of length. A silent span of exactly minSilence is a real
// pause and is kept.
func mergeShortDropouts(mask Mask, minSilence time.Duration) Mask {
	merged := make(Mask, 0, len(mask))
	for i, s := range mask {
		interior := i > 0 && i < len(mask)-1
		if !s.Active && interior && s.End-s.Start < minSilence {
			s.Active = true
		}
		merged = appendSpan(merged, s)
	}
	return merged
}
