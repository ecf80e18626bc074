// Package segmenter turns a frame-level audio energy signal into a final
// list of clip segments. The stages are pure and deterministic: identical
// inputs always produce identical output.
package segmenter

import "time"

// Options configures the segmentation stages. It is derived from the
// application configuration once per run.
type Options struct {
	// SilenceThreshold is the linear amplitude below which a frame is silent
	SilenceThreshold float64

	// MinSilence is the minimum gap length that counts as a real pause.
	// The bound is inclusive: a gap of exactly MinSilence separates.
	MinSilence time.Duration

	MinClip time.Duration
	MaxClip time.Duration

	// SplitTolerance bounds how far before the ideal split point an interior
	// silent span may sit and still be preferred over a hard split
	SplitTolerance time.Duration

	// MaxSegments caps the selector output; 0 means no cap
	MaxSegments int
}

// Span is one element of an activity mask. Spans partition the full input
// duration with no gaps or overlaps.
type Span struct {
	Start  time.Duration
	End    time.Duration
	Active bool
}

// Mask is the ordered activity mask over the full input duration.
type Mask []Span

// Duration returns the total duration covered by the mask.
func (m Mask) Duration() time.Duration {
	if len(m) == 0 {
		return 0
	}
	return m[len(m)-1].End
}

// Segment is a candidate or final clip boundary.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Score float64
}

// Duration returns the segment length.
func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}
