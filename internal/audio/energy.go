package audio

import (
	"math"
	"time"
)

// Mode selects the per-frame energy aggregate.
type Mode int

const (
	// RMS is root-mean-square amplitude per frame
	RMS Mode = iota
	// MeanAbs is mean absolute amplitude per frame
	MeanAbs
)

// Frame summarizes a fixed-width window of the signal. Frames are contiguous
// and non-overlapping: Frames()[i].End == Frames()[i+1].Start.
type Frame struct {
	Start  time.Duration
	End    time.Duration
	Energy float64
}

// Frames slices the signal into windows of the given width and aggregates
// each into a single energy value. The final partial window is shortened to
// the remaining duration, never padded with synthetic samples.
func Frames(sig Signal, width time.Duration, mode Mode) ([]Frame, error) {
	if len(sig.Samples) == 0 || sig.SampleRate <= 0 {
		return nil, &DecodeError{Reason: "empty audio stream"}
	}
	if width <= 0 {
		return nil, &DecodeError{Reason: "non-positive frame width"}
	}

	perFrame := int(float64(sig.SampleRate) * width.Seconds())
	if perFrame < 1 {
		perFrame = 1
	}

	frames := make([]Frame, 0, len(sig.Samples)/perFrame+1)
	for start := 0; start < len(sig.Samples); start += perFrame {
		end := start + perFrame
		if end > len(sig.Samples) {
			end = len(sig.Samples)
		}

		frames = append(frames, Frame{
			Start:  sampleTime(start, sig.SampleRate),
			End:    sampleTime(end, sig.SampleRate),
			Energy: aggregate(sig.Samples[start:end], mode),
		})
	}

	return frames, nil
}

func aggregate(samples []float64, mode Mode) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	switch mode {
	case MeanAbs:
		for _, v := range samples {
			sum += math.Abs(v)
		}
		return sum / float64(len(samples))
	default:
		for _, v := range samples {
			sum += v * v
		}
		return math.Sqrt(sum / float64(len(samples)))
	}
}
