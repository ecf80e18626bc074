package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Signal is a decoded mono audio stream: amplitude samples in [-1,1] at a
// fixed sample rate. It is created once per pipeline run and never mutated.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the total duration covered by the samples.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return sampleTime(len(s.Samples), s.SampleRate)
}

// sampleTime converts a sample index to its presentation time.
func sampleTime(index, rate int) time.Duration {
	return time.Duration(index) * time.Second / time.Duration(rate)
}

// FromPCM16 builds a Signal from little-endian signed 16-bit mono PCM, the
// format the ffmpeg decode boundary emits.
func FromPCM16(data []byte, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, &DecodeError{Reason: fmt.Sprintf("invalid sample rate %d", sampleRate)}
	}
	if len(data) == 0 {
		return Signal{}, &DecodeError{Reason: "empty audio stream"}
	}
	if len(data)%2 != 0 {
		return Signal{}, &DecodeError{Reason: "truncated 16-bit sample"}
	}

	samples := make([]float64, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float64(v) / 32768.0
	}

	return Signal{Samples: samples, SampleRate: sampleRate}, nil
}

// DecodeError reports an unreadable or empty audio input. It is fatal to the
// run; retries belong to the caller.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio decode failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("audio decode failed: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
