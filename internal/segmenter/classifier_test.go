package segmenter

import (
	"testing"
	"time"

	"clipsaw/internal/audio"
)

// framesFromEnergies builds contiguous frames of the given width with the
// provided per-frame energies.
func framesFromEnergies(width time.Duration, energies ...float64) []audio.Frame {
	frames := make([]audio.Frame, len(energies))
	for i, e := range energies {
		frames[i] = audio.Frame{
			Start:  time.Duration(i) * width,
			End:    time.Duration(i+1) * width,
			Energy: e,
		}
	}
	return frames
}

func checkPartition(t *testing.T, mask Mask, total time.Duration) {
	t.Helper()
	if len(mask) == 0 {
		t.Fatal("mask is empty")
	}
	if mask[0].Start != 0 {
		t.Errorf("mask must start at 0, got %v", mask[0].Start)
	}
	for i, s := range mask {
		if s.End <= s.Start {
			t.Errorf("span %d has non-positive width: [%v,%v)", i, s.Start, s.End)
		}
		if i > 0 && s.Start != mask[i-1].End {
			t.Errorf("gap or overlap between span %d and %d: %v != %v",
				i-1, i, mask[i-1].End, s.Start)
		}
		if i > 0 && s.Active == mask[i-1].Active {
			t.Errorf("spans %d and %d not coalesced", i-1, i)
		}
	}
	if mask.Duration() != total {
		t.Errorf("mask must cover full duration: %v != %v", mask.Duration(), total)
	}
}

func TestClassifyThreshold(t *testing.T) {
	frames := framesFromEnergies(time.Second, 0.5, 0.001, 0.001, 0.8)
	mask := Classify(frames, 0.01, time.Second)

	checkPartition(t, mask, 4*time.Second)
	want := Mask{
		{0, 1 * time.Second, true},
		{1 * time.Second, 3 * time.Second, false},
		{3 * time.Second, 4 * time.Second, true},
	}
	if len(mask) != len(want) {
		t.Fatalf("expected %d spans, got %d: %+v", len(want), len(mask), mask)
	}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, mask[i], want[i])
		}
	}
}

func TestClassifyThresholdIsInclusive(t *testing.T) {
	// energy exactly at the threshold counts as active
	frames := framesFromEnergies(time.Second, 0.01)
	mask := Classify(frames, 0.01, time.Second)
	if !mask[0].Active {
		t.Error("frame at threshold should be active")
	}
}

func TestClassifyMergesShortDropouts(t *testing.T) {
	// 0.5s silent dropout inside speech with min silence 1s disappears
	frames := framesFromEnergies(500*time.Millisecond,
		0.5, 0.5, 0.001, 0.5, 0.5)
	mask := Classify(frames, 0.01, time.Second)

	checkPartition(t, mask, 2500*time.Millisecond)
	if len(mask) != 1 || !mask[0].Active {
		t.Fatalf("expected one active span, got %+v", mask)
	}
}

func TestClassifyKeepsGapAtExactMinSilence(t *testing.T) {
	// a silent run of exactly min silence is a real pause (inclusive bound)
	frames := framesFromEnergies(500*time.Millisecond,
		0.5, 0.001, 0.001, 0.5)
	mask := Classify(frames, 0.01, time.Second)

	if len(mask) != 3 {
		t.Fatalf("expected active/silent/active, got %+v", mask)
	}
	if mask[1].Active {
		t.Error("gap of exactly min silence must stay silent")
	}
}

func TestClassifyKeepsEdgeSilence(t *testing.T) {
	// short leading/trailing silence is not a dropout inside speech
	frames := framesFromEnergies(200*time.Millisecond,
		0.001, 0.5, 0.5, 0.001)
	mask := Classify(frames, 0.01, time.Second)

	checkPartition(t, mask, 800*time.Millisecond)
	if len(mask) != 3 {
		t.Fatalf("expected silent/active/silent, got %+v", mask)
	}
	if mask[0].Active || mask[2].Active {
		t.Error("edge silence must stay silent")
	}
}

func TestClassifyAllSilent(t *testing.T) {
	frames := framesFromEnergies(time.Second, 0.001, 0.002, 0.001)
	mask := Classify(frames, 0.01, time.Second)

	checkPartition(t, mask, 3*time.Second)
	for _, s := range mask {
		if s.Active {
			t.Errorf("expected fully silent mask, got %+v", mask)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	if mask := Classify(nil, 0.01, time.Second); mask != nil {
		t.Errorf("expected nil mask for no frames, got %+v", mask)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	frames := framesFromEnergies(250*time.Millisecond,
		0.2, 0.001, 0.3, 0.001, 0.001, 0.001, 0.001, 0.4, 0.1, 0.001)

	first := Classify(frames, 0.05, time.Second)
	for i := 0; i < 10; i++ {
		again := Classify(frames, 0.05, time.Second)
		if len(again) != len(first) {
			t.Fatal("classification is not deterministic")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatal("classification is not deterministic")
			}
		}
	}
}
