package segmenter

import (
	"testing"
)

func TestSelectKeepsHighestScoresInTimeOrder(t *testing.T) {
	// scores [0.9, 0.3, 0.7] at t1<t2<t3 with a cap of 2: keep t1 and t3,
	// returned ordered by time
	segs := []Segment{
		{Start: sec(0), End: sec(10), Score: 0.9},
		{Start: sec(20), End: sec(30), Score: 0.3},
		{Start: sec(40), End: sec(50), Score: 0.7},
	}

	out := Select(segs, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	if out[0].Start != sec(0) || out[1].Start != sec(40) {
		t.Errorf("expected segments at t1 and t3, got %+v", out)
	}
}

func TestSelectNoCap(t *testing.T) {
	segs := []Segment{
		{Start: sec(10), End: sec(20), Score: 0.1},
		{Start: sec(0), End: sec(5), Score: 0.2},
	}

	out := Select(segs, 0)
	if len(out) != 2 {
		t.Fatalf("expected all segments, got %d", len(out))
	}
	if out[0].Start != sec(0) {
		t.Errorf("output must be ordered by start time, got %+v", out)
	}
}

func TestSelectEqualScoreEarlierStartWins(t *testing.T) {
	segs := []Segment{
		{Start: sec(0), End: sec(10), Score: 0.5},
		{Start: sec(20), End: sec(30), Score: 0.5},
		{Start: sec(40), End: sec(50), Score: 0.5},
	}

	out := Select(segs, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	if out[0].Start != sec(0) || out[1].Start != sec(20) {
		t.Errorf("equal scores must keep the earlier segments, got %+v", out)
	}
}

func TestSelectEmptyInput(t *testing.T) {
	out := Select(nil, 5)
	if len(out) != 0 {
		t.Errorf("expected empty result, got %+v", out)
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	segs := []Segment{
		{Start: sec(20), End: sec(30), Score: 0.3},
		{Start: sec(0), End: sec(10), Score: 0.9},
	}

	_ = Select(segs, 1)
	if segs[0].Start != sec(20) {
		t.Error("Select must not reorder its input")
	}
}

func TestSelectDeterministic(t *testing.T) {
	segs := []Segment{
		{Start: sec(0), End: sec(10), Score: 0.4},
		{Start: sec(15), End: sec(25), Score: 0.4},
		{Start: sec(30), End: sec(40), Score: 0.8},
		{Start: sec(45), End: sec(55), Score: 0.2},
	}

	first := Select(segs, 3)
	for i := 0; i < 5; i++ {
		again := Select(segs, 3)
		for j := range first {
			if again[j] != first[j] {
				t.Fatal("selection is not deterministic")
			}
		}
	}
}
