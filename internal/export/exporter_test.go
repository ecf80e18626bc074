package export

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clipsaw/internal/config"
	"clipsaw/internal/segmenter"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testConfig() *config.Config {
	return config.Default()
}

func TestPadSegmentClampsToMedia(t *testing.T) {
	seg := segmenter.Segment{Start: 200 * time.Millisecond, End: 59 * time.Second}
	start, end := padSegment(seg, 500*time.Millisecond, 59200*time.Millisecond)

	if start != 0 {
		t.Errorf("start should clamp to zero, got %v", start)
	}
	if end != 59200*time.Millisecond {
		t.Errorf("end should clamp to media duration, got %v", end)
	}
}

func TestPadSegmentInterior(t *testing.T) {
	seg := segmenter.Segment{Start: 10 * time.Second, End: 20 * time.Second}
	start, end := padSegment(seg, 500*time.Millisecond, time.Minute)

	if start != 9500*time.Millisecond || end != 20500*time.Millisecond {
		t.Errorf("unexpected padding: [%v, %v)", start, end)
	}
}

func TestPadSegmentNoMargin(t *testing.T) {
	seg := segmenter.Segment{Start: 5 * time.Second, End: 15 * time.Second}
	start, end := padSegment(seg, 0, time.Minute)

	if start != seg.Start || end != seg.End {
		t.Errorf("zero margin must not move boundaries: [%v, %v)", start, end)
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Launch Rocket Space", "Launch_Rocket_Space"},
		{"weird: chars / here!", "weird_chars_here"},
		{"  ", "clip"},
		{"já_está-ok", "já_está-ok"},
	}
	for _, c := range cases {
		if got := sanitizeTitle(c.in); got != c.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeTitleTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	if got := sanitizeTitle(long); len(got) != 60 {
		t.Errorf("expected 60 chars, got %d", len(got))
	}
}

func TestSanitizeTitleTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ç", 200)
	got := sanitizeTitle(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if utf8.RuneCountInString(got) != 60 {
		t.Errorf("expected 60 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestClipFileName(t *testing.T) {
	e := &Exporter{}
	clip := &Clip{
		ID:    uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		Index: 7,
		Title: "Launch Rocket",
	}

	name := e.clipFileName(clip)
	if name != "007_Launch_Rocket_a1b2c3d4.mp4" {
		t.Errorf("unexpected file name: %q", name)
	}
}

func TestOutputDirsRelativeToSource(t *testing.T) {
	e := New(testLogger(), testConfig(), nil, nil)
	plain, subtitled := e.outputDirs("/videos/stream.mp4")

	if plain != filepath.Join("/videos", "clips_plain") {
		t.Errorf("unexpected plain dir: %q", plain)
	}
	if subtitled != filepath.Join("/videos", "clips_subtitled") {
		t.Errorf("unexpected subtitled dir: %q", subtitled)
	}
}

func TestOutputDirsAbsoluteUnchanged(t *testing.T) {
	cfg := testConfig()
	cfg.Export.PlainDir = "/out/plain"
	cfg.Export.SubtitledDir = "/out/sub"

	e := New(testLogger(), cfg, nil, nil)
	plain, subtitled := e.outputDirs("/videos/stream.mp4")

	if plain != "/out/plain" || subtitled != "/out/sub" {
		t.Errorf("absolute dirs must pass through: %q, %q", plain, subtitled)
	}
}
