package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"clipsaw/internal/audio"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr)
}

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

// generateToneVideo writes a short test video with a sine audio track
func generateToneVideo(t *testing.T, seconds int) string {
	t.Helper()
	dur := strconv.Itoa(seconds)
	path := filepath.Join(t.TempDir(), "tone.mp4")
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration="+dur,
		"-f", "lavfi", "-i", "testsrc=duration="+dur+":size=320x240:rate=30",
		"-pix_fmt", "yuv420p", "-shortest", "-y", path)
	if err := cmd.Run(); err != nil {
		t.Skipf("could not generate test video: %v", err)
	}
	return path
}

func TestFilterBuilder(t *testing.T) {
	filter := NewFilterBuilder().Scale(1920, 1080).Custom("fps=30").Build()
	expected := "scale=1920:1080,fps=30"
	if filter != expected {
		t.Errorf("expected %q, got %q", expected, filter)
	}
}

func TestFilterBuilderEmpty(t *testing.T) {
	if filter := NewFilterBuilder().Build(); filter != "" {
		t.Errorf("expected empty string, got %q", filter)
	}
}

func TestFilterBuilderSubtitlesEscaping(t *testing.T) {
	filter := NewFilterBuilder().Subtitles("a:b'c.srt").Build()
	expected := `subtitles='a\:b\'c.srt'`
	if filter != expected {
		t.Errorf("expected %q, got %q", expected, filter)
	}

	if filter := NewFilterBuilder().Subtitles("").Build(); filter != "" {
		t.Errorf("empty path must add no filter, got %q", filter)
	}
}

func TestFilterBuilderIgnoresInvalidScale(t *testing.T) {
	if filter := NewFilterBuilder().Scale(0, 1080).Build(); filter != "" {
		t.Errorf("expected no filter for invalid scale, got %q", filter)
	}
}

func TestExecutorCreation(t *testing.T) {
	skipIfNoFFmpeg(t)

	exec, err := New(testLogger(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	if exec.ffmpegPath == "" || exec.ffprobePath == "" {
		t.Error("binary paths should be resolved")
	}
}

func TestProbeVideoInvalidFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(testLogger(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()
	if _, err := e.ProbeVideo(ctx, "nonexistent.mp4"); err == nil {
		t.Error("ProbeVideo should fail for non-existent file")
	}

	invalidPath := filepath.Join(t.TempDir(), "invalid.txt")
	os.WriteFile(invalidPath, []byte("not a video"), 0644)
	if _, err := e.ProbeVideo(ctx, invalidPath); err == nil {
		t.Error("ProbeVideo should fail for invalid video file")
	}
}

func TestExtractPCMRoundTrip(t *testing.T) {
	skipIfNoFFmpeg(t)

	videoPath := generateToneVideo(t, 2)
	e, err := New(testLogger(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	data, err := e.ExtractPCM(context.Background(), videoPath, AnalysisSampleRate)
	if err != nil {
		t.Fatalf("ExtractPCM failed: %v", err)
	}

	sig, err := audio.FromPCM16(data, AnalysisSampleRate)
	if err != nil {
		t.Fatalf("decoded PCM should build a signal: %v", err)
	}

	// a 2s tone at 16kHz should land near 32000 samples
	if len(sig.Samples) < 30000 || len(sig.Samples) > 34000 {
		t.Errorf("unexpected sample count %d for 2s of audio", len(sig.Samples))
	}

	// the sine carries real energy
	var peak float64
	for _, v := range sig.Samples {
		if v > peak {
			peak = v
		}
	}
	if peak < 0.1 {
		t.Errorf("expected audible tone, peak amplitude %f", peak)
	}
}

func TestExtractPCMMissingInput(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(testLogger(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	if _, err := e.ExtractPCM(context.Background(), "nonexistent.mp4", 0); err == nil {
		t.Error("ExtractPCM should fail for missing input")
	}
	if _, err := e.ExtractPCM(context.Background(), "", 0); err == nil {
		t.Error("ExtractPCM should fail for empty path")
	}
}
