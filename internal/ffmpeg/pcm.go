package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// AnalysisSampleRate is the rate audio is decoded at for segmentation.
// Energy thresholding needs no more resolution than speech recognition does.
const AnalysisSampleRate = 16000

// ExtractPCM decodes the audio track of the input into raw little-endian
// signed 16-bit mono PCM at the given sample rate. This is the engine's
// input boundary: the returned bytes become the analysis Signal.
func (e *Executor) ExtractPCM(ctx context.Context, input string, sampleRate int) ([]byte, error) {
	if input == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if sampleRate <= 0 {
		sampleRate = AnalysisSampleRate
	}

	e.logger.Info().
		Str("input", input).
		Int("sample_rate", sampleRate).
		Msg("decoding audio stream")

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-f", "s16le",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-",
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("audio decode failed: %s: %w", detail, err)
		}
		return nil, fmt.Errorf("audio decode failed: %w", err)
	}

	e.logger.Debug().
		Int("bytes", stdout.Len()).
		Msg("audio stream decoded")

	return stdout.Bytes(), nil
}

// WAVFormat defines audio extraction format options for file output
type WAVFormat struct {
	SampleRate int
	Channels   int
}

// TranscriptionFormat returns the format speech-to-text models expect:
// 16 kHz mono
func TranscriptionFormat() WAVFormat {
	return WAVFormat{SampleRate: 16000, Channels: 1}
}

// ExtractWAV writes the audio stream of the input to a WAV file, used to
// hand a clip's audio to the transcription collaborator
func (e *Executor) ExtractWAV(ctx context.Context, input, output string, format WAVFormat) error {
	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Int("sample_rate", format.SampleRate).
		Msg("extracting audio")

	args := []string{
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(format.SampleRate),
		"-ac", strconv.Itoa(format.Channels),
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio extraction")
		},
	}

	return e.Run(ctx, opts)
}
