package transcribe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"clipsaw/pkg/util"
)

// whisper prints cue lines like "[00:00.000 --> 00:04.520]  some text"
var cueLine = regexp.MustCompile(`^\[([0-9:.]+) --> ([0-9:.]+)\]\s*(.*)$`)

// WhisperCLI shells out to a whisper command-line binary. Model choice and
// tuning stay with the caller's configuration.
type WhisperCLI struct {
	logger   zerolog.Logger
	binary   string
	model    string
	language string
}

// NewWhisperCLI creates a transcriber backed by a whisper binary
func NewWhisperCLI(logger zerolog.Logger, binary, model, language string) (*WhisperCLI, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q not found in PATH: %w", binary, err)
	}

	return &WhisperCLI{
		logger:   logger.With().Str("component", "whisper").Logger(),
		binary:   path,
		model:    model,
		language: language,
	}, nil
}

// Transcribe runs the whisper binary on a WAV file and parses its cue output
func (w *WhisperCLI) Transcribe(ctx context.Context, wavPath string) (Transcript, error) {
	args := []string{wavPath, "--model", w.model, "--output_format", "txt", "--fp16", "False"}
	if w.language != "" {
		args = append(args, "--language", w.language)
	}

	w.logger.Info().
		Str("audio", wavPath).
		Str("model", w.model).
		Msg("transcribing clip")

	cmd := exec.CommandContext(ctx, w.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Transcript{}, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return Transcript{}, fmt.Errorf("transcription failed: %s: %w", detail, err)
		}
		return Transcript{}, fmt.Errorf("transcription failed: %w", err)
	}

	tr, err := parseCues(&stdout)
	if err != nil {
		return Transcript{}, err
	}

	w.logger.Debug().Int("lines", len(tr.Lines)).Msg("transcription complete")
	return tr, nil
}

// parseCues extracts timed lines from whisper stdout, skipping anything that
// is not a cue
func parseCues(r *bytes.Buffer) (Transcript, error) {
	var tr Transcript

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := cueLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}

		start, err := util.ParseTimestamp(m[1])
		if err != nil {
			continue
		}
		end, err := util.ParseTimestamp(m[2])
		if err != nil || end <= start {
			continue
		}

		text := strings.TrimSpace(m[3])
		if text == "" {
			continue
		}

		tr.Lines = append(tr.Lines, Line{Start: start, End: end, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return Transcript{}, fmt.Errorf("failed to read transcription output: %w", err)
	}

	return tr, nil
}
