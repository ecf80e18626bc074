package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"clipsaw/pkg/util"
)

// ClipOptions defines clip extraction parameters
type ClipOptions struct {
	Start        time.Duration
	End          time.Duration
	Output       string
	VideoCodec   string
	AudioCodec   string
	AudioBitrate string
	CRF          int
	Preset       string
	ProgressFunc ProgressFunc
}

// ExtractClip cuts a segment from a video, re-encoding for frame-accurate
// boundaries and a web-playable result
func (e *Executor) ExtractClip(ctx context.Context, input string, opts ClipOptions) error {
	duration := opts.End - opts.Start
	if duration <= 0 {
		return fmt.Errorf("invalid clip duration: end must be after start")
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Dur("start", opts.Start).
		Dur("duration", duration).
		Msg("extracting clip")

	videoCodec := opts.VideoCodec
	if videoCodec == "" {
		videoCodec = DefaultVideoCodec
	}
	audioCodec := opts.AudioCodec
	if audioCodec == "" {
		audioCodec = DefaultAudioCodec
	}
	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	args := []string{
		"-ss", util.FormatDuration(opts.Start),
		"-i", input,
		"-t", util.FormatDuration(duration),
		"-c:v", videoCodec,
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-c:a", audioCodec,
	}
	if opts.AudioBitrate != "" {
		args = append(args, "-b:a", opts.AudioBitrate)
	}
	args = append(args, "-movflags", "+faststart", opts.Output)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("clip extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("clip extraction failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("clip extraction complete")
	return nil
}

// BurnSubtitles renders an SRT file onto a clip. The audio stream is copied
// untouched so subtitle burning never degrades it.
func (e *Executor) BurnSubtitles(ctx context.Context, input, srtPath, output string, crf int, preset string, progressFunc ProgressFunc) error {
	if srtPath == "" {
		return fmt.Errorf("subtitle path is required")
	}
	if crf == 0 {
		crf = DefaultCRF
	}
	if preset == "" {
		preset = DefaultPreset
	}

	e.logger.Info().
		Str("input", input).
		Str("subtitles", srtPath).
		Str("output", output).
		Msg("burning subtitles")

	filter := NewFilterBuilder().Subtitles(srtPath).Build()

	args := []string{
		"-i", input,
		"-vf", filter,
		"-c:v", DefaultVideoCodec,
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-c:a", "copy",
		"-movflags", "+faststart",
		output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: progressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("subtitle burn")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("subtitle burn failed: %w", err)
	}
	return nil
}
