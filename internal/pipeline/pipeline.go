// Package pipeline wires the segmentation stages into a single synchronous
// run per video: decode → energy frames → activity mask → segments →
// selection. Runs share no state; processing several videos concurrently
// needs no locking.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clipsaw/internal/audio"
	"clipsaw/internal/config"
	"clipsaw/internal/ffmpeg"
	"clipsaw/internal/segmenter"
)

// Pipeline runs the analysis stages against real video files through the
// ffmpeg decode boundary.
type Pipeline struct {
	logger zerolog.Logger
	cfg    *config.Config
	ffmpeg *ffmpeg.Executor
}

// New validates the configuration eagerly and prepares a pipeline
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exec, err := ffmpeg.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	return &Pipeline{
		logger: logger.With().Str("component", "pipeline").Logger(),
		cfg:    cfg,
		ffmpeg: exec,
	}, nil
}

// Executor exposes the ffmpeg collaborator for the export stage
func (p *Pipeline) Executor() *ffmpeg.Executor {
	return p.ffmpeg
}

// Analyze decodes the audio track of the input video and runs the full
// segmentation over it
func (p *Pipeline) Analyze(ctx context.Context, input string) (*Result, error) {
	if input == "" {
		return nil, &audio.DecodeError{Reason: "empty input path"}
	}

	p.logger.Info().Str("input", input).Msg("starting analysis")

	info, err := p.ffmpeg.ProbeVideo(ctx, input)
	if err != nil {
		return nil, &audio.DecodeError{Reason: "probe failed", Err: err}
	}
	if !info.HasAudio {
		return nil, &audio.DecodeError{Reason: "input has no audio stream"}
	}

	pcm, err := p.ffmpeg.ExtractPCM(ctx, input, ffmpeg.AnalysisSampleRate)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &audio.DecodeError{Reason: "audio decode failed", Err: err}
	}

	sig, err := audio.FromPCM16(pcm, ffmpeg.AnalysisSampleRate)
	if err != nil {
		return nil, err
	}

	result, err := AnalyzeSignal(p.cfg, sig)
	if err != nil {
		return nil, err
	}
	result.Source = input

	p.logger.Info().
		Str("run_id", result.RunID.String()).
		Dur("duration", result.Duration).
		Int("segments", len(result.Segments)).
		Bool("empty", result.Empty).
		Msg("analysis complete")

	return result, nil
}

// AnalyzeSignal is the pure pipeline entry: it runs the four segmentation
// stages over an already-decoded signal. Deterministic apart from the run
// identifier.
func AnalyzeSignal(cfg *config.Config, sig audio.Signal) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	frames, err := audio.Frames(sig, frameWidth(cfg), energyMode(cfg))
	if err != nil {
		return nil, err
	}

	opts := segmentationOptions(cfg)
	mask := segmenter.Classify(frames, opts.SilenceThreshold, opts.MinSilence)
	candidates := segmenter.Build(mask, frames, opts)
	final := segmenter.Select(candidates, opts.MaxSegments)

	return &Result{
		RunID:    uuid.New(),
		Duration: sig.Duration(),
		Segments: final,
		Empty:    len(final) == 0,
	}, nil
}

func frameWidth(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Segmentation.FrameWidth * float64(time.Second))
}

func energyMode(cfg *config.Config) audio.Mode {
	if cfg.Segmentation.EnergyMode == config.EnergyModeMeanAbs {
		return audio.MeanAbs
	}
	return audio.RMS
}

func segmentationOptions(cfg *config.Config) segmenter.Options {
	s := cfg.Segmentation
	return segmenter.Options{
		SilenceThreshold: s.SilenceThreshold,
		MinSilence:       time.Duration(s.MinSilenceDuration * float64(time.Second)),
		MinClip:          time.Duration(s.MinClipDuration * float64(time.Second)),
		MaxClip:          time.Duration(s.MaxClipDuration * float64(time.Second)),
		SplitTolerance:   time.Duration(s.SplitTolerance * float64(time.Second)),
		MaxSegments:      s.MaxSegments,
	}
}
