// Package export turns selected segments into clip files on disk. Cutting,
// transcription, and subtitle burning all happen here; the analysis engine
// upstream stays pure.
package export

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clipsaw/internal/config"
	"clipsaw/internal/ffmpeg"
	"clipsaw/internal/segmenter"
	"clipsaw/internal/transcribe"
	"clipsaw/pkg/util"
)

// titleKeywords is how many transcript keywords go into a clip filename.
const titleKeywords = 3

// Clip describes one exported clip.
type Clip struct {
	ID            uuid.UUID
	Index         int
	Start         time.Duration
	End           time.Duration
	Title         string
	PlainPath     string
	SubtitledPath string
	SRTPath       string
}

// ProgressFunc is called after each clip finishes, for progress reporting.
type ProgressFunc func(done, total int, clip Clip)

// Exporter writes clips for a set of segments. A nil Transcriber disables
// transcription and subtitle burning; plain clips are still produced.
type Exporter struct {
	logger      zerolog.Logger
	cfg         *config.Config
	exec        *ffmpeg.Executor
	transcriber transcribe.Transcriber
}

// New creates an exporter around an existing ffmpeg executor.
func New(logger zerolog.Logger, cfg *config.Config, exec *ffmpeg.Executor, transcriber transcribe.Transcriber) *Exporter {
	return &Exporter{
		logger:      logger.With().Str("component", "export").Logger(),
		cfg:         cfg,
		exec:        exec,
		transcriber: transcriber,
	}
}

// Export cuts every segment out of the source video. Plain clips always land
// in the plain directory; when a transcriber is configured and the clip has
// speech, a subtitled copy lands in the subtitled directory too. Both
// directories are created next to the source.
func (e *Exporter) Export(ctx context.Context, source string, videoDuration time.Duration, segments []segmenter.Segment, onProgress ProgressFunc) ([]Clip, error) {
	plainDir, subtitledDir := e.outputDirs(source)
	if err := util.EnsureDir(plainDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if e.transcriber != nil {
		if err := util.EnsureDir(subtitledDir); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	margin := time.Duration(e.cfg.Export.SafetyMargin * float64(time.Second))
	clips := make([]Clip, 0, len(segments))

	for i, seg := range segments {
		if ctx.Err() != nil {
			return clips, ctx.Err()
		}

		start, end := padSegment(seg, margin, videoDuration)
		clip := Clip{
			ID:    uuid.New(),
			Index: i + 1,
			Start: start,
			End:   end,
		}

		if err := e.exportOne(ctx, source, plainDir, subtitledDir, &clip); err != nil {
			return clips, fmt.Errorf("clip %d failed: %w", clip.Index, err)
		}

		clips = append(clips, clip)
		if onProgress != nil {
			onProgress(i+1, len(segments), clip)
		}
	}

	e.logger.Info().
		Int("clips", len(clips)).
		Str("source", source).
		Msg("export complete")
	return clips, nil
}

func (e *Exporter) exportOne(ctx context.Context, source, plainDir, subtitledDir string, clip *Clip) error {
	clip.Title = util.BaseName(source)
	clip.PlainPath = filepath.Join(plainDir, e.clipFileName(clip))

	cutCtx, cancel := e.withTimeout(ctx, e.cfg.Export.TimeoutSeconds)
	err := e.exec.ExtractClip(cutCtx, source, ffmpeg.ClipOptions{
		Start:        clip.Start,
		End:          clip.End,
		Output:       clip.PlainPath,
		AudioBitrate: e.cfg.Export.AudioBitrate,
		CRF:          e.cfg.Export.CRF,
		Preset:       e.cfg.FFmpeg.Preset,
	})
	cancel()
	if err != nil {
		return err
	}

	if e.transcriber == nil {
		return nil
	}
	return e.subtitle(ctx, subtitledDir, clip)
}

// subtitle transcribes a cut clip and burns the result onto a second copy.
// A clip with no usable speech simply stays plain.
func (e *Exporter) subtitle(ctx context.Context, subtitledDir string, clip *Clip) error {
	wavPath := clip.PlainPath + ".wav"
	defer util.CleanupFiles(wavPath)

	cutCtx, cancel := e.withTimeout(ctx, e.cfg.Export.TimeoutSeconds)
	err := e.exec.ExtractWAV(cutCtx, clip.PlainPath, wavPath, ffmpeg.TranscriptionFormat())
	cancel()
	if err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}

	trCtx, cancel := e.withTimeout(ctx, e.cfg.Transcribe.TimeoutSeconds)
	transcript, err := e.transcriber.Transcribe(trCtx, wavPath)
	cancel()
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	cues := transcribe.Coalesce(transcript.Lines)
	if len(cues) == 0 {
		e.logger.Debug().
			Int("clip", clip.Index).
			Msg("no speech found, skipping subtitles")
		return nil
	}

	if title := transcribe.Keywords(transcript.PlainText(), titleKeywords); title != "" {
		clip.Title = title
	}

	clip.SRTPath = strings.TrimSuffix(clip.PlainPath, filepath.Ext(clip.PlainPath)) + ".srt"
	if err := transcribe.SaveSRT(clip.SRTPath, cues); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	clip.SubtitledPath = filepath.Join(subtitledDir, e.clipFileName(clip))
	burnCtx, cancel := e.withTimeout(ctx, e.cfg.Export.TimeoutSeconds)
	err = e.exec.BurnSubtitles(burnCtx, clip.PlainPath, clip.SRTPath, clip.SubtitledPath, e.cfg.Export.CRF, e.cfg.FFmpeg.Preset, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("subtitle burn failed: %w", err)
	}
	return nil
}

// outputDirs resolves the two destination directories. Relative paths are
// anchored next to the source video.
func (e *Exporter) outputDirs(source string) (plain, subtitled string) {
	base := filepath.Dir(source)
	plain = e.cfg.Export.PlainDir
	if !filepath.IsAbs(plain) {
		plain = filepath.Join(base, plain)
	}
	subtitled = e.cfg.Export.SubtitledDir
	if !filepath.IsAbs(subtitled) {
		subtitled = filepath.Join(base, subtitled)
	}
	return plain, subtitled
}

func (e *Exporter) clipFileName(clip *Clip) string {
	short := clip.ID.String()[:8]
	return fmt.Sprintf("%03d_%s_%s.mp4", clip.Index, sanitizeTitle(clip.Title), short)
}

func (e *Exporter) withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// sanitizeTitle makes a transcript-derived title safe as a filename part.
func sanitizeTitle(title string) string {
	s := unsafeChars.ReplaceAllString(title, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "clip"
	}
	if r := []rune(s); len(r) > 60 {
		s = string(r[:60])
	}
	return s
}

// padSegment widens a segment by the safety margin, clamped to the media
// bounds so exported boundaries never leave the video.
func padSegment(seg segmenter.Segment, margin, videoDuration time.Duration) (start, end time.Duration) {
	start = seg.Start - margin
	if start < 0 {
		start = 0
	}
	end = seg.End + margin
	if videoDuration > 0 && end > videoDuration {
		end = videoDuration
	}
	return start, end
}
