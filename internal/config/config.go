package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Energy aggregation modes for the analysis frames.
const (
	EnergyModeRMS     = "rms"
	EnergyModeMeanAbs = "mean_abs"
)

// Config holds all application configuration. It is read once at pipeline
// start and treated as immutable for the run.
type Config struct {
	// Segmentation settings drive the audio analysis engine
	Segmentation SegmentationConfig `yaml:"segmentation"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Transcription settings
	Transcribe TranscribeConfig `yaml:"transcribe"`

	// Export settings
	Export ExportConfig `yaml:"export"`
}

// SegmentationConfig controls how the engine turns audio into segments.
// Durations are in seconds.
type SegmentationConfig struct {
	// FrameWidth is the analysis resolution in seconds
	FrameWidth float64 `yaml:"frame_width"`

	// EnergyMode selects the per-frame aggregate: "rms" or "mean_abs"
	EnergyMode string `yaml:"energy_mode"`

	// SilenceThreshold is a linear amplitude in (0,1]; frames with energy
	// below it are silent
	SilenceThreshold float64 `yaml:"silence_threshold"`

	// MinSilenceDuration is the minimum gap length treated as a real pause
	MinSilenceDuration float64 `yaml:"min_silence_duration"`

	MinClipDuration float64 `yaml:"min_clip_duration"`
	MaxClipDuration float64 `yaml:"max_clip_duration"`

	// SplitTolerance is how far from the ideal split point an interior
	// silent span may be and still be preferred over a hard split
	SplitTolerance float64 `yaml:"split_tolerance"`

	// MaxSegments caps the output count; 0 means no cap
	MaxSegments int `yaml:"max_segments"`
}

type FFmpegConfig struct {
	Threads int    `yaml:"threads"`
	Preset  string `yaml:"preset"`
}

type TranscribeConfig struct {
	Binary         string `yaml:"binary"`
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ExportConfig struct {
	// SubtitledDir and PlainDir are the two named output destinations,
	// created next to the source video when relative
	SubtitledDir string `yaml:"subtitled_dir"`
	PlainDir     string `yaml:"plain_dir"`

	// SafetyMargin pads exported clip boundaries, in seconds
	SafetyMargin float64 `yaml:"safety_margin"`

	CRF            int    `yaml:"crf"`
	AudioBitrate   string `yaml:"audio_bitrate"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Default returns the built-in configuration.
// The silence threshold of 0.01 corresponds to -40 dBFS RMS.
func Default() *Config {
	return &Config{
		Segmentation: SegmentationConfig{
			FrameWidth:         0.05,
			EnergyMode:         EnergyModeRMS,
			SilenceThreshold:   0.01,
			MinSilenceDuration: 1.0,
			MinClipDuration:    10.0,
			MaxClipDuration:    45.0,
			SplitTolerance:     5.0,
			MaxSegments:        0,
		},
		FFmpeg: FFmpegConfig{
			Threads: 0,
			Preset:  "fast",
		},
		Transcribe: TranscribeConfig{
			Binary:         "whisper",
			Model:          "base",
			Language:       "",
			TimeoutSeconds: 300,
		},
		Export: ExportConfig{
			SubtitledDir:   "clips_subtitled",
			PlainDir:       "clips_plain",
			SafetyMargin:   0.5,
			CRF:            23,
			AudioBitrate:   "192k",
			TimeoutSeconds: 300,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./clipsaw.yaml",
		"./clipsaw.yml",
		filepath.Join(os.Getenv("HOME"), ".clipsaw", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
