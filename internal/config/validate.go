package config

import "fmt"

// ValidationError reports an invalid parameter combination. Validation runs
// eagerly before any processing starts; a failed validation is fatal to the
// run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for impossible parameter combinations.
func (c *Config) Validate() error {
	s := c.Segmentation

	if s.FrameWidth <= 0 {
		return &ValidationError{"segmentation.frame_width", "must be positive"}
	}
	if s.EnergyMode != EnergyModeRMS && s.EnergyMode != EnergyModeMeanAbs {
		return &ValidationError{"segmentation.energy_mode",
			fmt.Sprintf("must be %q or %q", EnergyModeRMS, EnergyModeMeanAbs)}
	}
	if s.SilenceThreshold <= 0 {
		return &ValidationError{"segmentation.silence_threshold", "must be positive"}
	}
	if s.SilenceThreshold > 1 {
		return &ValidationError{"segmentation.silence_threshold", "must be a linear amplitude in (0,1]"}
	}
	if s.MinSilenceDuration <= 0 {
		return &ValidationError{"segmentation.min_silence_duration", "must be positive"}
	}
	if s.MinClipDuration <= 0 {
		return &ValidationError{"segmentation.min_clip_duration", "must be positive"}
	}
	if s.MaxClipDuration < s.MinClipDuration {
		return &ValidationError{"segmentation.max_clip_duration",
			"must not be smaller than min_clip_duration"}
	}
	if s.SplitTolerance < 0 {
		return &ValidationError{"segmentation.split_tolerance", "must not be negative"}
	}
	if s.MaxSegments < 0 {
		return &ValidationError{"segmentation.max_segments", "must not be negative"}
	}

	if c.Export.SafetyMargin < 0 {
		return &ValidationError{"export.safety_margin", "must not be negative"}
	}
	if c.Export.CRF < 0 || c.Export.CRF > 51 {
		return &ValidationError{"export.crf", "must be in [0,51]"}
	}
	if c.Export.TimeoutSeconds <= 0 {
		return &ValidationError{"export.timeout_seconds", "must be positive"}
	}
	if c.Transcribe.TimeoutSeconds <= 0 {
		return &ValidationError{"transcribe.timeout_seconds", "must be positive"}
	}

	return nil
}
