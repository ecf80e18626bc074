package ffmpeg

import "time"

// VideoInfo contains metadata about a video file
type VideoInfo struct {
	FilePath        string
	Duration        time.Duration
	Width           int
	Height          int
	FPS             float64
	Bitrate         int64
	VideoCodec      string
	HasAudio        bool
	AudioCodec      string
	AudioSampleRate int
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame   int
	FPS     float64
	OutTime time.Duration
	Speed   string
}

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler func(*Progress)
	LogHandler      func(line string)
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
type ProgressFunc func(*Progress)

// Default encoding settings
const (
	DefaultCRF        = 23
	DefaultPreset     = "fast"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)
