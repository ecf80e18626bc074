package ffmpeg

import (
	"fmt"
	"strings"
)

// FilterBuilder helps construct ffmpeg filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// Scale adds a scale filter
func (fb *FilterBuilder) Scale(width, height int) *FilterBuilder {
	if width <= 0 || height <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("scale=%d:%d", width, height))
	return fb
}

// Subtitles adds a subtitles burn filter for an SRT file. Single quotes and
// colons in the path are escaped per ffmpeg filter syntax.
func (fb *FilterBuilder) Subtitles(srtPath string) *FilterBuilder {
	if srtPath == "" {
		return fb
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`).Replace(srtPath)
	fb.filters = append(fb.filters, fmt.Sprintf("subtitles='%s'", escaped))
	return fb
}

// Custom adds a custom filter string
func (fb *FilterBuilder) Custom(filter string) *FilterBuilder {
	fb.filters = append(fb.filters, filter)
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}
