package pipeline

import (
	"time"

	"github.com/google/uuid"

	"clipsaw/internal/segmenter"
)

// Result is the outcome of one analysis run. Zero segments is a normal
// terminal state, reported through Empty rather than an error.
type Result struct {
	RunID    uuid.UUID
	Source   string
	Duration time.Duration
	Segments []segmenter.Segment
	Empty    bool
}
