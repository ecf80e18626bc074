// Package transcribe is the speech-to-text collaborator boundary. The engine
// never depends on a concrete model; anything that can produce timed text
// lines for a WAV file satisfies Transcriber.
package transcribe

import (
	"context"
	"time"
)

// Line is one timed piece of transcript text, relative to the clip start.
type Line struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Transcript is the timed text for one clip.
type Transcript struct {
	Lines []Line
}

// Empty reports whether the transcript carries no usable text.
func (t Transcript) Empty() bool {
	return len(t.Lines) == 0
}

// PlainText joins all lines into a single string.
func (t Transcript) PlainText() string {
	var out string
	for i, l := range t.Lines {
		if i > 0 {
			out += " "
		}
		out += l.Text
	}
	return out
}

// Transcriber produces a transcript for a WAV file. Implementations are
// external collaborators; callers bound them with a context timeout.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (Transcript, error)
}
