package transcribe

import (
	"fmt"
	"io"
	"os"

	"clipsaw/pkg/util"
)

// WriteSRT renders transcript lines as SubRip cues
func WriteSRT(w io.Writer, lines []Line) error {
	for i, l := range lines {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			util.FormatSRTTimestamp(l.Start),
			util.FormatSRTTimestamp(l.End),
			l.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveSRT writes transcript lines to an SRT file
func SaveSRT(path string, lines []Line) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create subtitle file: %w", err)
	}
	defer f.Close()

	if err := WriteSRT(f, lines); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	return nil
}
