package transcribe

import (
	"strings"
	"time"
)

// speakerGap is the pause length that starts a new subtitle line; shorter
// gaps continue the current one.
const speakerGap = 1500 * time.Millisecond

// noiseMarkers are model artifacts that carry no speech content.
var noiseMarkers = map[string]struct{}{
	"...":      {},
	"[música]": {},
	"[risos]":  {},
	"[music]":  {},
	"[laughs]": {},
	"(music)":  {},
}

// Coalesce merges consecutive transcript lines into subtitle-sized cues:
// lines separated by less than speakerGap join, longer pauses start a new
// cue. Noise markers and fragments under three characters are dropped first.
func Coalesce(lines []Line) []Line {
	var out []Line
	var current *Line

	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if len(text) < 3 {
			continue
		}
		if _, noise := noiseMarkers[strings.ToLower(text)]; noise {
			continue
		}

		if current == nil || l.Start-current.End > speakerGap {
			if current != nil {
				out = append(out, *current)
			}
			current = &Line{Start: l.Start, End: l.End, Text: text}
			continue
		}

		current.End = l.End
		current.Text += " " + text
	}

	if current != nil {
		out = append(out, *current)
	}
	return out
}
