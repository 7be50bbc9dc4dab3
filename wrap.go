package macground

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc reports the rendered width in pixels of a single line of text.
type MeasureFunc func(s string) int

// FaceMeasure returns a MeasureFunc backed by the advance widths of face.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}
}

// Wrap greedily packs the whitespace-delimited words of message into lines whose
// measured width does not exceed maxWidth.
// A word wider than maxWidth is placed alone on its own line and is never split.
// An empty message yields a single empty line.
func Wrap(message string, measure MeasureFunc, maxWidth int) []string {
	lines := []string{""}
	for _, word := range strings.Fields(message) {
		current := lines[len(lines)-1]
		if current == "" {
			lines[len(lines)-1] = word
			continue
		}
		line := current + " " + word
		if measure(line) <= maxWidth {
			lines[len(lines)-1] = line
			continue
		}
		lines = append(lines, word)
	}
	return lines
}
