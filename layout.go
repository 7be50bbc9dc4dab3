package macground

import (
	"image"

	"golang.org/x/image/font"
)

// Layout is a wrapped message together with the metrics needed to place it on a canvas.
type Layout struct {
	Lines  []string `json:"lines"`
	Widths []int    `json:"widths"`
	// bounding box of the whole block
	Width  int `json:"width"`
	Height int `json:"height"`

	LineHeight int `json:"line_height"`
	Ascent     int `json:"ascent"`
	Spacing    int `json:"spacing"`
}

// NewLayout measures already wrapped lines.
// The block height is the sum of the line heights plus spacing between lines.
func NewLayout(lines []string, measure MeasureFunc, lineHeight, ascent, spacing int) *Layout {
	l := &Layout{
		Lines:      lines,
		Widths:     make([]int, len(lines)),
		LineHeight: lineHeight,
		Ascent:     ascent,
		Spacing:    spacing,
	}
	for i, line := range lines {
		w := measure(line)
		l.Widths[i] = w
		if w > l.Width {
			l.Width = w
		}
	}
	if n := len(lines); n > 0 {
		l.Height = n*lineHeight + (n-1)*spacing
	}
	return l
}

// LayoutText wraps message to maxWidth and measures it with face.
func LayoutText(message string, face font.Face, maxWidth, spacing int) *Layout {
	measure := FaceMeasure(face)
	m := face.Metrics()
	return NewLayout(Wrap(message, measure, maxWidth), measure, m.Height.Ceil(), m.Ascent.Ceil(), spacing)
}

// Origin returns the top-left corner at which l is drawn so that it is centered on a
// canvasWidth x canvasHeight canvas, shifted vertically by offsetY.
func Origin(canvasWidth, canvasHeight int, l *Layout, offsetY int) image.Point {
	return image.Point{
		X: (canvasWidth - l.Width) / 2,
		Y: (canvasHeight-l.Height)/2 + offsetY,
	}
}
