package macground

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Align is the horizontal alignment of each line inside the text block.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func ParseAlign(s string) (Align, error) {
	switch a := Align(s); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	case "":
		return AlignLeft, nil
	}
	return "", fmt.Errorf("invalid align: %s, must be one of left, center or right", s)
}

func (a Align) offset(blockWidth, lineWidth int) int {
	switch a {
	case AlignCenter:
		return (blockWidth - lineWidth) / 2
	case AlignRight:
		return blockWidth - lineWidth
	default:
		return 0
	}
}

// NewCanvas returns a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// DrawCentered draws l onto dst centered with a vertical offset and returns the
// top-left origin of the text block. dst is modified in place.
func DrawCentered(dst draw.Image, l *Layout, face font.Face, fill color.Color, offsetY int, align Align) image.Point {
	b := dst.Bounds()
	origin := Origin(b.Dx(), b.Dy(), l, offsetY).Add(b.Min)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fill),
		Face: face,
	}
	for i, line := range l.Lines {
		if line == "" {
			continue
		}
		x := origin.X + align.offset(l.Width, l.Widths[i])
		y := origin.Y + l.Ascent + i*(l.LineHeight+l.Spacing)
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
	return origin
}
