package macground

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const randomColor = "random"

// RandomColor draws an opaque color with each of red, green and blue uniform in [0, 255].
func RandomColor(r *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(r.IntN(256)),
		G: uint8(r.IntN(256)),
		B: uint8(r.IntN(256)),
		A: 0xff,
	}
}

// ParseColor parses "random", "#RGB", "#RRGGBB", "rgb(r, g, b)", "hsl(h, s%, l%)" or an SVG color name.
func ParseColor(s string, r *rand.Rand) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == randomColor:
		return RandomColor(r), nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseRGBColor(v)
	case strings.HasPrefix(v, "hsl(") && strings.HasSuffix(v, ")"):
		return parseHSLColor(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color: %s", s)
}

func parseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %s", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %s: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

func parseRGBColor(s string) (color.RGBA, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid rgb color: %s", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid rgb color: %s: %w", s, err)
		}
		if n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("invalid rgb color: %s: channel out of range", s)
		}
		ch[i] = uint8(n)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

// parseHSLColor parses "hsl(h, s%, l%)" with h in degrees.
func parseHSLColor(s string) (color.RGBA, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "hsl("), ")"), ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid hsl color: %s", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[0]), "deg"), 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hsl color: %s: %w", s, err)
	}
	var sl [2]float64
	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if !strings.HasSuffix(p, "%") {
			return color.RGBA{}, fmt.Errorf("invalid hsl color: %s: saturation and lightness must be percentages", s)
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hsl color: %s: %w", s, err)
		}
		if n < 0 || n > 100 {
			return color.RGBA{}, fmt.Errorf("invalid hsl color: %s: percentage out of range", s)
		}
		sl[i] = n / 100
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sat, l := sl[0], sl[1]
	c := (1 - math.Abs(2*l-1)) * sat
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	ch := func(v float64) uint8 {
		return uint8(math.Round((v + m) * 255))
	}
	return color.RGBA{R: ch(r), G: ch(g), B: ch(b), A: 0xff}, nil
}
