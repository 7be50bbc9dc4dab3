package macground

import (
	"context"
	"fmt"
	"os"

	"github.com/k1LoW/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/errgroup"
)

// DefaultFontName is the name of the embedded font used when no font file is available.
const DefaultFontName = "goregular"

const preloadConcurrency = 4

// LoadFont reads and parses a TrueType or OpenType font file.
// Parsed fonts are cached by path.
func LoadFont(path string) (_ *opentype.Font, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if f, ok := LoadFontCache(path); ok {
		return f, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font file %s: %w", path, err)
	}
	StoreFontCache(path, f)
	return f, nil
}

// DefaultFont returns the embedded Go Regular font.
func DefaultFont() (_ *opentype.Font, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if f, ok := LoadFontCache(DefaultFontName); ok {
		return f, nil
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default font: %w", err)
	}
	StoreFontCache(DefaultFontName, f)
	return f, nil
}

// NewFace returns a face of f at size points (72 DPI, so points equal pixels).
func NewFace(f *opentype.Font, size float64) (_ font.Face, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// PreloadFonts parses every font in paths concurrently and fills the font cache.
func PreloadFonts(ctx context.Context, paths []string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, p := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			_, err := LoadFont(p)
			return err
		})
	}
	return g.Wait()
}
