package macground

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/macground/config"
	"golang.org/x/image/font/opentype"
)

// Generator renders messages into wallpaper images and sets them as the desktop background.
type Generator struct {
	cfg    *config.Config
	rand   *rand.Rand
	setter Setter
	logger *slog.Logger
	align  Align
	naming Naming
	// background image, scaled to the canvas in New
	background image.Image
	backdrop   *image.RGBA
}

type Option func(*Generator) error

func WithConfig(cfg *config.Config) Option {
	return func(g *Generator) error {
		g.cfg = cfg
		return nil
	}
}

// WithRand sets the random source used to pick fonts, colors and file names.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) error {
		g.rand = r
		return nil
	}
}

func WithSetter(s Setter) Option {
	return func(g *Generator) error {
		g.setter = s
		return nil
	}
}

// WithBackground draws text over img instead of a solid color.
// img is scaled to cover the canvas and cropped evenly.
func WithBackground(img image.Image) Option {
	return func(g *Generator) error {
		g.background = img
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// Result describes a generated image.
type Result struct {
	Path string
	Font string
	// Background is the zero color when a background image is used
	Background color.RGBA
	Origin     image.Point
	Layout     *Layout
}

// New creates a new Generator.
func New(opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g := &Generator{}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.cfg == nil {
		g.cfg = config.Default()
	}
	g.cfg.SetDefaults()
	if g.rand == nil {
		g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.align, err = ParseAlign(g.cfg.Align); err != nil {
		return nil, err
	}
	if g.naming, err = ParseNaming(g.cfg.Naming); err != nil {
		return nil, err
	}
	if g.background != nil {
		g.backdrop = FillImage(g.background, g.cfg.Width, g.cfg.Height)
	}
	return g, nil
}

// Config returns the configuration in use, with defaults applied.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// Render draws message onto a new canvas. The returned Result has no Path.
func (g *Generator) Render(message string) (_ *image.RGBA, _ *Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	name, f, err := g.selectFont()
	if err != nil {
		return nil, nil, err
	}
	face, err := NewFace(f, g.cfg.FontSize)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = face.Close()
	}()
	var (
		bg     color.RGBA
		canvas *image.RGBA
	)
	if g.backdrop != nil {
		canvas = image.NewRGBA(g.backdrop.Bounds())
		copy(canvas.Pix, g.backdrop.Pix)
	} else {
		bg, err = ParseColor(g.cfg.Color, g.rand)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse background color: %w", err)
		}
		canvas = NewCanvas(g.cfg.Width, g.cfg.Height, bg)
	}
	fg, err := ParseColor(g.cfg.TextColor, g.rand)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse text color: %w", err)
	}

	l := LayoutText(message, face, g.cfg.LineWidth, *g.cfg.Spacing)
	origin := DrawCentered(canvas, l, face, fg, *g.cfg.OffsetY, g.align)
	background := "image"
	if g.backdrop == nil {
		background = fmt.Sprintf("rgb(%d, %d, %d)", bg.R, bg.G, bg.B)
	}
	g.logger.Info("rendered image",
		slog.String("font", name),
		slog.String("background", background),
		slog.Int("lines", len(l.Lines)),
	)
	return canvas, &Result{
		Font:       name,
		Background: bg,
		Origin:     origin,
		Layout:     l,
	}, nil
}

// Generate renders message and writes it as a PNG into the output directory.
func (g *Generator) Generate(ctx context.Context, message string) (_ *Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, res, err := g.Render(message)
	if err != nil {
		return nil, err
	}
	name, err := g.naming.fileName(g.rand, img)
	if err != nil {
		return nil, err
	}
	p := filepath.Join(g.cfg.OutputDir, name)
	if err := savePNG(p, img); err != nil {
		return nil, err
	}
	res.Path = p
	g.logger.Info("saved image", slog.String("path", p))
	return res, nil
}

// SetWallpaper sets the image at path as the desktop background.
func (g *Generator) SetWallpaper(ctx context.Context, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if g.setter == nil {
		s, err := NewCommandSetter(g.cfg.WallpaperCommand)
		if err != nil {
			g.logger.Error("failed to set wallpaper", slog.String("error", err.Error()))
			return err
		}
		g.setter = s
	}
	if err := g.setter.Set(ctx, path); err != nil {
		g.logger.Error("failed to set wallpaper", slog.String("path", path), slog.String("error", err.Error()))
		return err
	}
	g.logger.Info("set wallpaper", slog.String("path", path))
	return nil
}

func (g *Generator) selectFont() (string, *opentype.Font, error) {
	paths, err := g.cfg.FontPaths()
	if err != nil {
		return "", nil, err
	}
	if len(paths) == 0 {
		f, err := DefaultFont()
		if err != nil {
			return "", nil, err
		}
		return DefaultFontName, f, nil
	}
	p := paths[g.rand.IntN(len(paths))]
	f, err := LoadFont(p)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(p), f, nil
}

func savePNG(p string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", p, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
