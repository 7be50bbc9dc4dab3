package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
)

const (
	DefaultWidth     = 3840
	DefaultHeight    = 2160
	DefaultFontSize  = 300
	DefaultLineWidth = 3000
	DefaultOffsetY   = -100
	DefaultSpacing   = 4
	DefaultColor     = "random"
	DefaultTextColor = "white"
	DefaultAlign     = "left"
	DefaultNaming    = "random"
)

const (
	EnvFontDir   = "MACGROUND_FONT_DIR"
	EnvOutputDir = "MACGROUND_OUTPUT_DIR"
)

var (
	homePath       string
	configHomePath string
	dataHomePath   string
	stateHomePath  string
)

type Config struct {
	// directory containing font files
	FontDir string `yaml:"fontDir,omitempty" json:"fontDir,omitempty"`
	// directory where generated images are written
	OutputDir string `yaml:"outputDir,omitempty" json:"outputDir,omitempty"`
	// font file names relative to FontDir. If empty, every .ttf/.otf file in FontDir is used
	Fonts []string `yaml:"fonts,omitempty" json:"fonts,omitempty"`
	// font size in points
	FontSize float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`
	// canvas size in pixels
	Width  int `yaml:"width,omitempty" json:"width,omitempty"`
	Height int `yaml:"height,omitempty" json:"height,omitempty"`
	// maximum rendered width of a line in pixels
	LineWidth int `yaml:"lineWidth,omitempty" json:"lineWidth,omitempty"`
	// vertical shift of the text block from the true center
	OffsetY *int `yaml:"offsetY,omitempty" json:"offsetY,omitempty"`
	// extra pixels between lines
	Spacing *int `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	// background color ("random", "#RRGGBB", "rgb(r, g, b)", "hsl(h, s%, l%)" or a color name)
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
	// text color, same syntax as Color
	TextColor string `yaml:"textColor,omitempty" json:"textColor,omitempty"`
	// alignment of lines within the text block: left, center or right
	Align string `yaml:"align,omitempty" json:"align,omitempty"`
	// output file naming: random, uuid or phash
	Naming string `yaml:"naming,omitempty" json:"naming,omitempty"`
	// command to set the wallpaper. {{path}} is replaced with the image path,
	// {{quoted.path}} with the same path quoted for the shell
	WallpaperCommand string `yaml:"wallpaperCommand,omitempty" json:"wallpaperCommand,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/macground/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/macground/config.yml
// Environment variables in the file are expanded. MACGROUND_FONT_DIR and MACGROUND_OUTPUT_DIR
// take precedence over the file. Unset fields are filled with defaults.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
L:
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
				}
				break L
			}
		}
	}
	if v := os.Getenv(EnvFontDir); v != "" {
		cfg.FontDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	cfg.SetDefaults()
	return cfg, nil
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.FontDir == "" {
		c.FontDir = filepath.Join(DataHomePath(), "fonts")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(DataHomePath(), "images")
	}
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.LineWidth <= 0 {
		c.LineWidth = DefaultLineWidth
	}
	if c.OffsetY == nil {
		c.OffsetY = intPtr(DefaultOffsetY)
	}
	if c.Spacing == nil {
		c.Spacing = intPtr(DefaultSpacing)
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.TextColor == "" {
		c.TextColor = DefaultTextColor
	}
	if c.Align == "" {
		c.Align = DefaultAlign
	}
	if c.Naming == "" {
		c.Naming = DefaultNaming
	}
}

// FontPaths returns the absolute paths of the configured fonts.
// If no font is configured, every .ttf/.otf file in FontDir is returned.
func (c *Config) FontPaths() ([]string, error) {
	if len(c.Fonts) > 0 {
		paths := make([]string, 0, len(c.Fonts))
		for _, f := range c.Fonts {
			if filepath.IsAbs(f) {
				paths = append(paths, f)
				continue
			}
			paths = append(paths, filepath.Join(c.FontDir, f))
		}
		return paths, nil
	}
	entries, err := os.ReadDir(c.FontDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read font directory %s: %w", c.FontDir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".ttf", ".otf", ".TTF", ".OTF":
			paths = append(paths, filepath.Join(c.FontDir, e.Name()))
		}
	}
	return paths, nil
}

// ConfigHomePath returns the path to the configuration directory.
func ConfigHomePath() string {
	return configPath()
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "macground")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "macground")
	}
	return configHomePath
}

// DataHomePath returns the path to the data home directory.
func DataHomePath() string {
	if dataHomePath != "" {
		return dataHomePath
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		dataHomePath = filepath.Join(v, "macground")
	} else {
		dataHomePath = filepath.Join(homePath, ".local", "share", "macground")
	}
	return dataHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "macground")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "macground")
	}
	return stateHomePath
}

func intPtr(v int) *int {
	return &v
}
