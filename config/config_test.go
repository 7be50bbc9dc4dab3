package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv(EnvFontDir, "")
	t.Setenv(EnvOutputDir, "")
	configHomePath = ""
	dataHomePath = ""
	t.Cleanup(func() {
		configHomePath = ""
		dataHomePath = ""
	})
	dir := filepath.Join(tmpDir, "macground")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create macground directory: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		profile string
		env     map[string]string
		want    func(dataHome string) *Config
	}{
		{
			name: "no config file",
			want: func(dataHome string) *Config {
				return &Config{
					FontDir:   filepath.Join(dataHome, "fonts"),
					OutputDir: filepath.Join(dataHome, "images"),
					FontSize:  DefaultFontSize,
					Width:     DefaultWidth,
					Height:    DefaultHeight,
					LineWidth: DefaultLineWidth,
					OffsetY:   intPtr(DefaultOffsetY),
					Spacing:   intPtr(DefaultSpacing),
					Color:     DefaultColor,
					TextColor: DefaultTextColor,
					Align:     DefaultAlign,
					Naming:    DefaultNaming,
				}
			},
		},
		{
			name: "config file",
			files: map[string]string{
				"config.yml": `
fontDir: /fonts
outputDir: /images
fonts:
  - font1.otf
  - font2.ttf
fontSize: 120
offsetY: 0
color: "#336699"
naming: uuid
wallpaperCommand: feh --bg-fill "{{path}}"
`,
			},
			want: func(dataHome string) *Config {
				return &Config{
					FontDir:          "/fonts",
					OutputDir:        "/images",
					Fonts:            []string{"font1.otf", "font2.ttf"},
					FontSize:         120,
					Width:            DefaultWidth,
					Height:           DefaultHeight,
					LineWidth:        DefaultLineWidth,
					OffsetY:          intPtr(0),
					Spacing:          intPtr(DefaultSpacing),
					Color:            "#336699",
					TextColor:        DefaultTextColor,
					Align:            DefaultAlign,
					Naming:           "uuid",
					WallpaperCommand: `feh --bg-fill "{{path}}"`,
				}
			},
		},
		{
			name: "profile config takes precedence",
			files: map[string]string{
				"config.yml":      "outputDir: /default\n",
				"config-work.yml": "outputDir: /work\n",
			},
			profile: "work",
			want: func(dataHome string) *Config {
				cfg := Default()
				cfg.OutputDir = "/work"
				return cfg
			},
		},
		{
			name: "yaml extension",
			files: map[string]string{
				"config.yaml": "align: center\n",
			},
			want: func(dataHome string) *Config {
				cfg := Default()
				cfg.Align = "center"
				return cfg
			},
		},
		{
			name: "environment variables are expanded",
			files: map[string]string{
				"config.yml": "outputDir: ${MACGROUND_TEST_IMAGES}/wallpapers\n",
			},
			env: map[string]string{
				"MACGROUND_TEST_IMAGES": "/srv",
			},
			want: func(dataHome string) *Config {
				cfg := Default()
				cfg.OutputDir = "/srv/wallpapers"
				return cfg
			},
		},
		{
			name: "environment overrides",
			files: map[string]string{
				"config.yml": "fontDir: /fonts\noutputDir: /images\n",
			},
			env: map[string]string{
				EnvFontDir:   "/env/fonts",
				EnvOutputDir: "/env/images",
			},
			want: func(dataHome string) *Config {
				cfg := Default()
				cfg.FontDir = "/env/fonts"
				cfg.OutputDir = "/env/images"
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupConfigHome(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
					t.Fatalf("Failed to write config file: %v", err)
				}
			}
			got, err := Load(tt.profile)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := tt.want(DataHomePath())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := setupConfigHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("fonts: {invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestFontPaths(t *testing.T) {
	fontDir := t.TempDir()
	for _, name := range []string{"b.otf", "a.ttf", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(fontDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(fontDir, "sub.ttf"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		fonts []string
		dir   string
		want  []string
	}{
		{
			name:  "configured fonts",
			fonts: []string{"font1.otf", "/abs/font2.ttf"},
			dir:   "/fonts",
			want:  []string{"/fonts/font1.otf", "/abs/font2.ttf"},
		},
		{
			name: "scan font directory",
			dir:  fontDir,
			want: []string{filepath.Join(fontDir, "a.ttf"), filepath.Join(fontDir, "b.otf")},
		},
		{
			name: "missing font directory",
			dir:  filepath.Join(fontDir, "missing"),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{FontDir: tt.dir, Fonts: tt.fonts}
			got, err := cfg.FontPaths()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FontPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
