package macground

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultWallpaperCommand(t *testing.T) {
	tests := []struct {
		goos     string
		contains string
		wantErr  bool
	}{
		{"darwin", "osascript", false},
		{"linux", "gsettings", false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := defaultWallpaperCommand(tt.goos)
			if (err != nil) != tt.wantErr {
				t.Fatalf("defaultWallpaperCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("defaultWallpaperCommand() = %q, want it to contain %q", got, tt.contains)
			}
			if !tt.wantErr && !strings.Contains(got, "{{quoted.") {
				t.Errorf("defaultWallpaperCommand() = %q does not use a quoted path", got)
			}
		})
	}
}

func TestCommandSetter(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh is required")
	}
	t.Setenv("SHELL", "/bin/sh")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	envOut := filepath.Join(dir, "env.txt")
	t.Setenv("MACGROUND_TEST_OUT", out)

	s, err := NewCommandSetter(`printf '%s' "{{path}}" > "{{env.MACGROUND_TEST_OUT}}" && printf '%s' "$` + EnvWallpaperPath + `" > "` + envOut + `"`)
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	if err := s.Set(context.Background(), "background_image_1234.png"); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "background_image_1234.png")
	for _, p := range []string{out, envOut} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(b); got != want {
			t.Errorf("%s = %q, want %q", filepath.Base(p), got, want)
		}
	}
}

func TestCommandSetterFailure(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh is required")
	}
	t.Setenv("SHELL", "/bin/sh")
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"nonzero exit", "echo boom >&2; exit 3", "boom"},
		{"invalid template", "echo {{unknown}}", "failed to expand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewCommandSetter(tt.command)
			if err != nil {
				t.Fatal(err)
			}
			err = s.Set(context.Background(), "/tmp/background_image_1234.png")
			if err == nil {
				t.Fatal("Set() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Set() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestCommandSetterQuotedPath(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh is required")
	}
	t.Setenv("SHELL", "/bin/sh")
	dir := filepath.Join(t.TempDir(), `it's "my" $HOME`)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("MACGROUND_TEST_OUT", out)
	p := filepath.Join(dir, "background_image_1234.png")

	s, err := NewCommandSetter(`printf '%s\n%s' {{quoted.path}} {{quoted.uri}} > "$MACGROUND_TEST_OUT"`)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := p + "\n" + (&url.URL{Scheme: "file", Path: p}).String()
	if got := string(b); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// fakeCommand installs an executable named name in PATH that appends its arguments,
// one per line, to the returned log file.
func fakeCommand(t *testing.T, name string) string {
	t.Helper()
	bin := t.TempDir()
	log := filepath.Join(t.TempDir(), name+".log")
	script := "#!/bin/sh\nfor a in \"$@\"; do printf '%s\\n' \"$a\"; done >> \"$MACGROUND_FAKE_LOG\"\n"
	if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("MACGROUND_FAKE_LOG", log)
	return log
}

func TestDefaultWallpaperCommandRun(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh is required")
	}
	t.Setenv("SHELL", "/bin/sh")
	dir := filepath.Join(t.TempDir(), `Bob's "walls"`)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "background_image_1234.png")
	uri := (&url.URL{Scheme: "file", Path: p}).String()

	tests := []struct {
		goos    string
		command string
		want    []string
	}{
		{
			goos:    "linux",
			command: "gsettings",
			want: []string{
				"set", "org.gnome.desktop.background", "picture-uri", uri,
				"set", "org.gnome.desktop.background", "picture-uri-dark", uri,
			},
		},
		{
			goos:    "darwin",
			command: "osascript",
			want: []string{
				"-e", "on run argv",
				"-e", `tell application "Finder" to set desktop picture to POSIX file (item 1 of argv)`,
				"-e", "end run",
				p,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			log := fakeCommand(t, tt.command)
			c, err := defaultWallpaperCommand(tt.goos)
			if err != nil {
				t.Fatal(err)
			}
			s, err := NewCommandSetter(c)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Set(context.Background(), p); err != nil {
				t.Fatal(err)
			}
			b, err := os.ReadFile(log)
			if err != nil {
				t.Fatal(err)
			}
			got := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s arguments mismatch (-want +got):\n%s", tt.command, diff)
			}
		})
	}
}
