package macground

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
	"github.com/k1LoW/macground/template"
)

// Environment variable exported to the wallpaper command.
const EnvWallpaperPath = "MACGROUND_WALLPAPER_PATH"

var defaultWallpaperCommands = map[string]string{
	"darwin": `osascript -e 'on run argv' -e 'tell application "Finder" to set desktop picture to POSIX file (item 1 of argv)' -e 'end run' {{quoted.path}}`,
	"linux":  `gsettings set org.gnome.desktop.background picture-uri {{quoted.uri}} && gsettings set org.gnome.desktop.background picture-uri-dark {{quoted.uri}}`,
}

// Setter sets an image file as the desktop background.
type Setter interface {
	Set(ctx context.Context, path string) error
}

// DefaultWallpaperCommand returns the wallpaper command for the running OS.
func DefaultWallpaperCommand() (string, error) {
	return defaultWallpaperCommand(runtime.GOOS)
}

func defaultWallpaperCommand(goos string) (string, error) {
	c, ok := defaultWallpaperCommands[goos]
	if !ok {
		return "", fmt.Errorf("no default wallpaper command for %s, set wallpaperCommand in the config file", goos)
	}
	return c, nil
}

// CommandSetter sets the wallpaper by running a shell command.
// The command is a template: {{path}} expands to the absolute image path, {{uri}} to its
// file:// URI and {{env.NAME}} to environment variables. {{quoted.path}} and {{quoted.uri}}
// are single-quoted for the shell.
type CommandSetter struct {
	command string
}

// NewCommandSetter creates a CommandSetter. If command is empty the default command
// for the running OS is used.
func NewCommandSetter(command string) (_ *CommandSetter, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if command == "" {
		command, err = DefaultWallpaperCommand()
		if err != nil {
			return nil, err
		}
	}
	return &CommandSetter{command: command}, nil
}

// Command returns the unexpanded command template.
func (s *CommandSetter) Command() string {
	return s.command
}

// Set runs the wallpaper command for path.
func (s *CommandSetter) Set(ctx context.Context, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve image path %s: %w", path, err)
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	store := map[string]any{
		"path": abs,
		"uri":  uri,
		"quoted": map[string]string{
			"path": shellQuote(abs),
			"uri":  shellQuote(uri),
		},
		"env": template.EnvironToMap(),
	}
	expanded, err := template.Expand(s.command, store)
	if err != nil {
		return fmt.Errorf("failed to expand wallpaper command template: %w", err)
	}
	c, args, err := buildCommand(expanded)
	if err != nil {
		return fmt.Errorf("failed to build wallpaper command: %w", err)
	}

	cmd := exec.CommandContext(ctx, c, args...)
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", EnvWallpaperPath, abs))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run wallpaper command: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// shellQuote quotes s as a single POSIX shell word.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// buildCommand parses a command string and returns the command and arguments.
func buildCommand(cmdStr string) (string, []string, error) {
	shell, err := detectShell()
	if err != nil {
		return "", nil, err
	}
	return shell, []string{"-c", cmdStr}, nil
}

// detectShell detects the current shell.
func detectShell() (string, error) {
	shells := []string{
		os.Getenv("SHELL"),
		"/bin/bash",
		"/bin/sh",
	}
	for _, shell := range shells {
		if shell == "" {
			continue
		}
		if _, err := os.Stat(shell); err == nil {
			return shell, nil
		}
	}
	return "", fmt.Errorf("failed to detect shell")
}
