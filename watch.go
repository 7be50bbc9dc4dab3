package macground

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

const watchDebounce = 100 * time.Millisecond

// Watch calls fn with the contents of the file at path once at start and then every
// time the contents change, until ctx is canceled.
// Errors returned by fn are logged and do not stop watching.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(ctx context.Context, content string) error) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	// Watch the directory because editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	var last string
	update := func() error {
		b, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		content := string(b)
		if content == last {
			return nil
		}
		last = content
		if err := fn(ctx, content); err != nil {
			logger.Error("failed to update wallpaper", slog.String("file", abs), slog.String("error", err.Error()))
		}
		return nil
	}
	if err := update(); err != nil {
		return fmt.Errorf("failed to read %s: %w", abs, err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-debounce:
			debounce = nil
			if err := update(); err != nil {
				logger.Warn("failed to read watched file", slog.String("file", abs), slog.String("error", err.Error()))
			}
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("detected change", slog.String("file", abs), slog.String("op", ev.Op.String()))
			// A single save often emits several events.
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("failed to watch", slog.String("error", err.Error()))
		}
	}
}
