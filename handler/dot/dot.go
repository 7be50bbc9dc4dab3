package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
)

var _ slog.Handler = (*dotHandler)(nil)

type dotHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	prefix  *[]byte
}

// New returns a handler that prints one mark per pipeline step to stdout.
func New(h slog.Handler) (_ slog.Handler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return newHandler(h, colorable.NewColorableStdout())
}

func newHandler(h slog.Handler, stdout io.Writer) (*dotHandler, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &dotHandler{
		handler: h,
		spinner: s,
		stdout:  stdout,
		prefix:  new([]byte),
	}, nil
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	if strings.HasPrefix(r.Message, "retrying") {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner.Enabled() {
		h.spinner.Disable()
		_, _ = h.stdout.Write(*h.prefix)
	}
	switch {
	case r.Message == "fetched quote", r.Message == "picked word":
		return h.write([]byte(gray("\"")))
	case r.Message == "fetched background image":
		return h.write([]byte(blue("#")))
	case r.Message == "rendered image":
		return h.write([]byte(yellow(".")))
	case r.Message == "saved image":
		return h.write([]byte(green("+")))
	case r.Message == "set wallpaper":
		return h.write([]byte(cyan("*")))
	case strings.Contains(r.Message, "failed to"):
		return h.write([]byte(red("!")))
	case r.Message == "generate completed":
		_, _ = h.stdout.Write([]byte("\n"))
		*h.prefix = (*h.prefix)[:0]
		return nil
	}
	return nil
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dotHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, prefix: h.prefix}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, prefix: h.prefix}
}

func (h *dotHandler) write(s []byte) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = h.stdout.Write(s)
	if err != nil {
		return err
	}
	*h.prefix = append(*h.prefix, s...)
	return nil
}
