/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/macground"
	"github.com/k1LoW/macground/config"
	"github.com/k1LoW/macground/handler/dot"
	"github.com/k1LoW/macground/version"
	"github.com/k1LoW/tail"
	"github.com/lmittmann/tint"
	"github.com/pkg/browser"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	profile         string
	bgColor         string
	textColor       string
	textSize        float64
	noSet           bool
	verbose         bool
	randomQuote     bool
	randomWord      bool
	backgroundImage string
	randomImage     bool
	openImage       bool

	// Unsplash endpoint, empty for the public API
	unsplashURL string
)

// tb keeps the latest JSON log lines for the error dump.
var tb = tail.New(1000)

var rootCmd = &cobra.Command{
	Use:   "macground [MESSAGE]",
	Short: "macground renders a message into a wallpaper image and sets it as the desktop background",
	Long: `macground renders a message into a wallpaper image and sets it as the desktop background.

The message is word-wrapped and centered on a canvas filled with a random color,
drawn with a font picked at random from the configured fonts.
Instead of a color, the background can be an image from a URL (--background-image)
or a random photo from Unsplash (--random-image, needs UNSPLASH_API_KEY in the environment or .env).`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	Args: func(cmd *cobra.Command, args []string) error {
		if randomQuote || randomWord {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		opts := []macground.Option{
			macground.WithConfig(cfg),
			macground.WithLogger(logger),
		}
		bg, err := loadBackground(ctx, logger)
		if err != nil {
			return err
		}
		if bg != nil {
			opts = append(opts, macground.WithBackground(bg))
		}
		g, err := macground.New(opts...)
		if err != nil {
			return err
		}

		var message string
		switch {
		case randomQuote:
			q, err := macground.NewQuoteSource("", logger).Fetch(ctx)
			if err != nil {
				return err
			}
			logger.Info("fetched quote", slog.String("author", q.Author))
			message = q.String()
		case randomWord:
			message = g.RandomWord()
		default:
			message = args[0]
		}

		res, err := g.Generate(ctx, message)
		if err != nil {
			return err
		}
		var setErr error
		if !noSet {
			setErr = g.SetWallpaper(ctx, res.Path)
		}
		logger.Info("generate completed")
		if setErr != nil {
			// The image is kept and the command still succeeds.
			printSetError(cmd, setErr)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		if openImage {
			return browser.OpenFile(res.Path)
		}
		return nil
	},
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// Write stack trace log to state directory
		var latestLogs []any
		for _, line := range tb.Lines() {
			var m map[string]any
			if err := json.Unmarshal([]byte(line), &m); err != nil {
				latestLogs = append(latestLogs, line)
			} else {
				latestLogs = append(latestLogs, m)
			}
		}
		d := &errorData{
			LatestLogs:  latestLogs,
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		b, err := json.Marshal(d)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			dumpPath := filepath.Join(config.StateHomePath(), "error.json")
			if err := os.MkdirAll(filepath.Dir(dumpPath), 0o700); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", filepath.Dir(dumpPath), err)
			} else if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, err)
			}
		}
		os.Exit(1)
	}
	stop()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().StringVarP(&bgColor, "color", "c", "", `background color ("random", "#RRGGBB", "rgb(r, g, b)", "hsl(h, s%, l%)" or a color name)`)
	rootCmd.PersistentFlags().StringVarP(&textColor, "text-color", "", "", "text color, same syntax as --color")
	rootCmd.PersistentFlags().Float64VarP(&textSize, "text-size", "s", 0, "font size in points")
	rootCmd.PersistentFlags().BoolVarP(&noSet, "no-set", "", false, "only generate the image, do not set it as the wallpaper")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print logs to stderr")
	rootCmd.Flags().BoolVarP(&randomQuote, "random-quote", "q", false, "render a random quote instead of MESSAGE")
	rootCmd.Flags().BoolVarP(&randomWord, "random-word", "w", false, "render a random word instead of MESSAGE")
	rootCmd.Flags().StringVarP(&backgroundImage, "background-image", "", "", "URL of an image to use as the background instead of a color")
	rootCmd.Flags().BoolVarP(&randomImage, "random-image", "", false, "use a random photo from Unsplash as the background")
	rootCmd.Flags().BoolVarP(&openImage, "open", "o", false, "open the generated image")
	rootCmd.MarkFlagsMutuallyExclusive("random-quote", "random-word")
	rootCmd.MarkFlagsMutuallyExclusive("background-image", "random-image")
}

// loadBackground fetches the background image requested on the command line.
// It returns nil when the background is a color.
func loadBackground(ctx context.Context, logger *slog.Logger) (image.Image, error) {
	if backgroundImage == "" && !randomImage {
		return nil, nil
	}
	s := macground.NewImageSource(unsplashURL, logger)
	if randomImage {
		img, u, err := s.Random(ctx, os.Getenv(macground.EnvUnsplashAPIKey))
		if err != nil {
			return nil, err
		}
		logger.Info("fetched background image", slog.String("url", u))
		return img, nil
	}
	img, err := s.Fetch(ctx, backgroundImage)
	if err != nil {
		return nil, err
	}
	logger.Info("fetched background image", slog.String("url", backgroundImage))
	return img, nil
}

func printSetError(cmd *cobra.Command, err error) {
	cmd.PrintErrf("Error: failed to set background image: %v\n", err)
}

// loadConfig loads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, err
	}
	if bgColor != "" {
		cfg.Color = bgColor
	}
	if textColor != "" {
		cfg.TextColor = textColor
	}
	if textSize > 0 {
		cfg.FontSize = textSize
	}
	return cfg, nil
}

func newLogger() (*slog.Logger, error) {
	dh, err := dot.New(slog.NewTextHandler(io.Discard, nil))
	if err != nil {
		return nil, err
	}
	handlers := []slog.Handler{
		dh,
		slog.NewJSONHandler(tb, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	if verbose {
		handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// loadDotEnv loads .env in the working directory if it exists.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
