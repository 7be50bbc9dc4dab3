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
	"fmt"

	"github.com/k1LoW/macground"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [MESSAGE_FILE]",
	Short: "regenerate the wallpaper whenever a message file changes",
	Long:  `regenerate the wallpaper whenever a message file changes. Stop with Ctrl-C.`,
	Args:  cobra.ExactArgs(1),
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
		g, err := macground.New(
			macground.WithConfig(cfg),
			macground.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		paths, err := cfg.FontPaths()
		if err != nil {
			return err
		}
		if err := macground.PreloadFonts(ctx, paths); err != nil {
			return err
		}
		return macground.Watch(ctx, args[0], logger, func(ctx context.Context, content string) error {
			res, err := g.Generate(ctx, content)
			if err != nil {
				return err
			}
			var setErr error
			if !noSet {
				setErr = g.SetWallpaper(ctx, res.Path)
			}
			logger.Info("generate completed")
			if setErr != nil {
				// keep watching
				printSetError(cmd, setErr)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
