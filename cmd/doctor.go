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
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/macground"
	"github.com/k1LoW/macground/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "check that fonts, output directory and wallpaper command are usable",
	Long:  `check that fonts, output directory and wallpaper command are usable.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := loadConfig()
		if err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			cmd.Printf("   Config directory: %s\n", config.ConfigHomePath())
			return nil
		}
		green.Println("✓ OK")
		cmd.Printf("   Config directory: %s\n", config.ConfigHomePath())

		// 2. Check fonts
		cmd.Print("🔤 Checking fonts ... ")
		paths, err := cfg.FontPaths()
		switch {
		case err != nil:
			red.Println("✗ READ ERROR")
			cmd.Printf("   Error reading font directory: %v\n", err)
			allOK = false
		case len(paths) == 0:
			yellow.Println("⚠️ NO FONTS")
			cmd.Printf("   No font found in %s, the embedded %s font will be used\n", cfg.FontDir, macground.DefaultFontName)
		default:
			if err := macground.PreloadFonts(ctx, paths); err != nil {
				red.Println("✗ INVALID FONT")
				cmd.Printf("   %v\n", err)
				allOK = false
			} else {
				green.Println("✓ OK")
				cmd.Printf("   %d font(s) in %s\n", len(paths), cfg.FontDir)
			}
		}

		// 3. Check output directory
		cmd.Print("🖼  Checking output directory ... ")
		if err := checkWritable(cfg.OutputDir); err != nil {
			red.Println("✗ NOT WRITABLE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Output directory: %s\n", cfg.OutputDir)
		}

		// 4. Check wallpaper command
		cmd.Print("🖥  Checking wallpaper command ... ")
		s, err := macground.NewCommandSetter(cfg.WallpaperCommand)
		if err != nil {
			red.Println("✗ NOT CONFIGURED")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else if fields := strings.Fields(s.Command()); len(fields) == 0 {
			red.Println("✗ EMPTY")
			allOK = false
		} else if _, err := exec.LookPath(fields[0]); err != nil {
			red.Println("✗ NOT FOUND")
			cmd.Printf("   %s is not found in PATH\n", fields[0])
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Command: %s\n", s.Command())
		}

		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use macground")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try setting a wallpaper:")
			yellow.Println(`  macground "Hello World"`)
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use macground properly.")
		}
		return nil
	},
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".macground-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
