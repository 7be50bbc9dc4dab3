package macground

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/tenntenn/golden"
)

// runeMeasure measures every rune as 10px wide.
func runeMeasure(s string) int {
	return utf8.RuneCountInString(s) * 10
}

func TestWrapGolden(t *testing.T) {
	const dir = "testdata/wrap"
	tests := []string{
		"short.txt",
		"sentence.txt",
		"long_word.txt",
		"whitespace.txt",
		"empty.txt",
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(dir, tt))
			if err != nil {
				t.Fatal(err)
			}
			got, err := json.MarshalIndent(Wrap(string(b), runeMeasure, 200), "", "  ")
			if err != nil {
				t.Fatal(err)
			}
			if os.Getenv("UPDATE_GOLDEN") != "" {
				golden.Update(t, dir, tt, got)
				return
			}
			if diff := golden.Diff(t, dir, tt, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		maxWidth int
		want     []string
	}{
		{"empty", "", 100, []string{""}},
		{"whitespace only", " \t\n ", 100, []string{""}},
		{"single word", "Hello", 100, []string{"Hello"}},
		{"exact fit", "abcd efgh", 90, []string{"abcd efgh"}},
		{"one over", "abcd efgh", 89, []string{"abcd", "efgh"}},
		{"word wider than limit first", "abcdefghijkl ab", 50, []string{"abcdefghijkl", "ab"}},
		{"word wider than limit last", "ab abcdefghijkl", 50, []string{"ab", "abcdefghijkl"}},
		{"word wider than limit middle", "ab abcdefghijkl cd", 50, []string{"ab", "abcdefghijkl", "cd"}},
		{"collapses whitespace", "a  b\tc\nd", 100, []string{"a b c d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.message, runeMeasure, tt.maxWidth)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	messages := []string{
		"Hello World",
		"The quick brown fox jumps over the lazy dog",
		"Stay hungry, stay foolish. Whatever you are, be a good one.",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
		"supercalifragilisticexpialidocious is a word that is rather long",
		"",
	}
	limits := []int{50, 100, 150, 300, 3000}
	for _, m := range messages {
		for _, limit := range limits {
			lines := Wrap(m, runeMeasure, limit)
			if len(lines) == 0 {
				t.Fatalf("Wrap(%q, %d) returned no lines", m, limit)
			}
			// words are never split and their order is kept
			if diff := cmp.Diff(strings.Fields(m), strings.Fields(strings.Join(lines, " "))); diff != "" {
				t.Errorf("Wrap(%q, %d) changed words (-want +got):\n%s", m, limit, diff)
			}
			for _, line := range lines {
				if runeMeasure(line) > limit && strings.Contains(line, " ") {
					t.Errorf("Wrap(%q, %d) line %q is %dpx wide", m, limit, line, runeMeasure(line))
				}
			}
			// rewrapping the output is a fixed point
			again := Wrap(strings.Join(lines, "\n"), runeMeasure, limit)
			if diff := cmp.Diff(lines, again); diff != "" {
				t.Errorf("Wrap(%q, %d) is not idempotent (-first +second):\n%s", m, limit, diff)
			}
		}
	}
}
