package macground

import (
	_ "embed"
	"log/slog"
	"math/rand/v2"
	"strings"
)

//go:embed words.txt
var wordList string

var words = strings.Fields(wordList)

// RandomWord picks a word from the embedded word list.
func RandomWord(r *rand.Rand) string {
	return words[r.IntN(len(words))]
}

// RandomWord picks a word from the embedded word list with the generator's random source.
func (g *Generator) RandomWord() string {
	w := RandomWord(g.rand)
	g.logger.Info("picked word", slog.String("word", w))
	return w
}
