// Package assets embeds the default word list of each game variant.
package assets

import (
	"embed"
	"fmt"

	"github.com/robalobadob/wordparty/internal/lexicon"
)

//go:embed scramble.txt crossword.txt teamguess.txt
var FS embed.FS

// Embedded list names.
const (
	ScrambleWords  = "scramble.txt"
	CrosswordWords = "crossword.txt"
	TeamGuessWords = "teamguess.txt"
)

// Lexicon parses an embedded list.
func Lexicon(name string) (*lexicon.Lexicon, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()
	return lexicon.Parse(f)
}

// LoadLexicon reads the list at override when set, else the embedded list.
func LoadLexicon(override, name string) (*lexicon.Lexicon, error) {
	if override != "" {
		return lexicon.Load(override)
	}
	return Lexicon(name)
}
