// Package scoring values guessed words in the word-search game.
//
// A word's base value grows with its length. How much of that value a
// player keeps depends on the room's Mode and on how many players found the
// same word.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordparty/internal/errs"
)

// Mode selects how shared words are valued.
type Mode string

const (
	// Classic scores only words nobody else found.
	Classic Mode = "classic"
	// DistributedFractional splits a word's value between its guessers,
	// rounded to two decimals.
	DistributedFractional Mode = "fractional"
	// DistributedInteger splits a word's value between its guessers,
	// truncated to a whole number.
	DistributedInteger Mode = "integer"
)

// ParseMode accepts the mode keywords above. An empty string is Classic.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Classic, nil
	case Classic, DistributedFractional, DistributedInteger:
		return m, nil
	}
	return "", fmt.Errorf("%w: scoring mode %q", errs.ErrInvalidArgument, s)
}

// BaseValue is the value of a word by letter count.
func BaseValue(word string) float64 {
	switch n := utf8.RuneCountInString(word); {
	case n <= 4:
		return 1
	case n == 5:
		return 2
	case n == 6:
		return 3
	case n == 7:
		return 5
	case n == 8:
		return 8
	default:
		return 11
	}
}

// Score values word for one of its guessers. guessers is how many players
// found the word this round; total is how many players found anything.
func Score(mode Mode, word string, guessers, total int) float64 {
	base := BaseValue(word)
	switch mode {
	case DistributedFractional, DistributedInteger:
		if guessers <= 0 || guessers == total {
			return 0
		}
		v := base / float64(guessers)
		if mode == DistributedInteger {
			return math.Trunc(v)
		}
		return math.Round(v*100) / 100
	default:
		if guessers > 1 {
			return 0
		}
		return base
	}
}
