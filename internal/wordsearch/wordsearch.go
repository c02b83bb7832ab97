// internal/wordsearch/wordsearch.go
//
// Traces words on a square letter grid (the scrambled-words board).
//
// A word is on the board when its letters follow a path of distinct cells,
// each one a king's-move neighbour (row, column or diagonal) of the previous.
// Cells are addressed by row-major index.

package wordsearch

import (
	"fmt"
	"math"
	"strings"

	"github.com/robalobadob/wordparty/internal/errs"
)

// DefaultWidth is the side length of a standard 5x5 board.
const DefaultWidth = 5

// Path is an ordered list of cell indices spelling a word.
type Path []int

// Grid is a square board of single letters, stored row-major and lowercase.
type Grid struct {
	width int
	tiles []string
}

// NewGrid validates that tiles form a square and returns the grid.
func NewGrid(tiles []string) (Grid, error) {
	w := int(math.Sqrt(float64(len(tiles))))
	if w < 2 || w*w != len(tiles) {
		return Grid{}, fmt.Errorf("%w: %d tiles do not form a square board", errs.ErrInvalidArgument, len(tiles))
	}
	g := Grid{width: w, tiles: make([]string, len(tiles))}
	for i, t := range tiles {
		g.tiles[i] = strings.ToLower(t)
	}
	return g, nil
}

// Width returns the side length.
func (g Grid) Width() int { return g.width }

// Tiles returns a copy of the letters.
func (g Grid) Tiles() []string { return append([]string(nil), g.tiles...) }

// Adjacent reports whether cells i and j touch on a board of the given width
// and size. Indices outside [0, size) are an error.
func Adjacent(i, j, width, size int) (bool, error) {
	lo, hi := min(i, j), max(i, j)
	if lo < 0 || hi >= size {
		return false, fmt.Errorf("%w: tile index out of range [0,%d): %d, %d", errs.ErrInvalidArgument, size, i, j)
	}
	diff := hi - lo
	switch {
	case hi%width == 0:
		// hi sits in the left column
		return diff == width-1 || diff == width, nil
	case (hi+1)%width == 0:
		// hi sits in the right column
		return diff == 1 || diff == width || diff == width+1, nil
	default:
		return diff == 1 || diff == width-1 || diff == width || diff == width+1, nil
	}
}

// Find returns one path spelling word, or false when the word cannot be
// traced without reusing a cell.
//
// Paths grow one letter at a time: every partial path is extended by each
// unused neighbouring cell holding the next letter, and paths that cannot be
// extended are dropped.
func (g Grid) Find(word string) (Path, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return nil, false
	}

	var paths []Path
	for n, ch := range word {
		cells := g.cellsOf(string(ch))
		if n == 0 {
			for _, c := range cells {
				paths = append(paths, Path{c})
			}
		} else {
			var next []Path
			for _, c := range cells {
				for _, p := range paths {
					if p.contains(c) {
						continue
					}
					// indices come from the grid itself, so Adjacent cannot fail
					if ok, _ := Adjacent(c, p[len(p)-1], g.width, len(g.tiles)); ok {
						ext := make(Path, len(p), len(p)+1)
						copy(ext, p)
						next = append(next, append(ext, c))
					}
				}
			}
			paths = next
		}
		if len(paths) == 0 {
			return nil, false
		}
	}
	return paths[0], true
}

func (g Grid) cellsOf(letter string) []int {
	var out []int
	for i, t := range g.tiles {
		if t == letter {
			out = append(out, i)
		}
	}
	return out
}

func (p Path) contains(c int) bool {
	for _, x := range p {
		if x == c {
			return true
		}
	}
	return false
}
