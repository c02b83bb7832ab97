// internal/board/board.go
//
// Square letter grid owned by one crossword player.
//
// Points are (row, col); (0,0) is the upper-left corner. Empty cells hold "".
// Connectivity and dictionary validity are only checked on demand (Validate),
// never enforced while the player is arranging tiles.

package board

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/lexicon"
)

// Point addresses a cell. It serializes as a [row, col] pair.
type Point struct {
	Row int
	Col int
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Row, p.Col})
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

// PointSet is an unordered set of points.
type PointSet map[Point]struct{}

// Sorted returns the points in row-major order.
func (s PointSet) Sorted() []Point {
	out := make([]Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Point) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

// Direction is a whole-board shift direction.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection validates a direction keyword.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down, Left, Right:
		return d, nil
	}
	return "", fmt.Errorf("%w: direction %q", errs.ErrInvalidArgument, s)
}

// Board is a square matrix of optional letters.
type Board struct {
	size  int
	cells [][]string
	words lexicon.WordLookup
}

// New returns an empty size x size board checked against words.
func New(size int, words lexicon.WordLookup) *Board {
	cells := make([][]string, size)
	for i := range cells {
		cells[i] = make([]string, size)
	}
	return &Board{size: size, cells: cells, words: words}
}

// FromRows builds a board from explicit rows. Rows must form a square.
func FromRows(rows [][]string, words lexicon.WordLookup) (*Board, error) {
	b := New(len(rows), words)
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", errs.ErrInvalidArgument, r, len(row), len(rows))
		}
		copy(b.cells[r], row)
	}
	return b, nil
}

// Size returns the side length.
func (b *Board) Size() int { return b.size }

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]string {
	out := make([][]string, b.size)
	for r := range b.cells {
		out[r] = slices.Clone(b.cells[r])
	}
	return out
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c != "" {
				n++
			}
		}
	}
	return n
}

func (b *Board) check(row, col int) error {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return fmt.Errorf("%w: point (%d,%d) outside %dx%d board", errs.ErrInvalidArgument, row, col, b.size, b.size)
	}
	return nil
}

// At returns the letter at (row, col), "" when empty.
func (b *Board) At(row, col int) (string, error) {
	if err := b.check(row, col); err != nil {
		return "", err
	}
	return b.cells[row][col], nil
}

// Place overwrites the cell and returns whatever occupied it before.
func (b *Board) Place(letter string, row, col int) (string, error) {
	if err := b.check(row, col); err != nil {
		return "", err
	}
	prev := b.cells[row][col]
	b.cells[row][col] = letter
	return prev, nil
}

// Remove clears the cell and returns the removed letter.
func (b *Board) Remove(row, col int) (string, error) {
	return b.Place("", row, col)
}

// Shift moves every letter one cell in d. The edge the letters would be
// pushed past must be empty; otherwise nothing moves and Shift reports false.
func (b *Board) Shift(d Direction) bool {
	n := b.size
	if n == 0 {
		return false
	}
	var dr, dc int
	switch d {
	case Up:
		dr = -1
	case Down:
		dr = 1
	case Left:
		dc = -1
	case Right:
		dc = 1
	default:
		return false
	}

	for i := 0; i < n; i++ {
		var r, c int
		switch d {
		case Up:
			r, c = 0, i
		case Down:
			r, c = n-1, i
		case Left:
			r, c = i, 0
		case Right:
			r, c = i, n-1
		}
		if b.cells[r][c] != "" {
			return false
		}
	}

	next := New(n, b.words).cells
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			nr, nc := r+dr, c+dc
			if nr < 0 || nr >= n || nc < 0 || nc >= n {
				continue
			}
			next[nr][nc] = b.cells[r][c]
		}
	}
	b.cells = next
	return true
}

// Disconnected returns the occupied points not reachable, through
// up/down/left/right steps, from the first occupied cell in row-major order.
// An empty board is connected.
func (b *Board) Disconnected() PointSet {
	left := PointSet{}
	var start *Point
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.cells[r][c] == "" {
				continue
			}
			p := Point{r, c}
			left[p] = struct{}{}
			if start == nil {
				start = &p
			}
		}
	}
	if start == nil {
		return left
	}

	stack := []Point{*start}
	delete(left, *start)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range []Point{{p.Row - 1, p.Col}, {p.Row + 1, p.Col}, {p.Row, p.Col - 1}, {p.Row, p.Col + 1}} {
			if _, ok := left[n]; ok {
				delete(left, n)
				stack = append(stack, n)
			}
		}
	}
	return left
}

// Validate reports the points that keep the board from being a valid
// crossword. A disconnected board returns its unreachable points without any
// word checks. Otherwise every maximal horizontal and vertical run longer
// than one letter must be a word; all cells of a failing run are reported.
func (b *Board) Validate() PointSet {
	if bad := b.Disconnected(); len(bad) > 0 {
		return bad
	}

	bad := PointSet{}
	for r := 0; r < b.size; r++ {
		b.checkLine(bad, func(i int) Point { return Point{r, i} })
	}
	for c := 0; c < b.size; c++ {
		b.checkLine(bad, func(i int) Point { return Point{i, c} })
	}
	return bad
}

// checkLine scans one row or column; at(i) maps a position along the line
// to its board point.
func (b *Board) checkLine(bad PointSet, at func(int) Point) {
	var run []Point
	flush := func() {
		if len(run) > 1 {
			var sb strings.Builder
			for _, p := range run {
				sb.WriteString(b.cells[p.Row][p.Col])
			}
			if !b.words.Contains(sb.String()) {
				for _, p := range run {
					bad[p] = struct{}{}
				}
			}
		}
		run = run[:0]
	}
	for i := 0; i < b.size; i++ {
		p := at(i)
		if b.cells[p.Row][p.Col] == "" {
			flush()
			continue
		}
		run = append(run, p)
	}
	flush()
}
