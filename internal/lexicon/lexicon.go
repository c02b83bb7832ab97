// internal/lexicon/lexicon.go
//
// Provides the accepted-word set for a game variant.
//
// Responsibilities:
//   - Build an immutable, uppercase word set from a list, a reader, or a file.
//   - Answer case-insensitive membership queries (Contains).
//   - Supply uniform random samples without replacement (Sample).
//
// Word lists:
//   - One word per line; blank lines and lines starting with '#' are skipped.
//   - Words are trimmed and normalized to uppercase.
//   - Duplicates collapse to a single entry.
//
// A Lexicon is never mutated after construction, so it is safe to share
// between every room of a variant without locking.

package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/robalobadob/wordparty/internal/errs"
)

// WordLookup is the membership capability the engines depend on.
type WordLookup interface {
	Contains(word string) bool
}

// AcceptAll is a WordLookup that accepts every word. Useful in tests that
// exercise board geometry rather than vocabulary.
type AcceptAll struct{}

// Contains always reports true.
func (AcceptAll) Contains(string) bool { return true }

// Lexicon is an immutable set of uppercase words.
type Lexicon struct {
	words []string            // distinct words, load order
	set   map[string]struct{} // uppercase lookup
}

// New builds a Lexicon from an explicit word list.
func New(words []string) *Lexicon {
	l := &Lexicon{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		l.add(w)
	}
	return l
}

// Parse reads a newline-delimited word list.
func Parse(r io.Reader) (*Lexicon, error) {
	l := &Lexicon{set: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		l.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: read word list: %w", err)
	}
	return l, nil
}

// Load reads a newline-delimited word list from path.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (l *Lexicon) add(w string) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if w == "" {
		return
	}
	if _, dup := l.set[w]; dup {
		return
	}
	l.set[w] = struct{}{}
	l.words = append(l.words, w)
}

// Contains reports whether word is in the set, ignoring case.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.set[strings.ToUpper(word)]
	return ok
}

// Size returns the number of distinct words.
func (l *Lexicon) Size() int { return len(l.words) }

// Sample returns n distinct words chosen uniformly at random.
func (l *Lexicon) Sample(n int) ([]string, error) {
	return l.SampleRand(nil, n)
}

// SampleRand is Sample with an explicit random source; nil means the
// package-level generator. The source is not used concurrently.
func (l *Lexicon) SampleRand(r *rand.Rand, n int) ([]string, error) {
	if n < 0 || n > len(l.words) {
		return nil, fmt.Errorf("%w: sample of %d from %d words", errs.ErrInvalidArgument, n, len(l.words))
	}
	intn := rand.IntN
	if r != nil {
		intn = r.IntN
	}

	// Partial Fisher-Yates over a copy; the first n slots are the sample.
	pool := append([]string(nil), l.words...)
	for i := 0; i < n; i++ {
		j := i + intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n], nil
}
