// Package tiles draws single letters from a fixed, English-like frequency
// table. Both the word-search and the crossword games seed from the same
// table.
package tiles

import (
	"math/rand/v2"
	"sync"
)

// Weights is the relative frequency of each letter a..z. p is never dealt.
var Weights = [26]int{
	4, // a
	2, // b
	1, // c
	2, // d
	6, // e
	1, // f
	1, // g
	3, // h
	4, // i
	1, // j
	1, // k
	2, // l
	1, // m
	1, // n
	4, // o
	0, // p
	1, // q
	2, // r
	4, // s
	3, // t
	3, // u
	1, // v
	1, // w
	1, // x
	1, // y
	1, // z
}

var total = func() int {
	n := 0
	for _, w := range Weights {
		n += w
	}
	return n
}()

// Pool is a weighted letter generator. The zero value is not usable; use
// NewPool or Default.
type Pool struct {
	mu   sync.Mutex
	intn func(int) int
}

// Default draws from the package-level generator.
var Default = &Pool{intn: rand.IntN}

// NewPool returns a Pool backed by r. Pass a seeded source for reproducible
// draws; nil means the package-level generator.
func NewPool(r *rand.Rand) *Pool {
	if r == nil {
		return &Pool{intn: rand.IntN}
	}
	return &Pool{intn: r.IntN}
}

// Draw returns n independently drawn lowercase letters. Letters may repeat.
func (p *Pool) Draw(n int) []string {
	if n <= 0 {
		return []string{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, n)
	for i := range out {
		out[i] = p.pick()
	}
	return out
}

// One draws a single letter.
func (p *Pool) One() string {
	return p.Draw(1)[0]
}

func (p *Pool) pick() string {
	x := p.intn(total)
	for i, w := range Weights {
		if x < w {
			return string(rune('a' + i))
		}
		x -= w
	}
	// unreachable while total == sum(Weights)
	return "e"
}
