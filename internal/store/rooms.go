// internal/store/rooms.go
//
// In-memory room registry, one per game type.
//
// Characteristics:
//   - Maps room codes to match instances of a single type.
//   - Codes are the type's prefix followed by three random uppercase letters,
//     unique among live rooms.
//   - Concurrency-safe via RWMutex (concurrent lookups, exclusive writes).
//   - Nothing expires; rooms live until Delete or process exit.

package store

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/robalobadob/wordparty/internal/errs"
)

const (
	codeLetters = 3
	codeSpace   = 26 * 26 * 26
	// random attempts before Create falls back to scanning for a free code
	randomTries = 64
)

// Rooms is a registry of matches keyed by room code.
type Rooms[T any] struct {
	mu     sync.RWMutex
	prefix string
	rooms  map[string]T
	intn   func(int) int
}

// NewRooms returns an empty registry whose codes start with prefix.
func NewRooms[T any](prefix string) *Rooms[T] {
	return &Rooms[T]{
		prefix: strings.ToUpper(prefix),
		rooms:  make(map[string]T),
		intn:   rand.IntN,
	}
}

// Create picks an unused code, builds the match with build and registers it.
// The registry is locked while build runs, so build must not call back into
// it. Fails with ErrIllegalState when every code is taken.
func (r *Rooms[T]) Create(build func(code string) (T, error)) (string, T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	code, ok := r.freeCode()
	if !ok {
		return "", zero, fmt.Errorf("%w: no free %s room codes", errs.ErrIllegalState, r.prefix)
	}
	m, err := build(code)
	if err != nil {
		return "", zero, err
	}
	r.rooms[code] = m
	return code, m, nil
}

func (r *Rooms[T]) freeCode() (string, bool) {
	if len(r.rooms) >= codeSpace {
		return "", false
	}
	for i := 0; i < randomTries; i++ {
		var b [codeLetters]byte
		for j := range b {
			b[j] = byte('A' + r.intn(26))
		}
		code := r.prefix + string(b[:])
		if _, taken := r.rooms[code]; !taken {
			return code, true
		}
	}
	// crowded registry: take the first free code
	for n := 0; n < codeSpace; n++ {
		code := r.prefix + string([]byte{byte('A' + n/676), byte('A' + n/26%26), byte('A' + n%26)})
		if _, taken := r.rooms[code]; !taken {
			return code, true
		}
	}
	return "", false
}

// Put registers m under code, replacing any match already there.
func (r *Rooms[T]) Put(code string, m T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[strings.ToUpper(code)] = m
}

// Get looks up a room. Codes are case-insensitive.
func (r *Rooms[T]) Get(code string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.rooms[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return m, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: no such game %q", errs.ErrNotFound, code)
}

// Delete removes a room and reports whether it existed.
func (r *Rooms[T]) Delete(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	code = strings.ToUpper(code)
	_, ok := r.rooms[code]
	delete(r.rooms, code)
	return ok
}

// Len returns the number of live rooms.
func (r *Rooms[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
