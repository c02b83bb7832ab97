// internal/daily/daily.go
//
// Deterministic "board of the day" for the word-search game.
//
// Every room that asks for the daily board on the same UTC date gets the same
// tiles, so hiscores recorded against that board are comparable across rooms.
// The seed is HMAC-SHA256(salt, YYYY-MM-DD); without the salt the board cannot
// be predicted ahead of time.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordparty/internal/tiles"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the two PCG seed words for a date, taken from
// HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Tiles draws the n tiles of the daily board for date.
func Tiles(date time.Time, salt string, n int) []string {
	s1, s2 := Seed(date, salt)
	return tiles.NewPool(rand.New(rand.NewPCG(s1, s2))).Draw(n)
}
