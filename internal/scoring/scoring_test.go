package scoring

import (
	"errors"
	"testing"

	"github.com/robalobadob/wordparty/internal/errs"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		word     string
		guessers int
		total    int
		want     float64
	}{
		{"classic unique", Classic, "aaaaaaa", 1, 4, 5},
		{"classic shared", Classic, "aaaaaaa", 2, 4, 0},
		{"fractional split", DistributedFractional, "aaa", 3, 4, 0.33},
		{"integer split", DistributedInteger, "aaa", 3, 4, 0},
		{"fractional everyone", DistributedFractional, "aaaaaaaa", 4, 4, 0},
		{"integer halves", DistributedInteger, "aaaaaaaaa", 2, 3, 5},
		{"fractional alone", DistributedFractional, "aaaaa", 1, 2, 2},
		{"single player distributed", DistributedFractional, "aaaaa", 1, 1, 0},
		{"single player classic", Classic, "aaaaa", 1, 1, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.mode, tc.word, tc.guessers, tc.total); got != tc.want {
				t.Errorf("Score(%s, %q, %d, %d) = %v, want %v", tc.mode, tc.word, tc.guessers, tc.total, got, tc.want)
			}
		})
	}
}

func TestBaseValue(t *testing.T) {
	want := map[int]float64{1: 1, 3: 1, 4: 1, 5: 2, 6: 3, 7: 5, 8: 8, 9: 11, 15: 11}
	for n, v := range want {
		word := string(make([]byte, n))
		if got := BaseValue(word); got != v {
			t.Errorf("BaseValue(len %d) = %v, want %v", n, got, v)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Classic, "Classic": Classic, " fractional": DistributedFractional, "INTEGER": DistributedInteger} {
		if got, err := ParseMode(in); err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("bonus"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("err = %v", err)
	}
}
