package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/lexicon"
)

func teamGuessWords(n int) *lexicon.Lexicon {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%02d", i)
	}
	return lexicon.New(words)
}

func newTestTeamGuess(t *testing.T, seed uint64) *TeamGuess {
	t.Helper()
	m, err := NewTeamGuess("HNABC", teamGuessWords(40), rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// wordsFor returns the unguessed words carrying label.
func wordsFor(m *TeamGuess, label Team) []string {
	var out []string
	for _, c := range m.Snapshot(true).Cards {
		if c.Team == label && !c.Guessed {
			out = append(out, c.Word)
		}
	}
	return out
}

func TestTeamGuessDeal(t *testing.T) {
	m := newTestTeamGuess(t, 1)
	snap := m.Snapshot(true)
	if len(snap.Cards) != TeamGuessWords {
		t.Fatalf("cards = %d", len(snap.Cards))
	}
	counts := map[Team]int{}
	seen := map[string]bool{}
	for _, c := range snap.Cards {
		counts[c.Team]++
		if seen[c.Word] {
			t.Errorf("duplicate word %s", c.Word)
		}
		seen[c.Word] = true
	}
	want := map[Team]int{Assassin: 1, TeamA: TeamATiles, TeamB: TeamBTiles, Neutral: TeamGuessWords - 1 - TeamATiles - TeamBTiles}
	for team, n := range want {
		if counts[team] != n {
			t.Errorf("%s cards = %d, want %d", team, counts[team], n)
		}
	}
	if snap.Current != TeamA || snap.Winner != "" {
		t.Errorf("current=%s winner=%s", snap.Current, snap.Winner)
	}

	for _, c := range m.Snapshot(false).Cards {
		if c.Team != "" {
			t.Fatalf("unguessed label leaked: %+v", c)
		}
	}
}

func TestTeamGuessDealReproducible(t *testing.T) {
	a := newTestTeamGuess(t, 9).Snapshot(true).Cards
	b := newTestTeamGuess(t, 9).Snapshot(true).Cards
	if !slices.Equal(a, b) {
		t.Error("same seed dealt different boards")
	}
}

func TestTeamGuessTooFewWords(t *testing.T) {
	_, err := NewTeamGuess("HNABC", teamGuessWords(10), nil)
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("err = %v", err)
	}
}

func TestTeamGuessTurns(t *testing.T) {
	m := newTestTeamGuess(t, 2)

	c, err := m.Guess(wordsFor(m, TeamA)[0])
	if err != nil || c.Team != TeamA || !c.Guessed {
		t.Fatalf("guess = %+v, %v", c, err)
	}
	if m.Current() != TeamA {
		t.Error("correct guess passed the turn")
	}

	if _, err := m.Guess(wordsFor(m, Neutral)[0]); err != nil {
		t.Fatal(err)
	}
	if m.Current() != TeamB {
		t.Error("neutral guess kept the turn")
	}

	// team B reveals a team A card: turn passes back and A's count drops
	if _, err := m.Guess(wordsFor(m, TeamA)[0]); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot(false)
	if snap.Current != TeamA || snap.Remaining[TeamA] != TeamATiles-2 || snap.Remaining[TeamB] != TeamBTiles {
		t.Errorf("snapshot = current %s remaining %v", snap.Current, snap.Remaining)
	}

	if got := m.EndTurn(); got != TeamB {
		t.Errorf("EndTurn = %s", got)
	}
}

func TestTeamGuessRejections(t *testing.T) {
	m := newTestTeamGuess(t, 3)
	w := wordsFor(m, Neutral)[0]
	if _, err := m.Guess(w); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{w, "nope"} {
		if _, err := m.Guess(bad); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Errorf("Guess(%q) err = %v", bad, err)
		}
	}
	// lowercase input matches the uppercase board
	if _, err := m.Guess(strings.ToLower(wordsFor(m, TeamA)[0])); err != nil {
		t.Errorf("guess err = %v", err)
	}
}

func TestTeamGuessAssassin(t *testing.T) {
	m := newTestTeamGuess(t, 4)
	c, err := m.Guess(wordsFor(m, Assassin)[0])
	if err != nil || c.Team != Assassin {
		t.Fatalf("guess = %+v, %v", c, err)
	}
	// team A found the assassin, so team B wins
	if m.Winner() != TeamB {
		t.Errorf("winner = %q", m.Winner())
	}

	if _, err := m.Guess(wordsFor(m, TeamA)[0]); !errors.Is(err, errs.ErrIllegalState) {
		t.Errorf("guess after win err = %v", err)
	}
	if _, err := m.Guess("nope"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("unknown word after win err = %v", err)
	}
}

func TestTeamGuessCounterReachesZero(t *testing.T) {
	m := newTestTeamGuess(t, 5)
	for _, w := range wordsFor(m, TeamA) {
		if _, err := m.Guess(w); err != nil {
			t.Fatal(err)
		}
	}
	snap := m.Snapshot(false)
	if snap.Remaining[TeamA] != 0 {
		t.Fatalf("remaining = %v", snap.Remaining)
	}
	// the team whose counter ran out hands the win to its opponent
	if snap.Winner != TeamB {
		t.Errorf("winner = %q", snap.Winner)
	}
}

func TestTeamOpponent(t *testing.T) {
	if TeamA.Opponent() != TeamB || TeamB.Opponent() != TeamA {
		t.Error("Opponent is not symmetric")
	}
}
