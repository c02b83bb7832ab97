package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/lexicon"
	"github.com/robalobadob/wordparty/internal/scoring"
	"github.com/robalobadob/wordparty/internal/tiles"
)

var scrambleBoard = []string{
	"s", "a", "b", "e", "r",
	"j", "t", "t", "s", "x",
	"z", "z", "z", "z", "z",
	"s", "z", "z", "z", "z",
	"z", "z", "z", "z", "z",
}

const scrambleBoardID = "SABERJTTSXZZZZZSZZZZZZZZZ"

type recorded struct {
	board  string
	score  float64
	player string
}

type fakeRecorder struct {
	mu   sync.Mutex
	got  []recorded
	fail error
}

func (f *fakeRecorder) Record(_ context.Context, boardID string, score float64, player string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, recorded{boardID, score, player})
	return f.fail
}

func newTestScramble(t *testing.T, mode scoring.Mode) (*Scramble, *fakeClock, *fakeRecorder) {
	t.Helper()
	clock := newFakeClock()
	rec := &fakeRecorder{}
	m := NewScramble(ScrambleOptions{
		Code:          "SWABC",
		Words:         lexicon.New([]string{"set", "sat", "state", "states", "rest", "saber", "stab", "test", "armory"}),
		Mode:          mode,
		RoundDuration: time.Minute,
		Clock:         clock,
		Scores:        rec,
	})
	return m, clock, rec
}

func TestScrambleGuessOutcomes(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)

	if got := m.Guess("p1", "set"); got.Status != GuessNotRunning {
		t.Fatalf("guess before first round = %s", got.Status)
	}
	if err := m.StartRound(scrambleBoard); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word string
		want GuessStatus
	}{
		{"SET", GuessValid},
		{"set", GuessAlreadyGuessed},
		{"bats", GuessNotAWord},
		{"armory", GuessNotOnBoard},
		{"test", GuessNotOnBoard},
		{"states", GuessValid},
		{"", GuessNotAWord},
	}
	for _, tc := range tests {
		got := m.Guess("p1", tc.word)
		if got.Status != tc.want {
			t.Errorf("Guess(%q) = %s, want %s", tc.word, got.Status, tc.want)
		}
		if got.Valid() != (len(got.Path) > 0) {
			t.Errorf("Guess(%q): path %v inconsistent with status %s", tc.word, got.Path, got.Status)
		}
	}

	snap := m.Snapshot("p1")
	if !slices.Equal(snap.Guesses, []string{"set", "states"}) {
		t.Errorf("guesses = %v", snap.Guesses)
	}
}

func TestScrambleDuplicateGuessCountsOnce(t *testing.T) {
	m, clock, _ := newTestScramble(t, scoring.DistributedFractional)
	_ = m.StartRound(scrambleBoard)

	m.Guess("p1", "saber")
	m.Guess("p1", "saber")
	m.Guess("p2", "set")
	clock.Advance(time.Minute)

	// saber was found by p1 alone: 2 points, not split.
	res, err := m.ScoreRound(context.Background(), "p1", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Scored) != 1 || res.Scored[0].Guessers != 1 || res.RoundScore != 2 {
		t.Errorf("breakdown = %+v", res)
	}
}

func TestScrambleRoundExpires(t *testing.T) {
	m, clock, _ := newTestScramble(t, scoring.Classic)
	var expired []string
	m.onExpire = func(code string) { expired = append(expired, code) }

	_ = m.StartRound(scrambleBoard)
	clock.Advance(59 * time.Second)
	if m.State() != RoundRunning {
		t.Fatal("round ended early")
	}
	clock.Advance(time.Second)
	if m.State() != RoundExpired {
		t.Fatalf("state = %s, want expired", m.State())
	}
	if !slices.Equal(expired, []string{"SWABC"}) {
		t.Errorf("OnExpire calls = %v", expired)
	}
	if got := m.Guess("p1", "set"); got.Status != GuessNotRunning {
		t.Errorf("guess after expiry = %s", got.Status)
	}
}

func TestScrambleDeadlineWithoutTimer(t *testing.T) {
	m, clock, rec := newTestScramble(t, scoring.Classic)
	var expired []string
	m.onExpire = func(code string) { expired = append(expired, code) }
	_ = m.StartRound(scrambleBoard)
	m.Guess("p1", "saber")

	clock.Skew(61 * time.Second)
	if got := m.Guess("p1", "sat"); got.Status != GuessNotRunning {
		t.Errorf("guess past deadline = %s, want %s", got.Status, GuessNotRunning)
	}
	res, err := m.ScoreRound(context.Background(), "p1", "Ann")
	if err != nil || res.RoundScore != 2 {
		t.Fatalf("ScoreRound past deadline = %+v, %v", res, err)
	}
	if m.State() != RoundExpired {
		t.Errorf("state = %s", m.State())
	}
	if len(rec.got) != 1 {
		t.Errorf("recorded = %+v", rec.got)
	}

	// the late timer finds the round already over
	clock.Advance(0)
	if !slices.Equal(expired, []string{"SWABC"}) {
		t.Errorf("OnExpire calls = %v", expired)
	}
}

func TestScrambleSnapshotPastDeadline(t *testing.T) {
	m, clock, _ := newTestScramble(t, scoring.Classic)
	_ = m.StartRound(scrambleBoard)
	clock.Skew(time.Minute)
	if snap := m.Snapshot("p1"); snap.State != RoundExpired {
		t.Errorf("snapshot state = %s", snap.State)
	}
}

func TestScrambleEndRoundIdle(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)
	m.EndRound()
	if m.State() != RoundIdle {
		t.Errorf("state = %s", m.State())
	}
}

func TestScrambleStaleTimerIgnored(t *testing.T) {
	m, clock, _ := newTestScramble(t, scoring.Classic)
	_ = m.StartRound(scrambleBoard)
	first := clock.timers[0]

	clock.Advance(30 * time.Second)
	_ = m.StartRound(nil)
	if first.Stop() {
		t.Error("StartRound did not stop the previous timer")
	}

	// A callback that raced past Stop must not end the new round.
	first.fire()
	if m.State() != RoundRunning {
		t.Fatalf("stale timer ended the new round")
	}

	clock.Advance(30 * time.Second)
	if m.State() != RoundRunning {
		t.Fatalf("new round ended on the old deadline")
	}
	clock.Advance(30 * time.Second)
	if m.State() != RoundExpired {
		t.Fatalf("new round did not expire")
	}
}

func TestScrambleNewRoundResetsGuesses(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)
	_ = m.StartRound(scrambleBoard)
	m.Guess("p1", "set")
	_ = m.StartRound(scrambleBoard)
	if got := m.Guess("p1", "set"); got.Status != GuessValid {
		t.Errorf("guess in new round = %s, want valid", got.Status)
	}
}

func TestScrambleScoreRound(t *testing.T) {
	m, clock, rec := newTestScramble(t, scoring.Classic)
	m.Join("p1", "Ann")
	m.Join("p2", "Bob")
	_ = m.StartRound(scrambleBoard)

	m.Guess("p1", "set")
	m.Guess("p1", "states")
	m.Guess("p2", "set")

	if _, err := m.ScoreRound(context.Background(), "p1", "Ann"); !errors.Is(err, errs.ErrIllegalState) {
		t.Fatalf("score while running err = %v", err)
	}
	clock.Advance(time.Minute)

	res, err := m.ScoreRound(context.Background(), "p1", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	want := []ScoredWord{{Word: "states", Value: 3, Guessers: 1}}
	if !slices.Equal(res.Scored, want) || !slices.Equal(res.Unscored, []string{"set"}) {
		t.Errorf("breakdown = %+v", res)
	}
	if res.RoundScore != 3 || res.TotalScore != 3 {
		t.Errorf("round=%v total=%v", res.RoundScore, res.TotalScore)
	}

	// scoring the same round again does not double-credit
	again, _ := m.ScoreRound(context.Background(), "p1", "Ann")
	if again.TotalScore != 3 {
		t.Errorf("second ScoreRound total = %v", again.TotalScore)
	}

	// p2's only word was shared, so nothing is recorded for them
	res2, _ := m.ScoreRound(context.Background(), "p2", "Bob")
	if res2.RoundScore != 0 {
		t.Errorf("p2 round = %v", res2.RoundScore)
	}

	if len(rec.got) != 1 || rec.got[0] != (recorded{scrambleBoardID, 3, "Ann"}) {
		t.Errorf("recorded = %+v", rec.got)
	}

	// totals carry into the next round
	_ = m.StartRound(scrambleBoard)
	m.Guess("p1", "saber")
	m.EndRound()
	res, _ = m.ScoreRound(context.Background(), "p1", "Ann")
	if res.TotalScore != 5 {
		t.Errorf("cumulative total = %v, want 5", res.TotalScore)
	}
	if snap := m.Snapshot("p1"); snap.TotalScore != 5 {
		t.Errorf("snapshot total = %v", snap.TotalScore)
	}
}

func TestScrambleRecorderFailureIsSwallowed(t *testing.T) {
	m, _, rec := newTestScramble(t, scoring.Classic)
	rec.fail = errors.New("disk full")
	_ = m.StartRound(scrambleBoard)
	m.Guess("p1", "saber")
	m.EndRound()

	res, err := m.ScoreRound(context.Background(), "p1", "Ann")
	if err != nil || res.RoundScore != 2 {
		t.Errorf("ScoreRound = %+v, %v", res, err)
	}
}

func TestScrambleScoreBeforeFirstRound(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)
	if _, err := m.ScoreRound(context.Background(), "p1", "Ann"); !errors.Is(err, errs.ErrIllegalState) {
		t.Errorf("err = %v", err)
	}
}

func TestScrambleStartRoundRejectsBadBoard(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)
	if err := m.StartRound([]string{"a", "b", "c"}); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if m.State() != RoundIdle {
		t.Errorf("state = %s after rejected board", m.State())
	}
}

func TestScrambleRandomBoard(t *testing.T) {
	m := NewScramble(ScrambleOptions{
		Code:  "SWXYZ",
		Words: lexicon.AcceptAll{},
		Clock: newFakeClock(),
		Tiles: tiles.NewPool(rand.New(rand.NewPCG(7, 7))),
	})
	if err := m.StartRound(nil); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot("p1")
	if len(snap.Tiles) != ScrambleTiles {
		t.Errorf("tiles = %d", len(snap.Tiles))
	}
	if snap.Mode != scoring.Classic || snap.ExpiresAt == nil {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestScrambleRoster(t *testing.T) {
	m, _, _ := newTestScramble(t, scoring.Classic)
	m.Join("p2", "Zed")
	m.Join("p1", "Amy")
	m.Join("p2", "Bea")
	if got := m.Roster(); !slices.Equal(got, []string{"Amy", "Bea"}) {
		t.Errorf("roster = %v", got)
	}
}

func TestScrambleConcurrentGuesses(t *testing.T) {
	m, clock, _ := newTestScramble(t, scoring.Classic)
	_ = m.StartRound(scrambleBoard)

	var wg sync.WaitGroup
	valid := make([]int, 8)
	for i := range valid {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				if m.Guess("same", "rest").Valid() {
					valid[i]++
				}
			}
		}(i)
	}
	wg.Wait()
	total := 0
	for _, v := range valid {
		total += v
	}
	if total != 1 {
		t.Errorf("rest accepted %d times", total)
	}
	clock.Advance(time.Minute)
}
