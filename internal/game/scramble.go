// internal/game/scramble.go
//
// Word-search ("scramble") match for one room.
//
// Lifecycle: idle -> running -> expired, and StartRound re-enters running
// from any state. Each round gets a fresh grid, fresh guess sets and a fresh
// tally; cumulative scores and the roster survive across rounds.
//
// Concurrency:
//   - Every method takes the match mutex.
//   - The expiry timer takes the same mutex and carries the round generation
//     it was armed for, so a timer left over from an earlier round is a no-op.
//   - The score recorder and the expiry hook run after the mutex is released.

package game

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/lexicon"
	"github.com/robalobadob/wordparty/internal/scoring"
	"github.com/robalobadob/wordparty/internal/tiles"
	"github.com/robalobadob/wordparty/internal/wordsearch"
)

const (
	// ScrambleTiles is the tile count of a standard 5x5 board.
	ScrambleTiles = wordsearch.DefaultWidth * wordsearch.DefaultWidth
	// DefaultRoundDuration applies when ScrambleOptions.RoundDuration is zero.
	DefaultRoundDuration = 60 * time.Second
)

// ScrambleOptions configures a word-search match. Only Code and Words are
// required.
type ScrambleOptions struct {
	Code          string
	Words         lexicon.WordLookup
	Mode          scoring.Mode
	RoundDuration time.Duration
	Clock         Clock
	Tiles         *tiles.Pool
	Scores        ScoreRecorder     // optional hiscore sink
	OnExpire      func(code string) // optional, called when a round times out
}

// Scramble is one room's word-search match.
type Scramble struct {
	mu sync.Mutex

	code     string
	words    lexicon.WordLookup
	mode     scoring.Mode
	duration time.Duration
	clock    Clock
	pool     *tiles.Pool
	scores   ScoreRecorder
	onExpire func(string)

	grid       wordsearch.Grid
	state      RoundState
	expiresAt  time.Time
	timer      Timer
	generation uint64

	guesses map[string]map[string]struct{} // player -> words found this round
	tally   map[string]int                 // word -> distinct players who found it
	scored  map[string]RoundScore          // players already scored this round

	totals map[string]float64 // cumulative per player
	names  map[string]string  // player id -> display name
}

// NewScramble returns an idle match. Call StartRound to deal the first board.
func NewScramble(opts ScrambleOptions) *Scramble {
	m := &Scramble{
		code:     opts.Code,
		words:    opts.Words,
		mode:     opts.Mode,
		duration: opts.RoundDuration,
		clock:    opts.Clock,
		pool:     opts.Tiles,
		scores:   opts.Scores,
		onExpire: opts.OnExpire,
		state:    RoundIdle,
		guesses:  map[string]map[string]struct{}{},
		tally:    map[string]int{},
		scored:   map[string]RoundScore{},
		totals:   map[string]float64{},
		names:    map[string]string{},
	}
	if m.mode == "" {
		m.mode = scoring.Classic
	}
	if m.duration <= 0 {
		m.duration = DefaultRoundDuration
	}
	if m.clock == nil {
		m.clock = SystemClock
	}
	if m.pool == nil {
		m.pool = tiles.Default
	}
	return m
}

// Code returns the room code.
func (m *Scramble) Code() string { return m.code }

// Mode returns the scoring mode chosen at creation.
func (m *Scramble) Mode() scoring.Mode { return m.mode }

// State returns the current round state.
func (m *Scramble) State() RoundState {
	m.mu.Lock()
	done := m.lapseLocked()
	state := m.state
	m.mu.Unlock()
	done()
	return state
}

// Join records a player's display name. Joining again renames the player.
func (m *Scramble) Join(player, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[player] = name
	log.Info().Str("room", m.code).Str("player", player).Str("name", name).Msg("player joined")
}

// Roster returns the display names of every joined player, sorted.
func (m *Scramble) Roster() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterLocked()
}

func (m *Scramble) rosterLocked() []string {
	out := make([]string, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// StartRound installs a new board and starts the round timer. A nil tiles
// slice deals a random 5x5 board. Any pending timer from the previous round
// is cancelled.
func (m *Scramble) StartRound(tiles []string) error {
	if tiles == nil {
		tiles = m.pool.Draw(ScrambleTiles)
	}
	grid, err := wordsearch.NewGrid(tiles)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.generation++
	gen := m.generation

	m.grid = grid
	m.state = RoundRunning
	m.guesses = map[string]map[string]struct{}{}
	m.tally = map[string]int{}
	m.scored = map[string]RoundScore{}
	m.expiresAt = m.clock.Now().Add(m.duration)
	m.timer = m.clock.AfterFunc(m.duration, func() { m.expire(gen) })

	log.Info().Str("room", m.code).Uint64("round", gen).Str("board", m.boardIDLocked()).Msg("round started")
	return nil
}

// expire ends round gen if it is still the current, running round.
func (m *Scramble) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	done := m.endLocked()
	m.mu.Unlock()
	done()
}

// endLocked moves a running round to expired. The returned func logs and
// runs the OnExpire hook; call it after releasing the lock.
func (m *Scramble) endLocked() func() {
	if m.state != RoundRunning {
		return func() {}
	}
	m.state = RoundExpired
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	gen, hook := m.generation, m.onExpire
	return func() {
		log.Info().Str("room", m.code).Uint64("round", gen).Msg("round expired")
		if hook != nil {
			hook(m.code)
		}
	}
}

// lapseLocked ends the round once its deadline has passed, even if the
// timer callback has not run yet.
func (m *Scramble) lapseLocked() func() {
	if m.state == RoundRunning && !m.clock.Now().Before(m.expiresAt) {
		return m.endLocked()
	}
	return func() {}
}

// EndRound expires the current round immediately. It is a no-op unless a
// round is running.
func (m *Scramble) EndRound() {
	m.mu.Lock()
	done := m.endLocked()
	m.mu.Unlock()
	done()
}

// Guess checks word for player. Rejections never change state.
func (m *Scramble) Guess(player, word string) GuessOutcome {
	word = strings.ToLower(strings.TrimSpace(word))
	out := GuessOutcome{Word: word}

	m.mu.Lock()
	done := m.lapseLocked()
	defer func() {
		m.mu.Unlock()
		done()
	}()
	lg := log.Debug().Str("room", m.code).Str("player", player).Str("word", word)

	if m.state != RoundRunning {
		out.Status = GuessNotRunning
		lg.Msg("guess after round ended")
		return out
	}
	if _, dup := m.guesses[player][word]; dup {
		out.Status = GuessAlreadyGuessed
		lg.Msg("already guessed")
		return out
	}
	if word == "" || !m.words.Contains(word) {
		out.Status = GuessNotAWord
		lg.Msg("not a word")
		return out
	}
	path, ok := m.grid.Find(word)
	if !ok {
		out.Status = GuessNotOnBoard
		lg.Msg("not on board")
		return out
	}

	found := m.guesses[player]
	if found == nil {
		found = map[string]struct{}{}
		m.guesses[player] = found
	}
	found[word] = struct{}{}
	m.tally[word]++

	out.Status = GuessValid
	out.Path = path
	lg.Ints("path", path).Msg("valid guess")
	return out
}

// ScoreRound values player's words for the current round and adds the round
// total to the player's cumulative score. The round must have ended. Scoring
// the same round twice returns the first breakdown without crediting again.
//
// A positive score is sent to the score recorder; recorder failures are
// logged and otherwise ignored.
func (m *Scramble) ScoreRound(ctx context.Context, player, name string) (RoundScore, error) {
	m.mu.Lock()
	done := m.lapseLocked()
	res, fresh, err := m.scoreLocked(player)
	boardID := m.boardIDLocked()
	m.mu.Unlock()
	done()
	if err != nil || !fresh {
		return res, err
	}

	log.Info().Str("room", m.code).Str("player", player).
		Float64("round", res.RoundScore).Float64("total", res.TotalScore).Msg("round scored")

	if res.RoundScore > 0 && m.scores != nil {
		if err := m.scores.Record(ctx, boardID, res.RoundScore, name); err != nil {
			log.Warn().Err(err).Str("room", m.code).Str("board", boardID).Msg("record hiscore")
		}
	}
	return res, nil
}

// scoreLocked computes and credits player's breakdown. fresh is false when
// the round was already scored for player.
func (m *Scramble) scoreLocked(player string) (res RoundScore, fresh bool, err error) {
	switch m.state {
	case RoundIdle:
		return RoundScore{}, false, fmt.Errorf("%w: no round played yet", errs.ErrIllegalState)
	case RoundRunning:
		return RoundScore{}, false, fmt.Errorf("%w: round still running", errs.ErrIllegalState)
	}
	if prev, ok := m.scored[player]; ok {
		return prev, false, nil
	}

	// players with at least one valid guess this round
	total := len(m.guesses)
	words := make([]string, 0, len(m.guesses[player]))
	for w := range m.guesses[player] {
		words = append(words, w)
	}
	slices.Sort(words)

	res = RoundScore{Scored: []ScoredWord{}, Unscored: []string{}}
	for _, w := range words {
		n := m.tally[w]
		v := scoring.Score(m.mode, w, n, total)
		if v > 0 {
			res.Scored = append(res.Scored, ScoredWord{Word: w, Value: v, Guessers: n})
			res.RoundScore += v
		} else {
			res.Unscored = append(res.Unscored, w)
		}
	}
	m.totals[player] += res.RoundScore
	res.TotalScore = m.totals[player]
	m.scored[player] = res
	return res, true, nil
}

// BoardID returns the uppercase concatenation of the current tiles, the key
// hiscores are grouped by. Empty before the first round.
func (m *Scramble) BoardID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boardIDLocked()
}

func (m *Scramble) boardIDLocked() string {
	return strings.ToUpper(strings.Join(m.grid.Tiles(), ""))
}

// Snapshot returns the match as seen by player.
func (m *Scramble) Snapshot(player string) ScrambleSnapshot {
	m.mu.Lock()
	done := m.lapseLocked()
	defer func() {
		m.mu.Unlock()
		done()
	}()

	snap := ScrambleSnapshot{
		Code:       m.code,
		Mode:       m.mode,
		State:      m.state,
		Tiles:      m.grid.Tiles(),
		Guesses:    []string{},
		TotalScore: m.totals[player],
		Players:    m.rosterLocked(),
	}
	if snap.Tiles == nil {
		snap.Tiles = []string{}
	}
	if m.state != RoundIdle {
		exp := m.expiresAt
		snap.ExpiresAt = &exp
	}
	for w := range m.guesses[player] {
		snap.Guesses = append(snap.Guesses, w)
	}
	slices.Sort(snap.Guesses)
	return snap
}
