// internal/game/teamguess.go
//
// Team word-guessing match for one room.
//
// The board is TeamGuessWords distinct words, each carrying a hidden label:
// one assassin, TeamATiles for team A, TeamBTiles for team B, the rest
// neutral. Team A moves first. A wrong guess passes the turn. Guessing the
// assassin hands the game to the team that did not guess it.
//
// A finished board is never reset in place; the room gets a new match.

package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/errs"
)

const (
	TeamGuessWords = 25
	TeamATiles     = 9
	TeamBTiles     = 8
)

// TeamGuess is one room's team word-guessing match.
type TeamGuess struct {
	mu sync.Mutex

	code      string
	cards     []Card
	index     map[string]int // uppercase word -> card
	remaining map[Team]int
	current   Team
	winner    Team
}

// NewTeamGuess deals a board from words. r drives both the word sample and
// the label assignment; nil uses the package-level generator.
func NewTeamGuess(code string, words WordSampler, r *rand.Rand) (*TeamGuess, error) {
	picked, err := words.SampleRand(r, TeamGuessWords)
	if err != nil {
		return nil, fmt.Errorf("deal team-guess board: %w", err)
	}
	intn := rand.IntN
	if r != nil {
		intn = r.IntN
	}

	m := &TeamGuess{
		code:      code,
		cards:     make([]Card, TeamGuessWords),
		index:     make(map[string]int, TeamGuessWords),
		remaining: map[Team]int{TeamA: TeamATiles, TeamB: TeamBTiles},
		current:   TeamA,
	}
	labels := assignLabels(intn)
	for i, w := range picked {
		w = strings.ToUpper(w)
		m.cards[i] = Card{Word: w, Team: labels[i]}
		m.index[w] = i
	}
	log.Info().Str("room", code).Msg("team-guess board dealt")
	return m, nil
}

// assignLabels draws label positions without replacement: the assassin
// first, then team A, then team B. Whatever is left is neutral.
func assignLabels(intn func(int) int) []Team {
	labels := make([]Team, TeamGuessWords)
	free := make([]int, TeamGuessWords)
	for i := range free {
		labels[i] = Neutral
		free[i] = i
	}
	take := func(t Team, n int) {
		for ; n > 0; n-- {
			k := intn(len(free))
			labels[free[k]] = t
			free = append(free[:k], free[k+1:]...)
		}
	}
	take(Assassin, 1)
	take(TeamA, TeamATiles)
	take(TeamB, TeamBTiles)
	return labels
}

// Code returns the room code.
func (m *TeamGuess) Code() string { return m.code }

// Guess reveals word for the team whose turn it is and returns the revealed
// card. Unknown or already revealed words are rejected before a finished
// game is.
func (m *TeamGuess) Guess(word string) (Card, error) {
	word = strings.ToUpper(strings.TrimSpace(word))

	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[word]
	if !ok || m.cards[i].Guessed {
		return Card{}, fmt.Errorf("%w: invalid guess %q", errs.ErrInvalidArgument, word)
	}
	if m.winner != "" {
		return Card{}, fmt.Errorf("%w: team %s has already won", errs.ErrIllegalState, m.winner)
	}

	c := &m.cards[i]
	c.Guessed = true
	log.Info().Str("room", m.code).Str("team", string(m.current)).Str("word", word).Str("label", string(c.Team)).Msg("guess")

	if c.Team != m.current {
		m.current = m.current.Opponent()
	}
	switch c.Team {
	case TeamA, TeamB:
		m.remaining[c.Team]--
	case Assassin:
		// the turn has already passed, so current is the other team
		m.winner = m.current
	}
	if m.remaining[TeamA] == 0 {
		m.winner = TeamB
	} else if m.remaining[TeamB] == 0 {
		m.winner = TeamA
	}
	if m.winner != "" {
		log.Info().Str("room", m.code).Str("winner", string(m.winner)).Msg("game finished")
	}
	return *c, nil
}

// EndTurn passes the turn to the other team.
func (m *TeamGuess) EndTurn() Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Info().Str("room", m.code).Str("team", string(m.current)).Msg("turn over")
	m.current = m.current.Opponent()
	return m.current
}

// Current returns the team whose turn it is.
func (m *TeamGuess) Current() Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Winner returns the winning team, or "" while the game is open.
func (m *TeamGuess) Winner() Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

// Snapshot returns the board. Labels of unguessed cards are only included
// when reveal is set.
func (m *TeamGuess) Snapshot(reveal bool) TeamGuessSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := TeamGuessSnapshot{
		Code:      m.code,
		Cards:     make([]Card, len(m.cards)),
		Current:   m.current,
		Winner:    m.winner,
		Remaining: map[Team]int{TeamA: m.remaining[TeamA], TeamB: m.remaining[TeamB]},
	}
	for i, c := range m.cards {
		if !c.Guessed && !reveal {
			c.Team = ""
		}
		snap.Cards[i] = c
	}
	return snap
}
