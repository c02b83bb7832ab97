// internal/game/types.go
//
// Result and snapshot records returned by the match state machines.
// These are the values the HTTP layer serializes and broadcasts; the
// matches never hold on to them after returning.

package game

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordparty/internal/board"
	"github.com/robalobadob/wordparty/internal/scoring"
	"github.com/robalobadob/wordparty/internal/wordsearch"
)

// ----------------------------- word search ----------------------------------

// RoundState is the lifecycle of a word-search round.
type RoundState string

const (
	RoundIdle    RoundState = "idle"
	RoundRunning RoundState = "running"
	RoundExpired RoundState = "expired"
)

// GuessStatus tags a GuessOutcome.
type GuessStatus string

const (
	GuessNotRunning     GuessStatus = "not_running"
	GuessAlreadyGuessed GuessStatus = "already_guessed"
	GuessNotAWord       GuessStatus = "not_a_word"
	GuessNotOnBoard     GuessStatus = "not_on_board"
	GuessValid          GuessStatus = "valid"
)

// GuessOutcome is the result of one word-search guess. Path is set only
// when Status is GuessValid.
type GuessOutcome struct {
	Status GuessStatus     `json:"status"`
	Word   string          `json:"word"`
	Path   wordsearch.Path `json:"path,omitempty"`
}

// Valid reports whether the guess was accepted.
func (o GuessOutcome) Valid() bool { return o.Status == GuessValid }

// ScoredWord is one positive-value word in a round breakdown.
type ScoredWord struct {
	Word     string  `json:"word"`
	Value    float64 `json:"value"`
	Guessers int     `json:"guessers"`
}

// RoundScore is a player's itemized score for the last round.
type RoundScore struct {
	Scored     []ScoredWord `json:"scored"`
	Unscored   []string     `json:"unscored"` // found by every participating player
	RoundScore float64      `json:"roundScore"`
	TotalScore float64      `json:"totalScore"`
}

// ScrambleSnapshot is the word-search state as seen by one player.
type ScrambleSnapshot struct {
	Code       string       `json:"code"`
	Mode       scoring.Mode `json:"mode"`
	State      RoundState   `json:"state"`
	ExpiresAt  *time.Time   `json:"expiresAt,omitempty"`
	Tiles      []string     `json:"tiles"`
	Guesses    []string     `json:"guesses"`
	TotalScore float64      `json:"totalScore"`
	Players    []string     `json:"players"`
}

// ScoreRecorder persists positive round scores against a board.
// boardID is the uppercase concatenation of the board's tiles.
type ScoreRecorder interface {
	Record(ctx context.Context, boardID string, score float64, player string) error
}

// ------------------------------- crossword ----------------------------------

// CrosswordState is the lifecycle of a crossword match.
type CrosswordState string

const (
	CrosswordLobby    CrosswordState = "lobby"
	CrosswordRunning  CrosswordState = "running"
	CrosswordFinished CrosswordState = "finished"
)

// CrosswordSnapshot is the crossword state as seen by one player.
type CrosswordSnapshot struct {
	Code       string         `json:"code"`
	State      CrosswordState `json:"state"`
	NumPlayers int            `json:"numPlayers"`
	TilesLeft  int            `json:"tilesLeft"`
	Winner     string         `json:"winner,omitempty"`
	Hand       []string       `json:"hand"`
	Board      [][]string     `json:"board"`
}

// PeelResult reports a peel attempt. Invalid is empty on success.
type PeelResult struct {
	Invalid  []board.Point `json:"invalid"`
	Finished bool          `json:"finished"`
	Winner   string        `json:"winner,omitempty"`
}

// OK reports whether the board passed validation.
func (p PeelResult) OK() bool { return len(p.Invalid) == 0 }

// ------------------------------ team guess ----------------------------------

// Team is a hidden card label, and also names the team whose turn it is.
type Team string

const (
	Neutral  Team = "neutral"
	TeamA    Team = "a"
	TeamB    Team = "b"
	Assassin Team = "assassin"
)

// Opponent returns the other playing team.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Card is one word on the team-guess board.
type Card struct {
	Word    string `json:"word"`
	Team    Team   `json:"team,omitempty"` // hidden until guessed unless revealed
	Guessed bool   `json:"guessed"`
}

// TeamGuessSnapshot is the team-guess board. Labels of unguessed cards are
// blank unless the spymaster view was requested.
type TeamGuessSnapshot struct {
	Code      string       `json:"code"`
	Cards     []Card       `json:"cards"`
	Current   Team         `json:"current"`
	Winner    Team         `json:"winner,omitempty"`
	Remaining map[Team]int `json:"remaining"`
}

// WordSampler supplies the team-guess vocabulary.
type WordSampler interface {
	SampleRand(r *rand.Rand, n int) ([]string, error)
}
