// internal/game/crossword.go
//
// Crossword-building match for one room.
//
// Lifecycle: lobby -> running -> finished. Players join in the lobby, Start
// deals every player a hand, and players race to arrange their hand into a
// valid crossword on their own board. A successful peel gives everyone one
// more tile; the peel that drives the pool counter below zero wins.
//
// Every letter is in exactly one place: a hand, a board cell, or the pool
// counter. Each method validates its arguments before it mutates anything,
// so an error return means nothing changed.

package game

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/board"
	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/lexicon"
	"github.com/robalobadob/wordparty/internal/tiles"
)

const (
	StartingTiles  = 20
	TilesPerPlayer = StartingTiles * 2
	BoardSize      = 25
	ExchangeTiles  = 3
)

type crosswordPlayer struct {
	hand  []string
	board *board.Board
}

// Crossword is one room's crossword match.
type Crossword struct {
	mu sync.Mutex

	code  string
	words lexicon.WordLookup
	pool  *tiles.Pool
	size  int

	state     CrosswordState
	winner    string
	tilesLeft int
	order     []string // join order
	players   map[string]*crosswordPlayer
}

// NewCrossword returns a match in the lobby. A nil pool uses tiles.Default.
func NewCrossword(code string, words lexicon.WordLookup, pool *tiles.Pool) *Crossword {
	if pool == nil {
		pool = tiles.Default
	}
	return &Crossword{
		code:    code,
		words:   words,
		pool:    pool,
		size:    BoardSize,
		state:   CrosswordLobby,
		players: map[string]*crosswordPlayer{},
	}
}

// Code returns the room code.
func (m *Crossword) Code() string { return m.code }

// State returns the lifecycle state.
func (m *Crossword) State() CrosswordState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Players returns player ids in join order.
func (m *Crossword) Players() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Join adds player with an empty hand and board. Only allowed in the lobby;
// joining twice is a no-op.
func (m *Crossword) Join(player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != CrosswordLobby {
		log.Info().Str("room", m.code).Str("player", player).Msg("join refused, game already started")
		return fmt.Errorf("%w: game already started", errs.ErrIllegalState)
	}
	if _, ok := m.players[player]; ok {
		return nil
	}
	m.players[player] = &crosswordPlayer{board: board.New(m.size, m.words)}
	m.order = append(m.order, player)
	log.Info().Str("room", m.code).Str("player", player).Msg("player joined")
	return nil
}

// Start clears every board, fills the pool with TilesPerPlayer tiles per
// player and deals StartingTiles to each. A finished match can be started
// again with the same players.
func (m *Crossword) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == CrosswordRunning {
		return fmt.Errorf("%w: game already running", errs.ErrIllegalState)
	}
	if len(m.players) == 0 {
		return fmt.Errorf("%w: no players", errs.ErrIllegalState)
	}

	m.tilesLeft = TilesPerPlayer * len(m.players)
	for _, id := range m.order {
		p := m.players[id]
		p.board = board.New(m.size, m.words)
		p.hand = m.pool.Draw(StartingTiles)
		m.tilesLeft -= StartingTiles
	}
	m.winner = ""
	m.state = CrosswordRunning
	log.Info().Str("room", m.code).Int("players", len(m.players)).Int("tilesLeft", m.tilesLeft).Msg("game started")
	return nil
}

func (m *Crossword) player(id string) (*crosswordPlayer, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: player %q is not in game %s", errs.ErrNotFound, id, m.code)
	}
	return p, nil
}

func checkHandIndex(hand []string, i int) error {
	if i < 0 || i >= len(hand) {
		return fmt.Errorf("%w: hand index %d out of range [0,%d)", errs.ErrInvalidArgument, i, len(hand))
	}
	return nil
}

// PlaceTile moves the hand tile at handIndex onto the board at at. A letter
// already in that cell goes back to the end of the hand.
func (m *Crossword) PlaceTile(player string, handIndex int, at board.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.player(player)
	if err != nil {
		return err
	}
	if err := checkHandIndex(p.hand, handIndex); err != nil {
		return err
	}
	if _, err := p.board.At(at.Row, at.Col); err != nil {
		return err
	}

	letter := p.hand[handIndex]
	p.hand = append(p.hand[:handIndex:handIndex], p.hand[handIndex+1:]...)
	prev, _ := p.board.Place(letter, at.Row, at.Col)
	if prev != "" {
		p.hand = append(p.hand, prev)
	}
	return nil
}

// RemoveTile takes the letter at at off the board and appends it to the
// hand. Removing from an empty cell does nothing.
func (m *Crossword) RemoveTile(player string, at board.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.player(player)
	if err != nil {
		return err
	}
	removed, err := p.board.Remove(at.Row, at.Col)
	if err != nil {
		return err
	}
	if removed != "" {
		p.hand = append(p.hand, removed)
	}
	return nil
}

// Exchange trades the hand tile at handIndex for ExchangeTiles new ones and
// returns the new tiles. The traded tile goes back into the pool, so the
// pool shrinks by two overall. Fails when fewer than ExchangeTiles remain.
func (m *Crossword) Exchange(player string, handIndex int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.player(player)
	if err != nil {
		return nil, err
	}
	if err := checkHandIndex(p.hand, handIndex); err != nil {
		return nil, err
	}
	if m.tilesLeft < ExchangeTiles {
		return nil, fmt.Errorf("%w: only %d tiles left to exchange", errs.ErrIllegalState, m.tilesLeft)
	}

	p.hand = append(p.hand[:handIndex:handIndex], p.hand[handIndex+1:]...)
	m.tilesLeft++
	drawn := m.pool.Draw(ExchangeTiles)
	p.hand = append(p.hand, drawn...)
	m.tilesLeft -= ExchangeTiles
	log.Debug().Str("room", m.code).Str("player", player).Strs("drawn", drawn).Int("tilesLeft", m.tilesLeft).Msg("exchange")
	return drawn, nil
}

// Peel validates player's board. On a valid board every player draws one
// tile; if that overdraws the pool the requester wins and the game finishes.
// On an invalid board nothing changes and the offending points are returned.
func (m *Crossword) Peel(player string) (PeelResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != CrosswordRunning {
		return PeelResult{}, fmt.Errorf("%w: game is not running", errs.ErrIllegalState)
	}
	p, err := m.player(player)
	if err != nil {
		return PeelResult{}, err
	}

	invalid := p.board.Validate()
	if len(invalid) > 0 {
		log.Debug().Str("room", m.code).Str("player", player).Int("invalid", len(invalid)).Msg("peel rejected")
		return PeelResult{Invalid: invalid.Sorted()}, nil
	}

	for _, id := range m.order {
		q := m.players[id]
		q.hand = append(q.hand, m.pool.One())
		m.tilesLeft--
	}
	log.Info().Str("room", m.code).Str("player", player).Int("tilesLeft", m.tilesLeft).Msg("peel")

	if m.tilesLeft < 0 {
		m.state = CrosswordFinished
		m.winner = player
		log.Info().Str("room", m.code).Str("winner", player).Msg("game finished")
	}
	return PeelResult{Invalid: []board.Point{}, Finished: m.state == CrosswordFinished, Winner: m.winner}, nil
}

// Shift moves player's whole board one cell in d. Outside a running game it
// does nothing and reports false.
func (m *Crossword) Shift(player string, d board.Direction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.player(player)
	if err != nil {
		return false, err
	}
	if m.state != CrosswordRunning {
		return false, nil
	}
	return p.board.Shift(d), nil
}

// Snapshot returns the match as seen by player.
func (m *Crossword) Snapshot(player string) (CrosswordSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.player(player)
	if err != nil {
		return CrosswordSnapshot{}, err
	}
	return CrosswordSnapshot{
		Code:       m.code,
		State:      m.state,
		NumPlayers: len(m.players),
		TilesLeft:  m.tilesLeft,
		Winner:     m.winner,
		Hand:       append([]string{}, p.hand...),
		Board:      p.board.Rows(),
	}, nil
}
