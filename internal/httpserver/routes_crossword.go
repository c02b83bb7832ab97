// internal/httpserver/routes_crossword.go
//
// Crossword routes. Every mutating route answers with the caller's updated
// snapshot; boards and hands are private, so broadcasts only carry counts.
//
//   POST /crossword/games                   create a room (creator joins)
//   GET  /crossword/games/{code}            personal snapshot
//   POST /crossword/games/{code}/join
//   POST /crossword/games/{code}/start
//   POST /crossword/games/{code}/place      {handIndex,row,col}
//   POST /crossword/games/{code}/remove     {row,col}
//   POST /crossword/games/{code}/exchange   {handIndex}
//   POST /crossword/games/{code}/peel
//   POST /crossword/games/{code}/shift      {direction}

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/board"
	"github.com/robalobadob/wordparty/internal/game"
)

func (s *Server) mountCrossword(r chi.Router) {
	r.Route("/crossword/games", func(r chi.Router) {
		r.Post("/", s.handleCrosswordCreate)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleCrosswordSnapshot)
			r.Post("/join", s.handleCrosswordJoin)
			r.Post("/start", s.handleCrosswordStart)
			r.Post("/place", s.handleCrosswordPlace)
			r.Post("/remove", s.handleCrosswordRemove)
			r.Post("/exchange", s.handleCrosswordExchange)
			r.Post("/peel", s.handleCrosswordPeel)
			r.Post("/shift", s.handleCrosswordShift)
		})
	})
}

// tileMove is the body of place/remove/exchange.
type tileMove struct {
	HandIndex int `json:"handIndex"`
	Row       int `json:"row"`
	Col       int `json:"col"`
}

func (s *Server) handleCrosswordCreate(w http.ResponseWriter, r *http.Request) {
	p := currentPlayer(r)
	code, m, err := s.crossword.Create(func(code string) (*game.Crossword, error) {
		return game.NewCrossword(code, s.crosswordWords, nil), nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	// a fresh lobby always accepts its creator
	_ = m.Join(p.ID)
	log.Info().Str("room", code).Str("player", p.ID).Msg("crossword room created")
	snap, _ := m.Snapshot(p.ID)
	writeJSON(w, http.StatusCreated, snap)
}

// withCrossword resolves the room and runs fn, then answers with the
// caller's snapshot.
func (s *Server) withCrossword(w http.ResponseWriter, r *http.Request, fn func(m *game.Crossword, player string) error) {
	m, err := room(s.crossword, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	p := currentPlayer(r)
	if fn != nil {
		if err := fn(m, p.ID); err != nil {
			writeErr(w, r, err)
			return
		}
	}
	snap, err := m.Snapshot(p.ID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCrosswordSnapshot(w http.ResponseWriter, r *http.Request) {
	s.withCrossword(w, r, nil)
}

func (s *Server) handleCrosswordJoin(w http.ResponseWriter, r *http.Request) {
	s.withCrossword(w, r, func(m *game.Crossword, player string) error {
		if err := m.Join(player); err != nil {
			return err
		}
		s.hub.Broadcast(m.Code(), "players", map[string]int{"numPlayers": len(m.Players())})
		return nil
	})
}

func (s *Server) handleCrosswordStart(w http.ResponseWriter, r *http.Request) {
	s.withCrossword(w, r, func(m *game.Crossword, _ string) error {
		if err := m.Start(); err != nil {
			return err
		}
		s.hub.Broadcast(m.Code(), "game_started", map[string]string{"code": m.Code()})
		return nil
	})
}

func (s *Server) handleCrosswordPlace(w http.ResponseWriter, r *http.Request) {
	var body tileMove
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	s.withCrossword(w, r, func(m *game.Crossword, player string) error {
		return m.PlaceTile(player, body.HandIndex, board.Point{Row: body.Row, Col: body.Col})
	})
}

func (s *Server) handleCrosswordRemove(w http.ResponseWriter, r *http.Request) {
	var body tileMove
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	s.withCrossword(w, r, func(m *game.Crossword, player string) error {
		return m.RemoveTile(player, board.Point{Row: body.Row, Col: body.Col})
	})
}

func (s *Server) handleCrosswordExchange(w http.ResponseWriter, r *http.Request) {
	var body tileMove
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	s.withCrossword(w, r, func(m *game.Crossword, player string) error {
		if _, err := m.Exchange(player, body.HandIndex); err != nil {
			return err
		}
		snap, _ := m.Snapshot(player)
		s.hub.Broadcast(m.Code(), "tiles_left", map[string]int{"tilesLeft": snap.TilesLeft})
		return nil
	})
}

func (s *Server) handleCrosswordPeel(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.crossword, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	p := currentPlayer(r)
	res, err := m.Peel(p.ID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, _ := m.Snapshot(p.ID)
	if res.OK() {
		// everyone drew a tile; clients refetch their own snapshot
		s.hub.Broadcast(m.Code(), "peel", map[string]any{
			"by":        p.Name,
			"tilesLeft": snap.TilesLeft,
			"finished":  res.Finished,
			"winner":    res.Winner,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"peel": res, "state": snap})
}

func (s *Server) handleCrosswordShift(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction string `json:"direction"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	d, err := board.ParseDirection(body.Direction)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	m, err := room(s.crossword, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	p := currentPlayer(r)
	shifted, err := m.Shift(p.ID, d)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, _ := m.Snapshot(p.ID)
	writeJSON(w, http.StatusOK, map[string]any{"shifted": shifted, "state": snap})
}
