// internal/httpserver/routes_teamguess.go
//
// Team word-guessing routes. The board is shared, so every change is
// broadcast as the public (labels hidden) snapshot.
//
//   POST /teamguess/games                  create a room
//   GET  /teamguess/games/{code}           board; ?spymaster=true reveals labels
//   POST /teamguess/games/{code}/guess     {word}
//   POST /teamguess/games/{code}/end-turn
//   POST /teamguess/games/{code}/new       deal a fresh board under the same code

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/game"
)

func (s *Server) mountTeamGuess(r chi.Router) {
	r.Route("/teamguess/games", func(r chi.Router) {
		r.Post("/", s.handleTeamGuessCreate)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleTeamGuessSnapshot)
			r.Post("/guess", s.handleTeamGuessGuess)
			r.Post("/end-turn", s.handleTeamGuessEndTurn)
			r.Post("/new", s.handleTeamGuessNew)
		})
	})
}

func (s *Server) handleTeamGuessCreate(w http.ResponseWriter, r *http.Request) {
	code, m, err := s.teamguess.Create(func(code string) (*game.TeamGuess, error) {
		return game.NewTeamGuess(code, s.teamGuessWords, nil)
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	log.Info().Str("room", code).Msg("team-guess room created")
	writeJSON(w, http.StatusCreated, m.Snapshot(false))
}

func (s *Server) handleTeamGuessSnapshot(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.teamguess, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	reveal, _ := strconv.ParseBool(r.URL.Query().Get("spymaster"))
	writeJSON(w, http.StatusOK, m.Snapshot(reveal))
}

func (s *Server) handleTeamGuessGuess(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.teamguess, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var body struct {
		Word string `json:"word"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	card, err := m.Guess(body.Word)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap := m.Snapshot(false)
	s.hub.Broadcast(m.Code(), "board", snap)
	writeJSON(w, http.StatusOK, map[string]any{"card": card, "state": snap})
}

func (s *Server) handleTeamGuessEndTurn(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.teamguess, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	m.EndTurn()
	snap := m.Snapshot(false)
	s.hub.Broadcast(m.Code(), "board", snap)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTeamGuessNew(w http.ResponseWriter, r *http.Request) {
	old, err := room(s.teamguess, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	m, err := game.NewTeamGuess(old.Code(), s.teamGuessWords, nil)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	s.teamguess.Put(old.Code(), m)
	snap := m.Snapshot(false)
	s.hub.Broadcast(m.Code(), "board", snap)
	writeJSON(w, http.StatusOK, snap)
}
