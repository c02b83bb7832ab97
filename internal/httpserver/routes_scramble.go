// internal/httpserver/routes_scramble.go
//
// Word-search ("scramble") routes.
//
//   POST /scramble/games                 create a room {scoring}
//   GET  /scramble/games/{code}          join + personal snapshot
//   POST /scramble/games/{code}/round    deal a new board {daily}
//   POST /scramble/games/{code}/guess    {word}
//   POST /scramble/games/{code}/end      end the running round early
//   POST /scramble/games/{code}/score    score the ended round
//   GET  /scramble/games/{code}/hiscores retained scores for the board
//
// Broadcasts: "players" (roster), "round_started", "round_over",
// "hiscores".

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/daily"
	"github.com/robalobadob/wordparty/internal/game"
	"github.com/robalobadob/wordparty/internal/hiscore"
	"github.com/robalobadob/wordparty/internal/scoring"
)

func (s *Server) mountScramble(r chi.Router) {
	r.Route("/scramble/games", func(r chi.Router) {
		r.Post("/", s.handleScrambleCreate)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleScrambleJoin)
			r.Post("/round", s.handleScrambleRound)
			r.Post("/guess", s.handleScrambleGuess)
			r.Post("/end", s.handleScrambleEnd)
			r.Post("/score", s.handleScrambleScore)
			r.Get("/hiscores", s.handleScrambleHiscores)
		})
	})
}

func (s *Server) handleScrambleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Scoring string `json:"scoring"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	mode, err := scoring.ParseMode(body.Scoring)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	opts := game.ScrambleOptions{
		Words:         s.scrambleWords,
		Mode:          mode,
		RoundDuration: s.cfg.RoundDuration,
		Clock:         s.clock,
		OnExpire: func(code string) {
			s.hub.Broadcast(code, "round_over", map[string]string{"code": code})
		},
	}
	if s.hiscores != nil {
		opts.Scores = s.hiscores
	}
	code, _, err := s.scramble.Create(func(code string) (*game.Scramble, error) {
		opts.Code = code
		return game.NewScramble(opts), nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	log.Info().Str("room", code).Str("mode", string(mode)).Msg("scramble room created")
	writeJSON(w, http.StatusCreated, map[string]string{"code": code, "mode": string(mode)})
}

func (s *Server) handleScrambleJoin(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	p := currentPlayer(r)
	m.Join(p.ID, p.Name)
	s.hub.Broadcast(m.Code(), "players", map[string]any{"players": m.Roster()})
	writeJSON(w, http.StatusOK, m.Snapshot(p.ID))
}

func (s *Server) handleScrambleRound(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var body struct {
		Daily bool `json:"daily"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	var tiles []string
	if body.Daily {
		tiles = daily.Tiles(s.clock.Now(), s.cfg.DailySalt, game.ScrambleTiles)
	}
	if err := m.StartRound(tiles); err != nil {
		writeErr(w, r, err)
		return
	}
	// the room-wide view carries no personal guesses or score
	s.hub.Broadcast(m.Code(), "round_started", m.Snapshot(""))
	writeJSON(w, http.StatusOK, m.Snapshot(currentPlayer(r).ID))
}

func (s *Server) handleScrambleGuess(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
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
	// Rejected guesses are ordinary outcomes, answered with 200.
	writeJSON(w, http.StatusOK, m.Guess(currentPlayer(r).ID, body.Word))
}

// handleScrambleEnd stops the round before its timer. The OnExpire hook
// broadcasts round_over as for a natural expiry.
func (s *Server) handleScrambleEnd(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	m.EndRound()
	writeJSON(w, http.StatusOK, m.Snapshot(currentPlayer(r).ID))
}

func (s *Server) handleScrambleScore(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	p := currentPlayer(r)
	res, err := m.ScoreRound(r.Context(), p.ID, p.Name)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if top, err := s.topScores(r.Context(), m.BoardID()); err == nil {
		s.hub.Broadcast(m.Code(), "hiscores", top)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleScrambleHiscores(w http.ResponseWriter, r *http.Request) {
	m, err := room(s.scramble, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	top, err := s.topScores(r.Context(), m.BoardID())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// topScores lists the retained hiscores for a board. Without a store, or
// before the first round, the list is empty.
func (s *Server) topScores(ctx context.Context, boardID string) ([]hiscore.Entry, error) {
	if s.hiscores == nil || boardID == "" {
		return []hiscore.Entry{}, nil
	}
	top, err := s.hiscores.Top(ctx, boardID)
	if err != nil {
		log.Warn().Err(err).Str("board", boardID).Msg("load hiscores")
		return nil, err
	}
	return top, nil
}
