// internal/httpserver/server.go
//
// HTTP server wiring for the word party backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logs).
//   - Public endpoints: "/", "/health", player registration, "/ws".
//   - Game endpoints (require a player cookie): mounted under /scramble,
//     /crossword and /teamguess.
//   - Mapping engine errors onto HTTP statuses.
//
// Notes:
//   - Every room lives in a per-game Rooms registry owned by the Server.
//   - Outcomes that other players need to see are pushed through the hub;
//     the HTTP response only answers the caller.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordparty/internal/config"
	"github.com/robalobadob/wordparty/internal/errs"
	"github.com/robalobadob/wordparty/internal/game"
	"github.com/robalobadob/wordparty/internal/hiscore"
	"github.com/robalobadob/wordparty/internal/hub"
	"github.com/robalobadob/wordparty/internal/lexicon"
	"github.com/robalobadob/wordparty/internal/store"
)

// Deps are the collaborators the server is built from. Hiscores and Clock
// are optional.
type Deps struct {
	Config         config.Config
	ScrambleWords  lexicon.WordLookup
	CrosswordWords lexicon.WordLookup
	TeamGuessWords game.WordSampler
	Hiscores       *hiscore.Store
	Hub            *hub.Hub
	Clock          game.Clock
}

// Server bundles the router, room registries and collaborators.
type Server struct {
	r   *chi.Mux
	cfg config.Config

	scrambleWords  lexicon.WordLookup
	crosswordWords lexicon.WordLookup
	teamGuessWords game.WordSampler
	hiscores       *hiscore.Store
	hub            *hub.Hub
	clock          game.Clock

	scramble  *store.Rooms[*game.Scramble]
	crossword *store.Rooms[*game.Crossword]
	teamguess *store.Rooms[*game.TeamGuess]
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:              chi.NewRouter(),
		cfg:            d.Config,
		scrambleWords:  d.ScrambleWords,
		crosswordWords: d.CrosswordWords,
		teamGuessWords: d.TeamGuessWords,
		hiscores:       d.Hiscores,
		hub:            d.Hub,
		clock:          d.Clock,
		scramble:       store.NewRooms[*game.Scramble]("SW"),
		crossword:      store.NewRooms[*game.Crossword]("CC"),
		teamguess:      store.NewRooms[*game.TeamGuess]("HN"),
	}
	if s.clock == nil {
		s.clock = game.SystemClock
	}
	if s.hub == nil {
		s.hub = hub.New(s.cfg.ClientOrigin)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordparty",
			"endpoints": []string{"/health", "POST /players", "/scramble/games", "/crossword/games", "/teamguess/games", "/ws"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"rooms": map[string]int{
				"scramble":  s.scramble.Len(),
				"crossword": s.crossword.Len(),
				"teamguess": s.teamguess.Len(),
			},
		})
	})

	// Websocket upgrades must not run under the handler timeout.
	s.r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		room := r.URL.Query().Get("room")
		if room == "" {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "missing_room"})
			return
		}
		s.hub.ServeWS(w, r, room)
	})

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		s.mountPlayers(r)
		r.Group(func(r chi.Router) {
			r.Use(s.requirePlayer)
			s.mountScramble(r)
			s.mountCrossword(r)
			s.mountTeamGuess(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errBody{Error: "not_found", Reason: r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request through the request-scoped logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ responses ----------------------------------

type errBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the engine error taxonomy onto HTTP statuses. Rejections
// (ErrIllegalState) are ordinary gameplay and are not logged as failures.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid_argument", Reason: err.Error()})
	case errors.Is(err, errs.ErrIllegalState):
		writeJSON(w, http.StatusConflict, errBody{Error: "rejected", Reason: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody{Error: "not_found", Reason: err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errBody{Error: "internal"})
	}
}

// decodeJSON reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errs.ErrInvalidArgument, err)
	}
	return nil
}

// room resolves the {code} URL parameter in rooms.
func room[T any](rooms *store.Rooms[T], r *http.Request) (T, error) {
	return rooms.Get(chi.URLParam(r, "code"))
}
