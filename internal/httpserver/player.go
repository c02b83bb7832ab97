// internal/httpserver/player.go
//
// Player identity.
//
// A browser registers once with a display name and receives a signed cookie
// carrying an opaque player id (a uuid) and that name. There are no
// passwords; the cookie only keeps a player's identity stable across page
// loads and rooms.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	playerTTL     = 10 * 365 * 24 * time.Hour
	maxNameLength = 24
)

// player is placed into request context by requirePlayer.
type player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ctxPlayerKey is the context key type for storing player.
type ctxPlayerKey struct{}

func currentPlayer(r *http.Request) player {
	p, _ := r.Context().Value(ctxPlayerKey{}).(player)
	return p
}

func (s *Server) mountPlayers(r chi.Router) {
	r.Post("/players", s.handleRegister)
	r.With(s.requirePlayer).Get("/players/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentPlayer(r))
	})
}

// handleRegister mints a player id for a display name and sets the cookie.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid_name", Reason: "name must be 1-24 characters"})
		return
	}

	p := player{ID: uuid.NewString(), Name: name}
	tok, exp, err := s.signPlayer(p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	s.setPlayerCookie(w, tok, exp)
	writeJSON(w, http.StatusCreated, p)
}

// signPlayer creates an HS256 JWT carrying the player id and name.
func (s *Server) signPlayer(p player) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(playerTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   p.ID,
		"name": p.Name,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setPlayerCookie writes the identity cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// requirePlayer enforces a valid identity token and injects the player into
// the request context.
func (s *Server) requirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := s.bearerOrCookie(r)
		if tokenStr == "" {
			writeJSON(w, http.StatusUnauthorized, errBody{Error: "unregistered", Reason: "POST /players first"})
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeJSON(w, http.StatusUnauthorized, errBody{Error: "invalid_token"})
			return
		}
		id, _ := claims["id"].(string)
		name, _ := claims["name"].(string)
		if id == "" || name == "" {
			writeJSON(w, http.StatusUnauthorized, errBody{Error: "invalid_token"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, player{ID: id, Name: name})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
