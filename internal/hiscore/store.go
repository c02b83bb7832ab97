// internal/hiscore/store.go
//
// SQLite-backed hiscore table for word-search boards.
//
// Scores are grouped by board fingerprint and only the top Keep entries per
// board survive; recording a score that pushes a board over the limit evicts
// its lowest entries (newest first among ties). Gameplay treats every error
// from here as non-fatal.

package hiscore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// DefaultKeep is the number of scores retained per board.
const DefaultKeep = 5

// Entry is one retained score.
type Entry struct {
	Player    string  `json:"player"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"createdAt"`
}

// Store reads and writes the hiscores table.
type Store struct {
	db   *sql.DB
	keep int
}

// NewStore wraps db. keep <= 0 means DefaultKeep.
func NewStore(db *sql.DB, keep int) *Store {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Store{db: db, keep: keep}
}

// Fingerprint is the storage key for a board: a 128-bit blake2b digest of
// its uppercase tile string, hex encoded.
func Fingerprint(boardID string) string {
	sum := blake2b.Sum256([]byte(strings.ToUpper(boardID)))
	return hex.EncodeToString(sum[:16])
}

// Record inserts a score for boardID and trims the board to the top Keep.
func (s *Store) Record(ctx context.Context, boardID string, score float64, player string) error {
	fp := Fingerprint(boardID)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("hiscore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO hiscores(board, tiles, player, score) VALUES(?,?,?,?)`,
		fp, strings.ToUpper(boardID), player, score,
	); err != nil {
		return fmt.Errorf("hiscore: insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM hiscores
		 WHERE board=? AND id NOT IN (
		     SELECT id FROM hiscores WHERE board=?
		     ORDER BY score DESC, id ASC
		     LIMIT ?)`,
		fp, fp, s.keep,
	); err != nil {
		return fmt.Errorf("hiscore: evict: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("hiscore: commit: %w", err)
	}
	return nil
}

// Top returns the retained scores for boardID, best first.
func (s *Store) Top(ctx context.Context, boardID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, score, created_at
		 FROM hiscores
		 WHERE board=?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`, Fingerprint(boardID), s.keep,
	)
	if err != nil {
		return nil, fmt.Errorf("hiscore: query: %w", err)
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Player, &e.Score, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
