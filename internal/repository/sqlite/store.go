package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

const defaultTableFile = "connect4/solved_positions.db"

const schema = `
CREATE TABLE IF NOT EXISTS solved_position (
    position_key INTEGER PRIMARY KEY,
    score        INTEGER NOT NULL,
    solved_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// DefaultPath returns the table location under the user's XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(defaultTableFile)
}

// PositionStore is a single-file table of solved positions for local play.
type PositionStore struct {
	db *sql.DB
}

// Open opens (and creates if missing) the table at path.
func Open(ctx context.Context, path string) (*PositionStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PositionStore{db: db}, nil
}

func (s *PositionStore) Close() error {
	return s.db.Close()
}

func (s *PositionStore) Lookup(ctx context.Context, key uint64) (int, bool, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT score FROM solved_position WHERE position_key = ?`, int64(key),
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("look up position: %w", err)
	}
	return score, true, nil
}

func (s *PositionStore) Store(ctx context.Context, key uint64, score int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO solved_position (position_key, score) VALUES (?, ?)
		ON CONFLICT(position_key) DO UPDATE SET score = excluded.score, solved_at = CURRENT_TIMESTAMP`,
		int64(key), score)
	if err != nil {
		return fmt.Errorf("store position: %w", err)
	}
	return nil
}

func (s *PositionStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solved_position`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count positions: %w", err)
	}
	return count, nil
}
