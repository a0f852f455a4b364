package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PositionRepo is the postgres-backed table of solved positions.
// Keys are the canonical 49-bit position keys, stored as BIGINT.
type PositionRepo struct {
	DB *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{DB: db}
}

func (r *PositionRepo) Lookup(ctx context.Context, key uint64) (int, bool, error) {
	var score int
	err := r.DB.QueryRowContext(ctx,
		`SELECT score FROM solved_position WHERE position_key = $1`, int64(key),
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up position: %w", err)
	}
	return score, true, nil
}

func (r *PositionRepo) Store(ctx context.Context, key uint64, score int) error {
	query := `
	INSERT INTO solved_position (position_key, score)
	VALUES ($1, $2)
	ON CONFLICT (position_key) DO UPDATE SET
		score = EXCLUDED.score,
		solved_at = NOW();
	`
	if _, err := r.DB.ExecContext(ctx, query, int64(key), score); err != nil {
		return fmt.Errorf("failed to store position: %w", err)
	}
	return nil
}

func (r *PositionRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM solved_position`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}
