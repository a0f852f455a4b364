package bot

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

const (
	ErrNoLegalMove     domain.Error = "no legal move available"
	ErrUnknownStrategy domain.Error = "unknown strategy"
	ErrTableRequired   domain.Error = "offline strategy needs a position table"
)

const (
	Easy          = "easy"
	Medium        = "medium"
	Hard          = "hard"
	Perfect       = "perfect"
	PerfectCached = "perfect-cached"
	Offline       = "offline"
)

// Options carries what the strategies built by New may need.
type Options struct {
	HardDepth       int
	SolverTableSize int
	Seed            int64
	Cache           ScoreCache    // used by perfect-cached; an in-memory cache when nil
	Table           PositionTable // required by offline
}

// Names lists the strategies New understands.
func Names() []string {
	return []string{Easy, Medium, Hard, Perfect, PerfectCached, Offline}
}

// New builds the strategy registered under name.
func New(name string, opts Options) (domain.MoveStrategy, error) {
	switch name {
	case Easy:
		return NewEasy(opts.Seed), nil
	case Medium:
		return NewMedium(), nil
	case Hard:
		return NewHard(opts.HardDepth), nil
	case Perfect:
		return NewPerfectSolver(opts.SolverTableSize, nil), nil
	case PerfectCached:
		cache := opts.Cache
		if cache == nil {
			cache = NewMemoryCache()
		}
		return NewPerfectSolver(opts.SolverTableSize, cache), nil
	case Offline:
		if opts.Table == nil {
			return nil, ErrTableRequired
		}
		fallback := NewPerfectSolver(opts.SolverTableSize, opts.Cache)
		return NewOfflineTable(opts.Table, fallback), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// snapshot gives the strategy its own board to simulate on.
func snapshot(ctx context.Context, view domain.BoardView) (domain.Board, domain.PlayerID, []int, error) {
	if err := ctx.Err(); err != nil {
		return domain.Board{}, domain.Empty, nil, err
	}
	board := view.Clone().Board()
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return board, domain.Empty, nil, ErrNoLegalMove
	}
	return board, view.CurrentTurn(), validColumns, nil
}

// bestScoredColumn picks the highest score, preferring the centre on ties.
func bestScoredColumn(scores []solver.ColumnScore) int {
	sorted := append([]solver.ColumnScore(nil), scores...)
	center := float64(domain.Columns / 2)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return math.Abs(float64(sorted[i].Column)-center) < math.Abs(float64(sorted[j].Column)-center)
	})
	return sorted[0].Column
}
