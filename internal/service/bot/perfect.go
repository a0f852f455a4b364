package bot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

// PerfectSolver plays the game-theoretically best column. Child positions
// are looked up in the optional cache before being solved.
type PerfectSolver struct {
	mu     sync.Mutex
	solver *solver.Solver
	cache  ScoreCache
}

func NewPerfectSolver(tableSize int, cache ScoreCache) *PerfectSolver {
	return &PerfectSolver{
		solver: solver.New(tableSize),
		cache:  cache,
	}
}

func (p *PerfectSolver) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	pos := solver.FromView(view)
	var wins []solver.ColumnScore
	for col := 0; col < domain.Columns; col++ {
		if pos.CanPlay(col) && pos.IsWinningMove(col) {
			wins = append(wins, solver.ColumnScore{Column: col})
		}
	}
	if len(wins) > 0 {
		return bestScoredColumn(wins), nil
	}

	scores, err := p.Analyze(ctx, view)
	if err != nil {
		return -1, err
	}
	return bestScoredColumn(scores), nil
}

// Analyze returns the exact score of every playable column for the player to move.
func (p *PerfectSolver) Analyze(ctx context.Context, view domain.BoardView) ([]solver.ColumnScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	nodesBefore := p.solver.NodeCount()
	pos := solver.FromView(view)

	scores := make([]solver.ColumnScore, 0, domain.Columns)
	cacheHits := 0
	for col := 0; col < domain.Columns; col++ {
		if !pos.CanPlay(col) {
			continue
		}
		if pos.IsWinningMove(col) {
			scores = append(scores, solver.ColumnScore{Column: col, Score: (solver.BoardSize + 1 - pos.Moves()) / 2})
			continue
		}

		child := pos
		child.PlayCol(col)
		score, hit, err := p.solveCached(ctx, child)
		if err != nil {
			return nil, err
		}
		if hit {
			cacheHits++
		}
		scores = append(scores, solver.ColumnScore{Column: col, Score: -score})
	}

	if len(scores) == 0 {
		return nil, ErrNoLegalMove
	}

	log.Debug().
		Str("component", "solver").
		Int("moves", pos.Moves()).
		Uint64("nodes", p.solver.NodeCount()-nodesBefore).
		Int("cache_hits", cacheHits).
		Dur("elapsed", time.Since(start)).
		Msg("position analyzed")
	return scores, nil
}

func (p *PerfectSolver) solveCached(ctx context.Context, pos solver.Position) (int, bool, error) {
	key := pos.CanonicalKey()
	if p.cache != nil {
		score, found, err := p.cache.GetScore(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("component", "solver").Msg("score cache read failed, solving instead")
		} else if found {
			return score, true, nil
		}
	}

	score, err := p.solver.Solve(ctx, pos)
	if err != nil {
		return 0, false, err
	}

	if p.cache != nil {
		if err := p.cache.SetScore(ctx, key, score); err != nil {
			log.Warn().Err(err).Str("component", "solver").Msg("score cache write failed")
		}
	}
	return score, false, nil
}
