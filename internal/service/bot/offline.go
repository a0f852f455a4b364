package bot

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

// OfflineTable answers from a precomputed table of solved positions and
// hands positions the table does not cover to a fallback strategy.
type OfflineTable struct {
	table    PositionTable
	fallback domain.MoveStrategy
}

func NewOfflineTable(table PositionTable, fallback domain.MoveStrategy) *OfflineTable {
	return &OfflineTable{table: table, fallback: fallback}
}

func (o *OfflineTable) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	scores, complete := o.lookupChildren(ctx, solver.FromView(view))
	if complete && len(scores) > 0 {
		return bestScoredColumn(scores), nil
	}

	log.Debug().Str("component", "offline").Int("moves", view.MoveCount()).Msg("position not in table, using fallback")
	return o.fallback.SelectMove(ctx, view)
}

func (o *OfflineTable) lookupChildren(ctx context.Context, pos solver.Position) ([]solver.ColumnScore, bool) {
	scores := make([]solver.ColumnScore, 0, domain.Columns)
	for col := 0; col < domain.Columns; col++ {
		if !pos.CanPlay(col) {
			continue
		}
		if pos.IsWinningMove(col) {
			return []solver.ColumnScore{{Column: col, Score: (solver.BoardSize + 1 - pos.Moves()) / 2}}, true
		}

		child := pos
		child.PlayCol(col)
		score, found, err := o.table.Lookup(ctx, child.CanonicalKey())
		if err != nil {
			log.Warn().Err(err).Str("component", "offline").Msg("position table lookup failed")
			return nil, false
		}
		if !found {
			return nil, false
		}
		scores = append(scores, solver.ColumnScore{Column: col, Score: -score})
	}
	return scores, true
}
