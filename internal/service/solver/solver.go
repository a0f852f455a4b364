package solver

import (
	"context"
)

// centre first: central columns take part in more lines
var columnOrder = [W]int{3, 2, 4, 1, 5, 0, 6}

// how many nodes are searched between two context checks
const cancelCheckInterval = 1 << 16

// Solver computes exact game-theoretic scores.
//
// A score is positive when the player to move can force a win, the larger the
// sooner it comes; 0 is a draw under perfect play and negative values are
// forced losses. A Solver is not safe for concurrent use.
type Solver struct {
	table     *TranspositionTable
	nodeCount uint64
	ctx       context.Context
	stopped   bool
}

func New(tableSize int) *Solver {
	return &Solver{table: NewTranspositionTable(tableSize)}
}

// NodeCount is the number of positions explored since the solver was created
// or last reset.
func (s *Solver) NodeCount() uint64 {
	return s.nodeCount
}

func (s *Solver) Reset() {
	s.nodeCount = 0
	s.table.Reset()
}

// Solve returns the exact score of p. It stops with ctx.Err() once ctx is done.
func (s *Solver) Solve(ctx context.Context, p Position) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.CanWinNext() {
		return (BoardSize + 1 - p.moves) / 2, nil
	}

	s.ctx = ctx
	s.stopped = false
	defer func() { s.ctx = nil }()

	lo := -(BoardSize - p.moves) / 2
	hi := (BoardSize + 1 - p.moves) / 2
	for lo < hi {
		// null-window probes, biased toward 0 first since most positions are close to a draw
		med := lo + (hi-lo)/2
		if med <= 0 && lo/2 < med {
			med = lo / 2
		} else if med >= 0 && hi/2 > med {
			med = hi / 2
		}

		r := s.negamax(p, med, med+1)
		if s.stopped {
			return 0, ctx.Err()
		}
		if r <= med {
			hi = r
		} else {
			lo = r
		}
	}
	return lo, nil
}

// ColumnScore is the score the mover gets by playing Column.
type ColumnScore struct {
	Column int
	Score  int
}

// ScoreMoves solves every playable column of p, in column order.
func (s *Solver) ScoreMoves(ctx context.Context, p Position) ([]ColumnScore, error) {
	scores := make([]ColumnScore, 0, W)
	for col := 0; col < W; col++ {
		if !p.CanPlay(col) {
			continue
		}
		if p.IsWinningMove(col) {
			scores = append(scores, ColumnScore{Column: col, Score: (BoardSize + 1 - p.moves) / 2})
			continue
		}

		child := p
		child.PlayCol(col)
		score, err := s.Solve(ctx, child)
		if err != nil {
			return nil, err
		}
		scores = append(scores, ColumnScore{Column: col, Score: -score})
	}
	return scores, nil
}

// negamax expects that the player to move cannot win immediately.
func (s *Solver) negamax(p Position, alpha, beta int) int {
	s.nodeCount++
	if s.nodeCount%cancelCheckInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}

	next := p.possibleNonLosingMoves()
	if next == 0 {
		return -(BoardSize - p.moves) / 2
	}
	if p.moves >= BoardSize-2 {
		return 0
	}

	lo := -(BoardSize - 2 - p.moves) / 2
	if alpha < lo {
		alpha = lo
		if alpha >= beta {
			return alpha
		}
	}

	hi := (BoardSize - 1 - p.moves) / 2
	if v := s.table.Get(p.Key()); v != 0 {
		hi = int(v) + MinScore - 1
	}
	if beta > hi {
		beta = hi
		if alpha >= beta {
			return beta
		}
	}

	var moves moveSorter
	for i := W - 1; i >= 0; i-- {
		if move := next & columnMask(columnOrder[i]); move != 0 {
			moves.add(move, p.moveScore(move))
		}
	}

	for move := moves.next(); move != 0; move = moves.next() {
		child := p
		child.play(move)
		score := -s.negamax(child, -beta, -alpha)
		if s.stopped {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	s.table.Put(p.Key(), uint8(alpha-MinScore+1))
	return alpha
}

// moveSorter hands out moves by decreasing score; among equal scores the
// last added comes out first.
type moveSorter struct {
	size    int
	entries [W]struct {
		move  uint64
		score int
	}
}

func (m *moveSorter) add(move uint64, score int) {
	pos := m.size
	m.size++
	for ; pos > 0 && m.entries[pos-1].score > score; pos-- {
		m.entries[pos] = m.entries[pos-1]
	}
	m.entries[pos].move = move
	m.entries[pos].score = score
}

func (m *moveSorter) next() uint64 {
	if m.size == 0 {
		return 0
	}
	m.size--
	return m.entries[m.size].move
}
