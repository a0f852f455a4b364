package bot

import (
	"context"
	"math"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	MINIMAX_DEPTH       = 7
	MINIMAX_WIN         = 1000000
	MINIMAX_LOSS        = -1000000
	POSITION_WEIGHT     = 10
	TWO_IN_ROW_WEIGHT   = 50
	THREE_IN_ROW_WEIGHT = 500
)

// HardBot runs a depth-limited minimax with alpha-beta pruning.
type HardBot struct {
	depth int
}

func NewHard(depth int) *HardBot {
	if depth <= 0 {
		depth = MINIMAX_DEPTH
	}
	return &HardBot{depth: depth}
}

// how many nodes minimax visits between two context checks
const hardCancelCheckInterval = 1 << 12

func (b *HardBot) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	board, botPlayer, validColumns, err := snapshot(ctx, view)
	if err != nil {
		return -1, err
	}

	search := &hardSearch{
		ctx:       ctx,
		depth:     b.depth,
		botPlayer: botPlayer,
		opponent:  domain.Opponent(botPlayer),
	}
	ordered := orderByCenter(validColumns)
	bestCol := ordered[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	for _, col := range ordered {
		testBoard, row, _ := domain.SimulateMove(board, col, botPlayer)
		if domain.HasWin(&testBoard, row, col, botPlayer) {
			return col, nil
		}

		score := search.minimax(testBoard, b.depth-1, alpha, beta, false)
		if search.stopped {
			return -1, ctx.Err()
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}

	return bestCol, nil
}

// hardSearch is the state of one SelectMove call.
type hardSearch struct {
	ctx                 context.Context
	depth               int
	botPlayer, opponent domain.PlayerID
	nodes               uint64
	stopped             bool
}

func (s *hardSearch) minimax(board domain.Board, depth int, alpha, beta int, isMaximizing bool) int {
	s.nodes++
	if s.nodes%hardCancelCheckInterval == 1 && s.ctx.Err() != nil {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}

	validColumns := board.ValidMoves()
	if depth == 0 || len(validColumns) == 0 {
		return evaluateBoard(&board, s.botPlayer, s.opponent)
	}

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testBoard, row, _ := domain.SimulateMove(board, col, s.botPlayer)
			if domain.HasWin(&testBoard, row, col, s.botPlayer) {
				return MINIMAX_WIN - (s.depth - depth) // Prefer quicker wins
			}

			eval := s.minimax(testBoard, depth-1, alpha, beta, false)
			if s.stopped {
				return 0
			}
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, s.opponent)
		if domain.HasWin(&testBoard, row, col, s.opponent) {
			return MINIMAX_LOSS + (s.depth - depth) // Prefer delaying losses
		}

		eval := s.minimax(testBoard, depth-1, alpha, beta, true)
		if s.stopped {
			return 0
		}
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

// orderByCenter returns columns sorted by distance from the centre; the
// input is left as is.
func orderByCenter(columns []int) []int {
	ordered := make([]int, 0, len(columns))
	center := domain.Columns / 2
	for dist := 0; dist <= center; dist++ {
		for _, col := range columns {
			if abs(col-center) == dist {
				ordered = append(ordered, col)
			}
		}
	}
	return ordered
}
