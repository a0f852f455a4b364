package bot

import (
	"context"
	"math/rand"
	"sync"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// EasyBot wins when it can, blocks an immediate loss, and otherwise plays at random.
type EasyBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	board, botPlayer, validColumns, err := snapshot(ctx, view)
	if err != nil {
		return -1, err
	}

	if col, ok := findWinningColumn(board, validColumns, botPlayer); ok {
		return col, nil
	}
	if col, ok := findWinningColumn(board, validColumns, domain.Opponent(botPlayer)); ok {
		return col, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return validColumns[b.rng.Intn(len(validColumns))], nil
}

func findWinningColumn(board domain.Board, validColumns []int, player domain.PlayerID) (int, bool) {
	for _, col := range validColumns {
		testBoard, row, err := domain.SimulateMove(board, col, player)
		if err != nil {
			continue
		}
		if domain.HasWin(&testBoard, row, col, player) {
			return col, true
		}
	}
	return -1, false
}
