package bot

import (
	"context"
	"math"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// MediumBot scores every column through a fixed series of tactical checks.
type MediumBot struct{}

func NewMedium() *MediumBot {
	return &MediumBot{}
}

type simulation struct {
	board domain.Board
	row   int
}

func (MediumBot) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	board, botPlayer, validColumns, err := snapshot(ctx, view)
	if err != nil {
		return -1, err
	}
	return calculateMediumMove(board, botPlayer, validColumns), nil
}

func calculateMediumMove(board domain.Board, botPlayer domain.PlayerID, validColumns []int) int {
	opponent := domain.Opponent(botPlayer)
	scores := make(map[int]int, len(validColumns))

	// Pre-calculate simulated boards for each column to avoid redundant simulations
	botSimulations := make(map[int]simulation, len(validColumns))
	oppSimulations := make(map[int]simulation, len(validColumns))
	for _, col := range validColumns {
		scores[col] = 0
		botBoard, botRow, _ := domain.SimulateMove(board, col, botPlayer)
		botSimulations[col] = simulation{botBoard, botRow}
		oppBoard, oppRow, _ := domain.SimulateMove(board, col, opponent)
		oppSimulations[col] = simulation{oppBoard, oppRow}
	}

	currentOpponentThreat := evaluateWinningThreat(board, opponent, botPlayer)

	for _, col := range validColumns {
		botSim := botSimulations[col]
		oppSim := oppSimulations[col]

		// === PHASE 1: immediate wins ===
		if domain.HasWin(&botSim.board, botSim.row, col, botPlayer) {
			scores[col] += SCORE_WIN_NOW
		}

		// === PHASE 2: block opponent's immediate wins ===
		if domain.HasWin(&oppSim.board, oppSim.row, col, opponent) {
			scores[col] += SCORE_BLOCK_WIN
		}

		// === PHASE 3: create winning threats ===
		scores[col] += evaluateWinningThreat(botSim.board, botPlayer, opponent)

		// === PHASE 4: moves that reduce the opponent's winning threats ===
		if evaluateWinningThreat(botSim.board, opponent, botPlayer) < currentOpponentThreat {
			scores[col] += SCORE_BLOCK_WIN_THREAT
		}

		// === PHASE 5: line potential, half value for blocking vs creating ===
		scores[col] += evaluateThreats(&botSim.board, botSim.row, col, botPlayer)
		scores[col] += evaluateThreats(&oppSim.board, oppSim.row, col, opponent) / 2

		// === PHASE 6: centre preference ===
		switch distFromCenter := abs(col - domain.Columns/2); distFromCenter {
		case 0:
			scores[col] += SCORE_CENTER
		case 1:
			scores[col] += SCORE_NEAR_CENTER
		case 2:
			scores[col] += SCORE_EDGE
		}
	}

	return findBestColumn(scores)
}

// Find the column with the highest score
func findBestColumn(scores map[int]int) int {
	maxScore := math.MinInt
	bestColumn := -1
	center := domain.Columns / 2

	for col := 0; col < domain.Columns; col++ {
		score, exists := scores[col]
		if !exists {
			continue
		}

		if score > maxScore {
			maxScore = score
			bestColumn = col
		} else if score == maxScore && abs(col-center) < abs(bestColumn-center) {
			// Tie-breaker: prefer columns closer to center
			bestColumn = col
		}
	}

	return bestColumn
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
