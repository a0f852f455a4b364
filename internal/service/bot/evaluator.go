package bot

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_WIN_NOW           = 100000 // Bot can win immediately
	SCORE_BLOCK_WIN         = 10000  // Block opponent's immediate win
	SCORE_CREATE_WIN_THREAT = 8000   // Create a position where bot can win next move
	SCORE_BLOCK_WIN_THREAT  = 5000   // Block opponent's potential win setup
	SCORE_THREE_IN_ROW      = 400    // Bot has 3 in a row (good threat)
	SCORE_TWO_IN_ROW        = 100    // Bot has 2 in a row
	SCORE_SINGLE            = 25
	SCORE_CENTER            = 30 // Center column bonus
	SCORE_NEAR_CENTER       = 20 // Near center bonus
	SCORE_EDGE              = 5  // Edge columns
)

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// evaluateBoard calculates a heuristic score for the current board position
func evaluateBoard(board *domain.Board, botPlayer, opponent domain.PlayerID) int {
	score := 0

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch board.CellAt(row, col) {
			case botPlayer:
				score += evaluatePosition(board, row, col, botPlayer)
			case opponent:
				score -= evaluatePosition(board, row, col, opponent)
			}
		}
	}

	// Center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board.CellAt(row, centerCol) {
		case botPlayer:
			score += POSITION_WEIGHT * 2
		case opponent:
			score -= POSITION_WEIGHT * 2
		}
	}

	return score
}

// evaluatePosition evaluates a single position's contribution to the score
func evaluatePosition(board *domain.Board, row, col int, player domain.PlayerID) int {
	score := POSITION_WEIGHT

	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		posCount := domain.CountDiskInDirection(board, row, col, dRow, dCol, player)
		negCount := domain.CountDiskInDirection(board, row, col, -dRow, -dCol, player)
		total := posCount + negCount

		if !checkSpaceForExtension(board, row, col, dRow, dCol, posCount, negCount) {
			continue
		}
		if total >= 2 {
			score += THREE_IN_ROW_WEIGHT
		} else if total == 1 {
			score += TWO_IN_ROW_WEIGHT
		}
	}

	return score
}

// Evaluate threats (3-in-a-row, 2-in-a-row) for a given position
func evaluateThreats(board *domain.Board, row, col int, player domain.PlayerID) int {
	score := 0
	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		posCount := domain.CountDiskInDirection(board, row, col, dRow, dCol, player)
		negCount := domain.CountDiskInDirection(board, row, col, -dRow, -dCol, player)
		total := posCount + negCount + 1

		// No point in counting if we can't extend
		if !checkSpaceForExtension(board, row, col, dRow, dCol, posCount, negCount) {
			continue
		}

		switch {
		case total >= 3:
			score += SCORE_THREE_IN_ROW
		case total == 2:
			score += SCORE_TWO_IN_ROW
		default:
			score += SCORE_SINGLE
		}
	}

	return score
}

// Evaluate winning threats considering opponent's best response
// Returns score based on how many UNBLOCKABLE winning moves the player has
func evaluateWinningThreat(board domain.Board, player, opponent domain.PlayerID) int {
	winningMoves := []int{}
	for _, col := range board.ValidMoves() {
		testBoard, row, _ := domain.SimulateMove(board, col, player)
		if domain.HasWin(&testBoard, row, col, player) {
			winningMoves = append(winningMoves, col)
		}
	}

	// If player has 2+ winning moves, opponent can only block one
	if len(winningMoves) >= 2 {
		return SCORE_CREATE_WIN_THREAT
	}

	if len(winningMoves) == 1 {
		blockBoard, _, err := domain.SimulateMove(board, winningMoves[0], opponent)
		if err != nil {
			return SCORE_CREATE_WIN_THREAT / 4
		}

		// After block, can player still create threats?
		for _, nextCol := range blockBoard.ValidMoves() {
			futureBoard, futureRow, _ := domain.SimulateMove(blockBoard, nextCol, player)
			if domain.HasWin(&futureBoard, futureRow, nextCol, player) {
				return SCORE_CREATE_WIN_THREAT / 2
			}
		}
		return SCORE_CREATE_WIN_THREAT / 4
	}

	return 0
}

// Helper: check if there's room to extend a line
func checkSpaceForExtension(board *domain.Board, row, col, dRow, dCol, posCount, negCount int) bool {
	posRow := row + dRow*(posCount+1)
	posCol := col + dCol*(posCount+1)
	if isInBounds(posRow, posCol) && board.CellAt(posRow, posCol) == domain.Empty && isPlayableSpace(board, posRow, posCol) {
		return true
	}

	negRow := row - dRow*(negCount+1)
	negCol := col - dCol*(negCount+1)
	if isInBounds(negRow, negCol) && board.CellAt(negRow, negCol) == domain.Empty && isPlayableSpace(board, negRow, negCol) {
		return true
	}

	return false
}

// Check if a space is actually playable (respects gravity)
func isPlayableSpace(board *domain.Board, row, col int) bool {
	return row == domain.Rows-1-board.FillCount(col)
}

func isInBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}
