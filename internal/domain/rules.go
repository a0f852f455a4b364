package domain

// the four axes a line can run along; the opposite half is scanned by negating
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// HasWin reports whether player owns ToWin aligned disks through (row, column).
// Only lines passing through the last placed disk can have changed, so only
// those are scanned.
func HasWin(board *Board, row, column int, player PlayerID) bool {
	if player == Empty || board.CellAt(row, column) != player {
		return false
	}

	for _, dir := range directions {
		run := 1 +
			CountDiskInDirection(board, row, column, dir[0], dir[1], player) +
			CountDiskInDirection(board, row, column, -dir[0], -dir[1], player)
		if run >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction, excluding the start cell
func CountDiskInDirection(board *Board, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for isInBounds(r, c) && board.grid[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
