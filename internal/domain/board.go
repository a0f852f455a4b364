package domain

// Board holds the grid and the per-column fill counts.
// Row 0 is the top row and row Rows-1 the bottom one.
// Board is a value type: assigning it copies the whole state.
type Board struct {
	grid    [Rows][Columns]PlayerID
	heights [Columns]int
}

func NewBoard() Board {
	return Board{}
}

// this creates a deep copy of the board
func (b *Board) Clone() Board {
	return *b
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b.heights[column] < Rows
}

// Drop lets a disk fall into column and returns the row it landed on.
// The board is untouched when an error is returned.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrColumnOutOfRange
	}
	if b.heights[column] == Rows {
		return -1, ErrColumnFull
	}

	row := Rows - 1 - b.heights[column]
	b.grid[row][column] = player
	b.heights[column]++
	return row, nil
}

// CellAt returns Empty for coordinates outside the grid.
func (b *Board) CellAt(row, col int) PlayerID {
	if !isInBounds(row, col) {
		return Empty
	}
	return b.grid[row][col]
}

func (b *Board) FillCount(col int) int {
	if col < 0 || col >= Columns {
		return 0
	}
	return b.heights[col]
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.heights[c] < Rows {
			return false
		}
	}
	return true
}

func (b *Board) DiskCount() int {
	total := 0
	for c := 0; c < Columns; c++ {
		total += b.heights[c]
	}
	return total
}

// this is a helper function that will later be used by the bot
func (b *Board) ValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.heights[col] < Rows {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// this will simulate a move and give the result to the caller
func SimulateMove(board Board, column int, player PlayerID) (Board, int, error) {
	row, err := board.Drop(column, player)
	if err != nil {
		return board, -1, err
	}
	return board, row, nil
}

func isInBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
