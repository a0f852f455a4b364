package domain

import "context"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnOutOfRange Error = "column out of range"
	ErrColumnFull       Error = "column is full"
	ErrGameOver         Error = "game is already over"
)

// Opponent returns the other player. Empty maps to Empty.
func Opponent(p PlayerID) PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// BoardView is the read-only face of a game handed to strategies and renderers.
// Clone is the only way to obtain state that may be mutated.
type BoardView interface {
	CellAt(row, col int) PlayerID
	FillCount(col int) int
	CurrentTurn() PlayerID
	Status() GameStatus
	Winner() PlayerID
	MoveCount() int
	Clone() *Game
}

// MoveStrategy picks a column for the player to move in view.
// The returned column must be playable on view; ctx bounds how long the
// strategy may think.
type MoveStrategy interface {
	SelectMove(ctx context.Context, view BoardView) (int, error)
}
