package domain

// Game is the canonical match state: board, turn and status.
// It is mutated only through ApplyMove and is not safe for concurrent use.
type Game struct {
	board         Board
	currentPlayer PlayerID
	status        GameStatus
	winner        PlayerID
	moveCount     int
}

func NewGame() *Game {
	return &Game{
		board:         NewBoard(),
		currentPlayer: Player1,
		status:        StatusActive,
		winner:        Empty,
	}
}

// Clone returns an independent copy; mutating either side never affects the other.
func (g *Game) Clone() *Game {
	c := *g
	return &c
}

// ApplyMove drops a disk for the current player into column.
//
// Callers must stop issuing moves once the status is no longer StatusActive;
// such calls are rejected with ErrGameOver. On any error the game is left
// exactly as it was.
func (g *Game) ApplyMove(column int) (int, error) {
	if g.status != StatusActive {
		return -1, ErrGameOver
	}

	row, err := g.board.Drop(column, g.currentPlayer)
	if err != nil {
		return -1, err
	}
	g.moveCount++

	if HasWin(&g.board, row, column, g.currentPlayer) {
		g.status = StatusWon
		g.winner = g.currentPlayer
		return row, nil
	}

	if g.board.IsFull() {
		g.status = StatusDraw
		return row, nil
	}

	g.currentPlayer = Opponent(g.currentPlayer)
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

func (g *Game) CurrentTurn() PlayerID        { return g.currentPlayer }
func (g *Game) Status() GameStatus           { return g.status }
func (g *Game) Winner() PlayerID             { return g.winner }
func (g *Game) MoveCount() int               { return g.moveCount }
func (g *Game) CellAt(row, col int) PlayerID { return g.board.CellAt(row, col) }
func (g *Game) FillCount(col int) int        { return g.board.FillCount(col) }
func (g *Game) ValidMoves() []int            { return g.board.ValidMoves() }

// Board returns a copy of the grid.
func (g *Game) Board() Board {
	return g.board.Clone()
}

// View wraps g so that holders of the result cannot reach ApplyMove.
func (g *Game) View() BoardView {
	return gameView{g: g}
}

type gameView struct {
	g *Game
}

func (v gameView) CellAt(row, col int) PlayerID { return v.g.CellAt(row, col) }
func (v gameView) FillCount(col int) int        { return v.g.FillCount(col) }
func (v gameView) CurrentTurn() PlayerID        { return v.g.currentPlayer }
func (v gameView) Status() GameStatus           { return v.g.status }
func (v gameView) Winner() PlayerID             { return v.g.winner }
func (v gameView) MoveCount() int               { return v.g.moveCount }
func (v gameView) Clone() *Game                 { return v.g.Clone() }

// ReplayMoves builds a game by applying columns in order from the empty board.
func ReplayMoves(columns ...int) (*Game, error) {
	g := NewGame()
	for _, col := range columns {
		if _, err := g.ApplyMove(col); err != nil {
			return nil, err
		}
	}
	return g, nil
}
