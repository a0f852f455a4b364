package solver

import (
	"math/bits"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Position is a bitboard encoding of a board from the point of view of the
// player to move. Each column takes H+1 bits, bottom cell first; the spare top
// bit keeps shifts from bleeding into the next column.
//
//	6 13 20 27 34 41 48
//	5 12 19 26 33 40 47
//	...
//	0  7 14 21 28 35 42
type Position struct {
	current uint64 // disks of the player to move
	mask    uint64 // all disks
	moves   int
}

const (
	W = domain.Columns
	H = domain.Rows

	BoardSize = W * H
	MinScore  = -BoardSize/2 + 3
	MaxScore  = (BoardSize+1)/2 - 3
)

var (
	bottomMask = computeBottomMask()
	boardMask  = bottomMask * ((1 << H) - 1)
)

func computeBottomMask() uint64 {
	var m uint64
	for col := 0; col < W; col++ {
		m |= bottomMaskCol(col)
	}
	return m
}

func bottomMaskCol(col int) uint64 {
	return uint64(1) << (col * (H + 1))
}

func topMaskCol(col int) uint64 {
	return uint64(1) << (H - 1 + col*(H+1))
}

func columnMask(col int) uint64 {
	return ((uint64(1) << H) - 1) << (col * (H + 1))
}

// FromView encodes the board seen through view for the player whose turn it is.
func FromView(view domain.BoardView) Position {
	me := view.CurrentTurn()
	var p Position
	for col := 0; col < W; col++ {
		for row := 0; row < H; row++ {
			cell := view.CellAt(row, col)
			if cell == domain.Empty {
				continue
			}
			bit := uint64(1) << (col*(H+1) + (H - 1 - row))
			p.mask |= bit
			if cell == me {
				p.current |= bit
			}
			p.moves++
		}
	}
	return p
}

// FromMoves replays columns from the empty board. It reports false when a
// column is full or out of range.
func FromMoves(columns ...int) (Position, bool) {
	var p Position
	for _, col := range columns {
		if col < 0 || col >= W || !p.CanPlay(col) {
			return p, false
		}
		p.PlayCol(col)
	}
	return p, true
}

func (p *Position) Moves() int {
	return p.moves
}

func (p *Position) CanPlay(col int) bool {
	return p.mask&topMaskCol(col) == 0
}

func (p *Position) PlayCol(col int) {
	p.play((p.mask + bottomMaskCol(col)) & columnMask(col))
}

func (p *Position) play(move uint64) {
	p.current ^= p.mask
	p.mask |= move
	p.moves++
}

// IsWinningMove reports whether the player to move wins by playing col.
func (p *Position) IsWinningMove(col int) bool {
	return p.winningPositions()&p.possible()&columnMask(col) != 0
}

func (p *Position) CanWinNext() bool {
	return p.winningPositions()&p.possible() != 0
}

// Key uniquely identifies the position (disks of the mover plus occupancy).
func (p *Position) Key() uint64 {
	return p.current + p.mask
}

// CanonicalKey identifies a position and its left-right mirror with the same
// value, which halves what caches and tables need to hold.
func (p *Position) CanonicalKey() uint64 {
	key := p.Key()
	mirrored := mirror(p.current) + mirror(p.mask)
	if mirrored < key {
		return mirrored
	}
	return key
}

func mirror(bb uint64) uint64 {
	var out uint64
	for col := 0; col < W; col++ {
		shift := col * (H + 1)
		column := (bb >> shift) & ((uint64(1) << (H + 1)) - 1)
		out |= column << ((W - 1 - col) * (H + 1))
	}
	return out
}

func (p *Position) possible() uint64 {
	return (p.mask + bottomMask) & boardMask
}

// possibleNonLosingMoves returns the playable cells that do not hand the
// opponent an immediate win. Only valid when the mover cannot win at once.
func (p *Position) possibleNonLosingMoves() uint64 {
	possible := p.possible()
	opponentWin := p.opponentWinningPositions()
	forced := possible & opponentWin
	if forced != 0 {
		if forced&(forced-1) != 0 {
			return 0 // two threats, cannot block both
		}
		possible = forced
	}
	return possible &^ (opponentWin >> 1)
}

func (p *Position) moveScore(move uint64) int {
	return bits.OnesCount64(computeWinningPosition(p.current|move, p.mask))
}

func (p *Position) winningPositions() uint64 {
	return computeWinningPosition(p.current, p.mask)
}

func (p *Position) opponentWinningPositions() uint64 {
	return computeWinningPosition(p.current^p.mask, p.mask)
}

// computeWinningPosition returns the empty cells that would complete a line
// of four for the disks in position.
func computeWinningPosition(position, mask uint64) uint64 {
	// vertical
	r := (position << 1) & (position << 2) & (position << 3)

	for _, step := range [3]int{H + 1, H, H + 2} {
		// horizontal, then the two diagonals
		p := (position << step) & (position << (2 * step))
		r |= p & (position << (3 * step))
		r |= p & (position >> step)
		p = (position >> step) & (position >> (2 * step))
		r |= p & (position << step)
		r |= p & (position >> (3 * step))
	}

	return r & (boardMask ^ mask)
}
