package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Glyphs maps disk owners to what is printed for them.
type Glyphs struct {
	Empty   string
	Player1 string
	Player2 string
}

// DefaultGlyphs uses emoji disks; empty cells take the same two columns.
var DefaultGlyphs = Glyphs{Empty: "  ", Player1: "🟡", Player2: "🔴"}

func (g Glyphs) For(p domain.PlayerID) string {
	switch p {
	case domain.Player1:
		return g.Player1
	case domain.Player2:
		return g.Player2
	}
	return g.Empty
}

// Renderer prints boards as text, top row first, with column numbers below.
type Renderer struct {
	out    io.Writer
	glyphs Glyphs
}

func NewRenderer(out io.Writer, glyphs Glyphs) *Renderer {
	return &Renderer{out: out, glyphs: glyphs}
}

func (r *Renderer) Render(view domain.BoardView) error {
	var sb strings.Builder
	for row := 0; row < domain.Rows; row++ {
		sb.WriteString("|")
		for col := 0; col < domain.Columns; col++ {
			sb.WriteString(r.glyphs.For(view.CellAt(row, col)))
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(" ")
	width := max(cellWidth(r.glyphs), 1)
	for col := 0; col < domain.Columns; col++ {
		fmt.Fprintf(&sb, "%-*d ", width, col)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// cellWidth guesses the display width of a cell: emoji take two columns.
func cellWidth(g Glyphs) int {
	width := 0
	for _, glyph := range []string{g.Empty, g.Player1, g.Player2} {
		w := 0
		for _, r := range glyph {
			if r >= 0x1F000 {
				w += 2
			} else {
				w++
			}
		}
		width = max(width, w)
	}
	return width
}
