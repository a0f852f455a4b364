package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type readResult struct {
	line string
	err  error
}

// Input asks a human for a column on a terminal. Malformed and out-of-range
// answers are asked again; whether the column is full is left to the engine.
//
// Lines are read by a single background goroutine so that a pending prompt
// gives up as soon as ctx ends. A line typed after that is kept for the next
// SelectMove.
type Input struct {
	reader *bufio.Reader
	out    io.Writer
	glyphs Glyphs

	start sync.Once
	lines chan readResult
	err   error // sticky read error, set once the reader stopped
}

func NewInput(in io.Reader, out io.Writer, glyphs Glyphs) *Input {
	return &Input{
		reader: bufio.NewReader(in),
		out:    out,
		glyphs: glyphs,
		lines:  make(chan readResult),
	}
}

func (i *Input) readLines() {
	for {
		line, err := i.reader.ReadString('\n')
		i.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func (i *Input) SelectMove(ctx context.Context, view domain.BoardView) (int, error) {
	i.start.Do(func() { go i.readLines() })

	piece := i.glyphs.For(view.CurrentTurn())
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if i.err != nil {
			return -1, i.err
		}

		fmt.Fprintf(i.out, "Enter column to insert piece (%s): ", piece)
		var res readResult
		select {
		case res = <-i.lines:
		case <-ctx.Done():
			fmt.Fprintln(i.out)
			return -1, ctx.Err()
		}
		if res.err != nil {
			i.err = res.err
			if res.line == "" {
				return -1, res.err
			}
		}

		column, err := strconv.Atoi(strings.TrimSpace(res.line))
		switch {
		case err != nil:
			fmt.Fprintln(i.out, "Invalid input.")
		case column < 0 || column >= domain.Columns:
			fmt.Fprintln(i.out, "Input out of range.")
		default:
			return column, nil
		}
	}
}
