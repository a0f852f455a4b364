package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// fills the board completely without anyone connecting four
var drawSequence = []int{
	5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
	2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
}

// scripted replays a fixed list of columns.
type scripted struct {
	columns []int
	next    int
}

func (s *scripted) SelectMove(context.Context, domain.BoardView) (int, error) {
	if s.next >= len(s.columns) {
		return -1, errors.New("script exhausted")
	}
	col := s.columns[s.next]
	s.next++
	return col, nil
}

// split hands the odd and even entries of a move list to two scripted players.
func split(moves []int) (*scripted, *scripted) {
	a, b := &scripted{}, &scripted{}
	for i, col := range moves {
		if i%2 == 0 {
			a.columns = append(a.columns, col)
		} else {
			b.columns = append(b.columns, col)
		}
	}
	return a, b
}

type countingRenderer struct {
	renders int
	last    domain.BoardView
}

func (r *countingRenderer) Render(view domain.BoardView) error {
	r.renders++
	r.last = view
	return nil
}

type blockingStrategy struct{}

func (blockingStrategy) SelectMove(ctx context.Context, _ domain.BoardView) (int, error) {
	<-ctx.Done()
	return -1, ctx.Err()
}

func TestMatchPlaysToWin(t *testing.T) {
	a, b := split([]int{0, 6, 1, 6, 2, 6, 3})
	renderer := &countingRenderer{}
	var out bytes.Buffer
	m := NewMatch(Player{Name: "Alice", Strategy: a}, Player{Name: "Bob", Strategy: b}, renderer, &out)

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != domain.StatusWon || result.Winner != domain.Player1 || result.WinnerName != "Alice" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Moves != 7 || result.Reason != "connect_four" || result.MatchID != m.ID {
		t.Fatalf("unexpected result: %+v", result)
	}
	if renderer.renders != 7 {
		t.Fatalf("expected one render per move, got %d", renderer.renders)
	}
	if strings.Count(out.String(), "Alice Turn") != 4 || strings.Count(out.String(), "Bob Turn") != 3 {
		t.Fatalf("unexpected turn announcements: %q", out.String())
	}
}

func TestMatchPlaysToDraw(t *testing.T) {
	a, b := split(drawSequence)
	m := NewMatch(Player{Name: "A", Strategy: a}, Player{Name: "B", Strategy: b}, nil, nil)

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != domain.StatusDraw || result.Winner != domain.Empty || result.Reason != "draw" {
		t.Fatalf("expected a draw, got %+v", result)
	}
	if result.Moves != domain.Rows*domain.Columns {
		t.Fatalf("expected a full board, got %d moves", result.Moves)
	}
}

func TestMatchRetriesInteractiveRejections(t *testing.T) {
	// Player1 keeps trying the full column before giving up on it.
	human := &scripted{columns: []int{0, 0, 0, 0, 0, 1, 1, 1, 1}}
	opponent := &scripted{columns: []int{0, 0, 0, 6, 6, 6}}
	var out bytes.Buffer
	m := NewMatch(Player{Name: "Human", Strategy: human, Interactive: true}, Player{Name: "Bot", Strategy: opponent}, nil, &out)

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.WinnerName != "Human" {
		t.Fatalf("expected the human to win, got %+v", result)
	}
	if strings.Count(out.String(), "Column is already filled") != 2 {
		t.Fatalf("expected two rejections, got %q", out.String())
	}
}

func TestMatchStopsMisbehavingStrategy(t *testing.T) {
	a := &scripted{columns: []int{3, 3, 3, 3, 3, 3, 3, 3}}
	b := &scripted{columns: []int{3, 3, 3, 9, 9, 9}}
	m := NewMatch(Player{Name: "A", Strategy: a}, Player{Name: "B", Strategy: b}, nil, nil)

	result, err := m.Run(context.Background())
	if !errors.Is(err, ErrStrategyRejected) {
		t.Fatalf("expected ErrStrategyRejected, got %v", err)
	}
	if result.Status != domain.StatusActive || result.Moves != 6 {
		t.Fatalf("rejections must not change the game: %+v", result)
	}
}

func TestMatchTimesOutSlowStrategy(t *testing.T) {
	m := NewMatch(Player{Name: "Slow", Strategy: blockingStrategy{}}, Player{Name: "B", Strategy: &scripted{}}, nil, nil)
	m.MoveTimeout = 20 * time.Millisecond

	_, err := m.Run(context.Background())
	if !errors.Is(err, ErrMoveTimeout) {
		t.Fatalf("expected ErrMoveTimeout, got %v", err)
	}
	if m.View().MoveCount() != 0 {
		t.Fatalf("timed out move must not be applied")
	}
}

func TestMatchFallsBackWhenStrategyTimesOut(t *testing.T) {
	b := &scripted{columns: []int{6, 6, 6}}
	m := NewMatch(Player{Name: "Slow", Strategy: blockingStrategy{}}, Player{Name: "B", Strategy: b}, nil, nil)
	m.MoveTimeout = 20 * time.Millisecond
	m.Fallback = &scripted{columns: []int{0, 0, 0, 0}}

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != domain.StatusWon || result.WinnerName != "Slow" {
		t.Fatalf("fallback moves should have won column 0: %+v", result)
	}
}

func TestMatchBoundsSlowHints(t *testing.T) {
	a, b := split([]int{0, 6, 1, 6, 2, 6, 3})
	var out bytes.Buffer
	m := NewMatch(Player{Name: "A", Strategy: a, Interactive: true}, Player{Name: "B", Strategy: b}, nil, &out)
	m.Hints = blockingStrategy{}
	m.HintTimeout = 10 * time.Millisecond

	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "Best move") {
		t.Fatalf("a timed out hint must not be printed: %q", out.String())
	}
}

func TestMatchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, b := split([]int{0, 1})
	m := NewMatch(Player{Name: "A", Strategy: a}, Player{Name: "B", Strategy: b}, nil, nil)
	if _, err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMatchPrintsHintsForInteractivePlayers(t *testing.T) {
	a, b := split([]int{0, 6, 1, 6, 2, 6, 3})
	var out bytes.Buffer
	m := NewMatch(Player{Name: "A", Strategy: a, Interactive: true}, Player{Name: "B", Strategy: b}, nil, &out)
	m.Hints = &scripted{columns: []int{3, 3, 3, 3}}

	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(out.String(), "Best move: 3") != 4 {
		t.Fatalf("expected a hint before each interactive turn, got %q", out.String())
	}
}

func TestStrategiesNeverSeeCanonicalGame(t *testing.T) {
	probe := &probeStrategy{}
	b := &scripted{columns: []int{6, 6, 6}}
	m := NewMatch(Player{Name: "Probe", Strategy: probe}, Player{Name: "B", Strategy: b}, nil, nil)
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if probe.sawGame {
		t.Fatalf("strategy received the mutable game")
	}
}

type probeStrategy struct {
	sawGame bool
	moves   int
}

func (p *probeStrategy) SelectMove(_ context.Context, view domain.BoardView) (int, error) {
	if _, ok := view.(*domain.Game); ok {
		p.sawGame = true
	}
	// scribbling on a clone must not reach the match
	sim := view.Clone()
	sim.ApplyMove(5)
	p.moves++
	return p.moves - 1, nil
}
