package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

// fills the board completely without anyone connecting four
var drawSequence = []int{
	5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
	2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
}

func replay(t *testing.T, cols ...int) *domain.Game {
	t.Helper()
	g, err := domain.ReplayMoves(cols...)
	if err != nil {
		t.Fatalf("replay %v: %v", cols, err)
	}
	return g
}

func heuristicBots() map[string]domain.MoveStrategy {
	return map[string]domain.MoveStrategy{
		"easy":   NewEasy(1),
		"medium": NewMedium(),
		"hard":   NewHard(4),
	}
}

func TestBotsTakeImmediateWin(t *testing.T) {
	// Player1 to move with three stacked in column 0
	g := replay(t, 0, 1, 0, 1, 0, 2)
	for name, s := range heuristicBots() {
		t.Run(name, func(t *testing.T) {
			col, err := s.SelectMove(context.Background(), g.View())
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if col != 0 {
				t.Fatalf("expected winning column 0, got %d", col)
			}
		})
	}
}

func TestBotsBlockImmediateLoss(t *testing.T) {
	// Player2 to move, Player1 threatens the bottom row at column 3
	g := replay(t, 0, 6, 1, 6, 2)
	for name, s := range heuristicBots() {
		t.Run(name, func(t *testing.T) {
			col, err := s.SelectMove(context.Background(), g.View())
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if col != 3 {
				t.Fatalf("expected block at column 3, got %d", col)
			}
		})
	}
}

func TestBotsDoNotTouchCanonicalGame(t *testing.T) {
	g := replay(t, 3, 3, 2)
	before := g.Clone()
	for name, s := range heuristicBots() {
		if _, err := s.SelectMove(context.Background(), g.View()); err != nil {
			t.Fatalf("%s: select: %v", name, err)
		}
	}
	if *g != *before {
		t.Fatalf("strategy mutated the canonical game")
	}
}

func TestBotsReturnLegalColumns(t *testing.T) {
	for name, s := range heuristicBots() {
		t.Run(name, func(t *testing.T) {
			g := domain.NewGame()
			for !g.IsFinished() {
				col, err := s.SelectMove(context.Background(), g.View())
				if err != nil {
					t.Fatalf("select after %d moves: %v", g.MoveCount(), err)
				}
				if _, err := g.ApplyMove(col); err != nil {
					t.Fatalf("bot chose rejected column %d: %v", col, err)
				}
			}
		})
	}
}

func TestBotsReportNoLegalMove(t *testing.T) {
	g := replay(t, drawSequence...)
	for name, s := range heuristicBots() {
		if _, err := s.SelectMove(context.Background(), g.View()); !errors.Is(err, ErrNoLegalMove) {
			t.Fatalf("%s: expected ErrNoLegalMove, got %v", name, err)
		}
	}
}

func TestBotsHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := domain.NewGame()
	strategies := heuristicBots()
	strategies["perfect"] = NewPerfectSolver(1<<10, nil)
	for name, s := range strategies {
		if _, err := s.SelectMove(ctx, g.View()); !errors.Is(err, context.Canceled) {
			t.Fatalf("%s: expected context.Canceled, got %v", name, err)
		}
	}
}

func TestFindBestColumnPrefersCenterOnTies(t *testing.T) {
	if got := findBestColumn(map[int]int{0: 10, 2: 10, 5: 10}); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := findBestColumn(map[int]int{0: 11, 3: 10}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestBestScoredColumn(t *testing.T) {
	scores := []solver.ColumnScore{{Column: 0, Score: 2}, {Column: 4, Score: 2}, {Column: 6, Score: -1}}
	if got := bestScoredColumn(scores); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestNewRegistry(t *testing.T) {
	for _, name := range []string{Easy, Medium, Hard, Perfect, PerfectCached} {
		if _, err := New(name, Options{SolverTableSize: 1 << 10}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if _, err := New(Offline, Options{}); !errors.Is(err, ErrTableRequired) {
		t.Fatalf("expected ErrTableRequired, got %v", err)
	}
	if _, err := New(Offline, Options{Table: newMapTable()}); err != nil {
		t.Fatalf("offline with table: %v", err)
	}
	if _, err := New("grandmaster", Options{}); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestHardStopsDeepSearchOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewHard(domain.Rows*domain.Columns).SelectMove(ctx, domain.NewGame().View())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("search kept running for %s after the deadline", elapsed)
	}
}
