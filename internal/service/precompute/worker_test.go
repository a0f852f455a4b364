package precompute

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

// fills the board completely without anyone connecting four
var drawSequence = []int{
	5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
	2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
}

type syncTable struct {
	mu     sync.Mutex
	scores map[uint64]int
}

func newSyncTable() *syncTable {
	return &syncTable{scores: make(map[uint64]int)}
}

func (s *syncTable) Lookup(_ context.Context, key uint64) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.scores[key]
	return score, ok, nil
}

func (s *syncTable) Store(_ context.Context, key uint64, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[key] = score
	return nil
}

type missStrategy struct{ calls int }

func (m *missStrategy) SelectMove(context.Context, domain.BoardView) (int, error) {
	m.calls++
	return -1, errors.New("fallback should not be needed")
}

func TestEnumerateDeduplicatesMirrors(t *testing.T) {
	positions := Enumerate(solver.Position{}, 1)
	// seven first moves, three pairs of which are mirror images
	if len(positions) != 4 {
		t.Fatalf("expected 4 distinct first moves, got %d", len(positions))
	}

	seen := map[uint64]bool{}
	for _, p := range Enumerate(solver.Position{}, 3) {
		if seen[p.CanonicalKey()] {
			t.Fatalf("duplicate position")
		}
		seen[p.CanonicalKey()] = true
	}
}

func TestEnumerateStopsAfterWins(t *testing.T) {
	root, _ := solver.FromMoves(0, 1, 0, 1, 0, 1)
	for _, p := range Enumerate(root, 1) {
		if p.Moves() != 7 {
			t.Fatalf("unexpected depth %d", p.Moves())
		}
	}
	// column 0 wins, so only six children remain
	if got := len(Enumerate(root, 1)); got != 6 {
		t.Fatalf("expected 6 children, got %d", got)
	}
}

func TestWorkerFillsTable(t *testing.T) {
	table := newSyncTable()
	w := NewWorker(table, 2, 3, 65537)
	w.Root = drawSequence[:35]

	stats, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Solved != stats.Enumerated || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	root, _ := solver.FromMoves(drawSequence[:35]...)
	check := solver.New(65537)
	for _, pos := range Enumerate(root, 2) {
		want, err := check.Solve(context.Background(), pos)
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		got, found, _ := table.Lookup(context.Background(), pos.CanonicalKey())
		if !found || got != want {
			t.Fatalf("table holds %d (found=%v), solver says %d", got, found, want)
		}
	}

	// the offline strategy can now answer the root without help
	g, _ := domain.ReplayMoves(drawSequence[:35]...)
	fallback := &missStrategy{}
	if _, err := bot.NewOfflineTable(table, fallback).SelectMove(context.Background(), g.View()); err != nil {
		t.Fatalf("offline select: %v", err)
	}
	if fallback.calls != 0 {
		t.Fatalf("offline strategy fell back despite a filled table")
	}

	again, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if again.Solved != 0 || again.Skipped != stats.Enumerated {
		t.Fatalf("second run should skip everything: %+v", again)
	}
}

func TestWorkerRejectsInvalidRoot(t *testing.T) {
	w := NewWorker(newSyncTable(), 1, 1, 1<<10)
	w.Root = []int{0, 0, 0, 0, 0, 0, 0}
	if _, err := w.Run(context.Background()); err == nil {
		t.Fatalf("expected an error for an overfull column")
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := NewWorker(newSyncTable(), 2, 2, 1<<10)
	w.Root = drawSequence[:35]
	if _, err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
