package precompute

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/solver"
)

const progressInterval = 10 * time.Second

// Worker fills a position table with the exact scores of every position
// reachable within Depth plies of Root.
type Worker struct {
	Table     bot.PositionTable
	Root      []int // opening to expand from, the empty board when nil
	Depth     int
	Workers   int
	TableSize int // transposition table entries per solver
}

type Stats struct {
	Enumerated int64
	Solved     int64
	Skipped    int64 // already present in the table
}

func NewWorker(table bot.PositionTable, depth, workers, tableSize int) *Worker {
	return &Worker{Table: table, Depth: depth, Workers: workers, TableSize: tableSize}
}

// Run enumerates the positions and solves them in parallel, each goroutine
// with its own solver. It stops at the first error or when ctx ends.
func (w *Worker) Run(ctx context.Context) (Stats, error) {
	root, ok := solver.FromMoves(w.Root...)
	if !ok {
		return Stats{}, fmt.Errorf("invalid root opening %v", w.Root)
	}

	positions := Enumerate(root, w.Depth)
	stats := Stats{Enumerated: int64(len(positions))}
	log.Info().Str("component", "precompute").Int("positions", len(positions)).
		Int("depth", w.Depth).Int("workers", w.Workers).Msg("starting")

	workers := max(w.Workers, 1)
	jobs := make(chan solver.Position)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, pos := range positions {
			select {
			case jobs <- pos:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var solved, skipped atomic.Int64
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			s := solver.New(w.TableSize)
			for pos := range jobs {
				key := pos.CanonicalKey()
				if _, found, err := w.Table.Lookup(ctx, key); err != nil {
					return err
				} else if found {
					skipped.Add(1)
					continue
				}

				score, err := s.Solve(ctx, pos)
				if err != nil {
					return err
				}
				if err := w.Table.Store(ctx, key, score); err != nil {
					return err
				}
				solved.Add(1)
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.Info().Str("component", "precompute").Int64("solved", solved.Load()).
					Int64("skipped", skipped.Load()).Int64("total", stats.Enumerated).Msg("progress")
			case <-done:
				return
			}
		}
	}()

	err := g.Wait()
	close(done)

	stats.Solved = solved.Load()
	stats.Skipped = skipped.Load()
	if err != nil {
		return stats, err
	}
	log.Info().Str("component", "precompute").Int64("solved", stats.Solved).
		Int64("skipped", stats.Skipped).Msg("finished")
	return stats, nil
}

// Enumerate lists the distinct positions (up to mirroring) reached by playing
// 1 to depth plies from root. Lines stop as soon as a move wins.
func Enumerate(root solver.Position, depth int) []solver.Position {
	seen := map[uint64]bool{root.CanonicalKey(): true}
	var out []solver.Position

	frontier := []solver.Position{root}
	for ply := 0; ply < depth; ply++ {
		var next []solver.Position
		for _, pos := range frontier {
			for col := 0; col < solver.W; col++ {
				if !pos.CanPlay(col) || pos.IsWinningMove(col) {
					continue
				}
				child := pos
				child.PlayCol(col)
				key := child.CanonicalKey()
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	return out
}
