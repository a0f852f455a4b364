package bot

import (
	"context"
	"sync"
)

// ScoreCache memoizes solver scores by canonical position key. Scores are
// from the point of view of the player to move in that position.
type ScoreCache interface {
	GetScore(ctx context.Context, key uint64) (score int, found bool, err error)
	SetScore(ctx context.Context, key uint64, score int) error
}

// PositionTable is a precomputed, durable set of solved positions.
type PositionTable interface {
	Lookup(ctx context.Context, key uint64) (score int, found bool, err error)
	Store(ctx context.Context, key uint64, score int) error
}

// MemoryCache is a process-local ScoreCache.
type MemoryCache struct {
	mu     sync.RWMutex
	scores map[uint64]int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{scores: make(map[uint64]int)}
}

func (c *MemoryCache) GetScore(_ context.Context, key uint64) (int, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	score, ok := c.scores[key]
	return score, ok, nil
}

func (c *MemoryCache) SetScore(_ context.Context, key uint64, score int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[key] = score
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scores)
}
