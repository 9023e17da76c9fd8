package engine

import (
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/gol-engine/model"
)

// Option configures an Engine at construction
type Option func(*Engine)

// WithRand sets the randomness source used by PopulateRandom
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a PCG source for PopulateRandom, making it reproducible
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = newRand(seed)
	}
}

// WithGridPool recycles replaced grids through pool
func WithGridPool(pool *model.GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// WithStrategy selects how generations are computed
func WithStrategy(strategy model.Strategy) Option {
	return func(e *Engine) {
		e.strategy = strategy
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}
