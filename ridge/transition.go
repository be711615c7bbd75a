package ridge

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TransitionRaw returns the unnormalized H×H closeness scores
// raw[a][b] = H − |a − b|. The matrix is symmetric, 1 at maximum
// separation and H on the diagonal.
func TransitionRaw(h int) (*mat.Dense, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeight, h)
	}
	raw := mat.NewDense(h, h, nil)
	for a := 0; a < h; a++ {
		for b := 0; b < h; b++ {
			d := b - a
			if d < 0 {
				d = -d
			}
			raw.Set(a, b, float64(h-d))
		}
	}
	return raw, nil
}

// Transition returns the row-to-row transition matrix for an image of
// height h. Each column of the raw score matrix is divided by its sum, so
// Σ_a T[a][b] = 1 for every b. The optimizer reads it as T[prev][h] and
// T[h][next]; that index order is part of the model.
func Transition(h int) (*mat.Dense, error) {
	raw, err := TransitionRaw(h)
	if err != nil {
		return nil, err
	}
	col := make([]float64, h)
	for b := 0; b < h; b++ {
		mat.Col(col, b, raw)
		sum := floats.Sum(col)
		for a := range col {
			col[a] /= sum
		}
		raw.SetCol(b, col)
	}
	return raw, nil
}

// TransitionCache memoizes transition matrices by image height. It is safe
// for concurrent use. Returned matrices are shared and must not be modified.
type TransitionCache struct {
	mu       sync.RWMutex
	matrices map[int]*mat.Dense
}

// NewTransitionCache creates an empty cache.
func NewTransitionCache() *TransitionCache {
	return &TransitionCache{matrices: make(map[int]*mat.Dense)}
}

// Get returns the transition matrix for height h, computing it on first use.
func (c *TransitionCache) Get(h int) (*mat.Dense, error) {
	c.mu.RLock()
	m, ok := c.matrices[h]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := Transition(h)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.matrices[h]; ok {
		return existing, nil
	}
	c.matrices[h] = m
	return m, nil
}

// Len returns the number of cached heights.
func (c *TransitionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matrices)
}
