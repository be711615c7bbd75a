package ridge

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Emission converts an edge strength map into a per-column distribution
// over rows using add-one smoothing:
//
//	E[r][c] = (s[r][c] + 1) / (Σ_r' s[r'][c] + H)
//
// It also returns the baseline ridge, the most likely row of each column,
// choosing the lowest row when several share the maximum.
func Emission(strength mat.Matrix) (Ridge, *mat.Dense, error) {
	if strength == nil {
		return nil, nil, fmt.Errorf("%w: nil strength map", ErrDegenerateColumn)
	}
	h, w := strength.Dims()
	if h == 0 || w == 0 {
		return nil, nil, fmt.Errorf("%w: strength map is %dx%d", ErrDegenerateColumn, h, w)
	}

	emission := mat.NewDense(h, w, nil)
	baseline := make(Ridge, w)
	col := make([]float64, h)
	for c := 0; c < w; c++ {
		mat.Col(col, c, strength)
		denom := floats.Sum(col) + float64(h)
		for r, s := range col {
			col[r] = (s + 1) / denom
		}
		emission.SetCol(c, col)
		baseline[c] = floats.MaxIdx(col)
	}
	return baseline, emission, nil
}
