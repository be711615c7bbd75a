package ridge

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomStrength(rng *rand.Rand, h, w int) *mat.Dense {
	m := mat.NewDense(h, w, nil)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := rng.Float64() * 1000
			m.Set(r, c, v*v)
		}
	}
	return m
}

func TestEmission_ZeroStrengthIsUniform(t *testing.T) {
	baseline, emission, err := Emission(mat.NewDense(3, 5, nil))
	require.NoError(t, err)

	assert.Equal(t, Ridge{0, 0, 0, 0, 0}, baseline)
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			assert.InDelta(t, 1.0/3.0, emission.At(r, c), 1e-12)
		}
	}
}

func TestEmission_Smoothing(t *testing.T) {
	strength := mat.NewDense(2, 1, []float64{
		3,
		0,
	})
	baseline, emission, err := Emission(strength)
	require.NoError(t, err)

	// (3+1)/(3+2) and (0+1)/(3+2)
	assert.InDelta(t, 0.8, emission.At(0, 0), 1e-12)
	assert.InDelta(t, 0.2, emission.At(1, 0), 1e-12)
	assert.Equal(t, Ridge{0}, baseline)
}

func TestEmission_TieBreaksToLowestRow(t *testing.T) {
	strength := mat.NewDense(3, 3, []float64{
		5, 0, 1,
		5, 7, 1,
		0, 7, 1,
	})
	baseline, _, err := Emission(strength)
	require.NoError(t, err)
	assert.Equal(t, Ridge{0, 1, 0}, baseline)
}

func TestEmission_ColumnsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, dims := range [][2]int{{1, 1}, {3, 5}, {17, 9}, {64, 48}} {
		strength := randomStrength(rng, dims[0], dims[1])
		baseline, emission, err := Emission(strength)
		require.NoError(t, err)

		h, w := emission.Dims()
		require.Equal(t, dims[0], h)
		require.Equal(t, dims[1], w)
		require.Len(t, baseline, w)

		for c := 0; c < w; c++ {
			var sum float64
			best := 0
			for r := 0; r < h; r++ {
				v := emission.At(r, c)
				assert.Greater(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				sum += v
				if v > emission.At(best, c) {
					best = r
				}
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "column %d of %dx%d", c, h, w)
			assert.Equal(t, best, baseline[c], "argmax of column %d", c)
		}
	}
}

func TestEmission_Degenerate(t *testing.T) {
	_, _, err := Emission(nil)
	assert.True(t, errors.Is(err, ErrDegenerateColumn))

	var empty mat.Dense
	_, _, err = Emission(&empty)
	assert.True(t, errors.Is(err, ErrDegenerateColumn))
}
