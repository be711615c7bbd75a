package ridge

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sweeps is the number of left-to-right passes Optimize performs.
const Sweeps = 10

// Optimize refines a baseline ridge by iterated conditional modes. Each
// interior column is set to the row maximizing
//
//	T[seq[w-1]][h] · E[h][w] · T[h][seq[w+1]] · (H − h)³
//
// with neighbors read from the sequence as it is being updated, so columns
// are visited strictly left to right, Sweeps times. The cubic factor biases
// toward the top of the image. The first and last columns keep their
// baseline rows.
//
// When anchor is non-nil and its column lies in [0, W), that column is set
// to anchor.Row before the first sweep and never revisited. An anchor with
// an out-of-range column is ignored.
//
// Fewer than three columns leave nothing to optimize and the initialized
// sequence is returned as is. The baseline is not modified.
func Optimize(baseline Ridge, trans, emission mat.Matrix, anchor *Anchor) (Ridge, error) {
	if len(baseline) == 0 {
		return nil, ErrEmptyImage
	}
	if trans == nil || emission == nil {
		return nil, fmt.Errorf("%w: nil transition or emission matrix", ErrDimensionMismatch)
	}
	h, w := emission.Dims()
	if w != len(baseline) {
		return nil, fmt.Errorf("%w: emission has %d columns, baseline has %d", ErrDimensionMismatch, w, len(baseline))
	}
	if tr, tc := trans.Dims(); tr != h || tc != h {
		return nil, fmt.Errorf("%w: transition is %dx%d, want %dx%d", ErrDimensionMismatch, tr, tc, h, h)
	}
	for c, r := range baseline {
		if r < 0 || r >= h {
			return nil, fmt.Errorf("%w: baseline row %d at column %d outside [0,%d)", ErrDimensionMismatch, r, c, h)
		}
	}

	seq := baseline.Clone()
	fixed := -1
	if anchor != nil && anchor.Column >= 0 && anchor.Column < w {
		if anchor.Row < 0 || anchor.Row >= h {
			return nil, fmt.Errorf("%w: row %d outside [0,%d)", ErrInvalidAnchor, anchor.Row, h)
		}
		fixed = anchor.Column
		seq[fixed] = anchor.Row
	}
	if w < 3 {
		return seq, nil
	}

	bias := make([]float64, h)
	for row := range bias {
		d := float64(h - row)
		bias[row] = d * d * d
	}

	for sweep := 0; sweep < Sweeps; sweep++ {
		for col := 1; col < w-1; col++ {
			if col == fixed {
				continue
			}
			prev, next := seq[col-1], seq[col+1]
			best, bestScore := 0, -1.0
			for row := 0; row < h; row++ {
				score := trans.At(prev, row) * emission.At(row, col) * trans.At(row, next) * bias[row]
				if score > bestScore {
					best, bestScore = row, score
				}
			}
			seq[col] = best
		}
	}
	return seq, nil
}
