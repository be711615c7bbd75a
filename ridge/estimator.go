package ridge

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// Estimator runs the full ridge estimation pipeline. Transition matrices are
// cached per image height, so one Estimator can be reused across images.
type Estimator struct {
	transitions *TransitionCache
}

// NewEstimator creates an estimator with an empty transition cache.
func NewEstimator() *Estimator {
	return &Estimator{transitions: NewTransitionCache()}
}

// Estimate derives the edge strength and emission grids from img and returns
// the baseline, refined and anchored ridges. A nil anchor makes Anchored a
// copy of Refined.
func (e *Estimator) Estimate(img image.Image, anchor *Anchor) (*Result, error) {
	gray, err := Luminance(img)
	if err != nil {
		return nil, err
	}
	strength, err := EdgeStrength(gray)
	if err != nil {
		return nil, fmt.Errorf("edge strength: %w", err)
	}
	return e.EstimateStrength(strength, anchor)
}

// EstimateStrength runs the pipeline from a precomputed strength map.
func (e *Estimator) EstimateStrength(strength *mat.Dense, anchor *Anchor) (*Result, error) {
	if strength == nil {
		return nil, fmt.Errorf("%w: nil strength map", ErrInvalidImage)
	}
	baseline, emission, err := Emission(strength)
	if err != nil {
		return nil, fmt.Errorf("emission: %w", err)
	}
	h, w := emission.Dims()

	trans, err := e.transitions.Get(h)
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	}

	refined, err := Optimize(baseline, trans, emission, nil)
	if err != nil {
		return nil, fmt.Errorf("refining ridge: %w", err)
	}

	anchored := refined.Clone()
	if anchor != nil {
		anchored, err = Optimize(baseline, trans, emission, anchor)
		if err != nil {
			return nil, fmt.Errorf("anchoring ridge at (%d,%d): %w", anchor.Row, anchor.Column, err)
		}
	}

	var anchorCopy *Anchor
	if anchor != nil {
		a := *anchor
		anchorCopy = &a
	}

	return &Result{
		Height:     h,
		Width:      w,
		Strength:   strength,
		Emission:   emission,
		Transition: trans,
		Baseline:   baseline,
		Refined:    refined,
		Anchored:   anchored,
		Anchor:     anchorCopy,
	}, nil
}
