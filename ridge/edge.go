package ridge

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// Luminance converts img to 8-bit grayscale using the ITU-R 601 weights of
// color.GrayModel. The result is always anchored at the origin.
func Luminance(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray, nil
}

// EdgeStrength returns the squared vertical Sobel response of gray as an
// H×W matrix. The derivative is a [-1 0 1] correlation down each column,
// smoothed by [1 2 1] along each row; samples past the border are mirrored
// about the edge pixel (d c b a | a b c d).
func EdgeStrength(gray *image.Gray) (*mat.Dense, error) {
	if gray == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := gray.Bounds()
	h, w := b.Dy(), b.Dx()
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image %dx%d", ErrInvalidImage, w, h)
	}

	at := func(r, c int) float64 {
		return float64(gray.Pix[r*gray.Stride+c])
	}

	// Row derivative.
	deriv := make([]float64, h*w)
	for r := 0; r < h; r++ {
		up, down := reflectIndex(r-1, h), reflectIndex(r+1, h)
		for c := 0; c < w; c++ {
			deriv[r*w+c] = at(down, c) - at(up, c)
		}
	}

	strength := mat.NewDense(h, w, nil)
	for r := 0; r < h; r++ {
		row := deriv[r*w : (r+1)*w]
		for c := 0; c < w; c++ {
			gy := row[reflectIndex(c-1, w)] + 2*row[c] + row[reflectIndex(c+1, w)]
			strength.Set(r, c, gy*gy)
		}
	}
	return strength, nil
}

// reflectIndex maps i into [0, n) by half-sample symmetric reflection.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
