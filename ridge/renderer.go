package ridge

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/mat"
)

// DefaultThickness is the band height, in pixels, used to draw a ridge.
const DefaultThickness = 5

// DefaultColorConfig returns the standard estimate colors:
// bayes red, refined blue, anchored green.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Baseline: "#FF0000",
		Refined:  "#0000FF",
		Anchored: "#00FF00",
	}
}

// CloneRGBA copies img into a new RGBA image anchored at the origin.
func CloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// DrawRidge paints a band of the given thickness centered on the ridge row
// of every column. Rows outside the image are clipped; the image size never
// changes.
func DrawRidge(img draw.Image, ridge Ridge, c color.Color, thickness int) error {
	b := img.Bounds()
	if len(ridge) != b.Dx() {
		return fmt.Errorf("ridge has %d columns, image is %d wide", len(ridge), b.Dx())
	}
	if thickness <= 0 {
		return fmt.Errorf("thickness must be positive, got %d", thickness)
	}

	half := thickness / 2
	for x, y := range ridge {
		top := y - half
		bottom := top + thickness
		if top < 0 {
			top = 0
		}
		if bottom > b.Dy() {
			bottom = b.Dy()
		}
		for t := top; t < bottom; t++ {
			img.Set(b.Min.X+x, b.Min.Y+t, c)
		}
	}
	return nil
}

// RenderStrength scales a strength map linearly onto [0, 255] so the
// weakest value is black and the strongest white. A flat map renders black.
func RenderStrength(strength mat.Matrix) *image.Gray {
	h, w := strength.Dims()
	img := image.NewGray(image.Rect(0, 0, w, h))
	if h == 0 || w == 0 {
		return img
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := strength.At(r, c)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi <= lo {
		return img
	}

	scale := 255 / (hi - lo)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := (strength.At(r, c)-lo)*scale + 0.4999
			img.Pix[r*img.Stride+c] = uint8(math.Min(v, 255))
		}
	}
	return img
}

// RenderOverlay draws each layer over a copy of base, in order, so later
// layers cover earlier ones. With legend set, the layer names are listed in
// the top-left corner.
func RenderOverlay(base image.Image, layers []Layer, thickness int, legend bool) (*image.RGBA, error) {
	img := CloneRGBA(base)
	for _, l := range layers {
		if err := DrawRidge(img, l.Ridge, l.Color, thickness); err != nil {
			return nil, fmt.Errorf("drawing %s ridge: %w", l.Name, err)
		}
	}
	if legend {
		drawLegend(img, layers)
	}
	return img, nil
}

// drawLegend adds a legend with text labels to the image
func drawLegend(img *image.RGBA, layers []Layer) {
	y := 15
	for _, l := range layers {
		// 12x12 swatch
		for dy := 0; dy < 12; dy++ {
			for dx := 0; dx < 12; dx++ {
				px, py := 10+dx, y+dy-10
				if (image.Point{X: px, Y: py}).In(img.Bounds()) {
					img.Set(px, py, l.Color)
				}
			}
		}
		drawText(img, 28, y, l.Name, color.RGBA{0, 0, 0, 255})
		y += 18
	}
}

// drawText renders text onto an image at the specified position
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// parseHexColor parses a hex color string like "#FF6B6B" to color.RGBA
func parseHexColor(hex string) color.RGBA {
	// Default to red if parsing fails
	defaultColor := color.RGBA{255, 0, 0, 255}

	c, ok := lookupHexColor(hex)
	if !ok {
		return defaultColor
	}
	return c
}

// lookupHexColor parses "#RRGGBB" (the # is optional).
func lookupHexColor(hex string) (color.RGBA, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
}
