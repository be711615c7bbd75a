package ridge

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorRenderer draws ridge layers as vector paths on a canvas sized to the
// source image, one canvas unit per pixel.
type VectorRenderer struct {
	Width      int
	Height     int
	Layers     []Layer
	Thickness  float64           // Stroke width in pixels
	Background color.RGBA        // Fill behind the ridges
	Resolution canvas.Resolution // Resolution for PNG output (default: 1 dot per unit)
}

// NewVectorRenderer creates a vector renderer with default settings
func NewVectorRenderer(width, height int, layers []Layer) *VectorRenderer {
	return &VectorRenderer{
		Width:      width,
		Height:     height,
		Layers:     layers,
		Thickness:  DefaultThickness,
		Background: canvas.White,
		Resolution: canvas.DPMM(1),
	}
}

// canvasRenderer is an interface that both svg and rasterizer renderers implement
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the ridges as an SVG to the provided writer
func (r *VectorRenderer) RenderToSVG(w io.Writer) error {
	if err := r.validate(); err != nil {
		return err
	}
	svgRenderer := svg.New(w, float64(r.Width), float64(r.Height), nil)
	r.renderToCanvas(svgRenderer)
	return svgRenderer.Close()
}

// RenderToPNG rasterizes the ridges and writes a PNG to the provided writer
func (r *VectorRenderer) RenderToPNG(w io.Writer) error {
	if err := r.validate(); err != nil {
		return err
	}
	rast := rasterizer.New(float64(r.Width), float64(r.Height), r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast)
	return png.Encode(w, rast)
}

func (r *VectorRenderer) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: canvas is %dx%d", ErrInvalidImage, r.Width, r.Height)
	}
	for _, l := range r.Layers {
		if len(l.Ridge) != r.Width {
			return fmt.Errorf("%s ridge has %d columns, canvas is %d wide", l.Name, len(l.Ridge), r.Width)
		}
	}
	return nil
}

// renderToCanvas is shared by the SVG and PNG outputs. Canvas y grows upward,
// so row y sits at Height - y - 0.5.
func (r *VectorRenderer) renderToCanvas(renderer canvasRenderer) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: r.Background}
	bgStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	renderer.RenderPath(canvas.Rectangle(float64(r.Width), float64(r.Height)), bgStyle, canvas.Identity)

	for _, l := range r.Layers {
		if len(l.Ridge) == 0 {
			continue
		}
		style := canvas.DefaultStyle
		style.Fill = canvas.Paint{Color: canvas.Transparent}
		style.Stroke = canvas.Paint{Color: l.Color}
		style.StrokeWidth = r.Thickness

		p := &canvas.Path{}
		for x, y := range l.Ridge {
			cx := float64(x) + 0.5
			cy := float64(r.Height-y) - 0.5
			if x == 0 {
				p.MoveTo(cx, cy)
			} else {
				p.LineTo(cx, cy)
			}
		}
		renderer.RenderPath(p, style, canvas.Identity)
	}
}
