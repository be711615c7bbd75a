package ridge

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// Ridge holds one row index per image column.
type Ridge []int

// Clone returns an independent copy of the ridge.
func (r Ridge) Clone() Ridge {
	if r == nil {
		return nil
	}
	out := make(Ridge, len(r))
	copy(out, r)
	return out
}

// Equal reports whether two ridges hold the same rows.
func (r Ridge) Equal(other Ridge) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Anchor pins the ridge to a known row at one column.
type Anchor struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// Layer is a named ridge drawn in a single color.
type Layer struct {
	Name  string
	Ridge Ridge
	Color color.RGBA
}

// Result collects every grid and estimate derived from one image.
type Result struct {
	Height int
	Width  int

	Strength   *mat.Dense // H×W squared vertical gradient
	Emission   *mat.Dense // H×W, columns sum to 1
	Transition *mat.Dense // H×H, shared with the estimator cache; do not modify

	Baseline Ridge // per-column argmax of the emission
	Refined  Ridge // transition-aware, no anchor
	Anchored Ridge // transition-aware with Anchor clamped (Refined when Anchor is nil)
	Anchor   *Anchor
}

// Layers returns the three estimates in drawing order using the given colors.
func (r *Result) Layers(colors ColorConfig) []Layer {
	return []Layer{
		{Name: "bayes", Ridge: r.Baseline, Color: colors.BaselineRGBA()},
		{Name: "refined", Ridge: r.Refined, Color: colors.RefinedRGBA()},
		{Name: "anchored", Ridge: r.Anchored, Color: colors.AnchoredRGBA()},
	}
}

// Config represents the full configuration file
type Config struct {
	Output OutputConfig `yaml:"output" json:"output"`
	Render RenderConfig `yaml:"render" json:"render"`
	MQTT   MQTTConfig   `yaml:"mqtt" json:"mqtt"`
}

// OutputConfig names the artifacts written next to the output image.
// Relative names resolve against the output image's directory; an empty
// optional name disables that artifact.
type OutputConfig struct {
	Edges    string `yaml:"edges" json:"edges"`
	Baseline string `yaml:"baseline" json:"baseline"`
	Refined  string `yaml:"refined" json:"refined"`
	GeoJSON  string `yaml:"geojson,omitempty" json:"geojson,omitempty"`
	SVG      string `yaml:"svg,omitempty" json:"svg,omitempty"`
}

// RenderConfig controls how ridges are drawn.
type RenderConfig struct {
	Thickness         int         `yaml:"thickness" json:"thickness"`
	Legend            bool        `yaml:"legend" json:"legend"`
	SimplifyTolerance float64     `yaml:"simplifyTolerance,omitempty" json:"simplifyTolerance,omitempty"` // Douglas-Peucker tolerance in pixels for GeoJSON (0 disables)
	Colors            ColorConfig `yaml:"colors" json:"colors"`
}

// ColorConfig holds hex colors for each estimate.
type ColorConfig struct {
	Baseline string `yaml:"baseline" json:"baseline"`
	Refined  string `yaml:"refined" json:"refined"`
	Anchored string `yaml:"anchored" json:"anchored"`
}

// BaselineRGBA returns the baseline color, red if unparsable.
func (c ColorConfig) BaselineRGBA() color.RGBA { return parseHexColor(c.Baseline) }

// RefinedRGBA returns the refined color, red if unparsable.
func (c ColorConfig) RefinedRGBA() color.RGBA { return parseHexColor(c.Refined) }

// AnchoredRGBA returns the anchored color, red if unparsable.
func (c ColorConfig) AnchoredRGBA() color.RGBA { return parseHexColor(c.Anchored) }

// MQTTConfig holds MQTT connection settings
type MQTTConfig struct {
	Broker        string `yaml:"broker" json:"broker"`
	PublishPrefix string `yaml:"publishPrefix" json:"publishPrefix"`
	ClientID      string `yaml:"clientId" json:"clientId"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}
