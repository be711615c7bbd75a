package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Vishy91/Mountain-Ridge-finder/ridge"
)

// App encapsulates the application state and dependencies
type App struct {
	Config    *ridge.Config
	Estimator *ridge.Estimator
	Publisher *ridge.Publisher // nil disables publishing
}

// RunOptions are the positional inputs of one run.
type RunOptions struct {
	InputPath  string
	OutputPath string
	Anchor     *ridge.Anchor
}

// Report describes what a run produced.
type Report struct {
	Result    *ridge.Result
	Artifacts []string
	Published *ridge.RidgeMessage
}

// NewApp creates a new App instance. A nil config uses the defaults.
func NewApp(cfg *ridge.Config) *App {
	if cfg == nil {
		cfg = ridge.DefaultConfig()
	}
	return &App{
		Config:    cfg,
		Estimator: ridge.NewEstimator(),
	}
}

// Run estimates the ridges of the input image and writes every configured
// artifact. The final composite goes to OutputPath; the other artifacts are
// placed next to it unless configured with absolute paths.
func (a *App) Run(opts RunOptions) (*Report, error) {
	img, err := ridge.LoadImage(opts.InputPath)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	log.Printf("[RIDGE] loaded %s (%dx%d)", opts.InputPath, b.Dx(), b.Dy())

	res, err := a.Estimator.Estimate(img, opts.Anchor)
	if err != nil {
		return nil, fmt.Errorf("estimating ridge: %w", err)
	}
	if opts.Anchor != nil && (opts.Anchor.Column < 0 || opts.Anchor.Column >= res.Width) {
		log.Printf("[RIDGE] anchor column %d outside [0,%d), ignored", opts.Anchor.Column, res.Width)
	}

	report := &Report{Result: res}
	out := a.Config.Output
	render := a.Config.Render
	layers := res.Layers(render.Colors)

	save := func(name string, write func(path string) error) error {
		path := resolveArtifact(opts.OutputPath, name)
		if err := write(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		report.Artifacts = append(report.Artifacts, path)
		log.Printf("[RIDGE] wrote %s", path)
		return nil
	}
	overlay := func(n int) func(path string) error {
		return func(path string) error {
			composite, err := ridge.RenderOverlay(img, layers[:n], render.Thickness, render.Legend)
			if err != nil {
				return err
			}
			return ridge.SaveImage(path, composite)
		}
	}

	if err := save(out.Edges, func(path string) error {
		return ridge.SaveImage(path, ridge.RenderStrength(res.Strength))
	}); err != nil {
		return nil, err
	}
	if err := save(out.Baseline, overlay(1)); err != nil {
		return nil, err
	}
	if out.Refined != "" {
		if err := save(out.Refined, overlay(2)); err != nil {
			return nil, err
		}
	}
	if err := save(opts.OutputPath, overlay(len(layers))); err != nil {
		return nil, err
	}

	if out.GeoJSON != "" {
		if err := save(out.GeoJSON, func(path string) error {
			return ridge.WriteGeoJSON(path, ridge.RidgesToGeoJSON(layers, render.SimplifyTolerance))
		}); err != nil {
			return nil, err
		}
	}
	if out.SVG != "" {
		if err := save(out.SVG, func(path string) error {
			return a.writeSVG(path, res, layers)
		}); err != nil {
			return nil, err
		}
	}

	if a.Publisher != nil {
		msg, err := a.Publisher.PublishResult(opts.InputPath, res)
		if err != nil {
			log.Printf("[MQTT] publishing result: %v", err)
		} else {
			report.Published = msg
		}
	}

	return report, nil
}

func (a *App) writeSVG(path string, res *ridge.Result, layers []ridge.Layer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	vr := ridge.NewVectorRenderer(res.Width, res.Height, layers)
	vr.Thickness = float64(a.Config.Render.Thickness)
	if err := vr.RenderToSVG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// resolveArtifact places relative artifact names in the output image's
// directory.
func resolveArtifact(outputPath, name string) string {
	if name == outputPath || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(outputPath), name)
}
