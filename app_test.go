package main

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishy91/Mountain-Ridge-finder/ridge"
)

// writeSkyline saves a w×h PNG that is white above row horizon and dark
// below, and returns its path.
func writeSkyline(t *testing.T, dir string, w, h, horizon int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{30, 40, 30, 255}
		if y < horizon {
			c = color.RGBA{220, 230, 255, 255}
		}
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "input.png")
	require.NoError(t, ridge.SaveImage(path, img))
	return path
}

func TestNewApp(t *testing.T) {
	app := NewApp(nil)
	require.NotNil(t, app)
	assert.NotNil(t, app.Config, "nil config falls back to defaults")
	assert.NotNil(t, app.Estimator)
	assert.Nil(t, app.Publisher)
}

func TestAppRun_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := writeSkyline(t, dir, 40, 30, 12)
	output := filepath.Join(dir, "out", "final.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0755))

	app := NewApp(nil)
	app.Config.Output.Edges = "edges.png"
	app.Config.Output.Baseline = "bayes.png"
	app.Config.Output.Refined = "refined.png"

	report, err := app.Run(RunOptions{
		InputPath:  input,
		OutputPath: output,
		Anchor:     &ridge.Anchor{Row: 14, Column: 20},
	})
	require.NoError(t, err)

	outDir := filepath.Dir(output)
	assert.Equal(t, []string{
		filepath.Join(outDir, "edges.png"),
		filepath.Join(outDir, "bayes.png"),
		filepath.Join(outDir, "refined.png"),
		output,
	}, report.Artifacts)

	for _, path := range report.Artifacts {
		img, err := ridge.LoadImage(path)
		require.NoError(t, err, path)
		assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds(), path)
	}

	res := report.Result
	assert.Equal(t, 14, res.Anchored[20])
	assert.Equal(t, 11, res.Baseline[0])
	assert.Nil(t, report.Published)

	final, err := ridge.LoadImage(output)
	require.NoError(t, err)
	r, g, b, _ := final.At(20, 14).RGBA()
	assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b}, "anchored ridge drawn last in green")
}

func TestAppRun_GeoJSONAndSVG(t *testing.T) {
	dir := t.TempDir()
	input := writeSkyline(t, dir, 20, 16, 6)

	app := NewApp(nil)
	app.Config.Output.Refined = ""
	app.Config.Output.GeoJSON = "ridges.geojson"
	app.Config.Output.SVG = filepath.Join(dir, "vector", "ridges.svg")
	app.Config.Render.SimplifyTolerance = 0.5
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vector"), 0755))

	report, err := app.Run(RunOptions{InputPath: input, OutputPath: filepath.Join(dir, "final.jpg")})
	require.NoError(t, err)
	require.Len(t, report.Artifacts, 5)

	data, err := os.ReadFile(filepath.Join(dir, "ridges.geojson"))
	require.NoError(t, err)
	var fc struct {
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Len(t, fc.Features, 6, "three ridges plus their simplified copies")

	svg, err := os.ReadFile(app.Config.Output.SVG)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(svg), "<svg"))

	// Without an anchor the anchored estimate equals the refined one.
	assert.Equal(t, report.Result.Refined, report.Result.Anchored)
}

func TestAppRun_Publishes(t *testing.T) {
	dir := t.TempDir()
	input := writeSkyline(t, dir, 10, 8, 3)

	client := ridge.NewMockClient()
	client.SetConnected(true)

	app := NewApp(nil)
	app.Publisher = ridge.NewPublisher(client, "test")

	report, err := app.Run(RunOptions{InputPath: input, OutputPath: filepath.Join(dir, "final.png")})
	require.NoError(t, err)
	require.NotNil(t, report.Published)
	assert.Equal(t, input, report.Published.Source)

	msgs := client.GetPublishedMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "test/ridges", msgs[0].Topic)
}

func TestAppRun_PublishFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	input := writeSkyline(t, dir, 10, 8, 3)

	app := NewApp(nil)
	app.Publisher = ridge.NewPublisher(ridge.NewMockClient(), "test") // never connected

	report, err := app.Run(RunOptions{InputPath: input, OutputPath: filepath.Join(dir, "final.png")})
	require.NoError(t, err)
	assert.Nil(t, report.Published)
}

func TestAppRun_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewApp(nil).Run(RunOptions{
		InputPath:  filepath.Join(dir, "missing.png"),
		OutputPath: filepath.Join(dir, "final.png"),
	})
	assert.True(t, errors.Is(err, ridge.ErrInvalidImage))

	input := writeSkyline(t, dir, 10, 8, 3)
	_, err = NewApp(nil).Run(RunOptions{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "final.png"),
		Anchor:     &ridge.Anchor{Row: 8, Column: 2},
	})
	assert.True(t, errors.Is(err, ridge.ErrInvalidAnchor))

	_, err = NewApp(nil).Run(RunOptions{InputPath: input, OutputPath: filepath.Join(dir, "final.webp")})
	assert.Error(t, err, "webp cannot be encoded")
}

func TestResolveArtifact(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"out.jpg", "edges.jpg", "edges.jpg"},
		{filepath.Join("a", "b", "out.jpg"), "edges.jpg", filepath.Join("a", "b", "edges.jpg")},
		{filepath.Join("a", "out.jpg"), filepath.Join("a", "out.jpg"), filepath.Join("a", "out.jpg")},
		{"out.jpg", "/tmp/abs.png", "/tmp/abs.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveArtifact(tt.output, tt.name))
	}
}
