package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 9, A: 255})
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoad(t *testing.T) {
	path := writePNG(t, 40, 30)
	m, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 40, m.Width())
	assert.Equal(t, 30, m.Height())
	assert.Equal(t, 1.0, m.Scale)
	assert.Equal(t, geometry.NewRect(0, 0, 40, 30), m.Bounds())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.ErrorContains(t, err, "open")

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Load(bad, 0)
	assert.ErrorContains(t, err, "decode")
}

func TestPlaceholder(t *testing.T) {
	m := Placeholder(16, 8, colorutil.Green)
	assert.Equal(t, 16, m.Width())
	assert.Equal(t, color.RGBAModel.Convert(colorutil.Green), m.Image.At(3, 3))
	assert.Zero(t, (&Map{}).Width())
}

func TestFitCamera(t *testing.T) {
	cam := scene.NewCamera(90, 1, 0.1, 10000, 1)
	m := Placeholder(400, 200, colorutil.Black)
	FitCamera(cam, m)

	assert.InDelta(t, 200, cam.Position.X, 1e-9)
	assert.InDelta(t, 100, cam.Position.Y, 1e-9)
	assert.InDelta(t, 200, cam.Height(), 1e-9)

	// the map's left and right edges sit on the viewport edges
	p, ok := cam.Project(geometry.Flat(0, 100))
	require.True(t, ok)
	assert.InDelta(t, -1, p.X, 1e-9)
}
