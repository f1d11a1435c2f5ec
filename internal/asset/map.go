// Package asset loads the background map image the editor draws on.
package asset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/gonum/spatial/r3"

	"map-annotator/internal/applog"
	"map-annotator/internal/scene"
	"map-annotator/pkg/geometry"
)

// Map is a decoded background image. One image pixel is one world unit.
type Map struct {
	Path  string
	Image image.Image
	// Scale is the factor applied when the source was downsampled.
	Scale float64
}

// Load decodes the image at path. Images whose longer side exceeds maxDim
// are downsampled; maxDim <= 0 disables the limit.
func Load(path string, maxDim int) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map %s: %w", path, err)
	}

	m := &Map{Path: path, Image: img, Scale: 1}
	b := img.Bounds()
	if longest := max(b.Dx(), b.Dy()); maxDim > 0 && longest > maxDim {
		scale := float64(maxDim) / float64(longest)
		small, err := downsample(img, scale)
		if err != nil {
			return nil, fmt.Errorf("failed to downsample map %s: %w", path, err)
		}
		m.Image = small
		m.Scale = scale
	}
	applog.WithComponent("asset").Info("Map: loaded", "path", path, "format", format,
		"width", m.Width(), "height", m.Height(), "scale", m.Scale)
	return m, nil
}

func downsample(img image.Image, scale float64) (image.Image, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(src, &small, image.Point{}, scale, scale, gocv.InterpolationArea)
	return small.ToImage()
}

// Placeholder returns a blank w×h map for sessions started without an image.
func Placeholder(w, h int, c color.RGBA) *Map {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return &Map{Image: img, Scale: 1}
}

// Width returns the image width in pixels.
func (m *Map) Width() int {
	if m.Image == nil {
		return 0
	}
	return m.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (m *Map) Height() int {
	if m.Image == nil {
		return 0
	}
	return m.Image.Bounds().Dy()
}

// Bounds is the map's rectangle on the z=0 plane, anchored at the origin.
func (m *Map) Bounds() geometry.Rect {
	return geometry.NewRect(0, 0, float64(m.Width()), float64(m.Height()))
}

// FitCamera places cam above the map's center, far enough that the whole
// map fits the vertical field of view.
func FitCamera(cam *scene.Camera, m *Map) {
	c := m.Bounds().Center()
	extent := float64(max(m.Width(), m.Height()))
	dist := extent / (2 * math.Tan(geometry.Radians(cam.FOV)/2))
	cam.Position = r3.Vec{X: c.X, Y: c.Y, Z: dist}
	cam.LookAt(r3.Vec{X: c.X, Y: c.Y})
}
