package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

// Rasterizer draws a scene seen through a camera into an RGBA image.
type Rasterizer struct {
	// Background is stretched over World, the map's rectangle on the z=0
	// plane. Either may be zero.
	Background image.Image
	World      geometry.Rect

	ClearColor   color.RGBA
	LineWidth    float64
	MarkerRadius float64
	PreviewColor color.RGBA
}

// NewRasterizer returns a rasterizer with the stock styling.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		ClearColor:   colorutil.Black,
		LineWidth:    2,
		MarkerRadius: 4,
		PreviewColor: colorutil.Preview,
	}
}

type projector struct {
	cam  *scene.Camera
	w, h float64
}

func (p projector) at(v geometry.Vertex) (float64, float64, bool) {
	ptr, ok := p.cam.Project(v)
	if !ok {
		return 0, 0, false
	}
	x, y := ptr.Pixels(p.w, p.h)
	return x, y, true
}

// Render draws the visible renderables of sc in render order, then the
// in-progress drawing as an open polyline with a marker per vertex.
func (r *Rasterizer) Render(w, h int, cam *scene.Camera, sc *scene.Scene, preview []geometry.Vertex) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.ClearColor), image.Point{}, draw.Src)

	pr := projector{cam: cam, w: float64(w), h: float64(h)}
	r.drawBackground(dst, pr)

	dc := gg.NewContextForImage(dst)
	defer dc.Close()
	dc.SetLineWidth(r.LineWidth)

	if sc != nil {
		for _, obj := range sc.Ordered() {
			if !obj.Visible || obj.Buffer.Len() == 0 {
				continue
			}
			if err := r.drawRenderable(dc, pr, obj); err != nil {
				return nil, fmt.Errorf("render %s %s: %w", obj.Kind, obj.ID, err)
			}
		}
	}
	if err := r.drawPreview(dc, pr, preview); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}

	out := image.NewRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out, nil
}

func (r *Rasterizer) drawBackground(dst *image.RGBA, pr projector) {
	if r.Background == nil || r.World.Empty() {
		return
	}
	// image rows grow downward while world y grows upward
	x0, y0, ok0 := pr.at(geometry.Flat(r.World.X, r.World.Y+r.World.Height))
	x1, y1, ok1 := pr.at(geometry.Flat(r.World.X+r.World.Width, r.World.Y))
	if !ok0 || !ok1 {
		return
	}
	rect := image.Rect(int(x0), int(y0), int(x1+0.5), int(y1+0.5)).Canon()
	xdraw.ApproxBiLinear.Scale(dst, rect, r.Background, r.Background.Bounds(), xdraw.Over, nil)
}

// setColor applies c at the material opacity, clamped to [0, 1].
func setColor(dc *gg.Context, c color.RGBA, opacity float64) {
	c = colorutil.WithAlpha(c, opacity)
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func (r *Rasterizer) drawRenderable(dc *gg.Context, pr projector, obj *scene.Renderable) error {
	mat := obj.Material()
	if mat == nil || !mat.Solid() || mat.Opacity <= 0 {
		return nil
	}
	setColor(dc, mat.Color, mat.Opacity)

	switch obj.Kind {
	case scene.KindMesh:
		for _, tri := range obj.Triangles() {
			for i, idx := range tri {
				x, y, ok := pr.at(obj.Buffer.At(idx))
				if !ok {
					dc.ClearPath()
					return nil
				}
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		}
		return dc.Fill()
	case scene.KindLine, scene.KindLineLoop:
		for i, idx := range obj.Indices {
			x, y, ok := pr.at(obj.Buffer.At(idx))
			if !ok {
				dc.ClearPath()
				return nil
			}
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if obj.Kind == scene.KindLineLoop {
			dc.ClosePath()
		}
		return dc.Stroke()
	case scene.KindPoints:
		for _, idx := range obj.Indices {
			if x, y, ok := pr.at(obj.Buffer.At(idx)); ok {
				dc.DrawCircle(x, y, r.MarkerRadius)
			}
		}
		return dc.Fill()
	}
	return nil
}

func (r *Rasterizer) drawPreview(dc *gg.Context, pr projector, vs []geometry.Vertex) error {
	if len(vs) == 0 {
		return nil
	}
	setColor(dc, r.PreviewColor, 1)
	if len(vs) > 1 {
		for i, v := range vs {
			x, y, ok := pr.at(v)
			if !ok {
				continue
			}
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	for _, v := range vs {
		if x, y, ok := pr.at(v); ok {
			dc.DrawCircle(x, y, r.MarkerRadius)
		}
	}
	return dc.Fill()
}
