package mesh

import (
	"errors"
	"fmt"
	"image/color"

	"map-annotator/internal/applog"
	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

// Render order bands. Outlines and lines draw over fills; base planes sit
// below everything.
const (
	OrderFill    = 10
	OrderOutline = 20
	OrderLine    = 20
)

// Options configures a Builder.
type Options struct {
	FillOpacity  float64
	OutlineColor color.RGBA
}

// DefaultOptions returns the stock builder settings.
func DefaultOptions() Options {
	return Options{FillOpacity: 0.5, OutlineColor: colorutil.Outline}
}

// Builder creates renderables from captured vertices.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the builder settings.
func (b *Builder) Options() Options {
	return b.opts
}

// SetOptions replaces the builder settings for subsequent builds.
func (b *Builder) SetOptions(opts Options) {
	b.opts = opts
}

// Result holds what Build produced. Fill and Outline share one buffer.
type Result struct {
	Buffer  *geometry.Buffer
	Fill    *scene.Renderable
	Outline *scene.Renderable
	Line    *scene.Renderable
}

// Renderables returns the non-nil outputs, fill first.
func (r Result) Renderables() []*scene.Renderable {
	var out []*scene.Renderable
	for _, x := range []*scene.Renderable{r.Fill, r.Outline, r.Line} {
		if x != nil {
			out = append(out, x)
		}
	}
	return out
}

// Empty reports whether nothing was built.
func (r Result) Empty() bool {
	return r.Fill == nil && r.Outline == nil && r.Line == nil
}

// Build converts vertices into geometry colored with c. Positions are copied
// with z forced to 0.
//
// Fewer than 2 vertices yields an empty result. Two vertices yield a line.
// Three or more yield a semi-transparent fill and an outline through the
// vertices in input order. If triangulation fails the outline is still
// returned alongside an error wrapping ErrTriangulation.
func (b *Builder) Build(vertices []geometry.Vertex, c color.RGBA) (Result, error) {
	log := applog.WithComponent("mesh")
	if len(vertices) < 2 {
		return Result{}, nil
	}

	flat := make([]geometry.Vertex, len(vertices))
	for i, v := range vertices {
		flat[i] = v.Flatten()
	}
	buf := geometry.NewBuffer(flat)

	if len(flat) == 2 {
		line := scene.NewRenderable(scene.KindLine, buf, []int{0, 1}, scene.NewMaterial(c))
		line.Name = "line"
		line.RenderOrder = OrderLine
		return Result{Buffer: buf, Line: line}, nil
	}

	if n := geometry.DistinctCount(flat, geometry.Epsilon); n < 3 {
		log.Warn("Builder: skipping degenerate polygon", "vertices", len(flat), "distinct", n)
		return Result{}, fmt.Errorf("%w: %d distinct of %d vertices", ErrDegenerate, n, len(flat))
	}

	loop := make([]int, len(flat))
	for i := range loop {
		loop[i] = i
	}
	outlineMat := scene.NewMaterial(b.opts.OutlineColor)
	outlineMat.DepthTest = false
	outline := scene.NewRenderable(scene.KindLineLoop, buf, loop, outlineMat)
	outline.Name = "outline"
	outline.RenderOrder = OrderOutline
	res := Result{Buffer: buf, Outline: outline}

	indices, err := Triangulate(geometry.ToPoints(flat))
	if err != nil {
		if errors.Is(err, ErrDegenerate) {
			return Result{}, err
		}
		log.Warn("Builder: fill skipped, keeping outline", "vertices", len(flat), "error", err)
		return res, err
	}

	fillMat := scene.NewMaterial(c)
	fillMat.Opacity = b.opts.FillOpacity
	fillMat.Transparent = b.opts.FillOpacity < 1
	fill := scene.NewRenderable(scene.KindMesh, buf, indices, fillMat)
	fill.Name = "fill"
	fill.RenderOrder = OrderFill
	res.Fill = fill

	log.Debug("Builder: polygon built", "vertices", len(flat), "triangles", len(indices)/3)
	return res, nil
}
