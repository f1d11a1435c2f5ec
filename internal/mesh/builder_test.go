package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

func flats(xy ...float64) []geometry.Vertex {
	vs := make([]geometry.Vertex, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		vs = append(vs, geometry.Flat(xy[i], xy[i+1]))
	}
	return vs
}

func triangleArea(vs []geometry.Vertex, indices []int) float64 {
	var sum float64
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := vs[indices[i]], vs[indices[i+1]], vs[indices[i+2]]
		sum += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	return sum
}

func TestBuildCounts(t *testing.T) {
	b := NewBuilder(DefaultOptions())
	tests := []struct {
		name    string
		in      []geometry.Vertex
		fill    bool
		outline bool
		line    bool
	}{
		{"empty", nil, false, false, false},
		{"single", flats(1, 1), false, false, false},
		{"segment", flats(0, 0, 5, 5), false, false, true},
		{"triangle", flats(0, 0, 10, 0, 0, 10), true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := b.Build(tt.in, colorutil.Red)
			require.NoError(t, err)
			assert.Equal(t, tt.fill, res.Fill != nil, "fill")
			assert.Equal(t, tt.outline, res.Outline != nil, "outline")
			assert.Equal(t, tt.line, res.Line != nil, "line")
		})
	}
}

func TestBuildOutlineFollowsInputOrder(t *testing.T) {
	in := flats(0, 0, 4, 0, 4, 4, 2, 1, 0, 4)
	res, err := NewBuilder(DefaultOptions()).Build(in, colorutil.Green)
	require.NoError(t, err)

	require.NotNil(t, res.Outline)
	assert.Equal(t, scene.KindLineLoop, res.Outline.Kind)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Outline.Indices)
	assert.Equal(t, in, res.Outline.Buffer.Positions())
	// closing edge back to the first vertex
	segs := res.Outline.Segments()
	assert.Equal(t, [2]int{4, 0}, segs[len(segs)-1])

	assert.Greater(t, res.Outline.RenderOrder, res.Fill.RenderOrder)
	assert.False(t, res.Outline.Material().DepthTest)
}

func TestBuildConcaveCoversArea(t *testing.T) {
	// L shape
	in := flats(0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20)
	res, err := NewBuilder(DefaultOptions()).Build(in, colorutil.Red)
	require.NoError(t, err)
	require.NotNil(t, res.Fill)

	assert.Len(t, res.Fill.Indices, 3*(len(in)-2))
	assert.InDelta(t, math.Abs(geometry.SignedArea(in)), triangleArea(in, res.Fill.Indices), 1e-9)
}

func TestBuildSharesBufferAndFlattens(t *testing.T) {
	in := []geometry.Vertex{{X: 0, Y: 0, Z: 3}, {X: 10, Y: 0, Z: -1}, {X: 0, Y: 10, Z: 2}}
	res, err := NewBuilder(DefaultOptions()).Build(in, colorutil.Red)
	require.NoError(t, err)

	assert.Same(t, res.Fill.Buffer, res.Outline.Buffer)
	for _, v := range res.Buffer.Positions() {
		assert.Zero(t, v.Z)
	}
	assert.Equal(t, 3.0, in[0].Z, "input must not be mutated")
}

func TestBuildFillMaterial(t *testing.T) {
	opts := DefaultOptions()
	opts.FillOpacity = 0.4
	res, err := NewBuilder(opts).Build(flats(0, 0, 10, 0, 0, 10), colorutil.Red)
	require.NoError(t, err)

	m := res.Fill.Material()
	assert.True(t, m.Transparent)
	assert.InDelta(t, 0.4, m.Opacity, 1e-12)
	assert.Equal(t, colorutil.Red, m.Color)
	assert.Equal(t, opts.OutlineColor, res.Outline.Material().Color)
}

func TestBuildDegenerate(t *testing.T) {
	res, err := NewBuilder(DefaultOptions()).Build(flats(1, 1, 1, 1, 2, 2), colorutil.Red)
	require.ErrorIs(t, err, ErrDegenerate)
	assert.True(t, res.Empty())
}

func TestBuildSelfIntersectingDoesNotPanic(t *testing.T) {
	bowtie := flats(0, 0, 10, 10, 10, 0, 0, 10)
	assert.NotPanics(t, func() {
		res, err := NewBuilder(DefaultOptions()).Build(bowtie, colorutil.Red)
		if err != nil {
			require.ErrorIs(t, err, ErrTriangulation)
		}
		assert.NotNil(t, res.Outline)
	})
}

func TestTriangulateGuards(t *testing.T) {
	_, err := Triangulate(nil)
	assert.ErrorIs(t, err, ErrDegenerate)
	_, err = Triangulate([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}})
	assert.ErrorIs(t, err, ErrDegenerate)

	idx, err := Triangulate([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, err)
	assert.Len(t, idx, 6)
}

func TestRenderablesOrder(t *testing.T) {
	res, err := NewBuilder(DefaultOptions()).Build(flats(0, 0, 10, 0, 0, 10), colorutil.Red)
	require.NoError(t, err)
	assert.Equal(t, []*scene.Renderable{res.Fill, res.Outline}, res.Renderables())
}
