package picking

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-annotator/internal/draw"
	"map-annotator/internal/layer"
	"map-annotator/internal/mesh"
	"map-annotator/internal/scene"
	"map-annotator/internal/transform"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

// The test camera looks straight down from height 100 with a 90° field of
// view, so world coordinates are pointer coordinates times 100.
func at(x, y float64) scene.Pointer {
	return scene.Pointer{X: x / 100, Y: y / 100}
}

type fixture struct {
	mgr *layer.Manager
	ad  *Adapter
	cam *scene.Camera
}

func newFixture(t *testing.T, snap float64) *fixture {
	t.Helper()
	mgr := layer.NewManager()
	for _, lc := range []struct {
		name string
		c    color.RGBA
	}{{"wall", colorutil.Red}, {"slope", colorutil.Green}} {
		l := layer.NewLayer(lc.name, lc.c)
		require.NoError(t, l.Add(layer.NewBasePlane(geometry.NewRect(-100, -100, 200, 200))))
		require.NoError(t, mgr.AddLayer(l))
	}
	cam := scene.NewCamera(90, 1, 0.1, 1000, 100)
	sess := draw.NewSession(mesh.NewBuilder(mesh.DefaultOptions()), draw.Options{SnapRadius: snap})
	ad := New(mgr, sess, scene.PlanarRaycaster{LineTolerance: 0.5}, cam, Options{Zoom: transform.Limits{Min: 20, Max: 400}})
	return &fixture{mgr: mgr, ad: ad, cam: cam}
}

func (f *fixture) click(t *testing.T, x, y float64) Outcome {
	t.Helper()
	o, err := f.ad.Click(at(x, y))
	require.NoError(t, err)
	return o
}

func (f *fixture) triangle(t *testing.T) []*layer.Shape {
	t.Helper()
	f.click(t, 0, 0)
	f.click(t, 10, 0)
	f.click(t, 0, 10)
	shapes, err := f.ad.Commit()
	require.NoError(t, err)
	return shapes
}

func TestClickThreePointsAndCommit(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)

	assert.Equal(t, OutcomeAppended, f.click(t, 0, 0))
	assert.Equal(t, StateDrawing, f.ad.State())
	assert.Equal(t, OutcomeAppended, f.click(t, 10, 0))
	assert.Equal(t, OutcomeAppended, f.click(t, 0, 10))

	vs := f.ad.Session().Vertices()
	require.Len(t, vs, 3)
	assert.InDelta(t, 10, vs[1].X, 1e-9)
	assert.Zero(t, vs[2].Z)

	shapes, err := f.ad.Commit()
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, scene.KindMesh, shapes[0].Renderable().Kind)
	assert.Equal(t, scene.KindLineLoop, shapes[1].Renderable().Kind)

	wall, _ := f.mgr.Layer("wall")
	assert.Len(t, wall.Features(), 2)
	assert.Zero(t, f.ad.Session().Len())
	assert.Equal(t, StateNeutral, f.ad.State())
}

func TestClickTwoPointsMakesLine(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.click(t, 0, 0)
	f.click(t, 30, 0)

	shapes, err := f.ad.Commit()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, scene.KindLine, shapes[0].Renderable().Kind)
}

func TestClickIgnoredWithoutLayerOrInOtherTool(t *testing.T) {
	f := newFixture(t, 0)
	assert.Equal(t, OutcomeIgnored, f.click(t, 0, 0))
	assert.Zero(t, f.ad.Session().Len())

	_, err := f.ad.Commit()
	assert.ErrorIs(t, err, ErrNoLayer)

	_, err = f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.ad.SetTool(ToolTranslate)
	assert.Equal(t, OutcomeIgnored, f.click(t, 0, 0))
	assert.Zero(t, f.ad.Session().Len())
}

func TestClickOffPlaneIgnored(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	// the camera sees ±100 at the edges; the base plane ends at ±100
	f.cam.SetHeight(300)
	f.cam.UpdateProjection()
	assert.Equal(t, OutcomeIgnored, f.click(t, 90, 90))
}

func TestClickFeatureSelectsWithoutAppending(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	shapes := f.triangle(t)
	fill := shapes[0]

	f.click(t, 50, 50)
	require.Equal(t, 1, f.ad.Session().Len())

	assert.Equal(t, OutcomeSelected, f.click(t, 2, 2))
	assert.Same(t, fill, f.ad.Selected())
	assert.True(t, fill.Selected())
	assert.Equal(t, layer.SelectionColor, fill.Renderable().Material().Color)
	assert.Equal(t, 1, f.ad.Session().Len(), "selecting does not append")

	// a base-plane click clears the selection and appends
	assert.Equal(t, OutcomeAppended, f.click(t, -50, 50))
	assert.Nil(t, f.ad.Selected())
	assert.False(t, fill.Selected())
	assert.Equal(t, colorutil.Red, fill.Renderable().Material().Color)
	assert.Equal(t, 2, f.ad.Session().Len())
}

func TestOnlyActiveLayerIsPicked(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.triangle(t)

	_, err = f.ad.SelectLayer("slope")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAppended, f.click(t, 2, 2))
}

func TestSelectLayerCancelsSession(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.click(t, 0, 0)
	f.click(t, 5, 5)

	_, err = f.ad.SelectLayer("nonexistent")
	assert.ErrorIs(t, err, layer.ErrNotFound)
	assert.Equal(t, 2, f.ad.Session().Len(), "failed switch changes nothing")
	assert.Equal(t, "wall", f.mgr.SelectedLayer().Name())

	_, err = f.ad.SelectLayer("slope")
	require.NoError(t, err)
	assert.Zero(t, f.ad.Session().Len())
	assert.Equal(t, StateNeutral, f.ad.State())
	wall, _ := f.mgr.Layer("wall")
	assert.Empty(t, wall.Features(), "cancel emits no geometry")
}

func TestSelectLayerClearsSelection(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	fill := f.triangle(t)[0]
	f.click(t, 2, 2)
	require.True(t, fill.Selected())

	_, err = f.ad.SelectLayer("slope")
	require.NoError(t, err)
	assert.False(t, fill.Selected())
	assert.Nil(t, f.ad.Selected())
}

func TestTranslateGesture(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	shapes := f.triangle(t)
	fill, outline := shapes[0], shapes[1]
	f.click(t, 2, 2)
	orig := fill.Buffer().Positions()

	f.ad.SetTool(ToolTranslate)
	require.True(t, f.ad.PointerDown(at(50, 50)))
	assert.Equal(t, StateTranslating, f.ad.State())

	assert.True(t, f.ad.PointerMove(at(55, 53), true))
	assert.True(t, f.ad.PointerMove(at(60, 50), true))
	f.ad.PointerUp()
	assert.Equal(t, StateNeutral, f.ad.State())

	got := fill.Buffer().Positions()
	for i := range orig {
		assert.InDelta(t, orig[i].X+10, got[i].X, 1e-6)
		assert.InDelta(t, orig[i].Y, got[i].Y, 1e-6)
		assert.Zero(t, got[i].Z)
	}
	assert.Equal(t, got, outline.Buffer().Positions(), "outline follows the fill")
	assert.Len(t, fill.Renderable().Indices, 3, "topology unchanged")
}

func TestPointerDownNeedsSelectionAndTool(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.triangle(t)

	f.ad.SetTool(ToolTranslate)
	assert.False(t, f.ad.PointerDown(at(50, 50)), "nothing selected")

	f.ad.SetTool(ToolDraw)
	f.click(t, 2, 2)
	assert.False(t, f.ad.PointerDown(at(50, 50)), "draw tool")
	assert.False(t, f.ad.PointerMove(at(60, 60), true))
}

func TestRotateScaleGesture(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	fill := f.triangle(t)[0]
	f.click(t, 2, 2)
	c := fill.Buffer().Centroid()

	f.ad.SetTool(ToolRotateScale)
	require.True(t, f.ad.PointerDown(at(c.X+10, c.Y)))
	assert.Equal(t, StateRotatingScaling, f.ad.State())
	require.True(t, f.ad.PointerMove(at(c.X, c.Y+20), true))
	f.ad.PointerUp()

	want := geometry.NewBuffer([]geometry.Vertex{geometry.Flat(0, 0), geometry.Flat(10, 0), geometry.Flat(0, 10)})
	transform.Apply(want, geometry.ScaleAbout(c.XY(), 2).Compose(geometry.RotationAbout(c.XY(), geometry.Radians(90))))
	got := fill.Buffer().Positions()
	for i, w := range want.Positions() {
		assert.InDelta(t, w.X, got[i].X, 1e-6)
		assert.InDelta(t, w.Y, got[i].Y, 1e-6)
	}
}

func TestReleasedDragEnds(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.triangle(t)
	f.click(t, 2, 2)
	f.ad.SetTool(ToolTranslate)
	require.True(t, f.ad.PointerDown(at(50, 50)))

	assert.False(t, f.ad.PointerMove(at(70, 70), false))
	assert.Equal(t, StateNeutral, f.ad.State())
}

func TestHover(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	fill := f.triangle(t)[0]

	assert.True(t, f.ad.PointerMove(at(2, 2), false))
	assert.Same(t, fill, f.ad.Hovered())
	assert.Equal(t, layer.HoverColor, fill.Renderable().Material().Color)
	assert.False(t, f.ad.PointerMove(at(3, 2), false), "same target")

	assert.True(t, f.ad.PointerMove(at(60, 60), false))
	assert.Nil(t, f.ad.Hovered())
	assert.Equal(t, colorutil.Red, fill.Renderable().Material().Color)
}

func TestSetRotation(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	fill := f.triangle(t)[0]

	assert.False(t, f.ad.SetRotation(30), "no selection")
	f.click(t, 2, 2)
	assert.Zero(t, f.ad.Angle(), "dial resets on a new selection")

	want := geometry.NewBuffer(fill.Buffer().Positions())
	transform.RotateAroundCentroid(want, geometry.Radians(180))

	require.True(t, f.ad.SetRotation(90))
	require.True(t, f.ad.SetRotation(180))
	assert.Equal(t, 180.0, f.ad.Angle())
	got := fill.Buffer().Positions()
	for i, w := range want.Positions() {
		assert.InDelta(t, w.X, got[i].X, 1e-9)
		assert.InDelta(t, w.Y, got[i].Y, 1e-9)
	}
}

func TestScrollZoomClamps(t *testing.T) {
	f := newFixture(t, 0)
	assert.InDelta(t, 95, f.ad.Scroll(-1), 1e-9)
	assert.InDelta(t, 400, f.ad.Scroll(1000), 1e-9)
	assert.InDelta(t, 20, f.ad.Scroll(-1000), 1e-9)
	assert.InDelta(t, 20, f.cam.Height(), 1e-9)
}

func TestSnapCloseCommits(t *testing.T) {
	f := newFixture(t, 5)
	_, err := f.ad.SelectLayer("wall")
	require.NoError(t, err)
	f.click(t, 0, 0)
	f.click(t, 40, 0)
	f.click(t, 0, 40)
	assert.Equal(t, OutcomeCommitted, f.click(t, 2, 1))

	wall, _ := f.mgr.Layer("wall")
	assert.Len(t, wall.Features(), 2)
	assert.Zero(t, f.ad.Session().Len())
}

func TestToolParse(t *testing.T) {
	for _, tool := range []Tool{ToolDraw, ToolTranslate, ToolRotateScale} {
		got, ok := ParseTool(tool.String())
		require.True(t, ok)
		assert.Equal(t, tool, got)
	}
	_, ok := ParseTool("erase")
	assert.False(t, ok)
}
