package picking

import (
	"errors"
	"fmt"

	"map-annotator/internal/applog"
	"map-annotator/internal/draw"
	"map-annotator/internal/layer"
	"map-annotator/internal/scene"
	"map-annotator/internal/transform"
	"map-annotator/pkg/geometry"
)

// ErrNoLayer is returned by operations that need an active layer.
var ErrNoLayer = errors.New("no active layer")

// Options configures an Adapter.
type Options struct {
	Zoom transform.Limits
}

// Adapter turns pointer events into session, selection and transform
// changes. All methods run on the event loop.
type Adapter struct {
	layers  *layer.Manager
	session *draw.Session
	caster  scene.Raycaster
	camera  *scene.Camera
	opts    Options

	tool    Tool
	sel     Selection
	hovered *layer.Shape
	gesture transform.Gesture
	dial    transform.Dial
}

// New creates an adapter in draw mode.
func New(layers *layer.Manager, session *draw.Session, caster scene.Raycaster, cam *scene.Camera, opts Options) *Adapter {
	return &Adapter{
		layers:  layers,
		session: session,
		caster:  caster,
		camera:  cam,
		opts:    opts,
	}
}

// SetOptions replaces the adapter settings.
func (a *Adapter) SetOptions(opts Options) { a.opts = opts }

// SetRaycaster replaces the hit tester.
func (a *Adapter) SetRaycaster(rc scene.Raycaster) { a.caster = rc }

func (a *Adapter) Tool() Tool { return a.tool }

// State reports the current interaction state.
func (a *Adapter) State() State {
	switch {
	case a.gesture.Active() && a.gesture.Kind() == transform.KindTranslate:
		return StateTranslating
	case a.gesture.Active() && a.gesture.Kind() == transform.KindRotateScale:
		return StateRotatingScaling
	case a.session.State() == draw.StateCapturing:
		return StateDrawing
	}
	return StateNeutral
}

// Selected returns the active shape, or nil.
func (a *Adapter) Selected() *layer.Shape { return a.sel.Active() }

// Hovered returns the shape under the pointer, or nil.
func (a *Adapter) Hovered() *layer.Shape { return a.hovered }

// Session returns the drawing session.
func (a *Adapter) Session() *draw.Session { return a.session }

// Angle returns the rotation dial position in degrees.
func (a *Adapter) Angle() float64 { return a.dial.Degrees() }

// SetTool switches the interaction mode and ends any drag in progress.
func (a *Adapter) SetTool(t Tool) {
	a.gesture.End()
	a.tool = t
}

// SelectLayer activates the named layer. On success any in-progress drawing
// or gesture is discarded and the selection cleared; on failure nothing
// changes.
func (a *Adapter) SelectLayer(name string) (*layer.Layer, error) {
	l, err := a.layers.SelectLayer(name)
	if err != nil {
		return nil, err
	}
	a.session.Cancel()
	a.gesture.End()
	a.sel.Clear()
	a.clearHover()
	a.dial.Reset()
	return l, nil
}

func (a *Adapter) hits(p scene.Pointer) []scene.Hit {
	l := a.layers.SelectedLayer()
	if l == nil {
		return nil
	}
	ray := a.caster.RayFromPointer(p, a.camera)
	return a.caster.Intersect(ray, l.Targets())
}

// nearest resolves the closest hit on the active layer.
func (a *Adapter) nearest(p scene.Pointer) (scene.Hit, *layer.Shape, bool) {
	hits := a.hits(p)
	if len(hits) == 0 {
		return scene.Hit{}, nil, false
	}
	sh, ok := a.layers.SelectedLayer().Lookup(hits[0].Object)
	return hits[0], sh, ok
}

// planePoint returns the first base-plane hit under p.
func (a *Adapter) planePoint(p scene.Pointer) (geometry.Point2D, bool) {
	for _, h := range a.hits(p) {
		if h.Object.Tags.BasePlane {
			return h.Point.XY(), true
		}
	}
	return geometry.Point2D{}, false
}

// Click handles a primary click. In draw mode the nearest hit decides: a
// feature is selected, the base plane receives a vertex.
func (a *Adapter) Click(p scene.Pointer) (Outcome, error) {
	if a.layers.SelectedLayer() == nil || a.tool != ToolDraw {
		return OutcomeIgnored, nil
	}
	hit, sh, ok := a.nearest(p)
	if !ok {
		return OutcomeIgnored, nil
	}
	if !sh.IsBasePlane() {
		if a.sel.Active() != sh {
			a.dial.Reset()
		}
		a.sel.Set(sh)
		return OutcomeSelected, nil
	}

	if a.sel.Active() != nil {
		a.sel.Clear()
		a.dial.Reset()
	}
	if a.session.Append(hit.Point) {
		_, err := a.Commit()
		return OutcomeCommitted, err
	}
	return OutcomeAppended, nil
}

// Commit finishes the current drawing into the active layer.
func (a *Adapter) Commit() ([]*layer.Shape, error) {
	l := a.layers.SelectedLayer()
	if l == nil {
		a.session.Cancel()
		return nil, ErrNoLayer
	}
	shapes, err := a.session.Commit(l)
	if err != nil {
		applog.WithComponent("picking").Warn("Adapter: commit failed", "layer", l.Name(), "error", err)
	}
	return shapes, err
}

// Cancel discards the current drawing.
func (a *Adapter) Cancel() {
	a.session.Cancel()
}

// PointerDown starts a translate or rotate-scale drag when a shape is
// selected, the matching tool is active and the pointer is over the base
// plane.
func (a *Adapter) PointerDown(p scene.Pointer) bool {
	var kind transform.Kind
	switch a.tool {
	case ToolTranslate:
		kind = transform.KindTranslate
	case ToolRotateScale:
		kind = transform.KindRotateScale
	default:
		return false
	}
	s := a.sel.Active()
	if s == nil {
		return false
	}
	anchor, ok := a.planePoint(p)
	if !ok {
		return false
	}
	a.gesture.Begin(kind, s.Buffer(), anchor)
	return true
}

// PointerMove updates a drag while the button is held, or refreshes the
// hover highlight when it is not. It reports whether anything changed.
func (a *Adapter) PointerMove(p scene.Pointer, pressed bool) bool {
	if a.gesture.Active() {
		if !pressed {
			a.gesture.End()
			return false
		}
		pt, ok := a.planePoint(p)
		if !ok {
			return false
		}
		return a.gesture.Update(pt)
	}
	if pressed {
		return false
	}
	return a.updateHover(p)
}

// PointerUp ends any drag.
func (a *Adapter) PointerUp() {
	a.gesture.End()
}

func (a *Adapter) updateHover(p scene.Pointer) bool {
	var target *layer.Shape
	if _, sh, ok := a.nearest(p); ok && !sh.IsBasePlane() {
		target = sh
	}
	if target == a.hovered {
		return false
	}
	a.clearHover()
	if target != nil {
		target.Hover(true)
		a.hovered = target
	}
	return true
}

func (a *Adapter) clearHover() {
	if a.hovered != nil {
		a.hovered.Hover(false)
		a.hovered = nil
	}
}

// Scroll zooms the camera by ticks steps; negative ticks zoom in. It
// returns the new camera height.
func (a *Adapter) Scroll(ticks int) float64 {
	return transform.ZoomCamera(a.camera, ticks, a.opts.Zoom)
}

// SetRotation moves the rotation dial to deg and rotates the selected shape
// about its centroid by the change. It reports whether a shape was rotated.
func (a *Adapter) SetRotation(deg float64) bool {
	delta := a.dial.Set(deg)
	s := a.sel.Active()
	if s == nil || delta == 0 {
		return false
	}
	transform.RotateAroundCentroid(s.Buffer(), delta)
	return true
}

// Describe summarises the adapter for status displays.
func (a *Adapter) Describe() string {
	name := "-"
	if l := a.layers.SelectedLayer(); l != nil {
		name = l.Name()
	}
	return fmt.Sprintf("layer %s | tool %s | %s | %d vertices", name, a.tool, a.State(), a.session.Len())
}
