package layer

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/keylist"
	"github.com/google/uuid"

	"map-annotator/internal/scene"
)

// Layer is a named, ordered collection of shapes. Every change to the
// collection is announced on the attached CommandQueue.
type Layer struct {
	name      string
	highlight color.RGBA
	shapes    keylist.List[uuid.UUID, *Shape]
	basePlane *Shape
	visible   bool
	selected  bool
	queue     *CommandQueue
}

// NewLayer creates an empty visible layer.
func NewLayer(name string, highlight color.RGBA) *Layer {
	return &Layer{name: name, highlight: highlight, visible: true}
}

func (l *Layer) Name() string { return l.name }

// HighlightColor is the fill color for polygons committed to this layer.
func (l *Layer) HighlightColor() color.RGBA { return l.highlight }

// SetHighlightColor changes the color used for future commits.
func (l *Layer) SetHighlightColor(c color.RGBA) { l.highlight = c }

func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) Selected() bool { return l.selected }

// Len returns the number of shapes including the base plane.
func (l *Layer) Len() int { return l.shapes.Len() }

// Add appends shape and emits AddShape.
func (l *Layer) Add(s *Shape) error {
	if s.layer != nil && s.layer != l {
		return fmt.Errorf("layer %q: add %s: %w (owner %q)", l.name, s.ID(), ErrForeignShape, s.layer.name)
	}
	if err := l.shapes.Add(s.ID(), s); err != nil {
		return fmt.Errorf("layer %q: add %s: %w", l.name, s.ID(), ErrDuplicateKey)
	}
	s.layer = l
	r := s.Renderable()
	r.Tags = scene.Tags{Layer: l.name, BasePlane: s.basePlane, LayerObject: true}
	if s.basePlane {
		if l.basePlane == nil {
			l.basePlane = s
		}
		r.Visible = false
	} else {
		r.Visible = l.visible
	}
	l.queue.Push(Command{Kind: AddShape, Layer: l.name, Shape: s, Visible: r.Visible})
	return nil
}

// Remove deletes s if present and emits RemoveShape. The base plane cannot be
// removed.
func (l *Layer) Remove(s *Shape) bool {
	if s == nil || s.basePlane {
		return false
	}
	if !l.shapes.DeleteByKey(s.ID()) {
		return false
	}
	l.queue.Push(Command{Kind: RemoveShape, Layer: l.name, Shape: s})
	return true
}

// BasePlane returns the base plane's renderable, or nil if the layer has none.
func (l *Layer) BasePlane() *scene.Renderable {
	if l.basePlane == nil {
		return nil
	}
	return l.basePlane.Renderable()
}

// Shapes returns every shape in insertion order.
func (l *Layer) Shapes() []*Shape {
	out := make([]*Shape, len(l.shapes.Values))
	copy(out, l.shapes.Values)
	return out
}

// Features returns the user-drawn shapes in insertion order.
func (l *Layer) Features() []*Shape {
	var out []*Shape
	for _, s := range l.shapes.Values {
		if !s.basePlane {
			out = append(out, s)
		}
	}
	return out
}

// Targets returns the renderables a pointer ray is tested against: every
// feature followed by the base plane.
func (l *Layer) Targets() []*scene.Renderable {
	var out []*scene.Renderable
	for _, s := range l.Features() {
		out = append(out, s.Renderable())
	}
	if bp := l.BasePlane(); bp != nil {
		out = append(out, bp)
	}
	return out
}

// Lookup finds the shape wrapping r.
func (l *Layer) Lookup(r *scene.Renderable) (*Shape, bool) {
	if r == nil {
		return nil, false
	}
	return l.shapes.AtTry(r.ID)
}

// SetVisible shows or hides every feature shape. The base plane stays
// invisible.
func (l *Layer) SetVisible(v bool) {
	l.visible = v
	for _, s := range l.shapes.Values {
		if !s.basePlane {
			s.Renderable().Visible = v
		}
	}
	l.queue.Push(Command{Kind: LayerVisibility, Layer: l.name, Visible: v})
}

// Select sets the layer's own selected flag. Shape highlight is unaffected.
func (l *Layer) Select() { l.selected = true }

// Deselect clears the layer's selected flag.
func (l *Layer) Deselect() { l.selected = false }

func (l *Layer) attach(q *CommandQueue) {
	l.queue = q
	for _, s := range l.shapes.Values {
		q.Push(Command{Kind: AddShape, Layer: l.name, Shape: s, Visible: s.Renderable().Visible})
	}
}
