package layer

import (
	"image/color"

	"github.com/google/uuid"

	"map-annotator/internal/scene"
	"map-annotator/pkg/colorutil"
	"map-annotator/pkg/geometry"
)

// Highlight colors applied by Select and Hover.
var (
	SelectionColor = colorutil.Selection
	HoverColor     = colorutil.Hover
)

// Shape wraps one renderable with selection state. Color changes never touch
// geometry.
type Shape struct {
	r         *scene.Renderable
	layer     *Layer
	basePlane bool
	selected  bool
	hovered   bool
	baseline  []color.RGBA
}

// NewShape wraps r and captures the current material colors as the baseline.
func NewShape(r *scene.Renderable, basePlane bool) *Shape {
	s := &Shape{r: r, basePlane: basePlane, baseline: make([]color.RGBA, len(r.Materials))}
	for i, m := range r.Materials {
		if m != nil {
			s.baseline[i] = m.Color
		}
	}
	return s
}

// NewBasePlane returns an invisible quad covering bounds at z=0.
func NewBasePlane(bounds geometry.Rect) *Shape {
	mat := scene.NewMaterial(colorutil.BasePlane)
	mat.Opacity = 0
	mat.Transparent = true
	r := scene.NewRenderable(scene.KindMesh, geometry.NewBuffer(bounds.Corners()), []int{0, 1, 2, 0, 2, 3}, mat)
	r.Name = "base-plane"
	r.Visible = false
	return NewShape(r, true)
}

func (s *Shape) ID() uuid.UUID { return s.r.ID }

func (s *Shape) Renderable() *scene.Renderable { return s.r }

// Layer returns the owning layer, or nil before the shape is added.
func (s *Shape) Layer() *Layer { return s.layer }

func (s *Shape) IsBasePlane() bool { return s.basePlane }

func (s *Shape) Selected() bool { return s.selected }

func (s *Shape) Hovered() bool { return s.hovered }

// Buffer returns the vertex buffer transforms operate on.
func (s *Shape) Buffer() *geometry.Buffer { return s.r.Buffer }

// Baseline returns the color of the first material at construction.
func (s *Shape) Baseline() color.RGBA {
	if len(s.baseline) == 0 {
		return color.RGBA{}
	}
	return s.baseline[0]
}

// Select marks the shape selected and paints every solid material with
// SelectionColor.
func (s *Shape) Select() {
	s.selected = true
	s.paint()
}

// Deselect clears the selection and restores the baseline colors.
func (s *Shape) Deselect() {
	s.selected = false
	s.paint()
}

// Hover toggles the transient hover tint. Selection takes precedence.
func (s *Shape) Hover(on bool) {
	if s.basePlane {
		return
	}
	s.hovered = on
	s.paint()
}

func (s *Shape) paint() {
	for i, m := range s.r.Materials {
		switch {
		case s.selected:
			m.SetColor(SelectionColor)
		case s.hovered:
			m.SetColor(HoverColor)
		default:
			m.SetColor(s.baseline[i])
		}
	}
}
