package picking

import "map-annotator/internal/layer"

// Selection holds the single shape targeted by transforms.
type Selection struct {
	active *layer.Shape
}

// Set makes s the active shape, deselecting the previous one.
func (sel *Selection) Set(s *layer.Shape) {
	if sel.active == s {
		return
	}
	if sel.active != nil {
		sel.active.Deselect()
	}
	sel.active = s
	if s != nil {
		s.Select()
	}
}

// Clear deselects the active shape.
func (sel *Selection) Clear() { sel.Set(nil) }

// Active returns the selected shape, or nil.
func (sel *Selection) Active() *layer.Shape { return sel.active }
