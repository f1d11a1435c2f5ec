package scene

import (
	"cmp"
	"fmt"
	"slices"

	"cogentcore.org/core/base/keylist"
	"github.com/google/uuid"
)

// Scene is a keyed set of renderables. Add and Get are O(1); Remove
// reindexes the remaining entries.
type Scene struct {
	items keylist.List[uuid.UUID, *Renderable]
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add inserts r. Adding the same ID twice is an error.
func (s *Scene) Add(r *Renderable) error {
	if err := s.items.Add(r.ID, r); err != nil {
		return fmt.Errorf("scene add %s: %w", r.ID, err)
	}
	return nil
}

// Remove deletes the renderable with the given ID and reports whether it was
// present.
func (s *Scene) Remove(id uuid.UUID) bool {
	return s.items.DeleteByKey(id)
}

// Get looks up a renderable by ID.
func (s *Scene) Get(id uuid.UUID) (*Renderable, bool) {
	return s.items.AtTry(id)
}

// Len returns the number of renderables.
func (s *Scene) Len() int {
	return s.items.Len()
}

// All returns the renderables in insertion order.
func (s *Scene) All() []*Renderable {
	return slices.Clone(s.items.Values)
}

// Ordered returns the renderables sorted by RenderOrder, keeping insertion
// order among equals.
func (s *Scene) Ordered() []*Renderable {
	out := s.All()
	slices.SortStableFunc(out, func(a, b *Renderable) int {
		return cmp.Compare(a.RenderOrder, b.RenderOrder)
	})
	return out
}

// Clear removes everything.
func (s *Scene) Clear() {
	s.items.Reset()
}
