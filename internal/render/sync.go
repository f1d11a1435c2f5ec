// Package render applies layer commands to the scene and rasterizes it.
package render

import (
	"fmt"

	"map-annotator/internal/applog"
	"map-annotator/internal/layer"
	"map-annotator/internal/scene"
)

// Sync mirrors layer commands into a scene one shape at a time.
type Sync struct {
	scene *scene.Scene
	gen   uint64
}

// NewSync binds a Sync to sc.
func NewSync(sc *scene.Scene) *Sync {
	return &Sync{scene: sc}
}

// Scene returns the target scene.
func (s *Sync) Scene() *scene.Scene { return s.scene }

// Apply executes one command.
func (s *Sync) Apply(c layer.Command) error {
	switch c.Kind {
	case layer.AddShape:
		if err := s.scene.Add(c.Shape.Renderable()); err != nil {
			return fmt.Errorf("sync %s on %q: %w", c.Kind, c.Layer, err)
		}
	case layer.RemoveShape:
		if !s.scene.Remove(c.Shape.ID()) {
			return fmt.Errorf("sync %s on %q: %s not in scene", c.Kind, c.Layer, c.Shape.ID())
		}
	case layer.LayerVisibility:
		// visibility lives on the shared renderables; only the frame is stale
	default:
		return fmt.Errorf("sync: unknown command %d", c.Kind)
	}
	s.gen++
	return nil
}

// Flush drains q and applies every command. Failures are logged and skipped.
// It returns the number of commands applied.
func (s *Sync) Flush(q *layer.CommandQueue) int {
	n := 0
	for _, c := range q.Drain() {
		if err := s.Apply(c); err != nil {
			applog.WithComponent("render").Error("Sync: command failed", "error", err)
			continue
		}
		n++
	}
	return n
}

// Touch marks the scene changed without a command, e.g. after a vertex
// buffer was transformed in place.
func (s *Sync) Touch() { s.gen++ }

// Generation increases with every applied change.
func (s *Sync) Generation() uint64 { return s.gen }
