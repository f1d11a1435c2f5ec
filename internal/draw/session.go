// Package draw captures clicked vertices and commits them as shapes.
package draw

import (
	"fmt"

	"map-annotator/internal/applog"
	"map-annotator/internal/layer"
	"map-annotator/internal/mesh"
	"map-annotator/pkg/geometry"
)

// State of a drawing session.
type State int

const (
	StateIdle State = iota
	StateCapturing
)

func (s State) String() string {
	if s == StateCapturing {
		return "capturing"
	}
	return "idle"
}

// Options configures a Session.
type Options struct {
	// SnapRadius closes the ring when a click lands this close to the first
	// vertex of a sequence with at least 3 vertices. Zero disables snapping.
	SnapRadius float64
}

// DefaultOptions returns the stock session settings.
func DefaultOptions() Options {
	return Options{SnapRadius: 10}
}

// Session accumulates vertices until they are committed or cancelled. An
// empty sequence means idle.
type Session struct {
	builder  *mesh.Builder
	opts     Options
	vertices []geometry.Vertex
}

// NewSession creates an idle session.
func NewSession(b *mesh.Builder, opts Options) *Session {
	return &Session{builder: b, opts: opts}
}

// SetOptions replaces the session settings.
func (s *Session) SetOptions(opts Options) { s.opts = opts }

func (s *Session) State() State {
	if len(s.vertices) == 0 {
		return StateIdle
	}
	return StateCapturing
}

func (s *Session) Len() int { return len(s.vertices) }

// Vertices returns a copy of the captured sequence.
func (s *Session) Vertices() []geometry.Vertex {
	out := make([]geometry.Vertex, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// Append captures v with z forced to 0. It reports closed=true, without
// appending, when v snaps onto the first vertex; the caller should commit.
func (s *Session) Append(v geometry.Vertex) (closed bool) {
	v = v.Flatten()
	if s.opts.SnapRadius > 0 && len(s.vertices) >= 3 &&
		v.XY().Distance(s.vertices[0].XY()) <= s.opts.SnapRadius {
		return true
	}
	s.vertices = append(s.vertices, v)
	return false
}

// Commit builds geometry from the captured vertices, adds the resulting
// shapes to target and clears the session. The session is cleared even when
// building or adding fails.
func (s *Session) Commit(target *layer.Layer) ([]*layer.Shape, error) {
	vs := s.vertices
	s.vertices = nil
	log := applog.WithComponent("draw")

	if len(vs) < 2 {
		return nil, nil
	}
	if target == nil {
		return nil, fmt.Errorf("commit %d vertices: no target layer", len(vs))
	}

	res, buildErr := s.builder.Build(vs, target.HighlightColor())
	var shapes []*layer.Shape
	for _, r := range res.Renderables() {
		sh := layer.NewShape(r, false)
		if err := target.Add(sh); err != nil {
			return shapes, fmt.Errorf("commit to %q: %w", target.Name(), err)
		}
		shapes = append(shapes, sh)
	}
	if buildErr != nil {
		return shapes, fmt.Errorf("commit to %q: %w", target.Name(), buildErr)
	}
	log.Info("Session: committed", "layer", target.Name(), "vertices", len(vs), "shapes", len(shapes))
	return shapes, nil
}

// Cancel discards the captured vertices without emitting geometry.
func (s *Session) Cancel() {
	if len(s.vertices) > 0 {
		applog.WithComponent("draw").Debug("Session: cancelled", "vertices", len(s.vertices))
	}
	s.vertices = nil
}
