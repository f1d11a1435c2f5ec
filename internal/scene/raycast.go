package scene

import (
	"cmp"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"map-annotator/pkg/geometry"
)

// Hit is one ray intersection.
type Hit struct {
	Point    geometry.Vertex
	Distance float64
	Object   *Renderable
}

// Raycaster resolves pointer positions into ordered intersections.
type Raycaster interface {
	RayFromPointer(p Pointer, cam *Camera) Ray
	// Intersect returns the hits on targets, nearest first.
	Intersect(ray Ray, targets []*Renderable) []Hit
}

// PlanarRaycaster intersects rays with z=0 content. Lines and point markers
// are hit within LineTolerance world units. Visibility is ignored so that
// invisible base planes stay pickable.
type PlanarRaycaster struct {
	LineTolerance float64
}

// RayFromPointer delegates to the camera.
func (PlanarRaycaster) RayFromPointer(p Pointer, cam *Camera) Ray {
	return cam.RayFromPointer(p)
}

type rankedHit struct {
	Hit
	order int
}

// Intersect tests every target against the ray's crossing of z=0. Equal
// distances are ordered by descending RenderOrder, then by input order.
func (pc PlanarRaycaster) Intersect(ray Ray, targets []*Renderable) []Hit {
	t, ok := ray.IntersectPlaneZ(0)
	if !ok {
		return nil
	}
	at := ray.At(t)
	p := orb.Point{at.X, at.Y}

	var ranked []rankedHit
	for i, r := range targets {
		if r == nil || r.Buffer.Len() == 0 {
			continue
		}
		if !pc.hits(r, p) {
			continue
		}
		ranked = append(ranked, rankedHit{
			Hit:   Hit{Point: geometry.Flat(at.X, at.Y), Distance: t, Object: r},
			order: i,
		})
	}
	slices.SortStableFunc(ranked, func(a, b rankedHit) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Object.RenderOrder, a.Object.RenderOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	hits := make([]Hit, len(ranked))
	for i, h := range ranked {
		hits[i] = h.Hit
	}
	return hits
}

func (pc PlanarRaycaster) hits(r *Renderable, p orb.Point) bool {
	at := func(i int) orb.Point {
		v := r.Buffer.At(i)
		return orb.Point{v.X, v.Y}
	}
	switch r.Kind {
	case KindMesh:
		for _, tri := range r.Triangles() {
			ring := orb.Ring{at(tri[0]), at(tri[1]), at(tri[2]), at(tri[0])}
			if planar.RingContains(ring, p) {
				return true
			}
		}
	case KindLine, KindLineLoop:
		for _, seg := range r.Segments() {
			if planar.DistanceFromSegment(at(seg[0]), at(seg[1]), p) <= pc.LineTolerance {
				return true
			}
		}
	case KindPoints:
		for _, i := range r.Indices {
			if planar.Distance(at(i), p) <= pc.LineTolerance {
				return true
			}
		}
	}
	return false
}
