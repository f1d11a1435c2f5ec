// Package mesh turns captured vertex sequences into fill, outline and line
// renderables.
package mesh

import (
	"errors"
	"fmt"

	"github.com/rclancey/earcut"

	"map-annotator/pkg/geometry"
)

var (
	// ErrDegenerate is returned for input with fewer than 3 distinct vertices.
	ErrDegenerate = errors.New("degenerate polygon")
	// ErrTriangulation is returned when the triangulator fails or yields no
	// usable triangles.
	ErrTriangulation = errors.New("triangulation failed")
)

// Triangulate ear-clips the closed ring through points and returns index
// triples into points. Holes are not supported.
func Triangulate(points []geometry.Point2D) ([]int, error) {
	vs := make([]geometry.Vertex, len(points))
	for i, p := range points {
		vs[i] = geometry.Flat(p.X, p.Y)
	}
	if geometry.DistinctCount(vs, geometry.Epsilon) < 3 {
		return nil, fmt.Errorf("%w: %d distinct of %d vertices", ErrDegenerate,
			geometry.DistinctCount(vs, geometry.Epsilon), len(points))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	coords := make([]float64, len(points)*2)
	for i, p := range points {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %d-vertex polygon: %w", ErrTriangulation, len(points), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices not divisible by 3", ErrTriangulation, len(indices))
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no triangles for %d-vertex polygon", ErrTriangulation, len(points))
	}
	return indices, nil
}
