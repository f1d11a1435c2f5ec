package geometry

import "math"

// Centroid computes the arithmetic mean of a set of vertices.
func Centroid(vs []Vertex) Vertex {
	if len(vs) == 0 {
		return Vertex{}
	}
	var sx, sy, sz float64
	for _, v := range vs {
		sx += v.X
		sy += v.Y
		sz += v.Z
	}
	n := float64(len(vs))
	return Vertex{X: sx / n, Y: sy / n, Z: sz / n}
}

// BoundingBox computes the axis-aligned bounding box of a set of vertices in x/y.
func BoundingBox(vs []Vertex) Rect {
	if len(vs) == 0 {
		return Rect{}
	}
	minX, minY := vs[0].X, vs[0].Y
	maxX, maxY := minX, minY
	for _, v := range vs[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// DistinctCount returns how many vertices differ in x/y from every earlier one
// by more than eps.
func DistinctCount(vs []Vertex, eps float64) int {
	n := 0
outer:
	for i, v := range vs {
		for _, u := range vs[:i] {
			if math.Abs(u.X-v.X) <= eps && math.Abs(u.Y-v.Y) <= eps {
				continue outer
			}
		}
		n++
	}
	return n
}

// SignedArea returns the shoelace area of the closed ring; positive when the
// ring winds counter-clockwise.
func SignedArea(vs []Vertex) float64 {
	if len(vs) < 3 {
		return 0
	}
	var a float64
	for i := range vs {
		j := (i + 1) % len(vs)
		a += vs[i].X*vs[j].Y - vs[j].X*vs[i].Y
	}
	return a / 2
}

// ToPoints drops Z from every vertex.
func ToPoints(vs []Vertex) []Point2D {
	out := make([]Point2D, len(vs))
	for i, v := range vs {
		out[i] = v.XY()
	}
	return out
}
