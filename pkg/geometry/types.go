// Package geometry provides the planar vertex and transform types shared by the
// editor engine.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the absolute tolerance used for near-zero comparisons.
const Epsilon = 1e-9

// NearlyZero reports whether x is within Epsilon of zero.
func NearlyZero(x float64) bool {
	return scalar.EqualWithinAbs(x, 0, Epsilon)
}

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Norm returns the length of p treated as a vector.
func (p Point2D) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the direction of p treated as a vector, in radians.
func (p Point2D) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Vertex is a 3D position. Planar content keeps Z at 0.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Flat returns a vertex on the z=0 plane.
func Flat(x, y float64) Vertex {
	return Vertex{X: x, Y: y}
}

// XY drops the Z component.
func (v Vertex) XY() Point2D {
	return Point2D{X: v.X, Y: v.Y}
}

// Flatten returns v with Z forced to 0.
func (v Vertex) Flatten() Vertex {
	return Vertex{X: v.X, Y: v.Y}
}

// Vec converts v to a gonum vector.
func (v Vertex) Vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// FromVec converts a gonum vector to a Vertex.
func FromVec(v r3.Vec) Vertex {
	return Vertex{X: v.X, Y: v.Y, Z: v.Z}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Corners returns the four corners counter-clockwise from the minimum corner,
// as z=0 vertices.
func (r Rect) Corners() []Vertex {
	return []Vertex{
		Flat(r.X, r.Y),
		Flat(r.X+r.Width, r.Y),
		Flat(r.X+r.Width, r.Y+r.Height),
		Flat(r.X, r.Y+r.Height),
	}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
