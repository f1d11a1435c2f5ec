package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"map-annotator/pkg/geometry"
)

// Pointer is a pointer position in normalized device coordinates: x and y in
// [-1, 1], y up.
type Pointer struct {
	X, Y float64
}

// PointerFromPixels converts a pixel position inside a w×h viewport.
func PointerFromPixels(x, y, w, h float64) Pointer {
	if w <= 0 || h <= 0 {
		return Pointer{}
	}
	return Pointer{X: x/w*2 - 1, Y: -(y/h*2 - 1)}
}

// Pixels converts p back into a pixel position inside a w×h viewport.
func (p Pointer) Pixels(w, h float64) (x, y float64) {
	return (p.X + 1) / 2 * w, (1 - p.Y) / 2 * h
}

// Camera is a perspective camera. After changing any field call
// UpdateProjection before projecting or casting rays.
type Camera struct {
	FOV      float64 // vertical field of view, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	forward, right, up r3.Vec
	tanHalf            float64
}

// NewCamera returns a camera looking down the -Z axis from height above the
// origin, already projected.
func NewCamera(fov, aspect, near, far, height float64) *Camera {
	c := &Camera{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: r3.Vec{Z: height},
		Up:       r3.Vec{Y: 1},
	}
	c.UpdateProjection()
	return c
}

// LookAt aims the camera at target.
func (c *Camera) LookAt(target r3.Vec) {
	c.Target = target
	c.UpdateProjection()
}

// SetAspect updates the aspect ratio and reprojects.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// Height returns the camera's Z position.
func (c *Camera) Height() float64 {
	return c.Position.Z
}

// SetHeight moves the camera along Z. The caller recomputes the projection.
func (c *Camera) SetHeight(h float64) {
	c.Position.Z = h
}

// UpdateProjection recomputes the view basis from the current parameters.
func (c *Camera) UpdateProjection() {
	c.forward = r3.Unit(r3.Sub(c.Target, c.Position))
	c.right = r3.Unit(r3.Cross(c.forward, c.Up))
	c.up = r3.Cross(c.right, c.forward)
	c.tanHalf = math.Tan(geometry.Radians(c.FOV) / 2)
}

// RayFromPointer returns the world-space ray through p.
func (c *Camera) RayFromPointer(p Pointer) Ray {
	dir := c.forward
	dir = r3.Add(dir, r3.Scale(p.X*c.tanHalf*c.Aspect, c.right))
	dir = r3.Add(dir, r3.Scale(p.Y*c.tanHalf, c.up))
	return Ray{Origin: c.Position, Direction: r3.Unit(dir)}
}

// Project maps a world position to normalized device coordinates. It reports
// false for points behind the near plane.
func (c *Camera) Project(v geometry.Vertex) (Pointer, bool) {
	d := r3.Sub(v.Vec(), c.Position)
	z := r3.Dot(d, c.forward)
	if z <= c.Near || c.tanHalf == 0 {
		return Pointer{}, false
	}
	return Pointer{
		X: r3.Dot(d, c.right) / (z * c.tanHalf * c.Aspect),
		Y: r3.Dot(d, c.up) / (z * c.tanHalf),
	}, true
}

// Ray is a half line.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// At returns the point at parameter t.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// IntersectPlaneZ returns the parameter where the ray crosses the plane at
// height z, or false if it is parallel or the plane is behind the origin.
func (r Ray) IntersectPlaneZ(z float64) (float64, bool) {
	if geometry.NearlyZero(r.Direction.Z) {
		return 0, false
	}
	t := (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return 0, false
	}
	return t, true
}
