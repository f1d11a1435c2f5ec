package geometry

import "math"

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation returns a rotation transform around the origin.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// RotationAbout returns a rotation by radians around the pivot c.
func RotationAbout(c Point2D, radians float64) AffineTransform {
	return Translation(c.X, c.Y).Compose(Rotation(radians)).Compose(Translation(-c.X, -c.Y))
}

// ScaleAbout returns a uniform scale by s around the pivot c.
func ScaleAbout(c Point2D, s float64) AffineTransform {
	return Translation(c.X, c.Y).Compose(Scale(s, s)).Compose(Translation(-c.X, -c.Y))
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// ApplyVertex transforms the x/y components of v and keeps Z.
func (t AffineTransform) ApplyVertex(v Vertex) Vertex {
	p := t.Apply(v.XY())
	return Vertex{X: p.X, Y: p.Y, Z: v.Z}
}

// Compose returns this transform composed with another (this * other).
// The result applies other first.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Homogeneous returns the full 3x3 row-major matrix.
func (t AffineTransform) Homogeneous() []float64 {
	return []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	}
}

// Finite reports whether every coefficient is a finite number.
func (t AffineTransform) Finite() bool {
	for _, v := range t.Homogeneous() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
