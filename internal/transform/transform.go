// Package transform moves, rotates and scales shape vertex buffers in place,
// and clamps camera zoom.
package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"map-annotator/pkg/geometry"
)

// Apply transforms every vertex of buf by t in one batch and marks the buffer
// changed. Z is preserved. Non-finite transforms are rejected.
func Apply(buf *geometry.Buffer, t geometry.AffineTransform) bool {
	n := buf.Len()
	if n == 0 || !t.Finite() {
		return false
	}
	vs := buf.Positions()

	// rows are homogeneous points (x, y, 1)
	pts := mat.NewDense(n, 3, nil)
	for i, v := range vs {
		pts.SetRow(i, []float64{v.X, v.Y, 1})
	}
	m := mat.NewDense(3, 3, t.Homogeneous())

	var out mat.Dense
	out.Mul(pts, m.T())
	for i := range vs {
		vs[i].X = out.At(i, 0)
		vs[i].Y = out.At(i, 1)
	}
	buf.Set(vs)
	return true
}

// Translate shifts every vertex by delta. Z is unchanged.
func Translate(buf *geometry.Buffer, delta geometry.Point2D) {
	Apply(buf, geometry.Translation(delta.X, delta.Y))
}

// RotateAroundCentroid rotates every vertex by theta radians about the
// buffer's centroid.
func RotateAroundCentroid(buf *geometry.Buffer, theta float64) {
	if buf.Len() == 0 {
		return
	}
	Apply(buf, geometry.RotationAbout(buf.Centroid().XY(), theta))
}

// CombinedRotateScale rotates and uniformly scales the buffer about its
// centroid so that the direction centroid→prev maps onto centroid→curr.
// Rotation is applied first, then scale. It is a no-op, returning false,
// when prev or curr coincides with the centroid or the resulting transform
// is not finite. A zero scale would collapse the shape beyond recovery.
func CombinedRotateScale(buf *geometry.Buffer, prev, curr geometry.Point2D) bool {
	if buf.Len() == 0 {
		return false
	}
	c := buf.Centroid().XY()
	dirPrev := prev.Sub(c)
	dirCurr := curr.Sub(c)
	lenPrev, lenCurr := dirPrev.Norm(), dirCurr.Norm()
	if geometry.NearlyZero(lenPrev) || geometry.NearlyZero(lenCurr) {
		return false
	}
	angle := dirCurr.Angle() - dirPrev.Angle()
	scale := lenCurr / lenPrev
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return false
	}
	t := geometry.ScaleAbout(c, scale).Compose(geometry.RotationAbout(c, angle))
	return Apply(buf, t)
}
