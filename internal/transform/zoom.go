package transform

import "map-annotator/internal/scene"

// Zoom factors applied to the camera height per scroll tick.
const (
	ZoomInFactor  = 0.95
	ZoomOutFactor = 1.05
)

// Limits bounds the camera height.
type Limits struct {
	Min float64
	Max float64
}

// Clamp restricts h to the limits.
func (l Limits) Clamp(h float64) float64 {
	if h < l.Min {
		return l.Min
	}
	if h > l.Max {
		return l.Max
	}
	return h
}

// ZoomCamera applies ticks scroll steps to the camera height. Negative ticks
// zoom in (lower the camera), positive ticks zoom out. The result is clamped
// to limits and the projection recomputed. It returns the new height.
func ZoomCamera(cam *scene.Camera, ticks int, limits Limits) float64 {
	h := cam.Height()
	for ; ticks < 0; ticks++ {
		h *= ZoomInFactor
	}
	for ; ticks > 0; ticks-- {
		h *= ZoomOutFactor
	}
	h = limits.Clamp(h)
	cam.SetHeight(h)
	cam.UpdateProjection()
	return h
}
