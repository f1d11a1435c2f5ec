package transform

import "map-annotator/pkg/geometry"

// Dial converts absolute angle input in degrees, as produced by a slider,
// into relative rotations.
type Dial struct {
	deg float64
}

// Set moves the dial to deg and returns the change in radians.
func (d *Dial) Set(deg float64) float64 {
	delta := deg - d.deg
	d.deg = deg
	return geometry.Radians(delta)
}

// Degrees returns the current dial position.
func (d *Dial) Degrees() float64 { return d.deg }

// Reset returns the dial to 0 without producing a rotation.
func (d *Dial) Reset() { d.deg = 0 }
