package transform

import "map-annotator/pkg/geometry"

// Kind selects what a pointer drag does to the selected shape.
type Kind int

const (
	KindNone Kind = iota
	KindTranslate
	KindRotateScale
)

func (k Kind) String() string {
	switch k {
	case KindTranslate:
		return "translate"
	case KindRotateScale:
		return "rotate-scale"
	}
	return "none"
}

// Gesture tracks one drag from pointer-down to pointer-up. Points are
// base-plane hits.
type Gesture struct {
	kind Kind
	buf  *geometry.Buffer
	last geometry.Point2D
}

// Begin starts a drag on buf anchored at anchor.
func (g *Gesture) Begin(kind Kind, buf *geometry.Buffer, anchor geometry.Point2D) {
	g.kind = kind
	g.buf = buf
	g.last = anchor
}

func (g *Gesture) Active() bool { return g.kind != KindNone && g.buf != nil }

func (g *Gesture) Kind() Kind { return g.kind }

// Update applies the movement from the previous point to p and reports
// whether the buffer changed. A rotate-scale step that is rejected keeps the
// previous point, so the next step is measured from the last applied one.
func (g *Gesture) Update(p geometry.Point2D) bool {
	if !g.Active() {
		return false
	}
	switch g.kind {
	case KindTranslate:
		d := p.Sub(g.last)
		g.last = p
		if d == (geometry.Point2D{}) {
			return false
		}
		Translate(g.buf, d)
		return true
	case KindRotateScale:
		if !CombinedRotateScale(g.buf, g.last, p) {
			return false
		}
		g.last = p
		return true
	}
	return false
}

// End finishes the drag.
func (g *Gesture) End() {
	*g = Gesture{}
}
