package geometry

// Buffer is a mutable vertex array shared between renderables built from the
// same polygon. Index topology lives with the renderables; the buffer only
// holds positions.
type Buffer struct {
	positions []Vertex
	version   uint64
}

// NewBuffer copies vs into a new buffer.
func NewBuffer(vs []Vertex) *Buffer {
	b := &Buffer{positions: make([]Vertex, len(vs))}
	copy(b.positions, vs)
	return b
}

// Len returns the vertex count.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.positions)
}

// At returns vertex i.
func (b *Buffer) At(i int) Vertex {
	return b.positions[i]
}

// Positions returns a copy of every vertex.
func (b *Buffer) Positions() []Vertex {
	out := make([]Vertex, len(b.positions))
	copy(out, b.positions)
	return out
}

// Set overwrites the positions in place. vs must have the same length as the
// buffer; the vertex count of a buffer never changes.
func (b *Buffer) Set(vs []Vertex) {
	if len(vs) != len(b.positions) {
		panic("geometry: Buffer.Set length mismatch")
	}
	copy(b.positions, vs)
	b.Touch()
}

// Map replaces every vertex with fn(vertex) and marks the buffer dirty.
func (b *Buffer) Map(fn func(Vertex) Vertex) {
	for i, v := range b.positions {
		b.positions[i] = fn(v)
	}
	b.Touch()
}

// Touch marks the positions as changed.
func (b *Buffer) Touch() {
	b.version++
}

// Version increases every time the positions are modified.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Centroid returns the mean of the buffer's vertices.
func (b *Buffer) Centroid() Vertex {
	return Centroid(b.positions)
}
