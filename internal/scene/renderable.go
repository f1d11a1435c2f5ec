// Package scene holds the in-process render model: renderables, materials,
// the scene container, the camera and ray picking.
package scene

import (
	"image"
	"image/color"

	"github.com/google/uuid"

	"map-annotator/pkg/geometry"
)

// Kind identifies how a renderable's indices are interpreted.
type Kind int

const (
	KindMesh     Kind = iota // triangle list
	KindLine                 // open line strip
	KindLineLoop             // closed line strip
	KindPoints               // point markers
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLine:
		return "line"
	case KindLineLoop:
		return "line-loop"
	case KindPoints:
		return "points"
	}
	return "unknown"
}

// Material describes how a renderable is painted.
type Material struct {
	Color       color.RGBA
	Opacity     float64
	Transparent bool
	DepthTest   bool
	// Texture, when set, replaces Color and makes the material non-solid.
	Texture image.Image
}

// NewMaterial returns an opaque, depth-tested solid material.
func NewMaterial(c color.RGBA) *Material {
	return &Material{Color: c, Opacity: 1, DepthTest: true}
}

// Solid reports whether the material exposes a settable solid color.
func (m *Material) Solid() bool {
	return m != nil && m.Texture == nil
}

// SetColor overwrites the solid color. It reports false for textured materials.
func (m *Material) SetColor(c color.RGBA) bool {
	if !m.Solid() {
		return false
	}
	m.Color = c
	return true
}

// Tags carry the metadata used to group renderables by layer.
type Tags struct {
	Layer       string
	BasePlane   bool
	LayerObject bool
}

// Renderable is one drawable entity. Several renderables may share a Buffer.
type Renderable struct {
	ID          uuid.UUID
	Name        string
	Kind        Kind
	Buffer      *geometry.Buffer
	Indices     []int
	Materials   []*Material
	Visible     bool
	RenderOrder int
	Tags        Tags
}

// NewRenderable creates a visible renderable with a fresh ID.
func NewRenderable(kind Kind, buf *geometry.Buffer, indices []int, mats ...*Material) *Renderable {
	return &Renderable{
		ID:        uuid.New(),
		Kind:      kind,
		Buffer:    buf,
		Indices:   indices,
		Materials: mats,
		Visible:   true,
	}
}

// Material returns the first material, or nil.
func (r *Renderable) Material() *Material {
	if len(r.Materials) == 0 {
		return nil
	}
	return r.Materials[0]
}

// Segments returns the index pairs of every edge for line kinds. Line loops
// include the closing edge.
func (r *Renderable) Segments() [][2]int {
	n := len(r.Indices)
	var segs [][2]int
	switch r.Kind {
	case KindLine:
		for i := 0; i+1 < n; i++ {
			segs = append(segs, [2]int{r.Indices[i], r.Indices[i+1]})
		}
	case KindLineLoop:
		for i := 0; i < n && n > 1; i++ {
			segs = append(segs, [2]int{r.Indices[i], r.Indices[(i+1)%n]})
		}
	}
	return segs
}

// Triangles returns the index triples of a mesh.
func (r *Renderable) Triangles() [][3]int {
	if r.Kind != KindMesh {
		return nil
	}
	tris := make([][3]int, 0, len(r.Indices)/3)
	for i := 0; i+2 < len(r.Indices); i += 3 {
		tris = append(tris, [3]int{r.Indices[i], r.Indices[i+1], r.Indices[i+2]})
	}
	return tris
}
