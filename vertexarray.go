package sprig

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PrimitiveType describes how the vertices of a VertexArray are grouped.
type PrimitiveType uint8

const (
	Points        PrimitiveType = iota // unconnected points, one pixel each
	Lines                              // unconnected lines, one pixel wide
	LineStrip                          // connected lines; each vertex continues the previous line
	Triangles                          // unconnected triangles
	TriangleStrip                      // each triangle shares its last two vertices with the next
	TriangleFan                        // triangles around vertex 0
	Quads                              // unconnected quads, split into two triangles each
)

var primitiveTypeNames = [...]string{"points", "lines", "linestrip", "triangles", "trianglestrip", "trianglefan", "quads"}

func (p PrimitiveType) String() string {
	if int(p) < len(primitiveTypeNames) {
		return primitiveTypeNames[p]
	}
	return "unknown"
}

// ParsePrimitiveType maps a lower-case name back to a PrimitiveType.
func ParsePrimitiveType(s string) (PrimitiveType, bool) {
	for i, name := range primitiveTypeNames {
		if name == s {
			return PrimitiveType(i), true
		}
	}
	return 0, false
}

// maxVertices is the largest vertex count addressable by uint16 indices.
const maxVertices = 1 << 16

// Vertex is a point with a color and texture coordinates. TexCoords are in
// pixels of the array's Texture, not normalized.
type Vertex struct {
	Position  Vec2
	Color     Color
	TexCoords Vec2
}

// VertexArray is a low-level primitive: a list of vertices grouped by Type.
// The transform is not stored in the array; it comes from the owning node.
type VertexArray struct {
	Type     PrimitiveType
	Vertices []Vertex
	Texture  *ebiten.Image // nil draws untextured
	Blend    BlendMode
}

// NewVertexArray creates an array of n white vertices.
func NewVertexArray(typ PrimitiveType, n int) *VertexArray {
	verts := make([]Vertex, n)
	for i := range verts {
		verts[i].Color = ColorWhite
	}
	return &VertexArray{Type: typ, Vertices: verts}
}

// Append adds vertices to the array.
func (va *VertexArray) Append(v ...Vertex) {
	va.Vertices = append(va.Vertices, v...)
}

// LocalBounds scans vertex positions and returns their bounding box.
func (va *VertexArray) LocalBounds() Rect {
	if len(va.Vertices) == 0 {
		return Rect{}
	}
	pts := make([]Vec2, len(va.Vertices))
	for i := range va.Vertices {
		pts[i] = va.Vertices[i].Position
	}
	return boundsOf(pts)
}

// Draw forwards the array to target.
func (va *VertexArray) Draw(target RenderTarget, t Transform) {
	target.Draw(va, t)
}

// Triangles returns an index list for the fill primitive types, three
// indices per triangle. Points, Lines and LineStrip return nil, as do arrays
// too large for uint16 indices. Trailing vertices that don't form a complete
// primitive are ignored.
func (va *VertexArray) Triangles() []uint16 {
	n := len(va.Vertices)
	if n > maxVertices {
		return nil
	}
	var idx []uint16
	switch va.Type {
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			idx = append(idx, uint16(i), uint16(i+1), uint16(i+2))
		}
	case TriangleStrip:
		for i := 2; i < n; i++ {
			idx = append(idx, uint16(i-2), uint16(i-1), uint16(i))
		}
	case TriangleFan:
		for i := 2; i < n; i++ {
			idx = append(idx, 0, uint16(i-1), uint16(i))
		}
	case Quads:
		for i := 0; i+3 < n; i += 4 {
			idx = append(idx,
				uint16(i), uint16(i+1), uint16(i+2),
				uint16(i), uint16(i+2), uint16(i+3))
		}
	}
	return idx
}

// Segments returns vertex index pairs for Lines and LineStrip, nil otherwise.
func (va *VertexArray) Segments() [][2]int {
	n := len(va.Vertices)
	var segs [][2]int
	switch va.Type {
	case Lines:
		for i := 0; i+1 < n; i += 2 {
			segs = append(segs, [2]int{i, i + 1})
		}
	case LineStrip:
		for i := 1; i < n; i++ {
			segs = append(segs, [2]int{i - 1, i})
		}
	}
	return segs
}
