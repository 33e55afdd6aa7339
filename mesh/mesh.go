// Package mesh loads triangle geometry from OBJ and glTF files into a flat,
// non-indexed vertex layout ready to be copied into a single vertex buffer.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the number of float32 values one Vertex occupies in the
// interleaved buffer: position (3), normal (3), texture coordinate (2).
const FloatsPerVertex = 8

// Byte offsets of each attribute inside one interleaved vertex.
const (
	PositionOffset = 0
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4
	Stride         = FloatsPerVertex * 4
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Material is the minimal material reference a mesh carries: the file name of
// its colour texture. Texture is empty when the source file names none.
type Material struct {
	Name    string
	Texture string
}

// Data is the CPU side of a mesh. Vertices always holds whole triangles, three
// consecutive vertices per face.
type Data struct {
	Name     string
	Vertices []Vertex
	Material Material
}

func (d *Data) VertexCount() int {
	if d == nil {
		return 0
	}
	return len(d.Vertices)
}

func (d *Data) TriangleCount() int {
	return d.VertexCount() / 3
}

// Buffer interleaves the vertices as position, normal, texcoord.
func (d *Data) Buffer() []float32 {
	buf := make([]float32, 0, d.VertexCount()*FloatsPerVertex)
	if d == nil {
		return buf
	}
	for _, v := range d.Vertices {
		buf = append(buf,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return buf
}

// appendTriangle expands one face. Vertices whose source gave no normal get
// the flat face normal.
func (d *Data) appendTriangle(tri [3]Vertex, hasNormal [3]bool) {
	var flat mgl32.Vec3
	if !hasNormal[0] || !hasNormal[1] || !hasNormal[2] {
		flat = faceNormal(tri[0].Position, tri[1].Position, tri[2].Position)
	}
	for i := range tri {
		if !hasNormal[i] {
			tri[i].Normal = flat
		}
	}
	d.Vertices = append(d.Vertices, tri[0], tri[1], tri[2])
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}
