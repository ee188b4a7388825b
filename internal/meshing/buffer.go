package meshing

import (
	"encoding/binary"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the number of float32 per vertex in Floats (pos.xyz + normal + material + ao)
const FloatsPerVertex = 6

// Vertex is one corner of an emitted triangle.
type Vertex struct {
	Position mgl32.Vec3
	Normal   Face
	Material uint8
	AO       uint8
}

// MeshBuffer holds the triangles produced by one rebuild. It owns no GPU
// resources; a backend uploads Vertices or Floats in whatever layout it needs.
type MeshBuffer struct {
	vertices []Vertex
}

func newMeshBuffer() *MeshBuffer {
	return &MeshBuffer{vertices: make([]Vertex, 0, 1024)}
}

// emitQuad appends two triangles covering corners q, which must be in
// counter-clockwise order seen from outside. The quad is split along the
// diagonal whose endpoints carry less combined occlusion.
func (m *MeshBuffer) emitQuad(normal Face, material uint8, q [4]mgl32.Vec3, ao [4]uint8) {
	vert := func(i int) Vertex {
		return Vertex{Position: q[i], Normal: normal, Material: material, AO: ao[i]}
	}
	if int(ao[0])+int(ao[2]) > int(ao[1])+int(ao[3]) {
		m.vertices = append(m.vertices,
			vert(1), vert(2), vert(3),
			vert(3), vert(0), vert(1),
		)
		return
	}
	m.vertices = append(m.vertices,
		vert(0), vert(1), vert(2),
		vert(2), vert(3), vert(0),
	)
}

// VertexCount returns the number of vertices (3 per triangle).
func (m *MeshBuffer) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.vertices) / 3
}

// QuadCount returns the number of merged rectangles.
func (m *MeshBuffer) QuadCount() int {
	return len(m.vertices) / 6
}

// Empty reports whether the buffer holds no geometry.
func (m *MeshBuffer) Empty() bool {
	return len(m.vertices) == 0
}

// Vertices returns the vertex stream. The slice must not be modified.
func (m *MeshBuffer) Vertices() []Vertex {
	return m.vertices
}

// All iterates over (index, vertex) pairs.
func (m *MeshBuffer) All() iter.Seq2[int, Vertex] {
	return func(yield func(int, Vertex) bool) {
		for i, v := range m.vertices {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Triangles iterates over the vertex stream three vertices at a time.
func (m *MeshBuffer) Triangles() iter.Seq[[3]Vertex] {
	return func(yield func([3]Vertex) bool) {
		for i := 0; i+2 < len(m.vertices); i += 3 {
			if !yield([3]Vertex{m.vertices[i], m.vertices[i+1], m.vertices[i+2]}) {
				return
			}
		}
	}
}

// Floats flattens the buffer into FloatsPerVertex floats per vertex:
// x, y, z, normal id, material, ao.
func (m *MeshBuffer) Floats() []float32 {
	out := make([]float32, 0, len(m.vertices)*FloatsPerVertex)
	for _, v := range m.vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			float32(v.Normal), float32(v.Material), float32(v.AO),
		)
	}
	return out
}

// Checksum returns a digest of the vertex stream. Two buffers with the same
// checksum hold the same vertices in the same order.
func (m *MeshBuffer) Checksum() uint64 {
	d := xxhash.New()
	var rec [15]byte
	for _, v := range m.vertices {
		binary.LittleEndian.PutUint32(rec[0:], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(v.Position[2]))
		rec[12] = byte(v.Normal)
		rec[13] = v.Material
		rec[14] = v.AO
		_, _ = d.Write(rec[:])
	}
	return d.Sum64()
}

// Bounds returns the axis-aligned box enclosing every vertex. Both corners are
// zero for an empty buffer.
func (m *MeshBuffer) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.vertices) == 0 {
		return lo, hi
	}
	lo = m.vertices[0].Position
	hi = lo
	for _, v := range m.vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}
