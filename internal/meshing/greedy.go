package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// aoKey holds the occlusion count at the 4 corners of a unit face, in the
// order (u0,v0), (u1,v0), (u1,v1), (u0,v1).
type aoKey [4]uint8

// Stats describes one rebuild.
type Stats struct {
	// Merged rectangles per face direction
	Quads [NumFaces]int
	// Unit faces that passed culling, before merging
	VisibleFaces int
}

// TotalQuads returns the number of rectangles across all faces.
func (s Stats) TotalQuads() int {
	n := 0
	for _, q := range s.Quads {
		n += q
	}
	return n
}

// Build greedy-meshes a volume. Faces on the volume boundary are culled
// against the face neighbours in ns and AO is sampled across all 26
// neighbours; an absent neighbour is open air.
//
// Build panics with world.ErrDimensionMismatch if a neighbour's side
// length differs from v's.
func Build(v *world.Volume, ns world.NeighborSet) *MeshBuffer {
	mesh, _ := BuildWithStats(v, ns)
	return mesh
}

// BuildWithStats is Build that also reports per-face merge statistics.
func BuildWithStats(v *world.Volume, ns world.NeighborSet) (*MeshBuffer, Stats) {
	defer profiling.Track("meshing.Build")()

	side := v.Side()
	m := &mesher{
		vol:  v,
		s:    newSampler(v, &ns),
		side: side,
		out:  newMeshBuffer(),
		mask: make([]uint16, side*side),
		ao:   make([]aoKey, side*side),
	}
	for f := range Face(NumFaces) {
		m.buildFace(f)
	}
	return m.out, m.stats
}

// mesher carries the scratch state of one rebuild.
type mesher struct {
	vol   *world.Volume
	s     sampler
	side  int
	out   *MeshBuffer
	stats Stats

	// per-layer scratch: packed material|light of each visible face (0 = none)
	// and its corner AO
	mask []uint16
	ao   []aoKey
}

// buildFace performs 2D greedy meshing for one face direction, layer by layer
// along the face axis.
func (m *mesher) buildFace(f Face) {
	perm := axisPerm[f.Axis()]
	a, u, v := perm[0], perm[1], perm[2]
	sign := f.Sign()
	side := m.side

	var c [3]int
	for w := range side {
		clear(m.mask)
		c[a] = w
		visible := 0
		for i := range side {
			c[u] = i
			for j := range side {
				c[v] = j
				p := m.vol.Packed(c[0], c[1], c[2])
				if p == 0 {
					continue
				}
				// neighbour along the normal
				n := c
				n[a] += sign
				if m.s.solid(n) {
					continue
				}
				k := i*side + j
				m.mask[k] = p
				m.ao[k] = m.cellAO(c, f, a, u, v)
				visible++
			}
		}
		if visible == 0 {
			continue
		}
		m.stats.VisibleFaces += visible
		m.mergeLayer(f, w, a, u, v)
	}
}

// cellAO samples the 4 corners of the face of cell c.
func (m *mesher) cellAO(c [3]int, f Face, a, u, v int) aoKey {
	p := c
	if f.Sign() > 0 {
		p[a]++
	}
	var key aoKey
	for k, d := range quadCorners {
		q := p
		q[u] += d[0]
		q[v] += d[1]
		key[k] = m.s.corner(q, f)
	}
	return key
}

// quadCorners lists (du, dv) of the 4 corners, counter-clockwise in (u, v).
var quadCorners = [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// mergeLayer greedily merges the visible faces of one layer into rectangles.
// The run along v is grown first; the width along u second. Two cells merge
// only if both their packed value and their corner AO are identical.
func (m *mesher) mergeLayer(f Face, w, a, u, v int) {
	side := m.side
	mask, ao := m.mask, m.ao

	for i := range side {
		for j := range side {
			base := mask[i*side+j]
			if base == 0 {
				continue
			}
			key := ao[i*side+j]

			// height along v
			h := 1
			aoStop := false
			for j1 := j + 1; j1 < side; j1++ {
				k := i*side + j1
				if mask[k] != base {
					break
				}
				if ao[k] != key {
					aoStop = true
					break
				}
				h++
			}

			// width along u, only when the v run ended cleanly
			wd := 1
			if !aoStop {
			outer:
				for i1 := i + 1; i1 < side; i1++ {
					for j1 := j; j1 < j+h; j1++ {
						k := i1*side + j1
						if mask[k] != base || ao[k] != key {
							break outer
						}
					}
					wd++
				}
			}

			m.emit(f, w, a, u, v, i, j, wd, h, uint8(base&0xff), key)

			// zero-out mask region
			for ii := i; ii < i+wd; ii++ {
				for jj := j; jj < j+h; jj++ {
					mask[ii*side+jj] = 0
				}
			}
		}
	}
}

// emit maps a (u, v) rectangle of layer w back to world space and appends it.
func (m *mesher) emit(f Face, w, a, u, v, i, j, wd, h int, material uint8, key aoKey) {
	plane := w
	if f.Sign() > 0 {
		plane = w + 1
	}

	var q [4]mgl32.Vec3
	for k, d := range quadCorners {
		var c [3]int
		c[a] = plane
		c[u] = i + d[0]*wd
		c[v] = j + d[1]*h
		q[k] = m.vol.Origin.Add(mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])})
	}

	if f.Sign() > 0 {
		m.out.emitQuad(f, material, q, key)
	} else {
		// mirrored so the quad stays counter-clockwise seen from -axis
		m.out.emitQuad(f, material,
			[4]mgl32.Vec3{q[0], q[3], q[2], q[1]},
			[4]uint8{key[0], key[3], key[2], key[1]},
		)
	}
	m.stats.Quads[f]++
}
