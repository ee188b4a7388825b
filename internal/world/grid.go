package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid owns a 3D array of equally sized volumes.
//
// Grid does no locking. Edits and rebuilds are separate phases: apply every
// voxel write of a batch first, then rebuild the affected volumes. Rebuilds
// only read voxel data, so any number of them may run at once.
type Grid struct {
	gx, gy, gz int
	side       int
	volumes    []*Volume
}

// NewGrid creates a grid covering a voxel-space extent, rounding the number of
// volumes per axis up.
func NewGrid(extentX, extentY, extentZ, side int) *Grid {
	if side < 1 || extentX < 1 || extentY < 1 || extentZ < 1 {
		panic(fmt.Errorf("%w: extent (%d,%d,%d) side %d", ErrOutOfRange, extentX, extentY, extentZ, side))
	}
	g := &Grid{
		gx:   ceilDiv(extentX, side),
		gy:   ceilDiv(extentY, side),
		gz:   ceilDiv(extentZ, side),
		side: side,
	}
	g.volumes = make([]*Volume, g.gx*g.gy*g.gz)
	for i := range g.volumes {
		x, y, z := g.Coords(i)
		v := NewVolume(side)
		v.Index = i
		v.Origin = mgl32.Vec3{float32(x * side), float32(y * side), float32(z * side)}
		g.volumes[i] = v
	}
	return g
}

// Dims returns the number of volumes along each axis.
func (g *Grid) Dims() (gx, gy, gz int) {
	return g.gx, g.gy, g.gz
}

// Side returns the side length shared by every volume.
func (g *Grid) Side() int {
	return g.side
}

// Len returns the number of volumes.
func (g *Grid) Len() int {
	return len(g.volumes)
}

// Extent returns the voxel-space size covered by the grid.
func (g *Grid) Extent() (x, y, z int) {
	return g.gx * g.side, g.gy * g.side, g.gz * g.side
}

func (g *Grid) inGrid(x, y, z int) bool {
	return x >= 0 && x < g.gx && y >= 0 && y < g.gy && z >= 0 && z < g.gz
}

// Index flattens grid coordinates into a linear index.
func (g *Grid) Index(x, y, z int) int {
	return (x*g.gy+y)*g.gz + z
}

// Coords recovers grid coordinates from a linear index.
func (g *Grid) Coords(index int) (x, y, z int) {
	z = index % g.gz
	y = (index / g.gz) % g.gy
	x = index / (g.gz * g.gy)
	return x, y, z
}

// Volume returns the volume at grid coordinates, or nil outside the grid.
func (g *Grid) Volume(x, y, z int) *Volume {
	if !g.inGrid(x, y, z) {
		return nil
	}
	return g.volumes[g.Index(x, y, z)]
}

// At returns the volume with the given linear index.
func (g *Grid) At(index int) *Volume {
	return g.volumes[index]
}

// Volumes returns all volumes in index order.
func (g *Grid) Volumes() []*Volume {
	return g.volumes
}

// Neighbors resolves the up to 26 volumes around grid coordinates (x, y, z).
// Offsets that leave the grid are absent.
func (g *Grid) Neighbors(x, y, z int) NeighborSet {
	var ns NeighborSet
	for d := range Direction(NumDirections) {
		dx, dy, dz := d.Offset()
		ns.volumes[d] = g.Volume(x+dx, y+dy, z+dz)
	}
	return ns
}

// NeighborsOf resolves the neighbours of a volume owned by this grid. It
// panics with ErrOutOfRange if v does not belong to g.
func (g *Grid) NeighborsOf(v *Volume) NeighborSet {
	if v.Index < 0 || v.Index >= len(g.volumes) || g.volumes[v.Index] != v {
		panic(fmt.Errorf("%w: volume with index %d is not part of this grid", ErrOutOfRange, v.Index))
	}
	x, y, z := g.Coords(v.Index)
	return g.Neighbors(x, y, z)
}

// Dirty returns the dirty volumes in index order.
func (g *Grid) Dirty() []*Volume {
	var out []*Volume
	for _, v := range g.volumes {
		if v.IsDirty() {
			out = append(out, v)
		}
	}
	return out
}

// RebuildSet returns every dirty volume together with all of its present
// neighbours, since boundary faces and AO of a neighbour may depend on the
// edited cells. The result is deduplicated and in index order.
func (g *Grid) RebuildSet() []*Volume {
	mark := make([]bool, len(g.volumes))
	for i, v := range g.volumes {
		if !v.IsDirty() {
			continue
		}
		mark[i] = true
		x, y, z := g.Coords(i)
		ns := g.Neighbors(x, y, z)
		ns.Each(func(_ Direction, n *Volume) {
			mark[n.Index] = true
		})
	}
	var out []*Volume
	for i, ok := range mark {
		if ok {
			out = append(out, g.volumes[i])
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
