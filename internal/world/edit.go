package world

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// VoxelWrite is one (x, y, z, material) record produced by a voxel-art loader.
type VoxelWrite struct {
	X, Y, Z  int
	Material uint8
}

// locate splits a voxel-space coordinate into the owning volume and its local cell.
func (g *Grid) locate(x, y, z int) (*Volume, int, int, int, bool) {
	if x < 0 || y < 0 || z < 0 {
		return nil, 0, 0, 0, false
	}
	v := g.Volume(x/g.side, y/g.side, z/g.side)
	if v == nil {
		return nil, 0, 0, 0, false
	}
	return v, x % g.side, y % g.side, z % g.side, true
}

// Voxel returns the material at a voxel-space coordinate, 0 outside the grid.
func (g *Grid) Voxel(x, y, z int) uint8 {
	v, lx, ly, lz, ok := g.locate(x, y, z)
	if !ok {
		return MaterialEmpty
	}
	return v.Get(lx, ly, lz)
}

// SetVoxel writes a material at a voxel-space coordinate and marks the owning
// volume dirty. Neighbours are not marked; RebuildSet accounts for them.
func (g *Grid) SetVoxel(x, y, z int, material uint8) {
	v, lx, ly, lz, ok := g.locate(x, y, z)
	if !ok {
		ex, ey, ez := g.Extent()
		panic(fmt.Errorf("%w: voxel (%d,%d,%d) outside grid extent (%d,%d,%d)", ErrOutOfRange, x, y, z, ex, ey, ez))
	}
	v.Set(lx, ly, lz, material)
}

// SetVoxelSphere writes material into every voxel whose centre lies within
// radius of center, clipped to the grid. It returns the number of voxels written;
// a NaN radius or a non-finite center writes nothing.
func (g *Grid) SetVoxelSphere(center mgl32.Vec3, radius float32, material uint8) int {
	if !(radius > 0) {
		return 0
	}
	for _, c := range center {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return 0
		}
	}
	ex, ey, ez := g.Extent()
	// clamp before converting so huge radii cannot overflow int
	lo := func(c float32, n int) int { return int(min(max(math32.Floor(c-radius), 0), float32(n))) }
	hi := func(c float32, n int) int { return int(max(min(math32.Ceil(c+radius), float32(n-1)), -1)) }
	x0, x1 := lo(center[0], ex), hi(center[0], ex)
	y0, y1 := lo(center[1], ey), hi(center[1], ey)
	z0, z1 := lo(center[2], ez), hi(center[2], ez)

	r2 := radius * radius
	written := 0
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				// sample at the voxel centre
				d := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}.Sub(center)
				if d.Dot(d) > r2 {
					continue
				}
				g.SetVoxel(x, y, z, material)
				written++
			}
		}
	}
	return written
}

// Fill sets every voxel of every volume to material.
func (g *Grid) Fill(material uint8) {
	for _, v := range g.volumes {
		v.Fill(material)
	}
}

// Apply replays loader output into the grid. Unlike SetVoxel it reports bad
// coordinates as an error, since the records come from an external file.
// Writes before the failing record stay applied.
func (g *Grid) Apply(writes []VoxelWrite) error {
	for i, w := range writes {
		v, lx, ly, lz, ok := g.locate(w.X, w.Y, w.Z)
		if !ok {
			return fmt.Errorf("voxel write %d: %w: (%d,%d,%d)", i, ErrOutOfRange, w.X, w.Y, w.Z)
		}
		v.Set(lx, ly, lz, w.Material)
	}
	return nil
}

// LoadGrid sizes a fresh grid for the given extent and populates it from loader output.
func LoadGrid(extentX, extentY, extentZ, side int, writes []VoxelWrite) (*Grid, error) {
	g := NewGrid(extentX, extentY, extentZ, side)
	if err := g.Apply(writes); err != nil {
		return nil, err
	}
	return g, nil
}
