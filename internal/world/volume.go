package world

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaterialEmpty marks a cell that produces no geometry
	MaterialEmpty uint8 = 0

	// DefaultVolumeSide is the side length used when a caller has no preference
	DefaultVolumeSide = 32
)

var (
	// ErrOutOfRange is raised when a voxel coordinate falls outside a volume or grid.
	ErrOutOfRange = errors.New("voxel coordinate out of range")
	// ErrDimensionMismatch is raised when volumes of different side lengths are combined.
	ErrDimensionMismatch = errors.New("volume side length mismatch")
)

// Volume is a cube of voxel cells meshed as one unit.
type Volume struct {
	// World-space placement of cell (0,0,0)
	Origin mgl32.Vec3
	// Linear index inside the owning grid, -1 when standalone
	Index int

	side     int
	material []uint8
	light    []uint8
	dirty    bool
}

// NewVolume allocates an all-empty volume with the given side length.
func NewVolume(side int) *Volume {
	if side < 1 {
		panic(fmt.Errorf("%w: side %d", ErrOutOfRange, side))
	}
	n := side * side * side
	return &Volume{
		Index:    -1,
		side:     side,
		material: make([]uint8, n),
		light:    make([]uint8, n),
		dirty:    true,
	}
}

// Side returns the number of cells along each axis.
func (v *Volume) Side() int {
	return v.side
}

// InBounds reports whether (x, y, z) addresses a cell of this volume.
func (v *Volume) InBounds(x, y, z int) bool {
	return x >= 0 && x < v.side && y >= 0 && y < v.side && z >= 0 && z < v.side
}

// index converts local coordinates to a flat x-major index
func (v *Volume) index(x, y, z int) int {
	if !v.InBounds(x, y, z) {
		panic(fmt.Errorf("%w: (%d,%d,%d) in volume of side %d", ErrOutOfRange, x, y, z, v.side))
	}
	return (x*v.side+y)*v.side + z
}

// Get returns the material id at the given local coordinates.
func (v *Volume) Get(x, y, z int) uint8 {
	return v.material[v.index(x, y, z)]
}

// Set writes a material id and marks the volume dirty.
func (v *Volume) Set(x, y, z int, material uint8) {
	v.material[v.index(x, y, z)] = material
	v.dirty = true
}

// Solid reports whether the cell holds a non-empty material.
func (v *Volume) Solid(x, y, z int) bool {
	return v.Get(x, y, z) != MaterialEmpty
}

// Fill sets every cell to material.
func (v *Volume) Fill(material uint8) {
	for i := range v.material {
		v.material[i] = material
	}
	v.dirty = true
}

// Light returns the auxiliary light value of a cell.
func (v *Volume) Light(x, y, z int) uint8 {
	return v.light[v.index(x, y, z)]
}

// SetLight writes the light value of a cell. Light takes part in quad merging,
// so the volume is marked dirty.
func (v *Volume) SetLight(x, y, z int, light uint8) {
	v.light[v.index(x, y, z)] = light
	v.dirty = true
}

// Packed returns the combined voxel value used by the mesher:
// light in the high byte, material in the low byte. Empty cells are always 0.
func (v *Volume) Packed(x, y, z int) uint16 {
	i := v.index(x, y, z)
	m := v.material[i]
	if m == MaterialEmpty {
		return 0
	}
	return uint16(v.light[i])<<8 | uint16(m)
}

// CountSolid returns the number of non-empty cells.
func (v *Volume) CountSolid() int {
	n := 0
	for _, m := range v.material {
		if m != MaterialEmpty {
			n++
		}
	}
	return n
}

// Hash returns a digest of the cell contents.
func (v *Volume) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.Write(v.material)
	_, _ = d.Write(v.light)
	return d.Sum64()
}

// IsDirty returns whether the volume has been modified since its last rebuild
func (v *Volume) IsDirty() bool {
	return v.dirty
}

// SetClean marks the volume as rebuilt
func (v *Volume) SetClean() {
	v.dirty = false
}
