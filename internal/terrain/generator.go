package terrain

import (
	"math"

	"voxmesh/internal/world"
)

// Surface materials written by the generator.
const (
	MaterialStone uint8 = 1
	MaterialDirt  uint8 = 2
	MaterialGrass uint8 = 3
)

// Generator produces a noise heightfield as loader-style voxel writes.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	dirtDepth   int
}

// NewGenerator creates a generator whose surface sits around baseHeight.
func NewGenerator(seed int64, baseHeight int) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 48.0,
		baseHeight:  baseHeight,
		amp:         float64(baseHeight) / 2,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		dirtDepth:   3,
	}
}

// HeightAt computes the number of filled voxels in column (x, z).
func (g *Generator) HeightAt(x, z int) int {
	n := octaveNoise(float64(x)*g.scale, float64(z)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	// n is in [0,1]; centre it on baseHeight
	h := float64(g.baseHeight) + (n-0.5)*2*g.amp
	return max(int(math.Floor(h)), 1)
}

// Writes lists every non-empty voxel of the heightfield inside the extent,
// column by column: stone, then dirt, then a grass top.
func (g *Generator) Writes(extentX, extentY, extentZ int) []world.VoxelWrite {
	var out []world.VoxelWrite
	for x := range extentX {
		for z := range extentZ {
			h := min(g.HeightAt(x, z), extentY)
			for y := range h {
				m := MaterialStone
				switch {
				case y == h-1:
					m = MaterialGrass
				case y >= h-1-g.dirtDepth:
					m = MaterialDirt
				}
				out = append(out, world.VoxelWrite{X: x, Y: y, Z: z, Material: m})
			}
		}
	}
	return out
}

// Populate writes the heightfield into every column of grid.
func (g *Generator) Populate(grid *world.Grid) error {
	ex, ey, ez := grid.Extent()
	return grid.Apply(g.Writes(ex, ey, ez))
}
