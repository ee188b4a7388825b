package terrain

import (
	"testing"

	"voxmesh/internal/world"
)

func TestNoiseRange(t *testing.T) {
	for i := range 2000 {
		x := float64(i)*0.37 - 300
		z := float64(i)*0.91 + 17
		if n := octaveNoise(x, z, 7, 4, 0.5, 2); n < 0 || n > 1 {
			t.Fatalf("octaveNoise(%v,%v) = %v outside [0,1]", x, z, n)
		}
	}
}

func TestHeightDeterministic(t *testing.T) {
	a, b := NewGenerator(42, 16), NewGenerator(42, 16)
	other := NewGenerator(43, 16)
	differs := false
	for x := range 64 {
		for z := range 64 {
			if a.HeightAt(x, z) != b.HeightAt(x, z) {
				t.Fatalf("same seed, different height at (%d,%d)", x, z)
			}
			if a.HeightAt(x, z) != other.HeightAt(x, z) {
				differs = true
			}
			if h := a.HeightAt(x, z); h < 1 || h > 32 {
				t.Fatalf("height %d at (%d,%d) outside [1,32]", h, x, z)
			}
		}
	}
	if !differs {
		t.Fatal("seed has no effect on heights")
	}
}

func TestPopulateLayers(t *testing.T) {
	grid := world.NewGrid(16, 40, 16, 8)
	gen := NewGenerator(3, 16)
	if err := gen.Populate(grid); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	for x := range 16 {
		for z := range 16 {
			h := gen.HeightAt(x, z)
			if got := grid.Voxel(x, h-1, z); got != MaterialGrass {
				t.Fatalf("top of (%d,%d): got %d, want grass", x, z, got)
			}
			if got := grid.Voxel(x, h, z); got != world.MaterialEmpty {
				t.Fatalf("above (%d,%d): got %d, want empty", x, z, got)
			}
			if got := grid.Voxel(x, 0, z); h > 5 && got != MaterialStone {
				t.Fatalf("bottom of (%d,%d): got %d, want stone", x, z, got)
			}
		}
	}
}

func TestWritesClipToExtent(t *testing.T) {
	gen := NewGenerator(1, 64)
	for _, w := range gen.Writes(4, 10, 4) {
		if w.Y >= 10 {
			t.Fatalf("write above extent: %+v", w)
		}
	}
}
