package world

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestSetVoxelRoutesToVolume(t *testing.T) {
	g := NewGrid(8, 8, 8, 4)
	g.SetVoxel(5, 2, 7, 3)
	v := g.Volume(1, 0, 1)
	if got := v.Get(1, 2, 3); got != 3 {
		t.Fatalf("local cell: got %d, want 3", got)
	}
	if got := g.Voxel(5, 2, 7); got != 3 {
		t.Fatalf("Voxel: got %d, want 3", got)
	}
	if got := g.Voxel(-1, 0, 0); got != 0 {
		t.Fatalf("Voxel outside: got %d, want 0", got)
	}
	expectPanic(t, ErrOutOfRange, func() { g.SetVoxel(8, 0, 0, 1) })
	expectPanic(t, ErrOutOfRange, func() { g.SetVoxel(0, -1, 0, 1) })
}

func TestSetVoxelSphere(t *testing.T) {
	g := NewGrid(16, 16, 16, 8)
	for _, v := range g.Volumes() {
		v.SetClean()
	}
	n := g.SetVoxelSphere(mgl32.Vec3{8, 8, 8}, 3, 2)
	if n == 0 {
		t.Fatal("sphere wrote nothing")
	}
	solid := 0
	for _, v := range g.Volumes() {
		solid += v.CountSolid()
		if !v.IsDirty() {
			t.Errorf("volume %d untouched by a sphere centred on the shared corner", v.Index)
		}
	}
	if solid != n {
		t.Fatalf("solid cells %d, written %d", solid, n)
	}
	if g.Voxel(8, 8, 8) != 2 || g.Voxel(7, 7, 7) != 2 {
		t.Fatal("sphere centre not filled")
	}
	if g.Voxel(8, 8, 12) != 0 {
		t.Fatal("voxel beyond the radius was filled")
	}
}

func TestSetVoxelSphereClipsToGrid(t *testing.T) {
	g := NewGrid(4, 4, 4, 4)
	n := g.SetVoxelSphere(mgl32.Vec3{0, 0, 0}, 2, 1)
	// voxel centres within radius 2 of the origin in the positive octant
	if n != g.At(0).CountSolid() || n == 0 {
		t.Fatalf("written %d, solid %d", n, g.At(0).CountSolid())
	}
	if g.SetVoxelSphere(mgl32.Vec3{2, 2, 2}, 0, 1) != 0 {
		t.Fatal("zero radius should write nothing")
	}
}

func TestSetVoxelSphereExtremeInputs(t *testing.T) {
	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   int
	}{
		{"huge radius", mgl32.Vec3{4, 4, 4}, 1e20, 512},
		{"infinite radius", mgl32.Vec3{4, 4, 4}, math32.Inf(1), 512},
		{"far centre", mgl32.Vec3{1e30, -1e30, 4}, 1, 0},
		{"nan radius", mgl32.Vec3{4, 4, 4}, math32.NaN(), 0},
		{"nan centre", mgl32.Vec3{math32.NaN(), 4, 4}, 3, 0},
		{"infinite centre", mgl32.Vec3{4, math32.Inf(-1), 4}, math32.Inf(1), 0},
		{"negative radius", mgl32.Vec3{4, 4, 4}, -2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(8, 8, 8, 4)
			if got := g.SetVoxelSphere(tt.center, tt.radius, 1); got != tt.want {
				t.Fatalf("written %d, want %d", got, tt.want)
			}
			solid := 0
			for _, v := range g.Volumes() {
				solid += v.CountSolid()
			}
			if solid != tt.want {
				t.Fatalf("solid %d, want %d", solid, tt.want)
			}
		})
	}
}

func TestGridFill(t *testing.T) {
	g := NewGrid(6, 4, 4, 4)
	g.Fill(1)
	for _, v := range g.Volumes() {
		if v.CountSolid() != 64 {
			t.Fatalf("volume %d: %d solid cells, want 64", v.Index, v.CountSolid())
		}
	}
}

func TestLoadGrid(t *testing.T) {
	writes := []VoxelWrite{
		{X: 0, Y: 0, Z: 0, Material: 1},
		{X: 9, Y: 1, Z: 2, Material: 7},
	}
	g, err := LoadGrid(10, 4, 4, 4, writes)
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	if gx, _, _ := g.Dims(); gx != 3 {
		t.Fatalf("gx: got %d, want 3", gx)
	}
	if g.Voxel(9, 1, 2) != 7 || g.Voxel(0, 0, 0) != 1 {
		t.Fatal("loader writes not applied")
	}

	_, err = LoadGrid(4, 4, 4, 4, []VoxelWrite{{X: 4, Y: 0, Z: 0, Material: 1}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("out-of-grid write: got %v, want ErrOutOfRange", err)
	}
}
