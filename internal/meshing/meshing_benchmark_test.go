package meshing

import (
	"context"
	"testing"

	"voxmesh/internal/terrain"
	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func makeTerrain() *world.Grid {
	g := world.NewGrid(96, 64, 96, world.DefaultVolumeSide)
	if err := terrain.NewGenerator(7, 24).Populate(g); err != nil {
		panic(err)
	}
	g.SetVoxelSphere(mgl32.Vec3{48, 22, 48}, 10, world.MaterialEmpty)
	return g
}

func BenchmarkBuild(b *testing.B) {
	g := makeTerrain()
	v := g.Volume(1, 0, 1)
	ns := g.NeighborsOf(v)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(v, ns)
	}
}

func BenchmarkBuild_FullSurface(b *testing.B) {
	v := world.NewVolume(world.DefaultVolumeSide)
	// Fill a full top surface
	for x := range v.Side() {
		for z := range v.Side() {
			v.Set(x, v.Side()-1, z, 1)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(v, world.NeighborSet{})
	}
}

func BenchmarkBuildAll(b *testing.B) {
	g := makeTerrain()
	pool := NewWorkerPool(4)
	defer pool.Shutdown()
	jobs := jobsFor(g)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pool.BuildAll(context.Background(), jobs); err != nil {
			b.Fatal(err)
		}
	}
}
