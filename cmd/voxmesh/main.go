// voxmesh builds a procedural voxel grid, meshes every volume and reports
// mesh statistics. It exercises the mesher the way an editor would: an
// initial full build followed by an edit batch and an incremental rebuild.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/terrain"
	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func main() {
	defer closer.Close()

	size := flag.Int("size", 128, "horizontal extent in voxels (x and z)")
	height := flag.Int("height", 64, "vertical extent in voxels")
	side := flag.Int("side", config.GetVolumeSide(), "volume side length")
	workers := flag.Int("workers", config.GetMeshWorkers(), "parallel rebuild workers")
	caves := flag.Int("caves", 6, "number of spheres carved out of the terrain")
	seed := flag.Int64("seed", 1, "terrain seed")
	slow := flag.Duration("slow", config.GetSlowRebuildThreshold(), "log rebuilds slower than this (0 disables)")
	flag.Parse()

	config.SetVolumeSide(*side)
	config.SetMeshWorkers(*workers)
	config.SetSlowRebuildThreshold(*slow)

	grid := world.NewGrid(*size, *height, *size, config.GetVolumeSide())
	rng := rand.New(rand.NewSource(*seed))
	generate(grid, *seed, rng, *caves)
	gx, gy, gz := grid.Dims()
	log.Printf("Grid %dx%dx%d volumes of side %d", gx, gy, gz, grid.Side())

	pool := meshing.NewWorkerPool(config.GetMeshWorkers())
	closer.Bind(pool.Shutdown)
	sched := meshing.NewScheduler(grid, pool)

	ctx := context.Background()
	rebuild(ctx, grid, sched, "initial")

	// Edit batch: one new cave and one new pillar, then rebuild the affected volumes
	ex, ey, ez := grid.Extent()
	grid.SetVoxelSphere(randomPoint(rng, ex, ey, ez), float32(grid.Side())/3, world.MaterialEmpty)
	px, pz := rng.Intn(ex), rng.Intn(ez)
	for y := range ey {
		grid.SetVoxel(px, y, pz, terrain.MaterialStone)
	}
	rebuild(ctx, grid, sched, "edit")

	log.Printf("Top tasks: %s", profiling.TopN(5))
}

func rebuild(ctx context.Context, grid *world.Grid, sched *meshing.Scheduler, label string) {
	start := time.Now()
	queued := sched.Collect()
	rebuilt, err := sched.Flush(ctx)
	if err != nil {
		closer.Fatalln(err)
	}

	triangles, nonEmpty := 0, 0
	for i := range grid.Len() {
		if m := sched.Mesh(i); m != nil && !m.Empty() {
			triangles += m.TriangleCount()
			nonEmpty++
		}
	}
	st := sched.Stats()
	log.Printf("%s: queued %d, rebuilt %d, skipped %d in %v; %d triangles over %d volumes",
		label, queued, rebuilt, st.Skipped, time.Since(start), triangles, nonEmpty)
}

// generate loads a noise heightfield through the batch write path and
// carves caves.
func generate(grid *world.Grid, seed int64, rng *rand.Rand, caves int) {
	defer profiling.Track("main.generate")()
	_, ey, _ := grid.Extent()
	gen := terrain.NewGenerator(seed, ey/3)
	if err := gen.Populate(grid); err != nil {
		closer.Fatalln(err)
	}
	ex, _, ez := grid.Extent()
	for range caves {
		r := float32(2 + rng.Intn(max(grid.Side()/2, 1)))
		grid.SetVoxelSphere(randomPoint(rng, ex, ey/2, ez), r, world.MaterialEmpty)
	}
}

func randomPoint(rng *rand.Rand, ex, ey, ez int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(rng.Intn(max(ex, 1))),
		float32(rng.Intn(max(ey, 1))),
		float32(rng.Intn(max(ez, 1))),
	}
}
