package meshing

import (
	"context"
	"log"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/profiling"
	"voxmesh/internal/world"

	"github.com/cespare/xxhash/v2"
	"github.com/gammazero/deque"
)

// SchedulerStats counts what Flush has done so far.
type SchedulerStats struct {
	Flushes int
	Rebuilt int
	// Queued volumes whose content and neighbourhood were unchanged
	Skipped int
	Failed  int
}

// Scheduler keeps the meshes of a grid up to date.
//
// Usage follows the edit/rebuild split: apply a batch of voxel writes, call
// Collect, then Flush. Flush must not overlap with edits to the grid.
type Scheduler struct {
	grid *world.Grid
	pool *WorkerPool

	queue  deque.Deque[int]
	queued []bool

	meshes []*MeshBuffer
	keys   []uint64
	stats  SchedulerStats
}

// NewScheduler creates a scheduler for grid that rebuilds on pool.
func NewScheduler(grid *world.Grid, pool *WorkerPool) *Scheduler {
	return &Scheduler{
		grid:   grid,
		pool:   pool,
		queued: make([]bool, grid.Len()),
		meshes: make([]*MeshBuffer, grid.Len()),
		keys:   make([]uint64, grid.Len()),
	}
}

// Enqueue schedules one volume for rebuild. It returns false if the volume
// was already queued.
func (s *Scheduler) Enqueue(index int) bool {
	if s.queued[index] {
		return false
	}
	s.queued[index] = true
	s.queue.PushBack(index)
	return true
}

// Collect queues every dirty volume and its neighbours. It returns the number
// of volumes newly added to the queue.
func (s *Scheduler) Collect() int {
	n := 0
	for _, v := range s.grid.RebuildSet() {
		if s.Enqueue(v.Index) {
			n++
		}
	}
	return n
}

// Pending returns the number of queued volumes.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Mesh returns the latest mesh of a volume, or nil if it was never built.
func (s *Scheduler) Mesh(index int) *MeshBuffer {
	return s.meshes[index]
}

// Stats returns the running counters.
func (s *Scheduler) Stats() SchedulerStats {
	return s.stats
}

// Flush drains the queue and rebuilds the queued volumes in parallel. Volumes
// whose own contents and neighbourhood are unchanged since their last mesh
// are skipped. It returns the number of meshes rebuilt.
//
// If ctx is cancelled, volumes that were not rebuilt are queued again.
func (s *Scheduler) Flush(ctx context.Context) (int, error) {
	defer profiling.Track("meshing.Flush")()
	start := time.Now()
	s.stats.Flushes++

	hashes := make(map[int]uint64)
	hashOf := func(v *world.Volume) uint64 {
		h, ok := hashes[v.Index]
		if !ok {
			h = v.Hash()
			hashes[v.Index] = h
		}
		return h
	}

	var (
		jobs    []MeshJob
		jobKeys []uint64
	)
	for s.queue.Len() > 0 {
		idx := s.queue.PopFront()
		s.queued[idx] = false

		v := s.grid.At(idx)
		ns := s.grid.NeighborsOf(v)
		key := contentKey(v, &ns, hashOf)
		if s.meshes[idx] != nil && s.keys[idx] == key {
			v.SetClean()
			s.stats.Skipped++
			continue
		}
		jobs = append(jobs, MeshJob{Volume: v, Neighbors: ns})
		jobKeys = append(jobKeys, key)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	results, err := s.pool.BuildAll(ctx, jobs)
	rebuilt := 0
	for i, r := range results {
		v := jobs[i].Volume
		switch {
		case r.Error != nil:
			s.stats.Failed++
		case r.Mesh == nil:
			// never ran
			s.Enqueue(v.Index)
		default:
			s.meshes[v.Index] = r.Mesh
			s.keys[v.Index] = jobKeys[i]
			v.SetClean()
			rebuilt++
		}
	}
	s.stats.Rebuilt += rebuilt

	if limit := config.GetSlowRebuildThreshold(); limit > 0 {
		if d := time.Since(start); d > limit {
			log.Printf("Slow rebuild: %v for %d volumes. Top tasks: %s", d, len(jobs), profiling.TopN(3))
		}
	}
	return rebuilt, err
}

// contentKey digests everything a volume's mesh depends on: its own cells and
// the cells of each neighbour slot (or the slot's absence).
func contentKey(v *world.Volume, ns *world.NeighborSet, hashOf func(*world.Volume) uint64) uint64 {
	d := xxhash.New()
	var b [9]byte
	put := func(present byte, h uint64) {
		b[0] = present
		for i := range 8 {
			b[1+i] = byte(h >> (8 * i))
		}
		_, _ = d.Write(b[:])
	}
	put(1, hashOf(v))
	for dir := range world.Direction(world.NumDirections) {
		if n, ok := ns.Get(dir); ok {
			put(1, hashOf(n))
		} else {
			put(0, 0)
		}
	}
	return d.Sum64()
}
