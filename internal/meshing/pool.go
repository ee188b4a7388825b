package meshing

import (
	"context"
	"errors"
	"fmt"

	"voxmesh/internal/world"

	"github.com/alitto/pond/v2"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Volume    *world.Volume
	Neighbors world.NeighborSet
	// Result channel - will be sent the result when done (optional for BuildAll)
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Index int
	Mesh  *MeshBuffer
	Stats Stats
	Error error
}

// WorkerPool rebuilds volumes on a bounded set of goroutines.
// Jobs only read voxel data, so the pool must not run while volumes are edited.
type WorkerPool struct {
	pool   pond.Pool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		pool:   pond.NewPool(max(workers, 1), pond.WithContext(ctx)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SubmitJob queues a job; its result is delivered on job.ResultChan.
// It fails once the pool has been shut down.
func (p *WorkerPool) SubmitJob(job MeshJob) error {
	return p.pool.Go(func() {
		result := runJob(job)
		if job.ResultChan == nil {
			return
		}
		select {
		case job.ResultChan <- result:
		case <-p.ctx.Done():
		}
	})
}

// BuildAll rebuilds a batch of volumes and blocks until every job finished.
// Results are in job order. Failed rebuilds keep their error in the result
// and are also joined into the returned error. Jobs skipped because ctx was
// cancelled have a nil Mesh and no Error.
func (p *WorkerPool) BuildAll(ctx context.Context, jobs []MeshJob) ([]MeshResult, error) {
	results := make([]MeshResult, len(jobs))
	group := p.pool.NewGroup()
	for i, job := range jobs {
		group.Submit(func() {
			// jobs not started before cancellation are left empty
			if ctx.Err() != nil {
				return
			}
			results[i] = runJob(job)
		})
	}
	if err := group.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	return results, errors.Join(errs...)
}

// runJob builds one mesh, turning a contract-violation panic into an error.
func runJob(job MeshJob) (res MeshResult) {
	res.Index = job.Volume.Index
	defer func() {
		if r := recover(); r != nil {
			res.Mesh = nil
			if err, ok := r.(error); ok {
				res.Error = fmt.Errorf("rebuild volume %d: %w", res.Index, err)
			} else {
				res.Error = fmt.Errorf("rebuild volume %d: %v", res.Index, r)
			}
		}
	}()
	res.Mesh, res.Stats = BuildWithStats(job.Volume, job.Neighbors)
	return res
}

// Shutdown stops the pool and waits for running jobs
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.pool.StopAndWait()
}

// QueueLength returns the current number of jobs waiting for a worker
func (p *WorkerPool) QueueLength() int {
	return int(p.pool.WaitingTasks())
}
