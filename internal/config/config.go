package config

import (
	"runtime"
	"sync"
	"time"
)

// MeshSettings holds rebuild configuration
type MeshSettings struct {
	mu                   sync.RWMutex
	workers              int
	slowRebuildThreshold time.Duration
}

var globalMeshSettings = &MeshSettings{
	workers:              min(max(runtime.NumCPU(), 1), maxWorkers),
	slowRebuildThreshold: 8 * time.Millisecond,
}

const maxWorkers = 64

// GetMeshWorkers returns the number of volumes rebuilt in parallel
func GetMeshWorkers() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.workers
}

// SetMeshWorkers sets the number of parallel rebuild workers
func SetMeshWorkers(workers int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	// Clamp to reasonable values
	if workers < 1 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	globalMeshSettings.workers = workers
}

// GetSlowRebuildThreshold returns the flush duration above which a rebuild is logged
func GetSlowRebuildThreshold() time.Duration {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.slowRebuildThreshold
}

// SetSlowRebuildThreshold sets the slow rebuild threshold; zero disables the report
func SetSlowRebuildThreshold(d time.Duration) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	if d < 0 {
		d = 0
	}
	globalMeshSettings.slowRebuildThreshold = d
}
