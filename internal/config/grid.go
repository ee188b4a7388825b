package config

import (
	"sync"

	"voxmesh/internal/world"
)

// GridSettings holds volume layout configuration
type GridSettings struct {
	mu         sync.RWMutex
	volumeSide int
}

var globalGridSettings = &GridSettings{
	volumeSide: world.DefaultVolumeSide,
}

// GetVolumeSide returns the side length of newly created volumes
func GetVolumeSide() int {
	globalGridSettings.mu.RLock()
	defer globalGridSettings.mu.RUnlock()
	return globalGridSettings.volumeSide
}

// SetVolumeSide sets the side length of newly created volumes
func SetVolumeSide(side int) {
	globalGridSettings.mu.Lock()
	defer globalGridSettings.mu.Unlock()

	// Clamp to reasonable values
	if side < 1 {
		side = 1
	}
	if side > 255 {
		side = 255
	}

	globalGridSettings.volumeSide = side
}
