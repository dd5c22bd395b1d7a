package sim

import (
	"time"

	"github.com/google/uuid"
	"github.com/robofleet/amrsim/pkg/models"
)

// Task generation bounds.
const (
	minPriority = 1
	maxPriority = 5
	minDuration = 5.0
	maxDuration = 30.0
)

// GenerateTask produces a randomized task: start and end uniform within the
// grid inset by the spawn margin, uniform kind, integer priority in [1,5],
// duration in [5,30). The task is not queued; callers pass it to AddTask.
// Positions, kind, and priority come from the injected source, so seeded
// fleets are reproducible; IDs draw from uuid so they never collide.
func (f *FleetManager) GenerateTask() *models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds := models.AllTaskKinds()
	return &models.Task{
		ID:                "T-" + uuid.NewString()[:8],
		Kind:              kinds[f.rng.Intn(len(kinds))],
		Start:             f.randomSpawn(),
		End:               f.randomSpawn(),
		Priority:          minPriority + f.rng.Intn(maxPriority-minPriority+1),
		EstimatedDuration: minDuration + f.rng.Float64()*(maxDuration-minDuration),
		Created:           time.Now().UTC(),
	}
}

// randomSpawn picks a uniform position inside the grid, inset by the spawn
// margin so tasks never land on the boundary. Callers hold the mutex.
func (f *FleetManager) randomSpawn() models.Position {
	return models.Position{
		X: f.tun.SpawnMargin + f.rng.Float64()*(f.tun.GridWidth-2*f.tun.SpawnMargin),
		Y: f.tun.SpawnMargin + f.rng.Float64()*(f.tun.GridHeight-2*f.tun.SpawnMargin),
	}
}
