package sim

import "github.com/robofleet/amrsim/pkg/models"

// PathPlanner produces the next waypoint on the way from a robot's current
// position to its target. The fleet drives all movement through a planner so
// that grid-aware planning with obstacle avoidance can be plugged in later
// without changing the Robot or FleetManager contract.
type PathPlanner interface {
	NextWaypoint(from, to models.Position) models.Position
}

// DirectPlanner is the default planner: straight-line interpolation that
// ignores obstacles. Its waypoint is always the target itself.
type DirectPlanner struct{}

// NextWaypoint returns the target unchanged.
func (DirectPlanner) NextWaypoint(_, to models.Position) models.Position {
	return to
}
