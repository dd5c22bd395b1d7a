// Package models defines the shared data types of the AMR fleet simulation:
// the spatial primitive, work tasks, robot status, and read-only fleet
// snapshots exposed to presentation layers.
package models

import "math"

// Position is a point on the 2D operating plane. It is a pure value type
// with no identity and no lifecycle.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}
