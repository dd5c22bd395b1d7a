package models

// RobotSnapshot is a read-only view of a single robot at snapshot time.
type RobotSnapshot struct {
	ID               string      `json:"id"`
	Status           RobotStatus `json:"status"`
	Position         Position    `json:"position"`
	Battery          float64     `json:"battery"`
	MaxBattery       float64     `json:"max_battery"`
	TasksCompleted   int         `json:"tasks_completed"`
	DistanceTraveled float64     `json:"distance_traveled"`
	CurrentTaskID    string      `json:"current_task_id,omitempty"`
	Target           *Position   `json:"target,omitempty"`
}

// FleetStatus is a read-only aggregate of the whole fleet, recomputable at
// any time without mutating simulation state.
type FleetStatus struct {
	TotalRobots    int                 `json:"total_robots"`
	StatusCounts   map[RobotStatus]int `json:"status_counts"`
	PendingTasks   int                 `json:"pending_tasks"`
	TasksCompleted int                 `json:"tasks_completed"`
	// Efficiency is the percentage of robots not currently idle.
	Efficiency     float64         `json:"efficiency"`
	AverageBattery float64         `json:"average_battery"`
	Robots         []RobotSnapshot `json:"robots"`
}
