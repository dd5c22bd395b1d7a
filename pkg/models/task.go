package models

import "time"

// TaskKind represents the type of work a task involves.
type TaskKind string

const (
	TaskPickup     TaskKind = "pickup"
	TaskDelivery   TaskKind = "delivery"
	TaskInspection TaskKind = "inspection"
	TaskCleaning   TaskKind = "cleaning"
)

// AllTaskKinds lists every task kind, in declaration order.
func AllTaskKinds() []TaskKind {
	return []TaskKind{TaskPickup, TaskDelivery, TaskInspection, TaskCleaning}
}

// Task is a unit of work on the plane: travel to Start, perform the work
// while moving to End. Fields other than AssignedRobot are immutable after
// creation. AssignedRobot is set exactly once, when a robot takes ownership
// of the task; a task never re-enters the pending queue while assigned.
type Task struct {
	ID                string    `yaml:"id" json:"id"`
	Kind              TaskKind  `yaml:"kind" json:"kind"`
	Start             Position  `yaml:"start" json:"start"`
	End               Position  `yaml:"end" json:"end"`
	Priority          int       `yaml:"priority" json:"priority"`
	EstimatedDuration float64   `yaml:"estimated_duration" json:"estimated_duration"`
	AssignedRobot     string    `yaml:"assigned_robot,omitempty" json:"assigned_robot,omitempty"`
	Created           time.Time `yaml:"created" json:"created"`
}
