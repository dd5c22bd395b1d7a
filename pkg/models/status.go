package models

// RobotStatus represents the current state of a robot's state machine.
type RobotStatus string

const (
	StatusIdle     RobotStatus = "idle"
	StatusMoving   RobotStatus = "moving"
	StatusWorking  RobotStatus = "working"
	StatusCharging RobotStatus = "charging"
	// StatusMaintenance is a declared state with no transition into it.
	// It is kept for scheduled-downtime features; status breakdowns must
	// report it even while it stays at zero.
	StatusMaintenance RobotStatus = "maintenance"
)

// AllRobotStatuses lists every robot status, in declaration order.
func AllRobotStatuses() []RobotStatus {
	return []RobotStatus{
		StatusIdle, StatusMoving, StatusWorking, StatusCharging, StatusMaintenance,
	}
}
