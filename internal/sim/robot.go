package sim

import (
	"fmt"
	"time"

	"github.com/robofleet/amrsim/pkg/models"
)

// Robot is an actor owning its own position, battery, and state machine.
// It starts Idle with a full battery. Transitions are driven by AssignTask,
// Advance, and the tick-level branching in FleetManager; no transition leads
// into StatusMaintenance.
type Robot struct {
	ID       string
	Position models.Position
	Status   models.RobotStatus

	// Battery is clamped to [0, MaxBattery] at every mutation.
	Battery    float64
	MaxBattery float64

	// Speed is the effective speed; BaseSpeed is the configured speed that
	// global multipliers scale from.
	Speed     float64
	BaseSpeed float64

	// CurrentTask is non-nil only while Moving or Working. The robot owns
	// the task exclusively for the duration of the assignment.
	CurrentTask *models.Task
	Target      *models.Position

	DistanceTraveled float64
	TasksCompleted   int
	LastMaintenance  time.Time

	tun Tunables
}

// NewRobot creates an idle, fully charged robot at the given position.
func NewRobot(id string, pos models.Position, tun Tunables) *Robot {
	return &Robot{
		ID:              id,
		Position:        pos,
		Status:          models.StatusIdle,
		Battery:         tun.MaxBattery,
		MaxBattery:      tun.MaxBattery,
		Speed:           tun.Speed,
		BaseSpeed:       tun.Speed,
		LastMaintenance: time.Now().UTC(),
		tun:             tun,
	}
}

// AssignTask transfers ownership of a task to the robot: Idle → Moving with
// the task's start as target. It rejects tasks that already carry an
// assignment and robots that are not idle.
func (r *Robot) AssignTask(task *models.Task) error {
	if task == nil {
		return fmt.Errorf("assigning task to %s: task is nil", r.ID)
	}
	if task.AssignedRobot != "" {
		return fmt.Errorf("assigning task %s to %s: already assigned to %s", task.ID, r.ID, task.AssignedRobot)
	}
	if r.Status != models.StatusIdle {
		return fmt.Errorf("assigning task %s to %s: robot is %s, not idle", task.ID, r.ID, r.Status)
	}

	task.AssignedRobot = r.ID
	r.CurrentTask = task
	r.Status = models.StatusMoving
	start := task.Start
	r.Target = &start
	return nil
}

// Advance performs one physics step toward the waypoint and reports whether
// the robot has arrived. A robot that is Moving or Working with battery at
// or below the low-battery threshold refuses the step and drops into
// Charging; charging robots keep driving on reserve so they can still reach
// a station.
func (r *Robot) Advance(waypoint models.Position, dt float64) bool {
	if r.Status != models.StatusCharging && r.Battery <= r.tun.LowBattery {
		r.Status = models.StatusCharging
		return false
	}

	dist := r.Position.DistanceTo(waypoint)
	if dist < r.tun.ArrivalTolerance {
		// Snap exactly onto the waypoint.
		r.Position = waypoint
		return true
	}

	moved := r.Speed * dt
	if moved > dist {
		moved = dist
	}
	r.Position.X += (waypoint.X - r.Position.X) / dist * moved
	r.Position.Y += (waypoint.Y - r.Position.Y) / dist * moved

	r.DistanceTraveled += moved
	r.drain(moved * r.tun.DrainRate)
	return false
}

// CompleteTask finishes the current task: counter incremented, task and
// target dropped, status back to Idle. A robot with no task is left as-is.
func (r *Robot) CompleteTask() {
	if r.CurrentTask == nil {
		return
	}
	r.TasksCompleted++
	r.CurrentTask = nil
	r.Target = nil
	r.Status = models.StatusIdle
}

// Charge adds battery for dt simulated seconds at the charge rate and
// reports whether the robot has reached the charge-done level.
func (r *Robot) Charge(dt float64) bool {
	r.Battery += r.tun.ChargeRate * dt
	if r.Battery > r.MaxBattery {
		r.Battery = r.MaxBattery
	}
	return r.Battery >= r.MaxBattery*r.tun.ChargeDoneFraction
}

// drain subtracts battery, clamping at zero.
func (r *Robot) drain(amount float64) {
	r.Battery -= amount
	if r.Battery < 0 {
		r.Battery = 0
	}
}

// Snapshot returns a read-only view of the robot.
func (r *Robot) Snapshot() models.RobotSnapshot {
	snap := models.RobotSnapshot{
		ID:               r.ID,
		Status:           r.Status,
		Position:         r.Position,
		Battery:          r.Battery,
		MaxBattery:       r.MaxBattery,
		TasksCompleted:   r.TasksCompleted,
		DistanceTraveled: r.DistanceTraveled,
	}
	if r.CurrentTask != nil {
		snap.CurrentTaskID = r.CurrentTask.ID
	}
	if r.Target != nil {
		target := *r.Target
		snap.Target = &target
	}
	return snap
}
