package sim

import (
	"math"
	"testing"

	"github.com/robofleet/amrsim/pkg/models"
)

func newTestRobot(id string, pos models.Position) *Robot {
	return NewRobot(id, pos, DefaultTunables())
}

func TestNewRobot_StartsIdleAndCharged(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 10, Y: 10})

	if r.Status != models.StatusIdle {
		t.Errorf("expected idle, got %s", r.Status)
	}
	if r.Battery != r.MaxBattery {
		t.Errorf("expected full battery %g, got %g", r.MaxBattery, r.Battery)
	}
	if r.CurrentTask != nil || r.Target != nil {
		t.Error("expected no task or target on a fresh robot")
	}
}

func TestAssignTask_TransitionsToMoving(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	task := &models.Task{ID: "T-1", Start: models.Position{X: 5, Y: 5}, End: models.Position{X: 9, Y: 9}}

	if err := r.AssignTask(task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != models.StatusMoving {
		t.Errorf("expected moving, got %s", r.Status)
	}
	if task.AssignedRobot != "AMR-01" {
		t.Errorf("expected task assigned to AMR-01, got %q", task.AssignedRobot)
	}
	if r.Target == nil || *r.Target != task.Start {
		t.Errorf("expected target %v, got %v", task.Start, r.Target)
	}
}

func TestAssignTask_RejectsAlreadyAssigned(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	task := &models.Task{ID: "T-1", AssignedRobot: "AMR-99"}

	if err := r.AssignTask(task); err == nil {
		t.Error("expected error for already-assigned task")
	}
}

func TestAssignTask_RejectsBusyRobot(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	if err := r.AssignTask(&models.Task{ID: "T-1"}); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	if err := r.AssignTask(&models.Task{ID: "T-2"}); err == nil {
		t.Error("expected error assigning to a moving robot")
	}
}

func TestAssignTask_RejectsNil(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	if err := r.AssignTask(nil); err == nil {
		t.Error("expected error for nil task")
	}
}

// A robot at (0,0) heading to (10,0) at speed 2 covers exactly 2 units per
// one-second step: after five steps it sits exactly on the target, and the
// sixth step reports arrival.
func TestAdvance_ReachesTargetExactly(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 0, Y: 0})
	r.Status = models.StatusMoving
	target := models.Position{X: 10, Y: 0}

	for i := 0; i < 5; i++ {
		if arrived := r.Advance(target, 1.0); arrived {
			t.Fatalf("arrived early on step %d", i+1)
		}
	}
	if r.Position != target {
		t.Errorf("expected position %v after 5 steps, got %v", target, r.Position)
	}
	if !r.Advance(target, 1.0) {
		t.Error("expected arrival on step 6")
	}
}

func TestAdvance_NeverOvershoots(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 0, Y: 0})
	r.Status = models.StatusMoving
	r.Speed = 100
	target := models.Position{X: 3, Y: 0}

	r.Advance(target, 1.0)
	if r.Position != target {
		t.Errorf("expected clamp onto target %v, got %v", target, r.Position)
	}
}

func TestAdvance_DrainsBatteryByDistance(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 0, Y: 0})
	r.Status = models.StatusMoving
	target := models.Position{X: 10, Y: 0}

	for i := 0; i < 5; i++ {
		r.Advance(target, 1.0)
	}
	if want := 99.0; math.Abs(r.Battery-want) > 1e-9 {
		t.Errorf("expected battery %g after moving 10 units, got %g", want, r.Battery)
	}
	if r.DistanceTraveled != 10 {
		t.Errorf("expected distance traveled 10, got %g", r.DistanceTraveled)
	}
}

// A moving robot whose battery has hit the low threshold refuses the step
// and drops into charging without moving.
func TestAdvance_LowBatteryForcesCharging(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 0, Y: 0})
	r.Status = models.StatusMoving
	r.Battery = 5.0

	if arrived := r.Advance(models.Position{X: 10, Y: 0}, 1.0); arrived {
		t.Error("refused step must not report arrival")
	}
	if r.Status != models.StatusCharging {
		t.Errorf("expected charging, got %s", r.Status)
	}
	if (r.Position != models.Position{X: 0, Y: 0}) {
		t.Errorf("expected robot to stay put, got %v", r.Position)
	}
}

// Charging robots keep driving on reserve; otherwise a robot that drops low
// away from a station could never reach one.
func TestAdvance_ChargingRobotMovesOnReserve(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 0, Y: 0})
	r.Status = models.StatusCharging
	r.Battery = 3.0

	r.Advance(models.Position{X: 10, Y: 0}, 1.0)
	if r.Position.X != 2 {
		t.Errorf("expected charging robot to move to x=2, got %g", r.Position.X)
	}
}

func TestCompleteTask_ResetsToIdle(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	if err := r.AssignTask(&models.Task{ID: "T-1"}); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}

	r.CompleteTask()
	if r.Status != models.StatusIdle {
		t.Errorf("expected idle, got %s", r.Status)
	}
	if r.CurrentTask != nil || r.Target != nil {
		t.Error("expected task and target cleared")
	}
	if r.TasksCompleted != 1 {
		t.Errorf("expected 1 completed task, got %d", r.TasksCompleted)
	}
}

func TestCompleteTask_NoopWithoutTask(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	r.CompleteTask()
	if r.TasksCompleted != 0 {
		t.Errorf("expected counter untouched, got %d", r.TasksCompleted)
	}
}

func TestCharge_ReachesDoneLevel(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	r.Battery = 50

	if done := r.Charge(1.0); done {
		t.Error("70 battery should not be charge-done")
	}
	if done := r.Charge(1.0); !done {
		t.Errorf("90 battery should be charge-done, battery=%g", r.Battery)
	}
}

func TestCharge_ClampsAtCapacity(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{})
	r.Battery = 95

	r.Charge(10.0)
	if r.Battery != r.MaxBattery {
		t.Errorf("expected battery clamped at %g, got %g", r.MaxBattery, r.Battery)
	}
}

func TestSnapshot_CopiesTarget(t *testing.T) {
	r := newTestRobot("AMR-01", models.Position{X: 1, Y: 2})
	if err := r.AssignTask(&models.Task{ID: "T-1", Start: models.Position{X: 5, Y: 5}}); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}

	snap := r.Snapshot()
	if snap.CurrentTaskID != "T-1" {
		t.Errorf("expected task ID T-1, got %q", snap.CurrentTaskID)
	}
	if snap.Target == r.Target {
		t.Error("snapshot must not alias the robot's target")
	}
	snap.Target.X = 99
	if r.Target.X == 99 {
		t.Error("mutating the snapshot target leaked into the robot")
	}
}
