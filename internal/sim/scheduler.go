package sim

import (
	"fmt"
	"sort"

	"github.com/robofleet/amrsim/pkg/models"
)

// batteryPenaltyWeight scales the battery term of the assignment cost.
const batteryPenaltyWeight = 0.1

// Assignment pairs a robot with the task the scheduler matched to it.
// The caller is responsible for calling Robot.AssignTask.
type Assignment struct {
	Robot *Robot
	Task  *models.Task
}

// TaskScheduler owns the pending-task queue and the greedy assignment
// heuristic. The queue is kept sorted by descending priority with ties in
// insertion order. The scheduler is not a solver: it yields at most one
// assignment per invocation and does not attempt a globally optimal
// bipartite matching.
type TaskScheduler struct {
	pending []*models.Task
	tun     Tunables
}

// NewTaskScheduler creates an empty scheduler.
func NewTaskScheduler(tun Tunables) *TaskScheduler {
	return &TaskScheduler{tun: tun}
}

// Add appends a task to the pending queue and re-sorts it. Tasks with a
// duplicate pending ID or an existing assignment are rejected.
func (s *TaskScheduler) Add(task *models.Task) error {
	if task == nil {
		return fmt.Errorf("adding task: task is nil")
	}
	if task.ID == "" {
		return fmt.Errorf("adding task: ID must not be empty")
	}
	if task.AssignedRobot != "" {
		return fmt.Errorf("adding task %s: task is already assigned to %s", task.ID, task.AssignedRobot)
	}
	for _, t := range s.pending {
		if t.ID == task.ID {
			return fmt.Errorf("adding task %s: already pending", task.ID)
		}
	}

	s.pending = append(s.pending, task)
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].Priority > s.pending[j].Priority
	})
	return nil
}

// Requeue returns an abandoned task to the pending queue, clearing its
// assignment first.
func (s *TaskScheduler) Requeue(task *models.Task) error {
	if task == nil {
		return fmt.Errorf("requeueing task: task is nil")
	}
	task.AssignedRobot = ""
	if err := s.Add(task); err != nil {
		return fmt.Errorf("requeueing task: %w", err)
	}
	return nil
}

// AssignOptimalRobot scans the full pending queue against all eligible
// robots (idle, battery strictly above the eligibility threshold) and
// returns the single minimal-cost pair, where cost is the distance to the
// task's start plus a penalty for missing battery. The matched task is
// removed from the queue. Returns nil when the queue is empty or no robot
// is eligible. The strict less-than keeps first-found pairs on ties, so the
// priority sort biases toward higher-priority tasks.
func (s *TaskScheduler) AssignOptimalRobot(robots []*Robot) *Assignment {
	if len(s.pending) == 0 {
		return nil
	}

	var eligible []*Robot
	for _, r := range robots {
		if r.Status == models.StatusIdle && r.Battery > s.tun.MinAssignBattery {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	var best *Assignment
	bestCost := 0.0
	for _, task := range s.pending {
		for _, robot := range eligible {
			cost := robot.Position.DistanceTo(task.Start) +
				(s.tun.MaxBattery-robot.Battery)*batteryPenaltyWeight
			if best == nil || cost < bestCost {
				best = &Assignment{Robot: robot, Task: task}
				bestCost = cost
			}
		}
	}

	s.remove(best.Task.ID)
	return best
}

// Pending returns the number of queued tasks.
func (s *TaskScheduler) Pending() int {
	return len(s.pending)
}

// PendingTasks returns a copy of the queue in priority order.
func (s *TaskScheduler) PendingTasks() []models.Task {
	tasks := make([]models.Task, 0, len(s.pending))
	for _, t := range s.pending {
		tasks = append(tasks, *t)
	}
	return tasks
}

// remove drops the task with the given ID from the queue, preserving order.
func (s *TaskScheduler) remove(id string) {
	for i, t := range s.pending {
		if t.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
