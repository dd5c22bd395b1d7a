// Package sim implements the AMR fleet simulation engine: the robot state
// machine, the priority/greedy task scheduler, and the per-tick fleet update
// loop that advances physical state and recomputes fleet metrics.
//
// The simulation is a single-threaded discrete time-step control loop:
// exactly one Tick call advances all state. The FleetManager serializes its
// public surface with a mutex so presentation layers may poll Status from
// another goroutine.
package sim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/robofleet/amrsim/pkg/models"
)

// Recorder receives simulation events stamped with the simulated clock.
// A nil Recorder disables recording.
type Recorder interface {
	Record(simTime float64, eventType, message string, data map[string]any)
}

// FleetConfig holds the parameters needed to create a FleetManager.
type FleetConfig struct {
	Tunables Tunables
	// Stations is the fixed charging station layout; DefaultStations when nil.
	Stations []models.Position
	// Planner defaults to DirectPlanner.
	Planner PathPlanner
	// Rand seeds task generation; a time-seeded source is used when nil.
	Rand *rand.Rand
	// Recorder may be nil.
	Recorder Recorder
}

// FleetManager orchestrates the simulation: it owns the robot collection,
// the scheduler, and the static charging station list, and performs one
// assignment attempt, all robot updates, and metrics recomputation per tick.
type FleetManager struct {
	mu sync.Mutex

	tun       Tunables
	robots    []*Robot
	robotByID map[string]*Robot
	scheduler *TaskScheduler
	planner   PathPlanner
	stations  []models.Position
	rng       *rand.Rand
	rec       Recorder

	// activeTaskIDs tracks pending plus in-flight task IDs for duplicate
	// rejection; completed and abandoned IDs are released.
	activeTaskIDs map[string]struct{}

	simTime        float64
	tasksCompleted int
	efficiency     float64
	avgBattery     float64
}

// NewFleetManager creates a fleet with no robots and an empty task queue.
func NewFleetManager(cfg FleetConfig) (*FleetManager, error) {
	if err := cfg.Tunables.Validate(); err != nil {
		return nil, fmt.Errorf("creating fleet: %w", err)
	}

	stations := cfg.Stations
	if stations == nil {
		stations = DefaultStations()
	}
	planner := cfg.Planner
	if planner == nil {
		planner = DirectPlanner{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &FleetManager{
		tun:           cfg.Tunables,
		robotByID:     make(map[string]*Robot),
		scheduler:     NewTaskScheduler(cfg.Tunables),
		planner:       planner,
		stations:      stations,
		rng:           rng,
		rec:           cfg.Recorder,
		activeTaskIDs: make(map[string]struct{}),
	}, nil
}

// AddRobot adds a robot to the fleet. Duplicate IDs are rejected.
func (f *FleetManager) AddRobot(r *Robot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r == nil {
		return fmt.Errorf("adding robot: robot is nil")
	}
	if r.ID == "" {
		return fmt.Errorf("adding robot: ID must not be empty")
	}
	if _, exists := f.robotByID[r.ID]; exists {
		return fmt.Errorf("adding robot: robot %s already exists", r.ID)
	}

	f.robots = append(f.robots, r)
	f.robotByID[r.ID] = r
	return nil
}

// AddTask queues a task for assignment. IDs must be unique across pending
// and in-flight tasks; already-assigned tasks are rejected.
func (f *FleetManager) AddTask(task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if task == nil {
		return fmt.Errorf("adding task: task is nil")
	}
	if _, exists := f.activeTaskIDs[task.ID]; exists {
		return fmt.Errorf("adding task: task %s already exists", task.ID)
	}
	if err := f.scheduler.Add(task); err != nil {
		return err
	}
	f.activeTaskIDs[task.ID] = struct{}{}

	f.record("sim.task_added", "task queued", map[string]any{
		"task_id":  task.ID,
		"kind":     string(task.Kind),
		"priority": task.Priority,
	})
	return nil
}

// Tick advances the simulation by dt simulated seconds: one scheduler
// assignment attempt, a status-dependent update for every robot, then
// metrics recomputation. dt must be positive.
func (f *FleetManager) Tick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("tick: dt must be positive, got %g", dt)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.simTime += dt

	if a := f.scheduler.AssignOptimalRobot(f.robots); a != nil {
		// The scheduler only vends unassigned tasks to idle robots, so the
		// assignment cannot fail here.
		if err := a.Robot.AssignTask(a.Task); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		f.record("sim.task_assigned", "task assigned", map[string]any{
			"task_id":  a.Task.ID,
			"robot_id": a.Robot.ID,
			"priority": a.Task.Priority,
		})
	}

	for _, r := range f.robots {
		f.updateRobot(r, dt)
	}

	f.recomputeMetrics()
	return nil
}

// updateRobot performs the status-dependent physics update for one robot.
// Idle and Maintenance robots are untouched.
func (f *FleetManager) updateRobot(r *Robot, dt float64) {
	switch r.Status {
	case models.StatusMoving:
		f.updateMoving(r, dt)
	case models.StatusWorking:
		f.updateWorking(r, dt)
	case models.StatusCharging:
		f.updateCharging(r, dt)
	}
}

// updateMoving drives a robot toward its task's start. On arrival the robot
// flips to Working with the task's end as target. A robot left Moving with
// no task (possible only transiently during a stop) returns to Idle.
func (f *FleetManager) updateMoving(r *Robot, dt float64) {
	if r.Target == nil {
		r.Status = models.StatusIdle
		return
	}

	arrived := r.Advance(f.planner.NextWaypoint(r.Position, *r.Target), dt)
	if r.Status == models.StatusCharging {
		f.abandonForCharging(r)
		return
	}
	if !arrived {
		return
	}

	if r.CurrentTask == nil {
		r.Status = models.StatusIdle
		r.Target = nil
		return
	}

	if *r.Target == r.CurrentTask.Start {
		end := r.CurrentTask.End
		r.Target = &end
		r.Status = models.StatusWorking
		return
	}
	f.completeTask(r)
}

// updateWorking drives a robot toward its task's end and completes the task
// on arrival.
func (f *FleetManager) updateWorking(r *Robot, dt float64) {
	if r.Target == nil {
		r.Status = models.StatusIdle
		return
	}

	arrived := r.Advance(f.planner.NextWaypoint(r.Position, *r.Target), dt)
	if r.Status == models.StatusCharging {
		f.abandonForCharging(r)
		return
	}
	if arrived {
		f.completeTask(r)
	}
}

// updateCharging sends a robot to the nearest charging station and, once
// there, charges it until the charge-done level flips it back to Idle.
func (f *FleetManager) updateCharging(r *Robot, dt float64) {
	if r.Target == nil {
		station := f.nearestStation(r.Position)
		r.Target = &station
	}

	if !r.Advance(f.planner.NextWaypoint(r.Position, *r.Target), dt) {
		return
	}
	if r.Charge(dt) {
		r.Status = models.StatusIdle
		r.Target = nil
		f.record("sim.robot_charged", "robot charged", map[string]any{
			"robot_id": r.ID,
			"battery":  r.Battery,
		})
	}
}

// nearestStation returns the charging station closest to pos.
func (f *FleetManager) nearestStation(pos models.Position) models.Position {
	nearest := f.stations[0]
	best := pos.DistanceTo(nearest)
	for _, s := range f.stations[1:] {
		if d := pos.DistanceTo(s); d < best {
			best = d
			nearest = s
		}
	}
	return nearest
}

// completeTask finishes a robot's current task and releases its ID.
func (f *FleetManager) completeTask(r *Robot) {
	task := r.CurrentTask
	r.CompleteTask()
	delete(f.activeTaskIDs, task.ID)
	f.record("sim.task_completed", "task completed", map[string]any{
		"task_id":  task.ID,
		"robot_id": r.ID,
	})
}

// abandonForCharging requeues the task of a robot that was forced into
// charging mid-task. The charging update picks a station target next tick.
func (f *FleetManager) abandonForCharging(r *Robot) {
	f.record("sim.robot_charging", "robot low on battery", map[string]any{
		"robot_id": r.ID,
		"battery":  r.Battery,
	})

	task := r.CurrentTask
	r.CurrentTask = nil
	r.Target = nil
	if task == nil {
		return
	}

	if err := f.scheduler.Requeue(task); err != nil {
		// The ID is still registered as active, so this cannot collide;
		// drop the task rather than wedge the tick.
		delete(f.activeTaskIDs, task.ID)
		return
	}
	f.record("sim.task_requeued", "task requeued", map[string]any{
		"task_id":  task.ID,
		"robot_id": r.ID,
	})
}

// EmergencyStop forces every robot to Idle, clearing targets and tasks.
// Abandoned tasks are not requeued or completed; they simply vanish.
func (f *FleetManager) EmergencyStop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	abandoned := 0
	for _, r := range f.robots {
		if r.CurrentTask != nil {
			delete(f.activeTaskIDs, r.CurrentTask.ID)
			abandoned++
		}
		r.CurrentTask = nil
		r.Target = nil
		r.Status = models.StatusIdle
	}
	f.recomputeMetrics()
	f.record("sim.emergency_stop", "emergency stop", map[string]any{
		"tasks_abandoned": abandoned,
	})
}

// SetGlobalSpeed scales every robot's speed to multiplier times its base
// speed. The multiplier must be positive.
func (f *FleetManager) SetGlobalSpeed(multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("setting global speed: multiplier must be positive, got %g", multiplier)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.robots {
		r.Speed = r.BaseSpeed * multiplier
	}
	return nil
}

// SendAllToCharge forces every robot with battery below threshold into
// Charging with its target cleared; the charging update selects a station on
// the next tick. Held tasks are requeued.
func (f *FleetManager) SendAllToCharge(threshold float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.robots {
		if r.Battery >= threshold || r.Status == models.StatusCharging {
			continue
		}
		task := r.CurrentTask
		r.CurrentTask = nil
		r.Target = nil
		r.Status = models.StatusCharging
		if task != nil {
			if err := f.scheduler.Requeue(task); err == nil {
				f.record("sim.task_requeued", "task requeued", map[string]any{
					"task_id":  task.ID,
					"robot_id": r.ID,
				})
			} else {
				delete(f.activeTaskIDs, task.ID)
			}
		}
	}
}

// Status returns a read-only snapshot of the fleet. Aggregates are
// recomputed on the spot so the snapshot is valid between ticks too.
func (f *FleetManager) Status() models.FleetStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.recomputeMetrics()
	status := models.FleetStatus{
		TotalRobots:    len(f.robots),
		StatusCounts:   make(map[models.RobotStatus]int, len(models.AllRobotStatuses())),
		PendingTasks:   f.scheduler.Pending(),
		TasksCompleted: f.tasksCompleted,
		Efficiency:     f.efficiency,
		AverageBattery: f.avgBattery,
	}
	for _, s := range models.AllRobotStatuses() {
		status.StatusCounts[s] = 0
	}
	for _, r := range f.robots {
		status.StatusCounts[r.Status]++
		status.Robots = append(status.Robots, r.Snapshot())
	}
	return status
}

// PendingTasks returns a copy of the pending queue in priority order.
func (f *FleetManager) PendingTasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheduler.PendingTasks()
}

// Stations returns the charging station layout.
func (f *FleetManager) Stations() []models.Position {
	stations := make([]models.Position, len(f.stations))
	copy(stations, f.stations)
	return stations
}

// recomputeMetrics refreshes the derived fleet aggregates. Callers hold the
// mutex.
func (f *FleetManager) recomputeMetrics() {
	total := 0
	active := 0
	battery := 0.0
	for _, r := range f.robots {
		total += r.TasksCompleted
		if r.Status != models.StatusIdle {
			active++
		}
		battery += r.Battery
	}
	f.tasksCompleted = total
	if len(f.robots) == 0 {
		f.efficiency = 0
		f.avgBattery = 0
		return
	}
	f.efficiency = float64(active) / float64(len(f.robots)) * 100
	f.avgBattery = battery / float64(len(f.robots))
}

// SimTime returns the total simulated seconds advanced so far.
func (f *FleetManager) SimTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.simTime
}

// record emits an event if a recorder is configured. Callers hold the mutex.
func (f *FleetManager) record(eventType, message string, data map[string]any) {
	if f.rec == nil {
		return
	}
	f.rec.Record(f.simTime, eventType, message, data)
}
