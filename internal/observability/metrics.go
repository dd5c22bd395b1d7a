package observability

import "fmt"

// RunMetrics holds aggregates derived from a simulation run's event log.
type RunMetrics struct {
	TasksAdded     int            `json:"tasks_added"`
	TasksAssigned  int            `json:"tasks_assigned"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksRequeued  int            `json:"tasks_requeued"`
	TasksByKind    map[string]int `json:"tasks_by_kind"`
	ChargeTrips    int            `json:"charge_trips"`
	ChargeCycles   int            `json:"charge_cycles"`
	EmergencyStops int            `json:"emergency_stops"`
	EventCount     int            `json:"event_count"`
	FirstSimTime   float64        `json:"first_sim_time"`
	LastSimTime    float64        `json:"last_sim_time"`
}

// MetricsCalculator derives run metrics from the event log.
type MetricsCalculator interface {
	Calculate(sinceSim float64) (*RunMetrics, error)
}

// metricsCalculator implements MetricsCalculator by reading an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading the given log.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events at or after the given simulated time and
// aggregates them into run metrics.
func (mc *metricsCalculator) Calculate(sinceSim float64) (*RunMetrics, error) {
	events, err := mc.eventLog.Read(EventFilter{SinceSim: &sinceSim})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &RunMetrics{TasksByKind: make(map[string]int)}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			m.FirstSimTime = event.SimTime
		}
		m.LastSimTime = event.SimTime

		switch event.Type {
		case EventTaskAdded:
			m.TasksAdded++
			if kind, ok := event.Data["kind"].(string); ok {
				m.TasksByKind[kind]++
			}
		case EventTaskAssigned:
			m.TasksAssigned++
		case EventTaskCompleted:
			m.TasksCompleted++
		case EventTaskRequeued:
			m.TasksRequeued++
		case EventRobotCharging:
			m.ChargeTrips++
		case EventRobotCharged:
			m.ChargeCycles++
		case EventEmergencyStop:
			m.EmergencyStops++
		}
	}

	return m, nil
}
