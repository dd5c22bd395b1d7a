package observability

import "time"

// EventRecorder adapts an EventLog to the engine's Recorder interface.
// Write failures are dropped; the simulation must not stall on logging.
type EventRecorder struct {
	log EventLog
}

// NewEventRecorder creates a recorder writing to the given log.
func NewEventRecorder(log EventLog) *EventRecorder {
	return &EventRecorder{log: log}
}

// Record writes one simulation event.
func (r *EventRecorder) Record(simTime float64, eventType, message string, data map[string]any) {
	_ = r.log.Write(Event{
		Time:    time.Now().UTC(),
		SimTime: simTime,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}
