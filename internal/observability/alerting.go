package observability

import (
	"fmt"
	"time"

	"github.com/robofleet/amrsim/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered fleet condition.
type Alert struct {
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when fleet alerts fire.
type AlertThresholds struct {
	// CriticalBattery flags individual robots at or below this level.
	CriticalBattery float64 `yaml:"critical_battery" json:"critical_battery"`
	// LowAverageBattery flags the fleet average dropping below this level.
	LowAverageBattery float64 `yaml:"low_average_battery" json:"low_average_battery"`
	// MaxPendingTasks flags a backed-up task queue.
	MaxPendingTasks int `yaml:"max_pending_tasks" json:"max_pending_tasks"`
	// MinEfficiency flags a mostly idle fleet, in percent.
	MinEfficiency float64 `yaml:"min_efficiency" json:"min_efficiency"`
}

// DefaultAlertThresholds returns sensible defaults.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		CriticalBattery:   10,
		LowAverageBattery: 30,
		MaxPendingTasks:   20,
		MinEfficiency:     25,
	}
}

// AlertEngine evaluates alert conditions against fleet status snapshots.
type AlertEngine interface {
	Evaluate(status models.FleetStatus) []Alert
}

// alertEngine implements AlertEngine with fixed thresholds.
type alertEngine struct {
	thresholds AlertThresholds
}

// NewAlertEngine creates an AlertEngine with the given thresholds.
func NewAlertEngine(thresholds AlertThresholds) AlertEngine {
	return &alertEngine{thresholds: thresholds}
}

// Evaluate checks all alert conditions against the snapshot and returns any
// triggered alerts. An empty fleet produces no alerts.
func (ae *alertEngine) Evaluate(status models.FleetStatus) []Alert {
	if status.TotalRobots == 0 {
		return nil
	}

	now := time.Now().UTC()
	var alerts []Alert

	for _, r := range status.Robots {
		if r.Battery <= ae.thresholds.CriticalBattery {
			alerts = append(alerts, Alert{
				Condition:   "robot_battery_critical",
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("robot %s battery at %.1f", r.ID, r.Battery),
				TriggeredAt: now,
			})
		}
	}

	if status.AverageBattery < ae.thresholds.LowAverageBattery {
		alerts = append(alerts, Alert{
			Condition:   "fleet_battery_low",
			Severity:    SeverityMedium,
			Message:     fmt.Sprintf("fleet average battery at %.1f", status.AverageBattery),
			TriggeredAt: now,
		})
	}

	if status.PendingTasks > ae.thresholds.MaxPendingTasks {
		alerts = append(alerts, Alert{
			Condition:   "task_queue_backed_up",
			Severity:    SeverityMedium,
			Message:     fmt.Sprintf("%d tasks pending", status.PendingTasks),
			TriggeredAt: now,
		})
	}

	if status.Efficiency < ae.thresholds.MinEfficiency && status.PendingTasks > 0 {
		alerts = append(alerts, Alert{
			Condition:   "fleet_underutilized",
			Severity:    SeverityLow,
			Message:     fmt.Sprintf("efficiency at %.1f%% with %d tasks pending", status.Efficiency, status.PendingTasks),
			TriggeredAt: now,
		})
	}

	return alerts
}
