package cli

import (
	"strings"
	"testing"

	"github.com/robofleet/amrsim/pkg/models"
)

func TestRenderStatus_IncludesSummaryAndRobots(t *testing.T) {
	status := models.FleetStatus{
		TotalRobots:    2,
		PendingTasks:   3,
		TasksCompleted: 7,
		Efficiency:     50,
		AverageBattery: 82.5,
		StatusCounts: map[models.RobotStatus]int{
			models.StatusIdle:   1,
			models.StatusMoving: 1,
		},
		Robots: []models.RobotSnapshot{
			{ID: "AMR-01", Status: models.StatusIdle, Battery: 90, MaxBattery: 100},
			{ID: "AMR-02", Status: models.StatusMoving, Battery: 75, MaxBattery: 100, CurrentTaskID: "T-9"},
		},
	}

	out := renderStatus(status)
	for _, want := range []string{"AMR-01", "AMR-02", "T-9", "50.0%", "82.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
