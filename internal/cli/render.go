package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robofleet/amrsim/pkg/models"
)

// Style definitions.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	statusIdle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusMoving      = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	statusWorking     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusCharging    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusMaintenance = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	batteryLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	batteryMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	batteryFull = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusStyle returns the style for a robot status.
func statusStyle(s models.RobotStatus) lipgloss.Style {
	switch s {
	case models.StatusIdle:
		return statusIdle
	case models.StatusMoving:
		return statusMoving
	case models.StatusWorking:
		return statusWorking
	case models.StatusCharging:
		return statusCharging
	default:
		return statusMaintenance
	}
}

// batteryStyle returns the style for a battery level relative to capacity.
func batteryStyle(battery, max float64) lipgloss.Style {
	switch {
	case max > 0 && battery/max < 0.2:
		return batteryLow
	case max > 0 && battery/max < 0.5:
		return batteryMid
	default:
		return batteryFull
	}
}

// renderStatus formats a full fleet snapshot for terminal output.
func renderStatus(status models.FleetStatus) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Fleet Status"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-18s %d\n", "Robots:", status.TotalRobots)
	fmt.Fprintf(&b, "  %-18s %d\n", "Pending tasks:", status.PendingTasks)
	fmt.Fprintf(&b, "  %-18s %d\n", "Tasks completed:", status.TasksCompleted)
	fmt.Fprintf(&b, "  %-18s %.1f%%\n", "Efficiency:", status.Efficiency)
	fmt.Fprintf(&b, "  %-18s %.1f\n", "Average battery:", status.AverageBattery)

	b.WriteString("\n  By status: ")
	parts := make([]string, 0, len(models.AllRobotStatuses()))
	for _, s := range models.AllRobotStatuses() {
		parts = append(parts, statusStyle(s).Render(fmt.Sprintf("%s=%d", s, status.StatusCounts[s])))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n\n")

	for _, r := range status.Robots {
		task := "-"
		if r.CurrentTaskID != "" {
			task = r.CurrentTaskID
		}
		fmt.Fprintf(&b, "  %-8s %s  %s  pos=(%5.1f,%5.1f)  done=%-3d dist=%7.1f  task=%s\n",
			r.ID,
			statusStyle(r.Status).Render(fmt.Sprintf("%-11s", r.Status)),
			batteryStyle(r.Battery, r.MaxBattery).Render(fmt.Sprintf("%5.1f", r.Battery)),
			r.Position.X, r.Position.Y,
			r.TasksCompleted, r.DistanceTraveled,
			dimStyle.Render(task),
		)
	}

	return b.String()
}
