package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	app "github.com/robofleet/amrsim/internal"
	"github.com/robofleet/amrsim/internal/observability"
)

var (
	watchDT     float64
	watchSeed   int64
	watchCharge float64
)

// frameMsg drives the simulation clock; one frame advances one tick.
type frameMsg time.Time

type watchModel struct {
	app    *app.App
	alerts []observability.Alert
	err    error
}

func newWatchModel(a *app.App) watchModel {
	return watchModel{app: a}
}

func nextFrame() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return nextFrame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.err = m.app.Fleet.AddTask(m.app.Fleet.GenerateTask())
			return m, nil
		case "s":
			m.app.Fleet.EmergencyStop()
			return m, nil
		case "c":
			m.app.Fleet.SendAllToCharge(watchCharge)
			return m, nil
		}

	case frameMsg:
		m.err = m.app.Fleet.Tick(watchDT)
		m.alerts = m.app.AlertEngine.Evaluate(m.app.Fleet.Status())
		return m, nextFrame()
	}

	return m, nil
}

func (m watchModel) View() string {
	status := m.app.Fleet.Status()

	view := headerStyle.Render(fmt.Sprintf("amrsim watch  t=%.1fs", m.app.Fleet.SimTime())) + "\n"
	view += renderStatus(status)

	if len(m.alerts) > 0 {
		view += "\n" + headerStyle.Render("Alerts") + "\n"
		for _, al := range m.alerts {
			view += fmt.Sprintf("  [%s] %s\n", al.Severity, al.Message)
		}
	}
	if m.err != nil {
		view += "\n" + batteryLow.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	view += "\n" + helpView()
	return view
}

func helpView() string {
	return dimStyle.Render("a: add task  s: emergency stop  c: send all to charge  q: quit")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a live fleet view",
	Long: `Run the simulation with a live terminal view of the fleet.

The view polls read-only status snapshots and issues fleet capabilities
(add task, emergency stop, send to charge) on keypresses; all simulation
state stays inside the engine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchDT <= 0 {
			return fmt.Errorf("watching fleet: --dt must be positive, got %g", watchDT)
		}

		a, err := app.NewApp(app.ResolveBasePath(), app.Options{Seed: watchSeed})
		if err != nil {
			return fmt.Errorf("watching fleet: %w", err)
		}
		defer func() { _ = a.Close() }()

		p := tea.NewProgram(newWatchModel(a), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("watching fleet: %w", err)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Float64Var(&watchDT, "dt", 0.1, "simulated seconds per frame")
	watchCmd.Flags().Int64Var(&watchSeed, "seed", 0, "random seed for task generation (0 = time-seeded)")
	watchCmd.Flags().Float64Var(&watchCharge, "charge-threshold", 90, "battery threshold for the send-to-charge key")
	rootCmd.AddCommand(watchCmd)
}
