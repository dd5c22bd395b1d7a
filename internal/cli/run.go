package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/robofleet/amrsim/internal"
	"github.com/robofleet/amrsim/pkg/models"
)

var (
	runDuration   float64
	runDT         float64
	runSeed       int64
	runReportEach float64
	runTaskEach   float64
	runEventLog   string
	runMetricsOut string
	runWebhook    string
	runSpeed      float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless simulation",
	Long: `Run the fleet simulation without a UI for a fixed simulated duration.

Configuration is read from .amrsim.yaml and the fleet layout from fleet.yaml
in the base path (AMRSIM_HOME or the working directory); both fall back to
defaults when absent. Status lines are printed at a fixed simulated
interval, and run metrics can be exported as JSON at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runDT <= 0 {
			return fmt.Errorf("running simulation: --dt must be positive, got %g", runDT)
		}
		if runDuration <= 0 {
			return fmt.Errorf("running simulation: --duration must be positive, got %g", runDuration)
		}

		a, err := app.NewApp(app.ResolveBasePath(), app.Options{
			Seed:         runSeed,
			EventLogPath: runEventLog,
			WebhookURL:   runWebhook,
		})
		if err != nil {
			return fmt.Errorf("running simulation: %w", err)
		}
		defer func() { _ = a.Close() }()

		if runSpeed != 1.0 {
			if err := a.Fleet.SetGlobalSpeed(runSpeed); err != nil {
				return fmt.Errorf("running simulation: %w", err)
			}
		}

		nextReport := runReportEach
		nextTask := runTaskEach
		for t := 0.0; t < runDuration; t += runDT {
			if err := a.Fleet.Tick(runDT); err != nil {
				return fmt.Errorf("running simulation: %w", err)
			}

			if runTaskEach > 0 && a.Fleet.SimTime() >= nextTask {
				if err := a.Fleet.AddTask(a.Fleet.GenerateTask()); err != nil {
					return fmt.Errorf("running simulation: generating task: %w", err)
				}
				nextTask += runTaskEach
			}

			if runReportEach > 0 && a.Fleet.SimTime() >= nextReport {
				printStatusLine(a.Fleet.SimTime(), a.Fleet.Status())
				nextReport += runReportEach
			}
		}

		status := a.Fleet.Status()
		fmt.Println()
		fmt.Print(renderStatus(status))

		if alerts := a.AlertEngine.Evaluate(status); len(alerts) > 0 {
			fmt.Println("\nAlerts:")
			for _, al := range alerts {
				fmt.Printf("  [%s] %s: %s\n", al.Severity, al.Condition, al.Message)
			}
			if a.Notifier != nil {
				if err := a.Notifier.Notify(alerts); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: notifying alerts: %v\n", err)
				}
			}
		}

		if runMetricsOut != "" && a.MetricsCalc != nil {
			metrics, err := a.MetricsCalc.Calculate(0)
			if err != nil {
				return fmt.Errorf("running simulation: calculating metrics: %w", err)
			}
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("running simulation: formatting metrics: %w", err)
			}
			if err := os.WriteFile(runMetricsOut, data, 0o600); err != nil {
				return fmt.Errorf("running simulation: writing metrics: %w", err)
			}
			fmt.Printf("\nMetrics written to %s\n", runMetricsOut)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().Float64Var(&runDuration, "duration", 300, "simulated seconds to run")
	runCmd.Flags().Float64Var(&runDT, "dt", 0.1, "simulated seconds per tick")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed for task generation (0 = time-seeded)")
	runCmd.Flags().Float64Var(&runReportEach, "report-every", 30, "simulated seconds between status lines (0 = none)")
	runCmd.Flags().Float64Var(&runTaskEach, "task-every", 10, "simulated seconds between auto-generated tasks (0 = none)")
	runCmd.Flags().StringVar(&runEventLog, "log", "", "write simulation events to this JSONL file")
	runCmd.Flags().StringVar(&runMetricsOut, "metrics-out", "", "write run metrics JSON to this file (requires --log)")
	runCmd.Flags().StringVar(&runWebhook, "webhook", "", "post final alerts to this webhook URL")
	runCmd.Flags().Float64Var(&runSpeed, "speed", 1.0, "global speed multiplier")
	rootCmd.AddCommand(runCmd)
}

// printStatusLine prints a one-line progress summary.
func printStatusLine(simTime float64, status models.FleetStatus) {
	fmt.Printf("t=%7.1fs  pending=%-3d completed=%-4d efficiency=%5.1f%%  avg_battery=%5.1f\n",
		simTime, status.PendingTasks, status.TasksCompleted, status.Efficiency, status.AverageBattery)
}
