// Package internal provides the App struct that wires configuration, the
// fleet scenario, observability, and the simulation engine together for the
// CLI layer.
package internal

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/robofleet/amrsim/internal/observability"
	"github.com/robofleet/amrsim/internal/scenario"
	"github.com/robofleet/amrsim/internal/sim"
)

// ScenarioFileName is the fleet scenario file looked up under the base path.
const ScenarioFileName = "fleet.yaml"

// App holds all wired dependencies for a simulation session.
type App struct {
	BasePath string

	Tunables sim.Tunables
	Scenario scenario.Scenario
	Fleet    *sim.FleetManager

	// Observability; EventLog may be nil when no log path was requested.
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// Options controls App construction.
type Options struct {
	// Seed for the task generation random source; time-seeded when zero.
	Seed int64
	// EventLogPath enables JSONL event logging when non-empty.
	EventLogPath string
	// WebhookURL enables alert notification when non-empty.
	WebhookURL string
}

// NewApp loads configuration and the fleet scenario from basePath and
// builds a ready-to-tick FleetManager. A missing scenario file falls back
// to the default six-robot fleet.
func NewApp(basePath string, opts Options) (*App, error) {
	app := &App{BasePath: basePath}

	tun, stations, err := sim.LoadTunables(basePath)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	app.Tunables = tun

	scenarioPath := filepath.Join(basePath, ScenarioFileName)
	if _, statErr := os.Stat(scenarioPath); statErr == nil {
		app.Scenario, err = scenario.Load(scenarioPath)
		if err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
	} else {
		app.Scenario = scenario.Default()
	}
	if len(app.Scenario.Stations) > 0 {
		stations = app.Scenario.Stations
	}

	if opts.EventLogPath != "" {
		app.EventLog, err = observability.NewJSONLEventLog(opts.EventLogPath)
		if err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	app.AlertEngine = observability.NewAlertEngine(observability.DefaultAlertThresholds())
	if opts.WebhookURL != "" {
		app.Notifier = observability.NewWebhookNotifier(opts.WebhookURL)
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	var rec sim.Recorder
	if app.EventLog != nil {
		rec = observability.NewEventRecorder(app.EventLog)
	}

	app.Fleet, err = sim.NewFleetManager(sim.FleetConfig{
		Tunables: tun,
		Stations: stations,
		Rand:     rng,
		Recorder: rec,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	for _, spec := range app.Scenario.Robots {
		if err := app.Fleet.AddRobot(sim.NewRobot(spec.ID, spec.Position, tun)); err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
	}
	for i := range app.Scenario.Tasks {
		task := app.Scenario.Tasks[i]
		if err := app.Fleet.AddTask(&task); err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
	}
	for i := 0; i < app.Scenario.SeedTasks; i++ {
		if err := app.Fleet.AddTask(app.Fleet.GenerateTask()); err != nil {
			return nil, fmt.Errorf("initializing app: seeding tasks: %w", err)
		}
	}

	return app, nil
}

// Close releases resources held by the App, such as the event log handle.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory configuration and scenario files
// are read from: AMRSIM_HOME when set, otherwise the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("AMRSIM_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
