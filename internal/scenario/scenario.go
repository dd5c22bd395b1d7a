// Package scenario handles YAML fleet scenario files: the robot layout,
// charging station overrides, and seed tasks a simulation starts from.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/robofleet/amrsim/pkg/models"
	"gopkg.in/yaml.v3"
)

// RobotSpec describes one robot in a scenario file.
type RobotSpec struct {
	ID       string          `yaml:"id"`
	Position models.Position `yaml:"position"`
}

// Scenario is the top-level structure of a scenario file.
type Scenario struct {
	Version string      `yaml:"version"`
	Robots  []RobotSpec `yaml:"robots"`
	// Stations overrides the configured charging stations when non-empty.
	Stations []models.Position `yaml:"stations,omitempty"`
	// Tasks are explicit seed tasks queued before the first tick.
	Tasks []models.Task `yaml:"tasks,omitempty"`
	// SeedTasks is the number of additional random tasks generated at startup.
	SeedTasks int `yaml:"seed_tasks"`
}

// Default returns the stock scenario: six robots at the standard layout and
// eight randomly generated startup tasks.
func Default() Scenario {
	return Scenario{
		Version: "1.0",
		Robots: []RobotSpec{
			{ID: "AMR-01", Position: models.Position{X: 10, Y: 10}},
			{ID: "AMR-02", Position: models.Position{X: 20, Y: 15}},
			{ID: "AMR-03", Position: models.Position{X: 30, Y: 8}},
			{ID: "AMR-04", Position: models.Position{X: 40, Y: 20}},
			{ID: "AMR-05", Position: models.Position{X: 15, Y: 25}},
			{ID: "AMR-06", Position: models.Position{X: 35, Y: 12}},
		},
		SeedTasks: 8,
	}
}

// Load reads and validates a scenario file. A missing file is an error;
// callers that want the default scenario should check for it explicitly.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("loading scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("loading scenario: parsing YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("loading scenario: %w", err)
	}
	return sc, nil
}

// Save writes the scenario to path as YAML.
func (s Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("saving scenario: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("saving scenario: writing file: %w", err)
	}
	return nil
}

// Validate checks the scenario for structural problems: empty or duplicate
// robot IDs, duplicate task IDs, pre-assigned tasks, and a negative seed
// task count.
func (s Scenario) Validate() error {
	var errs []string

	if len(s.Robots) == 0 {
		errs = append(errs, "at least one robot is required")
	}
	robotIDs := make(map[string]struct{}, len(s.Robots))
	for i, r := range s.Robots {
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("robot %d has an empty ID", i))
			continue
		}
		if _, dup := robotIDs[r.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate robot ID %s", r.ID))
		}
		robotIDs[r.ID] = struct{}{}
	}

	taskIDs := make(map[string]struct{}, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("task %d has an empty ID", i))
			continue
		}
		if _, dup := taskIDs[t.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate task ID %s", t.ID))
		}
		taskIDs[t.ID] = struct{}{}
		if t.AssignedRobot != "" {
			errs = append(errs, fmt.Sprintf("task %s must not be pre-assigned", t.ID))
		}
	}

	if s.SeedTasks < 0 {
		errs = append(errs, fmt.Sprintf("seed_tasks must be non-negative, got %d", s.SeedTasks))
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
