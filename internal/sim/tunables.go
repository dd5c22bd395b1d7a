package sim

import (
	"fmt"
	"strings"

	"github.com/robofleet/amrsim/pkg/models"
)

// Tunables exposes every fixed constant of the simulation as a configurable
// value. Zero values are invalid; start from DefaultTunables and override.
type Tunables struct {
	// MaxBattery is the battery capacity of a freshly built robot.
	MaxBattery float64 `yaml:"max_battery"`
	// Speed is the base robot speed in distance units per simulated second.
	Speed float64 `yaml:"speed"`
	// LowBattery is the level at or below which a movement step is refused
	// and the robot is forced into charging.
	LowBattery float64 `yaml:"low_battery"`
	// MinAssignBattery is the scheduler eligibility threshold: a robot must
	// have strictly more battery than this to receive a task.
	MinAssignBattery float64 `yaml:"min_assign_battery"`
	// ChargeDoneFraction of MaxBattery at which charging completes.
	ChargeDoneFraction float64 `yaml:"charge_done_fraction"`
	// ArrivalTolerance is the distance below which a target counts as reached.
	ArrivalTolerance float64 `yaml:"arrival_tolerance"`
	// DrainRate is battery drained per distance unit moved.
	DrainRate float64 `yaml:"drain_rate"`
	// ChargeRate is battery gained per simulated second at a station.
	ChargeRate float64 `yaml:"charge_rate"`
	// GridWidth and GridHeight bound the operating plane.
	GridWidth  float64 `yaml:"grid_width"`
	GridHeight float64 `yaml:"grid_height"`
	// SpawnMargin insets generated task positions from the grid boundary.
	SpawnMargin float64 `yaml:"spawn_margin"`
}

// DefaultTunables returns the stock simulation parameters.
func DefaultTunables() Tunables {
	return Tunables{
		MaxBattery:         100,
		Speed:              2.0,
		LowBattery:         5,
		MinAssignBattery:   20,
		ChargeDoneFraction: 0.9,
		ArrivalTolerance:   0.5,
		DrainRate:          0.1,
		ChargeRate:         20,
		GridWidth:          50,
		GridHeight:         30,
		SpawnMargin:        2,
	}
}

// DefaultStations returns the stock charging station layout.
func DefaultStations() []models.Position {
	return []models.Position{{X: 5, Y: 5}, {X: 45, Y: 5}, {X: 25, Y: 25}}
}

// Validate checks the tunables for invalid values and returns a combined
// error listing every problem found.
func (t Tunables) Validate() error {
	var errs []string

	if t.MaxBattery <= 0 {
		errs = append(errs, fmt.Sprintf("max_battery must be positive, got %g", t.MaxBattery))
	}
	if t.Speed <= 0 {
		errs = append(errs, fmt.Sprintf("speed must be positive, got %g", t.Speed))
	}
	if t.LowBattery < 0 || t.LowBattery >= t.MaxBattery {
		errs = append(errs, fmt.Sprintf("low_battery %g must be in [0, max_battery)", t.LowBattery))
	}
	if t.MinAssignBattery < 0 || t.MinAssignBattery >= t.MaxBattery {
		errs = append(errs, fmt.Sprintf("min_assign_battery %g must be in [0, max_battery)", t.MinAssignBattery))
	}
	if t.ChargeDoneFraction <= 0 || t.ChargeDoneFraction > 1 {
		errs = append(errs, fmt.Sprintf("charge_done_fraction %g must be in (0, 1]", t.ChargeDoneFraction))
	}
	if t.ArrivalTolerance <= 0 {
		errs = append(errs, fmt.Sprintf("arrival_tolerance must be positive, got %g", t.ArrivalTolerance))
	}
	if t.DrainRate < 0 {
		errs = append(errs, fmt.Sprintf("drain_rate must be non-negative, got %g", t.DrainRate))
	}
	if t.ChargeRate <= 0 {
		errs = append(errs, fmt.Sprintf("charge_rate must be positive, got %g", t.ChargeRate))
	}
	if t.GridWidth <= 0 || t.GridHeight <= 0 {
		errs = append(errs, fmt.Sprintf("grid dimensions must be positive, got %gx%g", t.GridWidth, t.GridHeight))
	}
	if t.SpawnMargin < 0 || t.SpawnMargin*2 >= t.GridWidth || t.SpawnMargin*2 >= t.GridHeight {
		errs = append(errs, fmt.Sprintf("spawn_margin %g must fit inside the grid", t.SpawnMargin))
	}

	if len(errs) > 0 {
		return fmt.Errorf("tunables validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
