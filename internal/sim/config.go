package sim

import (
	"fmt"

	"github.com/robofleet/amrsim/pkg/models"
	"github.com/spf13/viper"
)

// LoadTunables reads an optional .amrsim.yaml from basePath using Viper and
// overlays it onto the defaults. Missing keys keep their default values; a
// missing file returns the defaults unchanged. The result is validated.
func LoadTunables(basePath string) (Tunables, []models.Position, error) {
	tun := DefaultTunables()
	stations := DefaultStations()

	v := viper.New()
	v.SetConfigName(".amrsim")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("battery.max", tun.MaxBattery)
	v.SetDefault("battery.low", tun.LowBattery)
	v.SetDefault("battery.min_assign", tun.MinAssignBattery)
	v.SetDefault("battery.drain_rate", tun.DrainRate)
	v.SetDefault("charging.rate", tun.ChargeRate)
	v.SetDefault("charging.done_fraction", tun.ChargeDoneFraction)
	v.SetDefault("movement.speed", tun.Speed)
	v.SetDefault("movement.arrival_tolerance", tun.ArrivalTolerance)
	v.SetDefault("grid.width", tun.GridWidth)
	v.SetDefault("grid.height", tun.GridHeight)
	v.SetDefault("grid.spawn_margin", tun.SpawnMargin)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Tunables{}, nil, fmt.Errorf("reading .amrsim.yaml: %w", err)
		}
	}

	tun.MaxBattery = v.GetFloat64("battery.max")
	tun.LowBattery = v.GetFloat64("battery.low")
	tun.MinAssignBattery = v.GetFloat64("battery.min_assign")
	tun.DrainRate = v.GetFloat64("battery.drain_rate")
	tun.ChargeRate = v.GetFloat64("charging.rate")
	tun.ChargeDoneFraction = v.GetFloat64("charging.done_fraction")
	tun.Speed = v.GetFloat64("movement.speed")
	tun.ArrivalTolerance = v.GetFloat64("movement.arrival_tolerance")
	tun.GridWidth = v.GetFloat64("grid.width")
	tun.GridHeight = v.GetFloat64("grid.height")
	tun.SpawnMargin = v.GetFloat64("grid.spawn_margin")

	if v.IsSet("charging.stations") {
		stations = nil
		var raw []struct {
			X float64 `mapstructure:"x"`
			Y float64 `mapstructure:"y"`
		}
		if err := v.UnmarshalKey("charging.stations", &raw); err != nil {
			return Tunables{}, nil, fmt.Errorf("parsing charging.stations: %w", err)
		}
		for _, s := range raw {
			stations = append(stations, models.Position{X: s.X, Y: s.Y})
		}
	}

	if err := tun.Validate(); err != nil {
		return Tunables{}, nil, err
	}
	if len(stations) == 0 {
		return Tunables{}, nil, fmt.Errorf("charging.stations must not be empty")
	}
	for _, s := range stations {
		if s.X < 0 || s.X > tun.GridWidth || s.Y < 0 || s.Y > tun.GridHeight {
			return Tunables{}, nil, fmt.Errorf("charging station (%g, %g) is outside the %gx%g grid",
				s.X, s.Y, tun.GridWidth, tun.GridHeight)
		}
	}

	return tun, stations, nil
}
