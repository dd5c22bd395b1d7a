package sim

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/robofleet/amrsim/pkg/models"
)

// Battery stays inside [0, MaxBattery] under any interleaving of movement
// and charging.
func TestProperty_BatteryStaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRobot("AMR-01", models.Position{X: 25, Y: 15}, DefaultTunables())
		r.Battery = rapid.Float64Range(0, r.MaxBattery).Draw(rt, "battery")

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "charge") {
				r.Charge(rapid.Float64Range(0.01, 5).Draw(rt, "chargeDt"))
			} else {
				waypoint := models.Position{
					X: rapid.Float64Range(0, 50).Draw(rt, "wx"),
					Y: rapid.Float64Range(0, 30).Draw(rt, "wy"),
				}
				r.Status = models.StatusMoving
				r.Advance(waypoint, rapid.Float64Range(0.01, 2).Draw(rt, "dt"))
			}

			if r.Battery < 0 || r.Battery > r.MaxBattery {
				t.Fatalf("battery %g left [0, %g] on step %d", r.Battery, r.MaxBattery, i+1)
			}
		}
	})
}

// A robot with ample battery reaches any waypoint in a bounded number of
// steps and ends exactly on it.
func TestProperty_AdvanceConverges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tun := DefaultTunables()
		start := models.Position{
			X: rapid.Float64Range(0, tun.GridWidth).Draw(rt, "sx"),
			Y: rapid.Float64Range(0, tun.GridHeight).Draw(rt, "sy"),
		}
		waypoint := models.Position{
			X: rapid.Float64Range(0, tun.GridWidth).Draw(rt, "wx"),
			Y: rapid.Float64Range(0, tun.GridHeight).Draw(rt, "wy"),
		}
		dt := rapid.Float64Range(0.05, 1).Draw(rt, "dt")

		r := NewRobot("AMR-01", start, tun)
		r.Status = models.StatusMoving

		// One extra step for the snap once inside the arrival tolerance.
		maxSteps := int(math.Ceil(start.DistanceTo(waypoint)/(r.Speed*dt))) + 1
		arrived := false
		for i := 0; i < maxSteps; i++ {
			if r.Advance(waypoint, dt) {
				arrived = true
				break
			}
		}
		if !arrived {
			t.Fatalf("no arrival within %d steps (dist %g, step %g)",
				maxSteps, start.DistanceTo(waypoint), r.Speed*dt)
		}
		if r.Position != waypoint {
			t.Fatalf("expected exact snap onto %v, got %v", waypoint, r.Position)
		}
	})
}

// Moving drains battery in proportion to distance covered, never more.
func TestProperty_DrainMatchesDistance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tun := DefaultTunables()
		r := NewRobot("AMR-01", models.Position{}, tun)
		r.Status = models.StatusMoving

		waypoint := models.Position{
			X: rapid.Float64Range(1, tun.GridWidth).Draw(rt, "wx"),
			Y: rapid.Float64Range(1, tun.GridHeight).Draw(rt, "wy"),
		}
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			r.Advance(waypoint, 0.5)
		}

		want := tun.MaxBattery - r.DistanceTraveled*tun.DrainRate
		if math.Abs(r.Battery-want) > 1e-9 {
			t.Fatalf("battery %g does not match drain for %g units (want %g)",
				r.Battery, r.DistanceTraveled, want)
		}
	})
}
