package projectile

import (
	"testing"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/world"
)

// TestTrailCadence checks the in-flight trail: one smoke puff per
// 32-tick boundary, regardless of how coarse the update steps are.
func TestTrailCadence(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)

	f.fireAt(t, "mortar", a, gmath.Vector3{X: 3000, Y: 1500})

	var times []uint32
	for i := 0; i < 10; i++ {
		f.sim.Update(100)
		for _, ev := range f.queue.Drain() {
			if ev.Kind == effects.SmokeTrail {
				times = append(times, ev.Time)
			}
		}
	}

	if len(times) < 25 {
		t.Fatalf("%d trail events over 1 s of flight, want one per 32 ticks", len(times))
	}
	for i, at := range times {
		if at%constants.TrailInterval != 0 {
			t.Errorf("trail event at t=%d, want a multiple of %d", at, constants.TrailInterval)
		}
		if i > 0 && at != times[i-1]+constants.TrailInterval {
			t.Errorf("trail gap %d..%d, want %d apart", times[i-1], at, constants.TrailInterval)
		}
	}
}

// TestHomingIndirectClimbs flies a top-attack missile at a distant
// target: it must climb well clear of the ground on the way and still
// come down on the target.
func TestHomingIndirectClimbs(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2800, 1500)

	p := f.fire(t, "archangel", a, b)
	victim := f.obj(t, b)

	var peak int32
	hit := f.runUntil(120, 50, func() bool {
		if p.State() == InFlight {
			peak = gmath.Max(peak, p.Position().Z)
		}
		return victim.HP < victim.OrigHP
	})
	if !hit {
		t.Fatal("top-attack missile never reached its target")
	}
	if peak < constants.HomingHeightMin/2 {
		t.Errorf("flight peaked at z=%d, want a real climb above %d", peak, constants.HomingHeightMin/2)
	}
}

// TestCounterBatteryHook verifies that indirect fire, and only indirect
// fire, is reported to the counter-battery observer at fire time.
func TestCounterBatteryHook(t *testing.T) {
	var calls []world.Handle
	f := newFixture(t, Options{
		CounterBattery: func(attacker, _ world.Handle) {
			calls = append(calls, attacker)
		},
	})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2200, 1500)

	f.fire(t, "cannon", a, b)
	if len(calls) != 0 {
		t.Fatalf("direct fire reported to counter-battery %d times, want 0", len(calls))
	}

	f.fire(t, "mortar", a, b)
	if len(calls) != 1 || calls[0] != a {
		t.Fatalf("indirect fire calls = %v, want exactly the mortar attacker", calls)
	}
}
