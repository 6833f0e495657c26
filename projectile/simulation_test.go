package projectile

import (
	"errors"
	"testing"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/world"
)

// countingStats records every sink call for assertions.
type countingStats struct {
	onTarget, offTarget int
	damage              uint32
	kills               int
}

func (c *countingStats) ShotOnTarget(int)  { c.onTarget++ }
func (c *countingStats) ShotOffTarget(int) { c.offTarget++ }
func (c *countingStats) RecordDamage(_, _ int, amount uint32) {
	c.damage += amount
}
func (c *countingStats) RecordKill(int, int) { c.kills++ }

// hitCounter wraps the default unit handler and counts applications per
// victim, to verify single-hit guarantees.
func hitCounter(counts map[world.Handle]int) world.DamageFunc {
	return func(obj *world.Object, d world.Damage) int32 {
		counts[obj.Handle]++
		return world.UnitDamage(obj, d)
	}
}

func TestFireValidation(t *testing.T) {
	f := newFixture(t, Options{})

	if _, err := f.sim.Fire(FireRequest{}); !errors.Is(err, ErrNilStats) {
		t.Errorf("nil weapon: err = %v, want ErrNilStats", err)
	}
	if _, err := f.sim.Fire(FireRequest{
		Weapon: f.arsenal.Get("cannon"),
		Player: constants.MaxPlayers,
	}); !errors.Is(err, ErrBadPlayer) {
		t.Errorf("player out of range: err = %v, want ErrBadPlayer", err)
	}
	if _, err := f.sim.Fire(FireRequest{
		Weapon: f.arsenal.Get("cannon"),
	}); !errors.Is(err, ErrNoOrigin) {
		t.Errorf("no attacker, target or position: err = %v, want ErrNoOrigin", err)
	}
}

// TestDirectShotLifecycle walks a cannon round through its whole life:
// in flight, impact on the target, deactivation and reclamation.
func TestDirectShotLifecycle(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2000, 1500)

	p := f.fire(t, "cannon", a, b)
	if p.State() != InFlight {
		t.Fatalf("state = %v right after firing, want InFlight", p.State())
	}
	if got := f.sim.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	victim := f.obj(t, b)
	kinds := make(map[effects.Kind]int)
	hit := f.runUntil(30, 100, func() bool {
		for k, n := range f.drainKinds() {
			kinds[k] += n
		}
		return victim.HP < victim.OrigHP
	})
	if !hit {
		t.Fatal("cannon round never reached its target")
	}
	if victim.LastHitTime == 0 {
		t.Error("victim LastHitTime not stamped")
	}
	if p.State() != Inactive || p.Died() == 0 {
		t.Errorf("state = %v, died = %d after impact, want Inactive with a death time", p.State(), p.Died())
	}

	// One grace tick for interpolation, then the slot is reclaimed.
	f.run(2, 100)
	if got := f.sim.Len(); got != 0 {
		t.Errorf("Len() = %d after reclamation, want 0", got)
	}

	for k, n := range f.drainKinds() {
		kinds[k] += n
	}
	for _, want := range []effects.Kind{effects.ShotFired, effects.Explosion, effects.AudioDetach} {
		if kinds[want] == 0 {
			t.Errorf("no %d effect seen over the projectile's life", want)
		}
	}
}

// TestExpectedDamageSettled checks the forward damage registration: the
// estimate is booked on the victim at fire time and fully released once
// the shot resolves.
func TestExpectedDamageSettled(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2000, 1500)

	f.fire(t, "cannon", a, b)
	victim := f.obj(t, b)
	if victim.ExpectedDamage <= 0 {
		t.Fatalf("ExpectedDamage = %d after firing, want positive", victim.ExpectedDamage)
	}

	if !f.runUntil(30, 100, func() bool { return victim.HP < victim.OrigHP }) {
		t.Fatal("round never landed")
	}
	if victim.ExpectedDamage != 0 {
		t.Errorf("ExpectedDamage = %d after impact, want 0", victim.ExpectedDamage)
	}
}

// TestMissReportsFlash fires at bare ground; the round flies its path,
// ploughs into the terrain and reports a miss effect, never damage.
func TestMissReportsFlash(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)

	p := f.fireAt(t, "cannon", a, gmath.Vector3{X: 2000, Y: 1500})
	kinds := f.runDrain(25, 100)

	if kinds[effects.MissFlash] == 0 {
		t.Error("no miss flash for a shot into the ground")
	}
	if kinds[effects.Explosion] != 0 {
		t.Error("explosion reported with nothing to hit")
	}
	if p.Died() == 0 {
		t.Error("missed round still alive after flying out its range")
	}
}

// TestIndirectLandsNearAim lobs a mortar shell at a map point and
// checks the landing spot against the aim point.
func TestIndirectLandsNearAim(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	aim := gmath.Vector3{X: 3000, Y: 1500}

	f.fireAt(t, "mortar", a, aim)

	var landed []gmath.Vector3
	f.runUntil(200, 100, func() bool {
		for _, ev := range f.queue.Drain() {
			if ev.Kind == effects.MissFlash {
				landed = append(landed, ev.Pos)
			}
		}
		return len(landed) > 0
	})
	if len(landed) == 0 {
		t.Fatal("mortar shell never landed")
	}
	d := landed[0].Sub(aim).XY().Hypot()
	if d > 300 {
		t.Errorf("shell landed %d units from the aim point at %v", d, landed[0])
	}
}

// TestLasSatDelay holds a multiplayer laser satellite strike for the
// announcement window, then lets it resolve.
func TestLasSatDelay(t *testing.T) {
	f := newFixture(t, Options{Multiplayer: true})
	target := gmath.Vector3{X: 2048, Y: 1536}
	e := f.addUnit(1, 2248, 1536)

	p, err := f.sim.Fire(FireRequest{Weapon: f.arsenal.Get("lassat"), TargetPos: target})
	if err != nil {
		t.Fatal(err)
	}

	bystander := f.obj(t, e)
	f.run(4, 500) // 2 s, inside the announcement window
	if p.State() != InFlight {
		t.Fatalf("state = %v during the delay, want InFlight", p.State())
	}
	if bystander.LastHitTime != 0 {
		t.Fatal("strike resolved before the delay elapsed")
	}

	kinds := f.runDrain(5, 500)
	if bystander.LastHitTime == 0 {
		t.Error("strike never resolved after the delay")
	}
	if kinds[effects.SatLaser] == 0 {
		t.Error("no satellite beam effect")
	}
}

func TestLasSatImmediateOffline(t *testing.T) {
	f := newFixture(t, Options{})
	e := f.addUnit(1, 2248, 1536)

	_, err := f.sim.Fire(FireRequest{Weapon: f.arsenal.Get("lassat"), TargetPos: gmath.Vector3{X: 2048, Y: 1536}})
	if err != nil {
		t.Fatal(err)
	}
	f.run(1, 500)
	if f.obj(t, e).LastHitTime == 0 {
		t.Error("offline strike should resolve on the first tick")
	}
}

// TestPenetrationContinues fires a penetrating rail round through the
// first unit in its path and into a second one behind it. Each victim
// is damaged exactly once.
func TestPenetrationContinues(t *testing.T) {
	f := newFixture(t, Options{})
	counts := make(map[world.Handle]int)
	f.sim.SetDamageFunc(world.KindUnit, hitCounter(counts))

	a := f.addUnit(0, 400, 1500)
	b := f.addUnit(1, 1200, 1500)
	c := f.addUnit(1, 1400, 1500)
	f.obj(t, c).Height = 100 // tall enough to catch the through-shot

	f.fire(t, "rail", a, b)
	f.runUntil(40, 50, func() bool { return counts[c] > 0 })

	if counts[b] != 1 {
		t.Errorf("first victim hit %d times, want exactly 1", counts[b])
	}
	if counts[c] != 1 {
		t.Errorf("second victim hit %d times, want exactly 1", counts[c])
	}
}

// TestSplashSparesPrimaryVictim drops a high-yield strike directly on a
// unit: the direct hit consumes the victim's share, and the blast sweep
// must not hit it a second time while still reaching bystanders.
func TestSplashSparesPrimaryVictim(t *testing.T) {
	f := newFixture(t, Options{})
	counts := make(map[world.Handle]int)
	f.sim.SetDamageFunc(world.KindUnit, hitCounter(counts))

	b := f.addUnit(1, 2048, 1536)
	e := f.addUnit(1, 2348, 1536)

	_, err := f.sim.Fire(FireRequest{
		Weapon:    f.arsenal.Get("lassat"),
		Target:    b,
		TargetPos: f.obj(t, b).Pos,
	})
	if err != nil {
		t.Fatal(err)
	}
	f.run(2, 500)

	if counts[b] != 1 {
		t.Errorf("primary victim hit %d times, want exactly 1", counts[b])
	}
	if counts[e] != 1 {
		t.Errorf("bystander hit %d times, want exactly 1", counts[e])
	}
}

// TestFlamerBurn lands two flame rounds on one unit and watches the
// burn patch: the ground ignites, the victim takes damage every tick,
// and the overlapping patches never exceed a single per-second rate.
func TestFlamerBurn(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 1300, 1500)

	f.fire(t, "flamer", a, b)
	f.fire(t, "flamer", a, b)

	victim := f.obj(t, b)
	if !f.runUntil(15, 100, func() bool { return victim.HP < victim.OrigHP }) {
		t.Fatal("flame rounds never landed")
	}
	if !f.terrain.OnFire(1300, 1500, f.sim.Now()) {
		t.Error("impact tile not set on fire")
	}

	f.run(3, 100)
	start := victim.HP
	f.run(20, 100)
	drop := start - victim.HP

	// 40 base at the flamer-vs-light-wheeled modifiers is 52/s, which is
	// 5 per 100 ms tick. Two patches must burn no faster than one.
	if want := uint32(100); drop != want {
		t.Errorf("burn damage over 2 s = %d, want %d", drop, want)
	}
}

// TestEMPStun checks both stun durations: a direct EMP hit disables for
// the full time, the surrounding pulse for half.
func TestEMPStun(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 1600, 1500)
	e := f.addUnit(1, 1900, 1500) // inside the pulse, outside the blast

	f.fire(t, "emp-cannon", a, b)
	victim, bystander := f.obj(t, b), f.obj(t, e)
	if !f.runUntil(30, 50, func() bool { return victim.StunUntil != 0 }) {
		t.Fatal("EMP round never landed")
	}

	if bystander.StunUntil == 0 {
		t.Fatal("bystander not stunned by the pulse")
	}
	if got := victim.StunUntil - bystander.StunUntil; got != constants.EMPDisableTime/2 {
		t.Errorf("direct stun leads pulse stun by %d, want %d", got, constants.EMPDisableTime/2)
	}
}

// TestElectronicCapture runs a nexus link attack until the target's
// resistance collapses and it changes hands.
func TestElectronicCapture(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addStructure(0, 1000, 1500)
	b := f.addStructure(1, 1800, 1500)

	attacker := f.obj(t, a)
	attacker.HasOrder = true
	attacker.ActionTarget = b
	victim := f.obj(t, b)
	victim.Resistance = 5
	victim.OrigResistance = 5

	f.fire(t, "nexus", a, b)
	kinds := f.runDrain(30, 50)

	if victim.Player != 0 {
		t.Fatalf("victim owned by player %d, want captured by 0", victim.Player)
	}
	if victim.Resistance != 5 {
		t.Errorf("Resistance = %d after capture, want restored to 5", victim.Resistance)
	}
	if attacker.HasOrder || !attacker.ActionTarget.Zero() {
		t.Error("attacker kept its orders after the capture")
	}
	if kinds[effects.Capture] == 0 {
		t.Error("no capture effect")
	}
}

// TestHomingTracksMovingTarget fires a homing missile at a unit moving
// across the line of fire; the per-tick re-aim must still connect.
func TestHomingTracksMovingTarget(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2200, 1500)

	runner := f.obj(t, b)
	runner.Moving = true
	runner.Speed = 100
	runner.Heading = gmath.Deg(90)

	f.fire(t, "lancer", a, b)

	hit := false
	for i := 0; i < 40 && !hit; i++ {
		runner.PrevPos = runner.Pos
		runner.Pos.Y += 5 // 100 units/s at 50 ms ticks
		f.index.Update(runner)
		f.sim.Update(50)
		hit = runner.HP < runner.OrigHP
	}
	if !hit {
		t.Fatal("homing missile lost a target moving at walking pace")
	}
}

// TestKillCredit destroys a weakened unit and checks the experience and
// kill bookkeeping on the firer and its commander.
func TestKillCredit(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	cmd := f.addUnit(0, 800, 1500)
	b := f.addUnit(1, 2000, 1500)

	attacker := f.obj(t, a)
	attacker.Commander = cmd
	victim := f.obj(t, b)
	victim.HP = 10

	f.fire(t, "cannon", a, b)
	if !f.runUntil(30, 100, func() bool { return !victim.Alive() }) {
		t.Fatal("weakened target survived a cannon hit")
	}

	// 10 of 400 original hit points, at 100% experience gain.
	wantExp := uint32(world.RelativeScale * 10 / 400)
	if attacker.Experience != wantExp {
		t.Errorf("attacker experience = %d, want %d", attacker.Experience, wantExp)
	}
	if attacker.Kills != 1 {
		t.Errorf("attacker kills = %d, want 1", attacker.Kills)
	}
	commander := f.obj(t, cmd)
	if commander.Experience != wantExp || commander.Kills != 1 {
		t.Errorf("commander credited %d exp / %d kills, want %d / 1",
			commander.Experience, commander.Kills, wantExp)
	}
}

// TestScoreSink checks the multiplayer score plumbing around one lethal
// exchange.
func TestScoreSink(t *testing.T) {
	score := &countingStats{}
	f := newFixture(t, Options{Multiplayer: true, Stats: score})
	a := f.addUnit(0, 1000, 1500)
	b := f.addUnit(1, 2000, 1500)
	f.obj(t, b).HP = 10

	f.fire(t, "cannon", a, b)
	if score.onTarget != 1 {
		t.Errorf("onTarget = %d after firing, want 1", score.onTarget)
	}

	f.runUntil(30, 100, func() bool { return score.kills > 0 })
	if score.kills != 1 {
		t.Errorf("kills = %d, want 1", score.kills)
	}
	if score.damage == 0 {
		t.Error("no damage recorded for a connecting hit")
	}
}

// TestCursorEnumeration checks the between-ticks enumeration protocol
// and id lookup.
func TestCursorEnumeration(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)

	want := make(map[uint32]bool)
	for i := int32(0); i < 3; i++ {
		p := f.fireAt(t, "mortar", a, gmath.Vector3{X: 2500 + 100*i, Y: 1500})
		want[p.ID()] = true
	}

	seen := 0
	for p := f.sim.First(); p != nil; p = f.sim.Next() {
		if !want[p.ID()] {
			t.Errorf("cursor returned unknown id %#x", p.ID())
		}
		if f.sim.Lookup(p.ID()) != p {
			t.Errorf("Lookup(%#x) disagrees with the cursor", p.ID())
		}
		seen++
	}
	if seen != 3 {
		t.Errorf("cursor enumerated %d projectiles, want 3", seen)
	}
	if f.sim.Lookup(constants.TrackerIDBase+999) != nil {
		t.Error("Lookup of an unknown id returned a projectile")
	}
}

// TestDeterministicReplay runs the same battle twice from the same seed
// and compares the full projectile state and the damage done.
func TestDeterministicReplay(t *testing.T) {
	type snapshot struct {
		pos   gmath.Vector3
		state State
		died  uint32
	}

	play := func() (map[uint32]snapshot, uint32) {
		f := newFixture(t, Options{Seed: 7})
		a := f.addUnit(0, 1000, 1500)
		b := f.addUnit(1, 2200, 1500)

		f.fireAt(t, "mortar", a, gmath.Vector3{X: 2600, Y: 1600})
		f.fire(t, "cannon", a, b)
		f.fire(t, "archangel", a, b)
		f.run(40, 50)

		out := make(map[uint32]snapshot)
		for p := f.sim.First(); p != nil; p = f.sim.Next() {
			out[p.ID()] = snapshot{pos: p.Position(), state: p.State(), died: p.Died()}
		}
		return out, f.obj(t, b).HP
	}

	first, hp1 := play()
	second, hp2 := play()

	if hp1 != hp2 {
		t.Errorf("victim HP diverged: %d vs %d", hp1, hp2)
	}
	if len(first) != len(second) {
		t.Fatalf("projectile count diverged: %d vs %d", len(first), len(second))
	}
	for id, s1 := range first {
		if s2, ok := second[id]; !ok || s1 != s2 {
			t.Errorf("projectile %#x diverged: %+v vs %+v", id, s1, s2)
		}
	}
}

// TestResetDetachesAudio clears a simulation mid-flight; attached audio
// must be released for every live projectile.
func TestResetDetachesAudio(t *testing.T) {
	f := newFixture(t, Options{})
	a := f.addUnit(0, 1000, 1500)
	f.fireAt(t, "howitzer", a, gmath.Vector3{X: 3000, Y: 1500})
	f.run(2, 100)

	f.sim.Reset()
	if got := f.sim.Len(); got != 0 {
		t.Errorf("Len() = %d after Reset, want 0", got)
	}
	if f.sim.Now() != 0 {
		t.Errorf("Now() = %d after Reset, want 0", f.sim.Now())
	}
	if kinds := f.drainKinds(); kinds[effects.AudioDetach] == 0 {
		t.Error("no audio detach on Reset")
	}
}
