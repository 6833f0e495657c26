package projectile

import (
	"io"
	"log/slog"
	"testing"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// fixture wires a Simulation to a flat 48x24 tile map with strict
// invariant checking, a real spatial index and a drainable effect queue.
type fixture struct {
	sim     *Simulation
	arena   *world.Arena
	index   *world.RTreeIndex
	terrain *world.Heightmap
	queue   *effects.Queue
	arsenal *stats.Table
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	f := &fixture{
		arena:   world.NewArena(),
		terrain: world.NewHeightmap(48, 24),
		queue:   effects.NewQueue(),
		arsenal: stats.Default(),
	}
	f.index = world.NewRTreeIndex(f.arena)

	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Strict = true
	opts.Effects = f.queue
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sim, err := New(f.arena, f.index, f.terrain, opts)
	if err != nil {
		t.Fatal(err)
	}
	f.sim = sim
	return f
}

func (f *fixture) addObject(player int, kind world.Kind, x, y int32) world.Handle {
	obj := &world.Object{
		Kind:         kind,
		Player:       player,
		Pos:          gmath.Vector3{X: x, Y: y},
		PrevPos:      gmath.Vector3{X: x, Y: y},
		HP:           400,
		OrigHP:       400,
		Damageable:   true,
		HitRadius:    48,
		Footprint:    gmath.Vector2{X: constants.TileUnits / 2, Y: constants.TileUnits / 2},
		Height:       40,
		MuzzleHeight: 32,
		Power:        100,
		Points:       100,
	}
	h := f.arena.Add(obj)
	f.index.Insert(obj)
	return h
}

func (f *fixture) addUnit(player int, x, y int32) world.Handle {
	return f.addObject(player, world.KindUnit, x, y)
}

func (f *fixture) addStructure(player int, x, y int32) world.Handle {
	return f.addObject(player, world.KindStructure, x, y)
}

func (f *fixture) obj(t *testing.T, h world.Handle) *world.Object {
	t.Helper()
	obj := f.arena.Lookup(h)
	if obj == nil {
		t.Fatal("handle went stale unexpectedly")
	}
	return obj
}

func (f *fixture) fire(t *testing.T, weapon string, attacker, target world.Handle) *Projectile {
	t.Helper()
	p, err := f.sim.Fire(FireRequest{
		Weapon:   f.arsenal.Get(weapon),
		Player:   f.obj(t, attacker).Player,
		Attacker: attacker,
		Target:   target,
	})
	if err != nil {
		t.Fatalf("fire %s: %v", weapon, err)
	}
	return p
}

func (f *fixture) fireAt(t *testing.T, weapon string, attacker world.Handle, pos gmath.Vector3) *Projectile {
	t.Helper()
	req := FireRequest{
		Weapon:    f.arsenal.Get(weapon),
		Attacker:  attacker,
		TargetPos: pos,
	}
	if obj := f.arena.Lookup(attacker); obj != nil {
		req.Player = obj.Player
	}
	p, err := f.sim.Fire(req)
	if err != nil {
		t.Fatalf("fire %s at %v: %v", weapon, pos, err)
	}
	return p
}

// runUntil ticks the simulation until cond holds or maxUpdates passes.
func (f *fixture) runUntil(maxUpdates int, dt uint32, cond func() bool) bool {
	for i := 0; i < maxUpdates; i++ {
		f.sim.Update(dt)
		if cond() {
			return true
		}
	}
	return cond()
}

func (f *fixture) run(updates int, dt uint32) {
	for i := 0; i < updates; i++ {
		f.sim.Update(dt)
	}
}

// runDrain ticks the simulation, draining the effect queue after every
// update, and returns the accumulated kind counts.
func (f *fixture) runDrain(updates int, dt uint32) map[effects.Kind]int {
	got := make(map[effects.Kind]int)
	for i := 0; i < updates; i++ {
		f.sim.Update(dt)
		for _, ev := range f.queue.Drain() {
			got[ev.Kind]++
		}
	}
	return got
}

// drainKinds collects the kinds of all queued effects.
func (f *fixture) drainKinds() map[effects.Kind]int {
	got := make(map[effects.Kind]int)
	for _, ev := range f.queue.Drain() {
		got[ev.Kind]++
	}
	return got
}
