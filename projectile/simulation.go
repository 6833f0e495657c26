// Package projectile implements the munition core of the simulation:
// firing, per-tick flight and collision, impact resolution, area and
// periodic damage, and the experience accounting that follows from it.
//
// Everything runs single-threaded inside Update. The only structure
// built for concurrency is the effects queue, so a presentation thread
// can drain notifications without stalling the tick.
package projectile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/world"
)

// Fire-time validation failures. Everything after a successful Fire is
// handled internally; in-flight anomalies degrade to misses, never errors.
var (
	ErrNilStats  = errors.New("projectile: nil weapon stats")
	ErrBadPlayer = errors.New("projectile: player index out of range")
	ErrNoOrigin  = errors.New("projectile: attacker handle is stale and no target point given")
)

// EffectSink receives fire-and-forget effect notifications. The
// effects.Queue satisfies it; a nil sink is replaced with a discard.
type EffectSink interface {
	Post(effects.Event)
}

type nopEffects struct{}

func (nopEffects) Post(effects.Event) {}

// StatsSink receives multiplayer score bookkeeping. All methods are
// fire-and-forget; the default implementation discards.
type StatsSink interface {
	ShotOnTarget(player int)
	ShotOffTarget(player int)
	RecordDamage(attacker, victim int, amount uint32)
	RecordKill(attacker, victim int)
}

type nopStats struct{}

func (nopStats) ShotOnTarget(int)                {}
func (nopStats) ShotOffTarget(int)               {}
func (nopStats) RecordDamage(int, int, uint32)   {}
func (nopStats) RecordKill(int, int)             {}

// Options configures a Simulation beyond its required collaborators.
type Options struct {
	// Seed initializes the deterministic generator. Multiplayer peers
	// must agree on it.
	Seed uint64

	Logger *slog.Logger

	// Multiplayer enables the behaviors that only exist for synced
	// games: quality-scaled experience, stats recording, las-sat delay.
	Multiplayer bool

	// Strict promotes invariant failures from logged no-ops to panics.
	// Tests run strict.
	Strict bool

	Effects EffectSink
	Stats   StatsSink

	Alliances *world.Alliances

	// CounterBattery, when set, is notified of every indirect shot at
	// fire time so sensor structures can return fire.
	CounterBattery func(attacker, target world.Handle)
}

// Simulation is one independent projectile simulation context: registry,
// id counter, random stream and collaborator wiring. Multiple
// simulations (tests, replays) coexist without shared state.
type Simulation struct {
	id  uuid.UUID
	log *slog.Logger
	rng *gmath.Rand

	arena   *world.Arena
	index   world.SpatialIndex
	terrain world.Terrain
	effects EffectSink
	score   StatsSink
	allies  *world.Alliances

	damageFns [3]world.DamageFunc

	counterBattery func(attacker, target world.Handle)

	multiplayer bool
	strict      bool

	mapW, mapH int32

	now   uint32 // game time at the end of the current tick
	delta uint32 // length of the current tick

	reg     registry
	tracker uint32

	expGain     [constants.MaxPlayers]int32
	designators [constants.MaxPlayers]world.Handle
}

// New wires a Simulation to its collaborators. Arena, index and terrain
// are required.
func New(arena *world.Arena, index world.SpatialIndex, terrain world.Terrain, opts Options) (*Simulation, error) {
	if arena == nil || index == nil || terrain == nil {
		return nil, fmt.Errorf("projectile: arena, index and terrain are required")
	}

	s := &Simulation{
		id:             uuid.New(),
		rng:            gmath.NewRand(opts.Seed),
		arena:          arena,
		index:          index,
		terrain:        terrain,
		effects:        opts.Effects,
		score:          opts.Stats,
		allies:         opts.Alliances,
		counterBattery: opts.CounterBattery,
		multiplayer:    opts.Multiplayer,
		strict:         opts.Strict,
	}
	s.mapW, s.mapH = terrain.Size()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s.log = logger.With(slog.Group("sim", slog.String("id", s.id.String())))

	if s.effects == nil {
		s.effects = nopEffects{}
	}
	if s.score == nil {
		s.score = nopStats{}
	}
	if s.allies == nil {
		s.allies = world.NewAlliances()
	}
	s.damageFns = [3]world.DamageFunc{
		world.KindUnit:      world.UnitDamage,
		world.KindStructure: world.StructureDamage,
		world.KindFeature:   world.FeatureDamage,
	}
	for i := range s.expGain {
		s.expGain[i] = 100
	}
	s.reg.init()
	return s, nil
}

func (s *Simulation) String() string {
	return "sim-" + s.id.String()
}

// Now returns the current game time in ticks.
func (s *Simulation) Now() uint32 {
	return s.now
}

// Len returns the number of live projectiles.
func (s *Simulation) Len() int {
	return s.reg.len()
}

// SetDamageFunc replaces the damage handler for one object kind.
func (s *Simulation) SetDamageFunc(kind world.Kind, fn world.DamageFunc) {
	if int(kind) < len(s.damageFns) && fn != nil {
		s.damageFns[kind] = fn
	}
}

// SetExpGain sets the experience percentage awarded to player's units.
func (s *Simulation) SetExpGain(player int, gain int32) {
	if player >= 0 && player < constants.MaxPlayers {
		s.expGain[player] = gain
	}
}

// ExpGain returns the experience percentage for player.
func (s *Simulation) ExpGain(player int) int32 {
	if player < 0 || player >= constants.MaxPlayers {
		return 0
	}
	return s.expGain[player]
}

// SetDesignator assigns player's commander for fire-support experience
// routing. A zero handle clears it.
func (s *Simulation) SetDesignator(player int, commander world.Handle) {
	if player >= 0 && player < constants.MaxPlayers {
		s.designators[player] = commander
	}
}

// Lookup returns the live projectile with the given tracker id, or nil.
func (s *Simulation) Lookup(id uint32) *Projectile {
	return s.reg.lookup(id)
}

// First resets the enumeration cursor and returns the first live
// projectile, or nil. The cursor protocol is for consumers that
// enumerate between ticks; it is not stable across Update.
func (s *Simulation) First() *Projectile {
	return s.reg.first()
}

// Next returns the next projectile under the cursor, or nil at the end.
func (s *Simulation) Next() *Projectile {
	return s.reg.next()
}

// Reset clears every projectile, notifying the effects sink of audio
// detachment first, and rewinds the clock and id counter.
func (s *Simulation) Reset() {
	for _, p := range s.reg.order {
		s.effects.Post(effects.Event{Kind: effects.AudioDetach, Time: s.now, Source: p.id})
	}
	s.reg.init()
	s.tracker = 0
	s.now = 0
	s.delta = 0
	for i := range s.expGain {
		s.expGain[i] = 100
	}
}

// Shutdown releases everything Reset releases; the Simulation must not
// be used afterwards.
func (s *Simulation) Shutdown() {
	s.Reset()
}

// check logs (or panics, when strict) on a violated invariant. Returns
// cond so callers can early-return in release builds.
func (s *Simulation) check(cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	if s.strict {
		panic("projectile: " + msg)
	}
	s.log.Error(msg, args...)
	return false
}

func (s *Simulation) onMap(pos gmath.Vector3) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < s.mapW && pos.Y < s.mapH
}
