package world

import (
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
)

// Kind discriminates damage routing and hitbox shape.
type Kind uint8

const (
	KindUnit Kind = iota
	KindStructure
	KindFeature
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindStructure:
		return "structure"
	case KindFeature:
		return "feature"
	default:
		return "unknown"
	}
}

// Object is anything a projectile can be fired by or at. Units are round
// hitboxes, structures and features rectangular.
type Object struct {
	Handle Handle
	Kind   Kind
	Player int

	Pos     gmath.Vector3
	PrevPos gmath.Vector3 // previous tick sample, for swept collision
	Heading int32         // movement direction, angle units
	Speed   int32         // world units per second
	Moving  bool
	VTOL    bool
	Flying  bool // airborne right now

	HP     uint32
	OrigHP uint32

	KineticArmour  int32
	HeatArmour     int32
	Resistance     int32 // electronic warfare; structures are capturable
	OrigResistance int32
	Damageable     bool

	Propulsion stats.Propulsion
	Body       stats.BodySize
	Strength   stats.StructureStrength

	HitRadius    int32         // round hitbox radius
	Footprint    gmath.Vector2 // rectangular hitbox half-extents
	Height       int32
	MuzzleHeight int32

	// Power and Points rate build quality, used to scale experience
	// between mismatched attacker and victim.
	Power  uint32
	Points uint32

	Experience   uint32
	Kills        uint32
	Commander    Handle
	FireSupport  Handle // sensor assigned by a fire-support order
	ActionTarget Handle
	HasOrder     bool

	// ExpectedDamage sums the guessed damage of every projectile
	// currently aiming here. Maintained transactionally by the
	// projectile core, read by AI target selection.
	ExpectedDamage int32

	// Periodic damage accumulator: PeriodicDone is the damage already
	// applied since PeriodicStart, so several burning patches in one
	// tick cannot exceed the strongest per-second rate.
	PeriodicStart uint32
	PeriodicDone  int32

	StunUntil       uint32
	LastHitTime     uint32
	LastHitSubClass stats.WeaponSubClass

	// Died is the tick the object was destroyed, 0 while alive. Death is
	// detected lazily by holders of weak references.
	Died uint32
}

// Alive reports whether the object has not been destroyed.
func (o *Object) Alive() bool {
	return o.Died == 0
}

// AddExpectedDamage adjusts the forward-registered damage total. Callers
// must pair every addition with a matching removal when re-aiming.
func (o *Object) AddExpectedDamage(delta int32) {
	o.ExpectedDamage += delta
}

// Stunned reports whether the object is EMP-disabled at the given tick.
func (o *Object) Stunned(now uint32) bool {
	return o.StunUntil > now
}
