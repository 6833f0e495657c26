package projectile

import (
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// State is the lifecycle stage of a projectile. Transitions only move
// forward: InFlight -> Impact -> PostImpact -> Inactive, with Impact
// able to skip straight to Inactive when nothing burns afterwards.
type State uint8

const (
	InFlight State = iota
	Impact
	PostImpact
	Inactive
)

func (s State) String() string {
	switch s {
	case InFlight:
		return "in-flight"
	case Impact:
		return "impact"
	case PostImpact:
		return "post-impact"
	case Inactive:
		return "inactive"
	}
	return "unknown"
}

// Rotation is a full orientation in 65536-unit angles.
type Rotation struct {
	Direction uint16
	Pitch     uint16
	Roll      uint16
}

// spacetime is one sampled point of a projectile's path, kept so the
// renderer can interpolate between ticks and the collision sweep can
// bound the segment travelled this tick.
type spacetime struct {
	Time uint32
	Pos  gmath.Vector3
	Rot  Rotation
}

// Projectile is one munition in flight or resolving its impact. All
// fields are owned by the simulation tick; external readers go through
// the accessor methods between Updates.
type Projectile struct {
	id     uint32
	player int
	weapon *stats.WeaponStats

	state State

	src world.Handle // firer, may go stale mid-flight
	dst world.Handle // intended victim, zero for ground shots

	origin gmath.Vector3 // muzzle position at fire time
	dest   gmath.Vector3 // aim point, updated every tick while homing

	born uint32
	died uint32 // set on the tick the projectile went inactive

	time uint32 // time of Pos
	pos  gmath.Vector3
	rot  Rotation
	prev spacetime

	vXY int32 // horizontal speed along origin->dest
	vZ  int32 // initial vertical speed, gravity applies over time

	// partVisible is the height span of the target silhouette that was
	// in the line of fire at shot time. Homing rounds lock on to the
	// centre of that span.
	partVisible int32

	expectedDamage int32

	damaged []world.Handle // victims this projectile already damaged
}

// ID returns the projectile's tracker id, unique within its Simulation.
func (p *Projectile) ID() uint32 { return p.id }

// Player returns the owning player.
func (p *Projectile) Player() int { return p.player }

// Weapon returns the weapon behind the shot.
func (p *Projectile) Weapon() *stats.WeaponStats { return p.weapon }

// State returns the current lifecycle stage.
func (p *Projectile) State() State { return p.state }

// Position returns the position at the end of the last tick.
func (p *Projectile) Position() gmath.Vector3 { return p.pos }

// Rotation returns the orientation at the end of the last tick.
func (p *Projectile) Rotation() Rotation { return p.rot }

// Origin returns the muzzle position the shot left from.
func (p *Projectile) Origin() gmath.Vector3 { return p.origin }

// Destination returns the current aim point.
func (p *Projectile) Destination() gmath.Vector3 { return p.dest }

// Source returns the firer's handle; it may be stale.
func (p *Projectile) Source() world.Handle { return p.src }

// Target returns the intended victim's handle, zero for ground shots.
func (p *Projectile) Target() world.Handle { return p.dst }

// Born returns the fire time in ticks.
func (p *Projectile) Born() uint32 { return p.born }

// Died returns the tick the projectile went inactive, 0 while live.
func (p *Projectile) Died() uint32 { return p.died }

// PositionAt interpolates the projectile's path for a render time
// between the previous and the current sample. Times outside the
// bracket clamp to the endpoints.
func (p *Projectile) PositionAt(t uint32) gmath.Vector3 {
	if t <= p.prev.Time || p.time <= p.prev.Time {
		return p.prev.Pos
	}
	if t >= p.time {
		return p.pos
	}
	num := int32(t - p.prev.Time)
	den := int32(p.time - p.prev.Time)
	d := p.pos.Sub(p.prev.Pos)
	return gmath.Vector3{
		X: p.prev.Pos.X + gmath.MulDiv(d.X, num, den),
		Y: p.prev.Pos.Y + gmath.MulDiv(d.Y, num, den),
		Z: p.prev.Pos.Z + gmath.MulDiv(d.Z, num, den),
	}
}

// RotationAt interpolates orientation like PositionAt, wrapping angles
// the short way around.
func (p *Projectile) RotationAt(t uint32) Rotation {
	if t <= p.prev.Time || p.time <= p.prev.Time {
		return p.prev.Rot
	}
	if t >= p.time {
		return p.rot
	}
	num := int32(t - p.prev.Time)
	den := int32(p.time - p.prev.Time)
	return Rotation{
		Direction: gmath.AngleLerp(p.prev.Rot.Direction, p.rot.Direction, num, den),
		Pitch:     gmath.AngleLerp(p.prev.Rot.Pitch, p.rot.Pitch, num, den),
		Roll:      gmath.AngleLerp(p.prev.Rot.Roll, p.rot.Roll, num, den),
	}
}

// setTarget retargets the projectile, moving its expected-damage
// booking from the old victim to the new one so threat assessment
// never double counts or leaks.
func (p *Projectile) setTarget(s *Simulation, h world.Handle) {
	if p.dst == h {
		return
	}
	if old := s.arena.Lookup(p.dst); old != nil {
		old.AddExpectedDamage(-p.expectedDamage)
	}
	p.dst = h
	if obj := s.arena.Lookup(h); obj != nil {
		obj.AddExpectedDamage(p.expectedDamage)
	}
}

// clearTarget drops the victim booking entirely.
func (p *Projectile) clearTarget(s *Simulation) {
	p.setTarget(s, world.Handle{})
	p.expectedDamage = 0
}

// hasDamaged reports whether obj was already hit by this projectile.
func (p *Projectile) hasDamaged(h world.Handle) bool {
	for _, d := range p.damaged {
		if d == h {
			return true
		}
	}
	return false
}

func (p *Projectile) markDamaged(h world.Handle) {
	if !p.hasDamaged(h) {
		p.damaged = append(p.damaged, h)
	}
}
