package projectile

import (
	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// flightTick advances an in-flight projectile by one tick: movement
// model, swept collision against objects and terrain, range exhaustion
// and trail effects. On a hit the projectile is snapped to the
// collision point and moved to Impact; for a penetrating round the
// spawned follow-through projectile is returned for staging.
func (s *Simulation) flightTick(p *Projectile) *Projectile {
	timeSoFar := int32(s.now - p.born)

	p.time = s.now
	deltaTime := p.time - p.prev.Time

	w := p.weapon
	if !s.check(w != nil, "in-flight projectile without weapon stats") {
		p.state = Inactive
		return nil
	}

	// Las-sats announce themselves before striking in multiplayer; the
	// delay matches the audio countdown.
	if s.multiplayer && w.SubClass == stats.SubClassLasSat && uint32(timeSoFar) < constants.LasSatDelay {
		return nil
	}

	var currentDistance int32
	switch w.Movement {
	case stats.MovementDirect:
		delta := p.dest.Sub(p.origin)
		if w.SubClass == stats.SubClassLasSat {
			// Las-sat comes straight down; its path has no z component.
			delta.Z = 0
		}
		targetDistance := gmath.Max(delta.XY().Hypot(), 1)
		currentDistance = timeSoFar * w.FlightSpeed / constants.TicksPerSecond
		p.pos = p.origin.Add(delta.MulDiv(currentDistance, targetDistance))

	case stats.MovementIndirect:
		delta := p.dest.Sub(p.origin)
		// Peak altitude is reached mid-flight, when the falling term has
		// eaten half the launch velocity.
		delta.Z = (p.vZ - timeSoFar*constants.Gravity/(2*constants.TicksPerSecond)) * timeSoFar / constants.TicksPerSecond
		targetDistance := gmath.Max(delta.XY().Hypot(), 1)
		currentDistance = timeSoFar * p.vXY / constants.TicksPerSecond
		p.pos = p.origin.Add(delta.MulDiv(currentDistance, targetDistance))
		p.pos.Z = p.origin.Z + delta.Z
		p.rot.Pitch = uint16(gmath.Atan2(p.vZ-timeSoFar*constants.Gravity/constants.TicksPerSecond, p.vXY))

	case stats.MovementHomingDirect, stats.MovementHomingIndirect:
		currentDistance = s.homingStep(p, timeSoFar, deltaTime)
	}

	// Swept collision against everything nearby. Candidates come back
	// in ascending handle-index order, so the earliest-time tie is
	// broken the same way on every peer.
	bestTime := uint32(0xFFFFFFFF)
	var bestHandle world.Handle
	var bestObj *world.Object

	for _, h := range s.index.ObjectsNear(p.pos.XY(), constants.NeighbourRange) {
		obj := s.arena.Lookup(h)
		if obj == nil || !obj.Alive() {
			continue
		}
		if p.hasDamaged(h) {
			continue
		}
		if obj.Kind == world.KindFeature && !obj.Damageable {
			continue
		}
		if s.allies.Allied(obj.Player, p.player) && h != p.dst {
			// No friendly fire unless intentional.
			continue
		}
		if w.Targets&stats.ShootOnGround == 0 &&
			(obj.Kind != world.KindUnit || !obj.Flying) {
			// AA weapons pass over buildings and grounded units.
			continue
		}

		objPrev := obj.Pos
		if obj.Kind == world.KindUnit {
			objPrev = obj.PrevPos
		}

		diff := p.pos.Sub(obj.Pos)
		prevDiff := p.prev.Pos.Sub(objPrev)
		c := collisionXYZ(prevDiff, diff, targetShape(obj), targetHeight(obj))
		if c < 0 {
			continue
		}
		collisionTime := p.prev.Time + deltaTime*uint32(c)/1024
		if collisionTime < bestTime {
			bestTime = collisionTime
			bestHandle = h
			bestObj = obj
		}
	}

	if off, hit := s.terrain.LineIntersect(p.prev.Pos, p.pos, deltaTime); hit {
		if collisionTime := p.prev.Time + off; collisionTime < bestTime {
			bestTime = collisionTime
			bestHandle = world.Handle{}
			bestObj = nil
		}
	}

	if bestTime != 0xFFFFFFFF {
		st := p.sampleAt(bestTime)
		p.pos, p.rot, p.time = st.Pos, st.Rot, st.Time
		// Keep the eventual death time inside the current tick window.
		if floor := s.now - s.delta + 1; p.time < floor {
			p.time = floor
		}
		if p.time == p.prev.Time {
			p.prev.Time--
		}
		p.setTarget(s, bestHandle)

		var child *Projectile
		// Only units can be shot through, and only by a penetrating
		// weapon that has not already overflown its range.
		if bestObj != nil && bestObj.Kind == world.KindUnit && w.Penetrate &&
			currentDistance < stats.LongRange(w, p.player)*5/4 {
			p.markDamaged(bestHandle)
			child = s.spawnPenetration(p)
		}

		p.state = Impact
		return child
	}

	if int64(currentDistance)*100 >= int64(stats.LongRange(w, p.player))*int64(w.DistanceExtensionFactor) {
		// Travelled the whole extended range without touching anything.
		p.state = Impact
		p.setTarget(s, world.Handle{})
		return nil
	}

	s.flightTrail(p, currentDistance)
	return nil
}

// homingStep is the per-tick movement of both homing models: re-aim at
// the (possibly moving) target, keep homing-indirect inside its
// altitude corridor, and advance by a drift-free fraction of the tick.
func (s *Simulation) homingStep(p *Projectile, timeSoFar int32, deltaTime uint32) int32 {
	w := p.weapon
	dst := s.arena.Lookup(p.dst)

	if dst != nil {
		if w.Movement == stats.MovementHomingDirect {
			// Home at the centre of the part that was visible when firing.
			p.dest = dst.Pos
			p.dest.Z += targetHeight(dst) - p.partVisible/2
		} else {
			p.dest = dst.Pos
			p.dest.Z += targetHeight(dst) / 2
		}
		if dst.Kind == world.KindUnit && dst.Moving {
			// Lead a moving target by its predicted travel over the
			// remaining flight time.
			delta := p.dest.Sub(p.pos)
			flightTime := delta.XY().Hypot() * constants.TicksPerSecond / w.FlightSpeed
			lead := gmath.AngleVector(dst.Heading,
				gmath.Min(dst.Speed, w.FlightSpeed*3/4)*flightTime/constants.TicksPerSecond)
			p.dest.X += lead.X
			p.dest.Y += lead.Y
		}
		p.dest.X = gmath.Clip(p.dest.X, 0, s.mapW-1)
		p.dest.Y = gmath.Clip(p.dest.Y, 0, s.mapH-1)
	}

	if w.Movement == stats.MovementHomingIndirect {
		if dst == nil {
			// Target gone; home in on the ground under where it was.
			p.dest.Z = s.terrain.HeightAt(p.pos.X, p.pos.Y) - 1
		}
		horiz := p.dest.Sub(p.pos).XY().Hypot()
		ahead := gmath.AngleVector(p.dest.Sub(p.pos).XY().Heading(),
			w.FlightSpeed*2*int32(deltaTime)/constants.TicksPerSecond)
		terrainHeight := gmath.Max(
			s.terrain.HeightAt(p.pos.X, p.pos.Y),
			s.terrain.HeightAt(p.pos.X+ahead.X, p.pos.Y+ahead.Y))
		desiredMin := terrainHeight + gmath.Min(horiz/4, constants.HomingHeightMin)
		desiredMax := gmath.Max(p.dest.Z, terrainHeight+constants.HomingHeightMax)
		heightError := p.pos.Z - gmath.Clip(p.pos.Z, desiredMin, desiredMax)
		p.dest.Z -= horiz * heightError * 2 / constants.HomingHeightMin
	}

	delta := p.dest.Sub(p.pos)
	targetDistance := gmath.Max(delta.Hypot(), 1)
	if dst == nil && targetDistance < 10000 && w.Movement == stats.MovementHomingDirect {
		// Target missing; just keep going in a straight line.
		p.dest = p.pos.Add(delta.MulDiv(10, 1))
	}

	currentDistance := timeSoFar * w.FlightSpeed / constants.TicksPerSecond
	step := gmath.QuantiseFraction(delta.MulDiv(w.FlightSpeed, 1),
		constants.TicksPerSecond*targetDistance, p.time, p.prev.Time)

	if w.Movement == stats.MovementHomingIndirect && dst != nil {
		for tries := 0; tries < constants.HomingTerrainRetries; tries++ {
			off, hit := s.terrain.LineIntersect(p.prev.Pos, p.pos.Add(step), uint32(step.Hypot()))
			if !hit || off >= uint32(targetDistance-1) {
				break
			}
			// Would collide with terrain this tick, pull the aim point up.
			p.dest.Z += p.dest.Sub(p.pos).XY().Hypot()
			delta = p.dest.Sub(p.pos)
			targetDistance = gmath.Max(delta.Hypot(), 1)
			step = gmath.QuantiseFraction(delta.MulDiv(w.FlightSpeed, 1),
				constants.TicksPerSecond*targetDistance, p.time, p.prev.Time)
		}
	}

	p.pos = p.pos.Add(step)
	p.rot.Direction = uint16(delta.XY().Heading())
	p.rot.Pitch = uint16(gmath.Atan2(delta.Z, targetDistance))
	return currentDistance
}

// flightTrail emits the trail effects for the tick, sampled on fixed
// time boundaries so trails stay evenly spaced regardless of tick rate.
func (s *Simulation) flightTrail(p *Projectile, currentDistance int32) {
	w := p.weapon
	longRange := gmath.Max(stats.LongRange(w, p.player), 1)
	percent := gmath.Clip(currentDistance*100/longRange, 0, 100)

	for t := (p.prev.Time + constants.TrailInterval - 1) &^ (constants.TrailInterval - 1); t < p.time; t += constants.TrailInterval {
		pos := p.PositionAt(t)
		ev := effects.Event{Pos: pos, Time: t, Player: int32(p.player), Source: p.id}
		switch w.SubClass {
		case stats.SubClassFlame:
			ev.Kind = effects.FlameTrail
			ev.Pos.Z -= 8
			ev.Aux = percent
		case stats.SubClassCommand, stats.SubClassElectronic, stats.SubClassEMP:
			ev.Kind = effects.LaserFlash
			ev.Pos.Z -= 8
			ev.Aux = percent / 2
		case stats.SubClassRocket, stats.SubClassMissile:
			ev.Kind = effects.SmokeTrail
			ev.Pos.Z += 8
		default:
			// Indirect rounds trail smoke even when fired flat.
			if w.Direct() {
				continue
			}
			ev.Kind = effects.SmokeTrail
			ev.Pos.Z += 4
		}
		s.effects.Post(ev)
	}
}

// sampleAt interpolates the projectile's spacetime inside the current tick.
func (p *Projectile) sampleAt(t uint32) spacetime {
	return spacetime{Time: t, Pos: p.PositionAt(t), Rot: p.RotationAt(t)}
}
