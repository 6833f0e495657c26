package projectile

import (
	"log/slog"

	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// calcDamage scales a weapon's base damage by the modifier tables for
// the target's construction: propulsion and body for units, strength
// class for structures. A connecting hit always does at least 1 damage.
func calcDamage(base uint32, effect stats.WeaponEffect, obj *world.Object) uint32 {
	if base == 0 {
		return 0
	}

	d := int64(base) * 100
	switch obj.Kind {
	case world.KindStructure:
		d += int64(base) * int64(stats.StructureModifier(effect, obj.Strength)-100)
	case world.KindUnit:
		d += int64(base) * int64(stats.PropulsionModifier(effect, obj.Propulsion)-100)
		d += int64(base) * int64(stats.BodyModifier(effect, obj.Body)-100)
	}

	if d < 100 {
		return 1
	}
	return uint32(d / 100)
}

// objectDamage routes one damage application through the handler for
// the victim's kind, then settles the attacker's experience and kill
// credit from the relative damage the handler reports.
func (s *Simulation) objectDamage(p *Projectile, victim world.Handle, obj *world.Object, d world.Damage) int32 {
	relative := s.damageFns[obj.Kind](obj, d)

	src := s.arena.Lookup(p.src)
	if src == nil || obj.Kind == world.KindFeature {
		return relative // nobody left to credit, or a kill worth nothing
	}
	if dst := s.arena.Lookup(p.dst); dst != nil && src.Player == dst.Player {
		return relative // friendly fire earns no experience
	}

	inc := uint32(int64(gmath.Abs(relative)) * int64(s.expGain[src.Player]) / 100)
	s.updateExperience(p, src, inc)
	if relative < 0 {
		s.updateKills(p, src, victim, obj)
	}
	return relative
}

// updateExperience credits the firer, plus its commander and any
// fire-support sensor. Structure kills are credited to the player's
// laser designator when it ordered the attack.
func (s *Simulation) updateExperience(p *Projectile, src *world.Object, inc uint32) {
	switch src.Kind {
	case world.KindUnit:
		if dst := s.arena.Lookup(p.dst); dst != nil && dst.Kind == world.KindUnit && s.multiplayer {
			// Unit-on-unit in multiplayer scales by build quality, so
			// farming cheap targets with an expensive unit earns little.
			inc = uint32(uint64(inc) * uint64(qualityFactor(src, dst)) / world.RelativeScale)
		}
		if !s.check(inc < 21*world.RelativeScale/10, "experience increase out of range",
			slog.Uint64("inc", uint64(inc))) {
			return
		}
		src.Experience += inc
		if cmd := s.arena.Lookup(src.Commander); cmd != nil && cmd.Alive() {
			cmd.Experience += inc
		}
		if sensor := s.arena.Lookup(src.FireSupport); sensor != nil && sensor.Alive() && sensor.Kind == world.KindUnit {
			sensor.Experience += inc
		}

	case world.KindStructure:
		if !s.check(inc < 21*world.RelativeScale/10, "experience increase out of range",
			slog.Uint64("inc", uint64(inc))) {
			return
		}
		if cmdr := s.designatorAttacking(src.Player, p.dst); cmdr != nil {
			cmdr.Experience += inc
		}
	}
}

// updateKills credits a destroyed victim to the firer.
func (s *Simulation) updateKills(p *Projectile, src *world.Object, victim world.Handle, obj *world.Object) {
	if s.multiplayer {
		s.score.RecordKill(src.Player, obj.Player)
	}

	switch src.Kind {
	case world.KindUnit:
		src.Kills++
		if cmd := s.arena.Lookup(src.Commander); cmd != nil && cmd.Alive() {
			cmd.Kills++
		}
	case world.KindStructure:
		if cmdr := s.designatorAttacking(src.Player, victim); cmdr != nil {
			cmdr.Kills++
		}
	}
}

// designatorAttacking returns player's designated commander if it is
// alive and currently ordering an attack on target.
func (s *Simulation) designatorAttacking(player int, target world.Handle) *world.Object {
	if target.Zero() {
		return nil
	}
	cmdr := s.arena.Lookup(s.designators[player])
	if cmdr != nil && cmdr.Alive() && cmdr.ActionTarget == target {
		return cmdr
	}
	return nil
}

// qualityFactor relates the build quality of attacker and victim. The
// result is a RelativeScale fixed-point factor in [1/2, 2].
func qualityFactor(attacker, victim *world.Object) uint32 {
	if attacker.Power == 0 || attacker.Points == 0 {
		return world.RelativeScale / 2
	}
	powerRatio := clampRatio(uint64(world.RelativeScale) * uint64(victim.Power) / uint64(attacker.Power))
	pointsRatio := clampRatio(uint64(world.RelativeScale) * uint64(victim.Points) / uint64(attacker.Points))
	return uint32((powerRatio + pointsRatio) / 2)
}

func clampRatio(r uint64) uint64 {
	const lo, hi = world.RelativeScale / 2, world.RelativeScale * 2
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}

// guessFutureDamage estimates the damage a shot at target will do, for
// forward registration on the victim before the shot lands.
func guessFutureDamage(w *stats.WeaponStats, player int, target *world.Object) int32 {
	if target == nil || !target.Alive() {
		return 0
	}
	return int32(calcDamage(stats.Damage(w, player), w.Effect, target))
}
