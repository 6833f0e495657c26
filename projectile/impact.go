package projectile

import (
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// impactTick resolves the moment of impact: effects, the direct hit on
// the chosen victim (or electronic capture), expected-damage
// settlement, then the area sweeps. Projectiles with lingering area or
// burn effects move to PostImpact, everything else goes Inactive.
func (s *Simulation) impactTick(p *Projectile) {
	w := p.weapon
	if !s.check(w != nil, "impacting projectile without weapon stats") {
		p.state = Inactive
		return
	}
	lvl := w.Level(p.player)
	dstObj := s.arena.Lookup(p.dst)
	srcObj := s.arena.Lookup(p.src)

	if dstObj != nil && w.SubClass == stats.SubClassMachineGun {
		s.effects.Post(effects.Event{Kind: effects.Ricochet, Pos: dstObj.Pos, Time: p.time, Player: int32(p.player), Source: p.id})
	} else {
		s.effects.Post(effects.Event{Kind: effects.ImpactSound, Pos: p.pos, Time: p.time, Player: int32(p.player), Source: p.id})
	}

	if lvl.PeriodicalDamageRadius != 0 && lvl.PeriodicalDamageTime != 0 {
		ground := p.pos
		ground.Z = s.terrain.HeightAt(p.pos.X, p.pos.Y)
		s.effects.Post(effects.Event{Kind: effects.Fire, Pos: ground, Time: p.time, Player: int32(p.player), Aux: lvl.PeriodicalDamageRadius, Source: p.id})
		s.terrain.SetFire(p.pos.X, p.pos.Y, lvl.PeriodicalDamageTime, s.now)
	}

	if w.SubClass == stats.SubClassLasSat {
		ground := p.pos
		ground.Z = s.terrain.HeightAt(p.pos.X, p.pos.Y)
		s.effects.Post(effects.Event{Kind: effects.SatLaser, Pos: ground, Time: p.time, Player: int32(p.player), Source: p.id})
	}

	if dstObj == nil {
		// Missed, or the target died mid-flight.
		miss := effects.Event{Kind: effects.MissFlash, Pos: p.pos, Time: p.time, Player: int32(p.player), Aux: lvl.Radius, Source: p.id}
		if s.terrain.TypeAt(p.pos.X, p.pos.Y) == world.TerrainWater {
			miss.Kind = effects.WaterSplash
		}
		s.effects.Post(miss)
		if w.Targets&stats.ShootInAir != 0 && w.Targets&stats.ShootOnGround == 0 {
			// AA flak misses hang in the air for a while.
			s.effects.Post(effects.Event{Kind: effects.DriftSmoke, Pos: p.pos, Time: p.time, Player: int32(p.player), Source: p.id})
		}
	} else {
		if dstObj.Kind == world.KindFeature && !dstObj.Damageable {
			p.state = Inactive
			return
		}

		s.effects.Post(effects.Event{Kind: effects.Explosion, Pos: p.pos, Time: p.time, Player: int32(p.player), Aux: lvl.Radius, Source: p.id})
		if w.Targets&stats.ShootInAir != 0 && w.Targets&stats.ShootOnGround == 0 && w.SubClass == stats.SubClassAAGun {
			s.effects.Post(effects.Event{Kind: effects.DriftSmoke, Pos: p.pos, Time: p.time, Player: int32(p.player), Source: p.id})
		}

		if w.Direct() && w.SubClass == stats.SubClassElectronic && srcObj != nil {
			amount := calcDamage(stats.Damage(w, p.player), w.Effect, dstObj)
			if world.ElectronicDamage(dstObj, amount, p.player) {
				// Captured. The attacker stops what it was doing.
				srcObj.HasOrder = false
				srcObj.ActionTarget = world.Handle{}
				s.effects.Post(effects.Event{Kind: effects.Capture, Pos: dstObj.Pos, Time: p.time, Player: int32(p.player), Source: p.id})
			}
		} else {
			amount := calcDamage(stats.Damage(w, p.player), w.Effect, dstObj)
			if s.multiplayer && srcObj != nil {
				s.score.RecordDamage(srcObj.Player, dstObj.Player, amount)
			}
			relative := s.objectDamage(p, p.dst, dstObj, world.Damage{
				Amount:       amount,
				Class:        w.Class,
				SubClass:     w.SubClass,
				ImpactTime:   p.time,
				Now:          s.now,
				Delta:        s.delta,
				MinDamagePct: lvl.MinimumDamage,
			})
			if relative >= 0 {
				// So long as the target survived, don't hit it again
				// with the splash below.
				p.markDamaged(p.dst)
			}
		}
	}

	// The direct damage is done; nothing more is expected from this
	// projectile, periodic burn aside. Re-book the (now zero) estimate.
	keep := p.dst
	p.clearTarget(s)
	p.setTarget(s, keep)

	hasRadius := lvl.Radius != 0
	hasEMPRadius := lvl.EMPRadius != 0
	if !hasRadius && !hasEMPRadius && lvl.PeriodicalDamageTime == 0 {
		p.state = Inactive
		return
	}

	if hasRadius || hasEMPRadius {
		p.state = PostImpact
		p.born = s.now // rebase the lifetime to the explosion

		// Splash spreads from the victim's centre when a unit was hit,
		// from the impact point otherwise.
		center := p.pos
		if dstObj != nil && dstObj.Kind == world.KindUnit {
			center = dstObj.Pos
		}
		if hasEMPRadius && w.SubClass == stats.SubClassEMP {
			s.radiusSweep(p, center, true)
		}
		if hasRadius {
			s.radiusSweep(p, center, false)
		}
	}

	if lvl.PeriodicalDamageTime != 0 {
		// Burn damage is applied tick by tick in PostImpact.
		p.state = PostImpact
		p.born = s.now
	}
}

// radiusSweep applies splash (or EMP stun) to everything in range of
// the blast centre except the primary victim.
func (s *Simulation) radiusSweep(p *Projectile, center gmath.Vector3, emp bool) {
	w := p.weapon
	lvl := w.Level(p.player)
	radius := lvl.Radius
	if emp {
		radius = lvl.EMPRadius
	}
	srcObj := s.arena.Lookup(p.src)

	for _, h := range s.index.ObjectsNear(center.XY(), radius) {
		obj := s.arena.Lookup(h)
		if obj == nil || !obj.Alive() {
			continue
		}
		if h == p.dst {
			continue // don't hit the main target twice
		}
		if srcObj != nil && srcObj.Player == obj.Player && w.NoFriendlyFire {
			continue
		}
		if obj.Kind == world.KindFeature && !obj.Damageable {
			continue
		}

		inAir := obj.Kind == world.KindUnit && obj.Flying
		flag := stats.ShootOnGround
		if inAir {
			flag = stats.ShootInAir
		}
		if w.Targets&flag == 0 {
			continue
		}
		// Units check the true sphere; the broad phase is radius on the
		// ground plane only.
		if obj.Kind == world.KindUnit && !obj.Pos.InSphere(center, radius) {
			continue
		}

		amount := calcDamage(stats.RadDamage(w, p.player), w.Effect, obj)
		if s.multiplayer && srcObj != nil && obj.Kind != world.KindFeature {
			s.score.RecordDamage(srcObj.Player, obj.Player, amount)
		}
		s.objectDamage(p, h, obj, world.Damage{
			Amount:       amount,
			Class:        w.Class,
			SubClass:     w.SubClass,
			ImpactTime:   p.time,
			Now:          s.now,
			Delta:        s.delta,
			MinDamagePct: lvl.MinimumDamage,
			EMPRadius:    emp,
		})
	}
}

// postImpactTick ages lingering area effects and applies burn damage
// until both the visual life and the burn time are spent.
func (s *Simulation) postImpactTick(p *Projectile) {
	w := p.weapon
	lvl := w.Level(p.player)

	age := s.now - p.born
	if age > w.RadiusLife && age > lvl.PeriodicalDamageTime {
		p.state = Inactive
		return
	}

	if lvl.PeriodicalDamageTime > 0 {
		s.periodicalDamage(p)
	}
}

// periodicalDamage damages everything standing in the burn patch. The
// per-object accumulator guarantees that overlapping patches never
// exceed the strongest per-second rate.
func (s *Simulation) periodicalDamage(p *Projectile) {
	w := p.weapon
	lvl := w.Level(p.player)

	for _, h := range s.index.ObjectsNear(p.pos.XY(), lvl.PeriodicalDamageRadius) {
		obj := s.arena.Lookup(h)
		if obj == nil || !obj.Alive() {
			continue
		}
		if s.allies.Allied(p.player, obj.Player) {
			continue // never burn your own or allied forces
		}
		if obj.Kind == world.KindUnit && obj.VTOL && obj.Flying {
			continue // can't set flying VTOLs on fire
		}
		if obj.Kind == world.KindFeature && !obj.Damageable {
			continue
		}

		if obj.PeriodicStart != s.now {
			obj.PeriodicStart = s.now
			obj.PeriodicDone = 0
		}
		rate := calcDamage(stats.PeriodicalDamage(w, p.player), w.PeriodicalEffect, obj)
		s.objectDamage(p, h, obj, world.Damage{
			Amount:       rate,
			Class:        w.PeriodicalClass,
			SubClass:     w.PeriodicalSubClass,
			ImpactTime:   s.now - s.delta/2 + 1,
			Now:          s.now,
			Delta:        s.delta,
			PerSecond:    true,
			MinDamagePct: lvl.MinimumDamage,
		})
	}
}
