package projectile

import (
	"log/slog"

	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/world"
)

// Update advances the whole simulation by dt ticks: every projectile
// runs its lifecycle, penetration children spawned mid-sweep are staged
// and join the registry afterwards (they first tick next Update), and
// projectiles dead since before this tick are reclaimed.
func (s *Simulation) Update(dt uint32) {
	if !s.check(dt > 0, "zero tick delta") {
		return
	}
	s.delta = dt
	s.now += dt

	var spawned []*Projectile
	for _, p := range s.reg.order {
		if child := p.tick(s); child != nil {
			spawned = append(spawned, child)
		}
	}

	s.reclaim()

	for _, c := range spawned {
		s.check(s.reg.add(c), "duplicate projectile tracker id", slog.Uint64("id", uint64(c.id)))
	}
}

// tick runs one projectile through as many lifecycle stages as the
// tick reaches. A flight ending in impact resolves that impact in the
// same tick, so death times stay within the tick the collision
// happened in.
func (p *Projectile) tick(s *Simulation) *Projectile {
	p.prev = spacetime{Time: p.time, Pos: p.pos, Rot: p.rot}

	// Weak references may have died since last tick.
	if !p.src.Zero() {
		if src := s.arena.Lookup(p.src); src == nil || !src.Alive() {
			p.src = world.Handle{}
		}
	}
	if !p.dst.Zero() {
		if dst := s.arena.Lookup(p.dst); dst == nil || !dst.Alive() {
			p.setTarget(s, world.Handle{})
		}
	}
	kept := p.damaged[:0]
	for _, h := range p.damaged {
		if obj := s.arena.Lookup(h); obj != nil && obj.Alive() {
			kept = append(kept, h)
		}
	}
	p.damaged = kept

	if p.state != Inactive && !s.onMap(p.pos) {
		p.state = Inactive
	}

	var child *Projectile
	if p.state == InFlight {
		child = s.flightTick(p)
	}
	if p.state == Impact {
		s.impactTick(p)
	}
	if p.state == PostImpact {
		s.postImpactTick(p)
	}
	if p.state == Inactive && p.died == 0 {
		p.died = s.now
		if p.died == 0 {
			p.died = 1
		}
	}
	return child
}

// reclaim frees projectiles that have been dead since before the
// current tick. The one-tick grace keeps the final sample available
// for interpolation.
func (s *Simulation) reclaim() {
	kept := s.reg.order[:0]
	for _, p := range s.reg.order {
		if p.died == 0 || p.died >= s.now-s.delta {
			kept = append(kept, p)
			continue
		}
		_, ok := s.reg.byID[p.id]
		s.check(ok, "reclaiming projectile missing from id table", slog.Uint64("id", uint64(p.id)))
		delete(s.reg.byID, p.id)
		s.effects.Post(effects.Event{Kind: effects.AudioDetach, Pos: p.pos, Time: s.now, Player: int32(p.player), Source: p.id})
	}
	s.reg.order = kept
}
