package projectile

import (
	"log/slog"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

// FireRequest describes one shot. Either Attacker or TargetPos must
// resolve to a position; TargetPos doubles as the aim point when Target
// is zero or stale.
type FireRequest struct {
	Weapon *stats.WeaponStats
	Player int

	// Attacker is the firing object. A zero handle fires from
	// TargetPos straight down, which is how scripted las-sat strikes
	// come in.
	Attacker world.Handle

	// Target is the intended victim; zero aims at TargetPos instead.
	Target    world.Handle
	TargetPos gmath.Vector3

	// MinAngle forces at least this launch pitch on arcing shots, so
	// mortars behind a wall clear it.
	MinAngle int32

	// FireTime backdates the shot; zero means the current tick.
	FireTime uint32
}

// Fire validates a request, solves the launch trajectory and registers
// the new projectile. The returned projectile is owned by the
// simulation; callers may keep it only to read.
func (s *Simulation) Fire(req FireRequest) (*Projectile, error) {
	w := req.Weapon
	if w == nil {
		return nil, ErrNilStats
	}
	if req.Player < 0 || req.Player >= constants.MaxPlayers {
		return nil, ErrBadPlayer
	}

	attacker := s.arena.Lookup(req.Attacker)
	target := s.arena.Lookup(req.Target)
	if target != nil && !s.check(target.Alive(), "aiming at dead target") {
		target = nil
	}
	if attacker == nil && target == nil && req.TargetPos == (gmath.Vector3{}) {
		return nil, ErrNoOrigin
	}

	s.tracker++
	p := &Projectile{
		id:     constants.TrackerIDBase + s.tracker,
		player: req.Player,
		weapon: w,
		state:  InFlight,
	}

	// Muzzle position. With no attacker the shot starts at the target,
	// dropping straight in.
	if attacker == nil {
		p.origin = req.TargetPos
	} else {
		p.origin = attacker.Pos
		p.origin.Z += attacker.MuzzleHeight
		p.src = req.Attacker
	}
	p.pos = p.origin

	if target != nil {
		p.dest = target.Pos
	} else {
		p.dest = req.TargetPos
	}

	p.expectedDamage = guessFutureDamage(w, req.Player, target)
	if target != nil {
		p.setTarget(s, req.Target)
	}

	fireTime := req.FireTime
	if fireTime == 0 {
		fireTime = s.now
	}
	p.born = fireTime
	p.time = fireTime
	p.prev = spacetime{Time: fireTime, Pos: p.origin}

	if target != nil {
		// Aim somewhere on the target's visible silhouette, so a salvo
		// doesn't land every round on the same pixel.
		maxHeight := targetHeight(target)
		p.dest.Z = target.Pos.Z + s.rng.Intn(gmath.Max(maxHeight, 1))
		p.partVisible = maxHeight
		s.score.ShotOnTarget(req.Player)
	} else {
		p.dest.Z += constants.LineOfFireMinimum
		s.score.ShotOffTarget(req.Player)
	}

	s.solveLaunch(p, req.MinAngle)
	p.prev.Rot = p.rot

	s.check(s.reg.add(p), "duplicate projectile tracker id", slog.Uint64("id", uint64(p.id)))

	s.effects.Post(effects.Event{Kind: effects.ShotFired, Pos: p.origin, Time: fireTime, Player: int32(req.Player), Source: p.id})
	if w.SubClass == stats.SubClassHowitzer {
		// Howitzer shells whistle in flight; the sound rides the shell.
		s.effects.Post(effects.Event{Kind: effects.AudioAttach, Pos: p.origin, Time: fireTime, Player: int32(req.Player), Source: p.id})
	}

	if attacker != nil && !w.Direct() && s.counterBattery != nil {
		s.counterBattery(req.Attacker, req.Target)
	}

	s.log.Debug("projectile fired",
		slog.Uint64("id", uint64(p.id)),
		slog.String("weapon", w.Name),
		slog.Int("player", req.Player))
	return p, nil
}

// solveLaunch sets the initial orientation and, for arcing shots, the
// velocity components.
func (s *Simulation) solveLaunch(p *Projectile, minAngle int32) {
	deltaPos := p.dest.Sub(p.origin)
	dist := deltaPos.XY().Hypot()

	p.rot.Roll = 0
	p.rot.Direction = uint16(deltaPos.XY().Heading())
	if p.weapon.Direct() {
		p.rot.Pitch = uint16(gmath.Atan2(deltaPos.Z, dist))
	} else {
		p.vXY, p.vZ, _ = s.calcIndirectVelocities(dist, deltaPos.Z, p.weapon.FlightSpeed, minAngle)
		p.rot.Pitch = uint16(gmath.Atan2(p.vZ, p.vXY))
	}
}

// spawnPenetration creates the follow-through round of a penetrating
// hit. The child inherits the parent's origin, birth time and damaged
// list, so its range budget and single-hit guarantees carry over; it
// aims past the parent's victim at the original destination.
func (s *Simulation) spawnPenetration(p *Projectile) *Projectile {
	s.tracker++
	c := &Projectile{
		id:     constants.TrackerIDBase + s.tracker,
		player: p.player,
		weapon: p.weapon,
		state:  InFlight,
		src:    p.src,
		origin: p.origin,
		dest:   p.dest,
		born:   p.born,
		pos:    p.pos,
		time:   s.now,
		prev:   spacetime{Time: p.time, Pos: p.pos, Rot: p.rot},
	}
	c.dest.Z += constants.LineOfFireMinimum
	c.damaged = append(c.damaged, p.damaged...)
	// Times must differ for interpolation.
	if c.prev.Time == c.time {
		c.prev.Time--
	}

	s.solveLaunch(c, 0)
	s.score.ShotOffTarget(p.player)

	s.log.Debug("projectile penetrated",
		slog.Uint64("id", uint64(p.id)),
		slog.Uint64("child", uint64(c.id)))
	return c
}
