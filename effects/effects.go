// Package effects carries fire-and-forget visual/audio notifications out
// of the simulation. The core posts; a render or audio thread drains.
// Nothing in the simulation ever reads an effect back, so a dropped
// event can only cost a graphic, never determinism.
package effects

import "github.com/veyra/ballista/gmath"

// Kind identifies an effect notification.
type Kind uint8

const (
	// Visuals
	Explosion Kind = iota
	LaserFlash
	SmokeTrail
	FlameTrail
	MissFlash
	WaterSplash
	DriftSmoke
	Fire
	SatLaser
	Capture

	// Audio
	ShotFired
	ImpactSound
	Ricochet
	AudioAttach
	AudioDetach
)

// Event is one effect notification. Aux carries kind-specific data:
// percent-of-range for trails, radius for fire patches, duration for
// sat-laser shakes.
type Event struct {
	Kind   Kind
	Pos    gmath.Vector3
	Time   uint32
	Player int32
	Aux    int32

	// Source is the projectile tracker id for attach/detach events.
	Source uint32
}
