// Package stats holds the read-only weapon stats table: ballistic, damage
// and area constants, per-player upgrade levels, and the TOML arsenal
// loader. The simulation never mutates a WeaponStats it fires with.
package stats

import (
	"fmt"

	"github.com/veyra/ballista/constants"
)

// MovementModel selects the trajectory solver for a weapon.
type MovementModel uint8

const (
	MovementDirect MovementModel = iota
	MovementIndirect
	MovementHomingDirect
	MovementHomingIndirect
)

func (m MovementModel) String() string {
	switch m {
	case MovementDirect:
		return "direct"
	case MovementIndirect:
		return "indirect"
	case MovementHomingDirect:
		return "homing-direct"
	case MovementHomingIndirect:
		return "homing-indirect"
	default:
		return "unknown"
	}
}

func (m *MovementModel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "direct":
		*m = MovementDirect
	case "indirect":
		*m = MovementIndirect
	case "homing-direct":
		*m = MovementHomingDirect
	case "homing-indirect":
		*m = MovementHomingIndirect
	default:
		return fmt.Errorf("unknown movement model %q", text)
	}
	return nil
}

// WeaponClass selects which armour value a hit is resolved against.
type WeaponClass uint8

const (
	ClassKinetic WeaponClass = iota
	ClassHeat
)

func (c WeaponClass) String() string {
	if c == ClassHeat {
		return "heat"
	}
	return "kinetic"
}

func (c *WeaponClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "kinetic":
		*c = ClassKinetic
	case "heat":
		*c = ClassHeat
	default:
		return fmt.Errorf("unknown weapon class %q", text)
	}
	return nil
}

// WeaponSubClass identifies the munition family. A few subclasses carry
// special lifecycle behavior: EMP stuns instead of wounding, Electronic
// attacks resistance, LasSat is inert for a delay after firing in
// multiplayer.
type WeaponSubClass uint8

const (
	SubClassMachineGun WeaponSubClass = iota
	SubClassCannon
	SubClassMortar
	SubClassHowitzer
	SubClassRocket
	SubClassMissile
	SubClassFlame
	SubClassLaser
	SubClassRail
	SubClassAAGun
	SubClassEMP
	SubClassElectronic
	SubClassCommand
	SubClassLasSat
)

var subClassNames = map[WeaponSubClass]string{
	SubClassMachineGun: "machine-gun",
	SubClassCannon:     "cannon",
	SubClassMortar:     "mortar",
	SubClassHowitzer:   "howitzer",
	SubClassRocket:     "rocket",
	SubClassMissile:    "missile",
	SubClassFlame:      "flame",
	SubClassLaser:      "laser",
	SubClassRail:       "rail",
	SubClassAAGun:      "aa-gun",
	SubClassEMP:        "emp",
	SubClassElectronic: "electronic",
	SubClassCommand:    "command",
	SubClassLasSat:     "las-sat",
}

func (s WeaponSubClass) String() string {
	if n, ok := subClassNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s *WeaponSubClass) UnmarshalText(text []byte) error {
	for k, n := range subClassNames {
		if n == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown weapon subclass %q", text)
}

// WeaponEffect indexes the damage modifier tables.
type WeaponEffect uint8

const (
	EffectAntiPersonnel WeaponEffect = iota
	EffectAntiTank
	EffectBunkerBuster
	EffectArtilleryRound
	EffectFlamer
	EffectAntiAircraft

	numEffects = 6
)

var effectNames = map[WeaponEffect]string{
	EffectAntiPersonnel:  "anti-personnel",
	EffectAntiTank:       "anti-tank",
	EffectBunkerBuster:   "bunker-buster",
	EffectArtilleryRound: "artillery-round",
	EffectFlamer:         "flamer",
	EffectAntiAircraft:   "anti-aircraft",
}

func (e WeaponEffect) String() string {
	if n, ok := effectNames[e]; ok {
		return n
	}
	return "unknown"
}

func (e *WeaponEffect) UnmarshalText(text []byte) error {
	for k, n := range effectNames {
		if n == string(text) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown weapon effect %q", text)
}

// TargetFlags restrict which altitude bands a weapon may engage.
type TargetFlags uint8

const (
	ShootOnGround TargetFlags = 1 << iota
	ShootInAir
)

func (f *TargetFlags) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ground":
		*f = ShootOnGround
	case "air":
		*f = ShootInAir
	case "both":
		*f = ShootOnGround | ShootInAir
	default:
		return fmt.Errorf("unknown target flags %q", text)
	}
	return nil
}

// Level holds the upgradeable numbers of a weapon for one player.
type Level struct {
	MaxRange   int32 `toml:"max-range"`
	ShortRange int32 `toml:"short-range"`
	MinRange   int32 `toml:"min-range"`

	Damage    uint32 `toml:"damage"`
	RadDamage uint32 `toml:"rad-damage"`

	Radius    int32 `toml:"radius"`
	EMPRadius int32 `toml:"emp-radius"`

	// MinimumDamage is the percentage of raw damage that armour can
	// never absorb.
	MinimumDamage int32 `toml:"minimum-damage"`

	PeriodicalDamage       uint32 `toml:"periodical-damage"`
	PeriodicalDamageRadius int32  `toml:"periodical-damage-radius"`
	PeriodicalDamageTime   uint32 `toml:"periodical-damage-time"`
}

// WeaponStats is the immutable description of one weapon. Projectiles
// hold a pointer to the stats they were fired with; ownership stays with
// the Table.
type WeaponStats struct {
	Name     string
	Movement MovementModel
	Class    WeaponClass
	SubClass WeaponSubClass
	Effect   WeaponEffect

	FlightSpeed int32 // world units per second

	// DistanceExtensionFactor is the percentage of max range a shot may
	// overfly before it is forced to miss.
	DistanceExtensionFactor int32

	// RadiusLife is how long the post-impact area effect lingers, in ticks.
	RadiusLife uint32

	Penetrate      bool
	NoFriendlyFire bool
	FacePlayer     bool
	Targets        TargetFlags

	// Periodic damage is resolved as its own weapon for modifier purposes.
	PeriodicalClass    WeaponClass
	PeriodicalSubClass WeaponSubClass
	PeriodicalEffect   WeaponEffect

	Levels [constants.MaxPlayers]Level
}

// Direct reports whether the weapon flies flat rather than on an arc.
func (w *WeaponStats) Direct() bool {
	return w.Movement == MovementDirect || w.Movement == MovementHomingDirect
}

// Level returns the upgrade level for player. Out-of-range players fall
// back to slot 0 rather than faulting.
func (w *WeaponStats) Level(player int) *Level {
	if player < 0 || player >= constants.MaxPlayers {
		return &w.Levels[0]
	}
	return &w.Levels[player]
}

// SetAllLevels assigns the same level to every player slot.
func (w *WeaponStats) SetAllLevels(l Level) {
	for i := range w.Levels {
		w.Levels[i] = l
	}
}

// LongRange returns the maximum range for a weapon as upgraded by player.
func LongRange(w *WeaponStats, player int) int32 {
	return w.Level(player).MaxRange
}

// ShortRange returns the short (accurate) range for a weapon.
func ShortRange(w *WeaponStats, player int) int32 {
	return w.Level(player).ShortRange
}

// MinRange returns the minimum engagement range for a weapon.
func MinRange(w *WeaponStats, player int) int32 {
	return w.Level(player).MinRange
}

// Damage returns the direct-hit damage for a weapon.
func Damage(w *WeaponStats, player int) uint32 {
	return w.Level(player).Damage
}

// RadDamage returns the splash damage for a weapon.
func RadDamage(w *WeaponStats, player int) uint32 {
	return w.Level(player).RadDamage
}

// PeriodicalDamage returns the damage-per-second rate for a weapon.
func PeriodicalDamage(w *WeaponStats, player int) uint32 {
	return w.Level(player).PeriodicalDamage
}
