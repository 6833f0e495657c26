package world

import (
	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/stats"
)

// Damage describes one damage application against an object. It is
// constructed and consumed within a single dispatch; nothing persists it.
type Damage struct {
	Amount   uint32
	Class    stats.WeaponClass
	SubClass stats.WeaponSubClass

	ImpactTime uint32
	Now        uint32
	Delta      uint32 // tick length, for per-second rating

	PerSecond bool

	// MinDamagePct is the percentage of raw damage armour can never absorb.
	MinDamagePct int32

	// EMPRadius marks hits delivered by an EMP radius sweep rather than
	// a direct EMP impact; those stun for half as long.
	EMPRadius bool
}

// DamageFunc resolves one Damage against a target and returns the
// relative damage: |value| is damage done as a 65536-scaled fraction of
// the target's original health (clipped to remaining health), negative
// if the hit destroyed the target.
type DamageFunc func(obj *Object, d Damage) int32

// RelativeScale is the fixed-point denominator of relative damage values.
const RelativeScale = 65536

// UnitDamage is the default handler for units.
func UnitDamage(obj *Object, d Damage) int32 {
	return applyDamage(obj, d, true)
}

// StructureDamage is the default handler for structures.
func StructureDamage(obj *Object, d Damage) int32 {
	return applyDamage(obj, d, true)
}

// FeatureDamage is the default handler for features. Destroyed features
// report positive relative damage: feature kills earn nobody experience.
func FeatureDamage(obj *Object, d Damage) int32 {
	return applyDamage(obj, d, false)
}

func applyDamage(obj *Object, d Damage, negateOnKill bool) int32 {
	if !obj.Alive() || obj.OrigHP == 0 {
		return 0
	}

	obj.LastHitTime = d.ImpactTime
	obj.LastHitSubClass = d.SubClass

	// EMP stuns instead of wounding.
	if d.SubClass == stats.SubClassEMP {
		dur := uint32(constants.EMPDisableTime)
		if d.EMPRadius {
			dur /= 2
		}
		if until := d.Now + dur; obj.StunUntil < until {
			obj.StunUntil = until
		}
		return 0
	}

	armour := obj.KineticArmour
	if d.Class == stats.ClassHeat {
		armour = obj.HeatArmour
	}
	actual := gmath.Max(int32(d.Amount)-armour, int32(int64(d.Amount)*int64(d.MinDamagePct)/100))
	if actual <= 0 {
		return 0
	}

	if d.PerSecond {
		due := int32(int64(actual)*int64(d.Delta)/constants.TicksPerSecond) - obj.PeriodicDone
		if due <= 0 {
			return 0
		}
		obj.PeriodicDone += due
		actual = due
	}

	killed := false
	if uint32(actual) >= obj.HP {
		actual = int32(obj.HP)
		obj.HP = 0
		obj.Died = d.ImpactTime
		if obj.Died == 0 {
			obj.Died = 1
		}
		killed = true
	} else {
		obj.HP -= uint32(actual)
	}

	relative := int32(int64(actual) * RelativeScale / int64(obj.OrigHP))
	if killed && negateOnKill {
		return -relative
	}
	return relative
}

// ElectronicDamage applies resistance damage from an electronic-subclass
// weapon. Returns true when the target's resistance is exhausted: the
// target is captured by attacker, its orders cleared and its resistance
// restored under the new owner.
func ElectronicDamage(obj *Object, amount uint32, attacker int) bool {
	if !obj.Alive() || obj.Kind == KindFeature {
		return false
	}
	obj.Resistance -= int32(amount)
	if obj.Resistance > 0 {
		return false
	}
	obj.Player = attacker
	obj.Resistance = obj.OrigResistance
	obj.HasOrder = false
	obj.ActionTarget = Handle{}
	return true
}
