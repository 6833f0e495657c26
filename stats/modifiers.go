package stats

// Propulsion classifies how a unit moves, for damage modifier purposes.
type Propulsion uint8

const (
	PropulsionWheeled Propulsion = iota
	PropulsionTracked
	PropulsionHover
	PropulsionLegged
	PropulsionLift

	numPropulsions = 5
)

// BodySize classifies a unit chassis.
type BodySize uint8

const (
	BodyLight BodySize = iota
	BodyMedium
	BodyHeavy

	numBodies = 3
)

// StructureStrength classifies building armour families.
type StructureStrength uint8

const (
	StrengthSoft StructureStrength = iota
	StrengthMedium
	StrengthHard
	StrengthBunker

	numStrengths = 4
)

// Modifier tables: percentages, 100 = neutral. Rows are weapon effects in
// declaration order, columns the target class.

var propulsionModifier = [numEffects][numPropulsions]int32{
	EffectAntiPersonnel:  {110, 60, 100, 125, 50},
	EffectAntiTank:       {100, 125, 90, 70, 60},
	EffectBunkerBuster:   {60, 80, 60, 50, 40},
	EffectArtilleryRound: {100, 90, 110, 100, 50},
	EffectFlamer:         {110, 75, 120, 130, 30},
	EffectAntiAircraft:   {40, 30, 40, 40, 130},
}

var bodyModifier = [numEffects][numBodies]int32{
	EffectAntiPersonnel:  {115, 100, 70},
	EffectAntiTank:       {80, 100, 115},
	EffectBunkerBuster:   {70, 80, 90},
	EffectArtilleryRound: {100, 100, 100},
	EffectFlamer:         {120, 100, 75},
	EffectAntiAircraft:   {100, 100, 100},
}

var structureModifier = [numEffects][numStrengths]int32{
	EffectAntiPersonnel:  {80, 60, 40, 25},
	EffectAntiTank:       {90, 80, 70, 50},
	EffectBunkerBuster:   {125, 120, 110, 130},
	EffectArtilleryRound: {100, 90, 70, 55},
	EffectFlamer:         {90, 60, 35, 25},
	EffectAntiAircraft:   {30, 25, 20, 15},
}

// PropulsionModifier returns the damage percentage of effect against a
// unit with the given propulsion.
func PropulsionModifier(e WeaponEffect, p Propulsion) int32 {
	if e >= numEffects || p >= numPropulsions {
		return 100
	}
	return propulsionModifier[e][p]
}

// BodyModifier returns the damage percentage of effect against a unit
// chassis of the given size.
func BodyModifier(e WeaponEffect, b BodySize) int32 {
	if e >= numEffects || b >= numBodies {
		return 100
	}
	return bodyModifier[e][b]
}

// StructureModifier returns the damage percentage of effect against a
// building of the given strength.
func StructureModifier(e WeaponEffect, s StructureStrength) int32 {
	if e >= numEffects || s >= numStrengths {
		return 100
	}
	return structureModifier[e][s]
}
