package constants

// Projectile Tuning
const (
	// TrackerIDBase namespaces projectile ids away from object ids
	TrackerIDBase = 0xDEAD0000

	// NeighbourRange is the broad-phase collision scan radius around a
	// projectile's position
	NeighbourRange = TileUnits * 4

	// LineOfFireMinimum is the minimum aim height above a bare target point
	LineOfFireMinimum = 5

	// ProjectileHeight is the vertical hitbox extent of a projectile in flight
	ProjectileHeight = 16

	// ProjectileRadius is the horizontal hitbox radius of a projectile
	ProjectileRadius = TileUnits / 8

	// VTOLHitboxPad extends the hitbox height of airborne units, which
	// otherwise present too thin a profile to ground fire
	VTOLHitboxPad = 100

	// TrailInterval is the game-time spacing of in-flight trail effects,
	// aligned to 32-tick boundaries
	TrailInterval = 32
)

// Homing Altitude Controller
const (
	// HomingHeightMin is the preferred minimum clearance above terrain
	HomingHeightMin = 200

	// HomingHeightMax is the preferred maximum clearance above terrain
	HomingHeightMax = 450

	// HomingTerrainRetries bounds the climb-and-recompute loop when a
	// step would clip terrain
	HomingTerrainRetries = 10
)

// Special Weapon Timing
const (
	// LasSatDelay keeps a laser satellite shot inert after firing in
	// multiplayer, matching the length of the incoming-fire warning
	LasSatDelay = 4 * TicksPerSecond

	// EMPDisableTime is how long a direct EMP hit stuns its victim.
	// Victims caught in an EMP radius are stunned for half as long.
	EMPDisableTime = 30 * TicksPerSecond
)
