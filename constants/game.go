package constants

// Simulation Clock
const (
	// TicksPerSecond is the game time resolution: one tick is one
	// millisecond of simulated time.
	TicksPerSecond = 1000

	// Gravity is the constant downward acceleration in world units/s².
	// Must divide TicksPerSecond evenly; the ballistic solver relies on
	// TicksPerSecond/Gravity*Gravity == TicksPerSecond holding exactly.
	Gravity = 1000
)

// World Geometry
const (
	// TileUnits is the width of one terrain tile in world units
	TileUnits = 128

	// MaxPlayers is the hard limit on player slots
	MaxPlayers = 8
)
