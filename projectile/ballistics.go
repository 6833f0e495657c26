package projectile

import (
	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/gmath"
)

// calcIndirectVelocities finds vx and vz solving
//
//	dz = -1/2 g t² + vz t
//	dx = vx t
//	v² = vx² + vz²
//
// for a shot covering horizontal distance dx and height difference dz
// at nominal speed v. Speed is increased when the target is out of
// reach, decreased when the solution would launch downward, and varied
// by up to ±5% so salvos don't share one path. minAngle, when
// positive, forces at least that launch pitch so arcing shots clear
// obstacles in front of the muzzle. Returns the velocity components
// and the flight time in ticks.
func (s *Simulation) calcIndirectVelocities(dx, dz, v, minAngle int32) (vx, vz, t int32) {
	const g = constants.Gravity

	a := s.rng.Variation(v*v) - dz*g                                       // units²/s²
	b := uint64(g) * g * uint64(int64(dx)*int64(dx)+int64(dz)*int64(dz))   // units⁴/s⁴
	c := int64(a)*int64(a) - int64(b)                                      // units⁴/s⁴
	if c < 0 {
		// Target too high for this speed: pick the smallest velocity
		// with a solution. +1 since the square root rounds down.
		a = int32(gmath.Sqrt64(b)) + 1
		c = int64(a)*int64(a) - int64(b)
	}

	// a - √c ≥ 0, since c ≤ a².
	t = gmath.Max(1, int32(gmath.Sqrt64(uint64(2*(int64(a)-int64(gmath.Sqrt64(uint64(c)))))))*(constants.TicksPerSecond/g))
	vx = dx * constants.TicksPerSecond / t
	vz = dz*constants.TicksPerSecond/t + g*t/(2*constants.TicksPerSecond)

	if vz < 0 {
		// Never launch downward; reduce speed and let gravity do it.
		// vz < 0 implies dz < 0, so the radicand is non-negative.
		t = gmath.Max(1, int32(gmath.Sqrt64(uint64(-2*int64(dz)*constants.TicksPerSecond*constants.TicksPerSecond/g))))
		vx = dx * constants.TicksPerSecond / t
		vz = 0
	}

	if gmath.Atan2(vz, vx) < minAngle {
		// Steepen to the minimum pitch; recovers t from tan(minAngle).
		tan := int64(gmath.Sin(minAngle)) * gmath.TrigScale / int64(gmath.Cos(minAngle))
		t = gmath.Max(1, int32(gmath.Sqrt64(uint64(2*(int64(dx)*tan-int64(dz)*gmath.TrigScale)*constants.TicksPerSecond*constants.TicksPerSecond/(int64(g)*gmath.TrigScale)))))
		vx = dx * constants.TicksPerSecond / t
		vz = int32(tan * int64(vx) / gmath.TrigScale)
	}

	return vx, vz, t
}
