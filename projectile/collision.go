package projectile

import (
	"github.com/veyra/ballista/gmath"
)

// Collision times are expressed as fractions of the current tick,
// normalized to [0, 1024). Both the projectile and its target are swept
// along their tick segments, so fast movers cannot tunnel through each
// other between samples.

type interval struct {
	begin, end int32
}

func (i interval) empty() bool {
	return i.begin >= i.end
}

func (i interval) intersect(o interval) interval {
	return interval{gmath.Max(i.begin, o.begin), gmath.Min(i.end, o.end)}
}

// collisionZ finds when a coordinate moving linearly from z1 to z2 is
// within ±height of zero. Also used for the x and y slabs of rectangular
// targets, which are the same 1D problem.
func collisionZ(z1, z2, height int32) interval {
	ret := interval{-1, -1}
	if z1 > z2 {
		z1, z2 = -z1, -z2
	}

	if z1 > height || z2 < -height {
		return ret
	}

	if z1 == z2 {
		if z1 >= -height && z1 <= height {
			ret.begin = 0
			ret.end = 1024
		}
		return ret
	}

	ret.begin = 1024 * (-height - z1) / (z2 - z1)
	ret.end = 1024 * (height - z1) / (z2 - z1)
	return ret
}

// collisionXY finds when the XY point moving from (x1,y1) to (x2,y2)
// is within radius of the origin: solve |(1-t)v1 + t v2| = r for t.
func collisionXY(x1, y1, x2, y2, radius int32) interval {
	dx, dy := x2-x1, y2-y1
	a := int64(dx)*int64(dx) + int64(dy)*int64(dy)
	b := int64(x1)*int64(dx) + int64(y1)*int64(dy)
	c := int64(x1)*int64(x1) + int64(y1)*int64(y1) - int64(radius)*int64(radius)
	// a t² + 2 b t + c = 0, roots (-b ± √d)/a.
	d := b*b - a*c
	if d < 0 {
		return interval{-1, -1} // missed
	}
	if a == 0 {
		// Not moving relative to the target; either inside or outside
		// for the whole tick.
		if c < 0 {
			return interval{0, 1024}
		}
		return interval{-1, -1}
	}

	sd := int64(gmath.Sqrt64(uint64(d)))
	return interval{
		begin: gmath.Max(0, int32(1024*(-b-sd)/a)),
		end:   gmath.Min(1024, int32(1024*(-b+sd)/a)),
	}
}

// collisionXYZ sweeps the relative motion v1 -> v2 against a target
// shape of the given height centered at the origin. Returns the first
// contact time in [0, 1024], or -1 for a miss. The z slab is tested
// first since most candidates fail on altitude alone.
func collisionXYZ(v1, v2 gmath.Vector3, sh shape, height int32) int32 {
	i := collisionZ(v1.Z, v2.Z, height)
	if i.empty() {
		return -1
	}

	if sh.rectangular {
		i = i.intersect(collisionZ(v1.X, v2.X, sh.size.X))
		if i.empty() {
			return -1
		}
		i = i.intersect(collisionZ(v1.Y, v2.Y, sh.size.Y))
	} else {
		i = i.intersect(collisionXY(v1.X, v1.Y, v2.X, v2.Y, sh.radius))
	}

	if i.empty() {
		return -1
	}
	return gmath.Max(0, i.begin)
}
