package gmath

import "math"

// Angles are 16-bit binary degrees: a full circle is AngleFull units, so
// uint16 arithmetic wraps naturally. Sin and Cos return values scaled by
// TrigScale.
const (
	AngleFull    = 65536
	AngleHalf    = AngleFull / 2
	AngleQuarter = AngleFull / 4

	TrigScale = 65536

	lutSize = 4096
	lutMask = lutSize - 1
)

var (
	sinLUT [lutSize]int32

	// atanLUT maps ratio [0,1] to angle [0, AngleFull/8] (one octant)
	atanLUT [lutSize]int32
)

func init() {
	for i := 0; i < lutSize; i++ {
		rad := 2 * math.Pi * float64(i) / lutSize
		sinLUT[i] = int32(math.Round(math.Sin(rad) * TrigScale))
	}
	for i := 0; i < lutSize; i++ {
		ratio := float64(i) / lutMask
		atanLUT[i] = int32(math.Round(math.Atan(ratio) / (2 * math.Pi) * AngleFull))
	}
}

// Deg converts degrees to angle units.
func Deg(d int32) int32 {
	return int32(int64(d) * AngleFull / 360)
}

// Sin returns sin(a) scaled by TrigScale for an angle in [0, AngleFull).
func Sin(a int32) int32 {
	return sinLUT[(uint16(a)>>4)&lutMask]
}

// Cos returns cos(a) scaled by TrigScale.
func Cos(a int32) int32 {
	return sinLUT[((uint16(a)+AngleQuarter)>>4)&lutMask]
}

// Atan2 returns the angle of (dx, dy) from the +X axis in [0, AngleFull).
// The zero vector maps to 0.
func Atan2(dy, dx int32) int32 {
	if dx == 0 && dy == 0 {
		return 0
	}
	adx, ady := Abs(dx), Abs(dy)

	var base int32
	if adx >= ady {
		idx := int64(ady) * lutMask / int64(adx)
		base = atanLUT[idx]
	} else {
		idx := int64(adx) * lutMask / int64(ady)
		base = AngleQuarter - atanLUT[idx]
	}

	switch {
	case dx > 0 && dy >= 0:
		return base
	case dx > 0:
		return AngleFull - base
	case dx < 0 && dy >= 0:
		return AngleHalf - base
	case dx < 0:
		return AngleHalf + base
	case dy > 0:
		return AngleQuarter
	default:
		return 3 * AngleQuarter
	}
}

// AngleDelta normalizes a to the shortest signed rotation [-AngleHalf, AngleHalf).
func AngleDelta(a int32) int32 {
	return int32(int16(uint16(a)))
}

// AngleLerp interpolates from a toward b by num/den along the shortest arc.
func AngleLerp(a, b uint16, num, den int32) uint16 {
	if den == 0 {
		return a
	}
	delta := AngleDelta(int32(b) - int32(a))
	return a + uint16(int64(delta)*int64(num)/int64(den))
}

// AngleVector returns the point at distance r in direction a.
func AngleVector(a, r int32) Vector2 {
	return Vector2{
		X: int32(int64(Cos(a)) * int64(r) / TrigScale),
		Y: int32(int64(Sin(a)) * int64(r) / TrigScale),
	}
}
