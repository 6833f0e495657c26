// Package gmath provides deterministic integer math for the simulation.
// All trigonometry runs on lookup tables in 65536-unit angles and all
// roots are integer Newton/shift algorithms, so identical call sequences
// produce identical results on every platform.
package gmath

import "math/bits"

// Sqrt64 returns the integer square root of v, rounded down.
func Sqrt64(v uint64) uint32 {
	if v == 0 {
		return 0
	}
	var r uint64
	bit := uint64(1) << ((63 - uint(bits.LeadingZeros64(v))) &^ 1)
	for bit != 0 {
		if v >= r+bit {
			v -= r + bit
			r = r>>1 + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return uint32(r)
}

// Sqrt returns the integer square root of x, rounded down. Negative
// input yields 0.
func Sqrt(x int64) int32 {
	if x <= 0 {
		return 0
	}
	return int32(Sqrt64(uint64(x)))
}

// Hypot returns the Euclidean length of (x, y), rounded down.
func Hypot(x, y int32) int32 {
	return int32(Sqrt64(uint64(int64(x)*int64(x) + int64(y)*int64(y))))
}

// Hypot3 returns the Euclidean length of (x, y, z), rounded down.
func Hypot3(x, y, z int32) int32 {
	return int32(Sqrt64(uint64(int64(x)*int64(x) + int64(y)*int64(y) + int64(z)*int64(z))))
}

// Clip limits v to [lo, hi].
func Clip(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns the absolute value of x.
func Abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the larger of a and b.
func Max(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// MulDiv computes a*b/c with a 64-bit intermediate, rounding toward zero.
func MulDiv(a, b, c int32) int32 {
	if c == 0 {
		return 0
	}
	return int32(int64(a) * int64(b) / int64(c))
}
