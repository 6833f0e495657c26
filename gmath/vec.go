package gmath

// Vector2 is a 2D integer vector in world units.
type Vector2 struct {
	X, Y int32
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }

// Hypot returns the length of v, rounded down.
func (v Vector2) Hypot() int32 {
	return Hypot(v.X, v.Y)
}

// Heading returns the angle of v from the +X axis in [0, AngleFull).
func (v Vector2) Heading() int32 {
	return Atan2(v.Y, v.X)
}

// Vector3 is a 3D integer vector in world units, Z up.
type Vector3 struct {
	X, Y, Z int32
}

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// XY projects v onto the ground plane.
func (v Vector3) XY() Vector2 { return Vector2{v.X, v.Y} }

// Hypot returns the 3D length of v, rounded down.
func (v Vector3) Hypot() int32 {
	return Hypot3(v.X, v.Y, v.Z)
}

// MulDiv scales each component by num/den with 64-bit intermediates.
func (v Vector3) MulDiv(num, den int32) Vector3 {
	if den == 0 {
		return v
	}
	return Vector3{
		X: int32(int64(v.X) * int64(num) / int64(den)),
		Y: int32(int64(v.Y) * int64(num) / int64(den)),
		Z: int32(int64(v.Z) * int64(num) / int64(den)),
	}
}

// InSphere reports whether v lies within radius of center.
func (v Vector3) InSphere(center Vector3, radius int32) bool {
	d := v.Sub(center)
	return int64(d.X)*int64(d.X)+int64(d.Y)*int64(d.Y)+int64(d.Z)*int64(d.Z) <= int64(radius)*int64(radius)
}

// QuantiseFraction returns v*t/den - v*prevT/den per component. Summing
// consecutive calls over adjacent (prevT, t] windows reproduces v*t/den
// exactly, so partial ticks accumulate without drift.
func QuantiseFraction(v Vector3, den int32, t, prevT uint32) Vector3 {
	at := v.MulDiv(int32(t), den)
	prev := v.MulDiv(int32(prevT), den)
	return at.Sub(prev)
}
