package gmath

// Rand is a deterministic xorshift64 generator. The simulation owns one
// instance per context; multiplayer peers seed identically and draw in
// identical order.
type Rand struct {
	state uint64
}

// NewRand returns a generator seeded with seed. A zero seed is replaced
// with 1, since xorshift has a fixed point at zero.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{state: seed}
}

func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (r *Rand) Intn(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return int32(r.Next() % uint64(n))
}

// Variation applies up to ±5% random variation to val.
func (r *Rand) Variation(val int32) int32 {
	return int32(int64(val) * int64(95000+r.Intn(10001)) / 100000)
}
