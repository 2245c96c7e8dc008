// Package prng provides the deterministic random source used for weight
// initialization, dataset noise and epoch shuffling.
//
// Every stream is a pure function of its seed: two generators built from the
// same seed yield identical sequences forever. The generator is mulberry32,
// a 32-bit counter-based mixer that is cheap, has no bad seeds and is easy to
// reproduce outside of Go.
package prng

// Source is anything that yields floats in [0, 1).
//
// *Rand implements Source. Tests may substitute a scripted source.
type Source interface {
	Float64() float64
}

// Rand is a seeded mulberry32 generator.
//
// Rand is stateful and not safe for concurrent use. Consumers that expect
// independent streams must each own their generator.
type Rand struct {
	state uint32
}

// mulberry32 increment (Weyl sequence step).
const weyl = 0x6D2B79F5

// New creates a generator seeded with the low 32 bits of seed.
//
// Any integer is a valid seed, including 0 and negative values. Negative
// seeds wrap through two's complement, so New(-1) and New(0xFFFFFFFF) share
// a stream.
func New(seed int64) *Rand {
	return &Rand{state: uint32(seed)} //nolint:gosec // truncation is the seeding rule
}

// Uint32 returns the next raw 32-bit output.
func (r *Rand) Uint32() uint32 {
	r.state += weyl
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
//
// Values are multiples of 2^-32.
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Func returns the generator as a closure, one value per call.
func Func(seed int64) func() float64 {
	r := New(seed)
	return r.Float64
}

// Range returns the sequence 0, 1, ..., n-1.
//
// Returns an empty slice for n <= 0.
func Range(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Shuffle permutes s in place with a Fisher-Yates walk from the back.
//
// Exactly one draw is consumed for every position i = len(s)-1 down to 1,
// and the swap partner is floor(draw * (i+1)).
func Shuffle(s []int, src Source) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		s[i], s[j] = s[j], s[i]
	}
}

// Permutation returns a shuffled copy of Range(n) using a fresh generator
// seeded with seed.
func Permutation(n int, seed int64) []int {
	idx := Range(n)
	Shuffle(idx, New(seed))
	return idx
}
