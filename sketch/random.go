package sketch

import (
	"math"

	"cogentcore.org/core/base/randx"
)

// Random is a seeded source for every random decision of a sketch. The same seed reproduces the same artwork.
type Random struct {
	seed uint64
	rnd  *randx.SysRand
}

// NewRandom seeds a generator. Seed 0 picks a fresh seed, which Seed reports afterwards.
func NewRandom(seed uint64) *Random {
	for seed == 0 {
		seed = randx.NewGlobalRand().Uint64()
	}
	return &Random{
		seed: seed,
		rnd:  randx.NewSysRand(int64(seed)),
	}
}

func (r *Random) Seed() uint64 {
	return r.seed
}

// Value returns a float in [0, 1).
func (r *Random) Value() float32 {
	return r.rnd.Float32()
}

// Range returns a float in [min, max).
func (r *Random) Range(min float32, max float32) float32 {
	v := min + r.rnd.Float32()*(max-min)
	if v >= max && max > min {
		// float32 rounding can land on the open bound
		return math.Nextafter32(max, min)
	}
	return v
}

// Gaussian returns a normally distributed float with mean 0 and standard deviation 1.
func (r *Random) Gaussian() float32 {
	return float32(randx.GaussianGen(0, 1, r.rnd))
}

// Index returns an int in [0, n). n must be positive.
func (r *Random) Index(n int) int {
	return r.rnd.Intn(n)
}

// Pick returns a random element of items, or the zero value if items is empty.
func Pick[T any](r *Random, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Index(len(items))]
}
