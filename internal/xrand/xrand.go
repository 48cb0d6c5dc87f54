// Package xrand is a seeded pseudo-random source. Equal seeds produce equal sequences.
package xrand

import (
	"math/big"
	"math/rand/v2"
)

// golden mixes the seed into the second PCG word
const golden = 0x9e3779b97f4a7c15

type Rand interface {
	// Uint128 returns a uniformly distributed value in [0, 2^128).
	Uint128() *big.Int
}

type r struct {
	seed uint64

	r *rand.Rand
}

type option func(r *r)

func WithSeed(seed int64) option {
	return func(r *r) {
		r.seed = uint64(seed)
	}
}

func New(opts ...option) Rand {
	r := &r{}
	for _, o := range opts {
		o(r)
	}
	r.r = rand.New(rand.NewPCG(r.seed, r.seed^golden)) //nolint:gosec

	return r
}

func (r *r) Uint128() *big.Int {
	hi, lo := r.r.Uint64(), r.r.Uint64()

	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)

	return v.Or(v, new(big.Int).SetUint64(lo))
}
