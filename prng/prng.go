// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package prng provides the seeded generator and Fisher-Yates shuffle used
// for weight initialization and epoch ordering.
//
// The generator is mulberry32: a 32-bit state, seeded from the low 32 bits
// of the seed, producing uniform values in [0, 1). It is fast and fully
// reproducible, and not suitable for cryptographic use.
package prng

import "github.com/born-ml/backprop/internal/prng"

// Source yields uniform values in [0, 1).
type Source = prng.Source

// Rand is a seeded mulberry32 generator.
type Rand = prng.Rand

// New returns a generator seeded with the low 32 bits of seed.
func New(seed int64) *Rand {
	return prng.New(seed)
}

// Func returns the generator as a closure.
func Func(seed int64) func() float64 {
	return prng.Func(seed)
}

// Range returns 0, 1, ..., n-1.
func Range(n int) []int {
	return prng.Range(n)
}

// Shuffle permutes s in place with one draw from src per position.
func Shuffle(s []int, src Source) {
	prng.Shuffle(s, src)
}

// Permutation returns a shuffled 0..n-1 using a fresh generator.
//
// Example:
//
//	order := prng.Permutation(10, 99) // [1 9 3 5 6 0 8 4 7 2]
func Permutation(n int, seed int64) []int {
	return prng.Permutation(n, seed)
}
