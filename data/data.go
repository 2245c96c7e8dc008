// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides datasets and the toy generators used to exercise
// the MLP: XOR corners, a noisy line and two interleaving moons.
//
// All generators are deterministic in their seed.
package data

import "github.com/born-ml/backprop/internal/data"

// Dataset is a set of input vectors X with target vectors Y.
type Dataset = data.Dataset

// ShapeError reports a vector of the wrong length.
type ShapeError = data.ShapeError

// ErrShape is wrapped by every ShapeError.
var ErrShape = data.ErrShape

// New builds a dataset from inputs and targets.
func New(x, y [][]float64) Dataset {
	return data.New(x, y)
}

// Scalars wraps each scalar target as a length-1 vector.
func Scalars(y []float64) [][]float64 {
	return data.Scalars(y)
}

// XOR returns the four XOR corners in {-1, 1}² with targets 0/1.
func XOR() Dataset {
	return data.XOR()
}

// Regression samples n points of y = a*x + b plus uniform noise in
// [-noise, noise), with x uniform in [-1, 1).
func Regression(n int, seed int64, a, b, noise float64) Dataset {
	return data.Regression(n, seed, a, b, noise)
}

// Moons samples n points per class on two interleaving half circles,
// normalized into [-1, 1]².
//
// Example:
//
//	ds := data.Moons(100, 7, 0.08) // 200 samples
func Moons(n int, seed int64, noise float64) Dataset {
	return data.Moons(n, seed, noise)
}
