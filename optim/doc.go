// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rule used to train MLPs.
//
// # Overview
//
// This package contains:
//   - SGD: vanilla stochastic gradient descent, param -= lr * grad
//   - Optimizer interface for gonum-backed parameters
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/nn"
//	    "github.com/born-ml/backprop/optim"
//	)
//
//	layer := model.Layers()[0]
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	sgd.StepMatrix(layer.Weight(), gradWeight)
//	sgd.StepVector(layer.Bias(), gradBias)
//
// MLP.Backward applies SGD itself; use this package directly only to
// apply gradients returned by Backward to another model.
package optim
