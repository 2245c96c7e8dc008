// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import "github.com/born-ml/backprop/internal/optim"

// Optimizer updates gonum parameters in place from their gradients.
type Optimizer = optim.Optimizer

// SGD implements vanilla stochastic gradient descent.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.05})
func NewSGD(config SGDConfig) SGD {
	return optim.NewSGD(config)
}
