// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a small multilayer perceptron trained with
// backpropagation and per-sample stochastic gradient descent.
//
// # Overview
//
// This package contains:
//   - MLP: fully connected network built from layer widths
//   - Activations: ReLU, Tanh, Sigmoid, Linear
//   - Losses: MSE (0.5*Σ(a-y)²) and BCE (clamped binary cross-entropy)
//   - Trace: the activation cache of one forward pass
//   - StateDict / LoadStateDict for parameter transfer
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/data"
//	    "github.com/born-ml/backprop/nn"
//	)
//
//	func main() {
//	    model, err := nn.New([]int{2, 8, 1}, nn.Config{
//	        Hidden: nn.Tanh,
//	        Output: nn.Sigmoid,
//	        Loss:   nn.BCE,
//	        Seed:   1,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ds := data.XOR()
//	    for e := 0; e < 200; e++ {
//	        if _, err := model.TrainEpoch(ds, 0.2, 1, int64(1+e)); err != nil {
//	            log.Fatal(err)
//	        }
//	    }
//
//	    loss, _ := model.LossOnDataset(ds)
//	    fmt.Printf("loss: %.4f\n", loss)
//	}
//
// # Forward and Backward
//
// Training one sample is two explicit calls. Forward is read-only and
// returns a Trace; Backward consumes it, applies one SGD step and returns
// the gradients it used:
//
//	tr, err := model.Forward(x)
//	grads, err := model.Backward(tr, y, lr)
//
// A Trace is only valid until the parameters change. Backward rejects a
// reused or foreign trace with ErrStaleTrace.
//
// # Initialization
//
// Weights are drawn uniformly from [-s, s) with s = sqrt(2/fanIn) for ReLU
// layers and sqrt(1/fanIn) otherwise, using one seeded generator for the
// whole network. Biases start at zero. Equal seeds give identical models.
//
// # Concurrency
//
// An MLP is not safe for concurrent use. Forward, Predict and LossOnDataset
// do not modify the model; Backward, TrainEpoch and LoadStateDict do.
package nn
