// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/prng"
)

// MLP is a multilayer perceptron trained with per-sample SGD.
type MLP = nn.MLP

// Config holds activations, loss and the init seed of an MLP.
type Config = nn.Config

// New creates an MLP with the given layer widths.
//
// Example:
//
//	model, err := nn.New([]int{2, 8, 1}, nn.DefaultConfig())
func New(layerSizes []int, cfg Config) (*MLP, error) {
	return nn.New(layerSizes, cfg)
}

// DefaultConfig returns tanh hidden layers, a sigmoid output, BCE and seed 1234.
func DefaultConfig() Config {
	return nn.DefaultConfig()
}

// Layers

// Dense is one fully connected layer of an MLP.
type Dense = nn.Dense

// NewDense creates a standalone layer with uniform initialization.
func NewDense(inFeatures, outFeatures int, act Activation, src prng.Source) *Dense {
	return nn.NewDense(inFeatures, outFeatures, act, src)
}

// Activations

// Activation is an elementwise nonlinearity.
type Activation = nn.Activation

// Supported activations.
const (
	ReLU    = nn.ReLU
	Tanh    = nn.Tanh
	Sigmoid = nn.Sigmoid
	Linear  = nn.Linear
)

// ParseActivation parses "relu", "tanh", "sigmoid" or "linear".
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Losses

// Loss is a per-sample objective.
type Loss = nn.Loss

// Supported losses.
const (
	MSE = nn.MSE
	BCE = nn.BCE
)

// ParseLoss parses "mse" or "bce".
func ParseLoss(name string) (Loss, error) {
	return nn.ParseLoss(name)
}

// Training

// Trace is the activation cache produced by Forward.
type Trace = nn.Trace

// Gradients are the per-layer gradients applied by Backward.
type Gradients = nn.Gradients

// LayerGradient holds the weight and bias gradient of one layer.
type LayerGradient = nn.LayerGradient

// Checkpoints

// Checkpoint is a model plus its training state, stored as a .bprp file.
type Checkpoint = nn.Checkpoint

// LoadCheckpoint reads a checkpoint from a .bprp file and rebuilds the model.
//
// Example:
//
//	ckpt, err := nn.LoadCheckpoint("xor.bprp")
//	out, err := ckpt.Model.Predict([]float64{1, 0})
func LoadCheckpoint(path string) (*Checkpoint, error) {
	return nn.LoadCheckpoint(path)
}

// DecodeCheckpoint reads a checkpoint from r.
func DecodeCheckpoint(r io.Reader) (*Checkpoint, error) {
	return nn.DecodeCheckpoint(r)
}

// Errors

// ShapeError reports a vector of the wrong length.
type ShapeError = nn.ShapeError

// Sentinel errors.
var (
	ErrInvalidTopology   = nn.ErrInvalidTopology
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrUnknownLoss       = nn.ErrUnknownLoss
	ErrNilTrace          = nn.ErrNilTrace
	ErrStaleTrace        = nn.ErrStaleTrace
	ErrStateDict         = nn.ErrStateDict
	ErrShape             = nn.ErrShape
)
