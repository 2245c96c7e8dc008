// Package optim implements the parameter update rules used in training.
//
// Design inspired by PyTorch's torch.optim: an optimizer owns the update
// rule, the model owns the parameters and gradients. Updates are applied in
// place to gonum matrices and vectors.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	opt.StepMatrix(weight, gradWeight)
//	opt.StepVector(bias, gradBias)
package optim

import "gonum.org/v1/gonum/mat"

// Optimizer updates parameters in place from their gradients.
type Optimizer interface {
	// StepMatrix updates a weight matrix. grad must have param's shape.
	StepMatrix(param *mat.Dense, grad mat.Matrix)

	// StepVector updates a bias vector. grad must have param's length.
	StepVector(param *mat.VecDense, grad mat.Vector)

	// LR returns the learning rate.
	LR() float64
}
