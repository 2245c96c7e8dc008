package optim

import "gonum.org/v1/gonum/mat"

// SGD implements vanilla stochastic gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// There is no momentum, weight decay or clipping, and no state between
// steps, so an SGD value can be created per update at no cost.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate; 0 makes every step a no-op
}

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.05})
func NewSGD(config SGDConfig) SGD {
	return SGD{lr: config.LR}
}

// StepMatrix applies param -= lr*grad.
func (s SGD) StepMatrix(param *mat.Dense, grad mat.Matrix) {
	var scaled mat.Dense
	scaled.Scale(s.lr, grad)
	param.Sub(param, &scaled)
}

// StepVector applies param -= lr*grad.
func (s SGD) StepVector(param *mat.VecDense, grad mat.Vector) {
	param.AddScaledVec(param, -s.lr, grad)
}

// LR returns the learning rate.
func (s SGD) LR() float64 {
	return s.lr
}
