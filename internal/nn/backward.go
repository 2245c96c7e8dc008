package nn

import (
	"github.com/born-ml/backprop/internal/optim"
	"gonum.org/v1/gonum/mat"
)

// LayerGradient holds the loss gradient of one dense layer.
type LayerGradient struct {
	Weight *mat.Dense    // dL/dW = delta ⊗ a_prev, [out_features, in_features]
	Bias   *mat.VecDense // dL/db = delta
}

// Gradients holds per-layer gradients, input side first.
type Gradients struct {
	Layers []LayerGradient
}

// OutputDelta returns a copy of the output layer's error signal dL/dz_L.
func (g *Gradients) OutputDelta() []float64 {
	return toSlice(g.Layers[len(g.Layers)-1].Bias)
}

// Backward backpropagates the error of the traced sample and applies one SGD
// step with learning rate lr.
//
// Output delta:
//   - sigmoid output, BCE loss, one output unit: delta = a_L - y exactly
//     (the sigmoid derivative cancels against the cross-entropy gradient).
//   - otherwise: delta = (a_L - y) ⊙ f'_out(z_L). This is exact for MSE.
//     For BCE with a non-sigmoid output or several output units it is an
//     approximation, kept as a known limitation.
//
// The delta then walks down the stack: layer l gets dW = delta ⊗ a_l and
// db = delta, and for l > 0 the next delta is (W_lᵀ·delta) ⊙ f'_hidden(z_{l-1})
// using W_l from before the update. After all gradients are computed every
// layer is updated in place with W -= lr*dW, b -= lr*db. No momentum, weight
// decay or clipping.
//
// The trace must come from Forward on this model with no parameter change
// since; otherwise ErrStaleTrace. A trace is spent by a successful Backward.
// Returns a *ShapeError if len(target) differs from the output width.
//
// The returned gradients are the ones that were applied.
func (m *MLP) Backward(tr *Trace, target []float64, lr float64) (*Gradients, error) {
	if tr == nil {
		return nil, ErrNilTrace
	}
	if tr.model != m || tr.version != m.version {
		return nil, ErrStaleTrace
	}
	if len(target) != m.OutputSize() {
		return nil, &ShapeError{Op: "backward", Field: "target", Index: -1, Want: m.OutputSize(), Got: len(target)}
	}

	numLayers := len(m.layers)
	y := mat.NewVecDense(len(target), append([]float64(nil), target...))
	aL := tr.activations[numLayers]

	delta := mat.NewVecDense(aL.Len(), nil)
	delta.SubVec(aL, y)
	if !m.sigmoidCrossEntropy() {
		deriv := mat.NewVecDense(aL.Len(), nil)
		m.cfg.Output.derive(deriv, tr.preActivations[numLayers-1])
		delta.MulElemVec(delta, deriv)
	}

	grads := &Gradients{Layers: make([]LayerGradient, numLayers)}
	for l := numLayers - 1; l >= 0; l-- {
		layer := m.layers[l]

		dW := mat.NewDense(layer.outFeatures, layer.inFeatures, nil)
		dW.Outer(1, delta, tr.activations[l])
		grads.Layers[l] = LayerGradient{
			Weight: dW,
			Bias:   mat.VecDenseCopyOf(delta),
		}

		if l > 0 {
			prev := mat.NewVecDense(layer.inFeatures, nil)
			prev.MulVec(layer.weight.T(), delta)

			deriv := mat.NewVecDense(layer.inFeatures, nil)
			m.cfg.Hidden.derive(deriv, tr.preActivations[l-1])
			prev.MulElemVec(prev, deriv)
			delta = prev
		}
	}

	sgd := optim.NewSGD(optim.SGDConfig{LR: lr})
	for l, layer := range m.layers {
		layer.step(grads.Layers[l], sgd)
	}
	m.version++

	return grads, nil
}
