package nn

import "gonum.org/v1/gonum/mat"

// Trace is the activation cache of one forward pass.
//
// It is produced by MLP.Forward and consumed by MLP.Backward on the same
// model. A trace is single-use: Backward updates the parameters, after which
// the trace is stale and a second Backward with it fails with ErrStaleTrace.
// Independent traces may be produced concurrently as long as no Backward
// runs at the same time.
type Trace struct {
	model          *MLP
	version        uint64
	activations    []*mat.VecDense // a[0] = input, a[L] = output
	preActivations []*mat.VecDense // z[l] feeds a[l+1]
}

// Output returns a copy of the final activation a[L].
func (t *Trace) Output() []float64 {
	return t.Activation(len(t.activations) - 1)
}

// Activation returns a copy of a[l]; a[0] is the input.
func (t *Trace) Activation(l int) []float64 {
	return toSlice(t.activations[l])
}

// PreActivation returns a copy of z[l], the input to layer l's activation.
func (t *Trace) PreActivation(l int) []float64 {
	return toSlice(t.preActivations[l])
}

// NumLayers returns L, the number of dense layers traversed.
func (t *Trace) NumLayers() int {
	return len(t.preActivations)
}

func toSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
