package nn

import (
	"fmt"

	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/prng"
	"gonum.org/v1/gonum/mat"
)

// Dense is a fully connected (dense) layer followed by its activation.
//
// Performs the transformation:
//
//	z = W·a + b
//	out = f(z)
//
// where:
//   - a is the input vector with length in_features
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with length out_features
//   - f is the layer's activation
//
// Weights are initialized from a seeded source with InitScale; biases start
// at zero.
type Dense struct {
	inFeatures  int
	outFeatures int
	weight      *mat.Dense    // [out_features, in_features]
	bias        *mat.VecDense // [out_features]
	act         Activation
}

// NewDense creates a dense layer whose weights are drawn from src.
//
// Parameters:
//   - inFeatures: Number of input units (fan-in)
//   - outFeatures: Number of output units
//   - act: Activation applied after the affine transform; also picks the init scale
//   - src: Random source consumed row by row, inFeatures*outFeatures draws
//
// Returns a new Dense layer.
func NewDense(inFeatures, outFeatures int, act Activation, src prng.Source) *Dense {
	scale := InitScale(act, inFeatures)
	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      Uniform(outFeatures, inFeatures, scale, src),
		bias:        Zeros(outFeatures),
		act:         act,
	}
}

// forward returns the pre-activation and activation for input a.
//
// Both vectors are freshly allocated so a Trace can keep them.
func (l *Dense) forward(a *mat.VecDense) (z, out *mat.VecDense) {
	z = mat.NewVecDense(l.outFeatures, nil)
	z.MulVec(l.weight, a)
	z.AddVec(z, l.bias)

	out = mat.NewVecDense(l.outFeatures, nil)
	l.act.apply(out, z)
	return z, out
}

// step applies one update to the weight and bias in place.
func (l *Dense) step(g LayerGradient, opt optim.Optimizer) {
	opt.StepMatrix(l.weight, g.Weight)
	opt.StepVector(l.bias, g.Bias)
}

// Weight returns the weight matrix [out_features, in_features].
//
// The matrix is live: writing to it changes the layer. Prefer
// MLP.LoadStateDict, which also invalidates outstanding traces.
func (l *Dense) Weight() *mat.Dense {
	return l.weight
}

// Bias returns the live bias vector.
func (l *Dense) Bias() *mat.VecDense {
	return l.bias
}

// Activation returns the layer's activation.
func (l *Dense) Activation() Activation {
	return l.act
}

// InFeatures returns the number of input features.
func (l *Dense) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Dense) OutFeatures() int {
	return l.outFeatures
}

// stateDict returns copies of the parameters keyed "weight" and "bias".
func (l *Dense) stateDict() map[string][]float64 {
	w := make([]float64, 0, l.outFeatures*l.inFeatures)
	for r := 0; r < l.outFeatures; r++ {
		w = append(w, l.weight.RawRowView(r)...)
	}
	b := make([]float64, l.outFeatures)
	for i := range b {
		b[i] = l.bias.AtVec(i)
	}
	return map[string][]float64{"weight": w, "bias": b}
}

// validateStateDict checks names and sizes of one layer's entries.
func (l *Dense) validateStateDict(stateDict map[string][]float64) error {
	for name := range stateDict {
		if name != "weight" && name != "bias" {
			return fmt.Errorf("%w: unexpected parameter %q", ErrStateDict, name)
		}
	}

	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("%w: missing weight", ErrStateDict)
	}
	if len(weight) != l.outFeatures*l.inFeatures {
		return fmt.Errorf("%w: weight size mismatch: expected %d, got %d",
			ErrStateDict, l.outFeatures*l.inFeatures, len(weight))
	}

	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("%w: missing bias", ErrStateDict)
	}
	if len(bias) != l.outFeatures {
		return fmt.Errorf("%w: bias size mismatch: expected %d, got %d",
			ErrStateDict, l.outFeatures, len(bias))
	}
	return nil
}

// copyStateDict copies entries already checked by validateStateDict.
func (l *Dense) copyStateDict(stateDict map[string][]float64) {
	weight := stateDict["weight"]
	for r := 0; r < l.outFeatures; r++ {
		l.weight.SetRow(r, weight[r*l.inFeatures:(r+1)*l.inFeatures])
	}
	for i, v := range stateDict["bias"] {
		l.bias.SetVec(i, v)
	}
}
