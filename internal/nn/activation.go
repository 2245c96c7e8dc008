package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation selects the element-wise nonlinearity applied after a dense
// layer's affine transform.
//
// The zero value means "unset"; New replaces it with the default for the
// position (Tanh for hidden layers, Sigmoid for the output layer).
type Activation int

// Supported activations.
const (
	// ReLU applies f(x) = max(0, x). f'(x) = 1 for x > 0, else 0.
	ReLU Activation = iota + 1

	// Tanh applies f(x) = tanh(x). f'(x) = 1 - tanh(x)².
	Tanh

	// Sigmoid applies σ(x) = 1 / (1 + exp(-x)). σ'(x) = σ(x)(1 - σ(x)).
	Sigmoid

	// Linear is the identity. f'(x) = 1.
	Linear
)

var activationNames = map[Activation]string{
	ReLU:    "relu",
	Tanh:    "tanh",
	Sigmoid: "sigmoid",
	Linear:  "linear",
}

// ParseActivation resolves a lowercase activation name.
//
// Returns ErrUnknownActivation for anything outside relu, tanh, sigmoid and
// linear.
func ParseActivation(name string) (Activation, error) {
	for a, n := range activationNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
}

// String returns the lowercase name, or "Activation(n)" for unknown values.
func (a Activation) String() string {
	if n, ok := activationNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	_, ok := activationNames[a]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (a Activation) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownActivation, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Activation) UnmarshalText(text []byte) error {
	parsed, err := ParseActivation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case Tanh:
		return math.Tanh(x)
	case Sigmoid:
		return sigmoid(x)
	case Linear:
		return x
	default:
		panic(fmt.Sprintf("nn: apply of unknown activation %v", a))
	}
}

// Derivative evaluates the activation's derivative at the pre-activation z.
func (a Activation) Derivative(z float64) float64 {
	switch a {
	case ReLU:
		if z > 0 {
			return 1
		}
		return 0
	case Tanh:
		t := math.Tanh(z)
		return 1 - t*t
	case Sigmoid:
		s := sigmoid(z)
		return s * (1 - s)
	case Linear:
		return 1
	default:
		panic(fmt.Sprintf("nn: derivative of unknown activation %v", a))
	}
}

// apply writes f(z) into dst element-wise.
func (a Activation) apply(dst, z *mat.VecDense) {
	for i := 0; i < z.Len(); i++ {
		dst.SetVec(i, a.Apply(z.AtVec(i)))
	}
}

// derive writes f'(z) into dst element-wise.
func (a Activation) derive(dst, z *mat.VecDense) {
	for i := 0; i < z.Len(); i++ {
		dst.SetVec(i, a.Derivative(z.AtVec(i)))
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
