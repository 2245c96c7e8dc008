package nn

import (
	"errors"
	"flag"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// TestActivationApply tests forward values of every activation.
func TestActivationApply(t *testing.T) {
	input := []float64{-2, -0.5, 0, 0.5, 2}

	tests := []struct {
		act      Activation
		expected []float64
	}{
		{ReLU, []float64{0, 0, 0, 0.5, 2}},
		{Tanh, []float64{-0.9640, -0.4621, 0, 0.4621, 0.9640}},
		{Sigmoid, []float64{0.1192, 0.3775, 0.5, 0.6225, 0.8808}},
		{Linear, []float64{-2, -0.5, 0, 0.5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			for i, x := range input {
				assert.InDelta(t, tt.expected[i], tt.act.Apply(x), 1e-4, "%v(%v)", tt.act, x)
			}
		})
	}
}

// TestActivationDerivative checks analytic derivatives against central
// finite differences away from the ReLU kink.
func TestActivationDerivative(t *testing.T) {
	points := []float64{-3, -1.2, -0.3, 0.4, 1.1, 2.5}
	settings := &fd.Settings{Formula: fd.Central}

	for _, act := range []Activation{ReLU, Tanh, Sigmoid, Linear} {
		t.Run(act.String(), func(t *testing.T) {
			for _, z := range points {
				numerical := fd.Derivative(act.Apply, z, settings)
				assert.InDelta(t, numerical, act.Derivative(z), 1e-6, "%v'(%v)", act, z)
			}
		})
	}
}

// TestReLUDerivativeAtZero pins the subgradient choice f'(0) = 0.
func TestReLUDerivativeAtZero(t *testing.T) {
	assert.Equal(t, 0.0, ReLU.Derivative(0))
	assert.Equal(t, 1.0, ReLU.Derivative(1e-12))
}

// TestSigmoidSaturation verifies no NaN at extreme inputs.
func TestSigmoidSaturation(t *testing.T) {
	for _, x := range []float64{-1000, 1000} {
		y := Sigmoid.Apply(x)
		d := Sigmoid.Derivative(x)
		assert.False(t, math.IsNaN(y))
		assert.False(t, math.IsNaN(d))
		assert.InDelta(t, 0, d, 1e-12)
	}
}

// TestActivationVector tests the vector helpers used by the layers.
func TestActivationVector(t *testing.T) {
	z := mat.NewVecDense(3, []float64{-1, 0, 2})
	dst := mat.NewVecDense(3, nil)

	ReLU.apply(dst, z)
	assert.Equal(t, []float64{0, 0, 2}, dst.RawVector().Data)

	Linear.derive(dst, z)
	assert.Equal(t, []float64{1, 1, 1}, dst.RawVector().Data)
}

// TestParseActivation tests name round-trips and unknown names.
func TestParseActivation(t *testing.T) {
	for _, name := range []string{"relu", "tanh", "sigmoid", "linear"} {
		act, err := ParseActivation(name)
		require.NoError(t, err)
		assert.Equal(t, name, act.String())
		assert.True(t, act.Valid())
	}

	_, err := ParseActivation("softmax")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownActivation))

	_, err = ParseActivation("ReLU")
	assert.True(t, errors.Is(err, ErrUnknownActivation), "names are case sensitive")

	assert.False(t, Activation(0).Valid())
	assert.Equal(t, "Activation(42)", Activation(42).String())
}

// TestActivationText tests the encoding.TextUnmarshaler hook used by flags.
func TestActivationText(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	act := Tanh
	fs.TextVar(&act, "activation", Tanh, "")

	require.NoError(t, fs.Parse([]string{"-activation", "relu"}))
	assert.Equal(t, ReLU, act)

	text, err := Sigmoid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sigmoid", string(text))

	_, err = Activation(9).MarshalText()
	assert.True(t, errors.Is(err, ErrUnknownActivation))

	assert.Error(t, act.UnmarshalText([]byte("gelu")))
	assert.Equal(t, ReLU, act, "failed unmarshal must not change the value")
}
