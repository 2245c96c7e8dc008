package nn_test

import (
	"errors"
	"testing"

	"github.com/born-ml/backprop/internal/data"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDict_Keys(t *testing.T) {
	m := newModel(t, []int{3, 4, 2}, nn.DefaultConfig())
	state := m.StateDict()

	require.Len(t, state, 4)
	assert.Len(t, state["0.weight"], 12)
	assert.Len(t, state["0.bias"], 4)
	assert.Len(t, state["1.weight"], 8)
	assert.Len(t, state["1.bias"], 2)

	// Row-major: entry r*in+c is W[r][c].
	w := m.Layers()[0].Weight()
	assert.Equal(t, w.At(2, 1), state["0.weight"][2*3+1])
}

// TestStateDict_IsCopy verifies callers cannot mutate parameters through it.
func TestStateDict_IsCopy(t *testing.T) {
	m := newModel(t, []int{2, 1}, nn.DefaultConfig())
	state := m.StateDict()
	state["0.weight"][0] = 42

	assert.NotEqual(t, 42.0, m.StateDict()["0.weight"][0])
}

// TestLoadStateDict_RoundTrip transfers a trained model into a fresh one.
func TestLoadStateDict_RoundTrip(t *testing.T) {
	cfg := nn.Config{Hidden: nn.Tanh, Output: nn.Sigmoid, Loss: nn.BCE, Seed: 1}
	trained := newModel(t, []int{2, 8, 1}, cfg)
	train(t, trained, data.XOR(), 0.2, 20, 1)

	cfg.Seed = 99
	fresh := newModel(t, []int{2, 8, 1}, cfg)
	require.NoError(t, fresh.LoadStateDict(trained.StateDict()))
	assert.Equal(t, trained.StateDict(), fresh.StateDict())

	want, err := trained.LossOnDataset(data.XOR())
	require.NoError(t, err)
	got, err := fresh.LossOnDataset(data.XOR())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestLoadStateDict_Errors checks validation happens before any copy.
func TestLoadStateDict_Errors(t *testing.T) {
	m := newModel(t, []int{2, 3, 1}, nn.DefaultConfig())
	good := m.StateDict()

	clone := func(mutate func(map[string][]float64)) map[string][]float64 {
		out := make(map[string][]float64, len(good))
		for k, v := range good {
			out[k] = append([]float64(nil), v...)
		}
		mutate(out)
		return out
	}

	tests := []struct {
		name  string
		state map[string][]float64
	}{
		{"missing weight", clone(func(s map[string][]float64) { delete(s, "1.weight") })},
		{"missing bias", clone(func(s map[string][]float64) { delete(s, "0.bias") })},
		{"short weight", clone(func(s map[string][]float64) { s["0.weight"] = s["0.weight"][:5] })},
		{"long bias", clone(func(s map[string][]float64) { s["1.bias"] = []float64{0, 0} })},
		{"unknown layer", clone(func(s map[string][]float64) { s["2.weight"] = []float64{1} })},
		{"malformed key", clone(func(s map[string][]float64) { s["weight"] = []float64{1} })},
		{"unexpected name", clone(func(s map[string][]float64) { s["0.gamma"] = []float64{1} })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Poison layer 0 so a partial copy would be visible.
			if w, ok := tt.state["0.weight"]; ok && len(w) == 6 {
				tt.state["0.weight"] = []float64{9, 9, 9, 9, 9, 9}
			}

			err := m.LoadStateDict(tt.state)
			require.Error(t, err)
			assert.True(t, errors.Is(err, nn.ErrStateDict), "got %v", err)
			assert.Equal(t, good, m.StateDict())
		})
	}
}
