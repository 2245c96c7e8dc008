package nn

import (
	"fmt"
	"strconv"
	"strings"
)

// StateDict returns a copy of every parameter keyed by layer index.
//
// Keys are "<layer>.weight" (row-major, [out_features*in_features]) and
// "<layer>.bias", e.g. "0.weight", "0.bias", "1.weight".
func (m *MLP) StateDict() map[string][]float64 {
	stateDict := make(map[string][]float64, 2*len(m.layers))
	for i, layer := range m.layers {
		for name, values := range layer.stateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = values
		}
	}
	return stateDict
}

// LoadStateDict overwrites the parameters from a state dict produced by
// StateDict on a model with the same topology.
//
// Every layer is validated before any value is copied. A successful load
// invalidates outstanding traces.
func (m *MLP) LoadStateDict(stateDict map[string][]float64) error {
	perLayer := make([]map[string][]float64, len(m.layers))
	for i := range perLayer {
		perLayer[i] = make(map[string][]float64, 2)
	}

	for key, values := range stateDict {
		prefix, name, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("%w: malformed key %q", ErrStateDict, key)
		}
		idx, err := strconv.Atoi(prefix)
		if err != nil || idx < 0 || idx >= len(m.layers) {
			return fmt.Errorf("%w: unknown layer in key %q", ErrStateDict, key)
		}
		perLayer[idx][name] = values
	}

	for i, layer := range m.layers {
		if err := layer.validateStateDict(perLayer[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	for i, layer := range m.layers {
		layer.copyStateDict(perLayer[i])
	}
	m.version++
	return nil
}
