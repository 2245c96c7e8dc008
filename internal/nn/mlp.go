package nn

import (
	"fmt"

	"github.com/born-ml/backprop/internal/prng"
	"gonum.org/v1/gonum/mat"
)

// Config holds the construction-time hyperparameters of an MLP.
//
// Zero-valued Hidden, Output and Loss are replaced by Tanh, Sigmoid and BCE.
// Seed is used as given: 0 is a valid seed.
type Config struct {
	Hidden Activation // Activation of every hidden layer
	Output Activation // Activation of the output layer
	Loss   Loss       // Per-sample objective
	Seed   int64      // Weight initialization seed
}

// DefaultConfig returns the classification defaults: tanh hidden layers, a
// sigmoid output, binary cross-entropy and seed 1234.
func DefaultConfig() Config {
	return Config{
		Hidden: Tanh,
		Output: Sigmoid,
		Loss:   BCE,
		Seed:   1234,
	}
}

// withDefaults fills unset enums.
func (c Config) withDefaults() Config {
	if c.Hidden == 0 {
		c.Hidden = Tanh
	}
	if c.Output == 0 {
		c.Output = Sigmoid
	}
	if c.Loss == 0 {
		c.Loss = BCE
	}
	return c
}

// Validate reports unknown activations or losses.
func (c Config) Validate() error {
	c = c.withDefaults()
	if !c.Hidden.Valid() {
		return fmt.Errorf("hidden: %w: %v", ErrUnknownActivation, c.Hidden)
	}
	if !c.Output.Valid() {
		return fmt.Errorf("output: %w: %v", ErrUnknownActivation, c.Output)
	}
	if !c.Loss.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownLoss, c.Loss)
	}
	return nil
}

// MLP is a multilayer perceptron trained with single-sample SGD.
//
// The network is a stack of Dense layers. Layer l maps width
// layerSizes[l] to layerSizes[l+1]; every layer but the last uses the hidden
// activation, the last uses the output activation.
//
// Training is a two-phase protocol made explicit through Trace:
//
//	tr, err := model.Forward(x)      // read-only, returns the activation cache
//	grads, err := model.Backward(tr, y, lr)  // consumes tr, updates parameters
//
// Forward never mutates the model, so Predict and LossOnDataset are
// read-only and may run concurrently with each other. Backward mutates
// weights and biases in place and must not run concurrently with any other
// call on the same model.
type MLP struct {
	sizes  []int
	cfg    Config
	layers []*Dense

	// version counts parameter mutations. A Trace records the version it was
	// produced under; Backward rejects traces from an older version.
	version uint64
}

// New creates an MLP with the given layer widths.
//
// Parameters:
//   - layerSizes: [n0, n1, ..., nL] with at least two entries, all positive
//   - cfg: activations, loss and init seed (zero enums take the defaults)
//
// A single generator seeded with cfg.Seed initializes the layers in order,
// so two models built from the same sizes and config are bit-identical.
func New(layerSizes []int, cfg Config) (*MLP, error) {
	if len(layerSizes) < 2 {
		return nil, fmt.Errorf("%w: got %d sizes", ErrInvalidTopology, len(layerSizes))
	}
	for i, n := range layerSizes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: size %d is %d", ErrInvalidTopology, i, n)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	src := prng.New(cfg.Seed)
	numLayers := len(layerSizes) - 1
	layers := make([]*Dense, numLayers)
	for l := 0; l < numLayers; l++ {
		act := cfg.Hidden
		if l == numLayers-1 {
			act = cfg.Output
		}
		layers[l] = NewDense(layerSizes[l], layerSizes[l+1], act, src)
	}

	return &MLP{
		sizes:  append([]int(nil), layerSizes...),
		cfg:    cfg,
		layers: layers,
	}, nil
}

// Config returns the hyperparameters with defaults applied.
func (m *MLP) Config() Config {
	return m.cfg
}

// LayerSizes returns a copy of the topology.
func (m *MLP) LayerSizes() []int {
	return append([]int(nil), m.sizes...)
}

// InputSize returns n0.
func (m *MLP) InputSize() int {
	return m.sizes[0]
}

// OutputSize returns nL.
func (m *MLP) OutputSize() int {
	return m.sizes[len(m.sizes)-1]
}

// Layers returns the dense layers, input side first.
func (m *MLP) Layers() []*Dense {
	return append([]*Dense(nil), m.layers...)
}

// NumParameters returns the total count of weights and biases.
func (m *MLP) NumParameters() int {
	n := 0
	for _, l := range m.layers {
		n += l.outFeatures*l.inFeatures + l.outFeatures
	}
	return n
}

// Forward propagates x through every layer and returns the activation cache.
//
// The Trace holds L+1 activations (input first) and L pre-activations. It is
// valid for one Backward call as long as the parameters have not changed in
// between. Forward itself never mutates the model.
//
// Returns a *ShapeError if len(x) differs from the input width.
func (m *MLP) Forward(x []float64) (*Trace, error) {
	if len(x) != m.InputSize() {
		return nil, &ShapeError{Op: "forward", Field: "input", Index: -1, Want: m.InputSize(), Got: len(x)}
	}

	tr := &Trace{
		model:          m,
		version:        m.version,
		activations:    make([]*mat.VecDense, 0, len(m.layers)+1),
		preActivations: make([]*mat.VecDense, 0, len(m.layers)),
	}

	a := mat.NewVecDense(len(x), append([]float64(nil), x...))
	tr.activations = append(tr.activations, a)
	for _, layer := range m.layers {
		z, out := layer.forward(a)
		tr.preActivations = append(tr.preActivations, z)
		tr.activations = append(tr.activations, out)
		a = out
	}
	return tr, nil
}

// Predict returns the network output for x.
func (m *MLP) Predict(x []float64) ([]float64, error) {
	tr, err := m.Forward(x)
	if err != nil {
		return nil, err
	}
	return tr.Output(), nil
}

// sigmoidCrossEntropy reports whether the output delta collapses to a - y.
func (m *MLP) sigmoidCrossEntropy() bool {
	return m.cfg.Output == Sigmoid && m.cfg.Loss == BCE && m.OutputSize() == 1
}
