// Package playground bundles the demo experiments of the backprop engine:
// dataset, topology and hyperparameters for XOR, line fitting and two moons,
// plus a Session that trains one model epoch by epoch and records losses.
package playground

import (
	"errors"
	"fmt"

	"github.com/born-ml/backprop/internal/data"
	"github.com/born-ml/backprop/internal/nn"
)

// ErrInvalidExperiment is returned when an experiment cannot be run.
var ErrInvalidExperiment = errors.New("invalid experiment")

// Domain is the rectangle [XMin, XMax] x [YMin, YMax] a model is plotted on.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Experiment describes one training run.
type Experiment struct {
	Name         string
	Layers       []int        // Layer widths, input first
	Config       nn.Config    // Activations, loss and init seed
	LearningRate float64      // SGD step size
	BatchSize    int          // Passed through to TrainEpoch (always 1 in effect)
	Epochs       int          // Default number of epochs for a full run
	Seed         int64        // Base of the per-epoch shuffle seeds
	Dataset      data.Dataset // Training set
	Domain       Domain       // Plot rectangle for grids and curves

	// sample regenerates Dataset for a seed; nil for fixed datasets.
	sample func(seed int64) data.Dataset
}

// Reseed returns a copy that uses seed for weight initialization, epoch
// shuffling and, for generated datasets, sampling.
func (e Experiment) Reseed(seed int64) Experiment {
	e.Seed = seed
	e.Config.Seed = seed
	if e.sample != nil {
		e.Dataset = e.sample(seed)
	}
	return e
}

// Validate checks the experiment against its dataset.
func (e Experiment) Validate() error {
	if e.LearningRate < 0 {
		return fmt.Errorf("%w: %s: negative learning rate %v", ErrInvalidExperiment, e.Name, e.LearningRate)
	}
	if e.Epochs < 0 {
		return fmt.Errorf("%w: %s: negative epochs %d", ErrInvalidExperiment, e.Name, e.Epochs)
	}
	if len(e.Layers) < 2 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidExperiment, e.Name, nn.ErrInvalidTopology)
	}
	if err := e.Dataset.Validate(e.Layers[0], e.Layers[len(e.Layers)-1]); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidExperiment, e.Name, err)
	}
	return nil
}

// hiddenLayers returns [in, hidden, out], or [in, out] when hidden <= 0.
func hiddenLayers(in, hidden, out int) []int {
	if hidden <= 0 {
		return []int{in, out}
	}
	return []int{in, hidden, out}
}

// XOR returns the XOR classification experiment.
//
// Defaults: 8 tanh hidden units, sigmoid output, BCE, lr 0.2, 200 epochs,
// seed 1. A zero activation selects tanh; hidden <= 0 drops the hidden
// layer, which cannot separate XOR.
func XOR(hidden int, act nn.Activation) Experiment {
	if act == 0 {
		act = nn.Tanh
	}
	const seed = 1
	return Experiment{
		Name:   "xor",
		Layers: hiddenLayers(2, hidden, 1),
		Config: nn.Config{
			Hidden: act,
			Output: nn.Sigmoid,
			Loss:   nn.BCE,
			Seed:   seed,
		},
		LearningRate: 0.2,
		BatchSize:    1,
		Epochs:       200,
		Seed:         seed,
		Dataset:      data.XOR(),
		Domain:       Domain{XMin: -1.2, XMax: 1.2, YMin: -1.2, YMax: 1.2},
	}
}

// Regression returns the noisy line fitting experiment.
//
// The data are 80 samples of y = 1.8x - 0.5 with noise 0.2, drawn with the
// experiment seed 7. The output is linear with MSE, lr 0.05, 200 epochs.
// hidden <= 0 gives a single linear unit; otherwise act (default linear)
// is used for the hidden layer.
func Regression(hidden int, act nn.Activation) Experiment {
	if act == 0 {
		act = nn.Linear
	}
	const seed = 7
	return Experiment{
		Name:   "regression",
		Layers: hiddenLayers(1, hidden, 1),
		Config: nn.Config{
			Hidden: act,
			Output: nn.Linear,
			Loss:   nn.MSE,
			Seed:   seed,
		},
		LearningRate: 0.05,
		BatchSize:    1,
		Epochs:       200,
		Seed:         seed,
		Dataset:      sampleRegression(seed),
		Domain:       Domain{XMin: -1, XMax: 1, YMin: -3, YMax: 2},
		sample:       sampleRegression,
	}
}

// Moons returns the two moons classification experiment.
//
// Defaults: 100 samples per class with noise 0.08, 16 tanh hidden units,
// sigmoid output, BCE, lr 0.1, 100 epochs, seed 7.
func Moons(hidden int, act nn.Activation) Experiment {
	if act == 0 {
		act = nn.Tanh
	}
	const seed = 7
	return Experiment{
		Name:   "moons",
		Layers: hiddenLayers(2, hidden, 1),
		Config: nn.Config{
			Hidden: act,
			Output: nn.Sigmoid,
			Loss:   nn.BCE,
			Seed:   seed,
		},
		LearningRate: 0.1,
		BatchSize:    1,
		Epochs:       100,
		Seed:         seed,
		Dataset:      sampleMoons(seed),
		Domain:       Domain{XMin: -1.2, XMax: 1.2, YMin: -1.2, YMax: 1.2},
		sample:       sampleMoons,
	}
}

func sampleRegression(seed int64) data.Dataset {
	return data.Regression(80, seed, 1.8, -0.5, 0.2)
}

func sampleMoons(seed int64) data.Dataset {
	return data.Moons(100, seed, 0.08)
}

// Presets maps experiment names to their constructors.
var Presets = map[string]func(hidden int, act nn.Activation) Experiment{
	"xor":        XOR,
	"regression": Regression,
	"moons":      Moons,
}

var defaultHidden = map[string]int{
	"xor":        8,
	"regression": 0,
	"moons":      16,
}

// Preset returns the named experiment with its default hidden width and
// the given activation (zero keeps the preset's activation).
func Preset(name string, act nn.Activation) (Experiment, error) {
	build, ok := Presets[name]
	if !ok {
		return Experiment{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidExperiment, name)
	}
	return build(defaultHidden[name], act), nil
}

// Hidden returns the width of the single hidden layer, or 0 if there is
// none.
func (e Experiment) Hidden() int {
	if len(e.Layers) == 3 {
		return e.Layers[1]
	}
	return 0
}
