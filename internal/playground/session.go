package playground

import (
	"fmt"
	"slices"

	"github.com/born-ml/backprop/internal/data"
	"github.com/born-ml/backprop/internal/nn"
)

// Session trains one model on one experiment, epoch by epoch.
//
// Epoch e (counted from the last Reset) shuffles with Experiment.Seed + e,
// so a session stepped 1 epoch at a time follows the same trajectory as
// one stepped all at once. The dataset loss is recorded after every epoch.
//
// A Session is not safe for concurrent use.
type Session struct {
	exp    Experiment
	model  *nn.MLP
	epoch  int
	steps  int64
	losses []float64
}

// NewSession validates exp and builds a fresh model for it.
func NewSession(exp Experiment) (*Session, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	s := &Session{exp: exp}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the model and the loss history and re-initializes from
// the experiment config.
func (s *Session) Reset() error {
	model, err := nn.New(s.exp.Layers, s.exp.Config)
	if err != nil {
		return fmt.Errorf("%s: %w", s.exp.Name, err)
	}
	s.model = model
	s.epoch = 0
	s.steps = 0
	s.losses = nil
	return nil
}

// Step trains for the given number of epochs and returns the losses
// recorded by this call.
func (s *Session) Step(epochs int) ([]float64, error) {
	start := len(s.losses)
	for i := 0; i < epochs; i++ {
		seed := s.exp.Seed + int64(s.epoch)
		n, err := s.model.TrainEpoch(s.exp.Dataset, s.exp.LearningRate, s.exp.BatchSize, seed)
		if err != nil {
			return s.since(start), fmt.Errorf("%s: epoch %d: %w", s.exp.Name, s.epoch, err)
		}
		s.epoch++
		s.steps += int64(n)

		loss, err := s.model.LossOnDataset(s.exp.Dataset)
		if err != nil {
			return s.since(start), fmt.Errorf("%s: epoch %d: %w", s.exp.Name, s.epoch, err)
		}
		s.losses = append(s.losses, loss)
	}
	return s.since(start), nil
}

// Run trains for Experiment.Epochs epochs.
func (s *Session) Run() ([]float64, error) {
	return s.Step(s.exp.Epochs)
}

func (s *Session) since(start int) []float64 {
	return append([]float64(nil), s.losses[start:]...)
}

// Losses returns a copy of the loss history since the last Reset.
func (s *Session) Losses() []float64 {
	return s.since(0)
}

// Epoch returns the number of epochs trained since the last Reset.
func (s *Session) Epoch() int {
	return s.epoch
}

// Steps returns the number of SGD updates since the last Reset.
func (s *Session) Steps() int64 {
	return s.steps
}

// Loss returns the current dataset loss.
func (s *Session) Loss() (float64, error) {
	return s.model.LossOnDataset(s.exp.Dataset)
}

// Model returns the model being trained.
func (s *Session) Model() *nn.MLP {
	return s.model
}

// Experiment returns the experiment the session was created with.
func (s *Session) Experiment() Experiment {
	return s.exp
}

// Checkpoint snapshots the session. The model is shared, not copied, so
// the checkpoint should be saved before training continues.
func (s *Session) Checkpoint() (*nn.Checkpoint, error) {
	loss, err := s.Loss()
	if err != nil {
		return nil, err
	}
	return &nn.Checkpoint{
		Model:        s.model,
		Epoch:        s.epoch,
		Step:         s.steps,
		Loss:         loss,
		LearningRate: s.exp.LearningRate,
		Experiment:   s.exp.Name,
	}, nil
}

// Load replaces the model with the checkpointed one and continues counting
// epochs from the checkpoint. The loss history starts empty.
//
// The checkpoint must match the experiment's layer sizes and config.
func (s *Session) Load(c *nn.Checkpoint) error {
	if c == nil || c.Model == nil {
		return fmt.Errorf("%w: %s: empty checkpoint", ErrInvalidExperiment, s.exp.Name)
	}
	if c.Experiment != "" && c.Experiment != s.exp.Name {
		return fmt.Errorf("%w: checkpoint is for %q, session runs %q", ErrInvalidExperiment, c.Experiment, s.exp.Name)
	}
	if !slices.Equal(c.Model.LayerSizes(), s.exp.Layers) {
		return fmt.Errorf("%w: %s: checkpoint layers %v, experiment has %v",
			ErrInvalidExperiment, s.exp.Name, c.Model.LayerSizes(), s.exp.Layers)
	}
	if got, want := c.Model.Config(), s.exp.Config; got.Hidden != want.Hidden || got.Output != want.Output || got.Loss != want.Loss {
		return fmt.Errorf("%w: %s: checkpoint uses %s/%s/%s, experiment %s/%s/%s", ErrInvalidExperiment, s.exp.Name,
			got.Hidden, got.Output, got.Loss, want.Hidden, want.Output, want.Loss)
	}

	s.model = c.Model
	s.epoch = c.Epoch
	s.steps = c.Step
	s.losses = nil
	return nil
}

// Accuracy returns the fraction of samples whose first output lands on the
// same side of 0.5 as the first target. An empty dataset scores 0.
func Accuracy(model *nn.MLP, ds data.Dataset) (float64, error) {
	if err := ds.Validate(model.InputSize(), model.OutputSize()); err != nil {
		return 0, fmt.Errorf("accuracy: %w", err)
	}
	if ds.Len() == 0 {
		return 0, nil
	}

	correct := 0
	for i := 0; i < ds.Len(); i++ {
		x, y := ds.Sample(i)
		pred, err := model.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("accuracy: sample %d: %w", i, err)
		}
		if (pred[0] >= 0.5) == (y[0] >= 0.5) {
			correct++
		}
	}
	return float64(correct) / float64(ds.Len()), nil
}
