package nn

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/born-ml/backprop/internal/serialization"
)

var errNilModel = errors.New("checkpoint: nil model")

// Checkpoint is a snapshot of a model and the training state around it.
//
// The model parameters and architecture are written to a .bprp file
// together with the epoch, update count and loss, so training can resume
// from the same point. SGD has no optimizer state beyond the learning rate.
//
// Example:
//
//	ckpt := &nn.Checkpoint{Model: model, Epoch: 10, Step: 40, Loss: 0.12, LearningRate: 0.2}
//	err := ckpt.Save("xor_epoch_10.bprp")
//
// To resume:
//
//	ckpt, err := nn.LoadCheckpoint("xor_epoch_10.bprp")
//	model := ckpt.Model
type Checkpoint struct {
	Model        *MLP              // Trained network
	Epoch        int               // Epochs trained so far
	Step         int64             // SGD updates performed so far
	Loss         float64           // Dataset loss at this point
	LearningRate float64           // SGD step size in use
	Experiment   string            // Experiment name, may be empty
	Metadata     map[string]string // Additional metadata
	CreatedAt    time.Time         // Set on Encode when zero
}

// Encode writes the checkpoint to w in .bprp format.
func (c *Checkpoint) Encode(w io.Writer) error {
	header, tensors, err := c.contents()
	if err != nil {
		return err
	}
	if err := serialization.Write(w, header, tensors); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Save writes the checkpoint to a .bprp file at path.
func (c *Checkpoint) Save(path string) error {
	header, tensors, err := c.contents()
	if err != nil {
		return err
	}
	if err := serialization.Save(path, header, tensors); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// contents converts the checkpoint to a header and named tensors.
func (c *Checkpoint) contents() (serialization.Header, map[string]serialization.Tensor, error) {
	if c.Model == nil {
		return serialization.Header{}, nil, errNilModel
	}

	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	m := c.Model
	header := serialization.Header{
		CreatedAt: created,
		Model: serialization.ModelMeta{
			LayerSizes: m.LayerSizes(),
			Hidden:     m.cfg.Hidden.String(),
			Output:     m.cfg.Output.String(),
			Loss:       m.cfg.Loss.String(),
			Seed:       m.cfg.Seed,
		},
		Metadata: c.Metadata,
		Checkpoint: &serialization.CheckpointMeta{
			Epoch:        c.Epoch,
			Step:         c.Step,
			Loss:         c.Loss,
			LearningRate: c.LearningRate,
			Experiment:   c.Experiment,
		},
	}

	stateDict := m.StateDict()
	tensors := make(map[string]serialization.Tensor, len(stateDict))
	for i, layer := range m.layers {
		weight := fmt.Sprintf("%d.weight", i)
		bias := fmt.Sprintf("%d.bias", i)
		tensors[weight] = serialization.Tensor{Shape: []int{layer.outFeatures, layer.inFeatures}, Data: stateDict[weight]}
		tensors[bias] = serialization.Tensor{Shape: []int{layer.outFeatures}, Data: stateDict[bias]}
	}

	return header, tensors, nil
}

// DecodeCheckpoint reads a checkpoint written by Encode and rebuilds the
// model from its recorded architecture.
func DecodeCheckpoint(r io.Reader) (*Checkpoint, error) {
	f, err := serialization.Read(r)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	return fromFile(f)
}

// LoadCheckpoint reads a checkpoint from a .bprp file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := serialization.Load(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	return fromFile(f)
}

func fromFile(f *serialization.File) (*Checkpoint, error) {
	meta := f.Header.Model

	var cfg Config
	var err error
	if cfg.Hidden, err = ParseActivation(meta.Hidden); err != nil {
		return nil, fmt.Errorf("checkpoint: hidden: %w", err)
	}
	if cfg.Output, err = ParseActivation(meta.Output); err != nil {
		return nil, fmt.Errorf("checkpoint: output: %w", err)
	}
	if cfg.Loss, err = ParseLoss(meta.Loss); err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	cfg.Seed = meta.Seed

	m, err := New(meta.LayerSizes, cfg)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}

	stateDict := make(map[string][]float64, len(f.Tensors))
	for i, layer := range m.layers {
		want := map[string][]int{
			fmt.Sprintf("%d.weight", i): {layer.outFeatures, layer.inFeatures},
			fmt.Sprintf("%d.bias", i):   {layer.outFeatures},
		}
		for name, shape := range want {
			t, ok := f.Tensors[name]
			if !ok {
				continue
			}
			if !equalShape(t.Shape, shape) {
				return nil, fmt.Errorf("checkpoint: %w: %s has shape %v, expected %v", ErrStateDict, name, t.Shape, shape)
			}
		}
	}
	for name, t := range f.Tensors {
		stateDict[name] = t.Data
	}
	if err := m.LoadStateDict(stateDict); err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}

	c := &Checkpoint{
		Model:     m,
		Metadata:  f.Header.Metadata,
		CreatedAt: f.Header.CreatedAt,
	}
	if cm := f.Header.Checkpoint; cm != nil {
		c.Epoch = cm.Epoch
		c.Step = cm.Step
		c.Loss = cm.Loss
		c.LearningRate = cm.LearningRate
		c.Experiment = cm.Experiment
	}
	return c, nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
