package nn

import (
	"fmt"

	"github.com/born-ml/backprop/internal/data"
	"github.com/born-ml/backprop/internal/prng"
)

// TrainEpoch runs one pass of per-sample SGD over ds.
//
// The visiting order is a Fisher-Yates permutation of 0..len(X)-1 drawn
// from a generator seeded with seed, so equal seeds give equal trajectories.
// Each sample gets Forward followed by Backward with learning rate lr.
//
// Mini-batch size is always 1 regardless of batchSize's value: the argument
// is accepted for API compatibility and otherwise ignored. The return value
// is the number of parameter updates performed, which always equals
// ds.Len().
//
// The dataset is validated against the network widths before any update, so
// a shape error leaves the parameters untouched.
func (m *MLP) TrainEpoch(ds data.Dataset, lr float64, batchSize int, seed int64) (int, error) {
	_ = batchSize

	if err := ds.Validate(m.InputSize(), m.OutputSize()); err != nil {
		return 0, fmt.Errorf("train epoch: %w", err)
	}

	updates := 0
	for _, idx := range prng.Permutation(ds.Len(), seed) {
		x, y := ds.Sample(idx)
		tr, err := m.Forward(x)
		if err != nil {
			return updates, fmt.Errorf("train epoch: sample %d: %w", idx, err)
		}
		if _, err := m.Backward(tr, y, lr); err != nil {
			return updates, fmt.Errorf("train epoch: sample %d: %w", idx, err)
		}
		updates++
	}
	return updates, nil
}

// LossOnDataset returns the mean per-sample loss over ds.
//
// MSE uses 0.5*Σ(a-y)² per sample; BCE uses the clamped cross-entropy of the
// first output. Parameters are not modified. An empty dataset has loss 0.
func (m *MLP) LossOnDataset(ds data.Dataset) (float64, error) {
	if err := ds.Validate(m.InputSize(), m.OutputSize()); err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	if ds.Len() == 0 {
		return 0, nil
	}

	total := 0.0
	for i := 0; i < ds.Len(); i++ {
		x, y := ds.Sample(i)
		pred, err := m.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("loss: sample %d: %w", i, err)
		}
		total += m.cfg.Loss.Value(pred, y)
	}
	return total / float64(ds.Len()), nil
}
