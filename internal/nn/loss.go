package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Loss selects the per-sample objective.
//
// The zero value means "unset"; New replaces it with BCE.
type Loss int

// Supported losses.
const (
	// MSE is half the squared error: L = 0.5 * Σ(a - y)².
	//
	// Its gradient with respect to the output activation is exactly a - y.
	MSE Loss = iota + 1

	// BCE is binary cross-entropy over a single output unit:
	//
	//	L = -(y*log(p) + (1-y)*log(1-p))
	//
	// p is clamped to [1e-7, 1-1e-7] before taking logarithms.
	BCE
)

// bceEpsilon keeps log() finite at saturated predictions.
const bceEpsilon = 1e-7

var lossNames = map[Loss]string{
	MSE: "mse",
	BCE: "bce",
}

// ParseLoss resolves a lowercase loss name ("mse" or "bce").
func ParseLoss(name string) (Loss, error) {
	for l, n := range lossNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
}

// String returns the lowercase name, or "Loss(n)" for unknown values.
func (l Loss) String() string {
	if n, ok := lossNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Loss(%d)", int(l))
}

// Valid reports whether l is one of the supported losses.
func (l Loss) Valid() bool {
	_, ok := lossNames[l]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (l Loss) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLoss, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Loss) UnmarshalText(text []byte) error {
	parsed, err := ParseLoss(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Value computes the loss of a single prediction.
//
// BCE reads only the first prediction and target. The caller guarantees equal
// lengths; the engine validates shapes before calling.
func (l Loss) Value(prediction, target []float64) float64 {
	switch l {
	case MSE:
		diff := make([]float64, len(prediction))
		floats.SubTo(diff, prediction, target)
		return 0.5 * floats.Dot(diff, diff)
	case BCE:
		p := math.Min(math.Max(prediction[0], bceEpsilon), 1-bceEpsilon)
		y := target[0]
		return -(y*math.Log(p) + (1-y)*math.Log(1-p))
	default:
		panic(fmt.Sprintf("nn: value of unknown loss %v", l))
	}
}
