// Package data holds the (inputs, targets) pairs fed to the MLP engine and
// the toy generators used by the demos.
package data

import (
	"errors"
	"fmt"
)

// ErrShape is wrapped by every shape mismatch reported by this module.
var ErrShape = errors.New("shape mismatch")

// ShapeError describes a vector whose length does not match the expected
// layer width, or a dataset whose inputs and targets disagree in count.
type ShapeError struct {
	Op    string // Operation that detected the mismatch (e.g. "forward")
	Field string // What was measured (e.g. "input", "target", "targets")
	Index int    // Sample index, or -1 when not tied to a sample
	Want  int
	Got   int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: sample %d %s: expected length %d, got %d", e.Op, e.Index, e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s: expected length %d, got %d", e.Op, e.Field, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// Dataset is a read-only set of parallel inputs and targets.
//
// Scalar targets are stored as length-1 vectors; use Scalars to wrap them.
type Dataset struct {
	X [][]float64 // Input vectors, each of the network's input width
	Y [][]float64 // Target vectors, each of the network's output width
}

// New builds a dataset from inputs and vector targets.
func New(x, y [][]float64) Dataset {
	return Dataset{X: x, Y: y}
}

// Scalars wraps scalar targets as length-1 vectors.
func Scalars(y []float64) [][]float64 {
	out := make([][]float64, len(y))
	for i, v := range y {
		out[i] = []float64{v}
	}
	return out
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.X)
}

// Sample returns the i-th input and target.
func (d Dataset) Sample(i int) (x, y []float64) {
	return d.X[i], d.Y[i]
}

// Validate checks sample counts and per-sample widths.
//
// Returns a *ShapeError for the first mismatch found.
func (d Dataset) Validate(inDim, outDim int) error {
	if len(d.X) != len(d.Y) {
		return &ShapeError{Op: "dataset", Field: "targets", Index: -1, Want: len(d.X), Got: len(d.Y)}
	}
	for i := range d.X {
		if len(d.X[i]) != inDim {
			return &ShapeError{Op: "dataset", Field: "input", Index: i, Want: inDim, Got: len(d.X[i])}
		}
		if len(d.Y[i]) != outDim {
			return &ShapeError{Op: "dataset", Field: "target", Index: i, Want: outDim, Got: len(d.Y[i])}
		}
	}
	return nil
}
