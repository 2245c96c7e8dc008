package nn

import (
	"math"

	"github.com/born-ml/backprop/internal/prng"
	"gonum.org/v1/gonum/mat"
)

// InitScale returns the weight scale for a layer with the given fan-in.
//
// He scaling sqrt(2/fanIn) for ReLU layers, Xavier-style sqrt(1/fanIn)
// for everything else.
func InitScale(act Activation, fanIn int) float64 {
	if act == ReLU {
		return math.Sqrt(2 / float64(fanIn))
	}
	return math.Sqrt(1 / float64(fanIn))
}

// Uniform creates a [rows, cols] weight matrix with entries drawn from
// src, mapped from [0, 1) to [-1, 1) and multiplied by scale.
//
// Entries are filled row by row, one draw each.
func Uniform(rows, cols int, scale float64, src prng.Source) *mat.Dense {
	w := make([]float64, rows*cols)
	for i := range w {
		w[i] = (src.Float64()*2 - 1) * scale
	}
	return mat.NewDense(rows, cols, w)
}

// Zeros creates a zero vector of length n.
//
// This is used for bias initialization.
func Zeros(n int) *mat.VecDense {
	return mat.NewVecDense(n, nil)
}
