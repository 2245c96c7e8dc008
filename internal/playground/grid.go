package playground

import (
	"fmt"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/parallel"
)

// Grid holds a model's first output sampled on a cols x rows lattice.
//
// Row 0 is the top edge (YMax) and column 0 the left edge (XMin), in the
// order pixels are painted. Values is row-major.
type Grid struct {
	Cols, Rows int
	Domain     Domain
	Values     []float64
}

// At returns the value at column c, row r.
func (g Grid) At(c, r int) float64 {
	return g.Values[r*g.Cols+c]
}

// Point returns the input coordinates sampled for column c, row r.
func (g Grid) Point(c, r int) (x, y float64) {
	d := g.Domain
	x = d.XMin + float64(c)/float64(g.Cols)*(d.XMax-d.XMin)
	y = d.YMin + float64(g.Rows-r)/float64(g.Rows)*(d.YMax-d.YMin)
	return x, y
}

// DecisionGrid evaluates a two-input model over domain.
//
// Each cell is sampled at its top-left corner, so the first row lies on
// YMax and the first column on XMin. For a sigmoid output the values are
// class-1 probabilities. Rows are evaluated concurrently; the model must
// not be trained while the grid is computed.
func DecisionGrid(model *nn.MLP, domain Domain, cols, rows int) (Grid, error) {
	return decisionGrid(model, domain, cols, rows, parallel.DefaultConfig())
}

func decisionGrid(model *nn.MLP, domain Domain, cols, rows int, cfg parallel.Config) (Grid, error) {
	if model.InputSize() != 2 {
		return Grid{}, fmt.Errorf("decision grid: %w: model takes %d inputs, need 2", nn.ErrShape, model.InputSize())
	}
	if cols <= 0 || rows <= 0 {
		return Grid{}, fmt.Errorf("decision grid: invalid size %dx%d", cols, rows)
	}

	g := Grid{
		Cols:   cols,
		Rows:   rows,
		Domain: domain,
		Values: make([]float64, cols*rows),
	}
	err := parallel.For(rows, cfg, func(r int) error {
		in := make([]float64, 2)
		for c := 0; c < cols; c++ {
			in[0], in[1] = g.Point(c, r)
			out, err := model.Predict(in)
			if err != nil {
				return fmt.Errorf("decision grid: row %d: %w", r, err)
			}
			g.Values[r*cols+c] = out[0]
		}
		return nil
	})
	if err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Curve samples a one-input model at n+1 evenly spaced points of
// [xMin, xMax], endpoints included. It returns the x and y coordinates.
func Curve(model *nn.MLP, xMin, xMax float64, n int) (xs, ys []float64, err error) {
	if model.InputSize() != 1 {
		return nil, nil, fmt.Errorf("curve: %w: model takes %d inputs, need 1", nn.ErrShape, model.InputSize())
	}
	if n <= 0 {
		return nil, nil, fmt.Errorf("curve: invalid resolution %d", n)
	}

	xs = make([]float64, n+1)
	ys = make([]float64, n+1)
	for i := 0; i <= n; i++ {
		x := xMin + (xMax-xMin)*float64(i)/float64(n)
		out, err := model.Predict([]float64{x})
		if err != nil {
			return nil, nil, fmt.Errorf("curve: %w", err)
		}
		xs[i], ys[i] = x, out[0]
	}
	return xs, ys, nil
}
