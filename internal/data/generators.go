package data

import (
	"math"

	"github.com/born-ml/backprop/internal/prng"
)

// XOR returns the four XOR corners with inputs in {-1, 1} and targets 0/1.
func XOR() Dataset {
	return Dataset{
		X: [][]float64{
			{-1, -1},
			{-1, 1},
			{1, -1},
			{1, 1},
		},
		Y: Scalars([]float64{0, 1, 1, 0}),
	}
}

// Regression samples n points of the line y = a*x + b with uniform noise.
//
// For each point x is drawn uniformly from [-1, 1), then the noise term is
// drawn uniformly from [-noise, noise). Draw order is fixed, so a seed
// always yields the same set.
func Regression(n int, seed int64, a, b, noise float64) Dataset {
	rng := prng.New(seed)
	x := make([][]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		xi := -1 + 2*rng.Float64()
		yi := a*xi + b + (rng.Float64()*2-1)*noise
		x = append(x, []float64{xi})
		y = append(y, yi)
	}
	return Dataset{X: x, Y: Scalars(y)}
}

// Moons samples two interleaving half circles of n points each.
//
// The first n samples belong to class 0 (upper moon centered at the origin),
// the next n to class 1 (lower moon shifted by (1, -0.5)). Radii are
// jittered by up to ±noise. Both axes are rescaled into [-1, 1].
func Moons(n int, seed int64, noise float64) Dataset {
	rng := prng.New(seed)
	x := make([][]float64, 0, 2*n)
	y := make([]float64, 0, 2*n)

	for i := 0; i < n; i++ {
		t := math.Pi * rng.Float64()
		r := 1 + (rng.Float64()*2-1)*noise
		x = append(x, []float64{r * math.Cos(t), r * math.Sin(t)})
		y = append(y, 0)
	}
	for i := 0; i < n; i++ {
		t := math.Pi * rng.Float64()
		r := 1 + (rng.Float64()*2-1)*noise
		x = append(x, []float64{1 - r*math.Cos(t), -0.5 - r*math.Sin(t)})
		y = append(y, 1)
	}

	normalize(x)
	return Dataset{X: x, Y: Scalars(y)}
}

// normalize rescales 2-D points in place so each axis spans [-1, 1].
func normalize(points [][]float64) {
	if len(points) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	sx := 2 / (maxX - minX)
	sy := 2 / (maxY - minY)
	for _, p := range points {
		p[0] = -1 + (p[0]-minX)*sx
		p[1] = -1 + (p[1]-minY)*sy
	}
}
