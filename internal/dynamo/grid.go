package dynamo

import "math"

// uniformTol is the relative deviation from the mean spacing a grid may
// carry before it is rejected as non-uniform.
const uniformTol = 1e-9

// Grid is a strictly increasing, uniformly spaced sequence of time points.
// It is read-only once built.
type Grid struct {
	points []float64
	dt     float64
}

// Linspace builds a grid of n evenly spaced points over [start, stop].
func Linspace(start, stop float64, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, NewConfigError("grid points", n, "need at least 2")
	}
	if !(stop > start) || math.IsInf(stop-start, 0) || math.IsNaN(stop-start) {
		return Grid{}, NewConfigError("grid range", [2]float64{start, stop}, "stop must be finite and greater than start")
	}

	dt := (stop - start) / float64(n-1)
	points := make([]float64, n)
	for i := range points {
		points[i] = start + float64(i)*dt
	}
	points[n-1] = stop

	return Grid{points: points, dt: dt}, nil
}

// NewGrid validates explicit time points. The points are copied.
func NewGrid(points []float64) (Grid, error) {
	n := len(points)
	if n < 2 {
		return Grid{}, NewConfigError("grid points", n, "need at least 2")
	}

	dt := (points[n-1] - points[0]) / float64(n-1)
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Grid{}, NewConfigError("grid spacing", dt, "must be positive and finite")
	}

	for i := 1; i < n; i++ {
		h := points[i] - points[i-1]
		if !(h > 0) {
			return Grid{}, NewConfigError("grid point", points[i], "not strictly increasing")
		}
		if math.Abs(h-dt) > uniformTol*dt {
			return Grid{}, NewConfigError("grid spacing", h, "non-uniform grids are unsupported")
		}
	}

	owned := make([]float64, n)
	copy(owned, points)
	return Grid{points: owned, dt: dt}, nil
}

func (g Grid) Len() int         { return len(g.points) }
func (g Grid) At(i int) float64 { return g.points[i] }
func (g Grid) Dt() float64      { return g.dt }
func (g Grid) Start() float64   { return g.points[0] }
func (g Grid) End() float64     { return g.points[len(g.points)-1] }
func (g Grid) Steps() int       { return len(g.points) - 1 }
func (g Grid) IsZero() bool     { return len(g.points) == 0 }

// Points returns a copy of the time points.
func (g Grid) Points() []float64 {
	out := make([]float64, len(g.points))
	copy(out, g.points)
	return out
}
