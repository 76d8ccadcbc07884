package analysis

import (
	"math"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
	"github.com/san-kum/dynstep/internal/sim"
)

// Lyapunov estimates the largest Lyapunov exponent of f by integrating a
// reference and a perturbed trajectory side by side as one doubled state.
// Every period iterations a callback measures their separation, adds its
// log growth and rescales the perturbed copy back to distance d0.
type Lyapunov struct {
	f      dynamo.Func
	dim    int
	d0     float64
	period int

	sumLog  float64
	elapsed float64
	lastT   float64
}

func NewLyapunov(f dynamo.Func, dim int, d0 float64, period int) (*Lyapunov, error) {
	if f == nil {
		return nil, dynamo.NewConfigError("derivative function", nil, "must not be nil")
	}
	if dim <= 0 {
		return nil, dynamo.NewConfigError("dimension", dim, "must be positive")
	}
	if !(d0 > 0) || math.IsInf(d0, 1) {
		return nil, dynamo.NewConfigError("perturbation", d0, "must be positive and finite")
	}
	if period <= 0 {
		return nil, dynamo.NewConfigError("period", period, "must be positive")
	}
	return &Lyapunov{f: f, dim: dim, d0: d0, period: period}, nil
}

func (l *Lyapunov) derive(du, u dynamo.State, t float64) {
	n := l.dim
	l.f(du[:n], u[:n], t)
	l.f(du[n:], u[n:], t)
}

// Apply renormalizes the perturbed half of the doubled state.
func (l *Lyapunov) Apply(_ int, in *dynamo.Integrator) {
	n := l.dim
	ref, pert := in.U[:n], in.U[n:]

	sep := 0.0
	for i := range ref {
		d := pert[i] - ref[i]
		sep += d * d
	}
	sep = math.Sqrt(sep)
	if !(sep > 0) || math.IsInf(sep, 0) {
		return
	}

	l.sumLog += math.Log(sep / l.d0)
	l.elapsed += in.T - l.lastT
	l.lastT = in.T

	scale := l.d0 / sep
	for i := range pert {
		pert[i] = ref[i] + (pert[i]-ref[i])*scale
	}
}

// Estimate runs from u0 over grid and returns the exponent in units of
// 1/time. The perturbation is applied along the first component.
func (l *Lyapunov) Estimate(u0 dynamo.State, grid dynamo.Grid, stepper dynamo.Stepper) (float64, error) {
	if len(u0) != l.dim {
		return 0, dynamo.ErrDimensionMismatch
	}

	doubled := make(dynamo.State, 2*l.dim)
	copy(doubled, u0)
	copy(doubled[l.dim:], u0)
	doubled[l.dim] += l.d0

	every, err := callback.Every(l.period)
	if err != nil {
		return 0, err
	}
	cb, err := callback.New(every, l)
	if err != nil {
		return 0, err
	}

	l.sumLog, l.elapsed = 0, 0
	if !grid.IsZero() {
		l.lastT = grid.Start()
	}
	if _, err := sim.Solve(l.derive, doubled, grid, stepper, cb); err != nil {
		return 0, err
	}
	if l.elapsed == 0 {
		return 0, ErrTooShort
	}
	return l.sumLog / l.elapsed, nil
}
