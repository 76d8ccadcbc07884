package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite. The solver never calls
// it; non-finite values propagate silently unless a caller checks.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Func evaluates dU/dt at (u, t) and writes the result into du.
// Implementations must not retain du or u.
type Func func(du, u State, t float64)

// Stepper advances in.U by one grid interval in.Dt starting at in.T.
type Stepper interface {
	Step(f Func, in *Integrator)
}

// Hamiltonian is implemented by models with a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Configurable is implemented by models with named tunable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
