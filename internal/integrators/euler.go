package integrators

import "github.com/san-kum/dynstep/internal/dynamo"

// Euler is the explicit first-order scheme, one evaluation per step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Func, in *dynamo.Integrator) {
	x, dx := in.U, in.K1
	f(dx, x, in.T)
	for i := range x {
		x[i] += in.Dt * dx[i]
	}
}
