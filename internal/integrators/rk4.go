package integrators

import "github.com/san-kum/dynstep/internal/dynamo"

// RK4 is the classical four-stage Runge-Kutta scheme. It keeps no state of
// its own: stage derivatives live in the integrator's scratch, so a single
// RK4 value may be shared by concurrent runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

// Step performs exactly four evaluations of f and no allocations.
// Non-finite values are propagated, not detected.
func (r *RK4) Step(f dynamo.Func, in *dynamo.Integrator) {
	x, t, dt := in.U, in.T, in.Dt
	k1, k2, k3, k4, tmp := in.K1, in.K2, in.K3, in.K4, in.Tmp
	n := len(x)

	f(k1, x, t)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*0.5*k1[i]
	}
	f(k2, tmp, t+dt*0.5)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*0.5*k2[i]
	}
	f(k3, tmp, t+dt*0.5)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*k3[i]
	}
	f(k4, tmp, t+dt)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		x[i] += dt6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
}
