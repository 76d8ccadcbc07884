package sim

import (
	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

// Solve integrates f from u0 across every interval of grid with stepper.
//
// Iteration i (1 <= i < grid.Len()) steps from grid.At(i-1) to grid.At(i)
// and then invokes root exactly once with the updated integrator. The loop
// always runs to the end of the grid; there is no early exit. root may be
// nil. The returned state is a copy; u0 is never written.
//
// Errors are configuration errors detected before the first step.
func Solve(f dynamo.Func, u0 dynamo.State, grid dynamo.Grid, stepper dynamo.Stepper, root callback.Handler) (dynamo.State, error) {
	in, err := prepare(f, u0, grid, stepper)
	if err != nil {
		return nil, err
	}
	if root == nil {
		root = callback.Nop
	}

	loop(f, in, stepper, root)
	return in.U.Clone(), nil
}

func prepare(f dynamo.Func, u0 dynamo.State, grid dynamo.Grid, stepper dynamo.Stepper) (*dynamo.Integrator, error) {
	if f == nil {
		return nil, dynamo.NewConfigError("derivative function", nil, "must not be nil")
	}
	if stepper == nil {
		return nil, dynamo.NewConfigError("step method", nil, "must not be nil")
	}
	return dynamo.NewIntegrator(u0, grid)
}

func loop(f dynamo.Func, in *dynamo.Integrator, stepper dynamo.Stepper, root callback.Handler) {
	grid := in.Grid
	for i := 1; i < grid.Len(); i++ {
		in.T = grid.At(i - 1)
		stepper.Step(f, in)
		in.T = grid.At(i)
		in.Iter = i
		root.Invoke(i, in)
	}
}
