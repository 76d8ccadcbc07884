// Package dynamo provides the core primitives for fixed-step integration.
//
// The package defines the data every run is built from:
//
//   - [State]: vector representing system state, mutated in place
//   - [Func]: derivative evaluator writing dU/dt into a caller buffer
//   - [Grid]: immutable, uniformly spaced time discretization
//   - [Integrator]: the mutable context of one run (state, time, scratch)
//   - [Stepper]: numerical scheme advancing an [Integrator] by one interval
//
// # Example
//
//	grid, _ := dynamo.Linspace(0, 1, 101)
//	in, _ := dynamo.NewIntegrator(dynamo.State{5}, grid)
//	integrators.NewRK4().Step(decay, in)
//
// # Thread Safety
//
// An [Integrator] is owned by exactly one run. It is NOT thread-safe and
// must never be shared between concurrently executing runs; independent
// runs each build their own.
package dynamo
