// Package callback provides injectable per-step logic for the solver loop.
//
// A [Callback] pairs a [Condition] with an [Effect]. After every step the
// solver invokes one root [Handler]; a [Group] composes any number of
// handlers, including other groups, behind that single entry point:
//
//	rec, _ := callback.NewRecorder(
//	    callback.Observable{Name: "x", Extract: metrics.Component(0)},
//	)
//	every10, _ := rec.Every(10)
//	root := callback.NewGroup(every10, guard)
//	sim.Solve(f, u0, grid, integrators.NewRK4(), root)
//
// # State
//
// [IterationInterval] (one-shot latch), [WallClockInterval] (last-fired
// timestamp), [Recorder] and [Snapshot] carry mutable state. They belong to
// a single run and must not be shared between concurrently executing runs;
// build fresh instances per run instead.
package callback
