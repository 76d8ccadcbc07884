// Package analysis characterizes trajectories produced by the solver.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a recorded series
//   - [PhasePortrait]: ASCII scatter of one series against another
//   - [Lyapunov]: largest Lyapunov exponent via a renormalizing callback
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	est, _ := analysis.NewLyapunov(model.Derive, 3, 1e-8, 10)
//	lambda, _ := est.Estimate(u0, grid, integrators.NewRK4())
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
