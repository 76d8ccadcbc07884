package metrics

import (
	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

// Component samples the i-th state component. Out-of-range indices yield
// NaN rather than panicking mid-run.
func Component(i int) callback.Extractor {
	return func(_ int, in *dynamo.Integrator) float64 {
		if i < 0 || i >= len(in.U) {
			return nan
		}
		return in.U[i]
	}
}

func Time(_ int, in *dynamo.Integrator) float64 { return in.T }

func Iteration(iter int, _ *dynamo.Integrator) float64 { return float64(iter) }

func Norm(_ int, in *dynamo.Integrator) float64 { return in.U.Norm() }
