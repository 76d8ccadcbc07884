package metrics

import (
	"math"

	"github.com/san-kum/dynstep/internal/dynamo"
)

// Stability reports the running fraction of samples whose components all
// stay within threshold. It is stateful: use one instance per run.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Extract(_ int, in *dynamo.Integrator) float64 {
	s.samples++
	for _, val := range in.U {
		if math.IsNaN(val) || math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}
