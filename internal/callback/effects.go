package callback

import "github.com/san-kum/dynstep/internal/dynamo"

// Snapshot copies the full state whenever it is applied.
type Snapshot struct {
	iters  []int
	times  []float64
	states []dynamo.State
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Apply(iter int, in *dynamo.Integrator) {
	s.iters = append(s.iters, iter)
	s.times = append(s.times, in.T)
	s.states = append(s.states, in.U.Clone())
}

func (s *Snapshot) Len() int { return len(s.states) }

// At returns the i-th captured iteration, time and a copy of its state.
func (s *Snapshot) At(i int) (int, float64, dynamo.State) {
	return s.iters[i], s.times[i], s.states[i].Clone()
}

// Clamp bounds one state component to [Lo, Hi] in place.
type Clamp struct {
	index  int
	lo, hi float64
}

func NewClamp(index int, lo, hi float64) (*Clamp, error) {
	if index < 0 {
		return nil, dynamo.NewConfigError("clamp index", index, "must not be negative")
	}
	if lo > hi {
		return nil, dynamo.NewConfigError("clamp bounds", [2]float64{lo, hi}, "lower bound exceeds upper bound")
	}
	return &Clamp{index: index, lo: lo, hi: hi}, nil
}

func (c *Clamp) Apply(_ int, in *dynamo.Integrator) {
	if c.index >= len(in.U) {
		return
	}
	v := in.U[c.index]
	if v < c.lo {
		in.U[c.index] = c.lo
	} else if v > c.hi {
		in.U[c.index] = c.hi
	}
}
