package dynamo

// Integrator is the mutable context of a single run. The solver loop is its
// only writer; callbacks receive it synchronously and may mutate U.
//
// K1..K4 and Tmp are scratch buffers sized like U. They are allocated once
// by NewIntegrator and are never reallocated during a run.
type Integrator struct {
	U    State
	T    float64
	Dt   float64
	Iter int
	Grid Grid

	K1, K2, K3, K4 State
	Tmp            State
}

// NewIntegrator builds the context for one run over grid. u0 is cloned so
// the caller's slice is never written.
func NewIntegrator(u0 State, grid Grid) (*Integrator, error) {
	if len(u0) == 0 {
		return nil, NewConfigError("initial state", len(u0), "must not be empty")
	}
	if grid.IsZero() {
		return nil, NewConfigError("grid", "empty", "must be built with Linspace or NewGrid")
	}

	n := len(u0)
	return &Integrator{
		U:    u0.Clone(),
		T:    grid.Start(),
		Dt:   grid.Dt(),
		Grid: grid,
		K1:   make(State, n),
		K2:   make(State, n),
		K3:   make(State, n),
		K4:   make(State, n),
		Tmp:  make(State, n),
	}, nil
}

// Dim returns the state dimension.
func (in *Integrator) Dim() int { return len(in.U) }
