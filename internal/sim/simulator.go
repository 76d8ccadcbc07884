package sim

import (
	"time"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
	"github.com/san-kum/dynstep/internal/logging"
)

// Simulator runs Solve with a fixed step method and logs each run.
// It holds no per-run state, so one Simulator may serve concurrent runs as
// long as each run brings its own callbacks.
type Simulator struct {
	stepper dynamo.Stepper
	logger  logging.Logger
}

type Option func(*Simulator)

func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(stepper dynamo.Stepper, opts ...Option) *Simulator {
	s := &Simulator{stepper: stepper, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Result struct {
	Final   dynamo.State
	Steps   int
	Start   float64
	End     float64
	Elapsed time.Duration
}

func (s *Simulator) Run(f dynamo.Func, u0 dynamo.State, grid dynamo.Grid, root callback.Handler) (*Result, error) {
	in, err := prepare(f, u0, grid, s.stepper)
	if err != nil {
		s.logger.Error("run rejected", "error", err)
		return nil, err
	}
	if root == nil {
		root = callback.Nop
	}

	s.logger.Debug("run started",
		"dim", in.Dim(),
		"steps", grid.Steps(),
		"dt", grid.Dt(),
		"t0", grid.Start(),
		"t1", grid.End(),
	)

	start := time.Now()
	loop(f, in, s.stepper, root)
	elapsed := time.Since(start)

	if !in.U.IsValid() {
		s.logger.Warn("final state is not finite", "state", in.U)
	}
	s.logger.Debug("run finished", "steps", grid.Steps(), "elapsed", elapsed)

	return &Result{
		Final:   in.U.Clone(),
		Steps:   grid.Steps(),
		Start:   grid.Start(),
		End:     grid.End(),
		Elapsed: elapsed,
	}, nil
}
