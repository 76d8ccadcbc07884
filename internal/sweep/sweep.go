// Package sweep runs independent integrations over a set of parameter
// values in parallel.
//
// Runs never share an integrator or callbacks: every run asks the Factory
// for a fresh Job, so stateful conditions and recorders stay run-local.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
	"github.com/san-kum/dynstep/internal/logging"
	"github.com/san-kum/dynstep/internal/sim"
)

// Job is everything one run needs. Root and Metric are built for this run
// only.
type Job struct {
	Func dynamo.Func
	U0   dynamo.State
	Grid dynamo.Grid
	Root callback.Handler
	// Metric summarizes the finished run, typically from a recorder that
	// Root feeds.
	Metric func(final dynamo.State) (float64, error)
}

// Factory builds the job for one parameter value.
type Factory func(value float64) (*Job, error)

type Outcome struct {
	Index  int
	Value  float64
	Metric float64
	Final  dynamo.State
}

type Sweep struct {
	sim        *sim.Simulator
	workers    int
	logger     logging.Logger
	onProgress func(done, total int)
}

type Option func(*Sweep)

// WithWorkers bounds concurrent runs; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Sweep) { s.workers = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Sweep) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProgress registers fn to be called after each finished run. It is
// called from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Sweep) { s.onProgress = fn }
}

func New(simulator *sim.Simulator, opts ...Option) *Sweep {
	s := &Sweep{sim: simulator, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Run executes one job per value and returns outcomes in value order. The
// first failing run cancels runs that have not started yet; a run in
// progress always completes.
func (s *Sweep) Run(ctx context.Context, values []float64, build Factory) ([]Outcome, error) {
	if build == nil {
		return nil, dynamo.NewConfigError("sweep factory", nil, "must not be nil")
	}

	outcomes := make([]Outcome, len(values))
	total := len(values)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	s.logger.Info("sweep started", "runs", total, "workers", s.workers)

	for i, v := range values {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			job, err := build(v)
			if err != nil {
				return fmt.Errorf("run %d (value %g): %w", i, v, err)
			}

			res, err := s.sim.Run(job.Func, job.U0, job.Grid, job.Root)
			if err != nil {
				return fmt.Errorf("run %d (value %g): %w", i, v, err)
			}

			metric := math.NaN()
			if job.Metric != nil {
				metric, err = job.Metric(res.Final)
				if err != nil {
					return fmt.Errorf("run %d (value %g): %w", i, v, err)
				}
			}

			outcomes[i] = Outcome{Index: i, Value: v, Metric: metric, Final: res.Final}
			s.logger.Debug("sweep run finished", "index", i, "value", v, "metric", metric)

			n := int(done.Add(1))
			if s.onProgress != nil {
				s.onProgress(n, total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("sweep failed", "error", err)
		return nil, err
	}

	s.logger.Info("sweep finished", "runs", total)
	return outcomes, nil
}

// Best returns the outcome with the smallest (or largest) finite metric.
func Best(outcomes []Outcome, maximize bool) (Outcome, bool) {
	var best Outcome
	found := false
	for _, o := range outcomes {
		if math.IsNaN(o.Metric) || math.IsInf(o.Metric, 0) {
			continue
		}
		if !found || (maximize && o.Metric > best.Metric) || (!maximize && o.Metric < best.Metric) {
			best = o
			found = true
		}
	}
	return best, found
}
