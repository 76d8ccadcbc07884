// Package experiment turns a config.Config into a wired run: model,
// stepper, grid, initial state and the callback tree that records it.
package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/config"
	"github.com/san-kum/dynstep/internal/dynamo"
	"github.com/san-kum/dynstep/internal/integrators"
	"github.com/san-kum/dynstep/internal/logging"
	"github.com/san-kum/dynstep/internal/metrics"
	"github.com/san-kum/dynstep/internal/models"
	"github.com/san-kum/dynstep/internal/sim"
	"github.com/san-kum/dynstep/internal/storage"
	"github.com/san-kum/dynstep/internal/sweep"
)

type Experiment struct {
	cfg     *config.Config
	model   models.Model
	stepper dynamo.Stepper
	grid    dynamo.Grid
	u0      dynamo.State
	logger  logging.Logger
	clock   callback.Clock
}

type Option func(*Experiment)

func WithLogger(l logging.Logger) Option {
	return func(e *Experiment) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces the clock used by progress reporting.
func WithClock(c callback.Clock) Option {
	return func(e *Experiment) {
		if c != nil {
			e.clock = c
		}
	}
}

// New validates cfg and resolves everything a run needs. cfg is cloned.
func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if cfg == nil {
		return nil, dynamo.NewConfigError("config", nil, "must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:    cfg.Clone(),
		logger: logging.Nop{},
		clock:  callback.SystemClock,
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	if e.model, err = newModel(e.cfg); err != nil {
		return nil, err
	}
	if e.stepper, err = integrators.Get(e.cfg.Integrator); err != nil {
		return nil, err
	}
	if e.grid, err = dynamo.Linspace(e.cfg.Grid.Start, e.cfg.Grid.Stop, e.cfg.Grid.Points); err != nil {
		return nil, err
	}

	e.u0 = e.model.DefaultState()
	if len(e.cfg.InitState) > 0 {
		e.u0 = dynamo.State(e.cfg.InitState).Clone()
	}
	if len(e.u0) != e.model.StateDim() {
		return nil, fmt.Errorf("%w: %s expects %d components, got %d",
			dynamo.ErrDimensionMismatch, e.model.Name(), e.model.StateDim(), len(e.u0))
	}
	for _, c := range e.cfg.Clamp {
		if c.Index >= len(e.u0) {
			return nil, dynamo.NewConfigError("clamp index", c.Index, "out of range for the state")
		}
	}
	return e, nil
}

func newModel(cfg *config.Config) (models.Model, error) {
	m, err := models.Get(cfg.Model)
	if err != nil {
		return nil, err
	}
	if err := models.Apply(m, cfg.Params); err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg.Clone() }
func (e *Experiment) Model() models.Model    { return e.model }
func (e *Experiment) Grid() dynamo.Grid      { return e.grid }

// InitialState returns a copy of the state the run starts from.
func (e *Experiment) InitialState() dynamo.State { return e.u0.Clone() }

// Result is a finished run with everything its callbacks collected.
type Result struct {
	*sim.Result
	Recorder  *callback.Recorder
	Snapshots *callback.Snapshot
}

// tree is the callback set for one run.
type tree struct {
	root      *callback.Group
	recorder  *callback.Recorder
	snapshots *callback.Snapshot
}

// buildTree wires the configured callbacks in the order they run:
// clamps first so recorded values see the bounded state, then the recorder,
// the snapshot and progress reporting.
func (e *Experiment) buildTree(model models.Model, extra ...callback.Handler) (*tree, error) {
	t := &tree{}
	var members []callback.Handler

	for _, c := range e.cfg.Clamp {
		clamp, err := callback.NewClamp(c.Index, c.Min, c.Max)
		if err != nil {
			return nil, err
		}
		cb, err := callback.New(callback.Always, clamp)
		if err != nil {
			return nil, err
		}
		members = append(members, cb)
	}

	obs, err := metrics.ParseAll(e.cfg.Record.Observables, model)
	if err != nil {
		return nil, err
	}
	if t.recorder, err = callback.NewRecorder(obs...); err != nil {
		return nil, err
	}
	rec, err := t.recorder.Every(e.cfg.Record.Every)
	if err != nil {
		return nil, err
	}
	members = append(members, rec)

	if e.cfg.SnapshotAt > 0 {
		once, err := callback.Once(e.cfg.SnapshotAt)
		if err != nil {
			return nil, err
		}
		t.snapshots = callback.NewSnapshot()
		cb, err := callback.New(once, t.snapshots)
		if err != nil {
			return nil, err
		}
		members = append(members, cb)
	}

	if e.cfg.Progress.Every > 0 {
		cb, err := e.progress()
		if err != nil {
			return nil, err
		}
		members = append(members, cb)
	}

	members = append(members, extra...)
	t.root = callback.NewGroup(members...)
	return t, nil
}

func (e *Experiment) progress() (*callback.Callback, error) {
	unit := e.cfg.Progress.Unit
	if unit == "" {
		unit = "s"
	}
	wc, err := callback.NewWallClockInterval(e.cfg.Progress.Every, unit, callback.WithClock(e.clock))
	if err != nil {
		return nil, err
	}
	steps := e.grid.Steps()
	return callback.New(wc, callback.EffectFunc(func(iter int, in *dynamo.Integrator) {
		e.logger.Info("progress",
			"iter", iter,
			"steps", steps,
			"t", in.T,
			"percent", 100*float64(iter)/float64(steps),
		)
	}))
}

// Run integrates the configured problem once.
func (e *Experiment) Run() (*Result, error) {
	t, err := e.buildTree(e.model)
	if err != nil {
		return nil, err
	}

	s := sim.New(e.stepper, sim.WithLogger(logging.With(e.logger, "model", e.model.Name())))
	res, err := s.Run(e.model.Derive, e.u0, e.grid, t.root)
	if err != nil {
		return nil, err
	}
	return &Result{Result: res, Recorder: t.recorder, Snapshots: t.snapshots}, nil
}

// Series converts the recorded observables into storage columns.
func (r *Result) Series() storage.Series {
	snap := r.Recorder.Snapshot()
	names := r.Recorder.Names()
	s := storage.Series{Names: names, Values: make([][]float64, len(names))}
	for i, n := range names {
		s.Values[i] = snap[n]
	}
	return s
}

// Metadata describes r for the run store.
func (e *Experiment) Metadata(r *Result) storage.RunMetadata {
	return storage.RunMetadata{
		Model:       e.model.Name(),
		Integrator:  e.cfg.Integrator,
		Timestamp:   time.Now(),
		Start:       e.grid.Start(),
		Stop:        e.grid.End(),
		Points:      e.grid.Len(),
		Dt:          e.grid.Dt(),
		Params:      e.model.GetParams(),
		InitState:   storage.Floats(e.u0.Clone()),
		FinalState:  storage.Floats(r.Final.Clone()),
		Observables: r.Recorder.Names(),
		Samples:     r.Recorder.Len(),
		Elapsed:     r.Elapsed,
	}
}

// Sweep runs the configured parameter sweep. Every run gets a fresh model
// and callback tree; the metric is the last value of the sweep metric
// observable, sampled on every iteration.
func (e *Experiment) Sweep(ctx context.Context, opts ...sweep.Option) ([]sweep.Outcome, error) {
	sc := e.cfg.Sweep
	if sc == nil {
		return nil, dynamo.NewConfigError("sweep", nil, "not configured")
	}
	if _, ok := e.model.GetParams()[sc.Param]; !ok {
		return nil, dynamo.NewConfigError("sweep param", sc.Param, fmt.Sprintf("not a parameter of %s", e.model.Name()))
	}
	if _, err := metrics.Parse(sc.Metric, e.model); err != nil {
		return nil, err
	}

	build := func(v float64) (*sweep.Job, error) {
		model, err := newModel(e.cfg)
		if err != nil {
			return nil, err
		}
		if err := model.SetParam(sc.Param, v); err != nil {
			return nil, err
		}

		obs, err := metrics.Parse(sc.Metric, model)
		if err != nil {
			return nil, err
		}
		metricRec, err := callback.NewRecorder(obs)
		if err != nil {
			return nil, err
		}
		metricCb, err := metricRec.Callback(callback.Always)
		if err != nil {
			return nil, err
		}

		t, err := e.buildTree(model, metricCb)
		if err != nil {
			return nil, err
		}

		return &sweep.Job{
			Func: model.Derive,
			U0:   e.u0.Clone(),
			Grid: e.grid,
			Root: t.root,
			Metric: func(dynamo.State) (float64, error) {
				v, ok, err := metricRec.Last(sc.Metric)
				if err != nil {
					return 0, err
				}
				if !ok {
					return math.NaN(), nil
				}
				return v, nil
			},
		}, nil
	}

	if sc.Workers > 0 {
		opts = append([]sweep.Option{sweep.WithWorkers(sc.Workers)}, opts...)
	}
	opts = append([]sweep.Option{sweep.WithLogger(e.logger)}, opts...)

	s := sim.New(e.stepper, sim.WithLogger(logging.With(e.logger, "model", e.model.Name())))
	return sweep.New(s, opts...).Run(ctx, sc.SweepValues(), build)
}
