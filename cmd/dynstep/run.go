package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynstep/internal/automation"
	"github.com/san-kum/dynstep/internal/config"
	"github.com/san-kum/dynstep/internal/experiment"
	"github.com/san-kum/dynstep/internal/integrators"
	"github.com/san-kum/dynstep/internal/storage"
	"github.com/san-kum/dynstep/internal/sweep"
	"github.com/san-kum/dynstep/internal/tui"
)

// buildConfig layers defaults, preset, config file, the model argument and
// explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	model := cfg.Model
	if len(args) > 0 {
		model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Model = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("start") {
		cfg.Grid.Start = start
	}
	if flags.Changed("time") {
		cfg.Grid.Stop = stop
	}
	if flags.Changed("points") {
		cfg.Grid.Points = points
	}
	if flags.Changed("every") {
		cfg.Record.Every = every
	}
	if flags.Changed("observe") {
		cfg.Record.Observables = observe
	}
	if flags.Changed("init") {
		cfg.InitState = initState
	}
	if len(params) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for _, kv := range params {
			name, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter %q: want name=value", kv)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid parameter %q: %w", kv, err)
			}
			cfg.Params[strings.TrimSpace(name)] = v
		}
	}
	if flags.Lookup("snapshot-at") != nil && flags.Changed("snapshot-at") {
		cfg.SnapshotAt = snapshotAt
	}
	if flags.Lookup("progress") != nil && flags.Changed("progress") {
		cfg.Progress = config.ProgressConfig{Every: progress, Unit: unit}
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	result, err := exp.Run()
	if err != nil {
		return err
	}

	fields := []tui.Field{
		tui.F("model", "%s", cfg.Model),
		tui.F("integrator", "%s", cfg.Integrator),
		tui.F("grid", "[%g, %g] dt=%g", exp.Grid().Start(), exp.Grid().End(), exp.Grid().Dt()),
		tui.F("steps", "%d", result.Steps),
		tui.F("samples", "%d", result.Recorder.Len()),
		tui.F("elapsed", "%v", result.Elapsed),
		tui.F("final", "%.6g", []float64(result.Final)),
	}
	if result.Snapshots != nil && result.Snapshots.Len() > 0 {
		iter, t, u := result.Snapshots.At(0)
		fields = append(fields, tui.F("snapshot", "iter %d t=%g %.6g", iter, t, []float64(u)))
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(result), result.Series())
		if err != nil {
			return err
		}
		fields = append([]tui.Field{tui.F("run id", "%s", runID)}, fields...)
	}

	fmt.Println(tui.Summary("completed", fields...))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if cfg.Sweep == nil {
		cfg.Sweep = &config.SweepConfig{}
	}
	sc := cfg.Sweep
	if flags.Changed("param") {
		sc.Param = sweepParam
	}
	if flags.Changed("values") {
		sc.Values = sweepValues
	}
	if flags.Changed("from") || flags.Changed("to") || flags.Changed("steps") {
		sc.Values = nil
		sc.From, sc.To, sc.Steps = sweepFrom, sweepTo, sweepSteps
	}
	if flags.Changed("metric") {
		sc.Metric = sweepMetric
	}
	switch {
	case flags.Changed("workers"):
		sc.Workers = workers
	case sc.Workers == 0:
		sc.Workers = env.Workers
	}

	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	values := sc.SweepValues()
	started := time.Now()

	var outcomes []sweep.Outcome
	if plain {
		outcomes, err = exp.Sweep(ctx, sweep.WithProgress(func(done, total int) {
			logger.Info("sweep progress", "done", done, "total", total)
		}))
	} else {
		title := fmt.Sprintf("%s %s", cfg.Model, sc.Param)
		outcomes, err = tui.RunSweep(ctx, title, sc.Param, sc.Metric, maximize, len(values),
			func(ctx context.Context, progress func(done, total int)) ([]sweep.Outcome, error) {
				return exp.Sweep(ctx, sweep.WithProgress(progress))
			})
	}
	if err != nil {
		return err
	}

	if plain {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sc.Param), strings.ToUpper(sc.Metric))
		for _, o := range outcomes {
			fmt.Fprintf(w, "%g\t%.6g\n", o.Value, o.Metric)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fields := []tui.Field{
		tui.F("runs", "%d", len(outcomes)),
		tui.F("elapsed", "%v", time.Since(started).Round(time.Millisecond)),
	}
	if best, ok := sweep.Best(outcomes, maximize); ok {
		fields = append(fields, tui.F("best", "%s=%g %s=%.6g", sc.Param, best.Value, sc.Metric, best.Metric))
	} else {
		fields = append(fields, tui.F("best", "no finite %s", sc.Metric))
	}
	fmt.Println(tui.Summary("sweep", fields...))
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	pointCounts := []int{101, 1001, 10001}

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tSTEPS\tDT\tTIME\tSTEPS/SEC\tFINAL NORM")

	for _, name := range integrators.Names() {
		for _, n := range pointCounts {
			cfg := config.DefaultConfig()
			cfg.Model = args[0]
			cfg.Integrator = name
			cfg.Grid.Points = n
			cfg.Record = config.RecordConfig{Every: n, Observables: []string{"norm"}}

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}
			result, err := exp.Run()
			if err != nil {
				return err
			}

			rate := math.Inf(1)
			if s := result.Elapsed.Seconds(); s > 0 {
				rate = float64(result.Steps) / s
			}
			fmt.Fprintf(w, "%s\t%d\t%.4g\t%v\t%.0f\t%.6g\n",
				name, result.Steps, exp.Grid().Dt(), result.Elapsed, rate, result.Final.Norm())
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	opts := []automation.Option{automation.WithLogger(logger)}
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		opts = append(opts, automation.WithStore(st))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := automation.NewRunner(opts...).Run(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tRUN ID\tSTEPS\tELAPSED\tFINAL")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%.6g\n",
			r.Name, sc.Steps[i].Config.Model, r.RunID, r.Result.Steps, r.Result.Elapsed, []float64(r.Result.Final))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
