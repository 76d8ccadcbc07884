package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynstep/internal/config"
	"github.com/san-kum/dynstep/internal/integrators"
	"github.com/san-kum/dynstep/internal/logging"
	"github.com/san-kum/dynstep/internal/models"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	configFile string
	preset     string
	integrator string
	start      float64
	stop       float64
	points     int
	every      int
	observe    []string
	params     []string
	initState  []float64
	snapshotAt int
	progress   float64
	unit       string
	noSave     bool
	// Sweep
	sweepParam  string
	sweepValues []float64
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	sweepMetric string
	workers     int
	maximize    bool
	plain       bool
	// Plot
	plotHeight int
	plotWidth  int
	output     string
	svgWidth   int
	svgHeight  int
	// Lyapunov
	perturbation float64
	renorm       int

	env    config.Env
	logger logging.Logger = logging.Nop{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dynstep",
		Short:         "fixed-step ODE integration with composable callbacks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $DYNSTEP_DATA_DIR or .dynstep)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and save the recorded series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addProblemFlags(runCmd)
	runCmd.Flags().IntVar(&snapshotAt, "snapshot-at", 0, "capture the full state once at this iteration")
	runCmd.Flags().Float64Var(&progress, "progress", 0, "log progress every N wall-clock units (0 disables)")
	runCmd.Flags().StringVar(&unit, "progress-unit", "s", "progress unit: s, m or h")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "run one integration per parameter value in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "model parameter to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "explicit parameter values")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value of an even range")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value of an even range")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 0, "number of values in the range")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "", "observable summarizing each run")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default $DYNSTEP_WORKERS or GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "report the largest metric instead of the smallest")
	sweepCmd.Flags().BoolVar(&plain, "plain", false, "log progress instead of drawing it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [observable...]",
		Short: "plot recorded series",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models, their parameters and integrators",
		RunE:  listModels,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [observable...]",
		Short: "render recorded series as an svg chart",
		Args:  cobra.MinimumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "chart width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "chart height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [observable]",
		Short: "power spectrum of a recorded series",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id] [x] [y]",
		Short: "phase portrait of two recorded series",
		Args:  cobra.ExactArgs(3),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().IntVar(&plotHeight, "height", 10, "half the portrait height")
	phaseCmd.Flags().IntVar(&plotWidth, "width", 80, "portrait width")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [model]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunovModel,
	}
	addProblemFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")
	lyapunovCmd.Flags().IntVar(&renorm, "renorm", 10, "renormalize every N iterations")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of experiments in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark integrators on a model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, phaseCmd, lyapunovCmd, scenarioCmd, presetsCmd, modelsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves environment settings; flags win over the environment.
func setup(cmd *cobra.Command) error {
	var err error
	if env, err = config.LoadEnv(); err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = env.DataDir
	}
	if logLevel == "" {
		logLevel = env.LogLevel
	}
	if logFormat == "" {
		logFormat = env.LogFormat
	}
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return err
	}
	logger = logging.New(logging.Config{Level: logLevel, Format: logFormat, Component: cmd.Name()})
	return nil
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	_ = cmd.RegisterFlagCompletionFunc("preset", presetNames)
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator: "+fmt.Sprint(integrators.Names()))
	cmd.Flags().Float64Var(&start, "start", config.DefaultStart, "first grid time")
	cmd.Flags().Float64Var(&stop, "time", config.DefaultStop, "last grid time")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "number of grid points")
	cmd.Flags().IntVar(&every, "every", config.DefaultEvery, "record every N iterations")
	cmd.Flags().StringSliceVar(&observe, "observe", nil, "observables to record (t, iter, norm, x<i>, energy, energy_drift, stability[:limit])")
	cmd.Flags().StringSliceVar(&params, "set", nil, "model parameters as name=value")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state")
}

func listModels(cmd *cobra.Command, args []string) error {
	for _, name := range models.Names() {
		m, err := models.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s dim=%d params=%v presets=%v\n", name, m.StateDim(), m.GetParams(), config.ListPresets(name))
	}
	fmt.Printf("\nintegrators: %v\n", integrators.Names())
	return nil
}
