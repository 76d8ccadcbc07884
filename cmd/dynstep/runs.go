package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynstep/internal/analysis"
	"github.com/san-kum/dynstep/internal/config"
	"github.com/san-kum/dynstep/internal/experiment"
	"github.com/san-kum/dynstep/internal/export"
	"github.com/san-kum/dynstep/internal/integrators"
	"github.com/san-kum/dynstep/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tRANGE\tDT\tINTEG\tSAMPLES\tOBSERVABLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%.4g\t%s\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start, run.Stop,
			run.Dt,
			run.Integrator,
			run.Samples,
			strings.Join(run.Observables, ","),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := args[1:]
	if len(names) == 0 {
		for _, n := range series.Names {
			if n != "t" && n != "iter" {
				names = append(names, n)
			}
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", series.Len())

	for _, name := range names {
		data, ok := series.Column(name)
		if !ok {
			return fmt.Errorf("run %s has no series %q (recorded: %v)", runID, name, series.Names)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s vs sample", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	name := "x0"
	if len(args) > 1 {
		name = args[1]
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data, ok := series.Column(name)
	if !ok {
		return fmt.Errorf("run %s has no series %q", runID, name)
	}

	ps, _, err := analysis.PowerSpectrum(data)
	if err != nil {
		return err
	}

	// Spacing between recorded samples.
	spacing := (meta.Stop - meta.Start) / float64(max(meta.Samples, 1))
	freq, err := analysis.DominantFrequency(data, spacing)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	graph := asciigraph.Plot(ps[:max(len(ps)/4, 1)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", name)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	runID, xName, yName := args[0], args[1], args[2]

	series, err := storage.New(dataDir).LoadSeries(runID)
	if err != nil {
		return err
	}
	xs, ok := series.Column(xName)
	if !ok {
		return fmt.Errorf("run %s has no series %q", runID, xName)
	}
	ys, ok := series.Column(yName)
	if !ok {
		return fmt.Errorf("run %s has no series %q", runID, yName)
	}

	out, err := analysis.PhasePortrait(xs, ys, plotWidth, 2*plotHeight)
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s\n\n%s", yName, xName, out)
	return nil
}

func lyapunovModel(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return err
	}
	stepper, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}

	m := exp.Model()
	est, err := analysis.NewLyapunov(m.Derive, m.StateDim(), perturbation, renorm)
	if err != nil {
		return err
	}
	lambda, err := est.Estimate(exp.InitialState(), exp.Grid(), stepper)
	if err != nil {
		return err
	}

	verdict := "regular"
	if lambda > 0 {
		verdict = "chaotic"
	}
	fmt.Printf("%s: largest lyapunov exponent %.4f (%s)\n", cfg.Model, lambda, verdict)
	return nil
}

// presetNames is used for shell completion of --preset.
func presetNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	model := config.DefaultConfig().Model
	if len(args) > 0 {
		model = args[0]
	}
	return config.ListPresets(model), cobra.ShellCompDirectiveNoFileComp
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	series, err := storage.New(dataDir).LoadSeries(runID)
	if err != nil {
		return err
	}

	xs, ok := series.Column("t")
	if !ok {
		xs = make([]float64, series.Len())
		for i := range xs {
			xs[i] = float64(i)
		}
	}

	names := args[1:]
	if len(names) == 0 {
		for _, n := range series.Names {
			if n != "t" && n != "iter" {
				names = append(names, n)
			}
		}
	}
	lines := make([]export.Line, 0, len(names))
	for _, n := range names {
		col, ok := series.Column(n)
		if !ok {
			return fmt.Errorf("run %s has no series %q", runID, n)
		}
		lines = append(lines, export.Line{Name: n, Values: col})
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.WriteSVG(w, xs, lines, svgWidth, svgHeight)
}
