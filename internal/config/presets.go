package config

import "sort"

var Presets = map[string]map[string]*Config{
	"decay": {
		"reference": {
			Model: "decay", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 1, Points: 100},
			InitState: []float64{5.0},
			Params:    map[string]float64{"k": 5},
			Record:    RecordConfig{Every: 1, Observables: []string{"t", "x0"}},
		},
		"slow": {
			Model: "decay", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 10, Points: 1001},
			InitState: []float64{1.0},
			Params:    map[string]float64{"k": 0.5},
			Record:    RecordConfig{Every: 10, Observables: []string{"t", "x0"}},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 20, Points: 2001},
			InitState: []float64{0.2, 0.0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "energy"}},
		},
		"large": {
			Model: "pendulum", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 20, Points: 2001},
			InitState: []float64{2.5, 0.0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "energy"}},
		},
		"spinning": {
			Model: "pendulum", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 30, Points: 3001},
			InitState: []float64{0.1, 8.0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "x1"}},
		},
	},
	"spring_mass": {
		"bounce": {
			Model: "spring_mass", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 20, Points: 2001},
			InitState: []float64{2.0, 0.0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "energy"}},
		},
		"undamped": {
			Model: "spring_mass", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 20, Points: 2001},
			InitState: []float64{1.0, 0.0},
			Params:    map[string]float64{"damping": 0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "energy_drift"}},
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 40, Points: 8001},
			InitState: []float64{1.0, 1.0, 1.0},
			Record:    RecordConfig{Every: 4, Observables: []string{"t", "x0", "x2"}},
		},
	},
	"rossler": {
		"spiral": {
			Model: "rossler", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 200, Points: 20001},
			InitState: []float64{1.0, 1.0, 1.0},
			Record:    RecordConfig{Every: 10, Observables: []string{"t", "x0", "x1"}},
		},
	},
	"duffing": {
		"chaotic": {
			Model: "duffing", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 100, Points: 10001},
			InitState: []float64{1.0, 0.0},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "x1", "energy"}},
		},
	},
	"vanderpol": {
		"relaxation": {
			Model: "vanderpol", Integrator: "rk4",
			Grid:      GridConfig{Start: 0, Stop: 50, Points: 5001},
			InitState: []float64{2.0, 0.0},
			Params:    map[string]float64{"mu": 5},
			Record:    RecordConfig{Every: 5, Observables: []string{"t", "x0", "x1"}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies c.
func (c *Config) Clone() *Config {
	out := *c
	out.InitState = append([]float64(nil), c.InitState...)
	out.Record.Observables = append([]string(nil), c.Record.Observables...)
	out.Clamp = append([]ClampConfig(nil), c.Clamp...)
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	if c.Sweep != nil {
		s := *c.Sweep
		s.Values = append([]float64(nil), c.Sweep.Values...)
		out.Sweep = &s
	}
	return &out
}
