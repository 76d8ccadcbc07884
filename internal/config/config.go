package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynstep/internal/dynamo"
)

const (
	DefaultStart  = 0.0
	DefaultStop   = 10.0
	DefaultPoints = 1001
	DefaultEvery  = 1
)

// Config describes one run: model, method, grid, initial state and the
// callbacks attached to it.
type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Grid       GridConfig         `yaml:"grid"`
	InitState  []float64          `yaml:"init_state,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Record     RecordConfig       `yaml:"record"`
	SnapshotAt int                `yaml:"snapshot_at,omitempty"`
	Clamp      []ClampConfig      `yaml:"clamp,omitempty"`
	Progress   ProgressConfig     `yaml:"progress,omitempty"`
	Sweep      *SweepConfig       `yaml:"sweep,omitempty"`
}

type GridConfig struct {
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
}

type RecordConfig struct {
	Every       int      `yaml:"every"`
	Observables []string `yaml:"observables"`
}

// ClampConfig bounds one state component after every step.
type ClampConfig struct {
	Index int     `yaml:"index"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// ProgressConfig logs progress at a wall-clock interval; zero disables it.
type ProgressConfig struct {
	Every float64 `yaml:"every,omitempty"`
	Unit  string  `yaml:"unit,omitempty"`
}

// SweepConfig scans one model parameter over a list or an even range.
type SweepConfig struct {
	Param   string    `yaml:"param"`
	Values  []float64 `yaml:"values,omitempty"`
	From    float64   `yaml:"from,omitempty"`
	To      float64   `yaml:"to,omitempty"`
	Steps   int       `yaml:"steps,omitempty"`
	Metric  string    `yaml:"metric"`
	Workers int       `yaml:"workers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "decay",
		Integrator: "rk4",
		Grid: GridConfig{
			Start:  DefaultStart,
			Stop:   DefaultStop,
			Points: DefaultPoints,
		},
		Record: RecordConfig{
			Every:       DefaultEvery,
			Observables: []string{"t", "x0"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that do not depend on the model registry.
func (c *Config) Validate() error {
	if c.Model == "" {
		return dynamo.NewConfigError("model", c.Model, "must be set")
	}
	if c.Integrator == "" {
		return dynamo.NewConfigError("integrator", c.Integrator, "must be set")
	}
	if c.Grid.Points < 2 {
		return dynamo.NewConfigError("grid points", c.Grid.Points, "need at least 2")
	}
	if !(c.Grid.Stop > c.Grid.Start) {
		return dynamo.NewConfigError("grid range", [2]float64{c.Grid.Start, c.Grid.Stop}, "stop must be greater than start")
	}
	if c.Record.Every <= 0 {
		return dynamo.NewConfigError("record every", c.Record.Every, "must be a positive integer")
	}
	if len(c.Record.Observables) == 0 {
		return dynamo.NewConfigError("observables", 0, "need at least one")
	}
	if c.SnapshotAt < 0 {
		return dynamo.NewConfigError("snapshot_at", c.SnapshotAt, "must not be negative")
	}
	if s := c.Sweep; s != nil {
		if s.Param == "" {
			return dynamo.NewConfigError("sweep param", s.Param, "must be set")
		}
		if len(s.Values) == 0 && s.Steps < 2 {
			return dynamo.NewConfigError("sweep steps", s.Steps, "need explicit values or at least 2 steps")
		}
		if s.Metric == "" {
			return dynamo.NewConfigError("sweep metric", s.Metric, "must be set")
		}
	}
	return nil
}

// SweepValues expands the sweep into its parameter values.
func (s *SweepConfig) SweepValues() []float64 {
	if len(s.Values) > 0 {
		out := make([]float64, len(s.Values))
		copy(out, s.Values)
		return out
	}
	out := make([]float64, s.Steps)
	for i := range out {
		out[i] = s.From + (s.To-s.From)*float64(i)/float64(s.Steps-1)
	}
	return out
}
