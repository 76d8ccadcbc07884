// Package automation runs scripted sequences of experiments from YAML.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynstep/internal/config"
	"github.com/san-kum/dynstep/internal/experiment"
	"github.com/san-kum/dynstep/internal/logging"
	"github.com/san-kum/dynstep/internal/storage"
)

// Scenario is a named list of runs executed in order.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is one run. Its config fields sit inline next to the step name and
// default like a config file.
type Step struct {
	Name   string
	Config *config.Config
}

type rawScenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []yaml.Node `yaml:"steps"`
}

type rawStep struct {
	Name   string `yaml:"name"`
	Preset string `yaml:"preset"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario. A step with a preset starts from that
// preset of its model; otherwise it starts from the defaults.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(raw.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", raw.Name)
	}

	sc := &Scenario{Name: raw.Name, Description: raw.Description}
	for i := range raw.Steps {
		node := &raw.Steps[i]

		var head rawStep
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := config.DefaultConfig()
		if head.Preset != "" {
			var probe struct {
				Model string `yaml:"model"`
			}
			if err := node.Decode(&probe); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			if cfg = config.GetPreset(probe.Model, head.Preset); cfg == nil {
				return nil, fmt.Errorf("step %d: unknown preset %s/%s", i+1, probe.Model, head.Preset)
			}
		}
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := head.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		sc.Steps = append(sc.Steps, Step{Name: name, Config: cfg})
	}
	return sc, nil
}

// StepResult is a finished step. RunID is empty when no store is set.
type StepResult struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

type Runner struct {
	store  *storage.Store
	logger logging.Logger
}

type Option func(*Runner)

// WithStore saves every finished step.
func WithStore(s *storage.Store) Option {
	return func(r *Runner) { r.store = s }
}

func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: logging.Nop{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the steps in order and stops at the first failure, returning
// the steps finished so far.
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r.logger.Info("scenario step", "scenario", sc.Name, "step", step.Name, "index", i+1, "of", len(sc.Steps))

		exp, err := experiment.New(step.Config, experiment.WithLogger(r.logger))
		if err != nil {
			return results, fmt.Errorf("step %s: %w", step.Name, err)
		}
		res, err := exp.Run()
		if err != nil {
			return results, fmt.Errorf("step %s: %w", step.Name, err)
		}

		sr := StepResult{Name: step.Name, Result: res}
		if r.store != nil {
			if sr.RunID, err = r.store.Save(exp.Metadata(res), res.Series()); err != nil {
				return results, fmt.Errorf("step %s: %w", step.Name, err)
			}
		}
		results = append(results, sr)
	}
	return results, nil
}
