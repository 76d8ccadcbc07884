// Package models provides derivative functions for the solver.
//
// Each model exposes Derive with the [dynamo.Func] signature, a default
// initial state, and the [dynamo.Configurable] parameter API. Models with a
// conserved quantity also implement [dynamo.Hamiltonian].
package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynstep/internal/dynamo"
)

type Model interface {
	dynamo.Configurable
	Name() string
	StateDim() int
	Derive(du, u dynamo.State, t float64)
	DefaultState() dynamo.State
}

var registry = map[string]func() Model{
	"decay":       func() Model { return NewDecay() },
	"spring_mass": func() Model { return NewSpringMass() },
	"pendulum":    func() Model { return NewPendulum() },
	"lorenz":      func() Model { return NewLorenz() },
	"vanderpol":   func() Model { return NewVanDerPol() },
	"rossler":     func() Model { return NewRossler() },
	"duffing":     func() Model { return NewDuffing() },
}

// Get returns a fresh model instance by name.
func Get(name string) (Model, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets every parameter in params on m.
func Apply(m Model, params map[string]float64) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.SetParam(k, params[k]); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}
	return nil
}

func unknownParam(name string) error {
	return fmt.Errorf("unknown param: %s", name)
}
