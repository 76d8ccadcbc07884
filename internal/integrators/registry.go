package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynstep/internal/dynamo"
)

var methods = map[string]func() dynamo.Stepper{
	"rk4":   func() dynamo.Stepper { return NewRK4() },
	"euler": func() dynamo.Stepper { return NewEuler() },
}

// Get returns a fresh stepper by name.
func Get(name string) (dynamo.Stepper, error) {
	fn, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
