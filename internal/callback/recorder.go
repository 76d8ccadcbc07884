package callback

import (
	"errors"
	"fmt"

	"github.com/san-kum/dynstep/internal/dynamo"
)

// ErrUnknownObservable is returned when a recorder is asked for a name it
// was not constructed with.
var ErrUnknownObservable = errors.New("callback: unknown observable")

// Extractor derives one observable value from the integrator.
type Extractor func(iter int, in *dynamo.Integrator) float64

// Observable is a named extractor.
type Observable struct {
	Name    string
	Extract Extractor
}

// Recorder is an effect that samples a fixed, ordered set of observables.
// Each observable owns a sequence whose index is the call order.
type Recorder struct {
	names   []string
	extract []Extractor
	index   map[string]int
	series  [][]float64
}

func NewRecorder(observables ...Observable) (*Recorder, error) {
	if len(observables) == 0 {
		return nil, dynamo.NewConfigError("observables", 0, "need at least one")
	}

	r := &Recorder{
		names:   make([]string, len(observables)),
		extract: make([]Extractor, len(observables)),
		index:   make(map[string]int, len(observables)),
		series:  make([][]float64, len(observables)),
	}
	for i, o := range observables {
		if o.Name == "" {
			return nil, dynamo.NewConfigError("observable name", i, "must not be empty")
		}
		if o.Extract == nil {
			return nil, dynamo.NewConfigError("observable extractor", o.Name, "must not be nil")
		}
		if _, dup := r.index[o.Name]; dup {
			return nil, dynamo.NewConfigError("observable name", o.Name, "registered twice")
		}
		r.names[i] = o.Name
		r.extract[i] = o.Extract
		r.index[o.Name] = i
	}
	return r, nil
}

// Apply evaluates every extractor in registration order and appends.
func (r *Recorder) Apply(iter int, in *dynamo.Integrator) {
	for i, fn := range r.extract {
		r.series[i] = append(r.series[i], fn(iter, in))
	}
}

// Series returns a copy of the samples recorded for name.
func (r *Recorder) Series(name string) ([]float64, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObservable, name)
	}
	out := make([]float64, len(r.series[i]))
	copy(out, r.series[i])
	return out, nil
}

// Last returns the most recent sample for name.
func (r *Recorder) Last(name string) (float64, bool, error) {
	i, ok := r.index[name]
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrUnknownObservable, name)
	}
	s := r.series[i]
	if len(s) == 0 {
		return 0, false, nil
	}
	return s[len(s)-1], true, nil
}

func (r *Recorder) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of samples taken; all series share it.
func (r *Recorder) Len() int {
	return len(r.series[0])
}

// Snapshot copies every series keyed by name.
func (r *Recorder) Snapshot() map[string][]float64 {
	out := make(map[string][]float64, len(r.names))
	for i, name := range r.names {
		s := make([]float64, len(r.series[i]))
		copy(s, r.series[i])
		out[name] = s
	}
	return out
}

// Callback wraps the recorder as the effect of a callback guarded by cond.
func (r *Recorder) Callback(cond Condition) (*Callback, error) {
	return New(cond, r)
}

// Every records on each iteration that is a multiple of period.
func (r *Recorder) Every(period int) (*Callback, error) {
	cond, err := Every(period)
	if err != nil {
		return nil, err
	}
	return New(cond, r)
}
