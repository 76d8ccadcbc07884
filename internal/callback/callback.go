package callback

import "github.com/san-kum/dynstep/internal/dynamo"

// Handler is the contract shared by callbacks, groups and the solver's root
// callback. Invoke must return the integrator it was given.
type Handler interface {
	Invoke(iter int, in *dynamo.Integrator) *dynamo.Integrator
}

// HandlerFunc adapts a function to Handler. The returned integrator is
// always the one passed in.
type HandlerFunc func(iter int, in *dynamo.Integrator)

func (f HandlerFunc) Invoke(iter int, in *dynamo.Integrator) *dynamo.Integrator {
	f(iter, in)
	return in
}

// Condition decides whether an effect runs this iteration. Implementations
// should not mutate the integrator.
type Condition interface {
	Check(iter int, in *dynamo.Integrator) bool
}

type ConditionFunc func(iter int, in *dynamo.Integrator) bool

func (f ConditionFunc) Check(iter int, in *dynamo.Integrator) bool { return f(iter, in) }

// Effect acts on the integrator, possibly mutating its state.
type Effect interface {
	Apply(iter int, in *dynamo.Integrator)
}

type EffectFunc func(iter int, in *dynamo.Integrator)

func (f EffectFunc) Apply(iter int, in *dynamo.Integrator) { f(iter, in) }

var (
	// Always is a condition that is true on every iteration.
	Always Condition = ConditionFunc(func(int, *dynamo.Integrator) bool { return true })
	// Never is a condition that is never true.
	Never Condition = ConditionFunc(func(int, *dynamo.Integrator) bool { return false })
)

// Nop is the default root handler: it does nothing.
var Nop Handler = HandlerFunc(func(int, *dynamo.Integrator) {})

// Callback runs its effect whenever its condition holds.
type Callback struct {
	cond   Condition
	effect Effect
}

func New(cond Condition, effect Effect) (*Callback, error) {
	if cond == nil {
		return nil, dynamo.NewConfigError("condition", nil, "must not be nil")
	}
	if effect == nil {
		return nil, dynamo.NewConfigError("effect", nil, "must not be nil")
	}
	return &Callback{cond: cond, effect: effect}, nil
}

// Invoke evaluates the condition, runs the effect if it holds and returns
// in unchanged in identity.
func (c *Callback) Invoke(iter int, in *dynamo.Integrator) *dynamo.Integrator {
	if c.cond.Check(iter, in) {
		c.effect.Apply(iter, in)
	}
	return in
}

func (c *Callback) Condition() Condition { return c.cond }
func (c *Callback) Effect() Effect       { return c.effect }
