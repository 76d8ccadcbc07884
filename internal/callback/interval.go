package callback

import "github.com/san-kum/dynstep/internal/dynamo"

// IterationInterval is a condition on the iteration index.
//
// In loop mode it holds whenever iter is a multiple of the period. In
// one-shot mode it holds the first time that happens and never again for
// the lifetime of the instance; there is no reset.
type IterationInterval struct {
	period int
	loop   bool
	fired  bool
}

func NewIterationInterval(period int, loop bool) (*IterationInterval, error) {
	if period <= 0 {
		return nil, dynamo.NewConfigError("period", period, "must be a positive integer")
	}
	return &IterationInterval{period: period, loop: loop}, nil
}

// Every is NewIterationInterval(period, true).
func Every(period int) (*IterationInterval, error) {
	return NewIterationInterval(period, true)
}

// Once is NewIterationInterval(period, false).
func Once(period int) (*IterationInterval, error) {
	return NewIterationInterval(period, false)
}

func (c *IterationInterval) Check(iter int, _ *dynamo.Integrator) bool {
	if iter%c.period != 0 {
		return false
	}
	if c.loop {
		return true
	}
	if c.fired {
		return false
	}
	c.fired = true
	return true
}

func (c *IterationInterval) Period() int { return c.period }
func (c *IterationInterval) Loop() bool  { return c.loop }

// Fired reports whether a one-shot interval has latched.
func (c *IterationInterval) Fired() bool { return c.fired }
