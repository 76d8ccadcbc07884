package callback

import (
	"math"
	"strings"
	"time"

	"github.com/san-kum/dynstep/internal/dynamo"
)

// Clock is the time source of a WallClockInterval.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// ParseUnit maps a unit name to its duration. Only seconds, minutes and
// hours are accepted.
func ParseUnit(unit string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, nil
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, nil
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, nil
	}
	return 0, dynamo.NewConfigError("time unit", unit, "must be one of seconds, minutes, hours")
}

// WallClockInterval holds when more real time than its threshold has passed
// since it last fired (or since construction). It measures wall-clock time,
// not simulation time.
type WallClockInterval struct {
	threshold time.Duration
	clock     Clock
	last      time.Time
}

type WallClockOption func(*WallClockInterval)

// WithClock injects the time source, typically a fake clock in tests.
func WithClock(c Clock) WallClockOption {
	return func(w *WallClockInterval) {
		if c != nil {
			w.clock = c
		}
	}
}

func NewWallClockInterval(value float64, unit string, opts ...WallClockOption) (*WallClockInterval, error) {
	scale, err := ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	if !(value > 0) || math.IsInf(value, 1) {
		return nil, dynamo.NewConfigError("duration", value, "must be positive and finite")
	}
	if value*float64(scale) >= math.MaxInt64 {
		return nil, dynamo.NewConfigError("duration", value, "too large")
	}

	w := &WallClockInterval{
		threshold: time.Duration(value * float64(scale)),
		clock:     SystemClock,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.last = w.clock.Now()
	return w, nil
}

func (w *WallClockInterval) Check(_ int, _ *dynamo.Integrator) bool {
	now := w.clock.Now()
	if now.Sub(w.last) > w.threshold {
		w.last = now
		return true
	}
	return false
}

func (w *WallClockInterval) Threshold() time.Duration { return w.threshold }
