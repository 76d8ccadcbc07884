package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

const DefaultStabilityThreshold = 10.0

// Parse builds a fresh observable from its name:
//
//	t, iter, norm          time, iteration index, state norm
//	x<i>                   i-th state component
//	energy, energy_drift   require a Hamiltonian model
//	stability[:<limit>]    running fraction of in-bounds samples
func Parse(name string, model any) (callback.Observable, error) {
	obs := callback.Observable{Name: name}

	switch {
	case name == "t":
		obs.Extract = Time
	case name == "iter":
		obs.Extract = Iteration
	case name == "norm":
		obs.Extract = Norm
	case name == "energy" || name == "energy_drift":
		h, ok := model.(dynamo.Hamiltonian)
		if !ok {
			return obs, dynamo.NewConfigError("observable", name, "requires a model with an energy function")
		}
		if name == "energy" {
			obs.Extract = Energy(h)
		} else {
			obs.Extract = NewEnergyDrift(h).Extract
		}
	case name == "stability" || strings.HasPrefix(name, "stability:"):
		limit := DefaultStabilityThreshold
		if rest, ok := strings.CutPrefix(name, "stability:"); ok {
			v, err := strconv.ParseFloat(rest, 64)
			if err != nil || v <= 0 {
				return obs, dynamo.NewConfigError("stability limit", rest, "must be a positive number")
			}
			limit = v
		}
		obs.Extract = NewStability(limit).Extract
	case strings.HasPrefix(name, "x"):
		digits := name[1:]
		if digits == "" || digits[0] < '0' || digits[0] > '9' {
			return obs, fmt.Errorf("%w: %q", callback.ErrUnknownObservable, name)
		}
		i, err := strconv.Atoi(digits)
		if err != nil {
			return obs, fmt.Errorf("%w: %q", callback.ErrUnknownObservable, name)
		}
		obs.Extract = Component(i)
	default:
		return obs, fmt.Errorf("%w: %q", callback.ErrUnknownObservable, name)
	}
	return obs, nil
}

// ParseAll parses names in order.
func ParseAll(names []string, model any) ([]callback.Observable, error) {
	out := make([]callback.Observable, 0, len(names))
	for _, n := range names {
		o, err := Parse(n, model)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
