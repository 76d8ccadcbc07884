package models

import "github.com/san-kum/dynstep/internal/dynamo"

type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

func (r *Rossler) Name() string  { return "rossler" }
func (r *Rossler) StateDim() int { return 3 }

func (r *Rossler) Derive(du, s dynamo.State, _ float64) {
	du[0] = -s[1] - s[2]
	du[1] = s[0] + r.A*s[1]
	du[2] = r.B + s[2]*(s[0]-r.C)
}

func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.A, "b": r.B, "c": r.C}
}

func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.A = v
	case "b":
		r.B = v
	case "c":
		r.C = v
	default:
		return unknownParam(n)
	}
	return nil
}
