package models

import "github.com/san-kum/dynstep/internal/dynamo"

// Decay is first-order exponential decay du/dt = -k*u, applied per
// component.
type Decay struct {
	K float64
}

func NewDecay() *Decay { return &Decay{K: 5.0} }

func (d *Decay) Name() string  { return "decay" }
func (d *Decay) StateDim() int { return 1 }

func (d *Decay) Derive(du, u dynamo.State, _ float64) {
	for i := range u {
		du[i] = -d.K * u[i]
	}
}

func (d *Decay) DefaultState() dynamo.State { return dynamo.State{5.0} }

func (d *Decay) GetParams() map[string]float64 {
	return map[string]float64{"k": d.K}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "k" {
		return unknownParam(name)
	}
	d.K = value
	return nil
}
