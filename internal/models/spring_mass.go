package models

import "github.com/san-kum/dynstep/internal/dynamo"

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
)

// SpringMass is a single damped harmonic oscillator. State: [x, v].
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
	}
}

func (s *SpringMass) Name() string  { return "spring_mass" }
func (s *SpringMass) StateDim() int { return 2 }

func (s *SpringMass) Derive(du, u dynamo.State, _ float64) {
	du[0] = u[1]
	du[1] = (-s.Stiffness*u[0] - s.Damping*u[1]) / s.Mass
}

func (s *SpringMass) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (s *SpringMass) Energy(x dynamo.State) float64 {
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*x[0]*x[0]
}

func (s *SpringMass) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *SpringMass) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return unknownParam(name)
	}
	return nil
}
