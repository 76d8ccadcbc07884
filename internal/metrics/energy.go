package metrics

import (
	"math"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

var nan = math.NaN()

// Energy samples the total energy of a Hamiltonian model.
func Energy(h dynamo.Hamiltonian) callback.Extractor {
	return func(_ int, in *dynamo.Integrator) float64 {
		return h.Energy(in.U)
	}
}

// EnergyDrift tracks the relative energy error against the first sample.
// It is stateful: use one instance per run.
type EnergyDrift struct {
	dyn           dynamo.Hamiltonian
	initialEnergy float64
	samples       int
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{dyn: dyn}
}

func (e *EnergyDrift) Extract(_ int, in *dynamo.Integrator) float64 {
	energy := e.dyn.Energy(in.U)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
}
