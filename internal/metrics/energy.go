// Package metrics aggregates per-step diagnostics into run-level values.
package metrics

import (
	"math"

	"github.com/san-kum/argonmd/internal/sim"
)

// EnergyDrift tracks the maximum relative deviation of the total energy
// from its post-bootstrap reference. The first sample is skipped because
// the Woodcock rescale legitimately changes the energy once.
type EnergyDrift struct {
	name     string
	refSet   bool
	ref      float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(d sim.Diagnostics) {
	e.samples++
	if e.samples == 1 {
		return
	}

	if !e.refSet {
		e.ref = d.Utot
		e.refSet = true
		return
	}

	if e.ref != 0 {
		drift := math.Abs(d.Utot-e.ref) / math.Abs(e.ref)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.refSet = false
	e.ref = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanTemperature averages the instantaneous temperature over a run.
type MeanTemperature struct {
	name    string
	total   float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(d sim.Diagnostics) {
	m.total += d.Tc
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.total = 0
	m.samples = 0
}
