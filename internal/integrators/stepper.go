// Package integrators advances the simulation state one time step at a
// time: a modified-Euler bootstrap with Woodcock velocity rescaling on the
// first iteration, position-Verlet on every iteration after that.
package integrators

import (
	"math"

	"github.com/san-kum/argonmd/internal/compute"
	"github.com/san-kum/argonmd/internal/md"
)

// Phase is the stepper state. There is a single transition,
// PhaseBootstrap -> PhaseSteady, after the first step; a run never
// revisits the bootstrap.
type Phase int

const (
	PhaseBootstrap Phase = iota
	PhaseSteady
)

func (p Phase) String() string {
	if p == PhaseBootstrap {
		return "bootstrap"
	}
	return "steady"
}

// Stepper moves atoms through a backend and keeps the energy and
// temperature diagnostics current. Not safe for concurrent use.
type Stepper struct {
	phase Phase
}

func NewStepper() *Stepper {
	return &Stepper{phase: PhaseBootstrap}
}

func (st *Stepper) Phase() Phase { return st.phase }

// Step advances one iteration. Forces must already be computed for the
// current positions (backend.Forces ran first); the kinetic energy,
// total energy and temperature describe the configuration those forces
// belong to, so they are updated before the move.
func (st *Stepper) Step(s *md.State, b compute.Backend) error {
	s.Uk = s.KineticEnergy()
	s.Utot = s.Uk + s.Up
	s.Tc = s.Temperature(s.Uk)

	switch st.phase {
	case PhaseBootstrap:
		if s.Tc <= 0 {
			return md.ErrDegenerateTemperature
		}
		scale := math.Sqrt((s.Tg + md.Alpha*(s.Tc-s.Tg)) / s.Tc)
		if err := b.Bootstrap(s, scale); err != nil {
			// A failed bootstrap stays in bootstrap so the run can retry.
			return err
		}
		st.phase = PhaseSteady
	default:
		if err := b.Verlet(s); err != nil {
			return err
		}
	}

	s.Time = float64(s.Iter) * s.Dt
	s.Iter++
	return nil
}
