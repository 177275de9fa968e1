package integrators

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/argonmd/internal/compute"
	"github.com/san-kum/argonmd/internal/lattice"
	"github.com/san-kum/argonmd/internal/md"
)

func newLatticeState(nc int, seed int64) *md.State {
	s := md.NewState(nc, md.FirstScale, md.FirstTemp)
	lattice.InitPositions(s)
	lattice.InitVelocities(s, rand.New(rand.NewSource(seed)))
	return s
}

func TestStepper_PhaseTransition(t *testing.T) {
	s := newLatticeState(1, 11)
	cpu := compute.NewCPUBackend()
	st := NewStepper()

	if st.Phase() != PhaseBootstrap {
		t.Fatal("fresh stepper should start in bootstrap")
	}

	for i := 0; i < 3; i++ {
		if err := cpu.Forces(s); err != nil {
			t.Fatal(err)
		}
		if err := st.Step(s, cpu); err != nil {
			t.Fatal(err)
		}
		if st.Phase() != PhaseSteady {
			t.Fatalf("after step %d: phase %v, want steady", i+1, st.Phase())
		}
	}

	if s.Iter != 4 {
		t.Errorf("iteration counter = %d, want 4", s.Iter)
	}
	if math.Abs(s.Time-3*s.Dt) > 1e-15 {
		t.Errorf("time = %g, want %g", s.Time, 3*s.Dt)
	}
}

func TestStepper_BootstrapRescalesTowardTarget(t *testing.T) {
	s := newLatticeState(2, 13)
	cpu := compute.NewCPUBackend()
	st := NewStepper()

	if err := cpu.Forces(s); err != nil {
		t.Fatal(err)
	}

	uk := s.KineticEnergy()
	tc := s.Temperature(uk)
	wantScale := math.Sqrt((s.Tg + md.Alpha*(tc-s.Tg)) / tc)

	// Velocity magnitudes before the move, for one atom far from the
	// force-dominated change: compare the full-system kinetic energy
	// instead, which scales by s^2 up to the O(dt) force term.
	if err := st.Step(s, cpu); err != nil {
		t.Fatal(err)
	}

	ukAfter := s.KineticEnergy()
	ratio := math.Sqrt(ukAfter / uk)

	if math.Abs(ratio-wantScale) > 0.05*wantScale {
		t.Errorf("kinetic rescale ratio %g, want about %g", ratio, wantScale)
	}
	if math.Abs(wantScale-1.0) < 1e-6 {
		t.Log("degenerate case: initial temperature already at target")
	}
}

func TestStepper_BootstrapAndSteadyDiverge(t *testing.T) {
	// Identical initial states, but one stepper is forced past its
	// bootstrap: the Woodcock rescale makes the trajectories distinct.
	a := newLatticeState(1, 17)
	b := newLatticeState(1, 17)

	cpu := compute.NewCPUBackend()

	stA := NewStepper()
	stB := &Stepper{phase: PhaseSteady}
	// Give B a consistent Verlet history.
	copy(b.R1, b.R)

	if err := cpu.Forces(a); err != nil {
		t.Fatal(err)
	}
	if err := stA.Step(a, cpu); err != nil {
		t.Fatal(err)
	}

	if err := cpu.Forces(b); err != nil {
		t.Fatal(err)
	}
	if err := stB.Step(b, cpu); err != nil {
		t.Fatal(err)
	}

	same := true
	for n := 0; n < a.NumAtom; n++ {
		if math.Abs(a.V[n].X-b.V[n].X) > 1e-12 {
			same = false
			break
		}
	}
	if same {
		t.Error("bootstrap and steady branches produced identical velocities")
	}
}

type bootstrapFailure struct {
	*compute.CPUBackend
}

func (bootstrapFailure) Bootstrap(s *md.State, scale float64) error {
	return errors.New("device lost")
}

func TestStepper_BootstrapErrorKeepsPhase(t *testing.T) {
	s := newLatticeState(1, 23)
	cpu := compute.NewCPUBackend()
	fb := bootstrapFailure{cpu}
	st := NewStepper()

	if err := cpu.Forces(s); err != nil {
		t.Fatal(err)
	}
	if err := st.Step(s, fb); err == nil {
		t.Fatal("expected the bootstrap error to surface")
	}
	if st.Phase() != PhaseBootstrap {
		t.Fatal("failed bootstrap must not transition to steady")
	}

	// A retry with a working backend completes the bootstrap.
	if err := cpu.Forces(s); err != nil {
		t.Fatal(err)
	}
	if err := st.Step(s, cpu); err != nil {
		t.Fatal(err)
	}
	if st.Phase() != PhaseSteady {
		t.Error("successful retry should transition to steady")
	}
}

func TestStepper_DegenerateTemperature(t *testing.T) {
	s := newLatticeState(1, 19)
	for n := range s.V {
		s.V[n] = md.Vector4{}
	}

	cpu := compute.NewCPUBackend()
	st := NewStepper()

	if err := cpu.Forces(s); err != nil {
		t.Fatal(err)
	}

	err := st.Step(s, cpu)
	if err != md.ErrDegenerateTemperature {
		t.Errorf("expected ErrDegenerateTemperature, got %v", err)
	}
	if st.Phase() != PhaseBootstrap {
		t.Error("failed bootstrap must not transition to steady")
	}
}
