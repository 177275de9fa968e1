package md

import "math"

// State owns the per-atom arrays and the scalar diagnostics of one run.
// R, R1, V and F always have identical length NumAtom = 4*Nc^3. After a
// completed step every position component lies in [0, PeriodicLen).
type State struct {
	Nc      int
	NumAtom int

	Scale       float64
	Lat         float64
	PeriodicLen float64
	Dt          float64
	Tg          float64

	R  []Vector4 // positions
	R1 []Vector4 // prior positions (Verlet history)
	V  []Vector4 // velocities
	F  []Vector4 // forces

	Iter int
	Time float64

	Up   float64 // potential energy
	Uk   float64 // kinetic energy
	Utot float64 // total energy
	Tc   float64 // instantaneous temperature

	LJ LJParams
}

// NewState allocates a state for an Nc^3 supercell of FCC Argon at the
// given lattice scale and target temperature in Kelvin. Arrays are sized
// but not filled; see the lattice package for initialization.
func NewState(nc int, scale, kelvin float64) *State {
	n := 4 * nc * nc * nc
	lat := math.Pow(2.0, 2.0/3.0) * scale
	return &State{
		Nc:          nc,
		NumAtom:     n,
		Scale:       scale,
		Lat:         lat,
		PeriodicLen: lat * float64(nc),
		Dt:          DT,
		Tg:          ReducedTemp(kelvin),
		R:           make([]Vector4, n),
		R1:          make([]Vector4, n),
		V:           make([]Vector4, n),
		F:           make([]Vector4, n),
		Iter:        1,
		LJ:          NewLJParams(Rc),
	}
}

// KineticEnergy returns 0.5 * sum |V|^2 over all atoms.
func (s *State) KineticEnergy() float64 {
	uk := 0.0
	for n := 0; n < s.NumAtom; n++ {
		uk += s.V[n].Norm2()
	}
	return 0.5 * uk
}

// Temperature returns the instantaneous temperature for a kinetic energy.
func (s *State) Temperature(uk float64) float64 {
	return uk / (1.5 * float64(s.NumAtom))
}

// Wrap applies the periodic boundary to every atom, shifting the prior
// position by the same amount so the Verlet recurrence stays consistent.
func (s *State) Wrap() {
	for n := 0; n < s.NumAtom; n++ {
		WrapAtom(&s.R[n], &s.R1[n], s.PeriodicLen)
	}
}

// Validate reports ErrInvalidState if any per-atom array contains NaN or Inf.
func (s *State) Validate() error {
	for n := 0; n < s.NumAtom; n++ {
		if !finite(s.R[n]) || !finite(s.R1[n]) || !finite(s.V[n]) || !finite(s.F[n]) {
			return ErrInvalidState
		}
	}
	return nil
}

func finite(v Vector4) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
