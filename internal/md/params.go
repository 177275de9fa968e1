package md

import "math"

// Physical constants for Argon and the reduced-unit conversion.
const (
	// KB is the Boltzmann constant [J/K].
	KB = 1.3806488e-23
	// Epsilon is the Lennard-Jones well depth for Argon [J].
	Epsilon = 1.6540172624e-21
	// Sigma is the Lennard-Jones length scale for Argon [m].
	Sigma = 3.405e-10
	// Avogadro is the Avogadro constant [1/mol].
	Avogadro = 6.022140857e23
	// Hartree [J].
	Hartree = 4.35974465054e-18
	// Atm is standard pressure in atomic units.
	Atm = 9.86923266716013e-6
)

// Simulation defaults.
const (
	// FirstNc is the default supercell count per axis.
	FirstNc = 4
	// FirstScale is the default lattice-constant scale.
	FirstScale = 1.0
	// FirstTemp is the default target temperature [K].
	FirstTemp = 50.0
	// DT is the reduced time step.
	DT = 0.001
	// Alpha is the Woodcock velocity-rescaling damping constant.
	Alpha = 0.2
	// Ncp is the periodic-image extent: offsets run over [-Ncp, Ncp]^3.
	Ncp = 3
	// Rc is the cutoff radius in units of sigma.
	Rc = 2.5
)

// Tau is the reduced time unit for Argon [s].
var Tau = math.Sqrt(0.039948 / Avogadro * Sigma * Sigma / Epsilon)

// LJParams holds the cutoff radius and its derived powers, fixed at
// construction. Vrc shifts the potential to zero at the cutoff.
type LJParams struct {
	Rc    float64
	Rc2   float64
	Rcm6  float64
	Rcm12 float64
	Vrc   float64
}

func NewLJParams(rc float64) LJParams {
	rcm6 := math.Pow(rc, -6.0)
	rcm12 := math.Pow(rc, -12.0)
	return LJParams{
		Rc:    rc,
		Rc2:   rc * rc,
		Rcm6:  rcm6,
		Rcm12: rcm12,
		Vrc:   4.0 * (rcm12 - rcm6),
	}
}

// ReducedTemp converts a temperature in Kelvin to reduced units.
func ReducedTemp(kelvin float64) float64 {
	return kelvin * KB / Epsilon
}
