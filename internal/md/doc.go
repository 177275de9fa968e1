// Package md provides the core state model and pair physics for the
// Lennard-Jones Argon simulation.
//
// The package defines the shared building blocks used by every backend:
//
//   - [Vector4]: 4-wide float tuple for positions, velocities and forces
//   - [State]: per-atom arrays plus the energy/temperature diagnostics
//   - [LJParams]: cutoff-derived Lennard-Jones constants
//   - [ForceOnAtom]: the periodic-image pair sum both backends reproduce
//
// All quantities are in reduced units: distance in units of sigma, energy
// in units of epsilon, temperature as k_B T / epsilon.
//
// # Thread Safety
//
// State is not safe for concurrent mutation. The compute backends fan out
// over disjoint atom ranges, which is the only sanctioned concurrent access.
package md
