package md

import (
	"errors"
	"fmt"
)

// Domain errors for precondition violations. The default simulation mode
// leaves the arithmetic unguarded; these are surfaced only when validation
// is enabled so tests can distinguish failure modes from silent NaNs.
var (
	// ErrDegenerateTemperature indicates a zero instantaneous temperature
	// during the bootstrap velocity rescale.
	ErrDegenerateTemperature = errors.New("md: degenerate temperature (bootstrap rescale undefined)")

	// ErrCoincidentAtoms indicates two distinct periodic images at zero
	// separation in the force sum.
	ErrCoincidentAtoms = errors.New("md: coincident atoms (zero separation)")

	// ErrBackendMismatch indicates device-mirrored state read without the
	// matching backend having run.
	ErrBackendMismatch = errors.New("md: device state does not match active backend")

	// ErrInvalidState indicates NaN or Inf in a per-atom array.
	ErrInvalidState = errors.New("md: invalid state (NaN or Inf detected)")
)

// SimError records where in a run a failure occurred.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
