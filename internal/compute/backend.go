package compute

import "github.com/san-kum/argonmd/internal/md"

// Backend evaluates forces and moves atoms for one simulation state. The
// two implementations must produce numerically consistent results; the GPU
// path works in single precision, so agreement is within float32 tolerance.
//
// A run must stick to one backend: the GPU backend keeps device mirrors of
// the per-atom arrays, and mixing calls from both backends within one run
// is a misuse precondition (see md.ErrBackendMismatch).
type Backend interface {
	Name() string
	Available() bool

	// Forces zero-initializes s.F, accumulates the periodic-image pair
	// forces and stores the potential energy in s.Up.
	Forces(s *md.State) error

	// Bootstrap advances one modified-Euler step with velocity rescale
	// factor scale, then applies the periodic wrap.
	Bootstrap(s *md.State, scale float64) error

	// Verlet advances one position-Verlet step, then applies the wrap.
	Verlet(s *md.State) error

	Cleanup()
}

var activeBackend Backend

// SetBackend replaces the process-wide backend, releasing the previous one.
func SetBackend(b Backend) {
	if activeBackend != nil && activeBackend != b {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the process-wide backend, auto-selecting on first use.
// GPU probing is deliberately lazy: merely importing the package must not
// touch the GL driver.
func GetBackend() Backend {
	if activeBackend == nil {
		activeBackend = AutoSelectBackend()
	}
	return activeBackend
}

// AutoSelectBackend prefers the GPU when an offscreen GL 4.3 context can
// be created, and falls back to CPU otherwise.
func AutoSelectBackend() Backend {
	gpu := NewGLBackend()
	if gpu.Available() {
		return gpu
	}
	return NewCPUBackend()
}
