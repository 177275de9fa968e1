// Package compute provides the force-evaluation and atom-move backends.
//
// The package selects the best available backend at init:
//
//   - GPU: OpenGL 4.3 compute shaders, one invocation per atom
//   - CPU: worker fan-out over atom index, always available
//
// Both backends implement the same pair physics (see the md package); the
// GPU path works on single-precision device mirrors, so the two agree to
// float32 tolerance rather than bit-exactly.
//
//	backend := compute.GetBackend()
//	err := backend.Forces(state)
//
// One backend per run: device-resident arrays are not shared between
// backends, and interleaving them mid-run is unsupported.
package compute
