package compute

import (
	"math"
	"testing"
)

// The GPU path works in single precision; agreement with the float64 CPU
// path holds to float32 tolerance.
const agreeTol = 1e-4

func requireGL(t *testing.T) *GLBackend {
	t.Helper()
	gpu := NewGLBackend()
	if !gpu.Available() {
		t.Skip("no GL 4.3 context on this host")
	}
	return gpu
}

func TestForces_BackendsAgree(t *testing.T) {
	gpu := requireGL(t)
	defer gpu.Cleanup()

	ref := newLatticeState(1, 21)
	dev := newLatticeState(1, 21)

	cpu := NewCPUBackend()
	if err := cpu.Forces(ref); err != nil {
		t.Fatal(err)
	}
	if err := gpu.Forces(dev); err != nil {
		t.Fatal(err)
	}

	for n := 0; n < ref.NumAtom; n++ {
		checkClose(t, "F.X", n, ref.F[n].X, dev.F[n].X)
		checkClose(t, "F.Y", n, ref.F[n].Y, dev.F[n].Y)
		checkClose(t, "F.Z", n, ref.F[n].Z, dev.F[n].Z)
	}

	// Both backends sum Up with the same float64 host loop.
	if math.Abs(ref.Up-dev.Up) > 1e-9*math.Abs(ref.Up) {
		t.Errorf("potential energy cpu %g, gpu %g", ref.Up, dev.Up)
	}
}

func TestBootstrap_BackendsAgree(t *testing.T) {
	gpu := requireGL(t)
	defer gpu.Cleanup()

	ref := newLatticeState(1, 25)
	dev := newLatticeState(1, 25)

	cpu := NewCPUBackend()
	if err := cpu.Forces(ref); err != nil {
		t.Fatal(err)
	}
	if err := gpu.Forces(dev); err != nil {
		t.Fatal(err)
	}
	if err := cpu.Bootstrap(ref, 1.1); err != nil {
		t.Fatal(err)
	}
	if err := gpu.Bootstrap(dev, 1.1); err != nil {
		t.Fatal(err)
	}

	for n := 0; n < ref.NumAtom; n++ {
		checkClose(t, "R.X", n, ref.R[n].X, dev.R[n].X)
		checkClose(t, "R.Y", n, ref.R[n].Y, dev.R[n].Y)
		checkClose(t, "R.Z", n, ref.R[n].Z, dev.R[n].Z)
		checkClose(t, "V.X", n, ref.V[n].X, dev.V[n].X)
		checkClose(t, "V.Y", n, ref.V[n].Y, dev.V[n].Y)
		checkClose(t, "V.Z", n, ref.V[n].Z, dev.V[n].Z)
	}
}

func checkClose(t *testing.T, what string, n int, ref, got float64) {
	t.Helper()
	if math.Abs(ref-got) > agreeTol*(1+math.Abs(ref)) {
		t.Fatalf("atom %d %s: cpu %g, gpu %g", n, what, ref, got)
	}
}
