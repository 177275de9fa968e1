package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/argonmd/internal/md"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Forces(s *md.State) error {
	n := s.NumAtom

	for i := 0; i < n; i++ {
		s.F[i] = md.Vector4{}
	}

	if n < 8 {
		up := 0.0
		for i := 0; i < n; i++ {
			f, u := md.ForceOnAtom(i, s.R, md.Ncp, s.PeriodicLen, s.LJ)
			s.F[i] = f
			up += u
		}
		s.Up = up
		return nil
	}

	// Per-atom force slots are written by exactly one worker; only the
	// potential energy is shared, so it is summed from per-worker partials
	// after the join.
	partial := make([]float64, c.workers)

	c.parallelAtoms(n, func(worker, start, end int) {
		up := 0.0
		for i := start; i < end; i++ {
			f, u := md.ForceOnAtom(i, s.R, md.Ncp, s.PeriodicLen, s.LJ)
			s.F[i] = f
			up += u
		}
		partial[worker] = up
	})

	s.Up = 0
	for _, u := range partial {
		s.Up += u
	}
	return nil
}

func (c *CPUBackend) Bootstrap(s *md.State, scale float64) error {
	c.parallelAtoms(s.NumAtom, func(_, start, end int) {
		for n := start; n < end; n++ {
			md.BootstrapAtom(&s.R[n], &s.R1[n], &s.V[n], s.F[n], s.Dt, scale)
			md.WrapAtom(&s.R[n], &s.R1[n], s.PeriodicLen)
		}
	})
	return nil
}

func (c *CPUBackend) Verlet(s *md.State) error {
	c.parallelAtoms(s.NumAtom, func(_, start, end int) {
		for n := start; n < end; n++ {
			md.VerletAtom(&s.R[n], &s.R1[n], &s.V[n], s.F[n], s.Dt)
			md.WrapAtom(&s.R[n], &s.R1[n], s.PeriodicLen)
		}
	})
	return nil
}

// potentialEnergy runs the pair loop for the energy sum only. The GPU
// backend uses it because its force kernel does not reduce the energy.
func (c *CPUBackend) potentialEnergy(s *md.State) float64 {
	n := s.NumAtom
	partial := make([]float64, c.workers)

	c.parallelAtoms(n, func(worker, start, end int) {
		up := 0.0
		for i := start; i < end; i++ {
			_, u := md.ForceOnAtom(i, s.R, md.Ncp, s.PeriodicLen, s.LJ)
			up += u
		}
		partial[worker] = up
	})

	total := 0.0
	for _, u := range partial {
		total += u
	}
	return total
}

func (c *CPUBackend) parallelAtoms(n int, fn func(worker, start, end int)) {
	if n < c.workers*2 {
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}

	wg.Wait()
}
