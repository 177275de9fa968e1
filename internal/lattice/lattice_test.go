package lattice_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/argonmd/internal/lattice"
	"github.com/san-kum/argonmd/internal/md"
)

var _ = Describe("InitPositions", func() {
	DescribeTable("fills exactly 4*Nc^3 atoms",
		func(nc int) {
			s := md.NewState(nc, md.FirstScale, md.FirstTemp)
			lattice.InitPositions(s)
			Expect(s.NumAtom).To(Equal(4 * nc * nc * nc))
		},
		Entry("nc=1", 1),
		Entry("nc=2", 2),
		Entry("nc=3", 3),
		Entry("nc=4", 4),
	)

	It("recenters the centroid at the origin", func() {
		s := md.NewState(3, md.FirstScale, md.FirstTemp)
		lattice.InitPositions(s)

		var cx, cy, cz float64
		for n := 0; n < s.NumAtom; n++ {
			cx += s.R[n].X
			cy += s.R[n].Y
			cz += s.R[n].Z
		}
		Expect(cx / float64(s.NumAtom)).To(BeNumerically("~", 0, 1e-10))
		Expect(cy / float64(s.NumAtom)).To(BeNumerically("~", 0, 1e-10))
		Expect(cz / float64(s.NumAtom)).To(BeNumerically("~", 0, 1e-10))
	})

	It("places no two atoms at the same site", func() {
		s := md.NewState(2, md.FirstScale, md.FirstTemp)
		lattice.InitPositions(s)

		for i := 0; i < s.NumAtom; i++ {
			for j := i + 1; j < s.NumAtom; j++ {
				d := s.R[i].Sub(s.R[j])
				Expect(d.Norm2()).To(BeNumerically(">", 1e-6))
			}
		}
	})
})

var _ = Describe("InitVelocities", func() {
	It("removes the net center-of-mass velocity", func() {
		for _, nc := range []int{1, 2, 4} {
			s := md.NewState(nc, md.FirstScale, md.FirstTemp)
			lattice.InitPositions(s)
			lattice.InitVelocities(s, rand.New(rand.NewSource(42)))

			var sx, sy, sz float64
			for n := 0; n < s.NumAtom; n++ {
				sx += s.V[n].X
				sy += s.V[n].Y
				sz += s.V[n].Z
			}
			Expect(sx).To(BeNumerically("~", 0, 1e-10))
			Expect(sy).To(BeNumerically("~", 0, 1e-10))
			Expect(sz).To(BeNumerically("~", 0, 1e-10))
		}
	})

	It("yields a non-zero kinetic temperature", func() {
		s := md.NewState(2, md.FirstScale, md.FirstTemp)
		lattice.InitPositions(s)
		lattice.InitVelocities(s, rand.New(rand.NewSource(7)))

		uk := s.KineticEnergy()
		Expect(uk).To(BeNumerically(">", 0))

		// The common speed before the momentum correction is sqrt(3*Tg),
		// so the temperature lands near Tg.
		tc := s.Temperature(uk)
		Expect(tc).To(BeNumerically("~", s.Tg, s.Tg))
	})

	It("is deterministic for a fixed seed", func() {
		a := md.NewState(2, md.FirstScale, md.FirstTemp)
		b := md.NewState(2, md.FirstScale, md.FirstTemp)
		lattice.InitPositions(a)
		lattice.InitPositions(b)
		lattice.InitVelocities(a, rand.New(rand.NewSource(99)))
		lattice.InitVelocities(b, rand.New(rand.NewSource(99)))

		for n := 0; n < a.NumAtom; n++ {
			Expect(math.Abs(a.V[n].X - b.V[n].X)).To(BeZero())
			Expect(math.Abs(a.V[n].Y - b.V[n].Y)).To(BeZero())
			Expect(math.Abs(a.V[n].Z - b.V[n].Z)).To(BeZero())
		}
	})
})
