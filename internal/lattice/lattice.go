// Package lattice builds the initial FCC Argon configuration: positions on
// a face-centered-cubic supercell and Maxwell-like random velocities with
// zero net momentum.
package lattice

import (
	"math"
	"math/rand"

	"github.com/san-kum/argonmd/internal/md"
)

// InitPositions fills s.R with a face-centered-cubic arrangement: four
// basis atoms per unit cell over Nc^3 cells, then recenters the whole set
// so its centroid sits at the origin.
func InitPositions(s *md.State) {
	n := 0
	for i := 0; i < s.Nc; i++ {
		for j := 0; j < s.Nc; j++ {
			for k := 0; k < s.Nc; k++ {
				sx := float64(i) * s.Lat
				sy := float64(j) * s.Lat
				sz := float64(k) * s.Lat

				// four atoms per FCC unit cell
				s.R[n] = md.Vector4{X: sx, Y: sy, Z: sz}
				n++
				s.R[n] = md.Vector4{X: 0.5*s.Lat + sx, Y: 0.5*s.Lat + sy, Z: sz}
				n++
				s.R[n] = md.Vector4{X: sx, Y: 0.5*s.Lat + sy, Z: 0.5*s.Lat + sz}
				n++
				s.R[n] = md.Vector4{X: 0.5*s.Lat + sx, Y: sy, Z: 0.5*s.Lat + sz}
				n++
			}
		}
	}

	s.NumAtom = n

	var cx, cy, cz float64
	for n := 0; n < s.NumAtom; n++ {
		cx += s.R[n].X
		cy += s.R[n].Y
		cz += s.R[n].Z
	}
	cx /= float64(s.NumAtom)
	cy /= float64(s.NumAtom)
	cz /= float64(s.NumAtom)

	for n := 0; n < s.NumAtom; n++ {
		s.R[n].X -= cx
		s.R[n].Y -= cy
		s.R[n].Z -= cz
	}
}

// InitVelocities assigns each atom a random unit direction scaled to the
// common speed sqrt(3*Tg), then subtracts the per-axis mean so the total
// momentum is zero. A zero random vector is accepted as-is.
func InitVelocities(s *md.State, rng *rand.Rand) {
	v := math.Sqrt(3.0 * s.Tg)

	uniform := func() float64 { return rng.Float64()*2.0 - 1.0 }

	for n := 0; n < s.NumAtom; n++ {
		rx := uniform()
		ry := uniform()
		rz := uniform()

		inv := 1.0 / math.Sqrt(rx*rx+ry*ry+rz*rz)
		s.V[n] = md.Vector4{X: v * rx * inv, Y: v * ry * inv, Z: v * rz * inv}
	}

	var sx, sy, sz float64
	for n := 0; n < s.NumAtom; n++ {
		sx += s.V[n].X
		sy += s.V[n].Y
		sz += s.V[n].Z
	}
	sx /= float64(s.NumAtom)
	sy /= float64(s.NumAtom)
	sz /= float64(s.NumAtom)

	for n := 0; n < s.NumAtom; n++ {
		s.V[n].X -= sx
		s.V[n].Y -= sy
		s.V[n].Z -= sz
	}
}
