package md

import "math"

// ForceOnAtom sums the Lennard-Jones force on atom n over every atom m and
// every periodic image offset in [-ncp, ncp]^3, skipping only the exact
// self-interaction (n == m with zero offset). It returns the accumulated
// force and atom n's share of the potential energy; the 0.5 factor in the
// energy compensates for the ordered double count of each pair.
//
// Precondition: no two distinct images coincide. A zero separation inside
// the cutoff divides by zero, matching the unguarded reference behavior.
func ForceOnAtom(n int, r []Vector4, ncp int, periodicLen float64, lj LJParams) (Vector4, float64) {
	var f Vector4
	up := 0.0

	for m := range r {
		for i := -ncp; i <= ncp; i++ {
			for j := -ncp; j <= ncp; j++ {
				for k := -ncp; k <= ncp; k++ {
					if n == m && i == 0 && j == 0 && k == 0 {
						continue
					}

					s := Vector4{
						X: float64(i) * periodicLen,
						Y: float64(j) * periodicLen,
						Z: float64(k) * periodicLen,
					}
					d := r[n].Sub(r[m].Add(s))

					r2 := d.Norm2()
					if r2 > lj.Rc2 {
						continue
					}

					rr := math.Sqrt(r2)
					rm6 := 1.0 / (r2 * r2 * r2)
					rm7 := rm6 / rr
					rm12 := rm6 * rm6
					rm13 := rm12 / rr

					fr := 48.0*rm13 - 24.0*rm7
					f = f.Add(d.Scale(fr / rr))

					up += 0.5 * (4.0*(rm12-rm6) - lj.Vrc)
				}
			}
		}
	}

	return f, up
}
