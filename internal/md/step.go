package md

// Per-atom update rules shared by the CPU backend and mirrored by the GPU
// kernels. Each function touches exactly one atom's slots, so callers may
// fan out over disjoint atom ranges.

// BootstrapAtom advances one atom by the modified-Euler rule used on the
// first iteration only. s is the Woodcock velocity rescale factor.
func BootstrapAtom(r, r1, v *Vector4, f Vector4, dt, s float64) {
	*r1 = *r

	*v = v.Scale(s)

	*r = r.Add(v.Scale(dt)).Add(f.Scale(0.5 * dt * dt))
	*v = v.Add(f.Scale(dt))
}

// VerletAtom advances one atom by the position-Verlet recurrence. The
// pre-update position must be snapshotted before r is overwritten, so the
// history slot keeps the previous step and not the new one.
func VerletAtom(r, r1, v *Vector4, f Vector4, dt float64) {
	rtmp := *r

	*r = r.Scale(2.0).Sub(*r1).Add(f.Scale(dt * dt))
	*v = r.Sub(*r1).Scale(0.5 / dt)

	*r1 = rtmp
}

// WrapAtom folds one atom back into [0, periodicLen) per axis, shifting the
// prior position identically. Wrapping only the current position would
// desynchronize the Verlet recurrence.
func WrapAtom(r, r1 *Vector4, periodicLen float64) {
	wrapAxis(&r.X, &r1.X, periodicLen)
	wrapAxis(&r.Y, &r1.Y, periodicLen)
	wrapAxis(&r.Z, &r1.Z, periodicLen)
}

func wrapAxis(c, c1 *float64, periodicLen float64) {
	if *c > periodicLen {
		*c -= periodicLen
		*c1 -= periodicLen
	} else if *c < 0.0 {
		*c += periodicLen
		*c1 += periodicLen
	}
}
