package md

import (
	"math"
	"testing"
)

func TestWrapAtom(t *testing.T) {
	const box = 5.0
	eps := 1e-9

	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"inside is no-op", 2.5, 2.5},
		{"zero is no-op", 0.0, 0.0},
		{"just over box", box + eps, eps},
		{"just under zero", -eps, box - eps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Vector4{X: tt.x, Y: 1, Z: 1}
			r1 := Vector4{X: tt.x - 0.1, Y: 1, Z: 1}

			WrapAtom(&r, &r1, box)

			if math.Abs(r.X-tt.expected) > 1e-12 {
				t.Errorf("wrapped to %g, want %g", r.X, tt.expected)
			}
			// The history must shift by the same amount.
			if math.Abs((r.X-r1.X)-0.1) > 1e-12 {
				t.Errorf("history desynchronized: r-r1 = %g, want 0.1", r.X-r1.X)
			}
		})
	}
}

func TestWrapAtom_Idempotent(t *testing.T) {
	r := Vector4{X: 1.0, Y: 2.0, Z: 3.0}
	r1 := r

	WrapAtom(&r, &r1, 5.0)
	before := r
	WrapAtom(&r, &r1, 5.0)

	if r != before {
		t.Errorf("wrap not idempotent: %+v -> %+v", before, r)
	}
}

func TestVerletAtom_HistorySnapshot(t *testing.T) {
	r := Vector4{X: 1.0}
	r1 := Vector4{X: 0.9}
	var v Vector4
	f := Vector4{X: 2.0}
	dt := 0.1

	old := r
	VerletAtom(&r, &r1, &v, f, dt)

	// r1 must hold the pre-update position, not the new one.
	if r1 != old {
		t.Errorf("history slot holds %+v, want pre-update %+v", r1, old)
	}

	wantR := 2.0*1.0 - 0.9 + 2.0*dt*dt
	if math.Abs(r.X-wantR) > 1e-12 {
		t.Errorf("position = %g, want %g", r.X, wantR)
	}

	wantV := 0.5 * (wantR - 0.9) / dt
	if math.Abs(v.X-wantV) > 1e-12 {
		t.Errorf("velocity = %g, want %g", v.X, wantV)
	}
}

func TestBootstrapAtom_RescalesVelocity(t *testing.T) {
	r := Vector4{X: 1.0}
	var r1 Vector4
	v := Vector4{X: 2.0}
	f := Vector4{X: 1.0}
	dt := 0.1
	s := 0.5

	BootstrapAtom(&r, &r1, &v, f, dt, s)

	if r1.X != 1.0 {
		t.Errorf("prior position = %g, want 1.0", r1.X)
	}

	// v' = s*v + dt*f, r' = r + dt*(s*v) + 0.5*dt^2*f
	wantR := 1.0 + dt*(s*2.0) + 0.5*dt*dt*1.0
	wantV := s*2.0 + dt*1.0

	if math.Abs(r.X-wantR) > 1e-12 {
		t.Errorf("position = %g, want %g", r.X, wantR)
	}
	if math.Abs(v.X-wantV) > 1e-12 {
		t.Errorf("velocity = %g, want %g", v.X, wantV)
	}
}

func TestState_Validate(t *testing.T) {
	s := NewState(1, FirstScale, FirstTemp)
	if err := s.Validate(); err != nil {
		t.Fatalf("fresh state should validate, got %v", err)
	}

	s.V[2].Y = math.NaN()
	if err := s.Validate(); err != ErrInvalidState {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestNewState_Dimensions(t *testing.T) {
	for _, nc := range []int{1, 2, 4} {
		s := NewState(nc, FirstScale, FirstTemp)
		want := 4 * nc * nc * nc
		if s.NumAtom != want {
			t.Errorf("nc=%d: NumAtom = %d, want %d", nc, s.NumAtom, want)
		}
		if len(s.R) != want || len(s.R1) != want || len(s.V) != want || len(s.F) != want {
			t.Errorf("nc=%d: array lengths mismatch NumAtom", nc)
		}
		if math.Abs(s.PeriodicLen-s.Lat*float64(nc)) > 1e-12 {
			t.Errorf("nc=%d: periodic length %g, want %g", nc, s.PeriodicLen, s.Lat*float64(nc))
		}
	}
}
