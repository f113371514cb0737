package numint

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestRK4QuadLinear(t *testing.T) {
	fn := Func1D{F: func(x float64) float64 { return 3 * x }, Min: 0, Max: 2}
	r, err := NewRK4QuadIntegrator(fn, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(got, 6, 1e-2) {
		t.Fatalf("expected 6 got %f", got)
	}
}

func TestRK4QuadSine(t *testing.T) {
	fn := Func1D{F: math.Sin, Min: 0, Max: math.Pi}
	r, err := NewRK4QuadIntegrator(fn, Options{OptNumSteps: 2000})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(got, 2, 1e-2) {
		t.Fatalf("expected 2 got %f", got)
	}
	// The accumulator resets between calls.
	again, err := r.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if got != again {
		t.Fatalf("sequential integrals drifted: %v != %v", got, again)
	}
}

func TestRK4QuadOneDimensionalOnly(t *testing.T) {
	fn := boxND(2, 0, 1, func(c []float64) float64 { return 1 })
	if _, err := NewRK4QuadIntegrator(fn, Options{}); err != ErrNotOneDimensional {
		t.Fatalf("expected ErrNotOneDimensional, got %v", err)
	}
	if _, err := NewRK4QuadIntegrator(nil, Options{}); err != ErrNilIntegrand {
		t.Fatalf("expected ErrNilIntegrand, got %v", err)
	}
}

func TestRK4QuadSetLimits(t *testing.T) {
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 0, Max: 1}

	authoritative, err := NewRK4QuadIntegrator(fn, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err = authoritative.SetLimits([]float64{0}, []float64{2}); err != ErrIntegrandLimits {
		t.Fatalf("expected ErrIntegrandLimits, got %v", err)
	}

	external, err := NewRK4QuadIntegratorWithLimits(fn, 0, 1, Options{OptNumSteps: 100})
	if err != nil {
		t.Fatal(err)
	}
	if err = external.SetLimits([]float64{0}, []float64{2}); err != nil {
		t.Fatal(err)
	}
	got, err := external.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(got, 2, 1e-2) {
		t.Fatalf("expected 2 got %f", got)
	}
}

func TestRK4QuadStepping(t *testing.T) {
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 0, Max: 1}
	r, err := NewRK4QuadIntegrator(fn, Options{OptNumSteps: 10})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(got, 1, 1e-2) {
		t.Fatalf("expected 1 got %f", got)
	}
	// Step size is 0.1: the final step starts at 0.9, and reaching the upper
	// limit with float drift just below it must still stop.
	if r.Stop(0.9) {
		t.Fatal("stopped before the final step")
	}
	if !r.Stop(1 - 1e-12) {
		t.Fatal("did not stop at the upper limit")
	}
	r.SetState(0.5, []float64{42})
	if s := r.GetState(); len(s) != 1 || s[0] != 42 {
		t.Fatalf("state not propagated, got %v", s)
	}
}

func TestRK4QuadBadLimits(t *testing.T) {
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 1, Max: 1}
	r, err := NewRK4QuadIntegrator(fn, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.CheckLimits() {
		t.Fatal("empty range passed validation")
	}
	if _, err = r.Integral(); err != ErrBadLimits {
		t.Fatalf("expected ErrBadLimits, got %v", err)
	}
}
