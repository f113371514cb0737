package numint

import (
	"testing"

	"github.com/gonum/floats"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	if r.DefaultMethod() != MethodBinned {
		t.Fatalf("expected %s as default method, got %s", MethodBinned, r.DefaultMethod())
	}
	methods := r.Methods()
	if len(methods) != 2 || methods[0] != MethodBinned || methods[1] != MethodRK4Quad {
		t.Fatalf("unexpected method list %v", methods)
	}
	fn := Func1D{F: func(x float64) float64 { return 4 }, Min: 0, Max: 2}
	integ, err := r.Create("", fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, isBinned := integ.(*BinIntegrator); !isBinned {
		t.Fatalf("expected a *BinIntegrator from the default method, got %T", integ)
	}
	got, err := integ.Integral()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(got, 8, 1e-10) {
		t.Fatalf("expected 8 got %f", got)
	}
}

func TestRegistryUnknownMethod(t *testing.T) {
	r := NewRegistry()
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 0, Max: 1}
	if _, err := r.Create("simpson", fn, nil); err != ErrUnknownMethod {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	if err := r.SetDefaultMethod("simpson"); err != ErrUnknownMethod {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	if err := r.SetDefaultMethod(MethodRK4Quad); err != nil {
		t.Fatal(err)
	}
	if r.DefaultMethod() != MethodRK4Quad {
		t.Fatalf("default method not updated, got %s", r.DefaultMethod())
	}
	integ, err := r.Create("", fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, isRK4 := integ.(*RK4QuadIntegrator); !isRK4 {
		t.Fatalf("expected a *RK4QuadIntegrator from the new default, got %T", integ)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(MethodBinned, new(RK4QuadIntegrator), Options{OptNumSteps: 10})
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 0, Max: 1}
	integ, err := r.Create(MethodBinned, fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, isRK4 := integ.(*RK4QuadIntegrator); !isRK4 {
		t.Fatalf("re-registration did not win, got %T", integ)
	}
}

func TestRegistryOptionMerge(t *testing.T) {
	r := NewRegistry()
	fn := Func1D{F: func(x float64) float64 { return 1 }, Min: 0, Max: 1}
	integ, err := r.Create(MethodBinned, fn, Options{OptNumBins: 7})
	if err != nil {
		t.Fatal(err)
	}
	bi := integ.(*BinIntegrator)
	if len(bi.BinBoundaries(0)) != 8 {
		t.Fatalf("expected the numBins override to apply, got %d boundaries", len(bi.BinBoundaries(0)))
	}
	// Defaults still apply when the caller provides none.
	integ, err = r.Create(MethodBinned, fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	bi = integ.(*BinIntegrator)
	if len(bi.BinBoundaries(0)) != DefaultNumBins+1 {
		t.Fatalf("expected the default numBins, got %d boundaries", len(bi.BinBoundaries(0)))
	}
}
