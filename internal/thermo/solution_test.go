package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/mech"
)

func testMechanism(t *testing.T) *mech.Mechanism {
	t.Helper()
	m, err := mech.New([]mech.Species{
		{Name: "CH4", MolarMass: 16.04, Thermo: []float64{4.0, 0, 0, 0, 0, 0, 0}},
		{Name: "O2", MolarMass: 32.0, Thermo: []float64{3.5, 0, 0, 0, 0, 0, 0}},
		{Name: "N2", MolarMass: 28.01, Thermo: []float64{3.5, 0, 0, 0, 0, 0, 0}},
	}, nil)
	if err != nil {
		t.Fatalf("mechanism: %v", err)
	}
	return m
}

func TestSetStateNormalizes(t *testing.T) {
	s := NewSolution(testMechanism(t))

	// Fractions sum to 10.52, not 1; the solver normalizes.
	if err := s.SetState(1500, 101325, "CH4:1, O2:2, N2:7.52"); err != nil {
		t.Fatalf("set state: %v", err)
	}

	total := 10.52
	if got := s.MoleFraction("CH4"); math.Abs(got-1.0/total) > 1e-12 {
		t.Errorf("CH4: expected %g, got %g", 1.0/total, got)
	}
	if got := s.MoleFraction("N2"); math.Abs(got-7.52/total) > 1e-12 {
		t.Errorf("N2: expected %g, got %g", 7.52/total, got)
	}

	sum := 0.0
	for _, x := range s.MoleFractions() {
		sum += x
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("mole fractions sum to %g, want 1", sum)
	}
}

func TestSetStateCaseInsensitive(t *testing.T) {
	s := NewSolution(testMechanism(t))
	if err := s.SetState(1200, 2e5, "ch4:0.1, o2:0.2, n2:0.7"); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if got := s.MoleFraction("Ch4"); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected 0.1, got %g", got)
	}
}

func TestSetStateUnknownSpecies(t *testing.T) {
	s := NewSolution(testMechanism(t))

	err := s.SetState(1500, 101325, "JetA:1, O2:2, HE:3")
	var unknown *kinetics.UnknownSpeciesError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSpeciesError, got %v", err)
	}
	if len(unknown.Names) != 2 {
		t.Fatalf("expected 2 unknown names, got %v", unknown.Names)
	}
	if unknown.Names[0] != "JetA" || unknown.Names[1] != "HE" {
		t.Errorf("unexpected names: %v", unknown.Names)
	}
	if s.Configured() {
		t.Error("failed SetState must leave the solution unconfigured")
	}
}

func TestSetStateMalformed(t *testing.T) {
	s := NewSolution(testMechanism(t))

	tests := []struct {
		name string
		spec string
	}{
		{"no separator", "CH4 1.0"},
		{"bad fraction", "CH4:lots"},
		{"negative fraction", "CH4:-0.5"},
		{"empty", ""},
		{"all zero", "CH4:0, O2:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetState(1500, 101325, tt.spec); !errors.Is(err, kinetics.ErrComposition) {
				t.Errorf("expected ErrComposition, got %v", err)
			}
		})
	}
}

func TestSetStateBounds(t *testing.T) {
	s := NewSolution(testMechanism(t))

	if err := s.SetState(0, 101325, "N2:1"); !errors.Is(err, kinetics.ErrThermoBounds) {
		t.Errorf("zero temperature: expected ErrThermoBounds, got %v", err)
	}
	if err := s.SetState(1500, -1, "N2:1"); !errors.Is(err, kinetics.ErrThermoBounds) {
		t.Errorf("negative pressure: expected ErrThermoBounds, got %v", err)
	}
}

func TestMoleFractionAbsentSpecies(t *testing.T) {
	s := NewSolution(testMechanism(t))
	if err := s.SetState(1500, 101325, "N2:1"); err != nil {
		t.Fatal(err)
	}

	// Absent from the mechanism entirely: "component not present", not an error.
	if got := s.MoleFraction("C2H4"); got != 0 {
		t.Errorf("expected exactly 0 for absent species, got %g", got)
	}
	// Present in the mechanism but not in the composition.
	if got := s.MoleFraction("CH4"); got != 0 {
		t.Errorf("expected 0 for unloaded species, got %g", got)
	}
}

func TestCaloricProperties(t *testing.T) {
	s := NewSolution(testMechanism(t))
	if err := s.SetState(1000, 101325, "N2:1"); err != nil {
		t.Fatal(err)
	}

	// Constant cp/R = 3.5 for N2 in the test mechanism.
	if got, want := s.CpMolar(2, 1000), 3.5*R; math.Abs(got-want) > 1e-6 {
		t.Errorf("cp: expected %g, got %g", want, got)
	}
	if got, want := s.CvMolar(2, 1000), 2.5*R; math.Abs(got-want) > 1e-6 {
		t.Errorf("cv: expected %g, got %g", want, got)
	}
	if got, want := s.IntEnergyMolar(2, 1000), s.EnthalpyMolar(2, 1000)-R*1000; math.Abs(got-want) > 1e-6 {
		t.Errorf("u: expected %g, got %g", want, got)
	}

	// Pure N2 at standard pressure.
	if got, want := s.MeanMolarMass(), 28.01; math.Abs(got-want) > 1e-9 {
		t.Errorf("mean molar mass: expected %g, got %g", want, got)
	}
	wantRho := 101325 * 28.01 / (R * 1000)
	if got := s.Density(); math.Abs(got-wantRho) > 1e-9 {
		t.Errorf("density: expected %g, got %g", wantRho, got)
	}
}
