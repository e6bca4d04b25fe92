package reactor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/mech"
	"github.com/md3387/NonIdealReactor/internal/thermo"
)

// toyMechanism has one irreversible first-order reaction A2 => B2 with
// k = 1e4 1/s and thermodynamically identical species, so the analytic
// solution is X_A2(t) = exp(-k t) at constant temperature.
func toyMechanism(t *testing.T) *mech.Mechanism {
	t.Helper()
	m, err := mech.New(
		[]mech.Species{
			{Name: "A2", MolarMass: 28.0, Thermo: []float64{3.5, 0, 0, 0, 0, 0, 0}},
			{Name: "B2", MolarMass: 28.0, Thermo: []float64{3.5, 0, 0, 0, 0, 0, 0}},
			{Name: "AR", MolarMass: 39.95, Thermo: []float64{2.5, 0, 0, 0, 0, 0, 0}},
		},
		[]mech.Reaction{
			{
				Equation:  "A2 => B2",
				Reactants: map[string]float64{"A2": 1},
				Products:  map[string]float64{"B2": 1},
				Rate:      mech.RateConstant{A: 1e4},
			},
		},
	)
	if err != nil {
		t.Fatalf("mechanism: %v", err)
	}
	return m
}

func configuredNetwork(t *testing.T, composition string) *Network {
	t.Helper()
	sol := thermo.NewSolution(toyMechanism(t))
	if err := sol.SetState(1000, 101325, composition); err != nil {
		t.Fatalf("set state: %v", err)
	}
	n := NewNetwork(New(sol))
	n.MaxStep = 1e-7
	return n
}

func TestAdvanceFirstOrderDecay(t *testing.T) {
	n := configuredNetwork(t, "A2:1")

	// k*t = 1 at t = 1e-4 s.
	if err := n.Advance(context.Background(), 1e-4); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if got := n.Time(); got != 1e-4 {
		t.Errorf("time: expected 1e-4, got %g", got)
	}

	want := math.Exp(-1)
	if got := n.MoleFraction("A2"); math.Abs(got-want) > 1e-6 {
		t.Errorf("X_A2: expected %g, got %g", want, got)
	}
	if got := n.MoleFraction("B2"); math.Abs(got-(1-want)) > 1e-6 {
		t.Errorf("X_B2: expected %g, got %g", 1-want, got)
	}

	// Identical species thermo: no heat release, temperature unchanged.
	if got := n.Temperature(); got != 1000 {
		t.Errorf("temperature: expected exactly 1000, got %g", got)
	}
}

func TestAdvanceInertMixture(t *testing.T) {
	n := configuredNetwork(t, "AR:1")

	if err := n.Advance(context.Background(), 5e-5); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if got := n.MoleFraction("AR"); math.Abs(got-1) > 1e-12 {
		t.Errorf("X_AR: expected 1, got %g", got)
	}
	if got := n.Temperature(); got != 1000 {
		t.Errorf("temperature: expected exactly 1000, got %g", got)
	}
}

func TestAdvanceMonotone(t *testing.T) {
	n := configuredNetwork(t, "AR:1")
	ctx := context.Background()

	if err := n.Advance(ctx, 1e-5); err != nil {
		t.Fatal(err)
	}
	if err := n.Advance(ctx, 1e-5); err != nil {
		t.Errorf("advancing to the current time must be a no-op, got %v", err)
	}
	if err := n.Advance(ctx, 5e-6); !errors.Is(err, kinetics.ErrTimeReversal) {
		t.Errorf("expected ErrTimeReversal, got %v", err)
	}
	if got := n.Time(); got != 1e-5 {
		t.Errorf("failed advance must not move time, got %g", got)
	}
}

func TestAdvanceCanceled(t *testing.T) {
	n := configuredNetwork(t, "A2:1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.Advance(ctx, 1e-4); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMoleFractionUnknownSpecies(t *testing.T) {
	n := configuredNetwork(t, "A2:1")
	if got := n.MoleFraction("C2H4"); got != 0 {
		t.Errorf("expected exactly 0 for unknown species, got %g", got)
	}
}

func TestEngineRejectsUnconfiguredSolution(t *testing.T) {
	sol := thermo.NewSolution(toyMechanism(t))

	_, err := NewEngine().NewReactorNetwork(sol)
	if !errors.Is(err, kinetics.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEngineMissingMechanism(t *testing.T) {
	_, err := NewEngine().NewSolution("no_such_mechanism.yaml")
	if !errors.Is(err, kinetics.ErrMechanism) {
		t.Errorf("expected ErrMechanism, got %v", err)
	}
}
