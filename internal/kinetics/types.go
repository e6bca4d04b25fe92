package kinetics

import "context"

// Solution is a thermodynamic state bound to a chemical mechanism.
type Solution interface {
	// SetState sets temperature [K], pressure [Pa] and the gas composition
	// from a "name:fraction, name:fraction" specification. Fractions need
	// not sum to one; the implementation normalizes. Species names are
	// matched case-insensitively. Entries naming species absent from the
	// mechanism fail with *UnknownSpeciesError.
	SetState(temperature, pressure float64, composition string) error

	Temperature() float64
	Pressure() float64

	// MoleFraction returns the mole fraction of the named species, or 0
	// when the mechanism does not contain it. Absence is "not present",
	// never an error.
	MoleFraction(name string) float64

	SpeciesNames() []string
}

// Network evolves a reactor wrapping a Solution forward in time.
type Network interface {
	// Advance integrates the reactor state to absolute time t [s].
	// Time is monotone: t must not precede the current network time.
	Advance(ctx context.Context, t float64) error

	Time() float64
	Temperature() float64
	MoleFraction(name string) float64
}

// Engine constructs solutions and reactor networks from mechanism files.
type Engine interface {
	NewSolution(mechanismPath string) (Solution, error)
	NewReactorNetwork(sol Solution) (Network, error)
}
