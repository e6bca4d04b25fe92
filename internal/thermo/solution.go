// Package thermo implements the ideal-gas mixture state behind the kinetics
// Solution contract: temperature, pressure and a normalized mole-fraction
// vector over a mechanism's species, with NASA-7 caloric properties.
package thermo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/mech"
)

// R is the universal gas constant [J/(kmol K)].
const R = 8314.462618

// Solution is an ideal-gas mixture bound to a mechanism. The zero state is
// unconfigured; SetState must succeed before the solution drives a reactor.
type Solution struct {
	mech        *mech.Mechanism
	temperature float64   // [K]
	pressure    float64   // [Pa]
	x           []float64 // mole fractions, mechanism species order
	configured  bool
}

// NewSolution binds an empty state to a mechanism.
func NewSolution(m *mech.Mechanism) *Solution {
	return &Solution{
		mech: m,
		x:    make([]float64, m.Len()),
	}
}

// SetState sets temperature [K], pressure [Pa] and the composition from a
// "name:fraction, name:fraction" specification. Species names are matched
// case-insensitively against the mechanism; unknown names fail with
// *kinetics.UnknownSpeciesError carrying every offending name. Fractions
// are normalized to sum to one.
func (s *Solution) SetState(temperature, pressure float64, composition string) error {
	if temperature <= 0 || pressure <= 0 {
		return fmt.Errorf("%w: T=%g K, P=%g Pa", kinetics.ErrThermoBounds, temperature, pressure)
	}

	x, err := s.parseComposition(composition)
	if err != nil {
		return err
	}

	s.temperature = temperature
	s.pressure = pressure
	s.x = x
	s.configured = true
	return nil
}

func (s *Solution) parseComposition(spec string) ([]float64, error) {
	x := make([]float64, s.mech.Len())
	var unknown []string
	total := 0.0
	entries := 0

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, frac, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("%w: %q has no name:fraction separator", kinetics.ErrComposition, entry)
		}
		name = strings.TrimSpace(name)

		val, err := strconv.ParseFloat(strings.TrimSpace(frac), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", kinetics.ErrComposition, entry, err)
		}
		if val < 0 {
			return nil, fmt.Errorf("%w: %q: fraction must not be negative", kinetics.ErrComposition, entry)
		}

		i, ok := s.mech.Index(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		x[i] += val
		total += val
		entries++
	}

	if len(unknown) > 0 {
		return nil, &kinetics.UnknownSpeciesError{Names: unknown}
	}
	if entries == 0 || total <= 0 {
		return nil, fmt.Errorf("%w: no species with a positive fraction", kinetics.ErrComposition)
	}

	for i := range x {
		x[i] /= total
	}
	return x, nil
}

// Configured reports whether SetState has succeeded.
func (s *Solution) Configured() bool { return s.configured }

// Temperature returns the state temperature [K].
func (s *Solution) Temperature() float64 { return s.temperature }

// Pressure returns the state pressure [Pa].
func (s *Solution) Pressure() float64 { return s.pressure }

// MoleFraction returns the mole fraction of the named species, or 0 when
// the mechanism does not contain it.
func (s *Solution) MoleFraction(name string) float64 {
	i, ok := s.mech.Index(name)
	if !ok {
		return 0
	}
	return s.x[i]
}

// MoleFractions returns a copy of the mole-fraction vector in mechanism
// species order.
func (s *Solution) MoleFractions() []float64 {
	x := make([]float64, len(s.x))
	copy(x, s.x)
	return x
}

// SpeciesNames returns the mechanism's species names in mechanism order.
func (s *Solution) SpeciesNames() []string { return s.mech.Names() }

// Mechanism exposes the bound mechanism to the reactor layer.
func (s *Solution) Mechanism() *mech.Mechanism { return s.mech }

// CpMolar returns the NASA-7 molar heat capacity at constant pressure of
// species i at temperature T [J/(kmol K)].
func (s *Solution) CpMolar(i int, T float64) float64 {
	a := s.mech.Species[i].Thermo
	return R * (a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4]))))
}

// CvMolar returns the molar heat capacity at constant volume of species i
// at temperature T [J/(kmol K)].
func (s *Solution) CvMolar(i int, T float64) float64 {
	return s.CpMolar(i, T) - R
}

// EnthalpyMolar returns the NASA-7 molar enthalpy of species i at
// temperature T [J/kmol].
func (s *Solution) EnthalpyMolar(i int, T float64) float64 {
	a := s.mech.Species[i].Thermo
	return R * T * (a[0] + T*(a[1]/2+T*(a[2]/3+T*(a[3]/4+T*a[4]/5))) + a[5]/T)
}

// IntEnergyMolar returns the molar internal energy of species i at
// temperature T [J/kmol].
func (s *Solution) IntEnergyMolar(i int, T float64) float64 {
	return s.EnthalpyMolar(i, T) - R*T
}

// MeanMolarMass returns the mole-fraction-weighted molar mass [kg/kmol].
func (s *Solution) MeanMolarMass() float64 {
	w := 0.0
	for i, sp := range s.mech.Species {
		w += s.x[i] * sp.MolarMass
	}
	return w
}

// Density returns the ideal-gas mass density [kg/m3].
func (s *Solution) Density() float64 {
	if s.temperature <= 0 {
		return 0
	}
	return s.pressure * s.MeanMolarMass() / (R * s.temperature)
}
