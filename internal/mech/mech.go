// Package mech loads chemistry-mechanism definition files: the species
// block (names, molar masses, NASA-7 thermo polynomials) and the reaction
// block (stoichiometry and modified-Arrhenius rate parameters).
package mech

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
)

// Species is one entry of the mechanism's species block.
type Species struct {
	Name      string    `yaml:"name"`
	MolarMass float64   `yaml:"molar-mass"` // [kg/kmol]
	Thermo    []float64 `yaml:"thermo"`     // NASA-7 coefficients a1..a7
}

// RateConstant holds modified-Arrhenius parameters k = A * T^b * exp(-Ea/RT).
type RateConstant struct {
	A  float64 `yaml:"A"`
	B  float64 `yaml:"b"`
	Ea float64 `yaml:"Ea"` // [J/kmol]
}

// Reaction is one irreversible elementary reaction. Stoichiometry is given
// as explicit reactant/product coefficient maps; Equation is display text.
type Reaction struct {
	Equation  string             `yaml:"equation,omitempty"`
	Reactants map[string]float64 `yaml:"reactants"`
	Products  map[string]float64 `yaml:"products"`
	Rate      RateConstant       `yaml:"rate-constant"`
}

// Mechanism is a parsed, validated mechanism definition.
type Mechanism struct {
	Description string     `yaml:"description,omitempty"`
	Species     []Species  `yaml:"species"`
	Reactions   []Reaction `yaml:"reactions"`

	index map[string]int // canonical (upper-cased) name -> species position
}

// New validates the species and reaction blocks and builds the
// case-insensitive species index.
func New(species []Species, reactions []Reaction) (*Mechanism, error) {
	m := &Mechanism{Species: species, Reactions: reactions}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads and parses a mechanism file. Failures wrap ErrMechanism.
func Load(path string) (*Mechanism, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kinetics.ErrMechanism, err)
	}

	var m Mechanism
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kinetics.ErrMechanism, path, err)
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mechanism) build() error {
	if len(m.Species) == 0 {
		return fmt.Errorf("%w: empty species block", kinetics.ErrMechanism)
	}

	m.index = make(map[string]int, len(m.Species))
	for i, sp := range m.Species {
		if sp.Name == "" {
			return fmt.Errorf("%w: species %d has no name", kinetics.ErrMechanism, i)
		}
		if sp.MolarMass <= 0 {
			return fmt.Errorf("%w: species %s: molar mass must be positive", kinetics.ErrMechanism, sp.Name)
		}
		if len(sp.Thermo) != 7 {
			return fmt.Errorf("%w: species %s: want 7 thermo coefficients, got %d", kinetics.ErrMechanism, sp.Name, len(sp.Thermo))
		}
		key := canonical(sp.Name)
		if _, dup := m.index[key]; dup {
			return fmt.Errorf("%w: duplicate species %s", kinetics.ErrMechanism, sp.Name)
		}
		m.index[key] = i
	}

	for i, rxn := range m.Reactions {
		if len(rxn.Reactants) == 0 || len(rxn.Products) == 0 {
			return fmt.Errorf("%w: reaction %d: missing reactants or products", kinetics.ErrMechanism, i)
		}
		for name := range rxn.Reactants {
			if _, ok := m.Index(name); !ok {
				return fmt.Errorf("%w: reaction %d: unknown reactant %s", kinetics.ErrMechanism, i, name)
			}
		}
		for name := range rxn.Products {
			if _, ok := m.Index(name); !ok {
				return fmt.Errorf("%w: reaction %d: unknown product %s", kinetics.ErrMechanism, i, name)
			}
		}
	}

	return nil
}

// Index returns the position of the named species. Matching is
// case-insensitive; the mechanism's own spelling is authoritative.
func (m *Mechanism) Index(name string) (int, bool) {
	i, ok := m.index[canonical(name)]
	return i, ok
}

// Len returns the number of species in the mechanism.
func (m *Mechanism) Len() int { return len(m.Species) }

// Names returns the species names in mechanism order.
func (m *Mechanism) Names() []string {
	names := make([]string, len(m.Species))
	for i, sp := range m.Species {
		names[i] = sp.Name
	}
	return names
}

func canonical(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
