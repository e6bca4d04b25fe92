// Package reactor implements the built-in kinetics engine: a
// zero-dimensional, constant-volume, adiabatic ideal-gas reactor and the
// network that advances it in time.
package reactor

import (
	"math"
	"sort"

	"github.com/md3387/NonIdealReactor/internal/thermo"
)

// term is one species participation in a reaction, resolved to a species
// index at construction so rate evaluation is deterministic.
type term struct {
	idx int
	nu  float64
}

type reaction struct {
	a, b, ea  float64
	reactants []term // rate-law orders
	net       []term // production stoichiometry (products - reactants)
}

// Reactor holds the state of one constant-volume adiabatic reactor.
// The state vector is y[0] = temperature [K], y[1:] = molar concentrations
// [kmol/m3] in mechanism species order.
type Reactor struct {
	sol       *thermo.Solution
	reactions []reaction
	y         []float64

	// RK4 scratch buffers.
	k1, k2, k3, k4, scratch, wdot []float64
}

// New wraps a configured solution in a reactor, converting its TPX state
// into the temperature/concentration vector.
func New(sol *thermo.Solution) *Reactor {
	m := sol.Mechanism()
	n := m.Len()

	r := &Reactor{
		sol:     sol,
		y:       make([]float64, n+1),
		k1:      make([]float64, n+1),
		k2:      make([]float64, n+1),
		k3:      make([]float64, n+1),
		k4:      make([]float64, n+1),
		scratch: make([]float64, n+1),
		wdot:    make([]float64, n),
	}

	T := sol.Temperature()
	ctot := sol.Pressure() / (thermo.R * T)
	r.y[0] = T
	for i, x := range sol.MoleFractions() {
		r.y[i+1] = x * ctot
	}

	r.reactions = make([]reaction, len(m.Reactions))
	for ri, rxn := range m.Reactions {
		cr := reaction{a: rxn.Rate.A, b: rxn.Rate.B, ea: rxn.Rate.Ea}

		net := make([]float64, n)
		for _, name := range sortedKeys(rxn.Reactants) {
			i, _ := m.Index(name)
			nu := rxn.Reactants[name]
			cr.reactants = append(cr.reactants, term{idx: i, nu: nu})
			net[i] -= nu
		}
		for _, name := range sortedKeys(rxn.Products) {
			i, _ := m.Index(name)
			net[i] += rxn.Products[name]
		}
		for i, nu := range net {
			if nu != 0 {
				cr.net = append(cr.net, term{idx: i, nu: nu})
			}
		}
		r.reactions[ri] = cr
	}

	return r
}

// Temperature returns the current bulk temperature [K].
func (r *Reactor) Temperature() float64 { return r.y[0] }

// MoleFraction returns the current mole fraction of the named species, or
// 0 when the mechanism does not contain it.
func (r *Reactor) MoleFraction(name string) float64 {
	i, ok := r.sol.Mechanism().Index(name)
	if !ok {
		return 0
	}
	total := 0.0
	for _, c := range r.y[1:] {
		total += c
	}
	if total <= 0 {
		return 0
	}
	return r.y[i+1] / total
}

// derive evaluates dy/dt for the constant-volume adiabatic energy and
// species equations.
func (r *Reactor) derive(y, dy []float64) {
	T := y[0]
	c := y[1:]

	for i := range r.wdot {
		r.wdot[i] = 0
	}

	for _, rxn := range r.reactions {
		q := rxn.a * math.Exp(-rxn.ea/(thermo.R*T))
		if rxn.b != 0 {
			q *= math.Pow(T, rxn.b)
		}
		for _, t := range rxn.reactants {
			ci := c[t.idx]
			if ci <= 0 {
				q = 0
				break
			}
			if t.nu == 1 {
				q *= ci
			} else {
				q *= math.Pow(ci, t.nu)
			}
		}
		for _, t := range rxn.net {
			r.wdot[t.idx] += t.nu * q
		}
	}

	// Energy equation: sum(c_i cv_i) dT/dt = -sum(u_i wdot_i).
	num, den := 0.0, 0.0
	for i := range r.wdot {
		if r.wdot[i] != 0 {
			num += r.sol.IntEnergyMolar(i, T) * r.wdot[i]
		}
		den += c[i] * r.sol.CvMolar(i, T)
	}

	dy[0] = 0
	if den != 0 {
		dy[0] = -num / den
	}
	for i := range r.wdot {
		dy[i+1] = r.wdot[i]
	}
}

// step advances the state by one RK4 step of size h.
func (r *Reactor) step(h float64) {
	n := len(r.y)

	r.derive(r.y, r.k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = r.y[i] + h*0.5*r.k1[i]
	}
	r.derive(r.scratch, r.k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = r.y[i] + h*0.5*r.k2[i]
	}
	r.derive(r.scratch, r.k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = r.y[i] + h*r.k3[i]
	}
	r.derive(r.scratch, r.k4)

	h6 := h / 6.0
	for i := 0; i < n; i++ {
		r.y[i] += h6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}

// valid reports whether the state is free of NaN/Inf.
func (r *Reactor) valid() bool {
	for _, v := range r.y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
