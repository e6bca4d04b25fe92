package reactor

import (
	"fmt"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/mech"
	"github.com/md3387/NonIdealReactor/internal/thermo"
)

// Engine is the built-in kinetics engine. It satisfies kinetics.Engine.
type Engine struct {
	// MaxStep overrides the network substep bound when positive.
	MaxStep float64
}

// NewEngine returns an engine with default integration settings.
func NewEngine() *Engine {
	return &Engine{}
}

// NewSolution loads the mechanism file and binds an empty gas state to it.
func (e *Engine) NewSolution(mechanismPath string) (kinetics.Solution, error) {
	m, err := mech.Load(mechanismPath)
	if err != nil {
		return nil, err
	}
	return thermo.NewSolution(m), nil
}

// NewReactorNetwork wraps a configured solution in a constant-volume
// reactor and a fresh network at t=0.
func (e *Engine) NewReactorNetwork(sol kinetics.Solution) (kinetics.Network, error) {
	s, ok := sol.(*thermo.Solution)
	if !ok {
		return nil, fmt.Errorf("reactor: unsupported solution type %T", sol)
	}
	if !s.Configured() {
		return nil, kinetics.ErrNotConfigured
	}

	n := NewNetwork(New(s))
	if e.MaxStep > 0 {
		n.MaxStep = e.MaxStep
	}
	return n, nil
}
