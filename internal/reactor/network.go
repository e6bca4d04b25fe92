package reactor

import (
	"context"
	"fmt"
	"math"

	"github.com/md3387/NonIdealReactor/internal/kinetics"
)

// DefaultMaxStep is the largest internal integration substep [s].
const DefaultMaxStep = 1e-8

// Network evolves a single reactor forward in time. Time is monotonically
// non-decreasing; there is no rollback.
type Network struct {
	reactor *Reactor
	time    float64

	// MaxStep bounds the internal RK4 substep size [s].
	MaxStep float64
}

// NewNetwork wraps a reactor in a network starting at t=0.
func NewNetwork(r *Reactor) *Network {
	return &Network{reactor: r, MaxStep: DefaultMaxStep}
}

// Advance integrates the reactor state to absolute time t [s]. The target
// interval is split into equal RK4 substeps no larger than MaxStep; the
// context is checked between substeps so a long advance stays interruptible.
func (n *Network) Advance(ctx context.Context, t float64) error {
	if t < n.time {
		return fmt.Errorf("%w: target %g s, current %g s", kinetics.ErrTimeReversal, t, n.time)
	}
	if t == n.time {
		return nil
	}

	span := t - n.time
	substeps := int(math.Ceil(span / n.MaxStep))
	if substeps < 1 {
		substeps = 1
	}
	h := span / float64(substeps)

	for i := 0; i < substeps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n.reactor.step(h)
		if !n.reactor.valid() {
			return &kinetics.AdvanceError{
				Time:    n.time + float64(i+1)*h,
				Wrapped: kinetics.ErrUnstable,
			}
		}
	}

	n.time = t
	return nil
}

// Time returns the current network time [s].
func (n *Network) Time() float64 { return n.time }

// Temperature returns the current bulk reactor temperature [K].
func (n *Network) Temperature() float64 { return n.reactor.Temperature() }

// MoleFraction returns the current mole fraction of the named species, or 0
// when the mechanism does not contain it.
func (n *Network) MoleFraction(name string) float64 {
	return n.reactor.MoleFraction(name)
}
