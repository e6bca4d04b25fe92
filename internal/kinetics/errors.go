package kinetics

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for kinetics operations.
var (
	// ErrMechanism indicates a mechanism file that is missing or malformed.
	ErrMechanism = errors.New("kinetics: mechanism unreadable or malformed")

	// ErrThermoBounds indicates a non-positive temperature or pressure.
	ErrThermoBounds = errors.New("kinetics: temperature and pressure must be positive")

	// ErrComposition indicates a composition string that cannot be parsed.
	ErrComposition = errors.New("kinetics: malformed composition specification")

	// ErrTimeReversal indicates an Advance target before the current network time.
	ErrTimeReversal = errors.New("kinetics: advance target precedes network time")

	// ErrUnstable indicates the reactor state diverged (NaN/Inf) during integration.
	ErrUnstable = errors.New("kinetics: reactor state diverged")

	// ErrNotConfigured indicates a reactor built from a solution whose state
	// was never set.
	ErrNotConfigured = errors.New("kinetics: solution state not set")
)

// UnknownSpeciesError reports composition entries naming species that are
// absent from the mechanism's species block. It carries every offending
// name so the caller can solicit a corrected composition.
type UnknownSpeciesError struct {
	Names []string
}

func (e *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("kinetics: unknown species: %s", strings.Join(e.Names, ", "))
}

// AdvanceError wraps an integration failure with reactor context.
type AdvanceError struct {
	Time    float64
	Wrapped error
}

func (e *AdvanceError) Error() string {
	return fmt.Sprintf("%v (t=%.6g s)", e.Wrapped, e.Time)
}

func (e *AdvanceError) Unwrap() error {
	return e.Wrapped
}
