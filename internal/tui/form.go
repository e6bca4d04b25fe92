// Package tui collects run parameters interactively when the user
// prefers a guided form over flags.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/md3387/NonIdealReactor/internal/config"
	"github.com/md3387/NonIdealReactor/internal/kinetics"
)

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func positiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("not a number")
	}
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Collect runs the parameter form, pre-filled from defaults, and
// returns the completed configuration.
func Collect(defaults *config.Config) (*config.Config, error) {
	cfg := *defaults
	temperature := formatFloat(cfg.Temperature)
	pressure := formatFloat(cfg.Pressure)
	duration := formatFloat(cfg.Duration)
	step := formatFloat(cfg.Step)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Mechanism file").
				Description("chemistry mechanism in YAML format").
				Value(&cfg.Mechanism).
				Validate(required),
			huh.NewInput().
				Title("Composition").
				Description("name:fraction pairs, e.g. CH4:1, O2:2, N2:7.52").
				Value(&cfg.Composition).
				Validate(required),
			huh.NewInput().
				Title("Fuel species").
				Value(&cfg.Fuel).
				Validate(required),
			huh.NewInput().
				Title("Extra species (optional)").
				Value(&cfg.Extra),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Temperature [K]").
				Value(&temperature).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Pressure [atm]").
				Value(&pressure).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Simulated time [s]").
				Value(&duration).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Time step [s]").
				Value(&step).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Output file base").
				Description("report is written to <base>_cantera.csv").
				Value(&cfg.Filebase).
				Validate(required),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("parameter form: %w", err)
	}

	// Validated above, so these cannot fail.
	cfg.Temperature, _ = strconv.ParseFloat(strings.TrimSpace(temperature), 64)
	cfg.Pressure, _ = strconv.ParseFloat(strings.TrimSpace(pressure), 64)
	cfg.Duration, _ = strconv.ParseFloat(strings.TrimSpace(duration), 64)
	cfg.Step, _ = strconv.ParseFloat(strings.TrimSpace(step), 64)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CorrectComposition prompts once for a replacement composition after
// the mechanism rejected species names.
func CorrectComposition(unknown *kinetics.UnknownSpeciesError, previous string) (string, error) {
	corrected := previous
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Unrecognized species").
				Description(fmt.Sprintf("The mechanism does not contain: %s",
					strings.Join(unknown.Names, ", "))),
			huh.NewInput().
				Title("Corrected composition").
				Value(&corrected).
				Validate(required),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("correction form: %w", err)
	}
	return corrected, nil
}
