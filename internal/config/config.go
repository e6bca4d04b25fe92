// Package config collects the run parameters the pipeline needs, so the
// pipeline itself never depends on an interactive environment.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults match the interactive dialog's prefilled fields.
const (
	DefaultDuration    = 0.003  // [s]
	DefaultStep        = 1.5e-6 // [s]
	DefaultTemperature = 1500.0 // [K]
	DefaultPressure    = 1.0    // [atm]
)

// AtmToPa converts atmospheres to pascals.
const AtmToPa = 101325.0

// Config is the full parameter set for one reactor run.
type Config struct {
	Mechanism   string  `yaml:"mechanism"`     // mechanism filename, relative to the working directory
	Temperature float64 `yaml:"temperature"`   // [K]
	Pressure    float64 `yaml:"pressure"`      // [atm]
	Composition string  `yaml:"composition"`   // "name:fraction, name:fraction"
	Fuel        string  `yaml:"fuel"`          // fuel species name, matched against the mechanism
	Extra       string  `yaml:"extra_species"` // user-defined catalog slot
	Filebase    string  `yaml:"filebase"`      // output base name, quotes accepted
	Duration    float64 `yaml:"duration"`      // [s]
	Step        float64 `yaml:"dt"`            // [s]
	DataDir     string  `yaml:"data_dir"`      // run-index directory
}

func DefaultConfig() *Config {
	return &Config{
		Temperature: DefaultTemperature,
		Pressure:    DefaultPressure,
		Duration:    DefaultDuration,
		Step:        DefaultStep,
		DataDir:     ".shocktube",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the numeric and required fields before any solver work.
func (c *Config) Validate() error {
	if c.Mechanism == "" {
		return fmt.Errorf("config: mechanism file is required")
	}
	if c.Composition == "" {
		return fmt.Errorf("config: composition is required")
	}
	if c.Fuel == "" {
		return fmt.Errorf("config: fuel species is required")
	}
	if c.Filebase == "" {
		return fmt.Errorf("config: output filebase is required")
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("config: temperature must be positive, got %g", c.Temperature)
	}
	if c.Pressure <= 0 {
		return fmt.Errorf("config: pressure must be positive, got %g", c.Pressure)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Step <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Step)
	}
	if c.Step > c.Duration {
		return fmt.Errorf("config: dt %g exceeds duration %g", c.Step, c.Duration)
	}
	return nil
}

// PressurePa returns the pressure in pascals.
func (c *Config) PressurePa() float64 {
	return c.Pressure * AtmToPa
}

// Steps returns the number of simulation steps, ceil(duration/dt). When
// duration is not an exact multiple of dt the final step overshoots the
// duration; that behavior is accepted, not corrected.
func (c *Config) Steps() int {
	return int(math.Ceil(c.Duration / c.Step))
}
