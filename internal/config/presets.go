package config

// Presets are canonical shock-tube conditions. Mechanism and filebase stay
// caller-supplied; a preset only fixes the thermodynamic state and timing.
var Presets = map[string]*Config{
	"methane-air": {
		Temperature: 1800,
		Pressure:    1.5,
		Composition: "CH4:1, O2:2, N2:7.52",
		Fuel:        "CH4",
		Duration:    DefaultDuration,
		Step:        DefaultStep,
	},
	"hydrogen-oxygen-argon": {
		Temperature: 1200,
		Pressure:    1.0,
		Composition: "H2:2, O2:1, AR:7",
		Fuel:        "H2",
		Duration:    DefaultDuration,
		Step:        DefaultStep,
	},
	"ethylene-lean": {
		Temperature: 1600,
		Pressure:    2.0,
		Composition: "C2H4:1, O2:6, N2:22.56",
		Fuel:        "C2H4",
		Duration:    DefaultDuration,
		Step:        DefaultStep,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if out.DataDir == "" {
		out.DataDir = DefaultConfig().DataDir
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
