package config

// Presets are named autonomic conditions. Concentrations are in mM and match
// the doses used in the published model figures.
var Presets = map[string]*Config{
	"control": {
		Integrator: "rk4", Dt: 1e-5, Duration: 3.0,
	},
	"vagal": {
		Integrator: "rk4", Dt: 1e-5, Duration: 3.0,
		Acetylcholine: 2.2e-5,
	},
	"sympathetic": {
		Integrator: "rk4", Dt: 1e-5, Duration: 3.0,
		Noradrenaline: 1.0e-6,
	},
	"combined": {
		Integrator: "rk4", Dt: 1e-5, Duration: 3.0,
		Acetylcholine: 1.0e-5, Noradrenaline: 1.0e-6,
	},
	"clamp": {
		Integrator: "rk4", Dt: 1e-5, Duration: 1.5,
		Overrides: map[string]float64{"clamp_mode": 1},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
