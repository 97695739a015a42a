package config

import "github.com/san-kum/springies/internal/env"

// presets are ready-made environments with a recognizable feel.
var presets = map[string]func(*Config){
	// Deep space: no gravity, no drag, only the walls keep things in.
	"space": func(c *Config) {
		c.Environment.GravityMagnitude = 0
		c.Environment.ViscosityScale = 0
		c.Environment.FieldMagnitude = 0
		c.Environment.WallMagnitude = 80
	},
	// Thick soup: heavy drag damps everything quickly.
	"soup": func(c *Config) {
		c.Environment.ViscosityScale = 2.5
		c.Environment.GravityMagnitude = 5
	},
	// Trampoline: strong floor repulsion under stronger gravity.
	"trampoline": func(c *Config) {
		c.Environment.GravityMagnitude = 25
		c.Environment.WallMagnitude = 400
		c.Environment.WallExponent = 1.5
	},
	// Huddle: a strong center-of-mass field pulls the structure inward.
	"huddle": func(c *Config) {
		c.Environment.GravityMagnitude = 0
		c.Environment.FieldMagnitude = 500
		c.Environment.FieldOrder = 1.5
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil when the name is unknown.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// EnvParams returns just the field parameters of a preset.
func EnvParams(name string) (env.Params, bool) {
	cfg := GetPreset(name)
	if cfg == nil {
		return env.Params{}, false
	}
	return cfg.Environment, true
}
