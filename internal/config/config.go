// Package config holds the run configuration: timestep, duration,
// world bounds, key bindings for the force toggles, and the default
// environment parameters. Values load from yaml and are overridden by
// CLI flags in cmd.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/springies/internal/env"
)

const (
	DefaultDt       = 1.0 / 25.0
	DefaultDuration = 10.0
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultPull     = 20.0
)

type Config struct {
	Dt            float64    `yaml:"dt"`
	Duration      float64    `yaml:"duration"`
	Width         float64    `yaml:"width"`
	Height        float64    `yaml:"height"`
	PullMagnitude float64    `yaml:"pull_magnitude"`
	Keys          KeyConfig  `yaml:"keys"`
	Environment   env.Params `yaml:"environment"`
}

// KeyConfig maps live-view keys to force toggles.
type KeyConfig struct {
	Gravity    string `yaml:"gravity"`
	Viscosity  string `yaml:"viscosity"`
	CenterMass string `yaml:"center_mass"`
	WallTop    string `yaml:"wall_top"`
	WallRight  string `yaml:"wall_right"`
	WallBottom string `yaml:"wall_bottom"`
	WallLeft   string `yaml:"wall_left"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		PullMagnitude: DefaultPull,
		Keys: KeyConfig{
			Gravity:    "g",
			Viscosity:  "v",
			CenterMass: "c",
			WallTop:    "1",
			WallRight:  "2",
			WallBottom: "3",
			WallLeft:   "4",
		},
		Environment: env.DefaultParams(),
	}
}

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

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
