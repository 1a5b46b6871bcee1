// Package config holds run configuration for the simulator CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

const (
	DefaultIntegrator = "rk4"
	DefaultDt         = 1e-5
	DefaultDuration   = 3.0
	DefaultTolerance  = 1e-6
)

type Config struct {
	Integrator    string  `yaml:"integrator"`
	Dt            float64 `yaml:"dt"`
	Duration      float64 `yaml:"duration"`
	Adaptive      bool    `yaml:"adaptive"`
	Tolerance     float64 `yaml:"tolerance"`
	Acetylcholine float64 `yaml:"acetylcholine"`
	Noradrenaline float64 `yaml:"noradrenaline"`

	// ParamFile overrides the built-in parameter set when non-empty.
	ParamFile string `yaml:"param_file"`

	// Overrides replace named primary constants after loading, e.g.
	// clamp_mode: 1 to run a voltage-clamp protocol.
	Overrides map[string]float64 `yaml:"overrides"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Tolerance:  DefaultTolerance,
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrConfiguration, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrConfiguration, c.Duration)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", dynamo.ErrConfiguration)
	}
	return nil
}

// RunConfig maps to the simulator's step configuration.
func (c *Config) RunConfig() dynamo.Config {
	run := dynamo.DefaultConfig()
	run.Dt = c.Dt
	run.Duration = c.Duration
	run.Adaptive = c.Adaptive
	run.Tolerance = c.Tolerance
	return run
}
