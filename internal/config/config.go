// Package config holds the YAML run configuration shared by the CLI
// commands. Flags override file values; file values override defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEngine   = "stochastic"
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultPoints   = 500
)

type Config struct {
	// Network names a preset; File points at a network description on
	// disk and takes precedence when both are set.
	Network string `yaml:"network"`
	File    string `yaml:"file"`

	// Engine is "stochastic" or "deterministic".
	Engine string `yaml:"engine"`

	// Dt is the deterministic timestep; ignored by the stochastic engine.
	Dt float64 `yaml:"dt"`

	// Duration is the simulated time to run for. Steps, when nonzero,
	// runs a fixed number of stochastic firings instead.
	Duration float64 `yaml:"duration"`
	Steps    int     `yaml:"steps"`

	// Seed seeds the stochastic engine; zero means seed from the clock.
	Seed int64 `yaml:"seed"`

	// Points caps the number of samples drawn when plotting a run.
	Points int `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:   DefaultEngine,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Points:   DefaultPoints,
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
	if c.Engine != "stochastic" && c.Engine != "deterministic" {
		return fmt.Errorf("config: unknown engine %q (want stochastic or deterministic)", c.Engine)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 && c.Steps <= 0 {
		return fmt.Errorf("config: need a positive duration or step count")
	}
	if c.Points <= 0 {
		return fmt.Errorf("config: points must be positive, got %d", c.Points)
	}
	return nil
}
