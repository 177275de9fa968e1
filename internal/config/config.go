package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/argonmd/internal/md"
)

const (
	DefaultNc      = md.FirstNc
	DefaultScale   = md.FirstScale
	DefaultTempK   = md.FirstTemp
	DefaultDt      = md.DT
	DefaultSteps   = 1000
	DefaultBackend = "auto"
)

type Config struct {
	Nc          int     `yaml:"nc"`
	Scale       float64 `yaml:"scale"`
	Temperature float64 `yaml:"temperature"` // Kelvin
	Dt          float64 `yaml:"dt"`
	Steps       int     `yaml:"steps"`
	Backend     string  `yaml:"backend"` // auto | cpu | gpu
	Seed        int64   `yaml:"seed"`
	Validate    bool    `yaml:"validate"`
}

func DefaultConfig() *Config {
	return &Config{
		Nc:          DefaultNc,
		Scale:       DefaultScale,
		Temperature: DefaultTempK,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Backend:     DefaultBackend,
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
	if err := cfg.Check(); err != nil {
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

// Check checks the ranges a run cannot recover from.
func (c *Config) Check() error {
	if c.Nc < 1 {
		return fmt.Errorf("nc must be at least 1, got %d", c.Nc)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %f", c.Scale)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %f", c.Temperature)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	return nil
}

// NewState builds the simulation state this configuration describes.
func (c *Config) NewState() *md.State {
	s := md.NewState(c.Nc, c.Scale, c.Temperature)
	s.Dt = c.Dt
	return s
}
