package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/experiment"
	"github.com/san-kum/pidlab/internal/scenario"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario = "single-step"
	DefaultKp       = 2.0
	DefaultKi       = 0.15
	DefaultKd       = 0.0
	DefaultMode     = "P"
	DefaultTheme    = "ocean"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Scenario string        `yaml:"scenario"`
	Initial  *float64      `yaml:"initial,omitempty"`
	Duration float64       `yaml:"duration,omitempty"`
	Gains    control.Gains `yaml:"gains"`
	Mode     string        `yaml:"mode"`
	Theme    string        `yaml:"theme"`
	Workers  int           `yaml:"workers"`
	Tune     TuneConfig    `yaml:"tune"`
}

// TuneConfig describes the grid searched by the tune command.
type TuneConfig struct {
	Metric string      `yaml:"metric"`
	Kp     RangeConfig `yaml:"kp"`
	Ki     RangeConfig `yaml:"ki"`
	Kd     RangeConfig `yaml:"kd"`
}

type RangeConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Gains: control.Gains{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
		Mode:  DefaultMode,
		Theme: DefaultTheme,
		Tune: TuneConfig{
			Metric: "mae",
			Kp:     RangeConfig{Min: 0, Max: 8, Step: 1},
			Ki:     RangeConfig{Min: 0, Max: 2, Step: 0.25},
			Kd:     RangeConfig{Min: 0, Max: 8, Step: 1},
		},
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
	if err := cfg.Validate(); err != nil {
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
	if _, err := scenario.Lookup(c.Scenario); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := experiment.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GetScenario resolves the configured scenario with the initial value and
// duration overrides applied.
func (c *Config) GetScenario() (scenario.Scenario, error) {
	sc, err := scenario.Lookup(c.Scenario)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if c.Initial != nil {
		sc = sc.WithInitial(*c.Initial)
	}
	if c.Duration > 0 {
		sc = sc.WithDuration(c.Duration)
	}
	return sc, nil
}
