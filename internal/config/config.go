package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 500
	DefaultHeight         = 500
	DefaultFPS            = 200
	DefaultG              = 5e-4
	DefaultStarDensity    = 20.0
	DefaultPlanetDensity  = 1.0
	DefaultKillFactor     = 4
	DefaultPathSampleSize = 50
	DefaultPathSampleRate = 25.0
)

const (
	// IntegrationPairwise moves a body after every single pairwise
	// contribution, so its trajectory depends on World order.
	IntegrationPairwise = "pairwise"
	// IntegrationTick sums every contribution first and moves once per tick.
	IntegrationTick = "tick"
)

// ErrInvalidConfig is returned when derived constants violate the startup
// preconditions of the simulation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigError names the field that failed validation.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

type SizeRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Config holds every simulation constant. Width and Height are the only
// inputs to Derive; the fields below "derived" are overwritten by it.
// DrawPath, DrawForceLines, Kill and PlanetVelocity are the runtime toggles
// flipped by the interaction controller.
type Config struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FPS         int     `yaml:"fps"`
	Seed        int64   `yaml:"seed"`
	G           float64 `yaml:"g"`
	Integration string  `yaml:"integration"`

	StarDensity   float64 `yaml:"star_density"`
	PlanetDensity float64 `yaml:"planet_density"`
	KillFactor    int     `yaml:"kill_factor"`

	DrawPath          bool    `yaml:"draw_path"`
	DrawForceLines    bool    `yaml:"draw_force_lines"`
	Kill              bool    `yaml:"kill"`
	PlanetVelocity    bool    `yaml:"planet_velocity"`
	PathSampleSize    int     `yaml:"path_sample_size"`
	PathSampleRate    float64 `yaml:"path_sample_rate"`
	PathColorFromBody bool    `yaml:"path_color_from_body"`
	PathColor         RGB     `yaml:"path_color"`
	Background        RGB     `yaml:"background"`

	// derived
	StarSize               SizeRange `yaml:"star_size"`
	PlanetSize             SizeRange `yaml:"planet_size"`
	PlanetStartingVelocity float64   `yaml:"planet_starting_velocity"`
	KillDistance           float64   `yaml:"kill_distance"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		FPS:               DefaultFPS,
		G:                 DefaultG,
		Integration:       IntegrationPairwise,
		StarDensity:       DefaultStarDensity,
		PlanetDensity:     DefaultPlanetDensity,
		KillFactor:        DefaultKillFactor,
		Kill:              true,
		PlanetVelocity:    true,
		PathSampleSize:    DefaultPathSampleSize,
		PathSampleRate:    DefaultPathSampleRate,
		PathColorFromBody: true,
		PathColor:         RGB{255, 255, 255},
		Background:        RGB{20, 30, 40},
	}
	cfg.Derive(DefaultWidth, DefaultHeight)
	return cfg
}

// New returns the default configuration derived for a width x height canvas,
// or an error if the derived constants are unusable.
func New(width, height int) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Derive(width, height)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Derive recomputes the screen-dependent constants. Calling it twice with the
// same arguments yields the same configuration.
func (c *Config) Derive(width, height int) {
	c.Width = width
	c.Height = height

	c.StarSize = SizeRange{Min: width / 9, Max: width / 6}
	c.PlanetSize = SizeRange{Min: width / 35, Max: width / 14}
	c.PlanetStartingVelocity = float64(width) / 500
	c.KillDistance = float64((width*c.KillFactor + height*c.KillFactor) / 2)
}

func (c *Config) Validate() error {
	invalid := func(field string, v any) error {
		return &ConfigError{Field: field, Value: v, Wrapped: ErrInvalidConfig}
	}

	switch {
	case c.Width <= 0:
		return invalid("width", c.Width)
	case c.Height <= 0:
		return invalid("height", c.Height)
	case c.FPS <= 0:
		return invalid("fps", c.FPS)
	case c.G < 0:
		return invalid("g", c.G)
	case c.StarDensity <= 0:
		return invalid("star_density", c.StarDensity)
	case c.PlanetDensity <= 0:
		return invalid("planet_density", c.PlanetDensity)
	case c.StarSize.Min <= 0 || c.StarSize.Max < c.StarSize.Min:
		return invalid("star_size", c.StarSize)
	case c.PlanetSize.Min <= 0 || c.PlanetSize.Max < c.PlanetSize.Min:
		return invalid("planet_size", c.PlanetSize)
	case c.KillDistance <= 0:
		return invalid("kill_distance", c.KillDistance)
	case c.PathSampleSize <= 0:
		return invalid("path_sample_size", c.PathSampleSize)
	case c.PathSampleRate <= 0:
		return invalid("path_sample_rate", c.PathSampleRate)
	case c.Integration != IntegrationPairwise && c.Integration != IntegrationTick:
		return invalid("integration", c.Integration)
	}
	return nil
}

// Load reads a YAML file over the defaults and re-derives the screen
// constants from the resulting width and height.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Derive(cfg.Width, cfg.Height)
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

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
