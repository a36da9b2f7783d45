// Package config provides YAML configuration parsing for TickFace.
//
// This package enables running TickFace as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	label: Wall Clock
//	timezone: Europe/London
//	rate: 1
//	second_hand: true
//	max_refresh: 32ms
//	state_file: ~/.tickface/state.json
//	window:
//	  width: 480
//	  height: 480
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLabel      = "TickFace"
	defaultWindowSize = 480

	// minRefresh guards against configs that would spin the redraw loop.
	minRefresh = time.Millisecond
)

// Config is the root configuration structure for TickFace.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Label is the clock's display name and persistence key.
	// Defaults to "TickFace".
	Label string `yaml:"label"`

	// Timezone is an IANA timezone name such as "Europe/London".
	// Empty means the system's local timezone.
	Timezone string `yaml:"timezone"`

	// Rate is the time-rate multiplier. Zero (unset) means real time.
	Rate float64 `yaml:"rate"`

	// SecondHand toggles the second hand. Defaults to true.
	SecondHand *bool `yaml:"second_hand"`

	// MinuteRing toggles the 60-count tick ring. Defaults to true.
	MinuteRing *bool `yaml:"minute_ring"`

	// HourRing toggles the 12-count numeral ring. Defaults to true.
	HourRing *bool `yaml:"hour_ring"`

	// MaxRefresh is the shortest time between redraws.
	// Accepts duration strings like "32ms", "1s". Defaults to 32ms.
	MaxRefresh Duration `yaml:"max_refresh"`

	// Timer starts the clock in timer (stopwatch) display mode.
	Timer bool `yaml:"timer"`

	// StateFile is the JSON file persisted widget state is kept in.
	// Empty means in-memory state only.
	StateFile string `yaml:"state_file"`

	// Window configures the host window for the standalone binary.
	Window WindowConfig `yaml:"window"`
}

// WindowConfig sizes the standalone binary's window.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Duration wraps [time.Duration] with YAML unmarshalling from duration
// strings ("32ms", "1s", "2m30s").
type Duration time.Duration

// Duration returns the wrapped [time.Duration].
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"32ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse parses YAML configuration data, applies defaults, and validates.
//
// Unknown fields are rejected so typos fail fast rather than silently
// falling back to defaults.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Label == "" {
		c.Label = defaultLabel
	}
	if c.Rate == 0 {
		c.Rate = 1
	}
	if c.Window.Width == 0 {
		c.Window.Width = defaultWindowSize
	}
	if c.Window.Height == 0 {
		c.Window.Height = defaultWindowSize
	}
}

func (c *Config) validate() error {
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return errors.New("rate must be finite")
	}
	if c.MaxRefresh < 0 {
		return errors.New("max_refresh cannot be negative")
	}
	if c.MaxRefresh != 0 && c.MaxRefresh.Duration() < minRefresh {
		return fmt.Errorf("max_refresh must be at least %s", minRefresh)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return errors.New("window dimensions cannot be negative")
	}
	return nil
}
