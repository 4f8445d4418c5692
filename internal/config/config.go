// SPDX-License-Identifier: MIT

// Package config loads construction-time settings for the mcik CLI.
//
// Precedence (highest to lowest): flags > MCIK_* env vars > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/seed"
)

// ErrInvalidConfig indicates a value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid")

// Seed kinds.
const (
	SeedZero  = "zero"
	SeedPokes = "pokes"
	SeedPulse = "pulse"
	SeedChirp = "chirp"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// SeedConfig selects the initial lattice state.
type SeedConfig struct {
	Kind      string      `koanf:"kind"`
	Pokes     []seed.Poke `koanf:"pokes"`
	Amplitude float64     `koanf:"amplitude"`
}

// Config holds every setting a command may read.
type Config struct {
	Size        int               `koanf:"size"`
	Alpha       float64           `koanf:"alpha"`
	Beta        float64           `koanf:"beta"`
	Precision   lattice.Precision `koanf:"scalar_precision"`
	Squash      string            `koanf:"squash"`
	Steps       int               `koanf:"steps"`
	Origin      int               `koanf:"origin"`
	Seed        SeedConfig        `koanf:"seed"`
	Workers     int               `koanf:"workers"`
	Output      string            `koanf:"output"`
	LogLevel    string            `koanf:"log_level"`
	LogFormat   string            `koanf:"log_format"`
	MetricsFile string            `koanf:"metrics_file"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Defaults returns the built-in configuration as a flat koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"size":             9,
		"alpha":            1.0,
		"beta":             0.5,
		"scalar_precision": string(lattice.Double),
		"squash":           "tanh",
		"steps":            10,
		"origin":           4,
		"seed.kind":        SeedPokes,
		"seed.pokes":       []string{"4=0.25"},
		"seed.amplitude":   1.0,
		"workers":          0,
		"output":           OutputTable,
		"log_level":        "warn",
		"log_format":       "text",
		"metrics_file":     "",
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks ranges and enumerations. Workers == 0 means one per CPU.
func (c *Config) Validate() error {
	if c.Size < lattice.MinSize {
		return invalid("size %d < %d", c.Size, lattice.MinSize)
	}
	if !finite(c.Alpha) || !finite(c.Beta) {
		return invalid("alpha=%v beta=%v must be finite", c.Alpha, c.Beta)
	}
	if _, err := lattice.ParsePrecision(string(c.Precision)); err != nil {
		return invalid("scalar_precision %q", c.Precision)
	}
	if _, err := lattice.ParseSquash(c.Squash); err != nil {
		return invalid("squash %q", c.Squash)
	}
	if c.Steps < 0 {
		return invalid("steps %d < 0", c.Steps)
	}
	if c.Origin < 0 || c.Origin >= c.Size {
		return invalid("origin %d not in [0,%d)", c.Origin, c.Size)
	}
	if c.Workers < 0 {
		return invalid("workers %d < 0", c.Workers)
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return invalid("output %q (want table|json|yaml)", c.Output)
	}
	if _, err := c.SlogLevel(); err != nil {
		return invalid("log_level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return invalid("log_format %q (want text|json)", c.LogFormat)
	}

	return c.validateSeed()
}

func (c *Config) validateSeed() error {
	switch c.Seed.Kind {
	case SeedZero, SeedPulse, SeedChirp:
	case SeedPokes:
		for _, p := range c.Seed.Pokes {
			if p.Site < 0 || p.Site >= c.Size {
				return invalid("seed.pokes %v outside [0,%d)", p, c.Size)
			}
			if !finite(p.Value) {
				return invalid("seed.pokes %v not finite", p)
			}
		}
	default:
		return invalid("seed.kind %q (want zero|pokes|pulse|chirp)", c.Seed.Kind)
	}
	if !(c.Seed.Amplitude > 0) || math.IsInf(c.Seed.Amplitude, 0) {
		return invalid("seed.amplitude %v must be > 0", c.Seed.Amplitude)
	}

	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel)))

	return l, err
}

// InitialState builds the seed state of length Size.
func (c *Config) InitialState() ([]float64, error) {
	switch c.Seed.Kind {
	case SeedZero:
		return seed.Zero(c.Size)
	case SeedPulse:
		return seed.Pulse(c.Size, seed.WithAmplitude(c.Seed.Amplitude))
	case SeedChirp:
		return seed.Chirp(c.Size, seed.WithAmplitude(c.Seed.Amplitude))
	case SeedPokes:
		return seed.WithPokes(c.Size, c.Seed.Pokes)
	default:
		return nil, invalid("seed.kind %q", c.Seed.Kind)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
