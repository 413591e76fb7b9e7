// Package config is the ambient configuration layer: a yaml/json
// tagged SimulationConfig, a Verify() method reporting every invalid
// field at once, and size presets. Grounded on luxfi-consensus's
// config.Config / sampling.Parameters pattern (builder.go, parameters.go).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trustmesh/engine/wrappers"
)

// Sentinel validation errors, wrapped with field context via %w.
var (
	ErrInvalidNodeCount   = errors.New("config: node count must be positive")
	ErrInvalidTicks       = errors.New("config: tick count must be positive")
	ErrInvalidSeed        = errors.New("config: seed must be non-zero")
	ErrInvalidAgentMix    = errors.New("config: agent mix fractions must sum to at most 1.0")
	ErrInvalidAdversary   = errors.New("config: adversary fraction must be within [0,1)")
	ErrInvalidExportPath  = errors.New("config: export path must not be empty when export is enabled")
	ErrInvalidLogFilePath = errors.New("config: log file path must not be empty when set")
)

// Preset names the built-in size presets, mirroring the teacher's
// NetworkType (mainnet/testnet/local).
type Preset string

const (
	SmallPreset  Preset = "small"
	MediumPreset Preset = "medium"
	LargePreset  Preset = "large"
)

// AgentMix describes what fraction of nodes run each agent behavior.
// Verify checks each fraction; sim.Runner does not read AgentMix, and
// the agents a run uses are chosen by its Scenario.
type AgentMix struct {
	Strategic float64 `yaml:"strategic" json:"strategic"`
	FreeRider float64 `yaml:"freeRider" json:"freeRider"`
	Sybil     float64 `yaml:"sybil" json:"sybil"`
	Passive   float64 `yaml:"passive" json:"passive"`
}

// SimulationConfig is the full set of knobs a run needs beyond the
// protocol constants fixed in package kernel.
type SimulationConfig struct {
	Seed        int64         `yaml:"seed" json:"seed"`
	NodeCount   int           `yaml:"nodeCount" json:"nodeCount"`
	Ticks       uint64        `yaml:"ticks" json:"ticks"`
	TickPeriod  time.Duration `yaml:"tickPeriod" json:"tickPeriod"`
	AgentMix    AgentMix      `yaml:"agentMix" json:"agentMix"`
	DefectAtTick uint64       `yaml:"defectAtTick" json:"defectAtTick"`

	EnableMetrics bool   `yaml:"enableMetrics" json:"enableMetrics"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	LogFile       string `yaml:"logFile" json:"logFile"`

	ExportEnabled bool   `yaml:"exportEnabled" json:"exportEnabled"`
	ExportDir     string `yaml:"exportDir" json:"exportDir"`
}

// DefaultConfig returns a medium-sized, deterministic run.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		Seed:       42,
		NodeCount:  20,
		Ticks:      500,
		TickPeriod: 0,
		AgentMix:   AgentMix{},
	}
}

// SmallConfig is a quick, cheap run suitable for smoke tests and the
// CLI's `quick` subcommand.
func SmallConfig() SimulationConfig {
	c := DefaultConfig()
	c.NodeCount = 5
	c.Ticks = 50
	return c
}

// LargeConfig stresses the network with a wider node count and a
// meaningful adversary presence.
func LargeConfig() SimulationConfig {
	c := DefaultConfig()
	c.NodeCount = 100
	c.Ticks = 2000
	c.AgentMix = AgentMix{Strategic: 0.1, FreeRider: 0.1, Sybil: 0.05}
	c.DefectAtTick = 500
	return c
}

// PresetConfig resolves a Preset name, defaulting to DefaultConfig for
// an unrecognized or empty name.
func PresetConfig(p Preset) SimulationConfig {
	switch p {
	case SmallPreset:
		return SmallConfig()
	case LargePreset:
		return LargeConfig()
	case MediumPreset:
		return DefaultConfig()
	default:
		return DefaultConfig()
	}
}

// Verify reports every invalid field at once via a wrappers.Errs
// accumulator, rather than stopping at the first problem.
func (c SimulationConfig) Verify() error {
	var errs wrappers.Errs

	if c.NodeCount <= 0 {
		errs.Add(fmt.Errorf("%w: nodeCount=%d", ErrInvalidNodeCount, c.NodeCount))
	}
	if c.Ticks == 0 {
		errs.Add(fmt.Errorf("%w: ticks=%d", ErrInvalidTicks, c.Ticks))
	}
	if c.Seed == 0 {
		errs.Add(fmt.Errorf("%w", ErrInvalidSeed))
	}

	mixSum := c.AgentMix.Strategic + c.AgentMix.FreeRider + c.AgentMix.Sybil + c.AgentMix.Passive
	if mixSum > 1.0 {
		errs.Add(fmt.Errorf("%w: sum=%f", ErrInvalidAgentMix, mixSum))
	}
	for _, frac := range []float64{c.AgentMix.Strategic, c.AgentMix.FreeRider, c.AgentMix.Sybil, c.AgentMix.Passive} {
		if frac < 0 || frac >= 1 {
			errs.Add(fmt.Errorf("%w: frac=%f", ErrInvalidAdversary, frac))
		}
	}

	if c.ExportEnabled && c.ExportDir == "" {
		errs.Add(fmt.Errorf("%w", ErrInvalidExportPath))
	}
	if c.LogFile != "" && len(c.LogFile) == 0 {
		errs.Add(fmt.Errorf("%w", ErrInvalidLogFilePath))
	}

	return errs.Err()
}

// LoadFile reads a SimulationConfig from a YAML file, starting from
// DefaultConfig so omitted fields keep their defaults.
func LoadFile(path string) (SimulationConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Verify(); err != nil {
		return c, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return c, nil
}
