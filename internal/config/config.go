// Package config provides unified configuration loading for hippo.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vantorre/hippo/internal/agent"
	"github.com/vantorre/hippo/internal/constants"
)

// Config contains all hippo configuration settings.
type Config struct {
	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Simulation contains settings for the simulation driver.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Cognition contains the per-agent tuning knobs that are worth
	// exposing; everything else keeps its built-in default.
	Cognition CognitionConfig `json:"cognition" yaml:"cognition"`
}

// LoggingConfig configures hippo's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// SimulationConfig configures the simulation driver.
type SimulationConfig struct {
	// Ticks is the number of simulation steps to run.
	Ticks int `json:"ticks" yaml:"ticks"`

	// Dt is the simulated tick duration in seconds.
	Dt float64 `json:"dt" yaml:"dt"`

	// Agents is the number of independent agents to simulate.
	Agents int `json:"agents" yaml:"agents"`

	// Seed seeds the per-agent RNGs. 0 selects a time-based seed.
	Seed int64 `json:"seed" yaml:"seed"`

	// EventDB is an optional SQLite path for persisting emitted events.
	EventDB string `json:"event_db,omitempty" yaml:"event_db,omitempty"`
}

// CognitionConfig exposes the subsystem parameters operators actually
// tune. Zero values fall back to the built-in defaults.
type CognitionConfig struct {
	// DiscoveryRate is the expected landmark discovery rate per second
	// in unmapped space.
	DiscoveryRate float64 `json:"discovery_rate,omitempty" yaml:"discovery_rate,omitempty"`

	// DiscoveryThreshold is the minimum distance from known landmarks
	// before a new one may be discovered.
	DiscoveryThreshold float64 `json:"discovery_threshold,omitempty" yaml:"discovery_threshold,omitempty"`

	// HebbianRate is the co-activation learning rate.
	HebbianRate float64 `json:"hebbian_rate,omitempty" yaml:"hebbian_rate,omitempty"`

	// PathLearningRate is the TD step size for path values.
	PathLearningRate float64 `json:"path_learning_rate,omitempty" yaml:"path_learning_rate,omitempty"`

	// ConsolidationInterval is the seconds between consolidation passes.
	ConsolidationInterval float64 `json:"consolidation_interval,omitempty" yaml:"consolidation_interval,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Simulation: SimulationConfig{
			Ticks:  600,
			Dt:     constants.DefaultTickSeconds,
			Agents: 1,
			Seed:   0,
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.hippo/config.yaml -> environment.
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".hippo", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", c.Simulation.Ticks)
	}

	if c.Simulation.Dt < 0 {
		return fmt.Errorf("dt must be non-negative, got %f", c.Simulation.Dt)
	}

	if c.Simulation.Agents < 0 {
		return fmt.Errorf("agents must be non-negative, got %d", c.Simulation.Agents)
	}

	if c.Cognition.DiscoveryRate < 0 || c.Cognition.DiscoveryRate > 1 {
		return fmt.Errorf("discovery_rate must be between 0 and 1, got %f", c.Cognition.DiscoveryRate)
	}

	if c.Cognition.HebbianRate < 0 || c.Cognition.HebbianRate > 1 {
		return fmt.Errorf("hebbian_rate must be between 0 and 1, got %f", c.Cognition.HebbianRate)
	}

	if c.Cognition.PathLearningRate < 0 || c.Cognition.PathLearningRate > 1 {
		return fmt.Errorf("path_learning_rate must be between 0 and 1, got %f", c.Cognition.PathLearningRate)
	}

	if c.Cognition.ConsolidationInterval < 0 {
		return fmt.Errorf("consolidation_interval must be non-negative, got %f", c.Cognition.ConsolidationInterval)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// AgentConfig maps the exposed cognition knobs onto a full agent
// configuration, leaving unexposed parameters at their defaults.
func (c *Config) AgentConfig() agent.Config {
	cfg := agent.DefaultConfig()
	if c.Cognition.DiscoveryRate > 0 {
		cfg.Map.DiscoveryRate = c.Cognition.DiscoveryRate
	}
	if c.Cognition.DiscoveryThreshold > 0 {
		cfg.Map.DiscoveryThreshold = c.Cognition.DiscoveryThreshold
	}
	if c.Cognition.HebbianRate > 0 {
		cfg.Plasticity.LearningRate = c.Cognition.HebbianRate
	}
	if c.Cognition.PathLearningRate > 0 {
		cfg.Path.LearningRate = c.Cognition.PathLearningRate
	}
	if c.Cognition.ConsolidationInterval > 0 {
		cfg.Consolidation.Interval = time.Duration(c.Cognition.ConsolidationInterval * float64(time.Second))
	}
	return cfg
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("HIPPO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("HIPPO_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Ticks = n
		}
	}

	if v := os.Getenv("HIPPO_AGENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Agents = n
		}
	}

	if v := os.Getenv("HIPPO_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("HIPPO_EVENT_DB"); v != "" {
		config.Simulation.EventDB = v
	}

	if v := os.Getenv("HIPPO_DISCOVERY_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Cognition.DiscoveryRate = f
		}
	}
}
