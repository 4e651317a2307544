// Package projectconfig provides the ProjectConfig struct and loader for
// .consilium.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/pillars"
)

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultAgentTimeoutSeconds = 120
	DefaultEventBuffer         = 16

	DefaultServerPort = 8080
	DefaultRunsDir    = "runs/"
)

// ScenarioConfig bounds the accepted scenario text length.
type ScenarioConfig struct {
	MinLength int `yaml:"min_length,omitempty"`
	MaxLength int `yaml:"max_length,omitempty"`
}

// OrchestratorConfig holds dispatch settings.
type OrchestratorConfig struct {
	// AgentTimeout is the per-agent deadline in seconds.
	AgentTimeout int `yaml:"agent_timeout,omitempty"`
	EventBuffer  int `yaml:"event_buffer,omitempty"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Port    int    `yaml:"port,omitempty"`
	RunsDir string `yaml:"runs_dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .consilium.yaml.
type ProjectConfig struct {
	// Weights override the built-in pillar weighting; empty means defaults.
	Weights      map[string]float64 `yaml:"weights,omitempty"`
	Scenario     ScenarioConfig     `yaml:"scenario,omitempty"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator,omitempty"`
	Server       ServerConfig       `yaml:"server,omitempty"`
	// Pillars replaces the default four-agent set when non-empty.
	Pillars []pillars.AgentSpec `yaml:"pillars,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Scenario: ScenarioConfig{
			MinLength: models.DefaultMinScenarioLen,
			MaxLength: models.DefaultMaxScenarioLen,
		},
		Orchestrator: OrchestratorConfig{
			AgentTimeout: DefaultAgentTimeoutSeconds,
			EventBuffer:  DefaultEventBuffer,
		},
		Server: ServerConfig{
			Port:    DefaultServerPort,
			RunsDir: DefaultRunsDir,
		},
	}
}

// Load finds .consilium.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no config file, use defaults
		}
		return nil, fmt.Errorf("loading .consilium.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .consilium.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the orchestrator could not honor.
func (c *ProjectConfig) Validate() error {
	if err := models.ValidateWeights(c.Weights); err != nil {
		return err
	}
	if c.Scenario.MinLength <= 0 {
		return &models.ConfigurationError{Field: "scenario.min_length", Reason: "must be positive"}
	}
	if c.Scenario.MaxLength < c.Scenario.MinLength {
		return &models.ConfigurationError{Field: "scenario.max_length", Reason: "must be >= scenario.min_length"}
	}
	if c.Orchestrator.AgentTimeout <= 0 {
		return &models.ConfigurationError{Field: "orchestrator.agent_timeout", Reason: "must be positive"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &models.ConfigurationError{Field: "server.port", Reason: "must be a valid TCP port"}
	}
	return nil
}

// findConfigFile walks up from dir looking for .consilium.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".consilium.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if len(src.Weights) > 0 {
		dst.Weights = src.Weights
	}

	if src.Scenario.MinLength != 0 {
		dst.Scenario.MinLength = src.Scenario.MinLength
	}
	if src.Scenario.MaxLength != 0 {
		dst.Scenario.MaxLength = src.Scenario.MaxLength
	}

	if src.Orchestrator.AgentTimeout != 0 {
		dst.Orchestrator.AgentTimeout = src.Orchestrator.AgentTimeout
	}
	if src.Orchestrator.EventBuffer != 0 {
		dst.Orchestrator.EventBuffer = src.Orchestrator.EventBuffer
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.RunsDir != "" {
		dst.Server.RunsDir = src.Server.RunsDir
	}

	if len(src.Pillars) > 0 {
		dst.Pillars = src.Pillars
	}
}
