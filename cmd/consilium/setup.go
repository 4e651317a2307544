package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/consilium-ai/consilium/internal/decision"
	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/orchestration"
	"github.com/consilium-ai/consilium/internal/pillars"
	"github.com/consilium-ai/consilium/internal/projectconfig"
)

// buildOrchestrator wires the registry, engine, and orchestrator from
// project configuration. timeoutSeconds overrides the configured per-agent
// deadline when positive.
func buildOrchestrator(cfg *projectconfig.ProjectConfig, timeoutSeconds int) (*orchestration.Orchestrator, error) {
	registry, err := pillars.NewRegistry(cfg.Pillars)
	if err != nil {
		return nil, fmt.Errorf("configuring pillar agents: %w", err)
	}

	engine := decision.NewEngine()
	if len(cfg.Weights) > 0 {
		if err := engine.UpdateWeights(cfg.Weights); err != nil {
			return nil, err
		}
	}

	timeout := time.Duration(cfg.Orchestrator.AgentTimeout) * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	return orchestration.New(registry, engine,
		orchestration.WithAgentTimeout(timeout),
		orchestration.WithEventBuffer(cfg.Orchestrator.EventBuffer),
		orchestration.WithScenarioBounds(cfg.Scenario.MinLength, cfg.Scenario.MaxLength),
	), nil
}

// parseWeights turns repeated "pillar=value" flags into a weight map.
func parseWeights(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	weights := make(map[string]float64, len(values))
	for _, v := range values {
		name, raw, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, expected pillar=value", v)
		}
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in %q: %w", v, err)
		}
		weights[strings.TrimSpace(name)] = w
	}
	if err := models.ValidateWeights(weights); err != nil {
		return nil, err
	}
	return weights, nil
}

// scenarioDocument is the YAML form accepted by --file when the path ends
// in .yaml or .yml. Weights and pillars act as defaults and flags still win.
type scenarioDocument struct {
	Scenario string             `yaml:"scenario"`
	Weights  map[string]float64 `yaml:"weights"`
	Pillars  []string           `yaml:"pillars"`
}

// readScenarioDocument resolves the scenario from the positional argument,
// a file, or stdin ("-"). Plain files and stdin carry raw scenario text;
// .yaml/.yml files carry a full scenarioDocument.
func readScenarioDocument(cmd *cobra.Command, args []string, file string) (*scenarioDocument, error) {
	switch {
	case len(args) == 1 && args[0] != "":
		return &scenarioDocument{Scenario: args[0]}, nil
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading scenario from stdin: %w", err)
		}
		return &scenarioDocument{Scenario: string(data)}, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading scenario file: %w", err)
		}
		ext := strings.ToLower(filepath.Ext(file))
		if ext != ".yaml" && ext != ".yml" {
			return &scenarioDocument{Scenario: string(data)}, nil
		}
		var doc scenarioDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing scenario file %s: %w", file, err)
		}
		if err := models.ValidateWeights(doc.Weights); err != nil {
			return nil, err
		}
		return &doc, nil
	default:
		return nil, fmt.Errorf("a scenario is required: pass it as an argument or via --file")
	}
}

// readScenario is readScenarioDocument for callers that only want the text.
func readScenario(cmd *cobra.Command, args []string, file string) (string, error) {
	doc, err := readScenarioDocument(cmd, args, file)
	if err != nil {
		return "", err
	}
	return doc.Scenario, nil
}
