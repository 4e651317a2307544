package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// RunStatus tracks the lifecycle of an orchestration run.
type RunStatus string

const (
	RunPending     RunStatus = "pending"
	RunRunning     RunStatus = "running"
	RunAggregating RunStatus = "aggregating"
	RunDone        RunStatus = "done"
	// RunFailed is terminal only when zero agents could be dispatched.
	RunFailed RunStatus = "failed"
)

// ResultStatus is the terminal state of a single pillar invocation.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultFailed  ResultStatus = "failed"
)

// Scenario length bounds and the weight-map tolerance applied at request
// validation time.
const (
	DefaultMinScenarioLen = 50
	DefaultMaxScenarioLen = 5000

	WeightTolerance = 1e-3
)

// ScenarioRequest describes one analysis request. It is validated before
// dispatch and never mutated afterwards.
type ScenarioRequest struct {
	Scenario string             `json:"scenario"`
	Weights  map[string]float64 `json:"weights,omitempty"`
	Focus    []string           `json:"pillars,omitempty"`
}

// ValidateWeights checks that the weight values sum to 1.0 within
// WeightTolerance. A nil or empty map is valid (defaults apply).
func ValidateWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return nil
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return &ConfigurationError{
			Field:  "weights",
			Reason: fmt.Sprintf("weight values must sum to 1.0, got %.4f", sum),
		}
	}
	return nil
}

// AgentResult is the terminal outcome of one pillar's analysis for one run.
// A failing agent still yields a result record, never a missing entry.
type AgentResult struct {
	Pillar   string        `json:"pillar"`
	Status   ResultStatus  `json:"status"`
	Payload  Report        `json:"payload,omitempty"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ms"`
}

// Failed reports whether the pillar invocation ended in failure.
func (r AgentResult) Failed() bool { return r.Status == ResultFailed }

// OrchestrationRun is the complete record of one scenario's dispatch across
// all requested pillars.
type OrchestrationRun struct {
	RunID      string                 `json:"run_id"`
	Request    ScenarioRequest        `json:"request"`
	Results    map[string]AgentResult `json:"results"`
	Status     RunStatus              `json:"status"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Succeeded  int                    `json:"succeeded"`
	Total      int                    `json:"total"`
}

// Complete reports whether every dispatched agent reached a terminal state.
func (r *OrchestrationRun) Complete() bool {
	return r.Status == RunDone && len(r.Results) == r.Total
}

// agentResultJSON mirrors AgentResult with the payload kept raw so the
// concrete report type can be chosen from the pillar identifier.
type agentResultJSON struct {
	Pillar     string          `json:"pillar"`
	Status     ResultStatus    `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Err        string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
}

// MarshalJSON flattens Duration to milliseconds for transport.
func (r AgentResult) MarshalJSON() ([]byte, error) {
	var payload json.RawMessage
	if r.Payload != nil {
		b, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, err
		}
		payload = b
	}
	return json.Marshal(agentResultJSON{
		Pillar:     r.Pillar,
		Status:     r.Status,
		Payload:    payload,
		Err:        r.Err,
		DurationMS: r.Duration.Milliseconds(),
	})
}

// UnmarshalJSON restores the concrete payload type from the pillar
// identifier. Payloads of unknown pillars are dropped; the result itself is
// preserved so stored runs stay readable.
func (r *AgentResult) UnmarshalJSON(data []byte) error {
	var v agentResultJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	r.Pillar = v.Pillar
	r.Status = v.Status
	r.Err = v.Err
	r.Duration = time.Duration(v.DurationMS) * time.Millisecond
	r.Payload = nil

	if len(v.Payload) == 0 {
		return nil
	}

	switch v.Pillar {
	case PillarFinance:
		var p FinanceReport
		if err := json.Unmarshal(v.Payload, &p); err != nil {
			return err
		}
		r.Payload = p
	case PillarRisk:
		var p RiskReport
		if err := json.Unmarshal(v.Payload, &p); err != nil {
			return err
		}
		r.Payload = p
	case PillarCompliance:
		var p ComplianceReport
		if err := json.Unmarshal(v.Payload, &p); err != nil {
			return err
		}
		r.Payload = p
	case PillarMarket:
		var p MarketReport
		if err := json.Unmarshal(v.Payload, &p); err != nil {
			return err
		}
		r.Payload = p
	}
	return nil
}
