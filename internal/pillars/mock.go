package pillars

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/consilium-ai/consilium/internal/models"
)

// MockAgent is a simple scripted implementation for testing orchestration
// and transport code without the keyword heuristics.
type MockAgent struct {
	AgentName string
	Outcome   Outcome
	// Delay is applied before returning; the agent honors ctx while waiting.
	Delay time.Duration
	// PanicMsg, when set, makes Analyze panic instead of returning.
	PanicMsg string

	calls atomic.Int64
}

// NewMockAgent creates a mock that succeeds with a neutral report for the
// given pillar.
func NewMockAgent(name string) *MockAgent {
	return &MockAgent{
		AgentName: name,
		Outcome: Success(models.FinanceReport{
			Analysis:   "mock analysis",
			Metrics:    map[string]float64{"revenue_potential": 0.5},
			Confidence: 0.5,
		}),
	}
}

func (m *MockAgent) Name() string { return m.AgentName }

func (m *MockAgent) Analyze(ctx context.Context, _ string) Outcome {
	m.calls.Add(1)

	if m.PanicMsg != "" {
		panic(m.PanicMsg)
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Failure(ctx.Err())
		}
	}

	return m.Outcome
}

// Calls returns how many times Analyze has been invoked.
func (m *MockAgent) Calls() int { return int(m.calls.Load()) }
