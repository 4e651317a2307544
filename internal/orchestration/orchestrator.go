// Package orchestration fans one scenario analysis out across the
// configured pillar agents, tolerates partial failure, and hands the
// aggregated run to the decision engine.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/consilium-ai/consilium/internal/decision"
	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/pillars"
)

// DefaultAgentTimeout bounds one pillar invocation. A pillar that blows the
// deadline is recorded as failed; the run itself continues.
const DefaultAgentTimeout = 120 * time.Second

const defaultEventBuffer = 16

// ErrNoAgents means the focus filter excluded every registered agent, so
// there is nothing to dispatch.
var ErrNoAgents = errors.New("no pillar agents to dispatch")

// Orchestrator dispatches scenario requests across the registered pillar
// agents. It is safe for concurrent use; each run carries its own state.
type Orchestrator struct {
	registry *pillars.Registry
	engine   *decision.Engine
	logger   *slog.Logger

	agentTimeout time.Duration
	eventBuffer  int
	minScenario  int
	maxScenario  int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAgentTimeout sets the per-agent deadline.
func WithAgentTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.agentTimeout = d
	}
}

// WithEventBuffer sets the streaming channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *Orchestrator) {
		o.eventBuffer = n
	}
}

// WithLogger sets the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithScenarioBounds overrides the accepted scenario length range.
func WithScenarioBounds(min, max int) Option {
	return func(o *Orchestrator) {
		o.minScenario = min
		o.maxScenario = max
	}
}

// New creates an orchestrator over the given agent registry. A nil engine
// gets the default decision weights.
func New(registry *pillars.Registry, engine *decision.Engine, opts ...Option) *Orchestrator {
	if engine == nil {
		engine = decision.NewEngine()
	}
	o := &Orchestrator{
		registry:     registry,
		engine:       engine,
		logger:       slog.Default(),
		agentTimeout: DefaultAgentTimeout,
		eventBuffer:  defaultEventBuffer,
		minScenario:  models.DefaultMinScenarioLen,
		maxScenario:  models.DefaultMaxScenarioLen,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Engine returns the orchestrator's decision engine.
func (o *Orchestrator) Engine() *decision.Engine { return o.engine }

// Registry returns the orchestrator's agent registry.
func (o *Orchestrator) Registry() *pillars.Registry { return o.registry }

// ValidateRequest checks the request without dispatching anything. All
// rejections are *models.ConfigurationError.
func (o *Orchestrator) ValidateRequest(req models.ScenarioRequest) error {
	scenario := strings.TrimSpace(req.Scenario)
	length := utf8.RuneCountInString(scenario)
	if length < o.minScenario {
		return &models.ConfigurationError{
			Field:  "scenario",
			Reason: fmt.Sprintf("scenario must be at least %d characters, got %d", o.minScenario, length),
		}
	}
	if length > o.maxScenario {
		return &models.ConfigurationError{
			Field:  "scenario",
			Reason: fmt.Sprintf("scenario must be at most %d characters, got %d", o.maxScenario, length),
		}
	}

	if err := models.ValidateWeights(req.Weights); err != nil {
		return err
	}

	for _, name := range req.Focus {
		if _, ok := o.registry.Lookup(name); !ok {
			return &models.ConfigurationError{
				Field:  "pillars",
				Reason: fmt.Sprintf("unknown pillar %q", name),
			}
		}
	}
	return nil
}

// selectAgents resolves the focus filter against the registry, preserving
// dispatch order.
func (o *Orchestrator) selectAgents(focus []string) []pillars.Agent {
	agents := o.registry.Agents()
	if len(focus) == 0 {
		return agents
	}
	wanted := make(map[string]bool, len(focus))
	for _, name := range focus {
		wanted[name] = true
	}
	selected := make([]pillars.Agent, 0, len(focus))
	for _, a := range agents {
		if wanted[a.Name()] {
			selected = append(selected, a)
		}
	}
	return selected
}

// Run validates the request and dispatches every selected agent
// concurrently. Individual agent failures are recorded in the run, never
// returned as errors; the returned error covers only rejected requests and
// an empty dispatch set.
func (o *Orchestrator) Run(ctx context.Context, req models.ScenarioRequest) (*models.OrchestrationRun, error) {
	if err := o.ValidateRequest(req); err != nil {
		return nil, err
	}

	agents := o.selectAgents(req.Focus)
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}

	run := o.newRun(req, len(agents))
	run.Status = models.RunRunning

	o.logger.Info("orchestration run started",
		"run_id", run.RunID,
		"agents", len(agents),
		"scenario_len", utf8.RuneCountInString(req.Scenario))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, agent := range agents {
		g.Go(func() error {
			result := o.invoke(gctx, agent, req.Scenario)
			mu.Lock()
			run.Results[result.Pillar] = result
			mu.Unlock()
			return nil
		})
	}
	// Agents never surface errors through the group; Wait is just the join.
	_ = g.Wait()

	o.finish(run)
	return run, nil
}

// Analyze is the one-shot convenience: run the scenario, then synthesize
// the recommendation with the request's weight override.
func (o *Orchestrator) Analyze(ctx context.Context, req models.ScenarioRequest) (*models.OrchestrationRun, *models.Recommendation, error) {
	run, err := o.Run(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return run, o.engine.Synthesize(run, req.Weights), nil
}

func (o *Orchestrator) newRun(req models.ScenarioRequest, total int) *models.OrchestrationRun {
	return &models.OrchestrationRun{
		RunID:     uuid.NewString(),
		Request:   req,
		Results:   make(map[string]models.AgentResult, total),
		Status:    models.RunPending,
		StartedAt: time.Now(),
		Total:     total,
	}
}

// finish moves the run through aggregation to its terminal state.
func (o *Orchestrator) finish(run *models.OrchestrationRun) {
	run.Status = models.RunAggregating

	succeeded := 0
	for _, result := range run.Results {
		if !result.Failed() {
			succeeded++
		}
	}
	run.Succeeded = succeeded
	run.FinishedAt = time.Now()
	run.Status = models.RunDone

	o.logger.Info("orchestration run finished",
		"run_id", run.RunID,
		"succeeded", run.Succeeded,
		"total", run.Total,
		"duration", run.FinishedAt.Sub(run.StartedAt))
}

// invoke runs one agent under the per-agent deadline with a panic guard.
// The agent executes on its own goroutine so a deaf implementation cannot
// stall the run past the deadline.
func (o *Orchestrator) invoke(ctx context.Context, agent pillars.Agent, scenario string) models.AgentResult {
	start := time.Now()

	actx, cancel := context.WithTimeout(ctx, o.agentTimeout)
	defer cancel()

	outcomes := make(chan pillars.Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcomes <- pillars.Failure(fmt.Errorf("agent panicked: %v", r))
			}
		}()
		outcomes <- agent.Analyze(actx, scenario)
	}()

	var outcome pillars.Outcome
	select {
	case outcome = <-outcomes:
	case <-actx.Done():
		outcome = pillars.Failure(fmt.Errorf("agent %q: %w", agent.Name(), actx.Err()))
	}

	result := models.AgentResult{
		Pillar:   agent.Name(),
		Duration: time.Since(start),
	}
	if report, ok := outcome.Report(); ok {
		result.Status = models.ResultSuccess
		result.Payload = report
		o.logger.Debug("pillar completed", "pillar", agent.Name(), "duration", result.Duration)
		return result
	}

	err := outcome.Err()
	if err == nil {
		err = errors.New("agent returned no report")
	}
	result.Status = models.ResultFailed
	result.Err = err.Error()
	o.logger.Warn("pillar failed", "pillar", agent.Name(), "error", err, "duration", result.Duration)
	return result
}
