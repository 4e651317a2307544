package orchestration

import (
	"context"
	"time"

	"github.com/consilium-ai/consilium/internal/models"
)

// EventKind identifies a streaming progress event.
type EventKind string

const (
	EventRunStarted      EventKind = "run_started"
	EventPillarStarted   EventKind = "pillar_started"
	EventPillarCompleted EventKind = "pillar_completed"
	EventPillarFailed    EventKind = "pillar_failed"
	EventRunCompleted    EventKind = "run_completed"
)

// Event is one streaming progress update. Pillar and Result are set on the
// pillar events; Run and Recommendation only on the terminal event.
type Event struct {
	Kind           EventKind                `json:"event"`
	RunID          string                   `json:"run_id"`
	Pillar         string                   `json:"pillar,omitempty"`
	Result         *models.AgentResult      `json:"result,omitempty"`
	Run            *models.OrchestrationRun `json:"run,omitempty"`
	Recommendation *models.Recommendation   `json:"recommendation,omitempty"`
	Err            string                   `json:"error,omitempty"`
	Timestamp      time.Time                `json:"timestamp"`
}

// RunWithUpdates validates the request, then analyzes the scenario while
// emitting progress events on the returned channel. Agents run one at a
// time so events arrive in dispatch order: run_started, a started/terminal
// pair per pillar, and run_completed carrying the full run and the
// synthesized recommendation. The channel is closed when the run ends or
// ctx is canceled.
func (o *Orchestrator) RunWithUpdates(ctx context.Context, req models.ScenarioRequest) (<-chan Event, error) {
	if err := o.ValidateRequest(req); err != nil {
		return nil, err
	}

	agents := o.selectAgents(req.Focus)
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}

	events := make(chan Event, o.eventBuffer)
	run := o.newRun(req, len(agents))

	go func() {
		defer close(events)

		run.Status = models.RunRunning
		if !emit(ctx, events, Event{Kind: EventRunStarted, RunID: run.RunID, Timestamp: time.Now()}) {
			return
		}

		for _, agent := range agents {
			if !emit(ctx, events, Event{
				Kind:      EventPillarStarted,
				RunID:     run.RunID,
				Pillar:    agent.Name(),
				Timestamp: time.Now(),
			}) {
				return
			}

			result := o.invoke(ctx, agent, req.Scenario)
			run.Results[result.Pillar] = result

			ev := Event{
				Kind:      EventPillarCompleted,
				RunID:     run.RunID,
				Pillar:    result.Pillar,
				Result:    &result,
				Timestamp: time.Now(),
			}
			if result.Failed() {
				ev.Kind = EventPillarFailed
				ev.Err = result.Err
			}
			if !emit(ctx, events, ev) {
				return
			}
		}

		o.finish(run)
		rec := o.engine.Synthesize(run, req.Weights)

		emit(ctx, events, Event{
			Kind:           EventRunCompleted,
			RunID:          run.RunID,
			Run:            run,
			Recommendation: rec,
			Timestamp:      time.Now(),
		})
	}()

	return events, nil
}

// emit delivers one event unless the consumer is gone.
func emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
