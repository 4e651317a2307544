// Package pillars defines the capability contract between the orchestrator
// and the individual analysis domains, plus the built-in keyword/threshold
// agents that implement it.
package pillars

import (
	"context"

	"github.com/consilium-ai/consilium/internal/models"
)

// Agent is the single capability a pillar exposes. Implementations must be
// safe for concurrent use and must not panic past Analyze; the orchestrator
// installs a guard regardless.
type Agent interface {
	// Name returns the pillar identifier (e.g. "finance").
	Name() string

	// Analyze evaluates the scenario text and returns a structured outcome.
	// The scenario is read-only; blocking work must observe ctx.
	Analyze(ctx context.Context, scenario string) Outcome
}

// Outcome is the tagged result of one pillar invocation: either a report or
// an error, never both. Failure is a value here, not a Go error return, so
// aggregation code handles it explicitly.
type Outcome struct {
	report models.Report
	err    error
}

// Success wraps a pillar report.
func Success(report models.Report) Outcome {
	return Outcome{report: report}
}

// Failure wraps a pillar error.
func Failure(err error) Outcome {
	return Outcome{err: err}
}

// Report returns the payload and whether the outcome was successful.
func (o Outcome) Report() (models.Report, bool) {
	return o.report, o.err == nil && o.report != nil
}

// Err returns the failure cause, or nil on success.
func (o Outcome) Err() error { return o.err }

// Failed reports whether the invocation failed.
func (o Outcome) Failed() bool { return o.err != nil || o.report == nil }
