package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Analysis completed with a usable recommendation
	ExitDegraded = 1 // Analysis completed but no pillar succeeded
	ExitError    = 2 // Configuration or runtime error
)

// DegradedAnalysisError indicates the analysis ran to completion but every
// pillar failed, so the recommendation is the neutral review-required
// fallback.
type DegradedAnalysisError struct {
	RunID string
}

func (e *DegradedAnalysisError) Error() string {
	return fmt.Sprintf("analysis %s degraded: no pillar completed successfully", e.RunID)
}

// exitCode maps an execute() error to the process exit code. Only the
// degraded case gets its own code; any verdict an analysis reaches,
// NOT_RECOMMENDED included, is a success.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var degradedErr *DegradedAnalysisError
	if errors.As(err, &degradedErr) {
		return ExitDegraded
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
