// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed plan. It is always raised before any
// chain interaction.
type ValidationError struct {
	// Step is the offending step id, empty for plan level problems.
	Step   string
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Step == "" {
		return "invalid plan: " + e.Reason
	}
	return fmt.Sprintf("invalid plan: step %q: %s", e.Step, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(step string, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Step: step, Reason: fmt.Sprintf(format, args...)}
}

// CyclicDependencyError reports a dependency cycle. Cycle starts and ends
// with the same step id.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency between steps: " + strings.Join(e.Cycle, " -> ")
}
