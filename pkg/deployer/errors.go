// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"fmt"

	"github.com/luxfi/deployer/pkg/records"
)

// AccountIndexOutOfRangeError reports an account reference or sender index
// outside the supplied account list.
type AccountIndexOutOfRangeError struct {
	Step     string
	Index    int
	Accounts int
}

func (e *AccountIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("step %q: account index %d out of range, %d accounts available", e.Step, e.Index, e.Accounts)
}

// UnresolvedDependencyError reports a reference to a step that has no
// deployed address.
type UnresolvedDependencyError struct {
	Step       string
	Dependency string
	Status     records.Status
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("step %q: dependency %q is not deployed (status %s)", e.Step, e.Dependency, e.Status)
}

// StepError wraps a failure while executing one step. Call is the index of
// the failing post-deploy call, or -1 when the deployment itself failed.
type StepError struct {
	Step   string
	Call   int
	Method string
	Err    error
}

func (e *StepError) Error() string {
	if e.Call < 0 {
		return fmt.Sprintf("step %q: deploy: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step %q: call %d (%s): %v", e.Step, e.Call, e.Method, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
