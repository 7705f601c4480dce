// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
)

// Observer receives step lifecycle events. Methods are called from the
// executing goroutine and must not block for long.
type Observer interface {
	StepStarted(step *plan.Step)
	StepSkipped(step *plan.Step, rec *records.ExecutionRecord)
	CallApplied(step *plan.Step, call *plan.Call, rec *records.CallRecord)
	StepCompleted(step *plan.Step, rec *records.ExecutionRecord)
	StepFailed(step *plan.Step, rec *records.ExecutionRecord, err error)
}

type nopObserver struct{}

func (nopObserver) StepStarted(*plan.Step) {}
func (nopObserver) StepSkipped(*plan.Step, *records.ExecutionRecord) {}
func (nopObserver) CallApplied(*plan.Step, *plan.Call, *records.CallRecord) {}
func (nopObserver) StepCompleted(*plan.Step, *records.ExecutionRecord) {}
func (nopObserver) StepFailed(*plan.Step, *records.ExecutionRecord, error) {}
