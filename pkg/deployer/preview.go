// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
)

// Action is what Execute would do with a step.
type Action string

const (
	ActionDeploy Action = "deploy"
	ActionSkip   Action = "skip"
	// ActionCalls reuses the deployed contract and applies the calls not
	// applied yet.
	ActionCalls Action = "apply calls"
	// ActionReconcile looks up an earlier deployment or call transaction
	// before deciding whether to send it again.
	ActionReconcile Action = "check earlier tx"
)

// PlannedStep is one entry of a preview.
type PlannedStep struct {
	Step         *plan.Step
	Action       Action
	PendingCalls int
}

// Preview returns what Execute would do for each step of p, in execution
// order, given n accounts and the prior records. It runs the same checks
// as Execute but never contacts the chain.
func Preview(p *plan.Plan, n int, prior records.Records) ([]PlannedStep, error) {
	order, err := p.Order()
	if err != nil {
		return nil, err
	}
	if err := CheckAccounts(order, n); err != nil {
		return nil, err
	}
	out := make([]PlannedStep, 0, len(order))
	for _, s := range order {
		rec := prior[s.ID]
		ps := PlannedStep{Step: s}
		for i := range s.Calls {
			if rec == nil || !rec.CallApplied(i) {
				ps.PendingCalls++
			}
		}
		switch {
		case rec == nil:
			ps.Action = ActionDeploy
		case rec.Address == "" && rec.TxID != "", rec.PendingCall != nil:
			ps.Action = ActionReconcile
		case rec.Address == "":
			ps.Action = ActionDeploy
		case ps.PendingCalls == 0:
			ps.Action = ActionSkip
		default:
			ps.Action = ActionCalls
		}
		out = append(out, ps)
	}
	return out, nil
}
