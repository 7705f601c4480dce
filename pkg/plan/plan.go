// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package plan describes deployment plans: the steps to deploy, the
// arguments they take and the dependency order they must run in.
//
// A plan is network independent. Addresses of accounts and of previously
// deployed steps are expressed as references and only resolved when the
// plan is executed against a concrete network.
package plan

import (
	"math/big"
)

// Plan is the full dependency graph of steps for one deployment run.
type Plan struct {
	// Name identifies the plan. Execution logs are keyed by it.
	Name string `yaml:"name"`
	// Artifacts is the directory holding compiled contract artifacts.
	// Relative paths are resolved against the plan file location.
	Artifacts string `yaml:"artifacts,omitempty"`
	Steps     []Step `yaml:"steps"`
}

// Step is one contract deployment plus its post-deploy setup calls.
type Step struct {
	ID       string `yaml:"id"`
	Contract string `yaml:"contract"`
	Args     []Arg  `yaml:"args,omitempty"`
	Calls    []Call `yaml:"calls,omitempty"`
	// Value is the amount of native currency sent with the deployment.
	Value *Amount `yaml:"value,omitempty"`
	// From is the index of the sending account. Defaults to 0.
	From *int `yaml:"from,omitempty"`
}

// Call is a method invocation applied after a step has been deployed.
type Call struct {
	// Target is the step whose contract receives the call. Empty means
	// the step that owns the call.
	Target string  `yaml:"target,omitempty"`
	Method string  `yaml:"method"`
	Args   []Arg   `yaml:"args,omitempty"`
	Value  *Amount `yaml:"value,omitempty"`
	From   *int    `yaml:"from,omitempty"`
}

// Amount is a native currency amount expressed in wei.
type Amount struct {
	Wei *big.Int
}

// Step returns the step with the given id.
func (p *Plan) Step(id string) (*Step, bool) {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			return &p.Steps[i], true
		}
	}
	return nil, false
}

// StepIDs returns the step ids in declaration order.
func (p *Plan) StepIDs() []string {
	ids := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		ids = append(ids, s.ID)
	}
	return ids
}

// Sender returns the account index the step deploys from.
func (s *Step) Sender() int {
	if s.From == nil {
		return 0
	}
	return *s.From
}

// TargetStep returns the id of the step whose contract receives the call.
func (c *Call) TargetStep(owner string) string {
	if c.Target == "" {
		return owner
	}
	return c.Target
}

// Sender returns the account index the call is sent from, falling back to
// the owning step's sender.
func (c *Call) Sender(step *Step) int {
	if c.From == nil {
		return step.Sender()
	}
	return *c.From
}

// WeiOrNil returns the amount in wei, or nil when no amount is set.
func (a *Amount) WeiOrNil() *big.Int {
	if a == nil || a.Wei == nil {
		return nil
	}
	return new(big.Int).Set(a.Wei)
}
