// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"math/big"
	"regexp"
	"strconv"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Validate checks the plan structure: names, unique step ids, known
// references and well formed arguments. Cycles are reported by Order.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return invalid("", "plan name is required")
	}
	if !identifierRe.MatchString(p.Name) {
		return invalid("", "plan name %q may only contain letters, digits, '.', '_' and '-'", p.Name)
	}
	if len(p.Steps) == 0 {
		return invalid("", "plan %q has no steps", p.Name)
	}
	seen := make(map[string]bool, len(p.Steps))
	for _, s := range p.Steps {
		if s.ID == "" {
			return invalid("", "step with contract %q has no id", s.Contract)
		}
		if !identifierRe.MatchString(s.ID) {
			return invalid(s.ID, "id may only contain letters, digits, '.', '_' and '-'")
		}
		if seen[s.ID] {
			return invalid(s.ID, "duplicate step id")
		}
		seen[s.ID] = true
	}
	for i := range p.Steps {
		if err := p.validateStep(&p.Steps[i], seen); err != nil {
			return err
		}
	}
	return nil
}

func (*Plan) validateStep(s *Step, ids map[string]bool) error {
	if s.Contract == "" {
		return invalid(s.ID, "contract is required")
	}
	if s.From != nil && *s.From < 0 {
		return invalid(s.ID, "sender account index %d is negative", *s.From)
	}
	for i, a := range s.Args {
		if err := validateArg(s.ID, a, ids); err != nil {
			err.Reason = "constructor argument " + strconv.Itoa(i) + ": " + err.Reason
			return err
		}
	}
	for i, c := range s.Calls {
		if c.Method == "" {
			return invalid(s.ID, "call %d has no method", i)
		}
		if c.Target != "" && !ids[c.Target] {
			return invalid(s.ID, "call %d (%s) targets unknown step %q", i, c.Method, c.Target)
		}
		if c.From != nil && *c.From < 0 {
			return invalid(s.ID, "call %d (%s) sender account index %d is negative", i, c.Method, *c.From)
		}
		for j, a := range c.Args {
			if err := validateArg(s.ID, a, ids); err != nil {
				err.Reason = "call " + strconv.Itoa(i) + " (" + c.Method + ") argument " + strconv.Itoa(j) + ": " + err.Reason
				return err
			}
		}
	}
	return nil
}

func validateArg(step string, a Arg, ids map[string]bool) *ValidationError {
	switch a.Kind {
	case ArgLiteral:
		switch a.Value.(type) {
		case string, *big.Int, bool, []byte:
			return nil
		}
		return invalid(step, "unsupported literal of type %T", a.Value)
	case ArgAccount:
		if a.Account < 0 {
			return invalid(step, "account index %d is negative", a.Account)
		}
		return nil
	case ArgStepOutput:
		if !ids[a.Step] {
			return invalid(step, "reference to unknown step %q", a.Step)
		}
		if a.Field != FieldAddress {
			return invalid(step, "unknown output field %q of step %q, only %q is available", a.Field, a.Step, FieldAddress)
		}
		return nil
	case ArgList:
		for i, item := range a.Items {
			if err := validateArg(step, item, ids); err != nil {
				err.Reason = "item " + strconv.Itoa(i) + ": " + err.Reason
				return err
			}
		}
		return nil
	}
	return invalid(step, "argument has no kind")
}
