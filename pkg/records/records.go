// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package records holds the per step outcome of executing a plan and the
// execution log those outcomes are persisted to.
package records

import (
	"sort"
	"time"
)

// Status is the lifecycle state of a step.
type Status string

const (
	// StatusPending steps have not been deployed yet.
	StatusPending Status = "pending"
	// StatusDeployed steps have an on-chain address. Post-deploy calls may
	// still be outstanding.
	StatusDeployed Status = "deployed"
	// StatusComplete steps are deployed with every post-deploy call applied.
	StatusComplete Status = "complete"
	// StatusFailed steps hit an error during deployment or a call.
	StatusFailed Status = "failed"
)

// HasAddress reports whether a step in this status was deployed.
func (s Status) HasAddress() bool {
	return s == StatusDeployed || s == StatusComplete
}

// Known reports whether s is one of the defined statuses.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusDeployed, StatusComplete, StatusFailed:
		return true
	}
	return false
}

// CallRecord is an applied post-deploy call.
type CallRecord struct {
	Index  int    `json:"index"`
	Method string `json:"method"`
	Target string `json:"target"`
	TxID   string `json:"txId,omitempty"`
}

// ExecutionRecord is the outcome of one step.
type ExecutionRecord struct {
	StepID          string       `json:"stepId"`
	Contract        string       `json:"contract"`
	Status          Status       `json:"status"`
	Address         string       `json:"address,omitempty"`
	TxID            string       `json:"txId,omitempty"`
	ConstructorArgs []string     `json:"constructorArgs,omitempty"`
	Calls           []CallRecord `json:"calls,omitempty"`
	// PendingCall is a call whose transaction was sent but whose outcome is
	// not known yet. It is settled before the call is sent again.
	PendingCall     *CallRecord  `json:"pendingCall,omitempty"`
	Error           string       `json:"error,omitempty"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Deployed reports whether the step has an on-chain address.
func (r *ExecutionRecord) Deployed() bool {
	return r != nil && r.Address != "" && r.Status.HasAddress()
}

// CallApplied reports whether the post-deploy call at index was applied.
func (r *ExecutionRecord) CallApplied(index int) bool {
	for _, c := range r.Calls {
		if c.Index == index {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of r.
func (r *ExecutionRecord) Clone() *ExecutionRecord {
	c := *r
	c.ConstructorArgs = append([]string(nil), r.ConstructorArgs...)
	c.Calls = append([]CallRecord(nil), r.Calls...)
	if r.PendingCall != nil {
		pc := *r.PendingCall
		c.PendingCall = &pc
	}
	return &c
}

// Records maps step ids to their execution records.
type Records map[string]*ExecutionRecord

// Clone returns a deep copy of rs.
func (rs Records) Clone() Records {
	out := make(Records, len(rs))
	for id, r := range rs {
		out[id] = r.Clone()
	}
	return out
}

// Count returns how many records are in status.
func (rs Records) Count(status Status) int {
	n := 0
	for _, r := range rs {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the records in failed status, sorted by step id.
func (rs Records) Failed() []*ExecutionRecord {
	var failed []*ExecutionRecord
	for _, r := range rs {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].StepID < failed[j].StepID })
	return failed
}

// Succeeded reports whether every record is complete.
func (rs Records) Succeeded() bool {
	for _, r := range rs {
		if r.Status != StatusComplete {
			return false
		}
	}
	return len(rs) > 0
}
