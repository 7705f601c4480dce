// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func TestDeployProgressEvents(t *testing.T) {
	require := require.New(t)
	buf := &syncBuffer{}
	p := NewDeployProgress(NewUserLogWithWriter(luxlog.NewNoOpLogger(), buf), 2, time.Hour)
	require.Nil(p.bar)

	token := &plan.Step{ID: "token", Contract: "EOSToken"}
	sale := &plan.Step{ID: "sale", Contract: "EOSSale", Calls: []plan.Call{{Target: "token", Method: "setOwner"}}}

	p.StepSkipped(token, &records.ExecutionRecord{StepID: "token", Address: "0x01"})
	p.StepStarted(sale)
	p.CallApplied(sale, &sale.Calls[0], &records.CallRecord{Index: 0, Method: "setOwner", Target: "token", TxID: "0xaa"})
	p.StepCompleted(sale, &records.ExecutionRecord{StepID: "sale", Address: "0x02"})
	p.Finish(records.Records{
		"token": {Status: records.StatusComplete},
		"sale":  {Status: records.StatusComplete},
	})

	out := buf.String()
	require.Contains(out, "token already deployed at 0x01, skipping")
	require.Contains(out, "Deploying sale (EOSSale)...")
	require.Contains(out, "token.setOwner applied in tx 0xaa")
	require.Contains(out, "- 0x02")
	require.Contains(out, "2 complete, 0 failed, 0 pending")
	require.NotContains(out, "Warning")
}

func TestDeployProgressSlowStep(t *testing.T) {
	require := require.New(t)
	buf := &syncBuffer{}
	p := NewDeployProgress(NewUserLogWithWriter(luxlog.NewNoOpLogger(), buf), 1, 0)
	p.interval = time.Millisecond

	step := &plan.Step{ID: "token", Contract: "EOSToken"}
	p.StepStarted(step)
	require.Eventually(func() bool {
		return strings.Contains(buf.String(), "taking longer than expected")
	}, time.Second, time.Millisecond)
	p.StepFailed(step, &records.ExecutionRecord{StepID: "token"}, errors.New("boom"))

	require.Equal(1, strings.Count(buf.String(), "taking longer than expected"))
	require.Contains(buf.String(), "FAILED: boom")
}
