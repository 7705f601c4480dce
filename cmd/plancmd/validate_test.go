// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plancmd

import (
	"strings"
	"testing"

	"github.com/luxfi/deployer/internal/testutils"
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestValidatePrintsOrder(t *testing.T) {
	require := require.New(t)
	injected, output := testutils.SetupTestInTempDir(t)
	app = injected
	path := testutils.WritePlan(t, `
name: multisig
steps:
  - id: vault
    contract: Vault
    args: [{ref: registry}]
    calls:
      - method: setRequired
        args: [2]
  - id: registry
    contract: Registry
`)

	require.NoError(validatePlan(&cobra.Command{}, []string{path}))
	out := output.String()
	require.Less(strings.Index(out, "Registry"), strings.Index(out, "Vault"))
	require.Contains(out, "setRequired")
	require.Contains(out, "Plan multisig is valid (2 steps)")
}

func TestValidateRejectsCycle(t *testing.T) {
	injected, _ := testutils.SetupTestInTempDir(t)
	app = injected
	path := testutils.WritePlan(t, `
name: loop
steps:
  - id: a
    contract: A
    args: [{ref: b}]
  - id: b
    contract: B
    args: [{ref: a}]
`)

	err := validatePlan(&cobra.Command{}, []string{path})
	var cycleErr *plan.CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
}
