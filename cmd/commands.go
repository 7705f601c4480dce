// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

// Command names exported for testing
const (
	// DeployCmd is the deploy command name
	DeployCmd = "deploy"

	// PlanCmd is the plan command name
	PlanCmd = "plan"

	// StatusCmd is the status command name
	StatusCmd = "status"

	// AccountsCmd is the accounts command name
	AccountsCmd = "accounts"

	// NetworkCmd is the network command name
	NetworkCmd = "network"
)
