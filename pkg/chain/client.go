// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain defines the collaborator the deployer submits transactions
// through. Implementations live in sub packages.
package chain

import (
	"context"
	"math/big"
)

// Client submits deployments and method calls to a network. Both operations
// block until the transaction is mined or the receipt wait times out, and
// report failures as *ChainError.
type Client interface {
	Deploy(ctx context.Context, req DeployRequest) (DeployResult, error)
	Call(ctx context.Context, req CallRequest) (CallResult, error)
}

// ReceiptLookup is implemented by clients that can tell whether a previously
// submitted transaction was eventually mined.
type ReceiptLookup interface {
	// LookupDeployment returns the contract address created by txID.
	// found is false when the network does not know a receipt for it.
	LookupDeployment(ctx context.Context, txID string) (address string, found bool, err error)
	// LookupCall reports whether the method call sent in txID was mined
	// successfully. applied is false when it was dropped or reverted; a
	// transaction still waiting in the pool is an error.
	LookupCall(ctx context.Context, txID string) (applied bool, err error)
}

// SubmittedFunc is called with the id of a transaction once it was sent and
// before its receipt is waited for.
type SubmittedFunc func(txID string)

// DeployRequest describes a contract deployment. Args hold resolved values:
// string, *big.Int, bool, []byte or []any of those.
type DeployRequest struct {
	Contract  string
	Args      []any
	Value     *big.Int
	From      string
	Submitted SubmittedFunc
}

type DeployResult struct {
	Address string
	TxID    string
}

// CallRequest describes a method invocation on a deployed contract.
type CallRequest struct {
	Contract  string
	Address   string
	Method    string
	Args      []any
	Value     *big.Int
	From      string
	Submitted SubmittedFunc
}

// CallResult holds the transaction id of a state changing call, or the
// decoded outputs of a read only one.
type CallResult struct {
	TxID    string
	Outputs []any
}
