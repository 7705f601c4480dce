// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package chain

import (
	"fmt"
	"time"
)

// ErrorKind classifies chain failures.
type ErrorKind string

const (
	// KindNetwork covers transport failures talking to the node.
	KindNetwork ErrorKind = "network"
	// KindRejected covers transactions refused before inclusion: bad
	// arguments, insufficient funds, gas estimation failures.
	KindRejected ErrorKind = "rejected"
	// KindReverted covers mined transactions with a failed status.
	KindReverted ErrorKind = "reverted"
	// KindTimeout covers receipts that did not arrive in time.
	KindTimeout ErrorKind = "timeout"
	// KindCanceled covers waits interrupted by the caller.
	KindCanceled ErrorKind = "canceled"
)

// ChainError is a network or transaction level failure. TxID is set when
// the transaction was submitted, in which case it may still be mined.
type ChainError struct {
	Op   string
	Kind ErrorKind
	TxID string
	Err  error
}

func (e *ChainError) Error() string {
	msg := fmt.Sprintf("%s failed (%s): %v", e.Op, e.Kind, e.Err)
	if e.TxID != "" {
		return msg + fmt.Sprintf(" (txHash=%s)", e.TxID)
	}
	return msg + " (tx failed to be submitted)"
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// Submitted reports whether the transaction reached the network.
func (e *ChainError) Submitted() bool {
	return e.TxID != ""
}

// TimeoutError reports a transaction whose receipt did not arrive within the
// configured wait.
type TimeoutError struct {
	TxID    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no receipt for transaction %s after %s", e.TxID, e.Timeout)
}
