// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/luxfi/deployer/pkg/chain"
	"github.com/luxfi/geth/core/types"
)

// transactionError wraps a transaction failure into a chain error carrying
// the tx hash, or no hash when the tx failed to be submitted.
func transactionError(op string, tx *types.Transaction, err error) error {
	cerr := &chain.ChainError{Op: op, Kind: classify(err), Err: err}
	if tx != nil {
		cerr.TxID = tx.Hash().Hex()
	}
	return cerr
}

func rejected(op string, err error) error {
	return &chain.ChainError{Op: op, Kind: chain.KindRejected, Err: err}
}

// classify sorts errors returned by the node or the transport.
func classify(err error) chain.ErrorKind {
	if errors.Is(err, context.Canceled) {
		return chain.KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return chain.KindTimeout
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return chain.KindNetwork
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "execution reverted"), strings.Contains(msg, "revert"):
		return chain.KindReverted
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "503 service unavailable"):
		return chain.KindNetwork
	}
	// insufficient funds, nonce and gas errors
	return chain.KindRejected
}
