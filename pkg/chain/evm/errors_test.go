// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/luxfi/deployer/pkg/chain"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want chain.ErrorKind
	}{
		{err: fmt.Errorf("wait: %w", context.Canceled), want: chain.KindCanceled},
		{err: context.DeadlineExceeded, want: chain.KindTimeout},
		{err: &url.Error{Op: "Post", URL: "http://127.0.0.1:8545", Err: errors.New("dial tcp: connection refused")}, want: chain.KindNetwork},
		{err: errors.New("Post \"http://x\": EOF"), want: chain.KindNetwork},
		{err: errors.New("execution reverted: Ownable: caller is not the owner"), want: chain.KindReverted},
		{err: errors.New("insufficient funds for gas * price + value"), want: chain.KindRejected},
		{err: errors.New("nonce too low"), want: chain.KindRejected},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestTransactionErrorWithoutTx(t *testing.T) {
	require := require.New(t)
	err := transactionError("deploy Token", nil, errors.New("insufficient funds for gas * price + value"))
	var cerr *chain.ChainError
	require.ErrorAs(err, &cerr)
	require.False(cerr.Submitted())
	require.Equal(chain.KindRejected, cerr.Kind)
	require.Contains(err.Error(), "tx failed to be submitted")
}
