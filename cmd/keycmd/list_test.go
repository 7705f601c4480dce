// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"context"
	"math/big"
	"testing"

	"github.com/luxfi/deployer/internal/testutils"
	"github.com/luxfi/deployer/pkg/key"
	"github.com/stretchr/testify/require"
)

func TestAccountTable(t *testing.T) {
	require := require.New(t)
	_, output := testutils.SetupTestInTempDir(t)
	showBalances, useWei = false, false
	t.Cleanup(func() { showBalances, useWei = false, false })

	derived, err := key.FromMnemonic("test test test test test test test test test test test junk", 1)
	require.NoError(err)
	raw, err := key.FromPrivateKeys([]string{"0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"})
	require.NoError(err)

	infos, err := getAccountInfos(context.Background(), nil, append(derived, raw...))
	require.NoError(err)
	require.NoError(printAccountInfos(infos))

	out := output.String()
	require.Contains(out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.Contains(out, "m/44'/60'/0'/0/0")
	require.Contains(out, "private key")
	require.NotContains(out, "BALANCE")
}

func TestFormatBalance(t *testing.T) {
	useWei = true
	t.Cleanup(func() { useWei = false })
	require.Equal(t, "1500000000000000000", formatBalance(big.NewInt(1_500_000_000_000_000_000)))
}
