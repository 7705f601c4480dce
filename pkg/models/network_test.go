// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"testing"

	"github.com/luxfi/deployer/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestLocalNetwork(t *testing.T) {
	require := require.New(t)
	n := LocalNetwork()
	require.NoError(n.Validate())
	require.Equal(constants.LocalRPCEndpoint, n.RPC)
	require.Equal(constants.DefaultAccounts, n.Accounts)
	require.Equal(constants.DefaultReceiptTimeout, n.ReceiptTimeout)
	require.Nil(n.ChainIDOrNil())
}

func TestKeySourcePrefersEnvironment(t *testing.T) {
	require := require.New(t)
	n := Network{
		Name:           "testnet",
		RPC:            "https://rpc.example",
		Mnemonic:       DevMnemonic,
		PrivateKeys:    []string{"0x01"},
		MnemonicEnv:    "TEST_DEPLOYER_MNEMONIC",
		PrivateKeysEnv: "TEST_DEPLOYER_KEYS",
	}.WithDefaults()

	src, err := n.KeySource()
	require.NoError(err)
	require.Equal([]string{"0x01"}, src.PrivateKeys)
	require.Equal(DevMnemonic, src.Mnemonic)

	t.Setenv("TEST_DEPLOYER_KEYS", "0x02,0x03")
	t.Setenv("TEST_DEPLOYER_MNEMONIC", "abandon abandon")
	src, err = n.KeySource()
	require.NoError(err)
	require.Equal([]string{"0x02", "0x03"}, src.PrivateKeys)
	require.Equal("abandon abandon", src.Mnemonic)
	require.Equal(constants.DefaultAccounts, src.Count)
}

func TestKeySourceRequiresCredentials(t *testing.T) {
	n := Network{Name: "mainnet", RPC: "https://rpc.example", MnemonicEnv: "UNSET_DEPLOYER_M", PrivateKeysEnv: "UNSET_DEPLOYER_K"}
	_, err := n.KeySource()
	require.ErrorIs(t, err, constants.ErrNoAccounts)
	require.ErrorContains(t, err, "UNSET_DEPLOYER_M")
}

func TestValidateNetwork(t *testing.T) {
	tests := map[string]Network{
		"missing rpc":      {Name: "x"},
		"unsupported rpc":  {Name: "x", RPC: "ftp://host"},
		"negative account": {Name: "x", RPC: "http://h", Accounts: -1},
	}
	for name, n := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, n.Validate())
		})
	}
	require.NoError(t, Network{Name: "ipc", RPC: "/tmp/geth.ipc"}.Validate())
}
