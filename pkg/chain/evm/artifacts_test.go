// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArtifactStoreLoadsTruffleLayout(t *testing.T) {
	require := require.New(t)
	store := NewArtifactStore(filepath.Join("testdata", "truffle"))

	a, err := store.Load("EOSSale")
	require.NoError(err)
	require.Equal("EOSSale", a.Name)
	require.Equal(filepath.Join("testdata", "truffle", "EOSSale.json"), a.Path)
	require.Len(a.ABI.Constructor.Inputs, 6)
	require.Contains(a.ABI.Methods, "initialize")
	require.True(a.ABI.Methods["dailyTotals"].IsConstant())
	require.Equal(byte(0x60), a.Bytecode[0])

	again, err := store.Load("EOSSale")
	require.NoError(err)
	require.Same(a, again)
}

func TestArtifactStoreLoadsFoundryLayout(t *testing.T) {
	require := require.New(t)
	store := NewArtifactStore(filepath.Join("testdata", "foundry"))

	a, err := store.Load("Vault")
	require.NoError(err)
	require.Equal("Vault", a.Name)
	require.Len(a.ABI.Constructor.Inputs, 3)
	require.Len(a.Bytecode, 39)
}

func TestArtifactStoreRejectsUndeployableArtifacts(t *testing.T) {
	store := NewArtifactStore(filepath.Join("testdata", "truffle"))
	tests := map[string]string{
		"Linked":   "unlinked library",
		"IToken":   "no bytecode",
		"Missing":  "not found",
		"../Vault": "invalid contract name",
	}
	for contract, msg := range tests {
		t.Run(contract, func(t *testing.T) {
			_, err := store.Load(contract)
			require.ErrorContains(t, err, msg)
		})
	}
	_, err := store.Load("Missing")
	require.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestParseArtifactRejectsMalformedDocuments(t *testing.T) {
	tests := map[string]string{
		"not json":     `{`,
		"no abi":       `{"bytecode": "0x6080"}`,
		"bad abi":      `{"abi": [{"type": "function", "name": "f", "inputs": [{"type": "strang"}]}], "bytecode": "0x6080"}`,
		"bad bytecode": `{"abi": [], "bytecode": "0xzz"}`,
		"odd bytecode": `{"abi": [], "bytecode": {"object": "0x608"}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact("C", []byte(doc))
			require.Error(t, err)
		})
	}
}
