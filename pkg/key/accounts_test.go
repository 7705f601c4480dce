// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const devMnemonic = "test test test test test test test test test test test junk"

func TestFromMnemonicMatchesDevNodes(t *testing.T) {
	require := require.New(t)
	accounts, err := FromMnemonic(devMnemonic, 3)
	require.NoError(err)
	require.Len(accounts, 3)
	require.Equal([]string{
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
	}, Addresses(accounts))
	for i, a := range accounts {
		require.Equal(i, a.Index)
		require.NotNil(a.PrivateKey)
		require.Equal(fmt.Sprintf("m/44'/60'/0'/0/%d", i), a.Path)
	}
}

func TestFromMnemonicNormalizesWhitespace(t *testing.T) {
	require := require.New(t)
	accounts, err := FromMnemonic("  test test test test test test\ttest test test test test   junk\n", 1)
	require.NoError(err)
	require.Equal("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", accounts[0].Address.Hex())
}

func TestFromMnemonicRejectsInvalidInput(t *testing.T) {
	_, err := FromMnemonic("test test test", 1)
	require.ErrorIs(t, err, ErrInvalidMnemonic)
	_, err = FromMnemonic(devMnemonic, 0)
	require.Error(t, err)
}

func TestFromPrivateKeys(t *testing.T) {
	require := require.New(t)
	accounts, err := FromPrivateKeys(SplitKeys(
		"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80, 59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	))
	require.NoError(err)
	require.Equal([]string{
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	}, Addresses(accounts))

	_, err = FromPrivateKeys([]string{"zz"})
	require.Error(err)
	_, err = FromPrivateKeys(nil)
	require.ErrorIs(err, ErrNoKeys)
}

func TestLoadPrefersPrivateKeys(t *testing.T) {
	require := require.New(t)
	accounts, err := Load(Source{
		Mnemonic:    devMnemonic,
		Count:       5,
		PrivateKeys: []string{"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"},
	})
	require.NoError(err)
	require.Equal([]string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}, Addresses(accounts))

	accounts, err = Load(Source{Mnemonic: devMnemonic, Count: 2})
	require.NoError(err)
	require.Len(accounts, 2)

	_, err = Load(Source{Count: 2})
	require.ErrorIs(err, ErrNoKeys)
}
