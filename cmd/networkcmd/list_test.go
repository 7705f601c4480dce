// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"testing"

	"github.com/luxfi/deployer/internal/testutils"
	"github.com/luxfi/deployer/pkg/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestKeySource(t *testing.T) {
	tests := []struct {
		name string
		n    models.Network
		want string
	}{
		{"private keys", models.Network{PrivateKeys: []string{"0x01"}, Mnemonic: "word"}, "private keys"},
		{"dev mnemonic", models.LocalNetwork(), "dev mnemonic"},
		{"mnemonic", models.Network{Mnemonic: "secret words"}, "mnemonic"},
		{"environment", models.Network{MnemonicEnv: "M", PrivateKeysEnv: "K"}, "$M / $K"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, keySource(tt.n))
		})
	}
}

func TestListShowsLocalNetwork(t *testing.T) {
	require := require.New(t)
	injected, output := testutils.SetupTestInTempDir(t)
	app = injected

	require.NoError(runList(&cobra.Command{}, nil))
	out := output.String()
	require.Contains(out, "local")
	require.Contains(out, "http://127.0.0.1:8545")
	require.Contains(out, "dev mnemonic")
	require.NotContains(out, models.DevMnemonic)
}
