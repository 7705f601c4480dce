// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"strconv"

	"github.com/luxfi/deployer/pkg/models"
	"github.com/luxfi/deployer/pkg/ux"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List configured networks",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}
	return cmd
}

func runList(_ *cobra.Command, _ []string) error {
	if path := app.Conf.GetConfigPath(); path != "" {
		ux.Logger.PrintToUser("Configuration: %s", path)
	}
	table := ux.DefaultTable(ux.Logger.Writer(), "Name", "RPC", "Chain ID", "Accounts", "Keys", "Receipt Timeout")
	for _, name := range app.Conf.NetworkNames() {
		n, err := app.GetNetwork(name)
		if err != nil {
			return err
		}
		chainID := "any"
		if n.ChainID != 0 {
			chainID = strconv.FormatUint(n.ChainID, 10)
		}
		if err := table.Append([]string{
			n.Name,
			n.RPC,
			chainID,
			strconv.Itoa(n.Accounts),
			keySource(n),
			n.ReceiptTimeout.String(),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// keySource describes where the accounts of n come from without revealing
// any secret.
func keySource(n models.Network) string {
	switch {
	case len(n.PrivateKeys) > 0:
		return "private keys"
	case n.Mnemonic == models.DevMnemonic:
		return "dev mnemonic"
	case n.Mnemonic != "":
		return "mnemonic"
	}
	return "$" + n.MnemonicEnv + " / $" + n.PrivateKeysEnv
}
