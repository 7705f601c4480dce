// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"fmt"

	"github.com/luxfi/deployer/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Deployer

// deployer network
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect configured networks",
		Long: `The network command suite shows the networks plans can be deployed to.

Networks are configured under networks.<name> in ~/.deployer/config.yaml:

  networks:
    testnet:
      rpc: https://rpc.testnet.example.org
      chainId: 96368
      mnemonicEnv: TESTNET_MNEMONIC
      receiptTimeout: 5m

The local network (http://127.0.0.1:8545, dev node mnemonic) is always
available and can be overridden the same way.`,
		Run: func(cmd *cobra.Command, _ []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// deployer network list
	cmd.AddCommand(newListCmd())

	return cmd
}
