// Copyright (C) 2022, Lux Partners Limited, All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"github.com/luxfi/deployer/cmd/flags"
	"github.com/luxfi/deployer/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Deployer

var (
	network      string
	showBalances bool
	useWei       bool
)

// deployer accounts
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the signing accounts of a network",
		Long: `The accounts command prints the accounts a plan is executed with on a
network, in index order. Plans refer to them as {account: <index>}.

Accounts are derived from the network mnemonic along m/44'/60'/0'/0/<index>,
or loaded from raw private keys when those are configured.`,
		Args:         cobra.NoArgs,
		RunE:         listAccounts,
		SilenceUsage: true,
	}
	flags.AddNetworkFlagToCmd(cmd, app, &network)
	cmd.Flags().BoolVarP(&showBalances, "balances", "b", false, "query the native balance of each account")
	cmd.Flags().BoolVar(&useWei, "wei", false, "print balances in wei instead of ether")

	return cmd
}
