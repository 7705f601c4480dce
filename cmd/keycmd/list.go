// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/luxfi/deployer/pkg/chain/evm"
	"github.com/luxfi/deployer/pkg/key"
	"github.com/luxfi/deployer/pkg/ux"
	"github.com/spf13/cobra"
)

type accountInfo struct {
	index   int
	address string
	source  string
	balance string
}

func listAccounts(cmd *cobra.Command, _ []string) error {
	n, err := app.GetNetwork(network)
	if err != nil {
		return err
	}
	accounts, err := app.LoadAccounts(n)
	if err != nil {
		return err
	}

	var client *evm.Client
	if showBalances {
		client, err = app.DialNetwork(cmd.Context(), n, accounts, "")
		if err != nil {
			return err
		}
		defer client.Close()
	}
	infos, err := getAccountInfos(cmd.Context(), client, accounts)
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Accounts of %s (%s)", n.Name, n.RPC)
	return printAccountInfos(infos)
}

func getAccountInfos(ctx context.Context, client *evm.Client, accounts []*key.Account) ([]accountInfo, error) {
	infos := make([]accountInfo, 0, len(accounts))
	for _, a := range accounts {
		info := accountInfo{index: a.Index, address: a.Address.Hex(), source: a.Path}
		if info.source == "" {
			info.source = "private key"
		}
		if client != nil {
			balance, err := client.Balance(ctx, info.address)
			if err != nil {
				return nil, fmt.Errorf("failed to get balance of %s: %w", info.address, err)
			}
			info.balance = formatBalance(balance)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func formatBalance(balance *big.Int) string {
	if useWei {
		return balance.String()
	}
	return ux.FormatEther(balance)
}

func printAccountInfos(infos []accountInfo) error {
	headers := []string{"Index", "Address", "Key"}
	if showBalances {
		headers = append(headers, "Balance")
	}
	table := ux.DefaultTable(ux.Logger.Writer(), headers...)
	for _, info := range infos {
		row := []string{strconv.Itoa(info.index), info.address, info.source}
		if showBalances {
			row = append(row, info.balance)
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
