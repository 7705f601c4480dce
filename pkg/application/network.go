// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"fmt"
	"os"

	"github.com/luxfi/deployer/pkg/chain/evm"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/key"
	"github.com/luxfi/deployer/pkg/models"
	"go.uber.org/zap"
)

// GetNetwork returns the configured network called name.
func (app *Deployer) GetNetwork(name string) (models.Network, error) {
	return app.Conf.Network(name)
}

// LoadAccounts returns the signing accounts of network.
func (app *Deployer) LoadAccounts(network models.Network) ([]*key.Account, error) {
	src, err := network.KeySource()
	if err != nil {
		return nil, err
	}
	accounts, err := key.Load(src)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", network.Name, err)
	}
	app.Log.Debug("loaded accounts",
		zap.String("network", network.Name),
		zap.Int("accounts", len(accounts)),
	)
	return accounts, nil
}

// ResolveArtifactsDir picks the artifact directory: the first non empty of
// the given candidates, else the Truffle build directory if it exists, else
// the Foundry output directory.
func ResolveArtifactsDir(candidates ...string) string {
	for _, dir := range candidates {
		if dir != "" {
			return dir
		}
	}
	if info, err := os.Stat(constants.TruffleArtifactsDir); err == nil && info.IsDir() {
		return constants.TruffleArtifactsDir
	}
	return constants.FoundryArtifactsDir
}

// DialNetwork connects to network and signs with accounts.
func (app *Deployer) DialNetwork(
	ctx context.Context,
	network models.Network,
	accounts []*key.Account,
	artifactsDir string,
) (*evm.Client, error) {
	app.Log.Info("connecting to network",
		zap.String("network", network.Name),
		zap.String("rpc", network.RPC),
		zap.String("artifacts", artifactsDir),
	)
	client, err := evm.Dial(ctx, evm.Config{
		RPC:            network.RPC,
		ChainID:        network.ChainIDOrNil(),
		Accounts:       accounts,
		Artifacts:      artifactsDir,
		ReceiptTimeout: network.ReceiptTimeout,
		GasLimit:       network.GasLimit,
		Log:            app.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", network.Name, err)
	}
	return client, nil
}
