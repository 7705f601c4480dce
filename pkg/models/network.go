// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/key"
)

// DevMnemonic is the well known mnemonic funded by Hardhat and Anvil dev
// nodes. It is only used for the built-in local network.
const DevMnemonic = "test test test test test test test test test test test junk"

// Network is a deployment target as configured under networks.<name>.
type Network struct {
	Name           string        `mapstructure:"-" yaml:"-"`
	RPC            string        `mapstructure:"rpc" yaml:"rpc"`
	ChainID        uint64        `mapstructure:"chainId" yaml:"chainId,omitempty"`
	Mnemonic       string        `mapstructure:"mnemonic" yaml:"mnemonic,omitempty"`
	MnemonicEnv    string        `mapstructure:"mnemonicEnv" yaml:"mnemonicEnv,omitempty"`
	PrivateKeys    []string      `mapstructure:"privateKeys" yaml:"privateKeys,omitempty"`
	PrivateKeysEnv string        `mapstructure:"privateKeysEnv" yaml:"privateKeysEnv,omitempty"`
	Accounts       int           `mapstructure:"accounts" yaml:"accounts,omitempty"`
	ReceiptTimeout time.Duration `mapstructure:"receiptTimeout" yaml:"receiptTimeout,omitempty"`
	GasLimit       uint64        `mapstructure:"gasLimit" yaml:"gasLimit,omitempty"`
	Artifacts      string        `mapstructure:"artifacts" yaml:"artifacts,omitempty"`
}

// LocalNetwork is the built-in development network.
func LocalNetwork() Network {
	return Network{
		Name:     constants.LocalNetwork,
		RPC:      constants.LocalRPCEndpoint,
		Mnemonic: DevMnemonic,
	}.WithDefaults()
}

// WithDefaults fills unset optional fields.
func (n Network) WithDefaults() Network {
	if n.Accounts == 0 {
		n.Accounts = constants.DefaultAccounts
	}
	if n.MnemonicEnv == "" {
		n.MnemonicEnv = constants.DefaultMnemonicEnv
	}
	if n.PrivateKeysEnv == "" {
		n.PrivateKeysEnv = constants.DefaultKeysEnv
	}
	if n.ReceiptTimeout == 0 {
		n.ReceiptTimeout = constants.DefaultReceiptTimeout
	}
	return n
}

func (n Network) Validate() error {
	if n.RPC == "" {
		return fmt.Errorf("network %s: rpc endpoint is required", n.Name)
	}
	if !strings.HasPrefix(n.RPC, "http://") && !strings.HasPrefix(n.RPC, "https://") &&
		!strings.HasPrefix(n.RPC, "ws://") && !strings.HasPrefix(n.RPC, "wss://") && !strings.HasSuffix(n.RPC, ".ipc") {
		return fmt.Errorf("network %s: unsupported rpc endpoint %q", n.Name, n.RPC)
	}
	if n.Accounts < 0 {
		return fmt.Errorf("network %s: accounts must not be negative", n.Name)
	}
	if n.ReceiptTimeout < 0 {
		return fmt.Errorf("network %s: receiptTimeout must not be negative", n.Name)
	}
	return nil
}

// ChainIDOrNil returns the expected chain id, or nil when any is accepted.
func (n Network) ChainIDOrNil() *big.Int {
	if n.ChainID == 0 {
		return nil
	}
	return new(big.Int).SetUint64(n.ChainID)
}

// KeySource returns where the network's accounts come from. Environment
// variables take precedence over values in the config file.
func (n Network) KeySource() (key.Source, error) {
	src := key.Source{Count: n.Accounts}
	if env := os.Getenv(n.PrivateKeysEnv); env != "" {
		src.PrivateKeys = key.SplitKeys(env)
	} else if len(n.PrivateKeys) > 0 {
		src.PrivateKeys = n.PrivateKeys
	}
	if env := os.Getenv(n.MnemonicEnv); env != "" {
		src.Mnemonic = env
	} else {
		src.Mnemonic = n.Mnemonic
	}
	if len(src.PrivateKeys) == 0 && src.Mnemonic == "" {
		return key.Source{}, errors.Join(
			constants.ErrNoAccounts,
			fmt.Errorf("set %s or %s, or configure networks.%s.mnemonic", n.MnemonicEnv, n.PrivateKeysEnv, n.Name),
		)
	}
	return src, nil
}
