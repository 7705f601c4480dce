// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key loads the signing accounts a plan is executed with, either
// derived from a BIP39 mnemonic along the standard Ethereum path or read
// from raw private keys.
package key

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/go-bip39"
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrNoKeys          = errors.New("no mnemonic or private keys configured")
)

// Account is a signing account.
type Account struct {
	Index      int
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
	// Path is the HD derivation path, empty for raw private keys.
	Path string
}

// Source describes where accounts come from. PrivateKeys take precedence
// over Mnemonic.
type Source struct {
	Mnemonic    string
	PrivateKeys []string
	// Count is the number of accounts derived from Mnemonic.
	Count int
}

// Load returns the accounts described by src.
func Load(src Source) ([]*Account, error) {
	if len(src.PrivateKeys) > 0 {
		return FromPrivateKeys(src.PrivateKeys)
	}
	if strings.TrimSpace(src.Mnemonic) == "" {
		return nil, ErrNoKeys
	}
	return FromMnemonic(src.Mnemonic, src.Count)
}

// FromMnemonic derives count accounts at m/44'/60'/0'/0/i, the layout used
// by Ganache, Hardhat and Truffle development nodes.
func FromMnemonic(mnemonic string, count int) ([]*Account, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	if count <= 0 {
		return nil, fmt.Errorf("account count must be positive, got %d", count)
	}
	seed := bip39.NewSeed(mnemonic, "")

	// m/44'/60'/0'/0 is shared by every account
	change, err := deriveChange(seed)
	if err != nil {
		return nil, err
	}
	accounts := make([]*Account, 0, count)
	for i := 0; i < count; i++ {
		addressKey, err := change.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("failed to derive address key %d: %w", i, err)
		}
		ecPrivKey, err := addressKey.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("failed to get EC private key %d: %w", i, err)
		}
		a := newAccount(i, ecPrivKey.ToECDSA())
		a.Path = fmt.Sprintf("%s/%d", constants.DerivationPathPrefix, i)
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func deriveChange(seed []byte) (*hdkeychain.ExtendedKey, error) {
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	purpose, err := masterKey.Derive(hdkeychain.HardenedKeyStart + 44)
	if err != nil {
		return nil, fmt.Errorf("failed to derive purpose: %w", err)
	}
	coinType, err := purpose.Derive(hdkeychain.HardenedKeyStart + 60)
	if err != nil {
		return nil, fmt.Errorf("failed to derive coin type: %w", err)
	}
	account, err := coinType.Derive(hdkeychain.HardenedKeyStart + 0)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	change, err := account.Derive(0)
	if err != nil {
		return nil, fmt.Errorf("failed to derive change: %w", err)
	}
	return change, nil
}

// FromPrivateKeys loads one account per hex encoded private key.
func FromPrivateKeys(keys []string) ([]*Account, error) {
	accounts := make([]*Account, 0, len(keys))
	for i, k := range keys {
		k = strings.TrimPrefix(strings.TrimSpace(k), "0x")
		pk, err := crypto.HexToECDSA(k)
		if err != nil {
			return nil, fmt.Errorf("invalid private key %d: %w", i, err)
		}
		accounts = append(accounts, newAccount(i, pk))
	}
	if len(accounts) == 0 {
		return nil, ErrNoKeys
	}
	return accounts, nil
}

// SplitKeys splits a comma or whitespace separated key list.
func SplitKeys(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}

// Addresses returns the checksummed addresses of accounts, in order.
func Addresses(accounts []*Account) []string {
	addrs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		addrs = append(addrs, a.Address.Hex())
	}
	return addrs
}

func newAccount(index int, pk *ecdsa.PrivateKey) *Account {
	return &Account{
		Index:      index,
		Address:    common.Address(crypto.PubkeyToAddress(pk.PublicKey)),
		PrivateKey: pk,
	}
}
