// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
)

// GenerateEthAddrs returns count addresses of fresh random keys.
func GenerateEthAddrs(count int) ([]string, error) {
	addrs := make([]string, count)
	for i := 0; i < count; i++ {
		pk, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		addrs[i] = common.Address(crypto.PubkeyToAddress(pk.PublicKey)).Hex()
	}
	return addrs, nil
}
