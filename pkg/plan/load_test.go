// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const eosSalePlan = `
name: eos-sale
artifacts: build/contracts
steps:
  - id: token
    contract: DSToken
    args:
      - {ascii: EOS}
  - id: sale
    contract: EOSSale
    args:
      - 350
      - {wei: "1000000000 ether"}
      - 1700000000
      - {wei: "0.5 ether"}
      - "EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5SoW3Rg8A1C1kHfBypM5U"
    calls:
      - target: token
        method: setOwner
        args: [{ref: sale}]
      - method: initialize
        args: [{ref: token, field: address}]
  - id: wallet
    contract: MultiSigWallet
    from: 1
    value: 1 ether
    args:
      - [{account: 0}, {account: 1}]
      - 1
      - true
      - {bytes: "0x0102ff"}
      - 0x0000000000000000000000000000000000000000
`

func TestParsePlan(t *testing.T) {
	require := require.New(t)
	p, err := Parse([]byte(eosSalePlan))
	require.NoError(err)
	require.NoError(p.Validate())

	require.Equal("eos-sale", p.Name)
	require.Equal([]string{"token", "sale", "wallet"}, p.StepIDs())

	token, ok := p.Step("token")
	require.True(ok)
	require.Equal(Literal([]byte("EOS")), token.Args[0])

	sale, ok := p.Step("sale")
	require.True(ok)
	require.Len(sale.Args, 5)
	require.Equal(ArgLiteral, sale.Args[0].Kind)
	require.Equal(0, big.NewInt(350).Cmp(sale.Args[0].Value.(*big.Int)))
	supply, _ := new(big.Int).SetString("1000000000000000000000000000", 10)
	require.Equal(0, supply.Cmp(sale.Args[1].Value.(*big.Int)))
	require.Equal("500000000000000000", sale.Args[3].Value.(*big.Int).String())
	require.Equal("EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5SoW3Rg8A1C1kHfBypM5U", sale.Args[4].Value)

	require.Len(sale.Calls, 2)
	require.Equal("token", sale.Calls[0].TargetStep("sale"))
	require.Equal(AddressOf("sale"), sale.Calls[0].Args[0])
	require.Equal("sale", sale.Calls[1].TargetStep("sale"))
	require.Equal(AddressOf("token"), sale.Calls[1].Args[0])

	wallet, ok := p.Step("wallet")
	require.True(ok)
	require.Equal(1, wallet.Sender())
	require.Equal("1000000000000000000", wallet.Value.String())
	require.Equal(List(AccountRef(0), AccountRef(1)), wallet.Args[0])
	require.Equal(Literal(true), wallet.Args[2])
	require.Equal(Literal([]byte{0x01, 0x02, 0xff}), wallet.Args[3])
	require.Equal(Literal("0x0000000000000000000000000000000000000000"), wallet.Args[4])
}

func TestParseRejectsMalformedArguments(t *testing.T) {
	tests := map[string]string{
		"float":           "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [1.5]\n",
		"exponent":        "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [1e27]\n",
		"null":            "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [~]\n",
		"unknown arg key": "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [{reff: b}]\n",
		"mixed arg keys":  "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [{ref: b, account: 1}]\n",
		"bad hex":         "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [{bytes: zz}]\n",
		"bad unit":        "name: p\nsteps:\n  - id: a\n    contract: A\n    value: 1 finney\n",
		"unknown field":   "name: p\nsteps:\n  - id: a\n    contract: A\n    constructor: []\n",
		"empty":           "",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseAcceptsIntegersWiderThan64Bits(t *testing.T) {
	require := require.New(t)
	doc := "name: p\nsteps:\n  - id: a\n    contract: A\n    args: [1000000000000000000000000000, 1_000_000_000_000_000_000_000, -18446744073709551617]\n"
	p, err := Parse([]byte(doc))
	require.NoError(err)
	a, ok := p.Step("a")
	require.True(ok)
	require.Len(a.Args, 3)
	require.Equal("1000000000000000000000000000", a.Args[0].Value.(*big.Int).String())
	require.Equal("1000000000000000000000", a.Args[1].Value.(*big.Int).String())
	require.Equal("-18446744073709551617", a.Args[2].Value.(*big.Int).String())
}

func TestLoadReportsUnreadablePlanAsInvalid(t *testing.T) {
	require := require.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var verr *ValidationError
	require.ErrorAs(err, &verr)
	require.ErrorIs(err, os.ErrNotExist)
	require.ErrorContains(err, "failed to read plan file")
}

func TestLoadResolvesArtifactsRelativeToPlan(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(os.WriteFile(path, []byte(eosSalePlan), 0o600))

	p, err := Load(path)
	require.NoError(err)
	require.Equal(filepath.Join(dir, "build/contracts"), p.Artifacts)
}

func TestLoadAcceptsJSON(t *testing.T) {
	require := require.New(t)
	doc := `{"name": "json-plan", "steps": [` +
		`{"id": "token", "contract": "Token", "args": ["TKN", 18]},` +
		`{"id": "store", "contract": "TokenStore", "args": [{"ref": "token"}, {"wei": "0.002 ether"}]}` +
		`]}`
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(os.WriteFile(path, []byte(doc), 0o600))

	p, err := Load(path)
	require.NoError(err)
	order, err := p.Order()
	require.NoError(err)
	require.Equal([]string{"token", "store"}, stepIDs(order))
	require.Equal("2000000000000000", p.Steps[1].Args[1].Value.(*big.Int).String())
}
