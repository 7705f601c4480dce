// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	negative := -1
	tests := []struct {
		name    string
		plan    Plan
		step    string
		wantErr bool
	}{
		{
			name: "valid",
			plan: Plan{Name: "ok", Steps: []Step{{ID: "a", Contract: "A", Args: []Arg{AccountRef(2), Literal("x")}}}},
		},
		{
			name:    "missing name",
			plan:    Plan{Steps: []Step{{ID: "a", Contract: "A"}}},
			wantErr: true,
		},
		{
			name:    "name with path separator",
			plan:    Plan{Name: "../escape", Steps: []Step{{ID: "a", Contract: "A"}}},
			wantErr: true,
		},
		{
			name:    "no steps",
			plan:    Plan{Name: "empty"},
			wantErr: true,
		},
		{
			name:    "duplicate id",
			plan:    Plan{Name: "dup", Steps: []Step{{ID: "a", Contract: "A"}, {ID: "a", Contract: "B"}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "missing contract",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a"}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "unknown reference",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Args: []Arg{AddressOf("ghost")}}}},
			step:    "a",
			wantErr: true,
		},
		{
			name: "unknown field",
			plan: Plan{Name: "p", Steps: []Step{
				{ID: "a", Contract: "A"},
				{ID: "b", Contract: "B", Args: []Arg{{Kind: ArgStepOutput, Step: "a", Field: "txId"}}},
			}},
			step:    "b",
			wantErr: true,
		},
		{
			name:    "negative account in list",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Args: []Arg{List(AccountRef(-1))}}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "negative sender",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", From: &negative}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "call without method",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Calls: []Call{{}}}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "call to unknown target",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Calls: []Call{{Target: "b", Method: "m"}}}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "unsupported literal",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Args: []Arg{{Kind: ArgLiteral, Value: 1.5}}}}},
			step:    "a",
			wantErr: true,
		},
		{
			name:    "zero value arg",
			plan:    Plan{Name: "p", Steps: []Step{{ID: "a", Contract: "A", Args: []Arg{{}}}}},
			step:    "a",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			err := tt.plan.Validate()
			if !tt.wantErr {
				require.NoError(err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(err, &verr)
			require.Equal(tt.step, verr.Step)
		})
	}
}

func TestLiteralWidensIntegers(t *testing.T) {
	require := require.New(t)
	require.Equal(0, big.NewInt(7).Cmp(Literal(7).Value.(*big.Int)))
	require.Equal(0, big.NewInt(-3).Cmp(Literal(int64(-3)).Value.(*big.Int)))
	require.Equal(0, new(big.Int).SetUint64(1<<63).Cmp(Literal(uint64(1<<63)).Value.(*big.Int)))
}

func TestArgString(t *testing.T) {
	a := List(AccountRef(0), AddressOf("token"), Literal([]byte{0xab}), Literal(big.NewInt(5)), Literal(false))
	require.Equal(t, "[accounts[0], address-of(token), 0xab, 5, false]", a.String())
}
