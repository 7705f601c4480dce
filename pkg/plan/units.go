// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/luxfi/geth/params"
	"gopkg.in/yaml.v3"
)

type unit struct {
	multiplier *big.Int
	decimals   int
}

var units = map[string]unit{
	"wei":   newUnit(params.Wei),
	"gwei":  newUnit(params.GWei),
	"ether": newUnit(params.Ether),
}

func newUnit(multiplier int64) unit {
	m := big.NewInt(multiplier)
	return unit{multiplier: m, decimals: len(m.String()) - 1}
}

// ParseAmount parses a non-negative integer amount with an optional unit,
// such as "42", "20 gwei" or "0.002 ether", and returns it in wei.
func ParseAmount(s string) (*big.Int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("invalid amount %q: expected <number> [wei|gwei|ether]", s)
	}
	u := units["wei"]
	if len(fields) == 2 {
		var ok bool
		u, ok = units[strings.ToLower(fields[1])]
		if !ok {
			return nil, fmt.Errorf("invalid amount %q: unknown unit %q", s, fields[1])
		}
	}
	number := strings.ReplaceAll(fields[0], "_", "")
	if strings.HasPrefix(number, "-") {
		return nil, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	whole, frac, hasFrac := strings.Cut(number, ".")
	if !isDigits(whole) || !isDigits(frac) || whole+frac == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if hasFrac && len(frac) > u.decimals {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimal places", s, u.decimals)
	}
	if whole == "" {
		whole = "0"
	}
	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	wei := new(big.Int).Mul(w, u.multiplier)
	if hasFrac && frac != "" {
		f, ok := new(big.Int).SetString(frac+strings.Repeat("0", u.decimals-len(frac)), 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
		wei.Add(wei, f)
	}
	return wei, nil
}

// UnmarshalYAML accepts either a bare integer (wei) or a string with a unit.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	wei, err := ParseAmount(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	a.Wei = wei
	return nil
}

// MarshalYAML renders the amount in wei.
func (a Amount) MarshalYAML() (interface{}, error) {
	if a.Wei == nil {
		return nil, nil
	}
	return a.Wei.String(), nil
}

// String renders the amount in wei.
func (a *Amount) String() string {
	if a == nil || a.Wei == nil {
		return "0"
	}
	return a.Wei.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
