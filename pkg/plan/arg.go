// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/luxfi/geth/common/hexutil"
	"gopkg.in/yaml.v3"
)

// ArgKind tags the variant held by an Arg.
type ArgKind int

const (
	ArgLiteral ArgKind = iota + 1
	ArgAccount
	ArgStepOutput
	ArgList
)

// FieldAddress is the only step output that can be referenced.
const FieldAddress = "address"

func (k ArgKind) String() string {
	switch k {
	case ArgLiteral:
		return "literal"
	case ArgAccount:
		return "account"
	case ArgStepOutput:
		return "step-output"
	case ArgList:
		return "list"
	}
	return "unknown"
}

// Arg describes a constructor or call argument.
//
// Literal values are one of string, *big.Int, bool or []byte. Account and
// step output references are resolved to addresses at execution time.
type Arg struct {
	Kind    ArgKind
	Value   any
	Account int
	Step    string
	Field   string
	Items   []Arg
}

// Literal builds a literal argument. Go integer types are widened to *big.Int.
func Literal(v any) Arg {
	switch x := v.(type) {
	case int:
		v = big.NewInt(int64(x))
	case int64:
		v = big.NewInt(x)
	case uint64:
		v = new(big.Int).SetUint64(x)
	}
	return Arg{Kind: ArgLiteral, Value: v}
}

// AccountRef references the account at index in the caller supplied list.
func AccountRef(index int) Arg {
	return Arg{Kind: ArgAccount, Account: index}
}

// AddressOf references the on-chain address produced by step.
func AddressOf(step string) Arg {
	return Arg{Kind: ArgStepOutput, Step: step, Field: FieldAddress}
}

// List groups arguments into an array argument.
func List(items ...Arg) Arg {
	return Arg{Kind: ArgList, Items: items}
}

// StepRefs returns the ids of every step referenced by the argument.
func (a Arg) StepRefs() []string {
	switch a.Kind {
	case ArgStepOutput:
		return []string{a.Step}
	case ArgList:
		var refs []string
		for _, item := range a.Items {
			refs = append(refs, item.StepRefs()...)
		}
		return refs
	}
	return nil
}

// AccountRefs returns every account index referenced by the argument.
func (a Arg) AccountRefs() []int {
	switch a.Kind {
	case ArgAccount:
		return []int{a.Account}
	case ArgList:
		var refs []int
		for _, item := range a.Items {
			refs = append(refs, item.AccountRefs()...)
		}
		return refs
	}
	return nil
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgLiteral:
		return FormatValue(a.Value)
	case ArgAccount:
		return fmt.Sprintf("accounts[%d]", a.Account)
	case ArgStepOutput:
		return fmt.Sprintf("%s-of(%s)", a.Field, a.Step)
	case ArgList:
		parts := make([]string, 0, len(a.Items))
		for _, item := range a.Items {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<invalid>"
}

// FormatValue renders a literal or resolved argument value for logs and
// execution records.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case *big.Int:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []byte:
		return hexutil.Encode(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, FormatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}

// UnmarshalYAML decodes the plan file encodings of an argument:
//
//	"text" | 42 | true                 literal
//	{wei: "0.5 ether"}                 integer literal with unit
//	{bytes: "0x0102"} | {ascii: "EOS"} byte literal
//	{account: 0}                       account reference
//	{ref: token, field: address}       step output reference
//	[ ... ]                            list
func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return a.decodeScalar(node)
	case yaml.SequenceNode:
		items := make([]Arg, 0, len(node.Content))
		for _, child := range node.Content {
			var item Arg
			if err := item.UnmarshalYAML(child); err != nil {
				return err
			}
			items = append(items, item)
		}
		*a = List(items...)
		return nil
	case yaml.MappingNode:
		return a.decodeMapping(node)
	case yaml.AliasNode:
		return a.UnmarshalYAML(node.Alias)
	}
	return fmt.Errorf("line %d: unsupported argument", node.Line)
}

var bigInteger = regexp.MustCompile(`^[-+]?[0-9][0-9_]*$`)

func (a *Arg) decodeScalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!int":
		// unquoted addresses resolve as hex integers; keep the text and let
		// the chain client coerce it against the parameter type
		if strings.HasPrefix(node.Value, "0x") || strings.HasPrefix(node.Value, "0X") {
			*a = Literal(node.Value)
			return nil
		}
		n, ok := new(big.Int).SetString(node.Value, 0)
		if !ok {
			return fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
		}
		*a = Literal(n)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*a = Literal(b)
	case "!!float":
		// integers wider than 64 bits resolve as floats
		if bigInteger.MatchString(node.Value) {
			n, ok := new(big.Int).SetString(strings.ReplaceAll(node.Value, "_", ""), 10)
			if !ok {
				return fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
			}
			*a = Literal(n)
			return nil
		}
		return fmt.Errorf("line %d: floating point argument %q is not supported, use {wei: \"<amount> <unit>\"} or an integer", node.Line, node.Value)
	case "!!null":
		return fmt.Errorf("line %d: null argument", node.Line)
	default:
		*a = Literal(node.Value)
	}
	return nil
}

func (a *Arg) decodeMapping(node *yaml.Node) error {
	fields := map[string]*yaml.Node{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	scalar := func(key string) (string, error) {
		v := fields[key]
		if v.Kind != yaml.ScalarNode {
			return "", fmt.Errorf("line %d: %q must be a scalar", v.Line, key)
		}
		return v.Value, nil
	}
	only := func(keys ...string) error {
		allowed := map[string]bool{}
		for _, k := range keys {
			allowed[k] = true
		}
		for k := range fields {
			if !allowed[k] {
				return fmt.Errorf("line %d: unexpected key %q in argument", node.Line, k)
			}
		}
		return nil
	}

	switch {
	case fields["wei"] != nil:
		if err := only("wei"); err != nil {
			return err
		}
		s, err := scalar("wei")
		if err != nil {
			return err
		}
		wei, err := ParseAmount(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*a = Literal(wei)
	case fields["bytes"] != nil:
		if err := only("bytes"); err != nil {
			return err
		}
		s, err := scalar("bytes")
		if err != nil {
			return err
		}
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
		if err != nil {
			return fmt.Errorf("line %d: invalid hex bytes %q: %w", node.Line, s, err)
		}
		*a = Literal(b)
	case fields["ascii"] != nil:
		if err := only("ascii"); err != nil {
			return err
		}
		s, err := scalar("ascii")
		if err != nil {
			return err
		}
		*a = Literal([]byte(s))
	case fields["account"] != nil:
		if err := only("account"); err != nil {
			return err
		}
		var index int
		if err := fields["account"].Decode(&index); err != nil {
			return fmt.Errorf("line %d: account index: %w", node.Line, err)
		}
		*a = AccountRef(index)
	case fields["ref"] != nil:
		if err := only("ref", "field"); err != nil {
			return err
		}
		step, err := scalar("ref")
		if err != nil {
			return err
		}
		ref := AddressOf(step)
		if fields["field"] != nil {
			if ref.Field, err = scalar("field"); err != nil {
				return err
			}
		}
		*a = ref
	default:
		return fmt.Errorf("line %d: argument must have one of wei, bytes, ascii, account or ref", node.Line)
	}
	return nil
}
