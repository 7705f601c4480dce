// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
)

// CoerceArgs converts resolved plan values into the Go types the ABI
// encoder expects for inputs.
func CoerceArgs(inputs abi.Arguments, values []any) ([]interface{}, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(values))
	}
	out := make([]interface{}, 0, len(values))
	for i, in := range inputs {
		v, err := Coerce(in.Type, values[i])
		if err != nil {
			name := in.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, in.Type.String(), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Coerce converts v to the Go representation of t. v is one of string,
// *big.Int, bool, []byte or []any.
func Coerce(t abi.Type, v any) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(v)
	case abi.IntTy, abi.UintTy:
		return toInteger(t, v)
	case abi.BoolTy:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			switch strings.ToLower(x) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}
		return nil, mismatch(t, v)
	case abi.StringTy:
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte:
			return string(x), nil
		}
		return nil, mismatch(t, v)
	case abi.BytesTy:
		return toBytes(t, v)
	case abi.FixedBytesTy:
		b, err := toBytes(t, v)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("%d bytes do not fit in %s", len(b), t.String())
		}
		// right padded, like web3 asciiToHex values
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	case abi.SliceTy, abi.ArrayTy:
		items, ok := v.([]any)
		if !ok {
			return nil, mismatch(t, v)
		}
		if t.T == abi.ArrayTy && len(items) != t.Size {
			return nil, fmt.Errorf("%s needs %d elements, got %d", t.String(), t.Size, len(items))
		}
		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), len(items), len(items))
		} else {
			out = reflect.New(t.GetType()).Elem()
		}
		for i, item := range items {
			e, err := Coerce(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(e))
		}
		return out.Interface(), nil
	}
	return nil, fmt.Errorf("parameters of type %s are not supported", t.String())
}

func toAddress(v any) (common.Address, error) {
	switch x := v.(type) {
	case string:
		if !common.IsHexAddress(x) {
			return common.Address{}, fmt.Errorf("%q is not a hex address", x)
		}
		return common.HexToAddress(x), nil
	case []byte:
		if len(x) != common.AddressLength {
			return common.Address{}, fmt.Errorf("address must be %d bytes, got %d", common.AddressLength, len(x))
		}
		return common.BytesToAddress(x), nil
	}
	return common.Address{}, fmt.Errorf("cannot use %T as address", v)
}

func toInteger(t abi.Type, v any) (interface{}, error) {
	var n *big.Int
	switch x := v.(type) {
	case *big.Int:
		n = x
	case string:
		var ok bool
		n, ok = new(big.Int).SetString(x, 0)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", x)
		}
	default:
		return nil, mismatch(t, v)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for %s", n, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		upper := new(big.Int).Sub(limit, big.NewInt(1))
		lower := new(big.Int).Neg(limit)
		if n.Cmp(upper) > 0 || n.Cmp(lower) < 0 {
			return nil, fmt.Errorf("%s out of range for %s", n, t.String())
		}
	}

	goType := t.GetType()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
	}
	return new(big.Int).Set(n), nil
}

func toBytes(t abi.Type, v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		if !strings.HasPrefix(x, "0x") && !strings.HasPrefix(x, "0X") {
			return nil, fmt.Errorf("%q is not hex, use {ascii: ...} for text", x)
		}
		b, err := hexutil.Decode("0x" + x[2:])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", x, err)
		}
		return b, nil
	}
	return nil, mismatch(t, v)
}

func mismatch(t abi.Type, v any) error {
	return fmt.Errorf("cannot use %T value %v as %s", v, v, t.String())
}

// formatOutputs renders decoded return values the way arguments are
// recorded.
func formatOutputs(values []interface{}) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		switch x := v.(type) {
		case common.Address:
			out = append(out, x.Hex())
		default:
			out = append(out, x)
		}
	}
	return out
}
