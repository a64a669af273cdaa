package blockchain

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CoerceArguments converts plan values to the Go types the ABI encoder expects
// for the given constructor inputs
func CoerceArguments(inputs abi.Arguments, values []any) ([]any, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(values))
	}

	out := make([]any, len(values))
	for i, input := range inputs {
		v, err := coerce(input.Type, values[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(typ abi.Type, value any) (any, error) {
	switch typ.T {
	case abi.AddressTy:
		return toAddress(value)
	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		return sizedInteger(typ, n)
	case abi.BoolTy:
		return toBool(value)
	case abi.StringTy:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected string, got %T", value)
	case abi.BytesTy:
		return toBytes(value)
	case abi.FixedBytesTy:
		b, err := toBytes(value)
		if err != nil {
			return nil, err
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", typ.Size, len(b))
		}
		arr := reflect.New(typ.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	case abi.SliceTy, abi.ArrayTy:
		return toList(typ, value)
	default:
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Type().AssignableTo(typ.GetType()) {
			return value, nil
		}
		return nil, fmt.Errorf("unsupported value %T", value)
	}
}

func toAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("invalid address %q", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("expected address, got %T", value)
	}
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		n, _ := big.NewFloat(v).Int(nil)
		return n, nil
	case string:
		n, ok := new(big.Int).SetString(strings.ReplaceAll(v, "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
}

// sizedInteger range checks n and converts it to the Go type of typ: intN and
// uintN up to 64 bits map to native integers, wider ones stay *big.Int
func sizedInteger(typ abi.Type, n *big.Int) (any, error) {
	if typ.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("%s is negative", n)
		}
		if n.BitLen() > typ.Size {
			return nil, fmt.Errorf("%s overflows uint%d", n, typ.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		minimum := new(big.Int).Neg(limit)
		if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%s overflows int%d", n, typ.Size)
		}
	}

	goType := typ.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}
	if typ.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	}
	return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("expected bool, got %T", value)
	}
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", v, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("expected hex bytes, got %T", value)
	}
}

func toList(typ abi.Type, value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Type().AssignableTo(typ.GetType()) {
			return value, nil
		}
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	if typ.T == abi.ArrayTy && len(items) != typ.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", typ.Size, len(items))
	}

	var list reflect.Value
	if typ.T == abi.ArrayTy {
		list = reflect.New(typ.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(typ.GetType(), len(items), len(items))
	}

	for i, item := range items {
		v, err := coerce(*typ.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(v))
	}
	return list.Interface(), nil
}
