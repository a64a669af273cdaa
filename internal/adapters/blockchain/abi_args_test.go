package blockchain

import (
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func constructorInputs(t *testing.T, types ...string) abi.Arguments {
	t.Helper()
	args := make(abi.Arguments, len(types))
	for i, typ := range types {
		parsed, err := abi.NewType(typ, "", nil)
		require.NoError(t, err)
		args[i] = abi.Argument{Type: parsed}
	}
	return args
}

func TestCoerceArguments(t *testing.T) {
	token := "0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"
	huge, _ := new(big.Int).SetString("1000000000000000000000", 10)

	tests := []struct {
		name   string
		types  []string
		values []any
		want   []any
	}{
		{
			name:   "stake core arguments",
			types:  []string{"address", "uint256", "uint256", "uint256"},
			values: []any{token, 180, 60, 1},
			want:   []any{common.HexToAddress(token), big.NewInt(180), big.NewInt(60), big.NewInt(1)},
		},
		{
			name:   "small integer types",
			types:  []string{"uint8", "uint64", "int32"},
			values: []any{1, uint64(60), -5},
			want:   []any{uint8(1), uint64(60), int32(-5)},
		},
		{
			name:   "big and string integers",
			types:  []string{"uint256", "uint256", "int256"},
			values: []any{huge, "0x10", "-1_000"},
			want:   []any{huge, big.NewInt(16), big.NewInt(-1000)},
		},
		{
			name:   "address values",
			types:  []string{"address", "address"},
			values: []any{common.HexToAddress(token), &common.Address{1}},
			want:   []any{common.HexToAddress(token), common.Address{1}},
		},
		{
			name:   "bool string and bytes",
			types:  []string{"bool", "string", "bytes", "bytes4"},
			values: []any{"true", "stake", "0x0102", "0xdeadbeef"},
			want:   []any{true, "stake", []byte{1, 2}, [4]byte{0xde, 0xad, 0xbe, 0xef}},
		},
		{
			name:   "lists",
			types:  []string{"address[]", "uint16[2]"},
			values: []any{[]any{token}, []any{1, 2}},
			want:   []any{[]common.Address{common.HexToAddress(token)}, [2]uint16{1, 2}},
		},
		{
			name:   "integral float",
			types:  []string{"uint256"},
			values: []any{float64(3)},
			want:   []any{big.NewInt(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceArguments(constructorInputs(t, tt.types...), tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// the result must be encodable
			_, err = constructorInputs(t, tt.types...).Pack(got...)
			assert.NoError(t, err)
		})
	}
}

func TestCoerceArguments_Errors(t *testing.T) {
	tests := []struct {
		name    string
		types   []string
		values  []any
		wantErr string
	}{
		{"arity", []string{"uint256"}, []any{1, 2}, "takes 1 arguments, got 2"},
		{"bad address", []string{"address"}, []any{"0x1234"}, "invalid address"},
		{"negative uint", []string{"uint256"}, []any{-1}, "negative"},
		{"overflow uint8", []string{"uint8"}, []any{256}, "overflows uint8"},
		{"overflow int8", []string{"int8"}, []any{128}, "overflows int8"},
		{"fraction", []string{"uint256"}, []any{1.5}, "not an integer"},
		{"fixed bytes length", []string{"bytes4"}, []any{"0x01"}, "expected 4 bytes"},
		{"array length", []string{"uint8[2]"}, []any{[]any{1}}, "expected 2 elements"},
		{"string type", []string{"string"}, []any{1}, "expected string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoerceArguments(constructorInputs(t, tt.types...), tt.values)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
