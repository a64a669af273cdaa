package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("SEPOLIA_RPC_URL", "https://rpc.example/sepolia")
	t.Setenv("EMPTY_VAR", "")

	tests := []struct {
		name        string
		rawValue    string
		want        string
		wantMissing []string
	}{
		{
			name:     "braced reference",
			rawValue: "${SEPOLIA_RPC_URL}",
			want:     "https://rpc.example/sepolia",
		},
		{
			name:     "bare reference with suffix",
			rawValue: "$SEPOLIA_RPC_URL/v2",
			want:     "https://rpc.example/sepolia/v2",
		},
		{
			name:     "hardcoded URL",
			rawValue: "https://1rpc.io/sepolia",
			want:     "https://1rpc.io/sepolia",
		},
		{
			name:        "unset variable",
			rawValue:    "${UNSET_DEPLOYER_TEST_VAR}",
			want:        "",
			wantMissing: []string{"UNSET_DEPLOYER_TEST_VAR"},
		},
		{
			name:        "empty variable",
			rawValue:    "https://${EMPTY_VAR}",
			want:        "https://",
			wantMissing: []string{"EMPTY_VAR"},
		},
		{
			name:     "empty string",
			rawValue: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := ExpandEnv(tt.rawValue)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
