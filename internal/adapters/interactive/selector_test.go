package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/config"
	domainconfig "github.com/trebuchet-org/stake-deployer/internal/domain/config"
)

func newTestSelector(nonInteractive bool) *SelectorAdapter {
	sepolia := uint64(11155111)
	file := &domainconfig.DeployerFile{
		Networks: map[string]domainconfig.NetworkConfig{
			"sepolia": {ChainID: &sepolia},
			"hardhat": {RPCURL: "http://127.0.0.1:8545"},
		},
	}
	return NewSelectorAdapter(&domainconfig.RuntimeConfig{NonInteractive: nonInteractive}, config.NewNetworkResolver(file))
}

func TestSelectNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("non-interactive", func(t *testing.T) {
		_, err := newTestSelector(true).SelectNetwork(ctx, []string{"hardhat", "sepolia"})
		assert.ErrorContains(t, err, "non-interactive")
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := newTestSelector(false).SelectNetwork(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("single network needs no prompt", func(t *testing.T) {
		name, err := newTestSelector(false).SelectNetwork(ctx, []string{"sepolia"})
		require.NoError(t, err)
		assert.Equal(t, "sepolia", name)
	})
}

func TestFormatNetworkOptions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	options := newTestSelector(false).formatNetworkOptions([]string{"hardhat", "sepolia", "missing"})
	assert.Equal(t, []string{"hardhat [no chain_id]", "sepolia (chain 11155111)", "missing"}, options)
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"ethereum", "sepolia"})

	assert.True(t, search("", 0))
	assert.True(t, search("SEP", 1))
	assert.True(t, search("spl", 1))
	assert.False(t, search("xyz", 0))
}
