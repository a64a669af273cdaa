package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	resolver := new(MockNetworkResolver)

	resolver.On("GetNetworks", ctx).Return([]string{"hardhat", "sepolia", "typo"})
	resolver.On("ResolveNetwork", ctx, "hardhat").Return(&config.Network{Name: "hardhat", RPCURL: "http://127.0.0.1:8545"}, nil)
	resolver.On("ResolveNetwork", ctx, "sepolia").Return(&config.Network{Name: "sepolia", ChainID: chainID(11155111)}, nil)
	resolver.On("ResolveNetwork", ctx, "typo").Return(nil, domain.ErrUnknownNetwork)

	result, err := usecase.NewListNetworks(resolver).Run(ctx, usecase.ListNetworksParams{})
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	assert.False(t, result.Networks[0].Deployable())
	assert.Equal(t, "http://127.0.0.1:8545", result.Networks[0].RPCURL)
	assert.True(t, result.Networks[1].Deployable())
	assert.Equal(t, uint64(11155111), *result.Networks[1].ChainID)
	assert.ErrorIs(t, result.Networks[2].Error, domain.ErrUnknownNetwork)
}
