package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

func chainID(id uint64) *uint64 { return &id }

func TestResolveNetworkContext(t *testing.T) {
	ctx := context.Background()

	t.Run("sepolia", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)
		sink := &recordingSink{}

		resolver.On("ResolveNetwork", ctx, "sepolia").Return(&config.Network{
			Name:        "sepolia",
			ChainID:     chainID(11155111),
			RPCURL:      "https://1rpc.io/sepolia",
			ExplorerURL: "https://sepolia.etherscan.io",
		}, nil)
		signer.On("DeployerAddress", ctx).Return(testDeployer, nil)

		uc := usecase.NewResolveNetworkContext(resolver, signer, nil, sink, discardLogger())
		network, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{NetworkName: "sepolia"})
		require.NoError(t, err)

		assert.Equal(t, uint64(11155111), network.ChainID)
		assert.Equal(t, "sepolia", network.NetworkName)
		assert.Equal(t, testDeployer, network.DeployerAddress)
		assert.Equal(t, "https://1rpc.io/sepolia", network.RPCURL)
		require.Len(t, sink.events, 1)
		assert.Equal(t, usecase.StageNetworkResolved, sink.events[0].Stage)

		resolver.AssertExpectations(t)
		signer.AssertExpectations(t)
	})

	t.Run("missing chain id fails before touching the signer", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)

		resolver.On("ResolveNetwork", ctx, "hardhat").Return(&config.Network{
			Name:   "hardhat",
			RPCURL: "http://127.0.0.1:8545",
		}, nil)

		uc := usecase.NewResolveNetworkContext(resolver, signer, nil, usecase.NopProgress{}, discardLogger())
		network, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{NetworkName: "hardhat"})

		assert.Nil(t, network)
		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "hardhat", cfgErr.Network)
		assert.ErrorIs(t, err, domain.ErrMissingNetworkIdentifier)
		signer.AssertNotCalled(t, "DeployerAddress", mock.Anything)
	})

	t.Run("zero chain id counts as missing", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)

		resolver.On("ResolveNetwork", ctx, "local").Return(&config.Network{Name: "local", ChainID: chainID(0)}, nil)

		uc := usecase.NewResolveNetworkContext(resolver, signer, nil, usecase.NopProgress{}, discardLogger())
		_, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{NetworkName: "local"})
		assert.ErrorIs(t, err, domain.ErrMissingNetworkIdentifier)
	})

	t.Run("unknown network", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)

		resolver.On("ResolveNetwork", ctx, "sepolai").Return(nil, domain.ErrUnknownNetwork)

		uc := usecase.NewResolveNetworkContext(resolver, signer, nil, usecase.NopProgress{}, discardLogger())
		_, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{NetworkName: "sepolai"})

		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})

	t.Run("missing signer", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)

		resolver.On("ResolveNetwork", ctx, "sepolia").Return(&config.Network{Name: "sepolia", ChainID: chainID(11155111)}, nil)
		signer.On("DeployerAddress", ctx).Return(testDeployer, domain.ErrMissingSigner)

		uc := usecase.NewResolveNetworkContext(resolver, signer, nil, usecase.NopProgress{}, discardLogger())
		_, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{NetworkName: "sepolia"})

		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.ErrorIs(t, err, domain.ErrMissingSigner)
	})

	t.Run("no network selected in non-interactive mode", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)
		selector := new(MockNetworkSelector)

		resolver.On("GetNetworks", ctx).Return([]string{"ethereum", "sepolia"})

		uc := usecase.NewResolveNetworkContext(resolver, signer, selector, usecase.NopProgress{}, discardLogger())
		_, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{})

		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
		assert.Contains(t, err.Error(), "--network")
		selector.AssertNotCalled(t, "SelectNetwork", mock.Anything, mock.Anything)
	})

	t.Run("interactive pick", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		signer := new(MockSignerProvider)
		selector := new(MockNetworkSelector)

		networks := []string{"ethereum", "sepolia"}
		resolver.On("GetNetworks", ctx).Return(networks)
		selector.On("SelectNetwork", ctx, networks).Return("sepolia", nil)
		resolver.On("ResolveNetwork", ctx, "sepolia").Return(&config.Network{Name: "sepolia", ChainID: chainID(11155111)}, nil)
		signer.On("DeployerAddress", ctx).Return(testDeployer, nil)

		uc := usecase.NewResolveNetworkContext(resolver, signer, selector, usecase.NopProgress{}, discardLogger())
		network, err := uc.Run(ctx, usecase.ResolveNetworkContextParams{Interactive: true})
		require.NoError(t, err)
		assert.Equal(t, "sepolia", network.NetworkName)
		selector.AssertExpectations(t)
	})
}
