package config

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/trebuchet-org/stake-deployer/internal/config"
	domainconfig "github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
	log      *slog.Logger

	mu       sync.Mutex
	resolved map[string]*domainconfig.Network
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver, log *slog.Logger) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
		log:      log.With("component", "NetworkResolver"),
		resolved: make(map[string]*domainconfig.Network),
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name to its configuration. Successful
// resolutions are cached for the lifetime of the adapter.
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if network, ok := a.resolved[networkName]; ok {
		return network, nil
	}

	network, err := a.resolver.Resolve(networkName)
	if err != nil {
		a.log.Debug("network resolution failed", "network", networkName, "error", err)
		return nil, err
	}

	chainID := "unset"
	if network.HasChainID() {
		chainID = strconv.FormatUint(*network.ChainID, 10)
	}
	a.log.Debug("network resolved", "network", network.Name, "chainId", chainID, "rpc", network.RPCURL != "")

	a.resolved[networkName] = network
	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
