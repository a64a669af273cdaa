package usecase

import (
	"context"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name string
	// ChainID is nil when the network declares none; such networks cannot be deployed to
	ChainID *uint64
	RPCURL  string
	Error   error
}

// Deployable reports whether a deployment can run on the network
func (s NetworkStatus) Deployable() bool {
	return s.Error == nil && s.ChainID != nil && *s.ChainID != 0
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
