package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
)

// ResolveNetworkContextParams contains parameters for resolving the network context
type ResolveNetworkContextParams struct {
	NetworkName string
	// Interactive allows picking a network when none was selected
	Interactive bool
}

// ResolveNetworkContext turns the selected network and the configured signer
// into the immutable NetworkContext of a run
type ResolveNetworkContext struct {
	resolver NetworkResolver
	signer   SignerProvider
	selector NetworkSelector
	progress ProgressSink
	log      *slog.Logger
}

// NewResolveNetworkContext creates a new ResolveNetworkContext use case
func NewResolveNetworkContext(
	resolver NetworkResolver,
	signer SignerProvider,
	selector NetworkSelector,
	progress ProgressSink,
	log *slog.Logger,
) *ResolveNetworkContext {
	return &ResolveNetworkContext{
		resolver: resolver,
		signer:   signer,
		selector: selector,
		progress: progress,
		log:      log.With("component", "ResolveNetworkContext"),
	}
}

// Run resolves the network context. Every failure is a *domain.ConfigurationError.
// The chain ID is checked before the signer is touched, and nothing here talks
// to the network.
func (uc *ResolveNetworkContext) Run(ctx context.Context, params ResolveNetworkContextParams) (*models.NetworkContext, error) {
	name := params.NetworkName
	if name == "" {
		picked, err := uc.pickNetwork(ctx, params.Interactive)
		if err != nil {
			return nil, &domain.ConfigurationError{Err: err}
		}
		name = picked
	}

	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: name, Err: err}
	}

	if !network.HasChainID() || *network.ChainID == 0 {
		uc.log.Error("No network id found", "network", name)
		return nil, &domain.ConfigurationError{Network: name, Err: domain.ErrMissingNetworkIdentifier}
	}

	deployer, err := uc.signer.DeployerAddress(ctx)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: name, Err: err}
	}

	networkCtx := &models.NetworkContext{
		ChainID:         *network.ChainID,
		NetworkName:     network.Name,
		DeployerAddress: deployer,
		RPCURL:          network.RPCURL,
		ExplorerURL:     network.ExplorerURL,
	}

	uc.log.Info("resolved network",
		"network", networkCtx.NetworkName,
		"chainId", networkCtx.ChainID,
		"deployer", networkCtx.DeployerAddress.Hex(),
	)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageNetworkResolved,
		Message:  fmt.Sprintf("%s (chain %d)", networkCtx.NetworkName, networkCtx.ChainID),
		Metadata: networkCtx,
	})

	return networkCtx, nil
}

func (uc *ResolveNetworkContext) pickNetwork(ctx context.Context, interactive bool) (string, error) {
	networks := uc.resolver.GetNetworks(ctx)
	if len(networks) == 0 {
		return "", fmt.Errorf("%w: no networks configured", domain.ErrUnknownNetwork)
	}
	if !interactive || uc.selector == nil {
		return "", fmt.Errorf("%w: no network selected, use --network (available: %v)", domain.ErrUnknownNetwork, networks)
	}
	return uc.selector.SelectNetwork(ctx, networks)
}
