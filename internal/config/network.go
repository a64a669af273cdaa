package config

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
)

// NetworkResolver resolves network names against the [networks] tables of deployer.toml
type NetworkResolver struct {
	deployerFile *config.DeployerFile
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(deployerFile *config.DeployerFile) *NetworkResolver {
	if deployerFile == nil {
		deployerFile = &config.DeployerFile{}
	}
	return &NetworkResolver{deployerFile: deployerFile}
}

// GetNetworks returns all configured network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := make([]string, 0, len(r.deployerFile.Networks))
	for name := range r.deployerFile.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration. The chain ID is
// returned as declared; a missing chain ID is not an error at this level.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	network, exists := r.deployerFile.Networks[networkName]
	if !exists {
		return nil, unknownNetworkError(networkName, r.Suggest(networkName))
	}

	var chainID *uint64
	if network.ChainID != nil {
		id := *network.ChainID
		chainID = &id
	}

	explorer := network.ExplorerURL
	if explorer == "" && chainID != nil {
		explorer = defaultExplorerURL(*chainID)
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      network.RPCURL,
		ExplorerURL: explorer,
	}, nil
}

// Suggest returns configured network names that fuzzily match input
func (r *NetworkResolver) Suggest(input string) []string {
	if input == "" {
		return nil
	}

	names := r.GetNetworks()
	matches := fuzzy.Find(input, names)

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

func unknownNetworkError(name string, suggestions []string) error {
	if len(suggestions) == 0 {
		return fmt.Errorf("%w: '%s' not found in %s [networks]", domain.ErrUnknownNetwork, name, DeployerFileName)
	}
	return fmt.Errorf("%w: '%s' not found in %s [networks], did you mean %v?", domain.ErrUnknownNetwork, name, DeployerFileName, suggestions)
}

// defaultExplorerURL returns a well-known explorer for common chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
