package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	NetworkName string   // as selected by flag, env or prompt
	Network     *Network // nil if not specified

	// Plan settings
	PlanPath     string
	ArtifactsDir string

	// Execution settings
	Debug               bool
	NonInteractive      bool
	JSON                bool
	Resume              bool
	ConfirmationTimeout time.Duration

	// Resolved configurations
	DeployerFile *DeployerFile
}

// Network represents network configuration
type Network struct {
	Name string `json:"name"`
	// ChainID is nil when the network does not declare one
	ChainID     *uint64 `json:"chainId,omitempty"`
	RPCURL      string  `json:"rpcUrl"`
	ExplorerURL string  `json:"explorerUrl,omitempty"`
}

// HasChainID reports whether the network declares a chain ID
func (n *Network) HasChainID() bool {
	return n != nil && n.ChainID != nil
}
