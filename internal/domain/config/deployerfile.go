package config

// DeployerFile represents the deployer.toml project file
type DeployerFile struct {
	Networks     map[string]NetworkConfig `toml:"networks"`
	Deployer     DeployerConfig           `toml:"deployer"`
	Artifacts    ArtifactsConfig          `toml:"artifacts"`
	Confirmation ConfirmationConfig       `toml:"confirmation"`
}

// NetworkConfig is a single [networks.<name>] table
type NetworkConfig struct {
	ChainID     *uint64 `toml:"chain_id,omitempty"`
	RPCURL      string  `toml:"rpc_url"`
	ExplorerURL string  `toml:"explorer_url,omitempty"`
}

// DeployerConfig configures the signing identity
type DeployerConfig struct {
	// PrivateKey is a hex key or a ${VAR} reference, defaults to ${PRIVATE_KEY}
	PrivateKey string `toml:"private_key,omitempty"`
}

// ArtifactsConfig points at compiled contract output
type ArtifactsConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// ConfirmationConfig bounds the wait for each deployment
type ConfirmationConfig struct {
	Timeout string `toml:"timeout,omitempty"`
}
