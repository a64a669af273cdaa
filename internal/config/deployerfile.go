package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
)

const (
	// DeployerFileName is the project file that marks the project root
	DeployerFileName = "deployer.toml"

	// DefaultPrivateKeyRef is used when [deployer] private_key is not set
	DefaultPrivateKeyRef = "${PRIVATE_KEY}"
)

// loadEnvFiles loads .env and .env.local from the project root.
// Variables already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadDeployerFile reads deployer.toml and expands env references in it
func LoadDeployerFile(projectRoot string) (*config.DeployerFile, error) {
	loadEnvFiles(projectRoot)

	raw, err := LoadRawDeployerFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.DeployerFile{
		Networks:     make(map[string]config.NetworkConfig, len(raw.Networks)),
		Artifacts:    raw.Artifacts,
		Confirmation: raw.Confirmation,
	}

	for name, network := range raw.Networks {
		rpcURL, _ := ExpandEnv(network.RPCURL)
		explorer, _ := ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = config.NetworkConfig{
			ChainID:     network.ChainID,
			RPCURL:      rpcURL,
			ExplorerURL: strings.TrimSuffix(explorer, "/"),
		}
	}

	keyRef := raw.Deployer.PrivateKey
	if keyRef == "" {
		keyRef = DefaultPrivateKeyRef
	}
	cfg.Deployer.PrivateKey, _ = ExpandEnv(keyRef)

	return cfg, nil
}

// LoadRawDeployerFile reads deployer.toml without env var expansion. A
// missing file yields an empty configuration so that `init` can run.
func LoadRawDeployerFile(projectRoot string) (*config.DeployerFile, error) {
	path := filepath.Join(projectRoot, DeployerFileName)

	var raw config.DeployerFile
	if _, err := os.Stat(path); os.IsNotExist(err) {
		raw.Networks = make(map[string]config.NetworkConfig)
		return &raw, nil
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployerFileName, err)
	}
	if raw.Networks == nil {
		raw.Networks = make(map[string]config.NetworkConfig)
	}

	return &raw, nil
}
