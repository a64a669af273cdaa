package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
)

const (
	// DataDirName holds persisted deployment records
	DataDirName = ".deployer"

	DefaultPlanFile            = "deploy.yaml"
	DefaultArtifactsDir        = "build/artifacts"
	DefaultConfirmationTimeout = 5 * time.Minute
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Resume:         v.GetBool("resume"),
	}

	deployerFile, err := LoadDeployerFile(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployer config: %w", err)
	}
	cfg.DeployerFile = deployerFile

	cfg.PlanPath = projectPath(projectRoot, firstNonEmpty(v.GetString("plan"), DefaultPlanFile))
	cfg.ArtifactsDir = projectPath(projectRoot, firstNonEmpty(
		v.GetString("artifacts_dir"),
		deployerFile.Artifacts.Dir,
		DefaultArtifactsDir,
	))

	timeout, err := parseTimeout(firstNonEmpty(v.GetString("confirmation_timeout"), deployerFile.Confirmation.Timeout))
	if err != nil {
		return nil, err
	}
	cfg.ConfirmationTimeout = timeout

	// Resolve network if specified. An unknown name is reported later by the
	// network context resolver so that it surfaces as a configuration error.
	if cfg.NetworkName != "" {
		network, err := NewNetworkResolver(deployerFile).Resolve(cfg.NetworkName)
		if err == nil {
			cfg.Network = network
		} else if !errors.Is(err, domain.ErrUnknownNetwork) {
			return nil, err
		}
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find deployer.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, DeployerFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a deployer project (%s not found), run 'stake-deployer init' first", DeployerFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEPLOYER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("resume", false)
	v.SetDefault("project_root", projectRoot)

	if cmd != nil {
		BindFlags(v, cmd.Flags())
	}

	return v
}

// BindFlags copies every changed flag into viper, dashes become underscores
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.DeployerFile)
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultConfirmationTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid confirmation timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid confirmation timeout %q: must not be negative", raw)
	}
	return d, nil
}

func projectPath(projectRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
