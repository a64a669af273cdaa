//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/stake-deployer/internal/adapters"
	"github.com/trebuchet-org/stake-deployer/internal/config"
	"github.com/trebuchet-org/stake-deployer/internal/logging"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetworkResolver,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveNetworkContext,
		usecase.NewDeployPlan,
		usecase.NewListNetworks,
		usecase.NewShowHistory,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil
}
