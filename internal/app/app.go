package app

import (
	"log/slog"

	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	ResolveNetworkContext *usecase.ResolveNetworkContext
	DeployPlan            *usecase.DeployPlan
	ListNetworks          *usecase.ListNetworks
	ShowHistory           *usecase.ShowHistory
	InitProject           *usecase.InitProject
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	resolveNetworkContext *usecase.ResolveNetworkContext,
	deployPlan *usecase.DeployPlan,
	listNetworks *usecase.ListNetworks,
	showHistory *usecase.ShowHistory,
	initProject *usecase.InitProject,
) (*App, error) {
	return &App{
		Config:                cfg,
		Log:                   log,
		ResolveNetworkContext: resolveNetworkContext,
		DeployPlan:            deployPlan,
		ListNetworks:          listNetworks,
		ShowHistory:           showHistory,
		InitProject:           initProject,
	}, nil
}
