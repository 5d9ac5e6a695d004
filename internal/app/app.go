package app

import (
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Contracts usecase.ContractRepository

	// Use cases
	DeployProxy  *usecase.DeployProxy
	ListNetworks *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	contracts usecase.ContractRepository,
	deployProxy *usecase.DeployProxy,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:       cfg,
		Contracts:    contracts,
		DeployProxy:  deployProxy,
		ListNetworks: listNetworks,
	}, nil
}
