//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters"
	"github.com/trebuchet-org/proxy-deploy/internal/config"
	"github.com/trebuchet-org/proxy-deploy/internal/logging"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployProxy,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil, nil
}
