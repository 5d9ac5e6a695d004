package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxy-deploy/internal/app"
	"github.com/trebuchet-org/proxy-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command and the release func for the resources
// its pre-run acquires. Release runs whether or not the command succeeds.
func NewRootCmd() (*cobra.Command, func()) {
	var cleanup func()
	release := func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}

	rootCmd := &cobra.Command{
		Use:   "proxy-deploy",
		Short: "Deploy and initialize a UUPS proxy with Foundry artifacts",
		Long: `proxy-deploy deploys a contract behind a new ERC-1967 (UUPS) proxy, calls its
post-deploy initializer through the proxy and records the proxy address in
.<network>.env as CONTRACT=<address>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, appCleanup, err := app.InitApp(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			cleanup = appCleanup

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				appCleanup := cleanup
				cleanup = func() {
					cancel()
					appCleanup()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to, as named in foundry.toml [rpc_endpoints]")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint overriding foundry.toml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Overall timeout for the command")

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd, release
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance, ok := cmd.Context().Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return appInstance, nil
}
