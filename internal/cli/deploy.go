package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxy-deploy/internal/cli/render"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		proxyContract string
		initMethod    string
		yes           bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <Contract>",
		Short: "Deploy a contract behind a new UUPS proxy and initialize it",
		Long: `Deploy the implementation, deploy an ERC-1967 proxy pointing at it with no
initializer data, wait for confirmation, call the post-deploy initializer
through the proxy and write CONTRACT=<proxy> to .<network>.env.

Contracts are named as in the Foundry artifacts, either Name or
path/to/File.sol:Name.`,
		Example: `  proxy-deploy deploy Counter --network goerli
  proxy-deploy deploy src/Counter.sol:Counter -n sepolia --init-method initialize --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := app.Contracts.ListContractNames(cmd.Context())
				if err != nil || len(names) == 0 {
					return fmt.Errorf("a contract name is required")
				}
				return fmt.Errorf("a contract name is required, available contracts:\n  %s", strings.Join(names, "\n  "))
			}
			if app.Config.Network == nil {
				return fmt.Errorf("--network is required")
			}

			result, err := app.DeployProxy.Run(cmd.Context(), usecase.DeployProxyParams{
				ContractName:  args[0],
				ProxyContract: proxyContract,
				InitMethod:    initMethod,
				SkipConfirm:   yes,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	cmd.Flags().StringVar(&proxyContract, "proxy", usecase.DefaultProxyContract, "Proxy artifact to deploy in front of the implementation")
	cmd.Flags().StringVar(&initMethod, "init-method", usecase.DefaultInitMethod, "Argument-less initializer called through the proxy")
	cmd.Flags().Bool("build", false, "Run forge build before resolving artifacts")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
