package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stake-deployer/internal/cli/render"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks configured in deployer.toml",
		Long: `List all networks configured in the [networks] section of deployer.toml.

Networks without a chain_id are listed but cannot be deployed to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}
