package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stake-deployer/internal/cli/render"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		plan  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded deployment runs of a network",
		Long: `Show the deployment runs recorded under .deployer/ for the selected network,
newest first, with the contracts each run confirmed.`,
		Example: `  stake-deployer history --network sepolia
  stake-deployer history -n sepolia --plan stake --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowHistory.Run(cmd.Context(), usecase.ShowHistoryParams{
				NetworkName: app.Config.NetworkName,
				Plan:        plan,
				Limit:       limit,
			})
			if err != nil {
				return err
			}

			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Only show runs of this plan name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of runs to show")
	cmd.Flags().Bool("json", false, "Output the runs as JSON")

	return cmd
}
