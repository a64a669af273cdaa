package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stake-deployer/internal/cli/render"
	"github.com/trebuchet-org/stake-deployer/internal/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contracts of a plan in order",
		Long: `Deploy every contract of the plan one after another. Placeholders such as
"{ref: Core}" and "{ref: deployer}" are replaced with the address of an earlier
contract or the deployer before each submission.

The run stops at the first contract that fails to submit or confirm. Contracts
confirmed before the failure are reported and recorded under .deployer/.`,
		Example: `  stake-deployer deploy --network sepolia
  stake-deployer deploy -n sepolia --plan deploy.yaml --confirmation-timeout 10m
  stake-deployer deploy -n sepolia --resume --json`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}

	cmd.Flags().String("plan", config.DefaultPlanFile, "Deployment plan file")
	cmd.Flags().String("artifacts-dir", "", "Directory with compiled contract artifacts")
	cmd.Flags().String("confirmation-timeout", "", "Maximum wait for each confirmation, 0 waits indefinitely (default 5m)")
	cmd.Flags().Bool("resume", false, "Reuse contracts confirmed by the previous run of the plan")
	cmd.Flags().Bool("json", false, "Output the result as JSON")

	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config
	renderer := render.NewDeployRenderer(cmd.OutOrStdout(), cfg.JSON)

	network, err := app.ResolveNetworkContext.Run(cmd.Context(), usecase.ResolveNetworkContextParams{
		NetworkName: cfg.NetworkName,
		Interactive: !cfg.NonInteractive && !cfg.JSON,
	})
	if err != nil {
		return renderFailure(renderer, cfg.JSON, err)
	}

	plan, err := config.LoadPlan(cfg.PlanPath)
	if err != nil {
		return renderFailure(renderer, cfg.JSON, &domain.ConfigurationError{Network: network.NetworkName, Err: err})
	}

	result, err := app.DeployPlan.Run(cmd.Context(), usecase.DeployPlanParams{
		Network:             network,
		Plan:                plan,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
		Resume:              cfg.Resume,
	})
	if result == nil {
		return renderFailure(renderer, cfg.JSON, err)
	}

	if renderErr := renderer.Render(result); renderErr != nil {
		return renderErr
	}
	return err
}

// renderFailure prints errors that stop a run before it produced a result.
// The error is still returned so the exit code is non-zero.
func renderFailure(renderer *render.DeployRenderer, json bool, err error) error {
	if json {
		if renderErr := renderer.RenderError(err); renderErr != nil {
			return renderErr
		}
	}
	return err
}
