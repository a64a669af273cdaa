package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stake-deployer/internal/cli/render"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create deployer.toml, deploy.yaml and .env.example",
		Long: `Initialize a deployer project in the current directory. Files that already
exist are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	renderer := render.NewInitRenderer(cmd.OutOrStdout())

	result, err := app.InitProject.Execute(cmd.Context(), usecase.InitProjectParams{Dir: app.Config.ProjectRoot})
	if err != nil {
		// Still render partial results even on error
		if result != nil {
			_ = renderer.Render(result)
		}
		return err
	}

	return renderer.Render(result)
}
