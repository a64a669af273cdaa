package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/progress"
	"github.com/trebuchet-org/stake-deployer/internal/app"
	"github.com/trebuchet-org/stake-deployer/internal/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stake-deployer",
		Short: "Deploy the stake contracts in dependency order",
		Long: `stake-deployer deploys a plan of contracts one after another on an EVM
network, substituting the addresses of earlier contracts into the constructor
arguments of later ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// init creates the project
				if cmd.Name() != "init" {
					return err
				}
				projectRoot = "."
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., sepolia, ethereum)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	historyCmd := NewHistoryCmd()
	historyCmd.GroupID = "main"
	rootCmd.AddCommand(historyCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "management"
	rootCmd.AddCommand(initCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink picks the progress output of a command. JSON output keeps
// stdout machine-readable, so it gets no progress.
func newProgressSink(cmd *cobra.Command) usecase.ProgressSink {
	if f := cmd.Flags().Lookup("json"); f != nil && f.Value.String() == "true" {
		return usecase.NopProgress{}
	}
	if cmd.Name() != "deploy" {
		return usecase.NopProgress{}
	}
	return progress.NewDeployProgress(cmd.OutOrStdout())
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
