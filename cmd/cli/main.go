package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tournament-tools/prize-allocator/cmd/cli/commands"
	"github.com/tournament-tools/prize-allocator/internal/config"
	"github.com/tournament-tools/prize-allocator/pkg/core/services"
	"github.com/tournament-tools/prize-allocator/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Prize Allocator CLI - Assign tournament prizes to a ranked roster",
		Long:  `A CLI tool for allocating tournament prizes under overlapping eligibility rules, with coverage diagnostics for every prize.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.AllocatePrizesCmd(appContext()))
	rootCmd.AddCommand(commands.ValidateTournamentCmd(appContext()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appContext returns the shared AppContext, created lazily so commands can
// be registered before initApp fills it in.
func appContext() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger and config
func initApp() error {
	var err error
	ctx := appContext()

	// Initialize logger
	ctx.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	ctx.Logger.Info("Loading configuration")
	ctx.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ctx.Logger.Debug("Configuration loaded successfully")

	ctx.Tournaments = services.FileLoader{}

	return nil
}
