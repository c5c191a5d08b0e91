package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/cmd/cli/commands"
	"github.com/jakechorley/daily-production-plan/internal/config"
	"github.com/jakechorley/daily-production-plan/pkg/catalogfile"
	"github.com/jakechorley/daily-production-plan/pkg/postgres"
	"github.com/jakechorley/daily-production-plan/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Daily production plan CLI - Plan capacity-constrained production",
		Long:  `A CLI tool for building the daily production plan of the small and large automotive lines from stock, sales backlog and replenishment rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Postgres != nil {
				app.Postgres.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GeneratePlanCmd(app))
	rootCmd.AddCommand(commands.ListPlansCmd(app))
	rootCmd.AddCommand(commands.ShowPlanCmd(app))
	rootCmd.AddCommand(commands.ListCatalogCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	if app.Cfg.DatabaseURL != "" {
		app.Logger.Info("Connecting to database")
		app.Postgres, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Database = app.Postgres
		app.Logger.Info("Database initialized successfully")
		return nil
	}

	app.Logger.Info("Loading catalog file", zap.String("path", app.Cfg.CatalogFile))
	store, err := catalogfile.Open(app.Cfg.CatalogFile)
	if err != nil {
		return err
	}
	app.Database = store
	app.Logger.Info("Catalog loaded - plans are kept for this session only")

	return nil
}
