package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/config"
	"github.com/Domenick1991/hackportal/internal/bootstrap"
	"github.com/Domenick1991/hackportal/internal/logging"
	"github.com/Domenick1991/hackportal/internal/service/hacks"
)

// App holds the dependencies shared by every command.
type App struct {
	cfg     *config.Config
	infra   *bootstrap.Infra
	hacks   *hacks.HackService
	logger  *zap.Logger
	ctx     context.Context
	release func()
}

var (
	cfgPath string
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Hack portal admin CLI",
		Long:  `Bulk-imports hacks into the portal database and lists what is stored.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.release()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", envOr("CONFIG_PATH", "config.yaml"), "Path to the portal config file")

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func initApp(ctx context.Context) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	infra, err := bootstrap.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app = &App{
		cfg:    cfg,
		infra:  infra,
		hacks:  infra.HackService(cfg, logger),
		logger: logger,
		ctx:    ctx,
		release: func() {
			infra.Close()
			logger.Sync()
		},
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
