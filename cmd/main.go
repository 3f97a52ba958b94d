package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/newsroom-backend/internal/app"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsroom",
		Short:         "Newsroom content management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate, seed the admin account and serve the HTTP API",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply schema migrations and exit",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed-admin",
			Short: "Create or refresh the configured admin account and exit",
			RunE:  runSeedAdmin,
		},
	)
	return root
}

func bootstrap() (app.Config, *logger.Logger, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, nil, err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return app.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return err
	}
	defer a.Close()

	if err := a.Migrate(); err != nil {
		return err
	}
	if err := a.EnsureAdmin(ctx); err != nil {
		return err
	}
	return a.Run(ctx)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	a, err := app.NewTooling(log, cfg)
	if err != nil {
		log.Sync()
		return err
	}
	defer a.Close()
	return a.Migrate()
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	a, err := app.NewTooling(log, cfg)
	if err != nil {
		log.Sync()
		return err
	}
	defer a.Close()
	if err := a.Migrate(); err != nil {
		return err
	}
	return a.EnsureAdmin(cmd.Context())
}
