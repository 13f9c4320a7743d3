package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gallery/internal/app/config"
	"gallery/internal/infrastructure/db/migrations"
	"gallery/internal/infrastructure/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Image board server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the database and serve HTTP",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "thumbs",
			Short: "Regenerate every thumbnail and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runThumbs(cmd.Context())
			},
		},
	)
	return root
}

// bootstrap loads the config, builds the logger and opens the database.
func bootstrap(ctx context.Context) (config.Config, *zap.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("db open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return config.Config{}, nil, nil, fmt.Errorf("db ping: %w", err)
	}

	return cfg, log, db, nil
}

func runMigrate(ctx context.Context) error {
	_, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrations applied")
	return migrations.Status(db)
}
