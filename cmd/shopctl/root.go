package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sangkips/shopkeeper-api/internal/bootstrap"
	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/database"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "1.0.0"

// opener connects to the database and wires the application. Tests swap it
// for an in-memory database.
type opener func() (*bootstrap.App, error)

func openFromConfig() (*bootstrap.App, error) {
	cfg := config.Load()
	log := logger.NewForEnvironment(cfg.App.Env, logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})

	db, err := database.Open(&cfg.Database, cfg.Log.Level, log)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, db, log, bootstrap.Options{}), nil
}

// session lazily opens the app once per invocation
type session struct {
	open opener
	app  *bootstrap.App
}

func (s *session) App() (*bootstrap.App, error) {
	if s.app != nil {
		return s.app, nil
	}
	app, err := s.open()
	if err != nil {
		return nil, err
	}
	s.app = app
	return app, nil
}

func (s *session) close() {
	if s.app == nil {
		return
	}
	_ = s.app.Logger.Sync()
	if sqlDB, err := s.app.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newSession(open opener) *session {
	return &session{open: open}
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "shopctl",
		Short: "Maintenance tasks for the shop billing database",
		Long: `shopctl migrates and seeds the shop database, purges old records and
records payments or settlements for credit customers and suppliers.

It reads the same .env file and environment variables as the API server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(s),
		newSeedCmd(s),
		newCleanupCmd(s),
		newSummaryCmd(s),
		newSettleCmd(s),
		newPayCmd(s),
	)
	return root
}

func newMigrateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(app.DB); err != nil {
				return err
			}
			app.Logger.Info("Migrations applied", zap.String("driver", app.DB.Dialector.Name()))
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin and staff logins if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}
			if err := database.SeedUsers(app.DB, &app.Cfg.Auth, app.Logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "users seeded")
			return nil
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
