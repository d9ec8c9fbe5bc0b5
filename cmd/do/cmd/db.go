package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/templui/habitkit/internal/db"
)

type dbFlags struct {
	driver     string
	connection string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	_ = godotenv.Load()

	cmd.PersistentFlags().StringVar(&f.driver, "driver", envOr("DB_DRIVER", "sqlite"), "database driver (sqlite or pgx)")
	cmd.PersistentFlags().StringVar(&f.connection, "dsn", envOr("DB_CONNECTION", "./data/habitkit.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"), "database connection string")
}

func (f *dbFlags) open() (*sqlx.DB, error) {
	conn, err := db.Init(f.driver, f.connection)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MigrateCmd() *cobra.Command {
	var flags dbFlags

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	flags.register(cmd)

	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", &flags, func(ctx context.Context, m *db.Migrator) error {
			return m.Up(ctx)
		}),
		migrateStep("down", "Roll back the latest migration", &flags, func(ctx context.Context, m *db.Migrator) error {
			return m.Down(ctx)
		}),
		migrateStep("status", "Show applied and pending migrations", &flags, printStatus),
	)
	return cmd
}

func migrateStep(use, short string, flags *dbFlags, run func(context.Context, *db.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := flags.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			m, err := db.NewMigrator(conn.DB, flags.driver)
			if err != nil {
				return err
			}
			return run(cmd.Context(), m)
		},
	}
}

func printStatus(ctx context.Context, m *db.Migrator) error {
	statuses, err := m.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Format(time.DateTime)
		}
		fmt.Printf("%-20s %s\n", applied, filepath.Base(s.Source.Path))
	}
	return nil
}
