// Package cli provides the planctl command-line interface: schema setup,
// seeding from graph_data snapshots, and one-off planning runs.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"relocation-planner-service/internal/adapters/repositories"
	"relocation-planner-service/internal/config"
	"relocation-planner-service/internal/platform/db"
	"relocation-planner-service/internal/ports"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// state shared by the subcommands of one invocation.
type app struct {
	cfg         config.Config
	databaseURL string
	dbPath      string
	logger      *slog.Logger
	closeLog    func() error
}

// NewRootCmd builds the planctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "planctl",
		Short: "Relocation planner tooling",
		Long: `planctl manages the relocation planner's population store and runs
one-off plans against it or against a graph_data snapshot file.

Connection settings come from the environment (.env, DATABASE_URL, DB_PATH)
unless overridden by flags.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			if !cmd.Flags().Changed("database-url") {
				a.databaseURL = cfg.DatabaseURL
			}
			if !cmd.Flags().Changed("db-path") {
				a.dbPath = cfg.DBPath
			}

			a.logger, a.closeLog = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
			slog.SetDefault(a.logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.databaseURL, "database-url", "", "Postgres connection URL (default $DATABASE_URL)")
	root.PersistentFlags().StringVar(&a.dbPath, "db-path", "", "SQLite database file, used when no Postgres URL is set (default $DB_PATH)")

	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

// openStore connects to Postgres when a URL is configured, SQLite otherwise,
// and makes sure the schema exists.
func (a *app) openStore(ctx context.Context) (*sql.DB, repositories.Dialect, error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	if a.databaseURL != "" {
		conn, err = db.Open(a.databaseURL)
		dialect = repositories.DialectPostgres
	} else {
		conn, err = db.OpenSQLite(a.dbPath)
		dialect = repositories.DialectSQLite
	}
	if err != nil {
		return nil, "", err
	}

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return conn, dialect, nil
}

func newRepository(conn *sql.DB, dialect repositories.Dialect) ports.PopulationRepository {
	if dialect == repositories.DialectPostgres {
		return repositories.NewPostgresPopulationRepository(conn)
	}
	return repositories.NewSqlitePopulationRepository(conn)
}
