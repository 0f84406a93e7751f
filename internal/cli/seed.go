package cli

import (
	"fmt"
	"relocation-planner-service/internal/adapters/repositories"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the entities table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s).\n", dialect)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert entities from a graph_data snapshot file",
		Long: `Upsert entities from a graph_data snapshot file (JSON or YAML).

Examples:
  planctl seed --file data/seeds/graph_data.json
  planctl seed --file cohort.yaml --db-path /tmp/app.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.SeedPath
			}

			conn, dialect, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := repositories.SeedFromFile(cmd.Context(), conn, dialect, file); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s from %s.\n", dialect, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file to load (default $SEED_PATH)")
	return cmd
}
