package cli

import (
	"fmt"
	"relocation-planner-service/internal/snapshot"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored population to a graph_data snapshot file",
		Long: `Write the stored population to a graph_data snapshot file.
The format follows the file extension (.yaml/.yml for YAML, JSON otherwise).

Examples:
  planctl export --file cohort.json
  planctl export --file cohort.yaml --database-url postgres://...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			pop, err := newRepository(conn, dialect).ListEntities(cmd.Context())
			if err != nil {
				return err
			}

			if err := snapshot.WriteFile(file, pop); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entities to %s.\n", len(pop), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "destination snapshot file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
