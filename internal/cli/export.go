package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyshelf/backend/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all lessons as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := export.WriteFile(out, a.store.Courses())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", export.DefaultFileName, "output CSV file")
	return cmd
}
