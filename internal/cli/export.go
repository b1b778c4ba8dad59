package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
)

func newExportCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Rewrite every day file in the canonical format and name.",
		Long:  "export round-trips the whole file set: parse, then serialize each date back to YYYY-MM-DD-<Weekday>.md. Useful after hand-edits to normalize formatting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}

			dates := book.Store().Dates()
			if err := book.Export(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) to %s\n", len(dates), manager.BasePath())
			return nil
		},
	}

	return cmd
}
