package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
)

func newShowCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the schedule for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}

			printDay(cmd, date, book.Store().Entries(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
