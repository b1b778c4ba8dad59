package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
)

func newMoveCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an entry to a new position within its day.",
		Long:  "move performs a stable single-entry move: the entry at <from> lands at <to> and every other entry keeps its relative order. Both positions are 1-based within the target date.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil || from <= 0 {
				return fmt.Errorf("from must be a positive integer")
			}
			to, err := strconv.Atoi(args[1])
			if err != nil || to <= 0 {
				return fmt.Errorf("to must be a positive integer")
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}
			store := book.Store()

			if err := store.Reorder(date, from-1, to-1); err != nil {
				return err
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved entry %d to position %d on %s.\n", from, to, date)
			printDay(cmd, date, store.Entries(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
