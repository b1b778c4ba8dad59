package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/plan"
)

func resolveDate(dateFlag string) (string, error) {
	if dateFlag == "" {
		return time.Now().In(time.Local).Format("2006-01-02"), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse date: %w", err)
	}
	return parsed.Format("2006-01-02"), nil
}

// loadBook parses the full file set and surfaces per-file problems on the
// error stream without failing the command: a bad file never blocks work on
// the rest of the batch.
func loadBook(ctx context.Context, cmd *cobra.Command, manager *files.Manager) (*plan.Book, error) {
	book := plan.NewBook(manager)
	loadErrs, err := book.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, loadErr := range loadErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", loadErr)
	}
	printWarnings(cmd, book.Warnings())
	return book, nil
}

// entryAt resolves the 1-based index the CLI exposes into an entry of the
// date's group.
func entryAt(store *plan.Store, date string, index int) (plan.Entry, error) {
	entries := store.Entries(date)
	if len(entries) == 0 {
		return plan.Entry{}, fmt.Errorf("no entries for %s", date)
	}
	if index < 1 || index > len(entries) {
		return plan.Entry{}, fmt.Errorf("%w: %d (have %d entries)", plan.ErrInvalidIndex, index, len(entries))
	}
	return entries[index-1], nil
}

func timedFlagsConsistent(start, end string) error {
	if (start == "") != (end == "") {
		return fmt.Errorf("a timed entry needs both --start and --end")
	}
	return nil
}
