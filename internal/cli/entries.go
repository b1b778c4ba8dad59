package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/plan"
)

func newAddCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var (
		dateFlag  string
		startFlag string
		endFlag   string
		linkFlag  string
		doneFlag  bool
		subFlags  []string
	)

	cmd := &cobra.Command{
		Use:   "add [title ...]",
		Short: "Append a new entry to a day's schedule.",
		Long:  "add creates an entry at the end of the target date's group. A time range needs both --start and --end; omitting both makes the entry untimed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("title is required")
			}
			if err := timedFlagsConsistent(startFlag, endFlag); err != nil {
				return err
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

			entry := store.CreateEntry(date, plan.Entry{
				Completed: doneFlag,
				Title:     title,
				Link:      linkFlag,
			})
			if startFlag != "" {
				if err := store.SetTimes(entry.ID, startFlag, endFlag); err != nil {
					return err
				}
			}
			for _, sub := range subFlags {
				if err := store.AddSubTask(entry.ID, sub); err != nil {
					return err
				}
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			entry, _ = store.Get(entry.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added to %s: %s\n", date, formatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time in HH:MM")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time in HH:MM")
	cmd.Flags().StringVar(&linkFlag, "link", "", "URL to wrap the title as a markdown link")
	cmd.Flags().BoolVar(&doneFlag, "done", false, "Create the entry already checked off")
	cmd.Flags().StringArrayVar(&subFlags, "sub", nil, "Sub-task to attach (repeatable)")

	return cmd
}

func newDoneCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "done <index>",
		Short: "Flip the checkbox of an entry by index.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("index must be a positive integer")
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

			entry, err := entryAt(store, date, index)
			if err != nil {
				return err
			}
			entry, err = store.ToggleCompleted(entry.ID)
			if err != nil {
				return err
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Toggled entry %d: %s\n", index, formatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}

func newEditCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var (
		dateFlag  string
		titleFlag string
		linkFlag  string
		startFlag string
		endFlag   string
		untimed   bool
	)

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Modify fields of an entry by index.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("index must be a positive integer")
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

			entry, err := entryAt(store, date, index)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				if err := store.SetField(entry.ID, plan.FieldTitle, titleFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("link") {
				if err := store.SetField(entry.ID, plan.FieldLink, linkFlag); err != nil {
					return err
				}
			}
			switch {
			case untimed:
				if err := store.SetTimes(entry.ID, "", ""); err != nil {
					return err
				}
			case cmd.Flags().Changed("start") || cmd.Flags().Changed("end"):
				start, end := entry.Start, entry.End
				if cmd.Flags().Changed("start") {
					start = startFlag
				}
				if cmd.Flags().Changed("end") {
					end = endFlag
				}
				if err := store.SetTimes(entry.ID, start, end); err != nil {
					return err
				}
			}

			if !store.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			entry, _ = store.Get(entry.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d: %s\n", index, formatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&titleFlag, "title", "", "New title text")
	cmd.Flags().StringVar(&linkFlag, "link", "", "New link URL (empty clears the link)")
	cmd.Flags().StringVar(&startFlag, "start", "", "New start time in HH:MM")
	cmd.Flags().StringVar(&endFlag, "end", "", "New end time in HH:MM")
	cmd.Flags().BoolVar(&untimed, "untimed", false, "Drop the time range entirely")

	return cmd
}

func newSubCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var (
		dateFlag  string
		clearFlag bool
	)

	cmd := &cobra.Command{
		Use:   "sub <index> [text ...]",
		Short: "Attach a sub-task to an entry, or clear them all.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("index must be a positive integer")
			}

			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" && !clearFlag {
				return fmt.Errorf("sub-task text is required (or pass --clear)")
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

			entry, err := entryAt(store, date, index)
			if err != nil {
				return err
			}

			if clearFlag {
				if err := store.SetSubTasks(entry.ID, nil); err != nil {
					return err
				}
			} else {
				if err := store.AddSubTask(entry.ID, text); err != nil {
					return err
				}
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			if clearFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared sub-tasks of entry %d.\n", index)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added sub-task to entry %d: %s\n", index, text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove every sub-task of the entry")

	return cmd
}

func newDeleteCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Remove an entry by index.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("index must be a positive integer")
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

			entry, err := entryAt(store, date, index)
			if err != nil {
				return err
			}
			if err := store.Delete(entry.ID); err != nil {
				return err
			}

			if err := book.Export(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d: %s\n", index, formatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
