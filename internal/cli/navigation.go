package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/plan"
)

func newListCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var (
		dateFlag string
		daysFlag int
		weekFlag bool
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries across a range of days as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			days := daysFlag
			if weekFlag {
				days = 7
			}
			if days <= 0 {
				days = 1
			}

			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}
			store := book.Store()

			var dates []string
			if allFlag {
				dates = store.Dates()
			} else {
				end, _ := time.ParseInLocation("2006-01-02", date, time.Local)
				start := end.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
				for _, d := range store.Dates() {
					if d >= start && d <= date {
						dates = append(dates, d)
					}
				}
			}

			if len(dates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no entries)")
				return nil
			}

			printDayTable(cmd, store, dates)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "End date in YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&daysFlag, "days", 0, "Number of days to include ending on target date")
	cmd.Flags().BoolVar(&weekFlag, "week", false, "Shortcut for --days=7")
	cmd.Flags().BoolVar(&allFlag, "all", false, "List every loaded day regardless of range")

	return cmd
}

func newSearchCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var (
		caseSensitive bool
		outputJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search entry titles, links, and sub-tasks across all days.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			if term == "" {
				return fmt.Errorf("term is required")
			}

			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}
			store := book.Store()

			var results []searchResult
			for _, date := range store.Dates() {
				for idx, entry := range store.Entries(date) {
					if matchesEntry(entry, term, caseSensitive) {
						results = append(results, searchResult{entry: entry, index: idx})
					}
				}
			}

			if outputJSON {
				return printSearchResultsJSON(cmd, results)
			}
			return printSearchResultsText(cmd, term, results)
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match term with case sensitivity")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit results as JSON objects")

	return cmd
}

type searchResult struct {
	entry plan.Entry
	index int
}

func matchesEntry(entry plan.Entry, term string, caseSensitive bool) bool {
	fields := make([]string, 0, 2+len(entry.SubTasks))
	fields = append(fields, entry.Title, entry.Link)
	fields = append(fields, entry.SubTasks...)

	needle := term
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}

	for _, field := range fields {
		if !caseSensitive {
			field = strings.ToLower(field)
		}
		if strings.Contains(field, needle) {
			return true
		}
	}
	return false
}

func printSearchResultsText(cmd *cobra.Command, term string, results []searchResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Results for %q\n", term)
	if len(results) == 0 {
		fmt.Fprintln(out, "(no matches)")
		return nil
	}

	for _, res := range results {
		fmt.Fprintf(out, "%s #%d %s\n", res.entry.Date, res.index+1, formatEntry(res.entry))
	}
	return nil
}

func printSearchResultsJSON(cmd *cobra.Command, results []searchResult) error {
	type dto struct {
		Date  string     `json:"date"`
		Index int        `json:"index"`
		Entry plan.Entry `json:"entry"`
	}

	list := make([]dto, 0, len(results))
	for _, res := range results {
		list = append(list, dto{
			Date:  res.entry.Date,
			Index: res.index + 1,
			Entry: res.entry,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
