package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/plan"
)

var (
	dayTitle  = color.New(color.Bold, color.Underline)
	faint     = color.New(color.Faint)
	doneColor = color.New(color.FgGreen)
	todoColor = color.New(color.FgYellow)
	warnColor = color.New(color.FgRed)
)

func statusLabel(entry plan.Entry) string {
	if entry.Completed {
		return doneColor.Sprint("done")
	}
	return todoColor.Sprint("todo")
}

func formatEntry(entry plan.Entry) string {
	var b strings.Builder
	b.Grow(24 + len(entry.Title) + len(entry.Link))

	b.WriteByte('[')
	b.WriteString(statusLabel(entry))
	b.WriteByte(']')

	if entry.Timed() {
		b.WriteByte(' ')
		b.WriteString(entry.Start)
		b.WriteString(" - ")
		b.WriteString(entry.End)
	}

	if entry.Title != "" {
		b.WriteByte(' ')
		b.WriteString(entry.Title)
	}

	if entry.Link != "" {
		b.WriteByte(' ')
		b.WriteString(faint.Sprintf("(%s)", entry.Link))
	}

	return b.String()
}

func printDay(cmd *cobra.Command, date string, entries []plan.Entry) {
	out := cmd.OutOrStdout()

	heading := date
	if t, err := time.Parse("2006-01-02", date); err == nil {
		heading = fmt.Sprintf("%s (%s)", date, t.Weekday())
	}
	fmt.Fprintln(out, dayTitle.Sprint(heading))

	if len(entries) == 0 {
		fmt.Fprintln(out, "(no entries)")
		return
	}

	for i, entry := range entries {
		fmt.Fprintf(out, "%d. %s\n", i+1, formatEntry(entry))
		for _, sub := range entry.SubTasks {
			fmt.Fprintf(out, "     - %s\n", sub)
		}
	}
}

// printDayTable renders a multi-day range as one table, a row per entry.
func printDayTable(cmd *cobra.Command, store *plan.Store, dates []string) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("DATE", "#", "STATUS", "TIME", "TITLE", "SUBTASKS")

	for _, date := range dates {
		for i, entry := range store.Entries(date) {
			timeRange := ""
			if entry.Timed() {
				timeRange = entry.Start + " - " + entry.End
			}
			status := "todo"
			if entry.Completed {
				status = "done"
			}
			table.AddRow(date, i+1, status, timeRange, entry.Title, len(entry.SubTasks))
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), table)
}

func printWarnings(cmd *cobra.Command, warnings []plan.FileWarning) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s:%d: %s: %q\n",
			warnColor.Sprint("skipped"), w.Path, w.Line, w.Reason, w.Raw)
	}
}
