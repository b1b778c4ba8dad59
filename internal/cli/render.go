package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/plan"
)

func newRenderCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a day's schedule as HTML.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			book, err := loadBook(ctx, cmd, manager)
			if err != nil {
				return err
			}

			markdown := plan.Serialize(book.Store().Entries(date))
			if markdown == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "<!-- no entries for %s -->\n", date)
				return nil
			}

			engine := goldmark.New(
				goldmark.WithExtensions(extension.GFM, extension.TaskList),
			)
			var buf bytes.Buffer
			if err := engine.Convert([]byte(markdown), &buf); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
