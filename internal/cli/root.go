package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/ui"
	"github.com/vsvito420/on-track/internal/version"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "on-track",
		Short:   "Plan and review daily schedules kept as markdown checklists.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, manager)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newShowCommand(ctx, manager),
		newListCommand(ctx, manager),
		newAddCommand(ctx, manager),
		newDoneCommand(ctx, manager),
		newEditCommand(ctx, manager),
		newSubCommand(ctx, manager),
		newMoveCommand(ctx, manager),
		newDeleteCommand(ctx, manager),
		newSearchCommand(ctx, manager),
		newExportCommand(ctx, manager),
		newRenderCommand(ctx, manager),
	)

	return cmd
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, manager)
	return cmd.Execute()
}

// Main is a helper used by cmd/on-track/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
