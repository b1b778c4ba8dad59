package cli

import (
	"context"
	"testing"
)

func TestCLIWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	mgr := newTempManager(t)

	date := "2026-01-05"

	// 1. Add a timed entry with a link.
	addOut := executeCommand(t, newAddCommand(ctx, mgr),
		"--date", date,
		"--start", "09:00", "--end", "09:30",
		"--link", "http://x",
		"Standup",
	)
	assertContains(t, addOut, "Added to 2026-01-05")

	// 2. Add an untimed entry with sub-tasks.
	executeCommand(t, newAddCommand(ctx, mgr),
		"--date", date,
		"--sub", "milk",
		"--sub", "bread",
		"Buy groceries",
	)

	// 3. Show the day to see both entries in insertion order.
	showOut := executeCommand(t, newShowCommand(ctx, mgr), "--date", date)
	assertContains(t, showOut, "1. [todo] 09:00 - 09:30 Standup")
	assertContains(t, showOut, "2. [todo] Buy groceries")
	assertContains(t, showOut, "- milk")

	// 4. Check off the first entry.
	doneOut := executeCommand(t, newDoneCommand(ctx, mgr), "--date", date, "1")
	assertContains(t, doneOut, "Toggled entry 1: [done]")

	// 5. Move the groceries entry first.
	executeCommand(t, newMoveCommand(ctx, mgr), "--date", date, "2", "1")

	// 6. The file now round-trips with the new order.
	content := readDay(t, mgr, "2026-01-05-Monday.md")
	want := "- [ ] Buy groceries\n  - milk\n  - bread\n\n- [x] 09:00 - 09:30 [Standup](http://x)\n"
	if content != want {
		t.Fatalf("day file = %q, want %q", content, want)
	}

	// 7. Search finds the completed entry by title.
	searchOut := executeCommand(t, newSearchCommand(ctx, mgr), "Standup")
	assertContains(t, searchOut, "2026-01-05 #2")

	// 8. Edit the groceries entry to carry a time range.
	executeCommand(t, newEditCommand(ctx, mgr),
		"--date", date, "--start", "17:00", "--end", "17:30", "1")

	content = readDay(t, mgr, "2026-01-05-Monday.md")
	want = "- [ ] 17:00 - 17:30 Buy groceries\n  - milk\n  - bread\n\n- [x] 09:00 - 09:30 [Standup](http://x)\n"
	if content != want {
		t.Fatalf("day file after edit = %q, want %q", content, want)
	}
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	mgr := newTempManager(t)
	root := NewRootCommand(context.Background(), mgr)

	wanted := []string{"show", "list", "add", "done", "edit", "sub", "move", "delete", "search", "export", "render"}
	for _, name := range wanted {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not wired: %v", name, err)
		}
	}
}
