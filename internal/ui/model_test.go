package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vsvito420/on-track/internal/files"
)

func setupModel(t *testing.T) (Model, *files.Manager) {
	t.Helper()
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "2026-01-05-Monday.md"),
		[]byte("- [ ] First\n\n- [x] 09:00 - 09:30 Second\n\n- [ ] Third\n  - a sub-task\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mgr, err := files.NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	m := NewModel(context.Background(), mgr)
	updated, _ := m.Update(m.loadCmd()())
	m = updated.(Model)
	if m.errorLine != "" {
		t.Fatalf("load error: %s", m.errorLine)
	}

	nav, _ := m.gotoDate("2026-01-05")
	m = nav.(Model)
	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.entries))
	}
	return m, mgr
}

func key(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		if r == ' ' {
			m = key(m, "space")
			continue
		}
		m = key(m, string(r))
	}
	return m
}

func TestModelSelectionStaysInBounds(t *testing.T) {
	m, _ := setupModel(t)

	m = key(m, "k")
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0 at top", m.selected)
	}

	m = key(m, "j")
	m = key(m, "j")
	m = key(m, "j")
	if m.selected != 2 {
		t.Fatalf("selected = %d, want clamped to 2", m.selected)
	}
}

func TestModelMoveReordersStore(t *testing.T) {
	m, _ := setupModel(t)

	m = key(m, "J")
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1 after move down", m.selected)
	}

	titles := make([]string, 0, 3)
	for _, e := range m.book.Store().Entries("2026-01-05") {
		titles = append(titles, e.Title)
	}
	want := []string{"Second", "First", "Third"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("order = %v, want %v", titles, want)
		}
	}
	if !m.book.Store().Dirty() {
		t.Fatalf("store not dirty after reorder")
	}
}

func TestModelToggleSelected(t *testing.T) {
	m, _ := setupModel(t)

	m = key(m, "space")
	if !m.book.Store().Entries("2026-01-05")[0].Completed {
		t.Fatalf("first entry not completed after toggle")
	}

	m = key(m, "space")
	if m.book.Store().Entries("2026-01-05")[0].Completed {
		t.Fatalf("first entry still completed after second toggle")
	}
}

func TestModelAddEntryWithTimeRange(t *testing.T) {
	m, _ := setupModel(t)

	m = key(m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want modeAdd", m.mode)
	}
	m = typeText(m, "@10:00-10:45 Deep work")
	m = key(m, "enter")

	entries := m.book.Store().Entries("2026-01-05")
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	added := entries[3]
	if added.Title != "Deep work" || added.Start != "10:00" || added.End != "10:45" {
		t.Fatalf("added = %#v", added)
	}
	if m.selected != 3 {
		t.Fatalf("selected = %d, want the new entry", m.selected)
	}
}

func TestModelDeleteNeedsConfirmation(t *testing.T) {
	m, _ := setupModel(t)

	m = key(m, "d")
	m = key(m, "n")
	if got := m.book.Store().Len(); got != 3 {
		t.Fatalf("entries after declined delete = %d, want 3", got)
	}

	m = key(m, "d")
	m = key(m, "y")
	if got := m.book.Store().Len(); got != 2 {
		t.Fatalf("entries after confirmed delete = %d, want 2", got)
	}
	if m.book.Store().Entries("2026-01-05")[0].Title != "Second" {
		t.Fatalf("wrong entry deleted")
	}
}

func TestModelQuitGuardsDirtyState(t *testing.T) {
	m, _ := setupModel(t)
	m = key(m, "space") // dirty now

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	if cmd != nil {
		t.Fatalf("first q should not quit with unsaved changes")
	}
	if !strings.Contains(m.statusLine, "Unsaved") {
		t.Fatalf("statusLine = %q, want unsaved warning", m.statusLine)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("second q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("second q command is not tea.Quit")
	}
}

func TestModelSaveExportsAndClearsDirty(t *testing.T) {
	m, mgr := setupModel(t)
	m = key(m, "space")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = updated.(Model)
	if cmd == nil {
		t.Fatalf("s produced no save command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.book.Store().Dirty() {
		t.Fatalf("store still dirty after save")
	}
	data, err := os.ReadFile(filepath.Join(mgr.BasePath(), "2026-01-05-Monday.md"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "- [x] First") {
		t.Fatalf("saved file = %q, want first entry checked", data)
	}
}

func TestModelDateNavigation(t *testing.T) {
	m, _ := setupModel(t)

	nav, _ := m.gotoDate("2026-01-06")
	m = nav.(Model)
	if len(m.entries) != 0 {
		t.Fatalf("entries on empty day = %d, want 0", len(m.entries))
	}

	m = key(m, "h")
	if m.currentDate != "2026-01-05" {
		t.Fatalf("currentDate = %q, want 2026-01-05", m.currentDate)
	}
	if len(m.entries) != 3 {
		t.Fatalf("entries back on Monday = %d, want 3", len(m.entries))
	}

	m = key(m, "l")
	if m.currentDate != "2026-01-06" {
		t.Fatalf("currentDate = %q, want 2026-01-06", m.currentDate)
	}
}

func TestModelViewRendersEntriesAndSubTasks(t *testing.T) {
	m, _ := setupModel(t)

	view := m.View()
	for _, want := range []string{"Monday, 05 January 2026", "First", "Second", "Third", "a sub-task"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
