package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/vsvito420/on-track/internal/files"
)

func newTestBook(t *testing.T) (*Book, string) {
	t.Helper()
	base := t.TempDir()
	manager, err := files.NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return NewBook(manager), base
}

func writeDayFile(t *testing.T, base, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", name, err)
	}
}

func TestBookLoadParsesAllDayFiles(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md", "- [x] 09:00 - 09:30 Standup\n\n- [ ] Review\n  - check CI\n")
	writeDayFile(t, base, "2026-01-06-notes.md", "- [ ] Plan week\n")
	writeDayFile(t, base, "README.md", "not a day file\n")

	loadErrs, err := book.Load(context.Background())
	is.NoErr(err)
	is.Equal(len(loadErrs), 0)

	store := book.Store()
	is.Equal(store.Len(), 3)
	is.Equal(store.Dates(), []string{"2026-01-05", "2026-01-06"})
	is.Equal(store.Entries("2026-01-05")[1].SubTasks, []string{"check CI"})
	is.Equal(len(book.Warnings()), 0)
}

func TestBookLoadSurvivesUnreadableFile(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md", "- [ ] Survives\n")
	// A dangling symlink matches the naming convention but cannot be read.
	is.NoErr(os.Symlink(filepath.Join(base, "missing"), filepath.Join(base, "2026-01-06-Tuesday.md")))

	loadErrs, err := book.Load(context.Background())
	is.NoErr(err)
	is.Equal(len(loadErrs), 1)
	is.True(loadErrs[0].Err != nil)

	// The readable file's entries are unaffected.
	is.Equal(book.Store().Len(), 1)
	is.Equal(book.Store().Entries("2026-01-05")[0].Title, "Survives")
}

func TestBookLoadCollectsWarningsPerFile(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md", "- [?] broken\n- [ ] Fine\n")

	_, err := book.Load(context.Background())
	is.NoErr(err)

	warnings := book.Warnings()
	is.Equal(len(warnings), 1)
	is.Equal(warnings[0].Reason, ReasonMalformedEntry)
	is.Equal(warnings[0].Path, filepath.Join(base, "2026-01-05-Monday.md"))
	is.Equal(warnings[0].Line, 1)
}

func TestBookExportWritesCanonicalDayFiles(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	// The source file carries a non-canonical suffix; export normalizes it
	// to the weekday name.
	writeDayFile(t, base, "2026-01-05-scratch.md", "- [ ] Review\n")

	_, err := book.Load(context.Background())
	is.NoErr(err)

	store := book.Store()
	id := store.Entries("2026-01-05")[0].ID
	is.NoErr(store.SetField(id, FieldCompleted, "true"))
	is.True(store.Dirty())

	is.NoErr(book.Export(context.Background()))
	is.True(!store.Dirty())

	data, err := os.ReadFile(filepath.Join(base, "2026-01-05-Monday.md"))
	is.NoErr(err)
	is.Equal(string(data), "- [x] Review\n")

	// The non-canonical source file is gone, not left behind with stale
	// content.
	_, err = os.Stat(filepath.Join(base, "2026-01-05-scratch.md"))
	is.True(os.IsNotExist(err))
}

func TestBookExportPreventsDuplicatesOnReload(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-scratch.md", "- [ ] Review\n")

	_, err := book.Load(context.Background())
	is.NoErr(err)

	book.Store().CreateEntry("2026-01-05", Entry{Title: "Added"})
	is.NoErr(book.Export(context.Background()))

	rebook := NewBook(mustManager(t, base))
	_, err = rebook.Load(context.Background())
	is.NoErr(err)

	day := rebook.Store().Entries("2026-01-05")
	is.Equal(len(day), 2)
	is.Equal(day[0].Title, "Review")
	is.Equal(day[1].Title, "Added")
}

func TestBookExportDateKeepsDirtyFlag(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md", "- [ ] Review\n")
	_, err := book.Load(context.Background())
	is.NoErr(err)

	store := book.Store()
	store.CreateEntry("2026-01-06", Entry{Title: "Tuesday kickoff"})

	is.NoErr(book.ExportDate(context.Background(), "2026-01-06"))
	is.True(store.Dirty()) // only a full export marks the store clean

	data, err := os.ReadFile(filepath.Join(base, "2026-01-06-Tuesday.md"))
	is.NoErr(err)
	is.Equal(string(data), "- [ ] Tuesday kickoff\n")

	is.Equal(book.ExportDate(context.Background(), "2026-02-01"), ErrDateNotFound)
}

func TestBookExportTruncatesEmptiedDay(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md", "- [ ] Only entry\n")
	_, err := book.Load(context.Background())
	is.NoErr(err)

	store := book.Store()
	is.NoErr(store.Delete(store.Entries("2026-01-05")[0].ID))
	is.Equal(len(store.Dates()), 0)

	is.NoErr(book.Export(context.Background()))

	data, err := os.ReadFile(filepath.Join(base, "2026-01-05-Monday.md"))
	is.NoErr(err)
	is.Equal(string(data), "")
}

func TestBookExportRoundTripsThroughLoad(t *testing.T) {
	is := is.New(t)
	book, base := newTestBook(t)

	writeDayFile(t, base, "2026-01-05-Monday.md",
		"- [x] 09:00 - 09:30 [Standup](http://x)\n  - collect updates\n\n- [ ] Buy groceries\n")

	_, err := book.Load(context.Background())
	is.NoErr(err)
	before := book.Store().Entries("2026-01-05")

	is.NoErr(book.Export(context.Background()))

	rebook := NewBook(mustManager(t, base))
	_, err = rebook.Load(context.Background())
	is.NoErr(err)
	after := rebook.Store().Entries("2026-01-05")

	is.Equal(len(after), len(before))
	for i := range before {
		is.True(before[i].Equal(after[i]))
	}
}

func mustManager(t *testing.T, base string) *files.Manager {
	t.Helper()
	manager, err := files.NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return manager
}
