package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/vsvito420/on-track/internal/files"
)

// Book binds the parser, serializer, and store to the day files on disk. It
// is the single owner the presentation layer drives: load once, mutate
// through Store, export back out.
type Book struct {
	manager  *files.Manager
	store    *Store
	warnings []FileWarning

	// loadedPaths remembers which files fed each date at Load time. Export
	// uses it to truncate the day file of a date whose last entry was
	// deleted, and to remove non-canonically named source files a date was
	// read from, so a reload never sees stale content next to the canonical
	// file.
	loadedPaths map[string][]string
}

// FileWarning is a parse warning tagged with the file it came from.
type FileWarning struct {
	Path string
	Warning
}

// LoadError reports a day file that could not be read. The rest of the batch
// is unaffected.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

// NewBook wires a book over the shared files.Manager.
func NewBook(manager *files.Manager) *Book {
	return &Book{manager: manager, store: NewStore()}
}

// Store exposes the entry collection for mutation.
func (b *Book) Store() *Store {
	return b.store
}

// Warnings returns the parse warnings collected by the last Load.
func (b *Book) Warnings() []FileWarning {
	return b.warnings
}

// Load parses every day file under the base path and replaces the store's
// collection. Unreadable files are skipped and reported as LoadErrors so one
// bad file never sinks the batch.
func (b *Book) Load(ctx context.Context) ([]LoadError, error) {
	if b == nil || b.manager == nil {
		return nil, errors.New("book not initialized with file manager")
	}

	dayFiles, err := b.manager.DayFiles()
	if err != nil {
		return nil, err
	}

	var (
		entries  []Entry
		loadErrs []LoadError
	)
	b.warnings = nil
	b.loadedPaths = map[string][]string{}

	for _, f := range dayFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			loadErrs = append(loadErrs, LoadError{Path: f.Path, Err: err})
			continue
		}
		parsed, warnings := Parse(string(data), f.Date)
		entries = append(entries, parsed...)
		b.loadedPaths[f.Date] = append(b.loadedPaths[f.Date], f.Path)
		for _, w := range warnings {
			b.warnings = append(b.warnings, FileWarning{Path: f.Path, Warning: w})
		}
	}

	b.store.Load(entries)
	return loadErrs, nil
}

// Export serializes every date group to its canonical day file, one file at
// a time, and clears the dirty flag once all groups are written. Dates that
// were loaded but hold no entries anymore are written out empty, and source
// files that fed a date under a non-canonical name are removed so the next
// load reads only the exported files.
func (b *Book) Export(ctx context.Context) error {
	dates := b.store.Dates()
	current := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		current[date] = struct{}{}
	}

	var emptied []string
	for date := range b.loadedPaths {
		if _, ok := current[date]; !ok {
			emptied = append(emptied, date)
		}
	}
	sort.Strings(emptied)

	for _, date := range append(dates, emptied...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.writeDate(date); err != nil {
			return err
		}
	}

	if err := b.removeSupersededFiles(); err != nil {
		return err
	}

	b.loadedPaths = make(map[string][]string, len(dates))
	for _, date := range dates {
		if path, err := b.manager.DayPath(date); err == nil {
			b.loadedPaths[date] = []string{path}
		}
	}
	b.store.ClearDirty()
	return nil
}

// removeSupersededFiles deletes every loaded file whose name is not the
// canonical one for its date. Their content has just been rewritten under
// the canonical name; leaving them behind would duplicate the date's entries
// on the next load.
func (b *Book) removeSupersededFiles() error {
	for date, paths := range b.loadedPaths {
		canonical, err := b.manager.DayPath(date)
		if err != nil {
			return fmt.Errorf("resolve day path %s: %w", date, err)
		}
		for _, path := range paths {
			if path == canonical {
				continue
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove superseded %s: %w", path, err)
			}
		}
	}
	return nil
}

// ExportDate writes a single date's group. The dirty flag stays set: only a
// full export marks the store clean.
func (b *Book) ExportDate(ctx context.Context, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := b.store.groups[date]; !ok {
		return ErrDateNotFound
	}
	return b.writeDate(date)
}

func (b *Book) writeDate(date string) error {
	content := Serialize(b.store.Entries(date))
	if err := b.manager.WriteDay(date, content); err != nil {
		return fmt.Errorf("export %s: %w", date, err)
	}
	return nil
}
