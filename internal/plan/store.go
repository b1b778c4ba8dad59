package plan

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Store owns every currently loaded entry. All mutation funnels through it so
// the order and date-partition invariants stay enforceable; callers only ever
// see copies of entries.
type Store struct {
	groups map[string][]*Entry
	byID   map[string]*Entry
	dirty  bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		groups: map[string][]*Entry{},
		byID:   map[string]*Entry{},
	}
}

// Load replaces the full collection, typically after a fresh parse of the
// file set. Entries without an ID are assigned one. Load resets the dirty
// flag: the store now mirrors what was read.
func (s *Store) Load(entries []Entry) {
	s.groups = map[string][]*Entry{}
	s.byID = map[string]*Entry{}
	for _, entry := range entries {
		e := entry
		if e.ID == "" {
			e.ID = NewID()
		}
		s.groups[e.Date] = append(s.groups[e.Date], &e)
		s.byID[e.ID] = &e
	}
	s.dirty = false
}

// Dates returns the distinct dates present, sorted ascending. The YYYY-MM-DD
// form makes lexical order chronological.
func (s *Store) Dates() []string {
	dates := make([]string, 0, len(s.groups))
	for date := range s.groups {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Entries returns a copy of the date's group in insertion order.
func (s *Store) Entries(date string) []Entry {
	group := s.groups[date]
	out := make([]Entry, 0, len(group))
	for _, e := range group {
		out = append(out, *e)
	}
	return out
}

// GroupByDate partitions all entries by date. Each group preserves its
// insertion order; the union of the groups is the whole collection.
func (s *Store) GroupByDate() map[string][]Entry {
	out := make(map[string][]Entry, len(s.groups))
	for date := range s.groups {
		out[date] = s.Entries(date)
	}
	return out
}

// Len reports the total number of entries across all dates.
func (s *Store) Len() int {
	return len(s.byID)
}

// Get looks up one entry by ID.
func (s *Store) Get(id string) (Entry, bool) {
	e, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// SetField overwrites one field of the entry with the given ID. Date and
// position are never touched through this path. Start and End accept an
// empty string or a valid HH:MM value but may not leave the range one-sided;
// Completed parses as a boolean. Titles may not end up empty: the resulting
// line would not survive a reparse.
func (s *Store) SetField(id string, field Field, value string) error {
	e, ok := s.byID[id]
	if !ok {
		return ErrEntryNotFound
	}

	switch field {
	case FieldTitle:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("title cannot be empty")
		}
		e.Title = value
	case FieldLink:
		e.Link = value
	case FieldStart:
		if err := validClock(value); err != nil {
			return err
		}
		if (value == "") != (e.End == "") {
			return fmt.Errorf("time range needs both ends or neither")
		}
		e.Start = value
	case FieldEnd:
		if err := validClock(value); err != nil {
			return err
		}
		if (value == "") != (e.Start == "") {
			return fmt.Errorf("time range needs both ends or neither")
		}
		e.End = value
	case FieldCompleted:
		done, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse completed value %q: %w", value, err)
		}
		e.Completed = done
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	s.dirty = true
	return nil
}

// SetTimes updates both ends of the time range together, keeping the
// all-or-nothing shape the grammar requires. Pass two empty strings to make
// the entry untimed.
func (s *Store) SetTimes(id, start, end string) error {
	e, ok := s.byID[id]
	if !ok {
		return ErrEntryNotFound
	}
	if (start == "") != (end == "") {
		return fmt.Errorf("time range needs both ends or neither")
	}
	if err := validClock(start); err != nil {
		return err
	}
	if err := validClock(end); err != nil {
		return err
	}
	e.Start = start
	e.End = end
	s.dirty = true
	return nil
}

// ToggleCompleted flips the checkbox of the entry with the given ID.
func (s *Store) ToggleCompleted(id string) (Entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	e.Completed = !e.Completed
	s.dirty = true
	return *e, nil
}

// SetSubTasks replaces the entry's sub-task list.
func (s *Store) SetSubTasks(id string, subTasks []string) error {
	e, ok := s.byID[id]
	if !ok {
		return ErrEntryNotFound
	}
	e.SubTasks = append([]string(nil), subTasks...)
	s.dirty = true
	return nil
}

// AddSubTask appends one sub-task to the entry.
func (s *Store) AddSubTask(id, text string) error {
	e, ok := s.byID[id]
	if !ok {
		return ErrEntryNotFound
	}
	e.SubTasks = append(e.SubTasks, text)
	s.dirty = true
	return nil
}

// Reorder moves the entry at from to position to within the date's group,
// preserving the relative order of every other entry. Indices outside the
// group are rejected; a cross-date move cannot be expressed here at all.
func (s *Store) Reorder(date string, from, to int) error {
	group, ok := s.groups[date]
	if !ok {
		return ErrDateNotFound
	}
	if from < 0 || from >= len(group) || to < 0 || to >= len(group) {
		return ErrInvalidIndex
	}
	if from == to {
		return nil
	}

	moved := group[from]
	group = append(group[:from], group[from+1:]...)
	group = append(group[:to], append([]*Entry{moved}, group[to:]...)...)
	s.groups[date] = group
	s.dirty = true
	return nil
}

// CreateEntry appends a user-authored entry to the end of the date's group,
// creating the group if absent. The entry always gets a fresh ID and starts
// with no sub-tasks.
func (s *Store) CreateEntry(date string, entry Entry) Entry {
	entry.ID = NewID()
	entry.Date = date
	entry.SubTasks = nil

	e := entry
	s.groups[date] = append(s.groups[date], &e)
	s.byID[e.ID] = &e
	s.dirty = true
	return e
}

// Delete drops the entry with the given ID from its group. An emptied group
// is removed with it.
func (s *Store) Delete(id string) error {
	e, ok := s.byID[id]
	if !ok {
		return ErrEntryNotFound
	}

	group := s.groups[e.Date]
	for i, candidate := range group {
		if candidate.ID == id {
			group = append(group[:i], group[i+1:]...)
			break
		}
	}
	if len(group) == 0 {
		delete(s.groups, e.Date)
	} else {
		s.groups[e.Date] = group
	}
	delete(s.byID, id)
	s.dirty = true
	return nil
}

// Dirty reports whether any mutation happened since the last Load or full
// export.
func (s *Store) Dirty() bool {
	return s.dirty
}

// ClearDirty is called after every group has been exported successfully.
func (s *Store) ClearDirty() {
	s.dirty = false
}

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

func validClock(value string) error {
	if value == "" {
		return nil
	}
	if !clockPattern.MatchString(value) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return nil
}
