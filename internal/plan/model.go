package plan

import "github.com/google/uuid"

// Entry represents a single checklist line of a day file plus the indented
// sub-task bullets directly following it.
type Entry struct {
	// ID is a synthetic identifier assigned when the entry is parsed or
	// created. It is stable for the lifetime of the store and is what edit
	// and reorder operations address entries by.
	ID        string   `json:"id"`
	Completed bool     `json:"completed"`
	// Start and End hold HH:MM clock strings. Both empty means an untimed
	// entry; the grammar never produces only one of the two.
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Title    string   `json:"title"`
	Link     string   `json:"link,omitempty"`
	SubTasks []string `json:"subTasks,omitempty"`
	// Date is the owning day in YYYY-MM-DD form, derived from the source
	// file name rather than from line content.
	Date string `json:"date"`
	// Raw keeps the original source line for diffing and debugging. It is
	// never authoritative and is excluded from equality.
	Raw string `json:"-"`
}

// NewID mints a fresh entry identifier.
func NewID() string {
	return uuid.NewString()
}

// Timed reports whether the entry carries a start and end time.
func (e Entry) Timed() bool {
	return e.Start != "" && e.End != ""
}

// Equal compares all content fields, ignoring ID and Raw. It is the equality
// used by the serialize-then-reparse round-trip guarantee.
func (e Entry) Equal(other Entry) bool {
	if e.Completed != other.Completed ||
		e.Start != other.Start ||
		e.End != other.End ||
		e.Title != other.Title ||
		e.Link != other.Link ||
		e.Date != other.Date {
		return false
	}
	if len(e.SubTasks) != len(other.SubTasks) {
		return false
	}
	for i := range e.SubTasks {
		if e.SubTasks[i] != other.SubTasks[i] {
			return false
		}
	}
	return true
}

// Field names a mutable Entry field for Store.SetField.
type Field string

const (
	FieldTitle     Field = "title"
	FieldLink      Field = "link"
	FieldStart     Field = "start"
	FieldEnd       Field = "end"
	FieldCompleted Field = "completed"
)
