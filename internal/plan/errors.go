package plan

import "errors"

// ErrEntryNotFound is returned when no entry carries the referenced ID.
var ErrEntryNotFound = errors.New("entry not found")

// ErrDateNotFound is returned when the store holds no group for the date.
var ErrDateNotFound = errors.New("date group not found")

// ErrInvalidIndex indicates the caller referenced a position outside the
// date group's bounds.
var ErrInvalidIndex = errors.New("entry index out of range")

// ErrUnknownField is returned by SetField for a field name it does not manage.
var ErrUnknownField = errors.New("unknown entry field")
