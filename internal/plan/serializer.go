package plan

import "strings"

// Serialize renders entries back into the day-file markdown convention.
// Entries are expected to share one date; mixed dates still produce a single
// block and it is the caller's job to pre-group when writing per-day files.
// Reparsing the output with the same date yields entries Equal to the input.
func Serialize(entries []Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatEntry(entry))
		b.WriteByte('\n')
		for _, sub := range entry.SubTasks {
			b.WriteString("  - ")
			b.WriteString(sub)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatEntry reconstructs a single checklist line. The time segment is
// emitted only when both ends are present, mirroring the parser's
// all-or-nothing time grammar.
func FormatEntry(entry Entry) string {
	marker := byte(' ')
	if entry.Completed {
		marker = 'x'
	}

	var b strings.Builder
	b.Grow(16 + len(entry.Title) + len(entry.Link))
	b.WriteString("- [")
	b.WriteByte(marker)
	b.WriteString("] ")
	if entry.Timed() {
		b.WriteString(entry.Start)
		b.WriteString(" - ")
		b.WriteString(entry.End)
		b.WriteByte(' ')
	}
	if entry.Link != "" {
		b.WriteByte('[')
		b.WriteString(entry.Title)
		b.WriteString("](")
		b.WriteString(entry.Link)
		b.WriteByte(')')
	} else {
		b.WriteString(entry.Title)
	}
	return b.String()
}
