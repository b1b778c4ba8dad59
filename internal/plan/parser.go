package plan

import (
	"bufio"
	"regexp"
	"strings"
	"time"
)

// Warning records a line the parser skipped and why. Parsing never fails on
// malformed input; callers that need strictness inspect the warnings.
type Warning struct {
	Line   int
	Raw    string
	Reason string
}

// Warning reasons, kept as plain strings so they read well in CLI output.
const (
	ReasonMalformedEntry  = "malformed entry line"
	ReasonIncompleteRange = "incomplete time range"
	ReasonInvalidTime     = "invalid time"
	ReasonOrphanSubTask   = "sub-task without an open entry"
	ReasonTruncatedInput  = "input truncated"
)

// maxLineBytes bounds a single source line. Lines beyond it stop the scan,
// which is then reported as a truncation warning.
const maxLineBytes = 1 << 20

var (
	entryPattern = regexp.MustCompile(`^- \[( |x)\] (?:(\d{2}:\d{2}) - (\d{2}:\d{2}) )?(?:#### )?(.*)$`)
	linkPattern  = regexp.MustCompile(`^\[(.*)\]\((.*)\)$`)
	timeToken    = regexp.MustCompile(`^\d{2}:\d{2}(\s|$)`)
)

// Parse converts the raw text of one day file into its entries, in encounter
// order. The date is supplied by the caller (derived from the file name) and
// is stamped onto every entry. Lines that fail the grammar are skipped and
// reported as warnings; blank and commentary lines are ignored without
// closing the open entry.
func Parse(text, date string) ([]Entry, []Warning) {
	var (
		entries  []Entry
		warnings []Warning
		open     *Entry
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "- [") {
			entry, reason := parseEntryLine(trimmed)
			if reason != "" {
				warnings = append(warnings, Warning{Line: lineNo, Raw: line, Reason: reason})
				continue
			}
			if open != nil {
				entries = append(entries, *open)
			}
			entry.ID = NewID()
			entry.Date = date
			entry.Raw = line
			open = &entry
			continue
		}

		if strings.HasPrefix(trimmed, "-") && trimmed != "" {
			if open == nil {
				warnings = append(warnings, Warning{Line: lineNo, Raw: line, Reason: ReasonOrphanSubTask})
				continue
			}
			open.SubTasks = append(open.SubTasks, subTaskContent(trimmed))
			continue
		}
		// Anything else is commentary; the open entry stays open.
	}

	if err := scanner.Err(); err != nil {
		// bufio stops on an oversized line; the rest of the file is lost,
		// which must not pass silently.
		warnings = append(warnings, Warning{Line: lineNo + 1, Raw: err.Error(), Reason: ReasonTruncatedInput})
	}

	if open != nil {
		entries = append(entries, *open)
	}

	return entries, warnings
}

// parseEntryLine matches one trimmed checklist line. It returns a non-empty
// reason instead of an entry when the line fails the grammar.
func parseEntryLine(trimmed string) (Entry, string) {
	matches := entryPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return Entry{}, ReasonMalformedEntry
	}

	start, end, rest := matches[2], matches[3], matches[4]

	// The time range is all-or-nothing: a lone leading HH:MM token means the
	// line failed the full pattern, not that it is an untimed entry whose
	// title happens to start with a clock value.
	if start == "" && timeToken.MatchString(rest) {
		return Entry{}, ReasonIncompleteRange
	}

	if start != "" {
		if _, err := time.Parse("15:04", start); err != nil {
			return Entry{}, ReasonInvalidTime
		}
		if _, err := time.Parse("15:04", end); err != nil {
			return Entry{}, ReasonInvalidTime
		}
	}

	entry := Entry{
		Completed: matches[1] == "x",
		Start:     start,
		End:       end,
	}

	if link := linkPattern.FindStringSubmatch(rest); link != nil {
		entry.Title = link[1]
		entry.Link = link[2]
	} else {
		entry.Title = rest
	}

	return entry, ""
}

// subTaskContent strips the leading "- " of a nested bullet. Conventionally
// that is exactly the first two characters of the trimmed line.
func subTaskContent(trimmed string) string {
	if len(trimmed) < 2 {
		return ""
	}
	return trimmed[2:]
}
