package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// dayFilePattern matches input files: a YYYY-MM-DD token, a suffix, and the
// markdown extension. Anything else in the directory is left alone.
var dayFilePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-.+\.md$`)

// Manager centralizes where day files live on disk and how they are named.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If
// basePath is empty it falls back to the location ResolveBasePath picks.
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing all day files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DayFile pairs a discovered file with the date extracted from its name.
type DayFile struct {
	Path string
	Date string
}

// DayFiles lists every file under the base path matching the day-file naming
// convention, sorted by date then name. A missing base directory is treated
// as an empty set, not an error.
func (m *Manager) DayFiles() ([]DayFile, error) {
	if m == nil {
		return nil, errors.New("files.Manager is nil")
	}

	dirEntries, err := os.ReadDir(m.basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read base path: %w", err)
	}

	var dayFiles []DayFile
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		matches := dayFilePattern.FindStringSubmatch(de.Name())
		if matches == nil {
			continue
		}
		date := matches[1]
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		dayFiles = append(dayFiles, DayFile{
			Path: filepath.Join(m.basePath, de.Name()),
			Date: date,
		})
	}

	sort.Slice(dayFiles, func(i, j int) bool {
		if dayFiles[i].Date != dayFiles[j].Date {
			return dayFiles[i].Date < dayFiles[j].Date
		}
		return dayFiles[i].Path < dayFiles[j].Path
	})

	return dayFiles, nil
}

// DayPath resolves the canonical output path for a date:
// YYYY-MM-DD-<WeekdayName>.md under the base path.
func (m *Manager) DayPath(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("parse date: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date, t.Weekday().String())
	return filepath.Join(m.basePath, name), nil
}

// WriteDay atomically replaces the canonical day file for the date with the
// given content, creating the base directory if needed.
func (m *Manager) WriteDay(date, content string) error {
	path, err := m.DayPath(date)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return writeFileAtomic(path, content)
}

// writeFileAtomic stages the content in a temp file and renames it over the
// destination so readers never observe a half-written day file.
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, "on-track-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil {
		if err := os.Chmod(temp.Name(), info.Mode()); err != nil {
			return err
		}
	} else if err := os.Chmod(temp.Name(), filePermissions); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
