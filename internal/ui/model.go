package ui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vsvito420/on-track/internal/files"
	"github.com/vsvito420/on-track/internal/plan"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	subTaskStyle = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dirtyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Model owns Bubble Tea state for the main TUI experience. The whole file set
// is loaded once into the book's store; day navigation and edits are
// synchronous store operations, only load and save touch the disk.
type Model struct {
	ctx  context.Context
	book *plan.Book

	currentDate string
	entries     []plan.Entry
	selected    int

	mode        mode
	inputBuffer string
	inputLabel  string
	editingID   string
	quitArmed   bool

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeAdd
	modeEditTitle
	modeAddSubTask
	modeConfirmDelete
)

type loadedMsg struct {
	loadErrs []plan.LoadError
	err      error
}

type savedMsg struct {
	err error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, manager *files.Manager) Model {
	return Model{
		ctx:         ctx,
		book:        plan.NewBook(manager),
		currentDate: today(),
		mode:        modeNormal,
		loading:     true,
		statusLine:  "Loading schedule...",
	}
}

// Init loads the full file set.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case loadedMsg:
		return m.handleLoaded(msg)
	case savedMsg:
		return m.handleSaved(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	key := msg.String()
	if key != "q" {
		m.quitArmed = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.book.Store().Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.statusLine = "Unsaved changes. Press q again to discard, s to save."
			m.errorLine = ""
			return m, nil
		}
		return m, tea.Quit
	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "J":
		return m.moveSelected(1)
	case "K":
		return m.moveSelected(-1)
	case "left", "h":
		return m.gotoDate(addDays(m.currentDate, -1))
	case "right", "l":
		return m.gotoDate(addDays(m.currentDate, 1))
	case "t":
		return m.gotoDate(today())
	case "r":
		return m.reload()
	case "x", " ":
		return m.toggleSelected()
	case "a":
		m.mode = modeAdd
		m.inputBuffer = ""
		m.inputLabel = "New entry (optional leading @HH:MM-HH:MM, then title; Enter to save, Esc to cancel):"
		m.statusLine = ""
		m.errorLine = ""
	case "e":
		if len(m.entries) == 0 {
			return m, nil
		}
		entry := m.entries[m.selected]
		m.mode = modeEditTitle
		m.editingID = entry.ID
		m.inputBuffer = entry.Title
		m.inputLabel = fmt.Sprintf("Edit title of entry %d (Enter to save, Esc to cancel):", m.selected+1)
		m.statusLine = ""
		m.errorLine = ""
	case "o":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.mode = modeAddSubTask
		m.editingID = m.entries[m.selected].ID
		m.inputBuffer = ""
		m.inputLabel = fmt.Sprintf("New sub-task for entry %d (Enter to save, Esc to cancel):", m.selected+1)
		m.statusLine = ""
		m.errorLine = ""
	case "d":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.editingID = m.entries[m.selected].ID
		m.statusLine = ""
		m.errorLine = ""
	case "s":
		m.statusLine = "Saving..."
		m.errorLine = ""
		return m, m.saveCmd()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd, modeEditTitle, modeAddSubTask:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitInput()
		case tea.KeyEsc:
			return m.cancelInput("Cancelled.")
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyCtrlH:
			if len(m.inputBuffer) > 0 {
				m.inputBuffer = trimLastRune(m.inputBuffer)
			}
		case tea.KeyCtrlU:
			m.inputBuffer = ""
		case tea.KeySpace:
			m.inputBuffer += " "
		case tea.KeyRunes:
			m.inputBuffer += string(msg.Runes)
		}
		return m, nil
	case modeConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			return m.confirmDelete()
		case "n", "N", "esc":
			return m.cancelInput("Delete cancelled.")
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

var addTimePrefix = regexp.MustCompile(`^@(\d{2}:\d{2})-(\d{2}:\d{2})$`)

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.inputBuffer)
	store := m.book.Store()

	switch m.mode {
	case modeAdd:
		if input == "" {
			m.errorLine = "Entry cannot be empty."
			return m, nil
		}
		title := input
		start, end := "", ""
		fields := strings.Fields(input)
		if match := addTimePrefix.FindStringSubmatch(fields[0]); match != nil {
			start, end = match[1], match[2]
			title = strings.TrimSpace(strings.Join(fields[1:], " "))
		}
		if title == "" {
			m.errorLine = "Entry needs a title."
			return m, nil
		}
		entry := store.CreateEntry(m.currentDate, plan.Entry{Title: title})
		if start != "" {
			if err := store.SetTimes(entry.ID, start, end); err != nil {
				m.errorLine = err.Error()
				return m, nil
			}
		}
		m = m.resetInput()
		m.entries = store.Entries(m.currentDate)
		m.selected = len(m.entries) - 1
		m.statusLine = "Entry added."
		return m, nil
	case modeEditTitle:
		if input == "" {
			m.errorLine = "Title cannot be empty."
			return m, nil
		}
		if err := store.SetField(m.editingID, plan.FieldTitle, input); err != nil {
			m.errorLine = err.Error()
			return m, nil
		}
		m = m.resetInput()
		m.entries = store.Entries(m.currentDate)
		m.statusLine = "Title updated."
		return m, nil
	case modeAddSubTask:
		if input == "" {
			m.errorLine = "Sub-task cannot be empty."
			return m, nil
		}
		if err := store.AddSubTask(m.editingID, input); err != nil {
			m.errorLine = err.Error()
			return m, nil
		}
		m = m.resetInput()
		m.entries = store.Entries(m.currentDate)
		m.statusLine = "Sub-task added."
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m = m.resetInput()
	if message != "" {
		m.statusLine = message
	}
	return m, nil
}

func (m Model) resetInput() Model {
	m.mode = modeNormal
	m.inputBuffer = ""
	m.inputLabel = ""
	m.editingID = ""
	m.errorLine = ""
	return m
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	store := m.book.Store()
	if err := store.Delete(m.editingID); err != nil {
		m = m.resetInput()
		m.errorLine = err.Error()
		return m, nil
	}
	m = m.resetInput()
	m.entries = store.Entries(m.currentDate)
	if m.selected >= len(m.entries) && m.selected > 0 {
		m.selected--
	}
	m.statusLine = "Entry deleted."
	return m, nil
}

func (m Model) moveSelected(offset int) (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	target := m.selected + offset
	if target < 0 || target >= len(m.entries) {
		return m, nil
	}

	store := m.book.Store()
	if err := store.Reorder(m.currentDate, m.selected, target); err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	m.entries = store.Entries(m.currentDate)
	m.selected = target
	m.statusLine = fmt.Sprintf("Moved entry to position %d.", target+1)
	m.errorLine = ""
	return m, nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 || m.loading {
		return m, nil
	}
	store := m.book.Store()
	entry, err := store.ToggleCompleted(m.entries[m.selected].ID)
	if err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	m.entries = store.Entries(m.currentDate)
	if entry.Completed {
		m.statusLine = fmt.Sprintf("Checked off entry %d.", m.selected+1)
	} else {
		m.statusLine = fmt.Sprintf("Reopened entry %d.", m.selected+1)
	}
	m.errorLine = ""
	return m, nil
}

func (m Model) gotoDate(date string) (tea.Model, tea.Cmd) {
	m.currentDate = date
	m.entries = m.book.Store().Entries(date)
	m.selected = 0
	m.statusLine = ""
	m.errorLine = ""
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.book.Store().Dirty() {
		m.statusLine = "Unsaved changes would be lost; save first or quit."
		return m, nil
	}
	m.loading = true
	m.statusLine = fmt.Sprintf("Reloading %s...", m.currentDate)
	m.errorLine = ""
	return m, m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	book := m.book
	ctx := m.ctx
	return func() tea.Msg {
		loadErrs, err := book.Load(ctx)
		return loadedMsg{loadErrs: loadErrs, err: err}
	}
}

func (m Model) saveCmd() tea.Cmd {
	book := m.book
	ctx := m.ctx
	return func() tea.Msg {
		return savedMsg{err: book.Export(ctx)}
	}
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.entries = m.book.Store().Entries(m.currentDate)
	if m.selected >= len(m.entries) {
		m.selected = 0
	}

	parts := []string{fmt.Sprintf("Loaded %d entr%s across %d day(s).",
		m.book.Store().Len(), plural(m.book.Store().Len()), len(m.book.Store().Dates()))}
	if n := len(msg.loadErrs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d file(s) unreadable.", n))
	}
	if n := len(m.book.Warnings()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) skipped.", n))
	}
	m.statusLine = strings.Join(parts, " ")
	m.errorLine = ""
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Save failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.statusLine = "Saved."
	m.errorLine = ""
	return m, nil
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := m.currentDate
	if t, err := time.Parse("2006-01-02", m.currentDate); err == nil {
		header = t.Format("Monday, 02 January 2006")
	}
	b.WriteString(headerStyle.Render(header))
	if m.book.Store().Dirty() {
		b.WriteString(dirtyStyle.Render("  *unsaved*"))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...\n")
	} else if len(m.entries) == 0 {
		b.WriteString("(no entries)\n")
	} else {
		for i, entry := range m.entries {
			cursor := "  "
			if i == m.selected {
				cursor = cursorStyle.Render("> ")
			}
			b.WriteString(cursor)
			b.WriteString(renderEntry(entry))
			b.WriteByte('\n')
			for _, sub := range entry.SubTasks {
				b.WriteString("      ")
				b.WriteString(subTaskStyle.Render("- " + sub))
				b.WriteByte('\n')
			}
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeAdd, modeEditTitle, modeAddSubTask:
		b.WriteString("\n")
		b.WriteString(m.inputLabel)
		b.WriteByte('\n')
		b.WriteString("> ")
		b.WriteString(m.inputBuffer)
		b.WriteByte('\n')
	case modeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Delete entry %d? (y/n, Esc to cancel)", m.selected+1))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Navigation: <-/h prev  ->/l next  j/k select  t today  r reload"))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("Actions: space/x toggle  J/K move  a add  e edit  o sub-task  d delete  s save  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func renderEntry(entry plan.Entry) string {
	var b strings.Builder

	if entry.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	if entry.Timed() {
		b.WriteString(timeStyle.Render(entry.Start + " - " + entry.End))
		b.WriteByte(' ')
	}
	if entry.Completed {
		b.WriteString(doneStyle.Render(entry.Title))
	} else {
		b.WriteString(entry.Title)
	}
	if entry.Link != "" {
		b.WriteString(subTaskStyle.Render(" (" + entry.Link + ")"))
	}

	return b.String()
}

func trimLastRune(input string) string {
	if input == "" {
		return input
	}
	runes := []rune(input)
	return string(runes[:len(runes)-1])
}

func today() string {
	return time.Now().In(time.Local).Format("2006-01-02")
}

func addDays(date string, days int) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
