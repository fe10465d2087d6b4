// Package tui is the interactive vault browser: a menu of search
// kinds, a one-line query input, and split or full-screen result
// views. State transitions live in nav.go; rendering in view.go.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"dynix/internal/search"
	"dynix/internal/state"
)

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

type menuEntry struct {
	label string
	kind  search.Kind
	exit  bool
}

var menuEntries = []menuEntry{
	{label: "Search by Subject", kind: search.KindSubject},
	{label: "Search by Tag(s)", kind: search.KindTags},
	{label: "Search by Date", kind: search.KindDate},
	{label: "Exit", exit: true},
}

type searchFinishedMsg struct {
	gen     int
	results *search.ResultSet
	err     error
}

type Model struct {
	state     *state.State
	keys      *keyMap
	input     textinput.Model
	preview   *previewer
	nav       viewState
	queryKind search.Kind
	results   *search.ResultSet
	status    string
	searching bool
	searchGen int
	width     int
	height    int
}

func NewModel(s *state.State) (Model, error) {
	p, err := newPreviewer()
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60

	return Model{
		state:   s,
		keys:    newKeyMap(),
		input:   ti,
		preview: p,
		nav:     newViewState(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Wrap width changed, so every cached render is stale.
		m.preview.reset()
		return m.reclamped(), nil

	case searchFinishedMsg:
		// A completion from an abandoned or resubmitted query is
		// stale and must not move the UI.
		if msg.gen != m.searchGen {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Search failed: %v", msg.err)
			m.nav = m.nav.backToMenu()
			return m, nil
		}
		m.results = msg.results
		m.preview.reset()
		m.nav = m.nav.enterResults()
		m.status = ""
		if msg.results.Skipped > 0 {
			m.status = fmt.Sprintf("Skipped %d unreadable entries", msg.results.Skipped)
		}
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Editor error: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}

		switch m.nav.mode {
		case modeMenu:
			return m.handleMenuKey(msg)
		case modeInput:
			return m.handleInputKey(msg)
		case modeResultsSplit:
			return m.handleSplitKey(msg)
		case modeResultsFull:
			return m.handleFullKey(msg)
		}
	}

	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.nav = m.nav.moveMenu(-1, len(menuEntries))

	case key.Matches(msg, m.keys.down):
		m.nav = m.nav.moveMenu(1, len(menuEntries))

	case key.Matches(msg, m.keys.choose):
		entry := menuEntries[m.nav.menuIndex]
		if entry.exit {
			return m, tea.Quit
		}
		m.queryKind = entry.kind
		m.input.SetValue("")
		m.status = ""
		m.nav = m.nav.enterInput()
		return m, m.input.Focus()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.input.Blur()
		// Leaving the input screen abandons any search still running.
		m.searching = false
		m.searchGen++
		m.nav = m.nav.backToMenu()
		return m, nil

	case key.Matches(msg, m.keys.choose):
		return m.submitQuery()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitQuery runs the typed query, or treats blank input as a no-op
// that returns to the menu without searching.
func (m Model) submitQuery() (tea.Model, tea.Cmd) {
	q := search.NewQuery(m.queryKind, m.input.Value())
	m.input.Blur()

	if q.Empty() {
		m.nav = m.nav.backToMenu()
		return m, nil
	}

	m.searching = true
	m.status = ""
	m.searchGen++
	gen := m.searchGen
	engine := m.state.Engine()
	return m, func() tea.Msg {
		rs, err := engine.Run(q)
		return searchFinishedMsg{gen: gen, results: rs, err: err}
	}
}

func (m Model) handleSplitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.results = nil
		m.nav = m.nav.backToMenu()

	case key.Matches(msg, m.keys.up):
		m.nav = m.nav.moveResult(-1, m.resultCount())

	case key.Matches(msg, m.keys.down):
		m.nav = m.nav.moveResult(1, m.resultCount())

	case key.Matches(msg, m.keys.pageUp):
		m.nav = m.scrollByPages(-1)

	case key.Matches(msg, m.keys.pageDown):
		m.nav = m.scrollByPages(1)

	case key.Matches(msg, m.keys.choose):
		if m.resultCount() > 0 {
			m.nav = m.nav.expand()
			// The full view wraps wider and renders fewer lines, so
			// the carried scroll offset needs a fresh clamp.
			return m.reclamped(), nil
		}

	case key.Matches(msg, m.keys.edit):
		if sel, ok := m.selected(); ok {
			return m, openEditorCmd(sel.Note.Path)
		}

	case key.Matches(msg, m.keys.copyPath):
		m.copySelectedPath()
	}

	return m, nil
}

func (m Model) handleFullKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.nav = m.nav.collapseKeepScroll()

	case key.Matches(msg, m.keys.choose):
		m.nav = m.nav.collapse()

	case key.Matches(msg, m.keys.up):
		m.nav = m.nav.scrollBy(-1, m.previewLineCount(), m.viewportHeight())

	case key.Matches(msg, m.keys.down):
		m.nav = m.nav.scrollBy(1, m.previewLineCount(), m.viewportHeight())

	case key.Matches(msg, m.keys.pageUp):
		m.nav = m.scrollByPages(-1)

	case key.Matches(msg, m.keys.pageDown):
		m.nav = m.scrollByPages(1)

	case key.Matches(msg, m.keys.edit):
		if sel, ok := m.selected(); ok {
			return m, openEditorCmd(sel.Note.Path)
		}

	case key.Matches(msg, m.keys.copyPath):
		m.copySelectedPath()
	}

	return m, nil
}

func (m Model) scrollByPages(direction int) viewState {
	h := m.viewportHeight()
	return m.nav.scrollBy(direction*h, m.previewLineCount(), h)
}

func (m *Model) copySelectedPath() {
	sel, ok := m.selected()
	if !ok {
		return
	}
	if err := writeClipboard(sel.Note.Path); err != nil {
		m.status = fmt.Sprintf("Clipboard error: %v", err)
		return
	}
	m.status = fmt.Sprintf("Copied %s", sel.Note.Path)
}

func (m Model) resultCount() int {
	if m.results == nil {
		return 0
	}
	return m.results.Len()
}

func (m Model) selected() (search.Match, bool) {
	if m.results == nil || m.results.Len() == 0 {
		return search.Match{}, false
	}
	return m.results.Matches[clampIndex(m.nav.resultIndex, m.results.Len())], true
}

// previewLineCount is the rendered length of the selected note at the
// active mode's width, the quantity scroll bounds derive from.
func (m Model) previewLineCount() int {
	sel, ok := m.selected()
	if !ok {
		return 0
	}
	return lineCount(m.preview.render(sel.Note.Path, m.contentWidth()))
}

func (m Model) reclamped() Model {
	m.nav = m.nav.reclamp(len(menuEntries), m.resultCount(), m.previewLineCount(), m.viewportHeight())
	return m
}

// Run starts the browser on the current vault. It refuses to start
// without an interactive terminal and with a missing vault root; both
// are fatal before any screen is drawn. The terminal state is saved
// up front and restored on every exit path.
func Run(s *state.State) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("an interactive terminal is required")
	}
	if err := s.ValidateVault(); err != nil {
		return err
	}

	m, err := NewModel(s)
	if err != nil {
		return err
	}

	// Save the current terminal state
	originalState, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to get terminal state: %w", err)
	}
	defer func() {
		if err := term.Restore(int(os.Stdin.Fd()), originalState); err != nil {
			fmt.Fprintf(os.Stderr, "failed to restore terminal state: %v\n", err)
		}
	}()

	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			os.Exit(0)
		}
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
