package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dynix/internal/search"
)

// chromeLines is the vertical space the header, spacer, status and
// help rows occupy inside the app frame.
const chromeLines = 4

func (m Model) viewportHeight() int {
	_, frameV := appStyle.GetFrameSize()
	h := m.height - frameV - chromeLines
	if h < 0 {
		return 0
	}
	return h
}

// contentWidth is the wrap width of the note body in the active mode:
// half the frame in the split view, the whole frame when expanded.
func (m Model) contentWidth() int {
	frameH, _ := appStyle.GetFrameSize()
	w := m.width - frameH
	if m.nav.mode == modeResultsSplit {
		w = w/2 - 3
	}
	if w < 0 {
		w = 0
	}
	return w
}

func (m Model) listWidth() int {
	frameH, _ := appStyle.GetFrameSize()
	w := (m.width-frameH)/2 - 1
	if w < 0 {
		w = 0
	}
	return w
}

func (m Model) View() string {
	switch m.nav.mode {
	case modeInput:
		return m.inputView()
	case modeResultsSplit:
		return m.splitView()
	case modeResultsFull:
		return m.fullView()
	default:
		return m.menuView()
	}
}

func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("dynix — vault search"))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		if i == m.nav.menuIndex {
			b.WriteString(selectedItemStyle.Render("> " + entry.label))
		} else {
			b.WriteString(menuItemStyle.Render(entry.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("vault: " + m.state.VaultDir()))
	b.WriteString("\n")
	b.WriteString(m.footer("↑/↓ move • ↵ select • ctrl+q quit"))

	return appStyle.Render(b.String())
}

func (m Model) inputView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(inputTitle(m.queryKind)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(statusStyle("Searching the vault…"))
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render(inputHint(m.queryKind)))
		b.WriteString("\n")
	}
	b.WriteString(m.footer("↵ search • esc back • ctrl+q quit"))

	return appStyle.Render(b.String())
}

func (m Model) splitView() string {
	vh := m.viewportHeight()

	list := listStyle.
		Width(m.listWidth()).
		Height(vh).
		MaxHeight(vh + 1).
		Render(m.listPane(vh))

	preview := previewStyle.
		Height(vh).
		MaxHeight(vh + 1).
		Render(m.previewPane())

	layout := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)

	var b strings.Builder
	b.WriteString(m.resultsHeader())
	b.WriteString("\n\n")
	b.WriteString(layout)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(m.footer("↑/↓ select • pgup/pgdn scroll • ↵ expand • e edit • y copy path • esc menu"))

	return appStyle.Render(b.String())
}

func (m Model) fullView() string {
	var b strings.Builder

	b.WriteString(m.resultsHeader())
	b.WriteString("\n\n")
	b.WriteString(m.previewPane())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(m.footer("↑/↓ pgup/pgdn scroll • ↵ collapse • e edit • esc back"))

	return appStyle.Render(b.String())
}

// listPane renders a window of result rows around the cursor so the
// selection stays visible past one screen of matches.
func (m Model) listPane(height int) string {
	if m.resultCount() == 0 {
		return dimStyle.Render("No matching notes")
	}

	start, end := listWindow(m.resultCount(), m.nav.resultIndex, height)

	var rows []string
	for i := start; i < end; i++ {
		title := displayTitle(m.results.Matches[i])
		style := listItemStyle
		if i == m.nav.resultIndex {
			style = selectedItemStyle
		}
		rows = append(rows, style.MaxWidth(m.listWidth()).Render(title))
	}

	return strings.Join(rows, "\n")
}

func (m Model) previewPane() string {
	sel, ok := m.selected()
	if !ok {
		return ""
	}

	rendered := m.preview.render(sel.Note.Path, m.contentWidth())
	return viewportSlice(rendered, m.nav.scrollOffset, m.viewportHeight())
}

func (m Model) resultsHeader() string {
	if m.results == nil {
		return headerStyle.Render("No search has run")
	}

	count := m.resultCount()
	header := fmt.Sprintf("%d results for %s", count, m.results.Query.Describe())
	if count == 1 {
		header = fmt.Sprintf("1 result for %s", m.results.Query.Describe())
	}

	if sel, ok := m.selected(); ok {
		position := dimStyle.Render(
			fmt.Sprintf("  [%d/%d] %s", m.nav.resultIndex+1, count, sel.Note.Path),
		)
		return headerStyle.Render(header) + position
	}
	return headerStyle.Render(header)
}

func (m Model) statusLine() string {
	if m.status == "" {
		return "\n"
	}
	return statusStyle(m.status) + "\n"
}

func (m Model) footer(help string) string {
	return helpStyle.Render(help)
}

func inputTitle(kind search.Kind) string {
	switch kind {
	case search.KindTags:
		return "Search by Tag(s)"
	case search.KindDate:
		return "Search by Date"
	default:
		return "Search by Subject"
	}
}

func inputHint(kind search.Kind) string {
	switch kind {
	case search.KindTags:
		return "Comma-separated; a term matches any tag containing it (and vice versa)"
	case search.KindDate:
		return "YYYY, YYYYMM, a full ID code, or a calendar date"
	default:
		return "Matches the SUBJECT= line, or the file name for untitled notes"
	}
}

// listWindow picks the [start, end) slice of rows to draw so the
// cursor row is always inside the window.
func listWindow(count, cursor, height int) (int, int) {
	if height <= 0 || count == 0 {
		return 0, 0
	}
	if count <= height {
		return 0, count
	}

	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start > count-height {
		start = count - height
	}
	return start, start + height
}
