package tui

import (
	"dynix/internal/parser"
	"dynix/internal/search"
)

// displayTitle picks the list label for a match: the declared subject,
// else the first markdown heading, else the bare file name.
func displayTitle(m search.Match) string {
	if m.Meta.HasSubject() {
		return m.Meta.Subject
	}
	if heading := parser.FirstHeading(m.Note.Raw); heading != "" {
		return heading
	}
	return m.Note.Basename()
}
