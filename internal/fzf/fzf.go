// Package fzf is the interactive fuzzy picker over the whole vault,
// used by commands that need one note chosen without running a query
// first. Candidates are labeled with their subject and tags and
// previewed as rendered markdown.
package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"dynix/internal/parser"
	"dynix/internal/vault"
)

// ErrNoSelection reports that the picker was dismissed without a
// choice. Callers treat it as a clean exit, not a failure.
var ErrNoSelection = errors.New("no note selected")

// Picker runs fuzzy selection over every note a scanner finds.
type Picker struct {
	scanner *vault.Scanner
	header  string
	notes   []vault.Note
}

func NewPicker(scanner *vault.Scanner, header string) *Picker {
	return &Picker{scanner: scanner, header: header}
}

// Pick scans the vault and returns the path of the chosen note. query
// pre-fills the filter line.
func (p *Picker) Pick(query string) (string, error) {
	notes, _, err := p.scanner.Scan()
	if err != nil {
		return "", fmt.Errorf("error listing notes: %w", err)
	}
	if len(notes) == 0 {
		return "", fmt.Errorf("no notes found in %s", p.scanner.Root())
	}
	p.notes = notes

	idx, err := p.find(query)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("error selecting note: %w", err)
	}

	return p.notes[idx].Path, nil
}

func (p *Picker) find(query string) (int, error) {
	labels := make([]string, len(p.notes))
	for i, note := range p.notes {
		labels[i] = noteLabel(note)
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(p.preview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if p.header != "" {
		options = append(options, fuzzyfinder.WithHeader(p.header))
	}

	return fuzzyfinder.Find(p.notes, func(i int) string {
		return labels[i]
	}, options...)
}

// noteLabel is the candidate line shown in the picker: the note's
// title followed by its tags.
func noteLabel(note vault.Note) string {
	meta := parser.Extract(note.Raw)

	title := meta.Subject
	if title == "" {
		title = parser.FirstHeading(note.Raw)
	}
	if title == "" {
		title = note.Basename()
	}

	if len(meta.Tags) == 0 {
		return fmt.Sprintf("%s [No tags]", title)
	}
	return fmt.Sprintf("%s [Tags: %s]", title, strings.Join(meta.Tags, ", "))
}

func (p *Picker) preview(i, w, _ int) string {
	if i == -1 {
		return ""
	}

	if w <= 0 {
		w = 100
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(p.notes[i].Raw))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
