package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dynix/internal/editor"
)

// editorFinishedMsg arrives when the external editor exits, on every
// exit path including a crashed editor, so the UI always resumes.
type editorFinishedMsg struct {
	err error
}

// openEditorCmd suspends the program, hands the terminal to the
// configured editor and restores it when the editor is done.
func openEditorCmd(path string) tea.Cmd {
	cmd, err := editor.Command(path)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}
