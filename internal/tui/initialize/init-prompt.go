// Package initialize is the guided setup form: a small multi-field
// prompt that collects the vault directory and editor arguments and
// writes them to the config file.
package initialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dynix/internal/config"
	"dynix/internal/constants"
)

var (
	focusedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7"))
	focusedDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	blurredStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7"))
	cursorStyle     = focusedStyle
	noStyle         = lipgloss.NewStyle()
	promptHelpStyle = blurredStyle
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))

	focusedButton = focusedStyle.Render("[ Submit ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Submit"))
)

// saveFunc persists the collected values. Swapped out by tests.
type saveFunc func(vaultDir, editorArgs string) error

type PromptModel struct {
	inputs     []textinput.Model
	focusIndex int
	home       string
	save       saveFunc
	err        error
	done       bool
}

func NewPrompt(home string, save saveFunc) PromptModel {
	m := PromptModel{
		inputs: make([]textinput.Model, 2),
		home:   home,
		save:   save,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 128

		switch i {
		case 0:
			t.Prompt = "Vault Directory: "
			t.Placeholder = filepath.Join(home, constants.DefaultVaultSubdir)
			t.Focus()
			t.PlaceholderStyle = focusedDimStyle
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Prompt = "Editor Arguments: "
			t.Placeholder = "none"
			t.PlaceholderStyle = focusedDimStyle
			t.PromptStyle = noStyle
		}

		m.inputs[i] = t
	}

	return m
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter on the submit button saves; a failed save keeps
			// the form open with the error shown.
			if s == "enter" && m.focusIndex == len(m.inputs) {
				m.err = m.save(m.vaultDir(), m.editorArgs())
				m.done = m.err == nil
				if m.done {
					return m, tea.Quit
				}
				return m, nil
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *PromptModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// vaultDir returns the typed vault directory, or the placeholder
// default when the field is left blank.
func (m PromptModel) vaultDir() string {
	if v := strings.TrimSpace(m.inputs[0].Value()); v != "" {
		return v
	}
	return filepath.Join(m.home, constants.DefaultVaultSubdir)
}

func (m PromptModel) editorArgs() string {
	return strings.TrimSpace(m.inputs[1].Value())
}

func (m PromptModel) View() string {
	var b strings.Builder

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", *button)

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteRune('\n')
	}
	b.WriteString(promptHelpStyle.Render("(Leave inputs blank for default values)"))

	return b.String()
}

// Run executes the form for home. editor was chosen before the form
// runs and is saved alongside the typed values; the vault directory
// is created when it does not exist yet.
func Run(home, editor string) error {
	save := func(vaultDir, editorArgs string) error {
		cfg, err := config.Load(home)
		if err != nil {
			return err
		}
		cfg.VaultDir = vaultDir
		cfg.Editor = editor
		cfg.EditorArgs = editorArgs
		if err := cfg.Save(); err != nil {
			return err
		}
		return os.MkdirAll(vaultDir, 0o755)
	}

	final, err := tea.NewProgram(NewPrompt(home, save)).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(PromptModel); ok && m.done {
		fmt.Println("Initialization complete!")
	}
	return nil
}
