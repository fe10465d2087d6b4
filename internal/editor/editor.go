// Package editor builds and runs the external editor command used to
// open a note. The editor binary and extra arguments come from config
// via viper; the note path is always the final argument.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/viper"
)

// Command prepares the editor invocation for path without starting
// it. The TUI hands the result to tea.ExecProcess so the terminal is
// released for the duration and reacquired afterwards.
func Command(path string) (*exec.Cmd, error) {
	editor := strings.TrimSpace(viper.GetString("editor"))
	if editor == "" {
		return nil, fmt.Errorf("editor not configured")
	}

	var args []string
	if extra := strings.TrimSpace(viper.GetString("editorargs")); extra != "" {
		args = append(args, strings.Fields(extra)...)
	}
	args = append(args, path)

	return exec.Command(editor, args...), nil
}

// Open runs the editor attached to the current terminal and waits for
// it to exit. CLI commands use this directly; inside the TUI use
// Command with tea.ExecProcess instead.
func Open(path string) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", cmd.Args[0], err)
	}
	return nil
}
