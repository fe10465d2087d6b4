package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"dynix/internal/state"
	"dynix/internal/tui/initialize"
)

func NewCmdInit(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Aliases: []string{"initialize", "i"},
		Short:   "Walk through setting up the dynix configuration.",
		Long: heredoc.Doc(`
			This command walks you through configuring dynix: pick the editor
			used to open notes, then fill in the vault directory and editor
			arguments. The result is written to the config file and the vault
			directory is created if it does not exist yet.
		`),
		Example: "dynix init",
		RunE: func(cmd *cobra.Command, args []string) error {
			editorSel := selection.New(
				"Select the editor used to open notes.",
				[]string{"nvim", "vim", "nano", "hx", "code"},
			)
			editorSel.Filter = nil

			editor, err := editorSel.RunPrompt()
			if err != nil {
				return err
			}

			return initialize.Run(s.Home, editor)
		},
	}
}
