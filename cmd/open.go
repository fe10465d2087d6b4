package cmd

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"dynix/internal/editor"
	"dynix/internal/fzf"
	"dynix/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Fuzzy-find a note and open it in the configured editor.",
		Long: heredoc.Doc(`
			Browse every note in the vault with a fuzzy finder and rendered
			preview, then open the selection in the configured editor. An
			optional argument pre-fills the filter line.
		`),
		Example: "dynix open or dynix open standup",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ValidateVault(); err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			path, err := fzf.NewPicker(s.Scanner(), "Select note to open.").Pick(query)
			if err != nil {
				if errors.Is(err, fzf.ErrNoSelection) {
					fmt.Fprintln(cmd.OutOrStdout(), "No note selected")
					return nil
				}
				return err
			}

			if printPath, _ := cmd.Flags().GetBool("print"); printPath {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}
			return editor.Open(path)
		},
	}

	cmd.Flags().BoolP("print", "p", false, "print the selected path instead of opening it")
	return cmd
}
