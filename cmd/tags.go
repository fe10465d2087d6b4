package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dynix/internal/state"
)

func NewCmdTags(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "tags",
		Aliases: []string{"t"},
		Short:   "List every tag in the vault with its note count.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ValidateVault(); err != nil {
				return err
			}

			tags, skipped, err := s.Engine().AllTags()
			if err != nil {
				return err
			}
			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d unreadable entries\n", skipped)
			}

			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
				return nil
			}

			width := 0
			for _, tc := range tags {
				if len(tc.Tag) > width {
					width = len(tc.Tag)
				}
			}
			for _, tc := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %d\n", width, tc.Tag, tc.Notes)
			}
			return nil
		},
	}
}
