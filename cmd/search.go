package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"dynix/internal/search"
	"dynix/internal/state"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"q"},
		Short:   "Run one query against the vault and print matching paths.",
		Long: heredoc.Doc(`
			Run a single search without the interactive browser and print the
			path of every matching note, one per line, in vault scan order.

			Example:
			  dynix search subject kubernetes
			  dynix search tags finance,q1
			  dynix search date 20240131-1530
		`),
	}

	cmd.AddCommand(
		newSearchKindCmd(s, search.KindSubject,
			"subject TERM...",
			"Match TERM against SUBJECT= lines, or file names for untitled notes.",
		),
		newSearchKindCmd(s, search.KindTags,
			"tags TAG[,TAG...]",
			"Match notes whose tags and the given terms contain one another.",
		),
		newSearchKindCmd(s, search.KindDate,
			"date TERM",
			"Match TERM as a prefix of each note's embedded ID code.",
		),
	)

	return cmd
}

func newSearchKindCmd(s *state.State, kind search.Kind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ValidateVault(); err != nil {
				return err
			}

			q := search.NewQuery(kind, joinArgs(kind, args))
			if q.Empty() {
				return fmt.Errorf("empty %s query", kind)
			}

			rs, err := s.Engine().Run(q)
			if err != nil {
				return err
			}

			if rs.Skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d unreadable entries\n", rs.Skipped)
			}
			for _, m := range rs.Matches {
				fmt.Fprintln(cmd.OutOrStdout(), m.Note.Path)
			}
			return nil
		},
	}
}

// joinArgs glues shell-split arguments back into one query line. Tag
// arguments join on commas so both "finance,q1" and "finance q1" name
// two terms.
func joinArgs(kind search.Kind, args []string) string {
	if kind == search.KindTags {
		return strings.Join(args, ",")
	}
	return strings.Join(args, " ")
}
