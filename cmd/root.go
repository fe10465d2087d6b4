package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dynix/internal/constants"
	"dynix/internal/state"
	"dynix/internal/tui"
)

func NewCmdRoot(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dynix",
		Short: "Search and browse a vault of markdown notes without leaving the terminal.",
		Long: heredoc.Doc(`
			dynix searches a directory tree of markdown notes by subject, tags or
			embedded date code and browses the matches with rendered previews.

			Run it bare for the interactive browser, or use the subcommands for
			scripting:

			  dynix search subject kubernetes
			  dynix search tags finance,q1
			  dynix search date 202401
			  dynix tags
			  dynix open
		`),
		Version: constants.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(s)
		},
	}

	cmd.PersistentFlags().String("vault", "", "vault directory to search (overrides config)")
	cmd.PersistentFlags().String("editor", "", "editor used to open notes (overrides config)")

	// Config values are mirrored into viper with Set, which outranks
	// bound flags, so changed flags are applied the same way.
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetString("vault"); v != "" {
			viper.Set("vaultdir", v)
		}
		if v, _ := cmd.Flags().GetString("editor"); v != "" {
			viper.Set("editor", v)
		}
	}

	cmd.AddCommand(
		NewCmdSearch(s),
		NewCmdTags(s),
		NewCmdOpen(s),
		NewCmdInit(s),
	)

	return cmd
}
