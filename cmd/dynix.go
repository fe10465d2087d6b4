// Package cmd wires the dynix command tree: the root command launches
// the interactive browser, subcommands cover headless search, tag
// listing, fuzzy open and first-run setup.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dynix/internal/config"
	"dynix/internal/constants"
	"dynix/internal/state"
)

// Execute bootstraps config and state for the user's home directory
// and runs the command tree. Errors have been printed by the time it
// exits non-zero.
func Execute() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	s, err := state.NewState(home)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := NewCmdRoot(s).Execute(); err != nil {
		os.Exit(1)
	}
}
