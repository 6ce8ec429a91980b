package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vbump",
	Short: "A CLI tool for managing project version metadata",
	Long: `vbump shows, bumps and sets the version of a project directory.

It detects where the version lives (plain version file, Node manifest,
Erlang application resource file or Ansible role tags) and synchronizes
the surrounding git repository around every change: the working tree must
be clean and up to date before a mutation, and the result is committed,
pushed and tagged.`,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// InitCommands wires all subcommands.
func InitCommands() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log workflow steps to stderr")
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newBumpCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newVersionCmd())
}
