package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "15five",
	Version: Version,
	Short:   "Workflow utilities for 15Five objectives",
	Long: `15five-utils automates the objective bookkeeping 15Five makes manual:
cloning an objective to one teammate or a whole team, and pushing a
parent objective's key-result progress down to its children.

Run without arguments to start the interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Assigned in init rather than in the composite literal above to avoid an
// initialization cycle: runShell also references RootCmd.
func init() {
	RootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runShell()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}
