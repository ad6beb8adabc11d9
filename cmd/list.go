package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

const listLongDescription = `List the JavaScript files that would be instrumented together with the
number of statement, function and branch counters each would receive.

Files are instrumented in memory only; nothing is written.

` + pathsHelp

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and counter counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			instrumentArgs, err := resolveArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Estimate(cmd.Context(), instrumentArgs.EstimateArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
