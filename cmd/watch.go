package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/jscov/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

const watchLongDescription = `Instrument every source once, then re-instrument files as they are
created or modified until interrupted.

Bursts of writes are coalesced before a file is processed again. Files
that already carry counters are skipped, so --in-place does not loop.

` + pathsHelp

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-instrument sources when they change",
		Long:  watchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			instrumentArgs, err := resolveArgs(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Watch(ctx, domain.WatchArgs{InstrumentArgs: instrumentArgs})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
