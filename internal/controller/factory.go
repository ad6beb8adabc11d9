package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUI picks the interactive progress view for terminals and the plain
// text output for everything else.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal able to host the
// progress view. Files, pipes, character devices such as /dev/null and
// TERM=dumb sessions get plain output.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok || file == nil {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
