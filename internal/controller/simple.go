package controller

import (
	"bytes"
	"fmt"
	"sync"

	m "github.com/mouse-blink/jscov/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI by printing plain text through the cobra command.
// It is safe for concurrent use.
type SimpleUI struct {
	cmd  *cobra.Command
	mu   sync.Mutex
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)

	s.mu.Lock()
	s.mode = cfg.mode
	s.mu.Unlock()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; there is nothing to close interactively.
func (s *SimpleUI) Wait() {}

// DisplayPlan announces how many files are about to be processed.
func (s *SimpleUI) DisplayPlan(files int, threads int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeList {
		return
	}

	s.printf("Instrumenting %d file(s) with %d worker(s)\n", files, threads)
}

// DisplayFileResult prints one line per file in watch mode.
func (s *SimpleUI) DisplayFileResult(result m.FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeWatch {
		return
	}

	line := fmt.Sprintf("%-7s %s", statusOf(result), displayPath(result))
	if result.Error == nil && !result.Skipped {
		line += fmt.Sprintf(" (s:%d f:%d b:%d)", result.Counts.Statements, result.Counts.Functions, result.Counts.Branches)
	}

	s.printf("%s\n", line)
}

// DisplaySummary prints the per-file counter table followed by any errors.
// It returns err unchanged.
func (s *SimpleUI) DisplaySummary(results []m.FileResult, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(results) == 0 {
		if err != nil {
			s.printf("instrumentation error: %v\n", err)
			return err
		}

		s.printf("No JavaScript files found\n")

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Statements", "Functions", "Branches", "Status"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, r := range results {
		status := statusOf(r)
		if r.Skipped && r.Reason != "" {
			status += " (" + r.Reason + ")"
		}

		table.Append([]string{
			displayPath(r),
			fmt.Sprintf("%d", r.Counts.Statements),
			fmt.Sprintf("%d", r.Counts.Functions),
			fmt.Sprintf("%d", r.Counts.Branches),
			status,
		})
	}

	counts, skipped, failed := totalsOf(results)

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d", counts.Statements),
		fmt.Sprintf("%d", counts.Functions),
		fmt.Sprintf("%d", counts.Branches),
		fmt.Sprintf("%d skipped %d failed", skipped, failed),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	for _, r := range results {
		if r.Error != nil {
			s.printf("error: %v\n", r.Error)
		}
	}

	if err != nil && failed == 0 {
		s.printf("instrumentation error: %v\n", err)
	}

	return err
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
