package controller

import (
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/jscov/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	input  io.Reader

	mu      sync.Mutex
	mode    StartMode
	program *tea.Program
	done    chan struct{}
	closed  bool
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, input: os.Stdin}
}

// Start initializes the UI. Instrument mode shows a progress bar while files
// are processed; the other modes print as results arrive.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)

	t.mu.Lock()
	t.mode = cfg.mode
	t.closed = false
	t.mu.Unlock()

	if cfg.mode == ModeInstrument {
		t.startWithModel(newProgressModel())
	}

	return nil
}

func (t *TUI) startWithModel(model tea.Model) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input))
	done := make(chan struct{})

	t.program = program
	t.done = done

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// Wait blocks until the running program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close stops the running program. It is safe to call more than once.
func (t *TUI) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	t.closed = true
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Quit()
	}

	t.Wait()

	t.mu.Lock()
	t.program = nil
	t.done = nil
	t.mu.Unlock()
}

// DisplayPlan updates the progress total.
func (t *TUI) DisplayPlan(files int, threads int) {
	t.send(planMsg{files: files, threads: threads})
}

// DisplayFileResult advances the progress bar, or prints a status line in
// watch mode.
func (t *TUI) DisplayFileResult(result m.FileResult) {
	t.mu.Lock()
	mode := t.mode
	t.mu.Unlock()

	if mode != ModeWatch {
		t.send(fileDoneMsg{path: displayPath(result), status: statusOf(result)})
		return
	}

	status := statusOf(result)
	style := lipgloss.NewStyle().Foreground(statusColor(status)).Bold(true)

	line := fmt.Sprintf("%s %s", style.Render(fmt.Sprintf("%-7s", status)), displayPath(result))
	if result.Error == nil && !result.Skipped {
		line += fmt.Sprintf(" (s:%d f:%d b:%d)", result.Counts.Statements, result.Counts.Functions, result.Counts.Branches)
	}

	t.mu.Lock()
	_, _ = fmt.Fprintln(t.output, line)
	t.mu.Unlock()
}

// DisplaySummary stops the progress view and shows the per-file counters.
// Summaries taller than the terminal open a scrollable list. It returns err
// unchanged.
func (t *TUI) DisplaySummary(results []m.FileResult, err error) error {
	t.send(finishedMsg{})
	t.Wait()

	t.mu.Lock()
	t.program = nil
	t.done = nil
	mode := t.mode
	t.mu.Unlock()

	if len(results) == 0 {
		if err != nil {
			_, _ = fmt.Fprintf(t.output, "instrumentation error: %v\n", err)
			return err
		}

		_, _ = fmt.Fprintln(t.output, "No JavaScript files found")

		return nil
	}

	model := newSummaryModel(results, err)

	width, height := t.size()
	if width > 0 {
		model.width = width
	}

	if mode == ModeWatch || !model.needsPagination(height) {
		_, _ = fmt.Fprint(t.output, model.staticView())
		return err
	}

	model.height = height

	t.startWithModel(model)
	t.Wait()

	return err
}

func (t *TUI) size() (int, int) {
	file, ok := t.output.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}
