package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/jscov/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd { return tea.Quit }
func (q quitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return q, tea.Quit
}
func (q quitModel) View() string { return "" }

func newTestTUI(buf *bytes.Buffer) *TUI {
	tui := NewTUI(buf)
	tui.input = strings.NewReader("")

	return tui
}

func waitWithTimeout(t *testing.T, name string, fn func()) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s timed out", name)
	}
}

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	tui.startWithModel(quitModel{})

	waitWithTimeout(t, "Wait()", tui.Wait)
	waitWithTimeout(t, "Close()", tui.Close)
}

func TestTUI_Send_NoProgram(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	// no program yet, must not block
	tui.send(planMsg{files: 1})
	tui.DisplayPlan(1, 1)
	tui.DisplayFileResult(m.FileResult{Source: m.Source{Rel: "a.js"}})

	if buf.Len() != 0 {
		t.Fatalf("list mode should not print per-file lines, got %q", buf.String())
	}
}

func TestTUI_MultipleClose(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	tui.Close()
	tui.Close() // Close again should be safe

	tui2 := newTestTUI(&buf)
	tui2.Wait() // Wait without start should be no-op
}

func TestTUI_WatchModePrintsFileLines(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	if err := tui.Start(WithWatchMode()); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	defer tui.Close()

	tui.DisplayFileResult(m.FileResult{Source: m.Source{Rel: "src/a.js"}, Counts: m.Counts{Statements: 2, Functions: 1}})
	tui.DisplayFileResult(m.FileResult{Source: m.Source{Rel: "src/b.js"}, Skipped: true})

	out := buf.String()
	if !strings.Contains(out, "src/a.js (s:2 f:1 b:0)") {
		t.Fatalf("missing instrumented line\n%s", out)
	}

	if !strings.Contains(out, "src/b.js") || strings.Contains(out, "src/b.js (s:") {
		t.Fatalf("skipped line should have no counts\n%s", out)
	}
}

func TestTUI_DisplaySummary_Static(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	if err := tui.Start(WithListMode()); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	defer tui.Close()

	results := []m.FileResult{{Source: m.Source{Rel: "lib/x.js"}, Counts: m.Counts{Statements: 5}}}
	if err := tui.DisplaySummary(results, nil); err != nil {
		t.Fatalf("DisplaySummary error = %v", err)
	}

	if !strings.Contains(buf.String(), "lib/x.js") {
		t.Fatalf("summary missing path\n%s", buf.String())
	}
}

func TestTUI_DisplaySummary_NoResults(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	if err := tui.DisplaySummary(nil, nil); err != nil {
		t.Fatalf("DisplaySummary error = %v", err)
	}

	if !strings.Contains(buf.String(), "No JavaScript files found") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()

	boom := errors.New("boom")
	if err := tui.DisplaySummary(nil, boom); !errors.Is(err, boom) {
		t.Fatalf("DisplaySummary error = %v, want boom", err)
	}

	if !strings.Contains(buf.String(), "instrumentation error: boom") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTUI_InstrumentModeRunsProgress(t *testing.T) {
	var buf bytes.Buffer
	tui := newTestTUI(&buf)

	if err := tui.Start(WithInstrumentMode()); err != nil {
		t.Fatalf("Start error = %v", err)
	}

	tui.DisplayPlan(1, 1)
	tui.DisplayFileResult(m.FileResult{Source: m.Source{Rel: "a.js"}})

	results := []m.FileResult{{Source: m.Source{Rel: "a.js"}}}

	waitWithTimeout(t, "DisplaySummary()", func() {
		if err := tui.DisplaySummary(results, nil); err != nil {
			t.Errorf("DisplaySummary error = %v", err)
		}
	})

	waitWithTimeout(t, "Close()", tui.Close)

	if !strings.Contains(buf.String(), "a.js") {
		t.Fatalf("output missing path\n%s", buf.String())
	}
}
