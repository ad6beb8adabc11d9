package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/jscov/internal/model"
)

func TestAnimateScroll_Edges(t *testing.T) {
	if got := animateScroll("hello", 0, 0); got != "" {
		t.Fatalf("animateScroll width 0 = %q, want empty", got)
	}

	if got := animateScroll("hi", 5, 0); got != "hi" {
		t.Fatalf("animateScroll short text = %q, want hi", got)
	}

	if got := animateScroll("abcdef", 3, 0); got != "ab…" {
		t.Fatalf("animateScroll pause = %q, want ab…", got)
	}

	got := animateScroll("abcdef", 3, 10)
	if got == "ab…" || len([]rune(got)) != 3 {
		t.Fatalf("animateScroll scrolled = %q, want len 3 and not truncated", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 0); got != "" {
		t.Fatalf("truncateToWidth width 0 = %q, want empty", got)
	}

	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("truncateToWidth no truncation = %q", got)
	}

	if got := truncateToWidth("hello", 1); got != "…" {
		t.Fatalf("truncateToWidth width 1 = %q, want ellipsis", got)
	}

	if got := truncateToWidth("hello", 2); got != "h…" {
		t.Fatalf("truncateToWidth width 2 = %q, want h…", got)
	}
}

func summaryResults() []m.FileResult {
	return []m.FileResult{
		{Source: m.Source{Rel: "src/a.js"}, Counts: m.Counts{Statements: 3, Functions: 1, Branches: 2, Paths: 4}},
		{Source: m.Source{Rel: "src/b.js"}, Skipped: true, Reason: "ignore file directive"},
		{Source: m.Source{Rel: "src/c.js"}, Error: errors.New("src/c.js:1:4: syntax error")},
	}
}

func TestNewSummaryModel_Totals(t *testing.T) {
	sm := newSummaryModel(summaryResults(), nil)

	if len(sm.items) != 3 {
		t.Fatalf("items = %d, want 3", len(sm.items))
	}

	if sm.totals.Statements != 3 || sm.totals.Branches != 2 {
		t.Fatalf("totals = %+v", sm.totals)
	}

	if sm.skipped != 1 || sm.failed != 1 {
		t.Fatalf("skipped/failed = %d/%d, want 1/1", sm.skipped, sm.failed)
	}

	if len(sm.errors) != 1 || !strings.Contains(sm.errors[0], "syntax error") {
		t.Fatalf("errors = %v", sm.errors)
	}
}

func TestNewSummaryModel_RunErrorWithoutFailedFiles(t *testing.T) {
	results := summaryResults()[:1]
	sm := newSummaryModel(results, errors.New("manifest write failed"))

	if len(sm.errors) != 1 || sm.errors[0] != "manifest write failed" {
		t.Fatalf("errors = %v", sm.errors)
	}
}

func TestSummaryModel_NeedsPagination(t *testing.T) {
	sm := newSummaryModel(summaryResults(), nil)

	if sm.needsPagination(0) {
		t.Fatalf("unknown height should not paginate")
	}

	if sm.needsPagination(100) {
		t.Fatalf("3 rows should fit in 100 lines")
	}

	if !sm.needsPagination(5) {
		t.Fatalf("3 rows should not fit in 5 lines")
	}
}

func TestSummaryModel_StaticView(t *testing.T) {
	sm := newSummaryModel(summaryResults(), nil)
	sm.width = 120

	view := sm.staticView()

	for _, want := range []string{
		"jscov Instrumentation Summary",
		"src/a.js",
		"src/b.js",
		"skipped",
		"error: src/c.js:1:4: syntax error",
		"File Path",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("staticView() missing %q\n%s", want, view)
		}
	}
}

func TestSummaryModel_UpdateBranches(t *testing.T) {
	sm := newSummaryModel(summaryResults(), nil)

	if cmd := sm.Init(); cmd == nil {
		t.Fatalf("Init() returned nil cmd")
	}

	model, cmd := sm.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("expected tick cmd")
	}

	updated := model.(summaryModel)
	if updated.animOffset != 1 {
		t.Fatalf("animOffset = %d, want 1", updated.animOffset)
	}

	model, _ = updated.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated = model.(summaryModel)

	if updated.width != 100 || updated.height != 40 {
		t.Fatalf("window size not applied")
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	updated = model.(summaryModel)

	if updated.lastSelected != 1 || updated.animOffset != 0 {
		t.Fatalf("selection change should reset animation, got selected %d offset %d", updated.lastSelected, updated.animOffset)
	}

	if view := updated.View(); !strings.Contains(view, "src/a.js") {
		t.Fatalf("View() missing row\n%s", view)
	}

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
}

func TestSummaryDelegate_Render(t *testing.T) {
	delegate := summaryDelegate{}
	items := []list.Item{fileItem{path: "path/to/file.js", counts: m.Counts{Statements: 2}, status: "ok"}}
	lm := list.New(items, delegate, 80, 5)

	var buf bytes.Buffer

	delegate.Render(&buf, lm, 0, items[0])

	if !strings.Contains(buf.String(), "path/to/file.js") {
		t.Fatalf("render output missing path: %q", buf.String())
	}

	buf.Reset()
	delegate.Render(&buf, lm, 1, items[0])

	if buf.Len() == 0 {
		t.Fatalf("render output empty")
	}

	// Render with bad item type should not panic
	buf.Reset()
	delegate.Render(&buf, lm, 0, struct{ list.Item }{})

	if delegate.Height() != 1 || delegate.Spacing() != 0 {
		t.Fatalf("unexpected delegate dimensions")
	}

	if cmd := delegate.Update(nil, &lm); cmd != nil {
		t.Fatalf("Update() returned cmd")
	}
}
