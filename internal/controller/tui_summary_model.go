package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/jscov/internal/model"
)

// Lines taken by everything around the file list: title, summary, footer,
// border and the column header.
const summaryChromeHeight = 9

// Simple delegate for summary list items.
type summaryDelegate struct {
	offset int
}

func (d summaryDelegate) Height() int  { return 1 }
func (d summaryDelegate) Spacing() int { return 0 }
func (d summaryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d summaryDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	_, _ = fmt.Fprint(w, renderRow(file, lm.Width(), index == lm.Index(), d.offset))
}

// renderRow draws one file line. Selected rows scroll long paths.
func renderRow(file fileItem, width int, selected bool, offset int) string {
	pathWidth := width - 36 // three count columns (6) + status (10) + spacing

	var countStyle, statusStyle, pathStyle lipgloss.Style

	var path string

	if selected {
		base := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = base.Width(6).Align(lipgloss.Right)
		statusStyle = base.Width(10).Align(lipgloss.Left)
		pathStyle = base
		path = animateScroll(file.path, pathWidth, offset)
	} else {
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right)
		statusStyle = lipgloss.NewStyle().
			Foreground(statusColor(file.status)).
			Bold(true).
			Width(10).
			Align(lipgloss.Left)
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		path = truncateToWidth(file.path, pathWidth)
	}

	return fmt.Sprintf("%s  %s  %s  %s  %s",
		countStyle.Render(fmt.Sprintf("%d", file.counts.Statements)),
		countStyle.Render(fmt.Sprintf("%d", file.counts.Functions)),
		countStyle.Render(fmt.Sprintf("%d", file.counts.Branches)),
		statusStyle.Render(file.status),
		pathStyle.Render(path),
	)
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	textWidth := lipgloss.Width(text)
	if textWidth <= width {
		return text
	}

	// Gap between repeats
	gap := "   "

	// Initial pause before scrolling starts (in ticks)
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	effectiveStep := offset - pause

	runes := []rune(text + gap)
	n := len(runes)

	start := effectiveStep % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// summaryModel lists per-file counters after a run.
type summaryModel struct {
	width        int
	height       int
	fileList     list.Model
	delegate     summaryDelegate
	items        []fileItem
	totals       m.Counts
	skipped      int
	failed       int
	errors       []string
	animOffset   int
	lastSelected int
}

func newSummaryModel(results []m.FileResult, err error) summaryModel {
	delegate := summaryDelegate{}
	fileList := list.New([]list.Item{}, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	items := make([]fileItem, 0, len(results))
	listItems := make([]list.Item, 0, len(results))

	var errs []string

	for _, r := range results {
		item := newFileItem(r)
		items = append(items, item)
		listItems = append(listItems, item)

		if r.Error != nil {
			errs = append(errs, r.Error.Error())
		}
	}

	fileList.SetItems(listItems)

	totals, skipped, failed := totalsOf(results)

	if err != nil && failed == 0 {
		errs = append(errs, err.Error())
	}

	return summaryModel{
		fileList:     fileList,
		delegate:     delegate,
		items:        items,
		totals:       totals,
		skipped:      skipped,
		failed:       failed,
		errors:       errs,
		lastSelected: 0,
		width:        80,
	}
}

// needsPagination reports whether the rows do not fit in height lines.
func (sm summaryModel) needsPagination(height int) bool {
	if height <= 0 {
		return false
	}

	return len(sm.items)+len(sm.errors)+summaryChromeHeight > height
}

func (sm summaryModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.width = msg.Width
		sm.height = msg.Height
		sm.fileList.SetWidth(sm.width)

	case tickMsg:
		if sm.fileList.FilterState() == list.Filtering {
			return sm, nil
		}

		sm.animOffset++
		sm.delegate.offset = sm.animOffset
		sm.fileList.SetDelegate(sm.delegate)

		return sm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return sm, tea.Quit
		default:
			sm.fileList, cmd = sm.fileList.Update(msg)

			if sm.fileList.Index() != sm.lastSelected {
				sm.lastSelected = sm.fileList.Index()
				sm.animOffset = 0
				sm.delegate.offset = 0
				sm.fileList.SetDelegate(sm.delegate)
			}

			return sm, cmd
		}
	}

	return sm, cmd
}

func (sm summaryModel) header() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan

	title := titleStyle.Render("jscov Instrumentation Summary")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s   Statements: %s   Functions: %s   Branches: %s   Skipped: %s   Errors: %s",
		accentStyle.Render(fmt.Sprintf("%d", len(sm.items))),
		accentStyle.Render(fmt.Sprintf("%d", sm.totals.Statements)),
		accentStyle.Render(fmt.Sprintf("%d", sm.totals.Functions)),
		accentStyle.Render(fmt.Sprintf("%d", sm.totals.Branches)),
		accentStyle.Render(fmt.Sprintf("%d", sm.skipped)),
		accentStyle.Render(fmt.Sprintf("%d", sm.failed)),
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, summary)
}

func (sm summaryModel) columnHeaders(width int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(width)

	return headerStyle.Render(fmt.Sprintf("%6s  %6s  %6s  %-10s  %s", "Stmts", "Funcs", "Branch", "Status", "File Path"))
}

func (sm summaryModel) errorLines() string {
	if len(sm.errors) == 0 {
		return ""
	}

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Padding(0, 0, 0, 2)

	lines := make([]string, 0, len(sm.errors))
	for _, e := range sm.errors {
		lines = append(lines, errStyle.Render("error: "+e))
	}

	return strings.Join(lines, "\n")
}

func (sm summaryModel) View() string {
	listWidth := sm.width - 6

	listHeight := sm.height - summaryChromeHeight - len(sm.errors)
	if listHeight < 5 {
		listHeight = 5
	}

	sm.fileList.SetHeight(listHeight)
	sm.fileList.SetWidth(listWidth)

	table := tableContainer().Render(
		lipgloss.JoinVertical(lipgloss.Left,
			sm.columnHeaders(listWidth),
			sm.fileList.View(),
		),
	)

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(sm.width).
		Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		sm.header(),
		table,
		sm.errorLines(),
		footer,
	)
}

// staticView renders every row at once, for summaries that fit the screen
// or output that is not interactive.
func (sm summaryModel) staticView() string {
	listWidth := sm.width - 6

	rows := make([]string, 0, len(sm.items)+1)
	rows = append(rows, sm.columnHeaders(listWidth))

	for _, item := range sm.items {
		rows = append(rows, renderRow(item, listWidth, false, 0))
	}

	parts := []string{sm.header(), tableContainer().Render(lipgloss.JoinVertical(lipgloss.Left, rows...))}
	if errs := sm.errorLines(); errs != "" {
		parts = append(parts, errs)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func tableContainer() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)
}
