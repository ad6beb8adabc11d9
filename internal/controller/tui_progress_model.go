package controller

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressModel shows instrumentation progress while the worker pool runs.
type progressModel struct {
	width       int
	height      int
	progressBar progress.Model
	total       int
	completed   int
	skipped     int
	failed      int
	threads     int
	lastFile    string
	lastStatus  string
	rendered    bool
	finished    bool
}

func newProgressModel() progressModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return progressModel{progressBar: prog}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tickMsg:
		if m.finished {
			return m, nil
		}

		return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case planMsg:
		m.total += msg.files
		m.threads = msg.threads
		m.rendered = true

	case fileDoneMsg:
		m.completed++
		m.lastFile = msg.path
		m.lastStatus = msg.status

		switch msg.status {
		case "skipped":
			m.skipped++
		case "error":
			m.failed++
		}

	case finishedMsg:
		m.finished = true

		return m, tea.Quit
	}

	return m, nil
}

func (m progressModel) percent() float64 {
	if m.total == 0 {
		return 0
	}

	return float64(m.completed) / float64(m.total)
}

func (m progressModel) View() string {
	if !m.rendered {
		return "Scanning for JavaScript files…\n"
	}

	accentColor := lipgloss.Color("6") // Cyan

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	title := titleStyle.Render("jscov Coverage Instrumentation")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s  •  Threads: %s  •  Skipped: %s  •  Errors: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.completed)),
		accentStyle.Render(fmt.Sprintf("%d", m.total)),
		accentStyle.Render(fmt.Sprintf("%d", m.threads)),
		accentStyle.Render(fmt.Sprintf("%d", m.skipped)),
		accentStyle.Render(fmt.Sprintf("%d", m.failed)),
	))

	progressView := lipgloss.NewStyle().
		Padding(0, 2).
		Render(m.progressBar.ViewAs(m.percent()))

	last := ""
	if m.lastFile != "" {
		last = lipgloss.NewStyle().
			Foreground(statusColor(m.lastStatus)).
			Padding(1, 0, 0, 2).
			Render(fmt.Sprintf("%-7s %s", m.lastStatus, truncateToWidth(m.lastFile, m.width-12)))
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Padding(1, 0, 0, 2).
		Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		last,
		footer,
	)
}

func (m progressModel) handleWindowSize(msg tea.WindowSizeMsg) progressModel {
	m.width = msg.Width
	m.height = msg.Height

	m.progressBar.Width = m.width - 8
	if m.progressBar.Width < 20 {
		m.progressBar.Width = 20
	}

	return m
}

func statusColor(status string) lipgloss.Color {
	switch status {
	case "error":
		return lipgloss.Color("9") // Red
	case "skipped":
		return lipgloss.Color("11") // Yellow
	default:
		return lipgloss.Color("10") // Green
	}
}
