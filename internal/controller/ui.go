// Package controller provides output adapters for displaying instrumentation results.
package controller

import (
	m "github.com/mouse-blink/jscov/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeInstrument
	ModeWatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithListMode sets the UI to dry-run listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithInstrumentMode sets the UI to instrumentation mode with progress.
func WithInstrumentMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeInstrument
	}
}

// WithWatchMode sets the UI to report each file as it is re-instrumented.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeList}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying instrumentation progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayPlan(files int, threads int)
	DisplayFileResult(result m.FileResult)
	DisplaySummary(results []m.FileResult, err error) error
}

// statusOf renders the outcome column shared by the simple and TUI output.
func statusOf(r m.FileResult) string {
	switch {
	case r.Error != nil:
		return "error"
	case r.Skipped:
		return "skipped"
	default:
		return "ok"
	}
}

// totalsOf sums the counters of results and counts files per outcome.
func totalsOf(results []m.FileResult) (counts m.Counts, skipped int, failed int) {
	for _, r := range results {
		counts = counts.Add(r.Counts)

		switch statusOf(r) {
		case "error":
			failed++
		case "skipped":
			skipped++
		}
	}

	return counts, skipped, failed
}

func displayPath(r m.FileResult) string {
	if r.Source.Rel != "" {
		return string(r.Source.Rel)
	}

	if r.Source.Origin != nil {
		return string(r.Source.Origin.Path)
	}

	return ""
}
