package controller

import (
	"time"

	m "github.com/mouse-blink/jscov/internal/model"
)

// Message types.
type tickMsg time.Time

type planMsg struct {
	files   int
	threads int
}

type fileDoneMsg struct {
	path   string
	status string
}

type finishedMsg struct{}

// List item types.
type fileItem struct {
	path   string
	counts m.Counts
	status string
	reason string
}

func (f fileItem) FilterValue() string {
	return f.path
}

func newFileItem(r m.FileResult) fileItem {
	return fileItem{
		path:   displayPath(r),
		counts: r.Counts,
		status: statusOf(r),
		reason: r.Reason,
	}
}
