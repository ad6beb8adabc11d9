package instrument

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/jscov/internal/model"
)

var (
	// ErrParse reports a source that tree-sitter could not parse cleanly.
	ErrParse = errors.New("syntax error")
	// ErrMalformedInput reports a tree shape that violates an upstream
	// precondition, such as a function without a body.
	ErrMalformedInput = errors.New("malformed input")
)

// InstrumentationError locates a fatal fault in the original source.
type InstrumentationError struct {
	File    string
	Line    int // 1-based
	Column  int // 0-based byte column
	Message string
	Err     error
}

// Error implements the error interface as file:line:column: message.
func (e *InstrumentationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Message, e.Err)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *InstrumentationError) Unwrap() error {
	return e.Err
}

func newNodeError(file string, n *sitter.Node, err error, msg string) *InstrumentationError {
	p := n.StartPoint()

	return &InstrumentationError{
		File:    file,
		Line:    int(p.Row) + 1,
		Column:  int(p.Column),
		Message: msg,
		Err:     err,
	}
}

// rangeOf resolves a node span to line/column bounds.
func rangeOf(n *sitter.Node) m.Range {
	s, e := n.StartPoint(), n.EndPoint()

	return m.Range{
		StartLine: int(s.Row) + 1,
		StartCol:  int(s.Column),
		EndLine:   int(e.Row) + 1,
		EndCol:    int(e.Column),
	}
}

// firstSyntaxError finds the first ERROR or MISSING node in pre-order.
func firstSyntaxError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}

	if !n.HasError() {
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstSyntaxError(n.Child(i)); found != nil {
			return found
		}
	}

	return n
}
