package instrument

import (
	"sort"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// Scope is the reach of an ignore directive.
type Scope int

const (
	// ScopeNone means no directive applies.
	ScopeNone Scope = iota
	// ScopeNext suppresses the counters of the next construct only.
	ScopeNext
	// ScopeSubtree suppresses the next construct and everything below it.
	ScopeSubtree
	// ScopeIf suppresses the consequent arm of the next if statement.
	ScopeIf
	// ScopeElse suppresses the alternate arm of the next if statement.
	ScopeElse
	// ScopeFile leaves the whole file untouched.
	ScopeFile
)

var directivePrefixes = []string{"istanbul", "jscov"}

func (s Scope) String() string {
	switch s {
	case ScopeNext:
		return "next"
	case ScopeSubtree:
		return "subtree"
	case ScopeIf:
		return "if"
	case ScopeElse:
		return "else"
	case ScopeFile:
		return "file"
	}

	return "none"
}

// parseIgnoreDirective recognises "istanbul ignore <scope>" and
// "jscov ignore <scope>" in line, block and doc comments.
func parseIgnoreDirective(commentText string) (Scope, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimPrefix(s, "//")
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "/*"), "*/")
		s = strings.TrimLeft(s, "*")
	}

	fields := strings.Fields(s)
	if len(fields) < 3 || fields[1] != "ignore" {
		return ScopeNone, false
	}

	known := false

	for _, prefix := range directivePrefixes {
		if fields[0] == prefix {
			known = true
			break
		}
	}

	if !known {
		return ScopeNone, false
	}

	word := strings.TrimRightFunc(fields[2], func(r rune) bool { return !unicode.IsLetter(r) })

	switch word {
	case "next":
		return ScopeNext, true
	case "subtree":
		return ScopeSubtree, true
	case "if":
		return ScopeIf, true
	case "else":
		return ScopeElse, true
	case "file":
		return ScopeFile, true
	}

	return ScopeNone, false
}

type comment struct {
	start, end int
	scope      Scope
	consumed   bool
}

// CommentTable holds the ignore directives of one tree in source order.
type CommentTable struct {
	src      []byte
	comments []comment
}

// NewCommentTable collects the directive comments below root.
func NewCommentTable(root *sitter.Node, src []byte) *CommentTable {
	t := &CommentTable{src: src}
	t.collect(root)

	sort.Slice(t.comments, func(i, j int) bool {
		return t.comments[i].start < t.comments[j].start
	})

	return t
}

func (t *CommentTable) collect(n *sitter.Node) {
	if kindOf(n) == KindComment {
		if scope, ok := parseIgnoreDirective(n.Content(t.src)); ok {
			t.comments = append(t.comments, comment{start: int(n.StartByte()), end: int(n.EndByte()), scope: scope})
		}

		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		t.collect(n.Child(i))
	}
}

// HasFileDirective reports whether any comment asks to skip the file.
func (t *CommentTable) HasFileDirective() bool {
	for _, c := range t.comments {
		if c.scope == ScopeFile {
			return true
		}
	}

	return false
}

// ResolveIgnore returns the nearest unconsumed directive attached to n and
// consumes it. A directive is attached when only whitespace, or other
// comments, separate it from the start of n.
func (t *CommentTable) ResolveIgnore(n *sitter.Node) (Scope, bool) {
	start := int(n.StartByte())

	i := sort.Search(len(t.comments), func(i int) bool {
		return t.comments[i].end > start
	}) - 1

	cursor := start
	for ; i >= 0; i-- {
		c := &t.comments[i]
		if !t.onlyCommentsOrSpace(c.end, cursor) {
			return ScopeNone, false
		}

		if !c.consumed && c.scope != ScopeFile {
			c.consumed = true
			return c.scope, true
		}

		cursor = c.start
	}

	return ScopeNone, false
}

// onlyCommentsOrSpace reports whether src[from:to] holds nothing but
// whitespace and comments without directives.
func (t *CommentTable) onlyCommentsOrSpace(from, to int) bool {
	if from > to {
		return false
	}

	gap := string(t.src[from:to])
	for len(gap) > 0 {
		gap = strings.TrimLeftFunc(gap, unicode.IsSpace)

		switch {
		case gap == "":
			return true
		case strings.HasPrefix(gap, "//"):
			end := strings.IndexByte(gap, '\n')
			if end < 0 {
				return true
			}

			gap = gap[end:]
		case strings.HasPrefix(gap, "/*"):
			end := strings.Index(gap, "*/")
			if end < 0 {
				return false
			}

			gap = gap[end+2:]
		default:
			return false
		}
	}

	return true
}
