// Package instrument inserts coverage counters into JavaScript sources.
package instrument

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	m "github.com/mouse-blink/jscov/internal/model"
)

// DefaultCoverageVariable is the global the runtime store hangs off.
const DefaultCoverageVariable = "__coverage__"

// Options tunes one instrumentation pass.
type Options struct {
	// CoverageVariable names the global holding every file's counters.
	CoverageVariable string
	// ReportLogic enables the truthiness counters of logical leaves.
	ReportLogic bool
	// NoPreamble omits the accessor declaration; the caller provides it.
	NoPreamble bool
	// Salt is mixed into the accessor name.
	Salt   string
	Logger *slog.Logger
}

// Result is the outcome of instrumenting one source.
type Result struct {
	Code     []byte
	Coverage *m.SourceCoverage
	Skipped  bool
	Reason   string
	// Edits is the number of text insertions applied.
	Edits int
}

// Instrument parses src as JavaScript and instruments it. path keys the
// file in the runtime store and in error messages.
func Instrument(ctx context.Context, src []byte, path string, opts Options) (*Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	return InstrumentTree(tree.RootNode(), src, path, opts)
}

// InstrumentTree instruments an already parsed program. root must have
// been produced from src.
func InstrumentTree(root *sitter.Node, src []byte, path string, opts Options) (*Result, error) {
	if opts.CoverageVariable == "" {
		opts.CoverageVariable = DefaultCoverageVariable
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if bad := firstSyntaxError(root); bad != nil {
		return nil, newNodeError(path, bad, ErrParse, "cannot instrument source with syntax errors")
	}

	accessor := AccessorFor(path, opts.Salt)
	cov := m.NewSourceCoverage(path, accessor)

	// Output produced without a preamble only carries the counters.
	if declaresFunction(root, src, accessor) || containsCounter(root, src, accessor) {
		return &Result{Code: src, Coverage: cov, Skipped: true, Reason: "already instrumented"}, nil
	}

	in := newInstrumenter(root, src, path, opts, cov)
	if in.comments.HasFileDirective() {
		return &Result{Code: src, Coverage: cov, Skipped: true, Reason: "ignore file directive"}, nil
	}

	preamble := -1
	if !opts.NoPreamble {
		preamble = in.edits.Len()
		in.edits.open(preambleOffset(root, src), "")
	}

	if err := in.visit(root, visitState{}); err != nil {
		return nil, err
	}

	if preamble >= 0 {
		in.edits.set(preamble, renderPreamble(root, src, accessor, opts.CoverageVariable, cov))
	}

	in.log.Debug("instrumented", slog.Int("statements", len(cov.Statements())),
		slog.Int("functions", len(cov.Functions())), slog.Int("branches", len(cov.Branches())))

	return &Result{Code: in.edits.apply(src), Coverage: cov, Edits: in.edits.Len()}, nil
}

func newInstrumenter(root *sitter.Node, src []byte, path string, opts Options, cov *m.SourceCoverage) *instrumenter {
	return &instrumenter{
		path:     path,
		src:      src,
		accessor: cov.Accessor,
		opts:     opts,
		cov:      cov,
		comments: NewCommentTable(root, src),
		handled:  map[nodeKey]bool{},
		ignored:  map[nodeKey]bool{},
		log:      opts.Logger.With(slog.String("file", path)),
	}
}

// containsCounter reports whether any increment of accessor's counters
// appears in the tree rooted at n.
func containsCounter(n *sitter.Node, src []byte, accessor string) bool {
	if IsInjectedCounterExpression(n, src, accessor) {
		return true
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if containsCounter(n.NamedChild(i), src, accessor) {
			return true
		}
	}

	return false
}

// declaresFunction reports whether the program declares a top-level
// function called name.
func declaresFunction(root *sitter.Node, src []byte, name string) bool {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c := root.NamedChild(i)
		if kindOf(c) != KindFunctionDeclaration {
			continue
		}

		if id := c.ChildByFieldName("name"); id != nil && id.Content(src) == name {
			return true
		}
	}

	return false
}
