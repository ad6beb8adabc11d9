package instrument

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/jscov/internal/model"
)

// instrumenter is the state of one pass over one program.
type instrumenter struct {
	path     string
	src      []byte
	accessor string
	opts     Options
	cov      *m.SourceCoverage
	comments *CommentTable
	stack    Ancestors
	edits    editBuffer
	// handled holds logical expressions already split as part of an
	// enclosing chain of the same operator.
	handled map[nodeKey]bool
	// ignored holds subtrees excluded by a directive resolved elsewhere,
	// such as an if arm or a logical leaf.
	ignored map[nodeKey]bool
	log     *slog.Logger
}

// visitState is what a node inherits from its parent.
type visitState struct {
	suppressed bool
	// hint is a directive resolved by a transparent parent on behalf of
	// its children.
	hint Scope
}

// decision is the resolved ignore state of the node being entered.
type decision struct {
	scope      Scope
	own        bool // the node's own counters are emitted
	suppressed bool // nothing below the node is instrumented
}

func (in *instrumenter) decide(n *sitter.Node, st visitState) decision {
	scope := st.hint
	if scope == ScopeNone {
		scope, _ = in.comments.ResolveIgnore(n)
	}

	suppressed := st.suppressed || scope == ScopeSubtree || in.ignored[keyOf(n)]

	return decision{
		scope:      scope,
		own:        !suppressed && scope != ScopeNext,
		suppressed: suppressed,
	}
}

// visit walks n in pre-order, pushing a frame around the engine hook and
// the descent into its children.
func (in *instrumenter) visit(n *sitter.Node, st visitState) error {
	if !n.IsNamed() || kindOf(n) == KindComment {
		return nil
	}

	if in.isInjected(n) {
		return nil
	}

	d := in.decide(n, st)

	in.stack.Push(n)
	defer in.stack.Pop()

	if err := in.enter(n, d); err != nil {
		return err
	}

	child := visitState{suppressed: d.suppressed}
	if isTransparent(kindOf(n)) && d.scope != ScopeNone {
		child.hint = d.scope
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if err := in.visit(n.NamedChild(i), child); err != nil {
			return err
		}
	}

	return nil
}

// enter dispatches n to the hook of its construct.
func (in *instrumenter) enter(n *sitter.Node, d decision) error {
	k := kindOf(n)

	if isCoveredStatement(k) && d.own && in.inStatementSlot() && !in.isDirective(n) {
		in.coverStatement(n)
	}

	if isFunction(n) {
		return in.coverFunction(n, d)
	}

	if d.suppressed {
		return nil
	}

	switch k {
	case KindIfStatement:
		in.coverIf(n, d)
	case KindSwitchStatement:
		in.coverSwitch(n, d)
	case KindForStatement, KindForInStatement, KindWhileStatement, KindDoStatement, KindWithStatement:
		in.normalizeBody(n.ChildByFieldName("body"))
	case KindTernary:
		in.coverTernary(n, d)
	case KindBinary:
		in.coverLogical(n, d)
	case KindAssignmentPattern, KindObjectAssignPat:
		in.coverDefault(n, d)
	case KindVariableDeclarator, KindFieldDefinition:
		if d.own {
			in.coverExpression(n.ChildByFieldName("value"))
		}
	}

	return nil
}

// isTransparent reports whether directives attached to k apply to the
// declarations it wraps rather than to k itself.
func isTransparent(k NodeKind) bool {
	return k == KindExportStatement || k == KindLexicalDeclaration || k == KindVariableDeclaration
}

// isInjected reports whether n is code this engine emitted.
func (in *instrumenter) isInjected(n *sitter.Node) bool {
	switch kindOf(n) {
	case KindExpressionStatement:
		return IsInjectedCounterStatement(n, in.src, in.accessor)
	case KindParenthesized:
		return IsInjectedSequence(n, in.src, in.accessor)
	case KindUpdate:
		return IsInjectedCounterExpression(n, in.src, in.accessor)
	}

	return false
}

// ignoreSubtree excludes n and its descendants from instrumentation.
func (in *instrumenter) ignoreSubtree(n *sitter.Node) {
	if n != nil {
		in.ignored[keyOf(n)] = true
	}
}
