package instrument

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
)

// coverStatement registers the statement on top of the stack and prepends
// its counter, hoisted over any labels or export wrapper.
func (in *instrumenter) coverStatement(n *sitter.Node) {
	id := in.cov.NewStatement(rangeOf(n))
	in.log.Debug("statement counter", slog.Int("stmt_id", id), slog.String("kind", n.Type()))

	site := in.hoistOverWrappers(0)
	in.prepend(site, Counter(in.accessor, StatementRef(id)))
}

// coverExpression instruments a value-position target with a statement
// counter, preferring a prepend before the enclosing statement whenever
// nothing reads the counter's position.
func (in *instrumenter) coverExpression(target *sitter.Node) {
	if target == nil || IsInjectedSequence(target, in.src, in.accessor) {
		return
	}

	var site *sitter.Node

	switch {
	case Find(target, Query{Tag: ContainsBlock}), Find(target, Query{Tag: ContainsStatement}):
		site = in.enclosingStatement()
	case Find(target, Query{Tag: ContainsHoistedDecl}):
		site = in.hoistSite()
	}

	id := in.cov.NewStatement(rangeOf(target))

	if site != nil {
		in.log.Debug("statement counter", slog.Int("stmt_id", id), slog.String("placement", "prepend"))
		in.prepend(site, Counter(in.accessor, StatementRef(id)))

		return
	}

	in.log.Debug("statement counter", slog.Int("stmt_id", id), slog.String("placement", "wrap"))
	in.wrap(target, Counter(in.accessor, StatementRef(id)))
}

// prepend inserts counter as a standalone statement before site.
func (in *instrumenter) prepend(site *sitter.Node, counter string) {
	in.edits.open(int(site.StartByte()), counter+"; ")
}

// wrap replaces target with the sequence (counter, target).
func (in *instrumenter) wrap(target *sitter.Node, counter string) {
	in.edits.open(int(target.StartByte()), "("+counter+", ")
	in.edits.close(int(target.EndByte()), ")")
}

// inStatementSlot reports whether the node on top of the stack sits where
// a statement may be inserted before it.
func (in *instrumenter) inStatementSlot() bool {
	f, ok := in.stack.FrameFromTop(0)
	if !ok {
		return false
	}

	parent, ok := in.stack.FrameFromTop(1)
	if !ok {
		return false
	}

	return isSlot(parent, f.Node)
}

// isSlot reports whether child occupies a statement list or a statement
// body of parent. Non-block bodies are braced before anything lands in them.
func isSlot(parent Frame, child *sitter.Node) bool {
	switch parent.Kind {
	case KindProgram, KindStatementBlock, KindSwitchCase, KindSwitchDefault, KindClassStaticBlock,
		KindElseClause, KindLabeledStatement, KindExportStatement:
		return isStatementKind(kindOf(child))
	case KindIfStatement:
		return sameNode(parent.Node.ChildByFieldName("consequence"), child)
	case KindForStatement, KindForInStatement, KindWhileStatement, KindDoStatement, KindWithStatement:
		return sameNode(parent.Node.ChildByFieldName("body"), child)
	}

	return false
}

// hoistOverWrappers returns the node to insert before for the statement n
// frames below the top: the statement itself or its outermost label or
// export wrapper.
func (in *instrumenter) hoistOverWrappers(n int) *sitter.Node {
	f, _ := in.stack.FrameFromTop(n)
	site := f.Node

	for i := n + 1; ; i++ {
		parent, ok := in.stack.FrameFromTop(i)
		if !ok || (parent.Kind != KindLabeledStatement && parent.Kind != KindExportStatement) {
			return site
		}

		site = parent.Node
	}
}

// enclosingStatement finds the nearest statement enclosing the top of the
// stack that sits in a statement slot, without leaving the current function
// or class body. It returns nil when there is none.
func (in *instrumenter) enclosingStatement() *sitter.Node {
	for i := 1; ; i++ {
		f, ok := in.stack.FrameFromTop(i)
		if !ok || isFunction(f.Node) || f.Kind == KindClassBody {
			return nil
		}

		if !isStatementKind(f.Kind) || f.Kind == KindStatementBlock {
			continue
		}

		parent, ok := in.stack.FrameFromTop(i + 1)
		if ok && isSlot(parent, f.Node) {
			return in.hoistOverWrappers(i)
		}
	}
}

// hoistSite returns the declaration to prepend before when the declarator
// on top of the stack sits directly in a block or the program, possibly
// through one export wrapper. Otherwise it returns nil.
func (in *instrumenter) hoistSite() *sitter.Node {
	if k, ok := in.stack.NthFromTop(0); !ok || k != KindVariableDeclarator {
		return nil
	}

	decl, ok := in.stack.FrameFromTop(1)
	if !ok {
		return nil
	}

	container, ok := in.stack.NthFromTop(2)
	if !ok {
		return nil
	}

	switch container {
	case KindProgram, KindStatementBlock:
		return decl.Node
	case KindExportStatement:
		if k, ok := in.stack.NthFromTop(3); ok && k == KindProgram {
			export, _ := in.stack.FrameFromTop(2)
			return export.Node
		}
	}

	return nil
}
