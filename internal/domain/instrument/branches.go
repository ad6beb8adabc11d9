package instrument

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/jscov/internal/model"
)

func (in *instrumenter) newBranch(kind m.BranchKind, n *sitter.Node) int {
	id := in.cov.NewBranch(kind, rangeOf(n))
	in.log.Debug("branch", slog.Int("branch_id", id), slog.String("branch_kind", string(kind)))

	return id
}

// coverIf registers both arms of an if statement. A missing else arm is
// synthesised so the not-taken path is counted too.
func (in *instrumenter) coverIf(n *sitter.Node, d decision) {
	cons := n.ChildByFieldName("consequence")
	alt := n.ChildByFieldName("alternative")

	var altBody *sitter.Node
	if alt != nil {
		altBody = firstNamedChild(alt)
	}

	skipIf := d.scope == ScopeIf
	skipElse := d.scope == ScopeElse

	if skipIf {
		in.ignoreSubtree(cons)
	}

	if skipElse {
		in.ignoreSubtree(altBody)
	}

	branch, consPath, altPath := -1, -1, -1

	if d.own {
		branch = in.newBranch(m.BranchIf, n)
		consPath = in.cov.AddBranchPath(branch, rangeOf(n))
		altPath = in.cov.AddBranchPath(branch, rangeOf(n))

		if skipIf {
			in.cov.SkipBranchPath(branch, consPath)
		}

		if skipElse {
			in.cov.SkipBranchPath(branch, altPath)
		}
	}

	// The synthetic else closes after the consequence braces at the same
	// offset, so it has to be registered first.
	if alt == nil && branch >= 0 && !skipElse {
		in.edits.close(int(n.EndByte()), " else { "+Counter(in.accessor, BranchRef(branch, altPath))+"; }")
	}

	if !skipIf {
		in.armCounter(cons, branch, consPath)
	}

	if altBody != nil && !skipElse {
		in.armCounter(altBody, branch, altPath)
	}
}

// armCounter braces a non-block arm and places the path counter at the
// start of the arm. A negative branch only braces.
func (in *instrumenter) armCounter(arm *sitter.Node, branch, path int) {
	if arm == nil {
		return
	}

	if kindOf(arm) == KindEmptyStatement {
		in.braceEmptyArm(arm, branch, path)
		return
	}

	braced := in.normalizeBody(arm)

	if branch < 0 {
		return
	}

	counter := Counter(in.accessor, BranchRef(branch, path))

	if braced {
		in.edits.open(int(arm.StartByte()), counter+"; ")
		return
	}

	in.blockStart(arm, counter, false)
}

// braceEmptyArm turns an empty arm into a block holding the path counter,
// so the counter runs only when the arm is taken.
func (in *instrumenter) braceEmptyArm(arm *sitter.Node, branch, path int) {
	if branch < 0 {
		return
	}

	start := int(arm.StartByte())

	open := "{ " + Counter(in.accessor, BranchRef(branch, path)) + "; "
	if start > 0 && !isSpace(in.src[start-1]) {
		open = " " + open
	}

	in.edits.open(start, open)
	in.edits.close(int(arm.EndByte()), " }")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// normalizeBody wraps a non-block statement body in braces. It reports
// whether braces were added.
func (in *instrumenter) normalizeBody(body *sitter.Node) bool {
	if body == nil || kindOf(body) == KindStatementBlock || kindOf(body) == KindEmptyStatement {
		return false
	}

	in.edits.open(int(body.StartByte()), "{ ")
	in.edits.close(int(body.EndByte()), " }")

	return true
}

// blockStart inserts counter as the first statement of block, after the
// directive prologue when prologue is set.
func (in *instrumenter) blockStart(block *sitter.Node, counter string, prologue bool) {
	offset := int(block.StartByte()) + 1

	text := " " + counter + ";"

	if prologue {
		if last := lastDirective(block); last != nil {
			offset = int(last.EndByte())

			// A directive ended by a line break needs its terminator.
			if in.src[offset-1] != ';' {
				text = ";" + text
			}
		}
	}

	if offset < len(in.src) && in.src[offset] == '}' {
		text += " "
	}

	in.edits.open(offset, text)
}

// coverSwitch registers one path per case clause.
func (in *instrumenter) coverSwitch(n *sitter.Node, d decision) {
	if !d.own {
		return
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	branch := in.newBranch(m.BranchSwitch, n)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		clause := body.NamedChild(i)

		k := kindOf(clause)
		if k != KindSwitchCase && k != KindSwitchDefault {
			continue
		}

		path := in.cov.AddBranchPath(branch, rangeOf(clause))

		if scope, ok := in.comments.ResolveIgnore(clause); ok && (scope == ScopeNext || scope == ScopeSubtree) {
			in.cov.SkipBranchPath(branch, path)
			in.ignoreSubtree(clause)

			continue
		}

		if colon := childToken(clause, ":"); colon != nil {
			in.edits.open(int(colon.EndByte()), " "+Counter(in.accessor, BranchRef(branch, path))+";")
		}
	}
}

// coverTernary counts both arms of a conditional expression.
func (in *instrumenter) coverTernary(n *sitter.Node, d decision) {
	if !d.own {
		return
	}

	branch := in.newBranch(m.BranchCondExpr, n)

	for _, field := range []string{"consequence", "alternative"} {
		arm := n.ChildByFieldName(field)
		if arm == nil {
			continue
		}

		path := in.cov.AddBranchPath(branch, rangeOf(arm))

		if scope, ok := in.comments.ResolveIgnore(arm); ok && (scope == ScopeNext || scope == ScopeSubtree) {
			in.cov.SkipBranchPath(branch, path)
			in.ignoreSubtree(arm)

			continue
		}

		in.wrap(arm, Counter(in.accessor, BranchRef(branch, path)))
	}
}

// coverDefault counts the evaluation of a default value in a parameter
// list or destructuring pattern.
func (in *instrumenter) coverDefault(n *sitter.Node, d decision) {
	right := n.ChildByFieldName("right")
	if !d.own || right == nil {
		return
	}

	branch := in.newBranch(m.BranchDefaultArg, right)
	path := in.cov.AddBranchPath(branch, rangeOf(right))
	in.wrap(right, Counter(in.accessor, BranchRef(branch, path)))
}

// childToken returns the first anonymous child of n spelled tok.
func childToken(n *sitter.Node, tok string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == tok {
			return c
		}
	}

	return nil
}

// isDirective reports whether the statement on top of the stack belongs to
// the directive prologue of a program or function body.
func (in *instrumenter) isDirective(n *sitter.Node) bool {
	if kindOf(n) != KindExpressionStatement {
		return false
	}

	parent, ok := in.stack.FrameFromTop(1)
	if !ok {
		return false
	}

	switch parent.Kind {
	case KindProgram:
	case KindStatementBlock:
		owner, ok := in.stack.FrameFromTop(2)
		if !ok || !isFunction(owner.Node) {
			return false
		}
	default:
		return false
	}

	last := lastDirective(parent.Node)

	return last != nil && n.StartByte() <= last.StartByte()
}

// lastDirective returns the last statement of the directive prologue of a
// program or block, or nil when there is none.
func lastDirective(container *sitter.Node) *sitter.Node {
	var last *sitter.Node

	for i := 0; i < int(container.NamedChildCount()); i++ {
		c := container.NamedChild(i)
		if k := kindOf(c); k == KindComment || k == KindHashBang {
			continue
		}

		if !isDirectiveStatement(c) {
			break
		}

		last = c
	}

	return last
}

func isDirectiveStatement(n *sitter.Node) bool {
	if kindOf(n) != KindExpressionStatement {
		return false
	}

	expr := firstNamedChild(n)

	return expr != nil && kindOf(expr) == KindString
}
