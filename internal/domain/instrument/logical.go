package instrument

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/jscov/internal/model"
)

// logicalChain is one short-circuit chain being split. Its branch is
// registered with the first countable leaf.
type logicalChain struct {
	root   *sitter.Node
	op     string
	branch int
}

// coverLogical opens a binary-expr branch for a short-circuit chain that
// is not part of an enclosing chain of the same operator.
func (in *instrumenter) coverLogical(n *sitter.Node, d decision) {
	op := logicalOperator(n)
	if op == "" || in.handled[keyOf(n)] || !d.own {
		return
	}

	in.splitLogical(n, &logicalChain{root: n, op: op, branch: -1})
}

// splitLogical registers one path per leaf operand of the chain rooted at
// n. Same-operator operands are unwound under the same branch, even through
// parentheses. Operands combining a different operator are left for the
// traversal, which opens a branch of their own.
func (in *instrumenter) splitLogical(n *sitter.Node, chain *logicalChain) {
	for _, field := range []string{"left", "right"} {
		operand := n.ChildByFieldName(field)
		if operand == nil {
			continue
		}

		if scope, ok := in.comments.ResolveIgnore(operand); ok && (scope == ScopeNext || scope == ScopeSubtree) {
			if scope == ScopeSubtree {
				in.ignoreSubtree(operand)
			}

			continue
		}

		inner := unparen(operand)

		if !Find(operand, Query{Tag: IsLogicalLeaf, Operator: chain.op}) {
			in.handled[keyOf(inner)] = true
			in.splitLogical(inner, chain)

			continue
		}

		if logicalOperator(inner) != "" || IsInjectedSequence(operand, in.src, in.accessor) {
			continue
		}

		in.coverLeaf(operand, chain)
	}
}

// coverLeaf wraps a leaf so evaluating it also increments its path counter,
// keeping its value and short-circuit timing.
func (in *instrumenter) coverLeaf(leaf *sitter.Node, chain *logicalChain) {
	if chain.branch < 0 {
		chain.branch = in.newBranch(m.BranchBinaryExpr, chain.root)
		if in.opts.ReportLogic {
			in.cov.MarkTruthy(chain.branch)
		}
	}

	branch := chain.branch

	path := in.cov.AddBranchPath(branch, rangeOf(leaf))
	in.log.Debug("branch path", slog.Int("branch_id", branch), slog.Int("path", path))

	counter := Counter(in.accessor, BranchRef(branch, path))

	if !in.opts.ReportLogic {
		in.wrap(leaf, counter)
		return
	}

	in.edits.open(int(leaf.StartByte()), "("+counter+", "+truthyOpen(in.accessor, branch, path))
	in.edits.close(int(leaf.EndByte()), "))")
}
