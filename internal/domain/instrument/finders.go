package instrument

import sitter "github.com/smacker/go-tree-sitter"

// QueryTag selects the structural question Find answers.
type QueryTag int

const (
	// ContainsBlock asks whether evaluating the subtree runs a block.
	ContainsBlock QueryTag = iota
	// ContainsStatement asks whether evaluating the subtree runs a statement.
	ContainsStatement
	// ContainsHoistedDecl asks whether the subtree, through parentheses, is a
	// function or class expression whose name comes from its declarator.
	ContainsHoistedDecl
	// IsLogicalLeaf asks whether the subtree, through parentheses, is not a
	// logical expression of the chain operator given in Query.Operator.
	IsLogicalLeaf
)

// Query is a read-only subtree question.
type Query struct {
	Tag      QueryTag
	Operator string // chain operator for IsLogicalLeaf
}

// Find answers q for the subtree rooted at n. Function bodies are never
// entered: they do not run when the enclosing expression is evaluated.
func Find(n *sitter.Node, q Query) bool {
	if n == nil {
		return false
	}

	switch q.Tag {
	case ContainsBlock:
		return anyDescendant(n, func(d *sitter.Node) bool {
			k := kindOf(d)
			return k == KindStatementBlock || k == KindClassStaticBlock
		})
	case ContainsStatement:
		return anyDescendant(n, func(d *sitter.Node) bool {
			return isStatementKind(kindOf(d))
		})
	case ContainsHoistedDecl:
		return isHoistable(unparen(n))
	case IsLogicalLeaf:
		return logicalOperator(unparen(n)) != q.Operator
	}

	return false
}

// anyDescendant reports whether match holds for a strict named descendant
// of n, skipping nested functions.
func anyDescendant(n *sitter.Node, match func(*sitter.Node) bool) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if isFunction(c) {
			continue
		}

		if match(c) || anyDescendant(c, match) {
			return true
		}
	}

	return false
}
