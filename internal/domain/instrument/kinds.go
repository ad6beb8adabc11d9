package instrument

import sitter "github.com/smacker/go-tree-sitter"

// NodeKind is a tree-sitter node type of the JavaScript grammar.
type NodeKind string

// JavaScript node kinds the engine dispatches on.
const (
	KindProgram             NodeKind = "program"
	KindHashBang            NodeKind = "hash_bang_line"
	KindComment             NodeKind = "comment"
	KindStatementBlock      NodeKind = "statement_block"
	KindExpressionStatement NodeKind = "expression_statement"
	KindReturnStatement     NodeKind = "return_statement"
	KindThrowStatement      NodeKind = "throw_statement"
	KindBreakStatement      NodeKind = "break_statement"
	KindContinueStatement   NodeKind = "continue_statement"
	KindDebuggerStatement   NodeKind = "debugger_statement"
	KindTryStatement        NodeKind = "try_statement"
	KindIfStatement         NodeKind = "if_statement"
	KindElseClause          NodeKind = "else_clause"
	KindForStatement        NodeKind = "for_statement"
	KindForInStatement      NodeKind = "for_in_statement"
	KindWhileStatement      NodeKind = "while_statement"
	KindDoStatement         NodeKind = "do_statement"
	KindWithStatement       NodeKind = "with_statement"
	KindSwitchStatement     NodeKind = "switch_statement"
	KindSwitchCase          NodeKind = "switch_case"
	KindSwitchDefault       NodeKind = "switch_default"
	KindLabeledStatement    NodeKind = "labeled_statement"
	KindEmptyStatement      NodeKind = "empty_statement"
	KindImportStatement     NodeKind = "import_statement"
	KindExportStatement     NodeKind = "export_statement"

	KindLexicalDeclaration  NodeKind = "lexical_declaration"
	KindVariableDeclaration NodeKind = "variable_declaration"
	KindVariableDeclarator  NodeKind = "variable_declarator"
	KindFunctionDeclaration NodeKind = "function_declaration"
	KindGeneratorDecl       NodeKind = "generator_function_declaration"
	KindClassDeclaration    NodeKind = "class_declaration"

	KindFunctionExpression NodeKind = "function_expression"
	KindFunctionLegacy     NodeKind = "function" // function expressions in older grammar releases
	KindGeneratorFunction  NodeKind = "generator_function"
	KindArrowFunction      NodeKind = "arrow_function"
	KindMethodDefinition   NodeKind = "method_definition"
	KindClass              NodeKind = "class"
	KindClassBody          NodeKind = "class_body"
	KindClassStaticBlock   NodeKind = "class_static_block"
	KindFieldDefinition    NodeKind = "field_definition"

	KindParenthesized     NodeKind = "parenthesized_expression"
	KindSequence          NodeKind = "sequence_expression"
	KindBinary            NodeKind = "binary_expression"
	KindTernary           NodeKind = "ternary_expression"
	KindUpdate            NodeKind = "update_expression"
	KindSubscript         NodeKind = "subscript_expression"
	KindMember            NodeKind = "member_expression"
	KindCall              NodeKind = "call_expression"
	KindIdentifier        NodeKind = "identifier"
	KindNumber            NodeKind = "number"
	KindString            NodeKind = "string"
	KindAssignmentPattern NodeKind = "assignment_pattern"
	KindObjectAssignPat   NodeKind = "object_assignment_pattern"
)

func kindOf(n *sitter.Node) NodeKind {
	return NodeKind(n.Type())
}

// isCoveredStatement reports whether statements of kind k get a prepended
// statement counter. Class declarations are counted like any statement,
// variable declarations through their initialisers and hoisted function
// declarations through their function counter.
func isCoveredStatement(k NodeKind) bool {
	switch k {
	case KindExpressionStatement, KindReturnStatement, KindThrowStatement,
		KindBreakStatement, KindContinueStatement, KindDebuggerStatement,
		KindTryStatement, KindIfStatement, KindForStatement, KindForInStatement,
		KindWhileStatement, KindDoStatement, KindWithStatement,
		KindSwitchStatement, KindLabeledStatement, KindClassDeclaration:
		return true
	}

	return false
}

// isStatementKind reports whether k is statement-shaped, declarations included.
func isStatementKind(k NodeKind) bool {
	if isCoveredStatement(k) {
		return true
	}

	switch k {
	case KindStatementBlock, KindEmptyStatement, KindImportStatement, KindExportStatement,
		KindLexicalDeclaration, KindVariableDeclaration, KindFunctionDeclaration,
		KindGeneratorDecl:
		return true
	}

	return false
}

// isFunction reports whether n owns a function body.
func isFunction(n *sitter.Node) bool {
	if !n.IsNamed() {
		return false
	}

	switch kindOf(n) {
	case KindFunctionDeclaration, KindGeneratorDecl, KindFunctionExpression, KindFunctionLegacy,
		KindGeneratorFunction, KindArrowFunction, KindMethodDefinition:
		return true
	}

	return false
}

// isHoistable reports whether n is an initialiser whose name inference
// depends on sitting directly in a declarator.
func isHoistable(n *sitter.Node) bool {
	if !n.IsNamed() {
		return false
	}

	switch kindOf(n) {
	case KindFunctionExpression, KindFunctionLegacy, KindGeneratorFunction, KindArrowFunction, KindClass:
		return true
	}

	return false
}

func isLogicalOperator(op string) bool {
	return op == "&&" || op == "||" || op == "??"
}

// logicalOperator returns the operator of a logical binary expression, or
// the empty string for anything else.
func logicalOperator(n *sitter.Node) string {
	if n == nil || kindOf(n) != KindBinary {
		return ""
	}

	op := n.ChildByFieldName("operator")
	if op == nil || !isLogicalOperator(op.Type()) {
		return ""
	}

	return op.Type()
}

// unparen strips any number of enclosing parentheses.
func unparen(n *sitter.Node) *sitter.Node {
	for n != nil && kindOf(n) == KindParenthesized {
		inner := firstNamedChild(n)
		if inner == nil {
			return n
		}

		n = inner
	}

	return n
}

// firstNamedChild returns the first named child that is not a comment.
func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if kindOf(c) != KindComment {
			return c
		}
	}

	return nil
}

// nodeKey identifies a node within one tree independently of the Go value
// the binding hands out for it.
type nodeKey struct {
	start, end uint32
	kind       NodeKind
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), kind: kindOf(n)}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && keyOf(a) == keyOf(b)
}
