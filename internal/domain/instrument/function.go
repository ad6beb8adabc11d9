package instrument

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
)

// coverFunction registers a function and counts its entry as the first
// statement of its body. Expression bodies of arrow functions are turned
// into blocks returning the expression.
func (in *instrumenter) coverFunction(n *sitter.Node, d decision) error {
	body := n.ChildByFieldName("body")
	if body == nil {
		return newNodeError(in.path, n, ErrMalformedInput, "function without analyzable body")
	}

	if !d.own {
		return nil
	}

	name := in.functionName(n)

	decl := n
	if id := n.ChildByFieldName("name"); id != nil {
		decl = id
	}

	id := in.cov.NewFunction(name, rangeOf(decl), rangeOf(body))
	in.log.Debug("function counter", slog.Int("fn_id", id))

	counter := Counter(in.accessor, FunctionRef(id))

	if kindOf(body) == KindStatementBlock {
		in.blockStart(body, counter, true)
		return nil
	}

	stmt := in.cov.NewStatement(rangeOf(body))
	in.log.Debug("statement counter", slog.Int("stmt_id", stmt), slog.String("placement", "arrow body"))

	in.edits.open(int(body.StartByte()), "{ "+counter+"; "+Counter(in.accessor, StatementRef(stmt))+"; return ")
	in.edits.close(int(body.EndByte()), "; }")

	return nil
}

// functionName returns the declared name of n, falling back to the
// identifier of the declarator it initialises. Anonymous functions yield nil.
func (in *instrumenter) functionName(n *sitter.Node) *string {
	if id := n.ChildByFieldName("name"); id != nil {
		name := id.Content(in.src)
		return &name
	}

	parent, ok := in.stack.FrameFromTop(1)
	if !ok || parent.Kind != KindVariableDeclarator || !sameNode(parent.Node.ChildByFieldName("value"), n) {
		return nil
	}

	if id := parent.Node.ChildByFieldName("name"); id != nil && kindOf(id) == KindIdentifier {
		name := id.Content(in.src)
		return &name
	}

	return nil
}
