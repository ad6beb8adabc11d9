package instrument

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// CounterKind selects the runtime array an increment targets.
type CounterKind string

// Counter kinds, named after the arrays of the runtime store.
const (
	CounterStatement CounterKind = "s"
	CounterFunction  CounterKind = "f"
	CounterBranch    CounterKind = "b"
)

// CounterRef points at one runtime counter. It is derived from a registry
// entry and never stored.
type CounterRef struct {
	Kind    CounterKind
	ID      int
	Path    int
	HasPath bool
}

// StatementRef references statement id.
func StatementRef(id int) CounterRef { return CounterRef{Kind: CounterStatement, ID: id} }

// FunctionRef references function id.
func FunctionRef(id int) CounterRef { return CounterRef{Kind: CounterFunction, ID: id} }

// BranchRef references path of branch id.
func BranchRef(id, path int) CounterRef {
	return CounterRef{Kind: CounterBranch, ID: id, Path: path, HasPath: true}
}

// Counter renders the increment expression for ref, e.g. cov_1a2b().s[3]++.
func Counter(accessor string, ref CounterRef) string {
	if ref.HasPath {
		return fmt.Sprintf("%s().%s[%d][%d]++", accessor, ref.Kind, ref.ID, ref.Path)
	}

	return fmt.Sprintf("%s().%s[%d]++", accessor, ref.Kind, ref.ID)
}

// truthyOpen renders the head of a truthiness probe; the probed expression
// and a closing parenthesis follow it.
func truthyOpen(accessor string, branch, path int) string {
	return fmt.Sprintf("%s().truthy(%d, %d, ", accessor, branch, path)
}

// AccessorFor derives the per-file coverage accessor identifier.
func AccessorFor(path, salt string) string {
	sum := sha256.Sum256([]byte(salt + "\x00" + path))

	return "cov_" + hex.EncodeToString(sum[:])[:10]
}

// IsInjectedCounterExpression reports whether n is an increment this engine
// emits: a postfix ++ on accessor().s[N], accessor().f[N] or
// accessor().b[N][M]. User code that does not call accessor never matches.
func IsInjectedCounterExpression(n *sitter.Node, src []byte, accessor string) bool {
	if n == nil || kindOf(n) != KindUpdate {
		return false
	}

	op := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")

	if op == nil || op.Type() != "++" || arg == nil || arg.StartByte() != n.StartByte() {
		return false
	}

	subscripts := 0
	for kindOf(arg) == KindSubscript {
		index := arg.ChildByFieldName("index")
		if index == nil || kindOf(index) != KindNumber {
			return false
		}

		subscripts++

		arg = arg.ChildByFieldName("object")
		if arg == nil {
			return false
		}
	}

	if kindOf(arg) != KindMember {
		return false
	}

	prop := arg.ChildByFieldName("property")
	if prop == nil {
		return false
	}

	switch CounterKind(prop.Content(src)) {
	case CounterStatement, CounterFunction:
		if subscripts != 1 {
			return false
		}
	case CounterBranch:
		if subscripts != 2 {
			return false
		}
	default:
		return false
	}

	call := arg.ChildByFieldName("object")
	if call == nil || kindOf(call) != KindCall {
		return false
	}

	fn := call.ChildByFieldName("function")
	args := call.ChildByFieldName("arguments")

	return fn != nil && kindOf(fn) == KindIdentifier && fn.Content(src) == accessor &&
		args != nil && args.NamedChildCount() == 0
}

// IsInjectedCounterStatement reports whether n is a statement holding only
// an injected increment.
func IsInjectedCounterStatement(n *sitter.Node, src []byte, accessor string) bool {
	if n == nil || kindOf(n) != KindExpressionStatement {
		return false
	}

	return IsInjectedCounterExpression(firstNamedChild(n), src, accessor)
}

// IsInjectedSequence reports whether n is a parenthesised sequence whose
// first element is an injected increment, the shape of a wrapped target.
func IsInjectedSequence(n *sitter.Node, src []byte, accessor string) bool {
	if n == nil || kindOf(n) != KindParenthesized {
		return false
	}

	seq := firstNamedChild(n)
	if seq == nil || kindOf(seq) != KindSequence {
		return false
	}

	return IsInjectedCounterExpression(firstNamedChild(seq), src, accessor)
}
