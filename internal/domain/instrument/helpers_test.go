package instrument

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"
)

func parseJS(t *testing.T, code string) *sitter.Node {
	t.Helper()

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(code))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	require.Nil(t, firstSyntaxError(root), "test source must parse cleanly: %s", code)

	return root
}

// findKind returns the first node of kind k in pre-order.
func findKind(n *sitter.Node, k NodeKind) *sitter.Node {
	if kindOf(n) == k {
		return n
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findKind(n.NamedChild(i), k); found != nil {
			return found
		}
	}

	return nil
}
