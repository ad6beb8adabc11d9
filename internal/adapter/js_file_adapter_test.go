package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalJSFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalJSFileAdapter()

	content := readFileBytes(t, examplePath(t, "basic", "main.js"))
	tree, err := adapter.Parse(context.Background(), content)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Type())
	assert.False(t, root.HasError())
	assert.Positive(t, int(root.NamedChildCount()))
}

func TestLocalJSFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalJSFileAdapter()

	tree, err := adapter.Parse(context.Background(), []byte("function ( {"))
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestLocalJSFileAdapter_Parse_Cancelled(t *testing.T) {
	adapter := NewLocalJSFileAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	big := make([]byte, 0, 1<<20)
	for len(big) < 1<<20 {
		big = append(big, "a = a + 1;\n"...)
	}

	tree, err := adapter.Parse(ctx, big)
	if err == nil {
		tree.Close()
		t.Skip("parser finished before observing cancellation")
	}

	require.Error(t, err)
}
