package instrument

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readExample(t *testing.T, elem ...string) []byte {
	t.Helper()

	parts := append([]string{"..", "..", "..", "examples"}, elem...)

	content, err := os.ReadFile(filepath.Join(parts...))
	require.NoError(t, err)

	return content
}

func TestInstrument_Examples(t *testing.T) {
	tests := []struct {
		path      string
		functions int
	}{
		{path: "basic/main.js", functions: 5},
		{path: "logical/main.js", functions: 2},
		{path: "loops/main.js", functions: 4},
		{path: "ignore/main.js"},
		{path: "modules/index.mjs", functions: 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			src := readExample(t, filepath.FromSlash(tt.path))

			res, err := Instrument(context.Background(), src, tt.path, Options{})
			require.NoError(t, err)
			require.False(t, res.Skipped)

			if tt.functions > 0 {
				assert.Len(t, res.Coverage.Functions(), tt.functions)
			}

			assert.NotEmpty(t, res.Coverage.Statements())
			assert.NotEmpty(t, res.Coverage.Branches())

			// the output is valid JavaScript
			parseJS(t, string(res.Code))

			again, err := Instrument(context.Background(), res.Code, tt.path, Options{})
			require.NoError(t, err)
			assert.True(t, again.Skipped)
			assert.Equal(t, "already instrumented", again.Reason)
			assert.Equal(t, res.Code, again.Code)
		})
	}
}

func TestInstrument_ExampleFileDirective(t *testing.T) {
	src := readExample(t, "ignore", "generated.js")

	res, err := Instrument(context.Background(), src, "ignore/generated.js", Options{})
	require.NoError(t, err)

	assert.True(t, res.Skipped)
	assert.Equal(t, "ignore file directive", res.Reason)
	assert.Equal(t, src, res.Code)
}
