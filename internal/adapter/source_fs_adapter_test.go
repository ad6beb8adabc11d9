package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/jscov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.js"), "let a = 1;\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.js"), "let b = 2;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.js")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.js")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.js")
		writeTestFile(t, child, "let b = 2;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "main.js")
	content := "function main() {}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "main.js")
	content := []byte("function main() {}\n")
	writeTestBytes(t, path, content)

	hash, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, hashBytes(content), hash)

	_, err = adapter.HashFile(m.Path(filepath.Join(t.TempDir(), "missing.js")))
	require.Error(t, err)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	info, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "nope")))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_MkdirAllAndWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, adapter.MkdirAll(m.Path(dir)))

	path := filepath.Join(dir, "out.js")
	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("x;"), 0o600))
	assert.Equal(t, "x;", string(readFileBytes(t, path)))
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	rel, err := adapter.RelPath("/a/b", "/a/b/c/d.js")
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("c", "d.js")), rel)

	assert.Equal(t, m.Path(filepath.Join("x", "y.js")), adapter.JoinPath("x", "y.js"))
}

func TestIsJSFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.js", true},
		{"a.mjs", true},
		{"a.cjs", true},
		{"A.JS", true},
		{"a.ts", false},
		{"a.json", false},
		{"js", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJSFile(tt.path))
		})
	}
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"src/...", "src", true},
		{"src", "src", false},
		{"a.js", "a.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, recursive := parseRootPath(tt.in)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("empty roots", func(t *testing.T) {
		sources, err := adapter.Get(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("dot selects current directory non-recursive", func(t *testing.T) {
		root := t.TempDir()
		mainPath := filepath.Join(root, "main.js")
		copyExampleFile(t, examplePath(t, "basic", "main.js"), mainPath)
		writeTestFile(t, filepath.Join(root, "README.md"), "# readme\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		nestedPath := filepath.Join(nestedDir, "child.js")
		writeTestFile(t, nestedPath, "let c = 1;\n")

		chdir(t, root)

		sources, err := adapter.Get([]m.Path{"."}, nil)
		require.NoError(t, err)
		require.Len(t, sources, 1)

		source := findSourceByOrigin(sources, mainPath)
		require.NotNilf(t, source, "Get() did not include %s", mainPath)
		assertSource(t, source, mainPath, readFileBytes(t, mainPath), "main.js")

		assert.Nil(t, findSourceByOrigin(sources, nestedPath), "Get() unexpectedly included nested file for '.'")
	})

	t.Run("recursive root keeps relative paths", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "index.mjs"), "export const a = 1;\n")
		mustMkdir(t, filepath.Join(root, "lib"))
		libPath := filepath.Join(root, "lib", "util.cjs")
		writeTestFile(t, libPath, "module.exports = {};\n")

		sources, err := adapter.Get([]m.Path{m.Path(root + "/...")}, nil)
		require.NoError(t, err)
		require.Len(t, sources, 2)

		source := findSourceByOrigin(sources, libPath)
		require.NotNil(t, source)
		assert.Equal(t, m.Path("lib/util.cjs"), source.Rel)
	})

	t.Run("skips node_modules and hidden directories", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.js"), "run();\n")
		for _, dir := range []string{"node_modules", ".cache"} {
			mustMkdir(t, filepath.Join(root, dir))
			writeTestFile(t, filepath.Join(root, dir, "dep.js"), "dep();\n")
		}
		writeTestFile(t, filepath.Join(root, ".eslintrc.js"), "module.exports = {};\n")

		sources, err := adapter.Get([]m.Path{m.Path(root + "/...")}, nil)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, m.Path("app.js"), sources[0].Rel)
	})

	t.Run("exclude patterns use gitignore syntax", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.js"), "run();\n")
		writeTestFile(t, filepath.Join(root, "app.test.js"), "test();\n")
		mustMkdir(t, filepath.Join(root, "dist"))
		writeTestFile(t, filepath.Join(root, "dist", "bundle.js"), "bundle();\n")

		sources, err := adapter.Get([]m.Path{m.Path(root + "/...")}, []string{"*.test.js", "dist/", " "})
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, m.Path("app.js"), sources[0].Rel)
	})

	t.Run("file root uses base name and deduplicates", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "one.js")
		writeTestFile(t, path, "one();\n")

		sources, err := adapter.Get([]m.Path{m.Path(path), m.Path(path), m.Path(root)}, nil)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, m.Path("one.js"), sources[0].Rel)
	})

	t.Run("non javascript file root is ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		writeTestFile(t, path, "hello\n")

		sources, err := adapter.Get([]m.Path{m.Path(path)}, nil)
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("tilde expands home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		mainPath := filepath.Join(home, "home.js")
		copyExampleFile(t, examplePath(t, "basic", "main.js"), mainPath)

		sources, err := adapter.Get([]m.Path{"~"}, nil)
		require.NoError(t, err)

		source := findSourceByOrigin(sources, mainPath)
		require.NotNilf(t, source, "Get() did not include %s", mainPath)
		assertSource(t, source, mainPath, readFileBytes(t, mainPath), "home.js")
	})

	t.Run("missing root is an error", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func findSourceByOrigin(sources []m.Source, origin string) *m.Source {
	for i := range sources {
		if sources[i].Origin == nil {
			continue
		}
		if string(sources[i].Origin.Path) == origin {
			return &sources[i]
		}
	}

	return nil
}

func assertSource(t *testing.T, source *m.Source, originPath string, originContent []byte, rel string) {
	t.Helper()

	require.NotNil(t, source, "source is nil")
	require.NotNil(t, source.Origin, "Origin is nil")

	assert.Equal(t, m.Path(originPath), source.Origin.Path)
	assert.Equal(t, hashBytes(originContent), source.Origin.Hash)
	assert.Equal(t, m.Path(rel), source.Rel)
}

func hashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := filepath.Clean(filepath.Join(wd, "..", ".."))
	parts := append([]string{repoRoot, "examples"}, elem...)

	return filepath.Join(parts...)
}

func copyExampleFile(t *testing.T, src, dst string) {
	t.Helper()
	content := readFileBytes(t, src)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, content, 0o644))
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return content
}
