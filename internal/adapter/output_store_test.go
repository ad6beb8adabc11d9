package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/jscov/internal/model"
)

func TestLocalOutputStore_Save(t *testing.T) {
	store := NewLocalOutputStore(NewLocalSourceFSAdapter())

	t.Run("writes below output root keyed by rel", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "out")
		source := m.Source{Origin: &m.File{Path: "/src/lib/a.js"}, Rel: "lib/a.js"}

		got, err := store.Save(m.Path(root), source, []byte("instrumented();"))
		require.NoError(t, err)

		want := filepath.Join(root, "lib", "a.js")
		assert.Equal(t, m.Path(want), got)
		assert.Equal(t, "instrumented();", string(readFileBytes(t, want)))
	})

	t.Run("empty root overwrites in place keeping mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeTestFile(t, path, "original();")
		require.NoError(t, os.Chmod(path, 0o600))

		got, err := store.Save("", m.Source{Origin: &m.File{Path: m.Path(path)}, Rel: "a.js"}, []byte("changed();"))
		require.NoError(t, err)
		assert.Equal(t, m.Path(path), got)
		assert.Equal(t, "changed();", string(readFileBytes(t, path)))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("rejects escaping rel", func(t *testing.T) {
		for _, rel := range []string{"", "../a.js", "/abs/a.js", ".."} {
			_, err := store.Save(m.Path(t.TempDir()), m.Source{Origin: &m.File{Path: "a.js"}, Rel: m.Path(rel)}, nil)
			assert.Errorf(t, err, "rel %q", rel)
		}
	})

	t.Run("nil origin", func(t *testing.T) {
		_, err := store.Save(m.Path(t.TempDir()), m.Source{Rel: "a.js"}, nil)
		require.Error(t, err)
	})

	t.Run("directory creation failure", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "lib"), "not a dir")

		_, err := store.Save(m.Path(root), m.Source{Origin: &m.File{Path: "a.js"}, Rel: "lib/a.js"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output dir")
	})
}

func TestLocalOutputStore_SaveManifest(t *testing.T) {
	store := NewLocalOutputStore(NewLocalSourceFSAdapter())
	root := filepath.Join(t.TempDir(), "out")

	cov := m.NewSourceCoverage("a.js", "cov_abc")
	results := []m.FileResult{
		{
			Source:   m.Source{Origin: &m.File{Path: "/p/a.js", Hash: "h1"}, Rel: "a.js"},
			Counts:   m.Counts{Statements: 3, Functions: 1, Branches: 2, Paths: 4},
			Coverage: cov,
		},
		{
			Source:  m.Source{Origin: &m.File{Path: "/p/b.js", Hash: "h2"}, Rel: "b.js"},
			Skipped: true,
			Reason:  "ignore file directive",
		},
		{
			Source: m.Source{Rel: "c.js"},
			Error:  errors.New("boom"),
		},
	}

	path, err := store.SaveManifest(m.Path(root), results)
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(root, ManifestFile)), path)

	var got manifest
	require.NoError(t, yaml.Unmarshal(readFileBytes(t, string(path)), &got))
	require.Len(t, got.Files, 3)

	assert.Equal(t, manifestEntry{Path: "a.js", Hash: "h1", Accessor: "cov_abc", Statements: 3, Functions: 1, Branches: 2}, got.Files[0])
	assert.Equal(t, "ignore file directive", got.Files[1].Skipped)
	assert.Equal(t, "boom", got.Files[2].Error)
}
