package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/jscov/internal/model"
)

// ManifestFile is written at the root of an output directory and lists what
// was instrumented there.
const ManifestFile = "jscov-manifest.yaml"

// OutputStore persists instrumented sources.
type OutputStore interface {
	// Save writes code for source below root, keyed by source.Rel. An empty
	// root overwrites the original file. The written path is returned.
	Save(root m.Path, source m.Source, code []byte) (m.Path, error)
	// SaveManifest writes the manifest of results into root.
	SaveManifest(root m.Path, results []m.FileResult) (m.Path, error)
}

// LocalOutputStore writes through a SourceFSAdapter.
type LocalOutputStore struct {
	fs SourceFSAdapter
}

// NewLocalOutputStore constructs a LocalOutputStore.
func NewLocalOutputStore(fs SourceFSAdapter) *LocalOutputStore {
	return &LocalOutputStore{fs: fs}
}

// Save implements OutputStore.
func (s *LocalOutputStore) Save(root m.Path, source m.Source, code []byte) (m.Path, error) {
	if source.Origin == nil {
		return "", fmt.Errorf("source origin is nil")
	}

	if root == "" {
		return s.overwrite(source.Origin.Path, code)
	}

	rel := filepath.FromSlash(string(source.Rel))
	if rel == "" || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q escapes %s", source.Rel, root)
	}

	dst := s.fs.JoinPath(string(root), rel)
	if err := s.fs.MkdirAll(m.Path(filepath.Dir(string(dst)))); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := s.fs.WriteFile(dst, code, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return dst, nil
}

func (s *LocalOutputStore) overwrite(path m.Path, code []byte) (m.Path, error) {
	perm := os.FileMode(0o644)
	if info, err := s.fs.FileInfo(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := s.fs.WriteFile(path, code, perm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

type manifest struct {
	Files []manifestEntry `yaml:"files"`
}

type manifestEntry struct {
	Path       string `yaml:"path"`
	Hash       string `yaml:"hash"`
	Accessor   string `yaml:"accessor,omitempty"`
	Statements int    `yaml:"statements"`
	Functions  int    `yaml:"functions"`
	Branches   int    `yaml:"branches"`
	Skipped    string `yaml:"skipped,omitempty"`
	Error      string `yaml:"error,omitempty"`
}

// SaveManifest implements OutputStore.
func (s *LocalOutputStore) SaveManifest(root m.Path, results []m.FileResult) (m.Path, error) {
	doc := manifest{Files: make([]manifestEntry, 0, len(results))}

	for _, r := range results {
		entry := manifestEntry{
			Path:       string(r.Source.Rel),
			Statements: r.Counts.Statements,
			Functions:  r.Counts.Functions,
			Branches:   r.Counts.Branches,
		}

		if r.Source.Origin != nil {
			entry.Hash = r.Source.Origin.Hash
		}

		if r.Coverage != nil {
			entry.Accessor = r.Coverage.Accessor
		}

		if r.Skipped {
			entry.Skipped = r.Reason
		}

		if r.Error != nil {
			entry.Error = r.Error.Error()
		}

		doc.Files = append(doc.Files, entry)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := s.fs.MkdirAll(root); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	dst := s.fs.JoinPath(string(root), ManifestFile)
	if err := s.fs.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return dst, nil
}
