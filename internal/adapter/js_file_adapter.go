package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// JSFileAdapter encapsulates JavaScript parsing so the domain layer can focus
// on counter placement while delegating grammar details to an infrastructure
// component.
type JSFileAdapter interface {
	// Parse builds a syntax tree for src. The caller owns the tree and must
	// Close it.
	Parse(ctx context.Context, src []byte) (*sitter.Tree, error)
}

// LocalJSFileAdapter provides a concrete JSFileAdapter backed by tree-sitter.
type LocalJSFileAdapter struct {
	language *sitter.Language
}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{language: javascript.GetLanguage()}
}

// Parse parses src with a fresh parser; tree-sitter parsers are not safe for
// concurrent use. Syntax errors are not reported here, they surface as ERROR
// nodes in the returned tree.
func (a *LocalJSFileAdapter) Parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(a.language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse javascript: %w", err)
	}

	return tree, nil
}
