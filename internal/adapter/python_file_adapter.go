// Package adapter contains infrastructure adapters for the python-case CLI:
// Python parsing, filesystem access, ignore matching, module-origin
// resolution, and report persistence.
package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// PythonFileAdapter encapsulates Python-specific parsing so the domain layer
// can focus on rename rules while delegating grammar details to an
// infrastructure component.
type PythonFileAdapter interface {
	// Parse builds a formatting-preserving syntax tree for the source text.
	// It fails with a wrapped model.ErrParseFailure when the text does not
	// conform to the Python grammar. The returned tree owns C memory and
	// must be closed by the caller.
	Parse(ctx context.Context, src []byte) (*sitter.Tree, error)
}

// TreeSitterPythonAdapter provides a concrete PythonFileAdapter backed by the
// tree-sitter Python grammar.
type TreeSitterPythonAdapter struct{}

// NewTreeSitterPythonAdapter constructs a TreeSitterPythonAdapter.
func NewTreeSitterPythonAdapter() *TreeSitterPythonAdapter {
	return &TreeSitterPythonAdapter{}
}

// Parse builds the syntax tree for the provided source.
//
// A fresh parser is created per call: tree-sitter parsers are not safe for
// concurrent use and callers parse independent source units in parallel.
func (a *TreeSitterPythonAdapter) Parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: syntax error in source", m.ErrParseFailure)
	}

	return tree, nil
}
