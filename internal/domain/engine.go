package domain

import (
	"context"
	"fmt"

	"github.com/simondoesstuff/python-case/internal/adapter"
)

// Engine is the rename engine boundary consumed by the CLI collaborators.
// Each invocation is a pure function of source text to rewritten source text:
// the engine performs no I/O and keeps no state across calls, so callers may
// run independent source units in parallel.
type Engine struct {
	parser   adapter.PythonFileAdapter
	resolver ModuleResolver
}

// NewEngine creates an Engine with the given parser and origin resolver.
func NewEngine(parser adapter.PythonFileAdapter, resolver ModuleResolver) *Engine {
	return &Engine{parser: parser, resolver: resolver}
}

// Rewrite parses the source, classifies import origins, and rewrites
// identifier occurrences to Pythonic conventions. The input is never
// modified; formatting and comments are preserved exactly where unchanged.
//
// It fails with a wrapped model.ErrParseFailure when the source does not
// parse; the caller decides whether to skip, report, or abort the batch.
func (e *Engine) Rewrite(ctx context.Context, src []byte) ([]byte, error) {
	if e.parser == nil || e.resolver == nil {
		return nil, fmt.Errorf("engine missing parser or resolver")
	}

	tree, err := e.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	o := classifyImports(root, src, e.resolver)

	return newRewriter(src, o).rewrite(root), nil
}
