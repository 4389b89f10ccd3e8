package domain

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ModuleResolver decides whether an absolutely-imported module refers to
// third-party or standard-library code. Implementations may consult a static
// denylist, a dependency manifest, or the host environment; the engine only
// relies on the contract that ambiguity resolves to internal, so local code is
// rewritten rather than silently skipped.
type ModuleResolver interface {
	IsExternal(rootModule string) bool
}

// origins holds the result of import classification for one source unit: the
// set of root names resolving to external code, and the alias map for
// relatively-imported names. Both are read-only during rewriting.
type origins struct {
	external map[string]struct{}
	aliases  map[string]string
}

func newOrigins() *origins {
	return &origins{
		external: make(map[string]struct{}),
		aliases:  make(map[string]string),
	}
}

func (o *origins) isExternal(name string) bool {
	_, ok := o.external[name]
	return ok
}

// isRelativeAlias reports whether a name was bound by a relative import. Such
// names belong to another module's own renaming pass and are left alone here.
func (o *origins) isRelativeAlias(name string) bool {
	_, ok := o.aliases[name]
	return ok
}

// classifyImports makes a single read-only pass over the tree's import
// statements. Absolute imports are classified through the resolver; aliased
// external imports protect the alias itself, and names imported from an
// external module are protected individually. Relative imports are always
// internal and populate the alias map. The tree is not modified.
func classifyImports(root *sitter.Node, src []byte, resolver ModuleResolver) *origins {
	o := newOrigins()
	o.collect(root, src, resolver)

	return o
}

func (o *origins) collect(n *sitter.Node, src []byte, resolver ModuleResolver) {
	switch n.Type() {
	case "import_statement":
		o.collectImport(n, src, resolver)
		return
	case "import_from_statement":
		o.collectImportFrom(n, src, resolver)
		return
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		o.collect(n.NamedChild(i), src, resolver)
	}
}

// collectImport handles `import X` and `import X as Y`.
func (o *origins) collectImport(n *sitter.Node, src []byte, resolver ModuleResolver) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		switch child.Type() {
		case "dotted_name":
			root := rootModuleName(child, src)
			if root != "" && resolver.IsExternal(root) {
				o.external[root] = struct{}{}
			}
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")

			root := rootModuleName(name, src)
			if root == "" || !resolver.IsExternal(root) {
				continue
			}

			o.external[root] = struct{}{}
			if alias != nil {
				o.external[alias.Content(src)] = struct{}{}
			}
		}
	}
}

// collectImportFrom handles `from X import Y [as Z]` and `from .x import Y`.
func (o *origins) collectImportFrom(n *sitter.Node, src []byte, resolver ModuleResolver) {
	module := n.ChildByFieldName("module_name")
	if module == nil {
		return
	}

	if module.Type() == "relative_import" {
		o.collectRelativeNames(n, src)
		return
	}

	root := rootModuleName(module, src)
	if root == "" || !resolver.IsExternal(root) {
		// Unresolvable but plausibly local: default to internal so the
		// rewriter still processes references to these names.
		return
	}

	o.external[root] = struct{}{}

	for _, imported := range importedNames(n) {
		switch imported.Type() {
		case "dotted_name", "identifier":
			o.external[imported.Content(src)] = struct{}{}
		case "aliased_import":
			if alias := imported.ChildByFieldName("alias"); alias != nil {
				o.external[alias.Content(src)] = struct{}{}
			}
		}
	}
}

func (o *origins) collectRelativeNames(n *sitter.Node, src []byte) {
	for _, imported := range importedNames(n) {
		switch imported.Type() {
		case "dotted_name", "identifier":
			name := imported.Content(src)
			o.aliases[name] = name
		case "aliased_import":
			name := imported.ChildByFieldName("name")
			alias := imported.ChildByFieldName("alias")

			if name == nil {
				continue
			}

			if alias != nil {
				o.aliases[alias.Content(src)] = name.Content(src)
			} else {
				o.aliases[name.Content(src)] = name.Content(src)
			}
		}
	}
}

// importedNames returns the nodes bound by an import_from_statement, skipping
// the module path itself. Wildcard imports bind nothing we can track.
func importedNames(n *sitter.Node) []*sitter.Node {
	var names []*sitter.Node

	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) != "name" {
			continue
		}

		names = append(names, n.Child(i))
	}

	return names
}

// rootModuleName extracts the leading module segment from a dotted_name or
// identifier node: the root of `torch.utils.data` is `torch`.
func rootModuleName(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	switch n.Type() {
	case "identifier":
		return n.Content(src)
	case "dotted_name":
		text := n.Content(src)
		if i := strings.IndexByte(text, '.'); i >= 0 {
			return text[:i]
		}

		return text
	}

	return ""
}
