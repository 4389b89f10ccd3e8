package domain

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// scopeFrame maps an original identifier to its already-decided replacement
// within one lexical scope (function or class body). The first decision for a
// name is authoritative for the frame's lifetime.
type scopeFrame map[string]string

// rewriter walks the syntax tree once, renaming definitions and references to
// Pythonic conventions while protecting everything rooted in an external
// origin. It produces byte edits against the original source; the tree and
// the input text are never mutated.
type rewriter struct {
	src     []byte
	buf     *editBuffer
	origins *origins

	// scopes is the stack of lexical frames, innermost last. Reads resolve
	// innermost-to-outermost; writes are decided in the innermost frame.
	scopes []scopeFrame

	// classNames and funcNames hold already-renamed definition names so a
	// bare reference renames consistently outside its defining scope.
	classNames map[string]struct{}
	funcNames  map[string]struct{}
}

func newRewriter(src []byte, o *origins) *rewriter {
	return &rewriter{
		src:        src,
		buf:        newEditBuffer(src),
		origins:    o,
		scopes:     []scopeFrame{{}},
		classNames: make(map[string]struct{}),
		funcNames:  make(map[string]struct{}),
	}
}

func (rw *rewriter) rewrite(root *sitter.Node) []byte {
	rw.walk(root)
	return rw.buf.bytes()
}

func (rw *rewriter) walk(n *sitter.Node) {
	switch n.Type() {
	case "class_definition":
		rw.rewriteClass(n)
	case "function_definition":
		rw.rewriteFunction(n)
	case "attribute":
		rw.rewriteAttribute(n)
	case "identifier":
		rw.rewriteIdentifier(n)
	case "import_statement":
		rw.rewriteImport(n)
	case "import_from_statement":
		rw.rewriteImportFrom(n)
	default:
		for i := 0; i < int(n.NamedChildCount()); i++ {
			rw.walk(n.NamedChild(i))
		}
	}
}

func (rw *rewriter) push()             { rw.scopes = append(rw.scopes, scopeFrame{}) }
func (rw *rewriter) pop()              { rw.scopes = rw.scopes[:len(rw.scopes)-1] }
func (rw *rewriter) frame() scopeFrame { return rw.scopes[len(rw.scopes)-1] }

// lookup resolves a read through the scope stack, innermost frame first.
func (rw *rewriter) lookup(name string) (string, bool) {
	for i := len(rw.scopes) - 1; i >= 0; i-- {
		if repl, ok := rw.scopes[i][name]; ok {
			return repl, true
		}
	}

	return "", false
}

// rewriteClass renames a class definition to PascalCase. The body is visited
// in a fresh frame; the rename itself is recorded in the enclosing frame so a
// later instantiation of the old name resolves to the new one.
func (rw *rewriter) rewriteClass(n *sitter.Node) {
	name := n.ChildByFieldName("name")

	rw.push()

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if name != nil && child.Equal(name) {
			continue
		}

		rw.walk(child)
	}

	rw.pop()

	if name == nil {
		return
	}

	oldName := name.Content(rw.src)
	newName := ToPascalCase(oldName)
	rw.classNames[newName] = struct{}{}

	if newName != oldName {
		rw.frame()[oldName] = newName
		rw.buf.replaceNode(name, newName)
	}
}

// rewriteFunction renames a function definition to snake_case. Parameters are
// renamed into the new frame before the body is visited so references inside
// resolve through the frame.
func (rw *rewriter) rewriteFunction(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")

	rw.push()

	if params != nil {
		rw.renameParameters(params)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if name != nil && child.Equal(name) {
			continue
		}

		if params != nil && child.Equal(params) {
			continue
		}

		rw.walk(child)
	}

	rw.pop()

	if name == nil {
		return
	}

	oldName := name.Content(rw.src)
	newName := ToSnakeCase(oldName)
	rw.funcNames[newName] = struct{}{}

	if newName != oldName {
		rw.frame()[oldName] = newName
		rw.buf.replaceNode(name, newName)
	}
}

func (rw *rewriter) renameParameters(params *sitter.Node) {
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)

		switch p.Type() {
		case "identifier":
			rw.renameParam(p)
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				rw.renameParam(name)
			}

			if typ := p.ChildByFieldName("type"); typ != nil {
				rw.walk(typ)
			}

			if value := p.ChildByFieldName("value"); value != nil {
				rw.walk(value)
			}
		case "typed_parameter":
			if inner := p.NamedChild(0); inner != nil {
				rw.renameParamPattern(inner)
			}

			if typ := p.ChildByFieldName("type"); typ != nil {
				rw.walk(typ)
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			rw.renameParamPattern(p)
		}
	}
}

func (rw *rewriter) renameParamPattern(n *sitter.Node) {
	switch n.Type() {
	case "identifier":
		rw.renameParam(n)
	case "list_splat_pattern", "dictionary_splat_pattern":
		if inner := n.NamedChild(0); inner != nil && inner.Type() == "identifier" {
			rw.renameParam(inner)
		}
	}
}

func (rw *rewriter) renameParam(ident *sitter.Node) {
	oldName := ident.Content(rw.src)

	newName := ToSnakeCase(oldName)
	if newName == oldName {
		return
	}

	rw.frame()[oldName] = newName
	rw.buf.replaceNode(ident, newName)
}

// rewriteAttribute renames only the trailing attribute of a receiver named
// exactly `self`. Attribute chains rooted at an external name are skipped
// entirely so qualified calls like np.random.randn stay untouched.
func (rw *rewriter) rewriteAttribute(n *sitter.Node) {
	if root := attributeRoot(n); root != nil && rw.origins.isExternal(root.Content(rw.src)) {
		return
	}

	obj := n.ChildByFieldName("object")
	if obj != nil {
		rw.walk(obj)
	}

	attr := n.ChildByFieldName("attribute")
	if attr == nil || obj == nil {
		return
	}

	if obj.Type() == "identifier" && obj.Content(rw.src) == "self" {
		rw.buf.replaceNode(attr, ToSnakeCase(attr.Content(rw.src)))
	}
}

// attributeRoot returns the leftmost receiver of an attribute chain when it
// is a bare identifier, or nil when the chain is rooted in a more complex
// expression (a call, a subscript).
func attributeRoot(n *sitter.Node) *sitter.Node {
	cur := n
	for cur.Type() == "attribute" {
		obj := cur.ChildByFieldName("object")
		if obj == nil {
			return nil
		}

		cur = obj
	}

	if cur.Type() == "identifier" {
		return cur
	}

	return nil
}

// rewriteIdentifier applies the rename rules to one identifier occurrence.
//
// Writes (assignment targets) are snake_cased unconditionally: variables are
// never classes. Reads first consult the scope stack, then the protection
// sets, then fall back to convention rules, treating a PascalCase-looking
// name as a forward class reference.
func (rw *rewriter) rewriteIdentifier(n *sitter.Node) {
	name := n.Content(rw.src)

	if isWriteTarget(n) {
		frame := rw.frame()
		if repl, ok := frame[name]; ok {
			rw.buf.replaceNode(n, repl)
			return
		}

		newName := ToSnakeCase(name)
		if newName != name {
			frame[name] = newName
			rw.buf.replaceNode(n, newName)
		}

		return
	}

	if repl, ok := rw.lookup(name); ok {
		rw.buf.replaceNode(n, repl)
		return
	}

	if rw.origins.isExternal(name) || rw.origins.isRelativeAlias(name) {
		return
	}

	if _, ok := rw.classNames[name]; ok {
		return
	}

	if _, ok := rw.funcNames[name]; ok {
		return
	}

	var newName string

	switch {
	case isUnderscorePrefixedPascalCase(name) || IsPascalCase(name):
		newName = ToPascalCase(name)
	default:
		newName = ToSnakeCase(name)
	}

	if newName != name {
		rw.frame()[name] = newName
		rw.buf.replaceNode(n, newName)
	}
}

// isWriteTarget reports whether the identifier occurs in a store context:
// the left side of an assignment, a loop target, an `as` binding, or a
// walrus target. Destructuring patterns are unwrapped recursively.
func isWriteTarget(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Type() {
	case "assignment", "augmented_assignment", "for_statement", "for_in_clause":
		left := parent.ChildByFieldName("left")
		return left != nil && left.Equal(n)
	case "pattern_list", "tuple_pattern", "list_pattern", "list_splat_pattern":
		return isWriteTarget(parent)
	case "as_pattern_target":
		return true
	case "named_expression":
		name := parent.ChildByFieldName("name")
		return name != nil && name.Equal(n)
	}

	return false
}

// rewriteImport renames module paths in `import X [as Y]` statements when the
// module is internal. External imports are left untouched; the classifier has
// already protected their bound names.
func (rw *rewriter) rewriteImport(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		switch child.Type() {
		case "dotted_name":
			if rw.origins.isExternal(rootModuleName(child, rw.src)) {
				continue
			}

			rw.rewriteModulePath(child, true)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			if rw.origins.isExternal(rootModuleName(name, rw.src)) {
				continue
			}

			rw.rewriteModulePath(name, false)

			if alias := child.ChildByFieldName("alias"); alias != nil {
				rw.rewriteIdentifier(alias)
			}
		}
	}
}

// rewriteImportFrom renames `from X import Y` statements. Relative imports
// are left entirely alone: their names belong to the imported module's own
// renaming pass. External absolute imports are preserved; internal ones have
// their module path and imported names converted.
func (rw *rewriter) rewriteImportFrom(n *sitter.Node) {
	module := n.ChildByFieldName("module_name")
	if module == nil || module.Type() == "relative_import" {
		return
	}

	if rw.origins.isExternal(rootModuleName(module, rw.src)) {
		return
	}

	rw.rewriteModulePath(module, false)

	for _, imported := range importedNames(n) {
		switch imported.Type() {
		case "identifier":
			rw.rewriteIdentifier(imported)
		case "dotted_name":
			rw.rewriteModulePath(imported, false)
		case "aliased_import":
			if name := imported.ChildByFieldName("name"); name != nil {
				rw.rewriteModulePath(name, false)
			}

			if alias := imported.ChildByFieldName("alias"); alias != nil {
				rw.rewriteIdentifier(alias)
			}
		}
	}
}

// rewriteModulePath converts the segments of an internal module path to
// snake_case, mirroring the path rename planner's policy: PascalCase segments
// name class-modules and stay as they are. When recordRoot is set, the root
// segment's rename is remembered so later qualified references resolve to it.
func (rw *rewriter) rewriteModulePath(dotted *sitter.Node, recordRoot bool) {
	if dotted == nil {
		return
	}

	if dotted.Type() == "identifier" {
		rw.rewritePathSegment(dotted, recordRoot)
		return
	}

	for i := 0; i < int(dotted.NamedChildCount()); i++ {
		segment := dotted.NamedChild(i)
		if segment.Type() != "identifier" {
			continue
		}

		rw.rewritePathSegment(segment, recordRoot && i == 0)
	}
}

func (rw *rewriter) rewritePathSegment(segment *sitter.Node, record bool) {
	oldName := segment.Content(rw.src)
	if IsPascalCase(oldName) {
		return
	}

	newName := ToSnakeCase(oldName)
	if newName == oldName {
		return
	}

	if record {
		rw.frame()[oldName] = newName
	}

	rw.buf.replaceNode(segment, newName)
}
