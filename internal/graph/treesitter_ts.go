package graph

import (
	"path"
	"strings"
	"unicode"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsExtractor collects top-level declarations and import specifiers from a
// TypeScript or JavaScript tree. When jsx is set, PascalCase functions and
// wrapped values (forwardRef, memo) count as components.
type tsExtractor struct {
	filePath   string
	lineOffset int
	jsx        bool
}

func (e *tsExtractor) Extract(root *tree_sitter.Node, source []byte) ([]SymbolNode, []ImportRef) {
	var symbols []SymbolNode
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		exported := false
		decl := child
		if child.Kind() == "export_statement" {
			exported = true
			decl = child.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
		}
		symbols = append(symbols, e.declaration(decl, source, exported)...)
	}

	var imports []ImportRef
	cursor := root.Walk()
	defer cursor.Close()
	e.walkImports(cursor, source, &imports)
	return symbols, imports
}

func (e *tsExtractor) declaration(node *tree_sitter.Node, source []byte, exported bool) []SymbolNode {
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		if sym := e.named(node, source, SymbolKindFunction, exported); sym != nil {
			if e.jsx && isPascal(sym.Name) {
				sym.Kind = SymbolKindComponent
			}
			return []SymbolNode{*sym}
		}
	case "class_declaration", "abstract_class_declaration":
		if sym := e.named(node, source, SymbolKindClass, exported); sym != nil {
			return []SymbolNode{*sym}
		}
	case "interface_declaration":
		if sym := e.named(node, source, SymbolKindInterface, exported); sym != nil {
			return []SymbolNode{*sym}
		}
	case "type_alias_declaration":
		if sym := e.named(node, source, SymbolKindType, exported); sym != nil {
			return []SymbolNode{*sym}
		}
	case "enum_declaration":
		if sym := e.named(node, source, SymbolKindEnum, exported); sym != nil {
			return []SymbolNode{*sym}
		}
	case "lexical_declaration", "variable_declaration":
		return e.variables(node, source, exported)
	}
	return nil
}

func (e *tsExtractor) named(node *tree_sitter.Node, source []byte, kind SymbolKind, exported bool) *SymbolNode {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return &SymbolNode{
		Name:      nameNode.Utf8Text(source),
		Kind:      kind,
		Exported:  exported,
		FilePath:  e.filePath,
		StartLine: e.line(node.StartPosition()),
		EndLine:   e.line(node.EndPosition()),
	}
}

// variables turns each simple declarator ("const x = ...") into a symbol.
// Destructuring patterns are skipped.
func (e *tsExtractor) variables(node *tree_sitter.Node, source []byte, exported bool) []SymbolNode {
	var result []SymbolNode
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			continue
		}
		name := nameNode.Utf8Text(source)

		kind := SymbolKindVariable
		if value := child.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "arrow_function", "function_expression", "function":
				kind = SymbolKindFunction
				if e.jsx && isPascal(name) {
					kind = SymbolKindComponent
				}
			case "call_expression":
				if e.jsx && isPascal(name) && wrapsComponent(value, source) {
					kind = SymbolKindComponent
				}
			}
		}
		result = append(result, SymbolNode{
			Name:      name,
			Kind:      kind,
			Exported:  exported,
			FilePath:  e.filePath,
			StartLine: e.line(child.StartPosition()),
			EndLine:   e.line(child.EndPosition()),
		})
	}
	return result
}

// walkImports records static imports, re-exports, dynamic import() and
// require() calls anywhere in the tree.
func (e *tsExtractor) walkImports(cursor *tree_sitter.TreeCursor, source []byte, imports *[]ImportRef) {
	node := cursor.Node()
	switch node.Kind() {
	case "import_statement", "export_statement":
		if spec, ok := sourceSpecifier(node, source); ok {
			*imports = append(*imports, ImportRef{Specifier: spec, Line: e.line(node.StartPosition())})
		}
	case "call_expression":
		if spec, ok := callSpecifier(node, source); ok {
			*imports = append(*imports, ImportRef{Specifier: spec, Line: e.line(node.StartPosition())})
		}
	}

	if cursor.GotoFirstChild() {
		e.walkImports(cursor, source, imports)
		for cursor.GotoNextSibling() {
			e.walkImports(cursor, source, imports)
		}
		cursor.GotoParent()
	}
}

func (e *tsExtractor) line(p tree_sitter.Point) int {
	return int(p.Row) + 1 + e.lineOffset
}

// sourceSpecifier reads the "from" string of an import or re-export.
func sourceSpecifier(node *tree_sitter.Node, source []byte) (string, bool) {
	src := node.ChildByFieldName("source")
	if src == nil && node.Kind() == "import_statement" {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "string" {
				src = child
				break
			}
		}
	}
	if src == nil {
		return "", false
	}
	spec := unquote(src.Utf8Text(source))
	return spec, spec != ""
}

// callSpecifier reads the argument of import("x") or require("x").
func callSpecifier(node *tree_sitter.Node, source []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	if fn.Kind() != "import" && !(fn.Kind() == "identifier" && fn.Utf8Text(source) == "require") {
		return "", false
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return "", false
	}
	first := args.NamedChild(0)
	if first == nil || first.Kind() != "string" {
		return "", false
	}
	spec := unquote(first.Utf8Text(source))
	return spec, spec != ""
}

// wrapsComponent reports calls like forwardRef(...), React.memo(...) or
// defineComponent(...).
func wrapsComponent(call *tree_sitter.Node, source []byte) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	name := fn.Utf8Text(source)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "forwardRef", "memo", "lazy", "styled", "defineComponent":
		return true
	}
	return false
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}

func isPascal(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// componentNameFromPath names a single-file component after its file:
// "src/components/user-card.vue" -> "UserCard".
func componentNameFromPath(p string) string {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	var b strings.Builder
	upper := true
	for _, r := range base {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
