package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/dusk-indust/frontgen/internal/validation"
)

// maxSyntaxIssues caps how many parse errors are reported per file.
const maxSyntaxIssues = 5

// TreeSitterParser parses TypeScript with the typescript grammar and
// TSX/JS/JSX with the tsx grammar. Vue single-file components are parsed
// through their <script> block. A new tree-sitter parser is created per
// call, so one TreeSitterParser may be shared between goroutines.
type TreeSitterParser struct {
	typescript *tree_sitter.Language
	tsx        *tree_sitter.Language
}

var (
	_ Parser                   = (*TreeSitterParser)(nil)
	_ validation.SyntaxChecker = (*TreeSitterParser)(nil)
)

// NewTreeSitterParser registers the TypeScript and TSX grammars.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		typescript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		tsx:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
	}
}

func (p *TreeSitterParser) grammar(lang Language) (*tree_sitter.Language, bool) {
	switch lang {
	case LangTypeScript, LangVue:
		return p.typescript, true
	case LangTSX, LangJavaScript, LangJSX:
		return p.tsx, true
	}
	return nil, false
}

// parseTree parses source and hands the root node to fn. lineOffset is added
// to reported rows for sources cut out of a larger file.
func (p *TreeSitterParser) parseTree(source []byte, lang Language, fn func(root *tree_sitter.Node, source []byte, lineOffset int)) error {
	lineOffset := 0
	if lang == LangVue {
		source, lineOffset = vueScript(source)
	}
	tsLang, ok := p.grammar(lang)
	if !ok {
		return fmt.Errorf("unsupported language: %s", lang)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tsLang); err != nil {
		return fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("tree-sitter returned nil tree")
	}
	defer tree.Close()

	fn(tree.RootNode(), source, lineOffset)
	return nil
}

// Parse extracts top-level symbols and import specifiers.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte, lang Language) (*ParseResult, error) {
	result := &ParseResult{
		File: FileNode{Path: path, Language: lang, LOC: countLOC(source)},
	}
	err := p.parseTree(source, lang, func(root *tree_sitter.Node, src []byte, offset int) {
		ext := &tsExtractor{filePath: path, lineOffset: offset, jsx: lang != LangTypeScript && lang != LangVue}
		result.Symbols, result.Imports = ext.Extract(root, src)
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if lang == LangVue {
		result.Symbols = append(result.Symbols, SymbolNode{
			Name:      componentNameFromPath(path),
			Kind:      SymbolKindComponent,
			Exported:  true,
			FilePath:  path,
			StartLine: 1,
			EndLine:   max(result.File.LOC, 1),
		})
	}
	return result, nil
}

// SyntaxIssues reports tree-sitter ERROR and MISSING nodes as issues. The
// second result is false when language is not one this parser handles.
func (p *TreeSitterParser) SyntaxIssues(source []byte, language string) ([]validation.Issue, bool) {
	lang, ok := ParseLanguage(language)
	if !ok {
		return nil, false
	}
	var issues []validation.Issue
	err := p.parseTree(source, lang, func(root *tree_sitter.Node, src []byte, offset int) {
		if !root.HasError() {
			return
		}
		collectSyntaxIssues(root, src, offset, &issues)
	})
	if err != nil {
		return nil, false
	}
	return issues, true
}

func collectSyntaxIssues(node *tree_sitter.Node, source []byte, offset int, issues *[]validation.Issue) {
	if len(*issues) >= maxSyntaxIssues {
		return
	}
	line := int(node.StartPosition().Row) + 1 + offset
	switch {
	case node.IsMissing():
		*issues = append(*issues, validation.Issue{
			Severity: validation.SeverityError,
			Message:  fmt.Sprintf("missing %q", node.Kind()),
			Line:     line,
		})
		return
	case node.IsError():
		snippet := node.Utf8Text(source)
		if len(snippet) > 40 {
			snippet = snippet[:40] + "..."
		}
		*issues = append(*issues, validation.Issue{
			Severity: validation.SeverityError,
			Message:  fmt.Sprintf("syntax error near %q", snippet),
			Line:     line,
		})
		return
	}
	if !node.HasError() {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			collectSyntaxIssues(child, source, offset, issues)
		}
	}
}

var scriptBlock = regexp.MustCompile(`(?s)<script\b[^>]*>(.*?)</script>`)

// vueScript returns the first <script> block of a single-file component and
// the line it starts on. A component without a script parses as empty.
func vueScript(source []byte) ([]byte, int) {
	loc := scriptBlock.FindSubmatchIndex(source)
	if loc == nil {
		return nil, 0
	}
	return source[loc[2]:loc[3]], bytes.Count(source[:loc[2]], []byte{'\n'})
}

// countLOC counts newline bytes plus one for a non-empty final line.
func countLOC(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	return bytes.Count(source, []byte{'\n'}) + 1
}

// Close is a no-op; tree-sitter parsers are released after each call.
func (p *TreeSitterParser) Close() error {
	return nil
}
