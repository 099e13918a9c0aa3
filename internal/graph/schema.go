// Package graph indexes the files, symbols and imports of a generated
// project and checks that every import resolves.
package graph

import (
	"path"
	"strings"
)

// NodeKind classifies nodes in the project graph.
type NodeKind string

const (
	NodeKindFile   NodeKind = "file"
	NodeKindSymbol NodeKind = "symbol"
)

// SymbolKind classifies symbols declared by a source file.
type SymbolKind string

const (
	SymbolKindFunction  SymbolKind = "function"
	SymbolKindComponent SymbolKind = "component"
	SymbolKindClass     SymbolKind = "class"
	SymbolKindType      SymbolKind = "type"
	SymbolKindEnum      SymbolKind = "enum"
	SymbolKindInterface SymbolKind = "interface"
	SymbolKindVariable  SymbolKind = "variable"
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	EdgeKindDefines EdgeKind = "DEFINES"
	EdgeKindImports EdgeKind = "IMPORTS"
)

// Language identifies how a generated file is parsed.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangJSX        Language = "jsx"
	LangVue        Language = "vue"
)

// SupportedLanguages lists every language the parser understands.
var SupportedLanguages = []Language{LangTypeScript, LangTSX, LangJavaScript, LangJSX, LangVue}

// LanguageFor maps a file path to its language by extension. Declaration
// files and config files written in JS are included.
func LanguageFor(p string) (Language, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".js", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".jsx":
		return LangJSX, true
	case ".vue":
		return LangVue, true
	}
	return "", false
}

// ParseLanguage normalizes language names used by code validation
// ("ts", "typescript", "jsx", "component", ...).
func ParseLanguage(name string) (Language, bool) {
	switch strings.ToLower(name) {
	case "ts", "typescript":
		return LangTypeScript, true
	case "tsx", "component":
		return LangTSX, true
	case "js", "javascript":
		return LangJavaScript, true
	case "jsx":
		return LangJSX, true
	case "vue":
		return LangVue, true
	}
	return "", false
}

// FileNode is a source file of the generated project.
type FileNode struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	LOC      int      `json:"loc"`
}

// SymbolNode is a top-level declaration.
type SymbolNode struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	Exported  bool       `json:"exported"`
	FilePath  string     `json:"filePath"`
	StartLine int        `json:"startLine"`
	EndLine   int        `json:"endLine"`
}

// Edge is a relationship between two node IDs. File IDs are paths; symbol
// IDs are "path:name".
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
}

// ImportRef is a raw import specifier as written in a file.
type ImportRef struct {
	Specifier string `json:"specifier"`
	Line      int    `json:"line"`
}

// GraphStats summarizes a project graph.
type GraphStats struct {
	FileCount   int `json:"fileCount"`
	SymbolCount int `json:"symbolCount"`
	EdgeCount   int `json:"edgeCount"`
}

// DependencyChain is an ordered path of file IDs.
type DependencyChain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}

// ImpactResult lists the files affected by changing a set of files.
type ImpactResult struct {
	DirectlyAffected     []string `json:"directlyAffected"`
	TransitivelyAffected []string `json:"transitivelyAffected"`
	RiskScore            float64  `json:"riskScore"`
}

// symbolID produces the identifier of a symbol node.
func symbolID(filePath, name string) string {
	return filePath + ":" + name
}
