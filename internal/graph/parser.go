package graph

import "context"

// ParseResult holds what one file declares and imports.
type ParseResult struct {
	File    FileNode     `json:"file"`
	Symbols []SymbolNode `json:"symbols"`
	Imports []ImportRef  `json:"imports"`
}

// Parser extracts structure from generated source files.
type Parser interface {
	Parse(ctx context.Context, path string, source []byte, lang Language) (*ParseResult, error)
	Close() error
}
