package graph

import (
	"context"
	"io"
)

// Store holds the file/symbol/import graph of a generated project.
// Implementations: MemStore (default), KuzuStore (cgo builds).
type Store interface {
	io.Closer

	// InitSchema is called once before any data is inserted.
	InitSchema(ctx context.Context) error

	AddFile(ctx context.Context, node FileNode) error
	AddSymbol(ctx context.Context, node SymbolNode) error
	AddEdge(ctx context.Context, edge Edge) error

	GetFile(ctx context.Context, path string) (*FileNode, error)
	GetSymbol(ctx context.Context, filePath, name string) (*SymbolNode, error)
	QuerySymbols(ctx context.Context, query string, limit int) ([]SymbolNode, error)

	// Files and Edges return the whole graph sorted by path / source.
	Files(ctx context.Context) ([]FileNode, error)
	Edges(ctx context.Context) ([]Edge, error)

	GetDependencies(ctx context.Context, nodeID string, direction Direction, maxDepth int) ([]DependencyChain, error)
	AssessImpact(ctx context.Context, changedFiles []string) (*ImpactResult, error)

	Stats(ctx context.Context) (*GraphStats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"   // files that import this one
	DirectionDownstream Direction = "downstream" // files this one imports
)

// Store backends accepted by Open.
const (
	BackendMemory = "memory"
	BackendKuzu   = "kuzu"
)
