package graph

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	files   map[string]FileNode
	symbols map[string]SymbolNode // key: symbolID
	edges   []Edge
	seen    map[Edge]bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		files:   make(map[string]FileNode),
		symbols: make(map[string]SymbolNode),
		seen:    make(map[Edge]bool),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFile stores a file node keyed by its path.
func (m *MemStore) AddFile(_ context.Context, node FileNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[node.Path] = node
	return nil
}

// AddSymbol stores a symbol node keyed by "filePath:name".
func (m *MemStore) AddSymbol(_ context.Context, node SymbolNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols[symbolID(node.FilePath, node.Name)] = node
	return nil
}

// AddEdge records an edge. Duplicate edges are stored once.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[edge] {
		return nil
	}
	m.seen[edge] = true
	m.edges = append(m.edges, edge)
	return nil
}

// GetFile returns the file node for path, or nil if not found.
func (m *MemStore) GetFile(_ context.Context, path string) (*FileNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// GetSymbol returns the named symbol of filePath, or nil if not found.
func (m *MemStore) GetSymbol(_ context.Context, filePath, name string) (*SymbolNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.symbols[symbolID(filePath, name)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// QuerySymbols returns symbols whose name contains query (case-insensitive),
// ordered by file then name, up to limit results. A limit <= 0 returns all.
func (m *MemStore) QuerySymbols(_ context.Context, query string, limit int) ([]SymbolNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []SymbolNode
	for _, sym := range m.symbols {
		if strings.Contains(strings.ToLower(sym.Name), lowerQuery) {
			results = append(results, sym)
		}
	}
	sortSymbols(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Files returns every file node sorted by path.
func (m *MemStore) Files(_ context.Context) ([]FileNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FileNode, 0, len(m.files))
	for _, f := range m.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Edges returns a sorted copy of every edge.
func (m *MemStore) Edges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	sortEdges(out)
	return out, nil
}

// GetDependencies walks IMPORTS edges breadth-first from nodeID up to
// maxDepth hops and returns one DependencyChain per reachable file.
func (m *MemStore) GetDependencies(_ context.Context, nodeID string, direction Direction, maxDepth int) ([]DependencyChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return walkDependencies(nodeID, maxDepth, func(id string) []string {
		return m.neighbors(id, direction)
	}), nil
}

// neighbors returns file IDs one IMPORTS hop away from id, sorted.
func (m *MemStore) neighbors(id string, direction Direction) []string {
	var result []string
	for _, e := range m.edges {
		if e.Kind != EdgeKindImports {
			continue
		}
		switch direction {
		case DirectionDownstream:
			if e.SourceID == id {
				result = append(result, e.TargetID)
			}
		case DirectionUpstream:
			if e.TargetID == id {
				result = append(result, e.SourceID)
			}
		}
	}
	sort.Strings(result)
	return result
}

// AssessImpact computes the files affected by changing changedFiles: the
// direct importers and everything that reaches them through imports.
func (m *MemStore) AssessImpact(_ context.Context, changedFiles []string) (*ImpactResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return assessImpact(changedFiles, len(m.files), func(id string) []string {
		return m.neighbors(id, DirectionUpstream)
	}), nil
}

// Stats returns node and edge counts.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		FileCount:   len(m.files),
		SymbolCount: len(m.symbols),
		EdgeCount:   len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// walkDependencies is the breadth-first traversal shared by the stores.
func walkDependencies(nodeID string, maxDepth int, next func(string) []string) []DependencyChain {
	type bfsEntry struct {
		id   string
		path []string
	}

	visited := map[string]bool{nodeID: true}
	queue := []bfsEntry{{id: nodeID, path: []string{nodeID}}}
	var chains []DependencyChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range next(entry.id) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, DependencyChain{Nodes: newPath, Depth: len(newPath) - 1})
				nextQueue = append(nextQueue, bfsEntry{id: nb, path: newPath})
			}
		}
		queue = nextQueue
	}
	return chains
}

// assessImpact expands importers of the changed set until no new files
// appear. importers returns the files importing a given file.
func assessImpact(changedFiles []string, totalFiles int, importers func(string) []string) *ImpactResult {
	changed := make(map[string]bool, len(changedFiles))
	for _, f := range changedFiles {
		changed[f] = true
	}

	direct := make(map[string]bool)
	for _, f := range changedFiles {
		for _, imp := range importers(f) {
			if !changed[imp] {
				direct[imp] = true
			}
		}
	}

	all := make(map[string]bool, len(direct))
	frontier := make([]string, 0, len(direct))
	for k := range direct {
		all[k] = true
		frontier = append(frontier, k)
	}
	for len(frontier) > 0 {
		var nextFrontier []string
		for _, f := range frontier {
			for _, imp := range importers(f) {
				if changed[imp] || all[imp] {
					continue
				}
				all[imp] = true
				nextFrontier = append(nextFrontier, imp)
			}
		}
		frontier = nextFrontier
	}

	result := &ImpactResult{
		DirectlyAffected:     setToSlice(direct),
		TransitivelyAffected: setToSlice(all),
	}
	if totalFiles > 0 {
		result.RiskScore = float64(len(all)) / float64(totalFiles)
	}
	return result
}

// setToSlice converts a set to a sorted slice.
func setToSlice(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortSymbols(s []SymbolNode) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].FilePath != s[j].FilePath {
			return s[i].FilePath < s[j].FilePath
		}
		return s[i].Name < s[j].Name
	})
}

func sortEdges(e []Edge) {
	sort.Slice(e, func(i, j int) bool {
		if e[i].SourceID != e[j].SourceID {
			return e[i].SourceID < e[j].SourceID
		}
		if e[i].Kind != e[j].Kind {
			return e[i].Kind < e[j].Kind
		}
		return e[i].TargetID < e[j].TargetID
	})
}
