//go:build cgo

package graph

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements Store on an embedded KuzuDB. It requires cgo because
// the go-kuzu driver wraps the KuzuDB C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory database.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore persisted at dbPath. KuzuDB creates
// the leaf directory itself; its parent is created here.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(dbPath string) (*KuzuStore, error) {
	db, err := kuzu.OpenDatabase(dbPath, kuzu.DefaultSystemConfig())
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database %s: %w", dbPath, err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements run in order: node tables precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS File(
		path STRING,
		language STRING,
		loc INT64,
		PRIMARY KEY(path)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Symbol(
		id STRING,
		name STRING,
		kind STRING,
		exported BOOLEAN,
		file_path STRING,
		start_line INT64,
		end_line INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEFINES(FROM File TO Symbol)`,
	`CREATE REL TABLE IF NOT EXISTS IMPORTS(FROM File TO File)`,
}

// relTables are the relationship tables counted by Stats.
var relTables = []EdgeKind{EdgeKindDefines, EdgeKindImports}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// AddFile upserts a File node.
func (s *KuzuStore) AddFile(_ context.Context, node FileNode) error {
	return s.exec(
		"MERGE (f:File {path: $path}) SET f.language = $lang, f.loc = $loc",
		map[string]any{
			"path": node.Path,
			"lang": string(node.Language),
			"loc":  int64(node.LOC),
		},
	)
}

// AddSymbol upserts a Symbol node.
func (s *KuzuStore) AddSymbol(_ context.Context, node SymbolNode) error {
	return s.exec(
		`MERGE (s:Symbol {id: $id})
		 SET s.name = $name, s.kind = $kind, s.exported = $exported,
		     s.file_path = $fp, s.start_line = $sl, s.end_line = $el`,
		map[string]any{
			"id":       symbolID(node.FilePath, node.Name),
			"name":     node.Name,
			"kind":     string(node.Kind),
			"exported": node.Exported,
			"fp":       node.FilePath,
			"sl":       int64(node.StartLine),
			"el":       int64(node.EndLine),
		},
	)
}

// AddEdge links two existing nodes. Both endpoints must already be stored.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	cypher, err := edgeCypher(edge.Kind)
	if err != nil {
		return err
	}
	return s.exec(cypher, map[string]any{
		"src": edge.SourceID,
		"dst": edge.TargetID,
	})
}

func edgeCypher(kind EdgeKind) (string, error) {
	switch kind {
	case EdgeKindDefines:
		return `MATCH (a:File {path: $src}), (b:Symbol {id: $dst})
				MERGE (a)-[:DEFINES]->(b)`, nil
	case EdgeKindImports:
		return `MATCH (a:File {path: $src}), (b:File {path: $dst})
				MERGE (a)-[:IMPORTS]->(b)`, nil
	default:
		return "", fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
}

// GetFile returns the File node at path, or nil if not found.
func (s *KuzuStore) GetFile(_ context.Context, path string) (*FileNode, error) {
	rows, err := s.query(
		"MATCH (f:File {path: $path}) RETURN f.path, f.language, f.loc",
		map[string]any{"path": path},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToFile(rows[0]), nil
}

// GetSymbol returns the named symbol of filePath, or nil if not found.
func (s *KuzuStore) GetSymbol(_ context.Context, filePath, name string) (*SymbolNode, error) {
	rows, err := s.query(
		`MATCH (s:Symbol {id: $id})
		 RETURN s.name, s.kind, s.exported, s.file_path, s.start_line, s.end_line`,
		map[string]any{"id": symbolID(filePath, name)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToSymbol(rows[0]), nil
}

// QuerySymbols returns symbols whose name contains query (case-insensitive).
func (s *KuzuStore) QuerySymbols(_ context.Context, query string, limit int) ([]SymbolNode, error) {
	rows, err := s.query(
		`MATCH (s:Symbol) WHERE lower(s.name) CONTAINS $q
		 RETURN s.name, s.kind, s.exported, s.file_path, s.start_line, s.end_line
		 ORDER BY s.file_path, s.name`,
		map[string]any{"q": strings.ToLower(query)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToSymbol(r))
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Files returns every File node sorted by path.
func (s *KuzuStore) Files(_ context.Context) ([]FileNode, error) {
	rows, err := s.query("MATCH (f:File) RETURN f.path, f.language, f.loc ORDER BY f.path", nil)
	if err != nil {
		return nil, err
	}
	out := make([]FileNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToFile(r))
	}
	return out, nil
}

// Edges returns every DEFINES and IMPORTS edge, sorted.
func (s *KuzuStore) Edges(_ context.Context) ([]Edge, error) {
	queries := []struct {
		cypher string
		kind   EdgeKind
	}{
		{"MATCH (a:File)-[:DEFINES]->(b:Symbol) RETURN a.path, b.id", EdgeKindDefines},
		{"MATCH (a:File)-[:IMPORTS]->(b:File) RETURN a.path, b.path", EdgeKindImports},
	}

	var edges []Edge
	for _, q := range queries {
		rows, err := s.query(q.cypher, nil)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			edges = append(edges, Edge{
				SourceID: toString(r[0]),
				TargetID: toString(r[1]),
				Kind:     q.kind,
			})
		}
	}
	sortEdges(edges)
	return edges, nil
}

// GetDependencies walks IMPORTS edges breadth-first from nodeID.
func (s *KuzuStore) GetDependencies(_ context.Context, nodeID string, dir Direction, maxDepth int) ([]DependencyChain, error) {
	var walkErr error
	chains := walkDependencies(nodeID, maxDepth, func(id string) []string {
		if walkErr != nil {
			return nil
		}
		nb, err := s.fileNeighbors(id, dir)
		if err != nil {
			walkErr = err
		}
		return nb
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return chains, nil
}

// fileNeighbors returns the files one IMPORTS hop away, sorted.
func (s *KuzuStore) fileNeighbors(path string, dir Direction) ([]string, error) {
	var cypher string
	switch dir {
	case DirectionDownstream:
		cypher = "MATCH (a:File {path: $path})-[:IMPORTS]->(b:File) RETURN b.path ORDER BY b.path"
	case DirectionUpstream:
		cypher = "MATCH (a:File)-[:IMPORTS]->(b:File {path: $path}) RETURN a.path ORDER BY a.path"
	default:
		return nil, fmt.Errorf("kuzu: unknown direction: %s", dir)
	}
	rows, err := s.query(cypher, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

// AssessImpact computes the files affected by changing changedFiles.
func (s *KuzuStore) AssessImpact(_ context.Context, changedFiles []string) (*ImpactResult, error) {
	totalFiles, err := s.countTable("File")
	if err != nil {
		return nil, err
	}
	var walkErr error
	result := assessImpact(changedFiles, totalFiles, func(id string) []string {
		if walkErr != nil {
			return nil
		}
		nb, err := s.fileNeighbors(id, DirectionUpstream)
		if err != nil {
			walkErr = err
		}
		return nb
	})
	if walkErr != nil {
		return nil, walkErr
	}
	result.RiskScore = math.Min(1.0, result.RiskScore)
	return result, nil
}

// Stats returns node and edge counts.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	files, err := s.countTable("File")
	if err != nil {
		return nil, err
	}
	symbols, err := s.countTable("Symbol")
	if err != nil {
		return nil, err
	}
	edges := 0
	for _, t := range relTables {
		rows, err := s.query(fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t), nil)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			edges += toInt(rows[0][0])
		}
	}
	return &GraphStats{FileCount: files, SymbolCount: symbols, EdgeCount: edges}, nil
}

// exec runs a parameterized statement that produces no rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a statement and collects every row in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable counts rows of a fixed node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	rows, err := s.query(fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table), nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

func rowToFile(r []any) *FileNode {
	return &FileNode{
		Path:     toString(r[0]),
		Language: Language(toString(r[1])),
		LOC:      toInt(r[2]),
	}
}

// rowToSymbol reads name, kind, exported, file_path, start_line, end_line.
func rowToSymbol(r []any) *SymbolNode {
	return &SymbolNode{
		Name:      toString(r[0]),
		Kind:      SymbolKind(toString(r[1])),
		Exported:  toBool(r[2]),
		FilePath:  toString(r[3]),
		StartLine: toInt(r[4]),
		EndLine:   toInt(r[5]),
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}
