package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory returns a fresh Store with its schema initialized.
type storeFactory func(t *testing.T) Store

// seedChain stores app -> page -> button -> utils as IMPORTS edges.
func seedChain(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []string{"src/App.tsx", "src/pages/Home.tsx", "src/components/Button.tsx", "src/utils.ts"} {
		lang, _ := LanguageFor(p)
		require.NoError(t, s.AddFile(ctx, FileNode{Path: p, Language: lang, LOC: 10}))
	}
	for _, e := range [][2]string{
		{"src/App.tsx", "src/pages/Home.tsx"},
		{"src/pages/Home.tsx", "src/components/Button.tsx"},
		{"src/components/Button.tsx", "src/utils.ts"},
	} {
		require.NoError(t, s.AddEdge(ctx, Edge{SourceID: e[0], TargetID: e[1], Kind: EdgeKindImports}))
	}
}

func runStoreContract(t *testing.T, newStore storeFactory) {
	t.Run("FileRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		file := FileNode{Path: "src/App.tsx", Language: LangTSX, LOC: 42}
		require.NoError(t, s.AddFile(ctx, file))

		got, err := s.GetFile(ctx, file.Path)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, file, *got)

		missing, err := s.GetFile(ctx, "nope.ts")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("SymbolRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.AddFile(ctx, FileNode{Path: "src/Button.tsx", Language: LangTSX}))
		sym := SymbolNode{Name: "Button", Kind: SymbolKindComponent, Exported: true, FilePath: "src/Button.tsx", StartLine: 3, EndLine: 9}
		require.NoError(t, s.AddSymbol(ctx, sym))

		got, err := s.GetSymbol(ctx, sym.FilePath, sym.Name)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, sym, *got)

		missing, err := s.GetSymbol(ctx, sym.FilePath, "Other")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("QuerySymbols", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.AddFile(ctx, FileNode{Path: "a.ts", Language: LangTypeScript}))
		for _, name := range []string{"useAuth", "AuthProvider", "formatDate"} {
			require.NoError(t, s.AddSymbol(ctx, SymbolNode{Name: name, Kind: SymbolKindFunction, FilePath: "a.ts"}))
		}

		got, err := s.QuerySymbols(ctx, "auth", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "AuthProvider", got[0].Name)
		assert.Equal(t, "useAuth", got[1].Name)

		limited, err := s.QuerySymbols(ctx, "auth", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("FilesAndEdgesSorted", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)
		ctx := context.Background()

		files, err := s.Files(ctx)
		require.NoError(t, err)
		require.Len(t, files, 4)
		assert.Equal(t, "src/App.tsx", files[0].Path)
		assert.Equal(t, "src/utils.ts", files[3].Path)

		edges, err := s.Edges(ctx)
		require.NoError(t, err)
		require.Len(t, edges, 3)
		assert.Equal(t, "src/App.tsx", edges[0].SourceID)
		assert.Equal(t, "src/pages/Home.tsx", edges[2].SourceID)
	})

	t.Run("DuplicateEdgeStoredOnce", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)
		ctx := context.Background()
		require.NoError(t, s.AddEdge(ctx, Edge{SourceID: "src/App.tsx", TargetID: "src/pages/Home.tsx", Kind: EdgeKindImports}))

		stats, err := s.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.EdgeCount)
	})

	t.Run("DependenciesDownstream", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)

		chains, err := s.GetDependencies(context.Background(), "src/App.tsx", DirectionDownstream, 10)
		require.NoError(t, err)
		require.Len(t, chains, 3)
		assert.Equal(t, []string{"src/App.tsx", "src/pages/Home.tsx"}, chains[0].Nodes)
		assert.Equal(t, 3, chains[2].Depth)

		shallow, err := s.GetDependencies(context.Background(), "src/App.tsx", DirectionDownstream, 1)
		require.NoError(t, err)
		assert.Len(t, shallow, 1)
	})

	t.Run("DependenciesUpstream", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)

		chains, err := s.GetDependencies(context.Background(), "src/utils.ts", DirectionUpstream, 10)
		require.NoError(t, err)
		require.Len(t, chains, 3)
		assert.Equal(t, []string{"src/utils.ts", "src/components/Button.tsx"}, chains[0].Nodes)
	})

	t.Run("AssessImpact", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)

		impact, err := s.AssessImpact(context.Background(), []string{"src/components/Button.tsx"})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/pages/Home.tsx"}, impact.DirectlyAffected)
		assert.Equal(t, []string{"src/App.tsx", "src/pages/Home.tsx"}, impact.TransitivelyAffected)
		assert.InDelta(t, 0.5, impact.RiskScore, 1e-9)

		none, err := s.AssessImpact(context.Background(), []string{"src/App.tsx"})
		require.NoError(t, err)
		assert.Empty(t, none.DirectlyAffected)
		assert.Zero(t, none.RiskScore)
	})

	t.Run("Stats", func(t *testing.T) {
		s := newStore(t)
		seedChain(t, s)
		ctx := context.Background()
		require.NoError(t, s.AddSymbol(ctx, SymbolNode{Name: "App", Kind: SymbolKindComponent, FilePath: "src/App.tsx"}))
		require.NoError(t, s.AddEdge(ctx, Edge{SourceID: "src/App.tsx", TargetID: "src/App.tsx:App", Kind: EdgeKindDefines}))

		stats, err := s.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, GraphStats{FileCount: 4, SymbolCount: 1, EdgeCount: 4}, *stats)
	})
}

func TestMemStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s := NewMemStore()
		require.NoError(t, s.InitSchema(context.Background()))
		return s
	})
}
