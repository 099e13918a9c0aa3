//go:build cgo

package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKuzuTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func TestKuzuStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return newKuzuTestStore(t)
	})
}

func TestKuzuStore_InitSchemaIdempotent(t *testing.T) {
	s := newKuzuTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestKuzuStore_AddFileUpserts(t *testing.T) {
	s := newKuzuTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AddFile(ctx, FileNode{Path: "src/main.ts", Language: LangTypeScript, LOC: 1}))
	require.NoError(t, s.AddFile(ctx, FileNode{Path: "src/main.ts", Language: LangTypeScript, LOC: 7}))

	got, err := s.GetFile(ctx, "src/main.ts")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.LOC)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
}

func TestKuzuStore_UnsupportedEdgeKind(t *testing.T) {
	s := newKuzuTestStore(t)
	err := s.AddEdge(context.Background(), Edge{SourceID: "a", TargetID: "b", Kind: "CALLS"})
	require.Error(t, err)
}

func TestKuzuStore_FileStorePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "graph.kuzu")
	ctx := context.Background()

	s, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.InitSchema(ctx))
	require.NoError(t, s.AddFile(ctx, FileNode{Path: "src/App.vue", Language: LangVue, LOC: 12}))
	require.NoError(t, s.Close())

	reopened, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.GetFile(ctx, "src/App.vue")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, LangVue, got.Language)
}
