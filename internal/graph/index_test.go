package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/scaffold"
)

func writeProject(t *testing.T, files map[string]string) *scaffold.Repo {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	repo, err := scaffold.NewRepo(dir)
	require.NoError(t, err)
	return repo
}

func TestIndex_CoherentProject(t *testing.T) {
	repo := writeProject(t, map[string]string{
		"package.json":                 `{"name":"demo","version":"0.0.0","dependencies":{"react":"^18.2.0"}}`,
		"src/main.tsx":                 "import App from './App'\nimport './index.css'\n",
		"src/App.tsx":                  "import { Button } from '@/components/ui/Button'\nexport default function App() { return <Button /> }\n",
		"src/components/ui/Button.tsx": "import React from 'react'\nexport const Button = () => <button />\n",
		"src/index.css":                "body {}\n",
	})
	store := NewMemStore()
	report, err := Index(context.Background(), repo, store, NewTreeSitterParser(), IndexOptions{Aliases: DefaultAliases("react")})
	require.NoError(t, err)

	assert.True(t, report.Coherent(), report.Problems())
	assert.Equal(t, 3, report.Files)
	assert.Empty(t, report.ParseErrors)

	chains, err := store.GetDependencies(context.Background(), "src/main.tsx", DirectionDownstream, 5)
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, []string{"src/main.tsx", "src/App.tsx", "src/components/ui/Button.tsx"}, chains[1].Nodes)

	btn, err := store.GetSymbol(context.Background(), "src/components/ui/Button.tsx", "Button")
	require.NoError(t, err)
	require.NotNil(t, btn)
	assert.Equal(t, SymbolKindComponent, btn.Kind)
}

func TestIndex_ReportsDanglingAndUndeclared(t *testing.T) {
	repo := writeProject(t, map[string]string{
		"package.json":   `{"name":"demo","version":"0.0.0","dependencies":{"vue":"^3.4.0"},"devDependencies":{"vite":"^5.0.0"}}`,
		"vite.config.ts": "import { defineConfig } from 'vite'\nimport { fileURLToPath } from 'node:url'\nexport default defineConfig({})\n",
		"src/main.ts":    "import { createApp } from 'vue'\nimport { createPinia } from 'pinia'\nimport App from './App.vue'\nimport router from './router'\n",
		"src/App.vue":    "<template><div/></template>\n<script setup lang=\"ts\">\nimport Header from './components/Header.vue'\n</script>\n",
	})
	report, err := Index(context.Background(), repo, NewMemStore(), NewTreeSitterParser(), IndexOptions{Aliases: DefaultAliases("vue")})
	require.NoError(t, err)

	assert.False(t, report.Coherent())
	assert.Equal(t, []DanglingImport{
		{File: "src/App.vue", Specifier: "./components/Header.vue", Line: 3},
		{File: "src/main.ts", Specifier: "./router", Line: 4},
	}, report.Dangling)
	assert.Equal(t, []UndeclaredPackage{{File: "src/main.ts", Package: "pinia"}}, report.Undeclared)
	assert.Len(t, report.Problems(), 3)
}

func TestIndex_WithoutManifestSkipsPackageCheck(t *testing.T) {
	repo := writeProject(t, map[string]string{
		"src/a.ts": "import x from 'left-pad'\nexport const a = x\n",
	})
	report, err := Index(context.Background(), repo, NewMemStore(), NewTreeSitterParser(), IndexOptions{})
	require.NoError(t, err)
	assert.True(t, report.Coherent())
	assert.Equal(t, 1, report.Files)
}

func TestIndex_IncludeGlob(t *testing.T) {
	repo := writeProject(t, map[string]string{
		"src/a.ts":     "export const a = 1\n",
		"scripts/b.ts": "export const b = 2\n",
	})
	report, err := Index(context.Background(), repo, NewMemStore(), NewTreeSitterParser(), IndexOptions{Include: "src/**"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 1, report.Symbols)
}

func TestIndex_Cancelled(t *testing.T) {
	repo := writeProject(t, map[string]string{"src/a.ts": "export const a = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Index(ctx, repo, NewMemStore(), NewTreeSitterParser(), IndexOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open("", "")
	require.NoError(t, err)
	_, ok := s.(*MemStore)
	assert.True(t, ok)

	_, err = Open("neo4j", "")
	require.Error(t, err)
}

func TestProjectAliases(t *testing.T) {
	repo := writeProject(t, map[string]string{
		"tsconfig.json": `{"compilerOptions":{"baseUrl":".","paths":{"~/*":["./lib/*"]}}}`,
	})

	got := ProjectAliases(repo, "vue")
	assert.Equal(t, map[string]string{"@/": "src/", "~/": "lib/"}, got)

	bare := writeProject(t, map[string]string{"index.html": "<div></div>"})
	assert.Equal(t, map[string]string{"@/": ""}, ProjectAliases(bare, "nextjs"))
	assert.Empty(t, ProjectAliases(bare, "ui"))
}
