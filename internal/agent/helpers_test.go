package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/manifest"
)

// runTask executes op on a freshly initialized agent and requires success.
func runTask(t *testing.T, ag Agent, op string, params map[string]any) map[string]any {
	t.Helper()
	res := ag.ExecuteTask(context.Background(), Task{Name: op, Params: params})
	require.True(t, res.Success, "task %s failed: %s", op, res.Error)
	require.Empty(t, res.Error)
	return res.Result
}

// failTask executes op and requires failure.
func failTask(t *testing.T, ag Agent, op string, params map[string]any) TaskResult {
	t.Helper()
	res := ag.ExecuteTask(context.Background(), Task{Name: op, Params: params})
	require.False(t, res.Success, "task %s unexpectedly succeeded", op)
	require.Nil(t, res.Result)
	return res
}

func generatedFiles(t *testing.T, result map[string]any, key string) []string {
	t.Helper()
	files, ok := result[key].([]string)
	require.True(t, ok, "%s is %T", key, result[key])
	return files
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func readManifest(t *testing.T, dir string) manifest.Manifest {
	t.Helper()
	m, err := manifest.Decode([]byte(readFile(t, dir, "package.json")))
	require.NoError(t, err)
	return m
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// dirEntries lists every regular file under dir as slash paths.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return out
}

func spawn[T Agent](ag T) T {
	ag.Initialize()
	return ag
}
