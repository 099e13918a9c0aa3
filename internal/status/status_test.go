package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/errs"
)

func touch(t *testing.T, dir string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "package.json", "src/App.tsx", "src/extra.ts", "dist/index.js", "npm-debug.log")

	r, err := Check(dir, []string{"package.json", "src/App.tsx", "src/main.tsx", "./index.html"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Present)
	assert.Equal(t, 2, r.Missing)
	assert.False(t, r.Complete())
	assert.Equal(t, 50, r.Percent())
	assert.Equal(t, []string{"src/main.tsx", "index.html"}, r.MissingPaths())
	assert.Equal(t, []string{"src/extra.ts"}, r.Extra)
	assert.Equal(t, "2/4 files present", r.Summary())
}

func TestCheck_MissingRoot(t *testing.T) {
	r, err := Check(filepath.Join(t.TempDir(), "absent"), []string{"a.ts", "b.ts"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Missing)
	assert.Empty(t, r.Extra)
}

func TestCheck_CustomIgnore(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.ts", "notes/todo.md", "dist/x.js")

	r, err := Check(dir, []string{"a.ts"}, Options{Ignore: []string{"notes/**"}})
	require.NoError(t, err)
	assert.True(t, r.Complete())
	assert.Equal(t, []string{"dist/x.js"}, r.Extra)
}

func TestCheck_RejectsEscapingPath(t *testing.T) {
	_, err := Check(t.TempDir(), []string{"../outside.ts"}, Options{})
	require.Error(t, err)
	assert.Equal(t, errs.KindFileSystem, errs.KindOf(err))
}

func TestCheck_InvalidIgnoreGlob(t *testing.T) {
	_, err := Check(t.TempDir(), nil, Options{Ignore: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestCheck_EmptyPlan(t *testing.T) {
	r, err := Check(t.TempDir(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 100, r.Percent())
	assert.True(t, r.Complete())
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.ts", "z.ts")

	r, err := Check(dir, []string{"a.ts", "b.ts"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "1/2 files present (50%)\n  [ ] b.ts\n  [x] a.ts\n  [+] z.ts\n", Format(r))
}
