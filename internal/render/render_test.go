package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_EmbeddedNames(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"common/gitignore",
		"nextjs/component",
		"nextjs/layout",
		"nextjs/next.config",
		"nextjs/page",
		"react/component",
		"react/vite.config",
		"ui/component",
		"vue/component",
		"vue/vite.config",
	}, e.Names())
	assert.True(t, e.Has("vue/component"))
	assert.False(t, e.Has("vue/missing"))
}

func TestEngine_RenderComponent(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	out, err := e.Render("vue/component", Context("vue", "component", map[string]any{"component_name": "UserCard"}))
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="user-card">`)
	assert.Contains(t, out, "defineOptions({ name: 'UserCard' })")
	assert.Contains(t, out, GeneratedBy)
}

func TestEngine_RenderUsesFrameworkDefaults(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	out, err := e.Render("vue/vite.config", Context("vue", "vite.config", nil))
	require.NoError(t, err)
	assert.Contains(t, out, "port: 5173")

	out, err = e.Render("react/vite.config", Context("react", "vite.config", map[string]any{"port": 4000}))
	require.NoError(t, err)
	assert.Contains(t, out, "port: 4000")
}

func TestEngine_RenderGitignorePerFramework(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	next, err := e.Render("common/gitignore", Context("nextjs", "gitignore", nil))
	require.NoError(t, err)
	assert.Contains(t, next, ".next/")

	vue, err := e.Render("common/gitignore", Context("vue", "gitignore", nil))
	require.NoError(t, err)
	assert.NotContains(t, vue, ".next/")
	assert.Contains(t, vue, "node_modules/")
}

func TestEngine_MissingKeyFails(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, err = e.Render("nextjs/layout", Context("nextjs", "layout", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_name")
}

func TestEngine_UnknownTemplate(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	_, err = e.Render("svelte/component", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEngine_DirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "react"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "react", "component.tmpl"), []byte("custom {{.component_name}}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "svelte"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svelte", "component.tmpl"), []byte("<h1>{{pascal .component_name}}</h1>"), 0o644))

	e, err := New(WithDir(dir))
	require.NoError(t, err)

	out, err := e.Render("react/component", map[string]any{"component_name": "Card"})
	require.NoError(t, err)
	assert.Equal(t, "custom Card", out)

	out, err = e.Render("svelte/component", map[string]any{"component_name": "user-card"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>UserCard</h1>", out)
}

func TestEngine_BadOverrideFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.tmpl"), []byte("{{.x"), 0o644))
	_, err := New(WithDir(dir))
	require.Error(t, err)
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, "my-awesome-app", Kebab("My Awesome_App"))
	assert.Equal(t, "my_awesome_app", Snake("my-awesome app"))
	assert.Equal(t, "MyAwesomeApp", Pascal("my-awesome-app"))
	assert.Equal(t, "myAwesomeApp", Camel("my awesome app"))
	assert.Equal(t, "", Camel("--"))
}

func TestDefaultScripts(t *testing.T) {
	assert.Equal(t, "vue-tsc && vite build", DefaultScripts("vue")["build"])
	assert.Equal(t, "next dev", DefaultScripts("nextjs")["dev"])
	assert.Equal(t, "vite", DefaultScripts("React")["dev"])
	assert.Empty(t, DefaultScripts("svelte"))
}

func TestDevPort(t *testing.T) {
	assert.Equal(t, 3000, DevPort("nextjs"))
	assert.Equal(t, 3000, DevPort("react"))
	assert.Equal(t, 5173, DevPort("vue"))
}

func TestContext_BaseWins(t *testing.T) {
	ctx := Context("nextjs", "page", map[string]any{"app_router": false, "page_name": "About"})
	assert.Equal(t, false, ctx["app_router"])
	assert.Equal(t, "14.0.0", ctx["next_version"])
	assert.Equal(t, "page", ctx["template_type"])
}
