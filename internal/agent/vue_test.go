package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/manifest"
)

func TestVueAgent_Initialize(t *testing.T) {
	a := spawn(NewVueAgent())

	assert.Equal(t, "3.4.0", a.GetMetadata("vue_version", nil))
	assert.Equal(t, "5.0.0", a.GetMetadata("vite_version", nil))
	assert.Equal(t, []string{
		"generate_vue_app", "generate_component", "generate_composable", "setup_router",
		"setup_state_management", "integrate_ui_library", "configure_pwa", "setup_testing",
	}, a.Operations())
}

func TestVueAgent_GenerateApp_Defaults(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	out := runTask(t, a, "generate_vue_app", map[string]any{
		"framework":    "vue",
		"output_path":  dir,
		"project_name": "Recipe Box",
	})

	assert.Equal(t, []string{
		"package.json",
		"vite.config.ts",
		"tsconfig.json",
		"src/env.d.ts",
		"tailwind.config.js",
		"postcss.config.js",
		"index.html",
		"src/main.ts",
		"src/App.vue",
		"src/components/layout/Header.vue",
		"src/components/ui/Button.vue",
		"src/router/index.ts",
		"src/views/HomeView.vue",
		"src/views/AboutView.vue",
		"src/stores/counter.ts",
		"src/__tests__/App.spec.ts",
		"src/style.css",
		".eslintrc.cjs",
		".prettierrc",
		".gitignore",
	}, generatedFiles(t, out, "generated_files"))
	assert.Empty(t, out["warnings"])

	main := readFile(t, dir, "src/main.ts")
	assert.Contains(t, main, "app.use(createPinia())")
	assert.Contains(t, main, "app.use(router)")
	assert.Contains(t, readFile(t, dir, "index.html"), `<div id="app"></div>`)
	assert.Contains(t, readFile(t, dir, "vite.config.ts"), "port: 5173")
	assert.Contains(t, readFile(t, dir, "src/__tests__/App.spec.ts"), "'Recipe Box'")

	m := readManifest(t, dir)
	assert.Equal(t, "recipe-box", m["name"])
	deps := manifest.StringMap(m["dependencies"])
	assert.Equal(t, "^3.4.0", deps["vue"])
	assert.Contains(t, deps, "pinia")
	assert.Contains(t, deps, "vue-router")

	steps, ok := out["next_steps"].([]string)
	require.True(t, ok)
	assert.Contains(t, steps, "Open http://localhost:5173")
}

func TestVueAgent_GenerateApp_Vue2JavaScript(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	out := runTask(t, a, "generate_vue_app", map[string]any{
		"framework":        "vue",
		"output_path":      dir,
		"vue_version":      "2",
		"typescript":       false,
		"router":           false,
		"testing":          false,
		"state_management": "vuex",
		"tailwind_css":     false,
		"eslint":           false,
		"prettier":         false,
	})

	assert.Equal(t, []string{
		"package.json",
		"vite.config.js",
		"index.html",
		"src/main.js",
		"src/App.vue",
		"src/components/layout/Header.vue",
		"src/components/ui/Button.vue",
		"src/store/index.js",
		"src/style.css",
		".gitignore",
	}, generatedFiles(t, out, "generated_files"))

	main := readFile(t, dir, "src/main.js")
	assert.Contains(t, main, "new Vue({")
	assert.NotContains(t, main, "createApp")
	assert.Contains(t, readFile(t, dir, "src/App.vue"), "<Button>Get started</Button>")
	assert.Equal(t, "^2.7.0", manifest.StringMap(readManifest(t, dir)["dependencies"])["vue"])
}

func TestVueAgent_GenerateApp_BadVersion(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	res := failTask(t, a, "generate_vue_app", map[string]any{
		"framework":   "vue",
		"output_path": dir,
		"vue_version": "4",
	})

	assert.Equal(t, errs.KindConfiguration, res.Kind)
	assert.Contains(t, res.Error, "vue_version")
	assert.Empty(t, dirEntries(t, dir))
}

func TestVueAgent_GenerateComponentAndComposable(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	comp := runTask(t, a, "generate_component", map[string]any{"output_path": dir, "component_name": "TodoList"})
	composable := runTask(t, a, "generate_composable", map[string]any{"output_path": dir, "composable_name": "useTimer"})

	assert.Equal(t, "src/components/TodoList.vue", comp["file"])
	assert.Equal(t, "src/composables/useTimer.ts", composable["file"])
	assert.Contains(t, readFile(t, dir, "src/components/TodoList.vue"), "<template>")
	assert.Contains(t, readFile(t, dir, "src/composables/useTimer.ts"), "export function useTimer(initial: number = 0)")
}

func TestVueAgent_GenerateComposable_InvalidName(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	res := failTask(t, a, "generate_composable", map[string]any{"output_path": dir, "name": "Timer"})

	assert.Equal(t, errs.KindValidation, res.Kind)
	assert.Empty(t, dirEntries(t, dir))
}

func TestVueAgent_IntegrateUILibrary(t *testing.T) {
	tests := []struct {
		library string
		plugin  string
		pkg     string
	}{
		{library: "vuetify", plugin: "src/plugins/vuetify.ts", pkg: "vuetify"},
		{library: "quasar", plugin: "src/plugins/quasar.ts", pkg: "quasar"},
		{library: "element_plus", plugin: "src/plugins/element-plus.ts", pkg: "element-plus"},
		{library: "naive_ui", plugin: "src/plugins/naive-ui.ts", pkg: "naive-ui"},
	}
	for _, tt := range tests {
		t.Run(tt.library, func(t *testing.T) {
			dir := t.TempDir()
			a := spawn(NewVueAgent())

			out := runTask(t, a, "integrate_ui_library", map[string]any{"output_path": dir, "ui_library": tt.library})

			assert.Equal(t, tt.library, out["configured"])
			files := generatedFiles(t, out, "files")
			assert.Contains(t, files, tt.plugin)
			assert.Contains(t, files, "src/main.ts")
			assert.Contains(t, readFile(t, dir, "src/main.ts"), "app.use(uiLibrary)")
			assert.Contains(t, manifest.StringMap(readManifest(t, dir)["dependencies"]), tt.pkg)
		})
	}
}

func TestVueAgent_SetupRouter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"kept","private":true,"dependencies":{"vue":"^3.3.0"}}`)
	a := spawn(NewVueAgent())

	out := runTask(t, a, "setup_router", map[string]any{"output_path": dir, "router": false})

	assert.Equal(t, "vue_router", out["configured"])
	files := generatedFiles(t, out, "files")
	assert.Contains(t, files, "src/router/index.ts")
	assert.Contains(t, files, "src/views/AboutView.vue")

	m := readManifest(t, dir)
	assert.Equal(t, "kept", m["name"])
	assert.Equal(t, true, m["private"])
	deps := manifest.StringMap(m["dependencies"])
	assert.Equal(t, "^3.3.0", deps["vue"])
	assert.Contains(t, deps, "vue-router")
}

func TestVueAgent_SetupStateManagement_CompositionAPI(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	out := runTask(t, a, "setup_state_management", map[string]any{"output_path": dir, "state_management": "composition_api"})

	assert.Equal(t, "composition_api", out["configured"])
	assert.Contains(t, generatedFiles(t, out, "files"), "src/composables/useCounter.ts")
	assert.NotContains(t, generatedFiles(t, out, "files"), "package.json")
}

func TestVueAgent_ConfigurePWA(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	out := runTask(t, a, "configure_pwa", map[string]any{"output_path": dir})

	assert.Equal(t, []string{"vite.config.ts", "public/manifest.json", "package.json"}, generatedFiles(t, out, "files"))
	assert.Contains(t, readFile(t, dir, "vite.config.ts"), "VitePWA(")
	assert.Contains(t, manifest.StringMap(readManifest(t, dir)["devDependencies"]), "vite-plugin-pwa")
}

func TestVueAgent_SetupTesting(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewVueAgent())

	out := runTask(t, a, "setup_testing", map[string]any{"output_path": dir, "testing": false})

	assert.Equal(t, []string{"vite.config.ts", "src/__tests__/App.spec.ts", "package.json"}, generatedFiles(t, out, "files"))
	m := readManifest(t, dir)
	assert.Equal(t, "vitest", manifest.StringMap(m["scripts"])["test"])
	assert.Contains(t, manifest.StringMap(m["devDependencies"]), "@vue/test-utils")
}

func TestJSQuote(t *testing.T) {
	assert.Equal(t, "'Recipe Box'", jsQuote("Recipe Box"))
	assert.Equal(t, `'Bob\'s "Box"'`, jsQuote(`Bob's "Box"`))
	assert.Equal(t, `'a\\b\nc'`, jsQuote("a\\b\nc"))
}
