package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/manifest"
)

func TestNextJSAgent_Initialize(t *testing.T) {
	a := spawn(NewNextJSAgent())

	assert.Equal(t, "14.0.0", a.GetMetadata("nextjs_version", nil))
	assert.Equal(t, "18.0.0", a.GetMetadata("react_version", nil))
	assert.Equal(t, []string{
		"generate_nextjs_app", "generate_component", "generate_page", "generate_layout",
		"setup_routing", "configure_typescript", "integrate_tailwind", "generate_api_route",
	}, a.Operations())
	assert.True(t, a.HasCapability("app_router"))
}

func TestNextJSAgent_GenerateApp_Defaults(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":    "nextjs",
		"output_path":  dir,
		"project_name": "Acme Shop",
	})

	assert.Equal(t, []string{
		"package.json",
		"next.config.js",
		"tsconfig.json",
		"tailwind.config.js",
		"postcss.config.js",
		"app/layout.tsx",
		"app/page.tsx",
		"components/layout/Header.tsx",
		"components/layout/Footer.tsx",
		"app/globals.css",
		".eslintrc.json",
		".gitignore",
	}, generatedFiles(t, out, "generated_files"))
	assert.Equal(t, "nextjs", out["framework"])
	assert.Equal(t, dir, out["output_path"])
	assert.Empty(t, out["warnings"])

	m := readManifest(t, dir)
	assert.Equal(t, "acme-shop", m["name"])
	assert.Contains(t, manifest.StringMap(m["dependencies"]), "next")
	assert.Contains(t, manifest.StringMap(m["devDependencies"]), "tailwindcss")

	layout := readFile(t, dir, "app/layout.tsx")
	assert.Contains(t, layout, "import type { Metadata } from 'next'")
	assert.Contains(t, layout, "Acme Shop")
	assert.Contains(t, readFile(t, dir, "app/globals.css"), "@tailwind base")

	sources, ok := out["sources"].(map[string]string)
	require.True(t, ok)
	for file, tier := range sources {
		assert.Equal(t, "static", tier, file)
	}
	steps, ok := out["next_steps"].([]string)
	require.True(t, ok)
	assert.Equal(t, "cd "+dir, steps[0])
	assert.Contains(t, steps, "npm install")
}

func TestNextJSAgent_GenerateApp_PagesRouterJavaScript(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":   "nextjs",
		"output_path": dir,
		"typescript":  false,
		"app_router":  false,
	})

	assert.Equal(t, []string{
		"package.json",
		"next.config.js",
		"tailwind.config.js",
		"postcss.config.js",
		"pages/_app.js",
		"pages/index.js",
		"components/layout/Header.jsx",
		"components/layout/Footer.jsx",
		"styles/globals.css",
		".eslintrc.json",
		".gitignore",
	}, generatedFiles(t, out, "generated_files"))
	assert.NotContains(t, readFile(t, dir, "pages/_app.js"), "AppProps")
}

func TestNextJSAgent_GenerateApp_EntityTypes(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":   "nextjs",
		"output_path": dir,
		"schema": map[string]any{
			"entities": []any{
				map[string]any{
					"name": "order_item",
					"fields": []any{
						map[string]any{"name": "quantity", "type": "integer"},
						map[string]any{"name": "note", "type": "string", "optional": true},
					},
				},
			},
		},
	})

	assert.Contains(t, generatedFiles(t, out, "generated_files"), "types/OrderItem.ts")
	body := readFile(t, dir, "types/OrderItem.ts")
	assert.Contains(t, body, "export interface OrderItem {")
	assert.Contains(t, body, "quantity: number")
	assert.Contains(t, body, "note?: string")
}

func TestNextJSAgent_GenerateApp_BadConfigWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	res := failTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":   "nextjs",
		"output_path": dir,
		"typescript":  "yes",
	})

	assert.Equal(t, errs.KindConfiguration, res.Kind)
	assert.Contains(t, res.Error, "typescript")
	assert.Empty(t, dirEntries(t, dir))
}

func TestNextJSAgent_GenerateApp_WrongFramework(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	res := failTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":   "vue",
		"output_path": dir,
	})

	assert.Equal(t, errs.KindUnsupportedFramework, res.Kind)
	assert.Empty(t, dirEntries(t, dir))
}

func TestNextJSAgent_GenerateComponent(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "generate_component", map[string]any{
		"output_path":    dir,
		"component_name": "PriceTag",
	})

	assert.Equal(t, "components/PriceTag.tsx", out["file"])
	assert.Equal(t, "PriceTag", out["name"])
	assert.Equal(t, "static", out["tier"])
	body := readFile(t, dir, "components/PriceTag.tsx")
	assert.Contains(t, body, "export interface PriceTagProps")
	assert.Contains(t, body, "export default function PriceTag(")
}

func TestNextJSAgent_GenerateComponent_InvalidNameWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	res := failTask(t, a, "generate_component", map[string]any{
		"output_path":    dir,
		"component_name": "price-tag",
	})

	assert.Equal(t, errs.KindValidation, res.Kind)
	assert.Contains(t, res.Error, "PascalCase")
	assert.Empty(t, dirEntries(t, dir))
}

func TestNextJSAgent_RouteOperations(t *testing.T) {
	tests := []struct {
		op       string
		route    string
		file     string
		contains string
	}{
		{op: "generate_page", route: "/dashboard/settings/", file: "app/dashboard/settings/page.tsx", contains: "export default function SettingsPage()"},
		{op: "generate_layout", route: "dashboard", file: "app/dashboard/layout.tsx", contains: "export default function DashboardLayout("},
		{op: "generate_api_route", route: "orders", file: "app/api/orders/route.ts", contains: "export async function POST(request: Request)"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			dir := t.TempDir()
			a := spawn(NewNextJSAgent())

			out := runTask(t, a, tt.op, map[string]any{"output_path": dir, "route": tt.route})

			assert.Equal(t, tt.file, out["file"])
			assert.Contains(t, readFile(t, dir, tt.file), tt.contains)
		})
	}
}

func TestNextJSAgent_GeneratePage_RequiresRoute(t *testing.T) {
	a := spawn(NewNextJSAgent())

	res := failTask(t, a, "generate_page", map[string]any{"output_path": t.TempDir()})

	assert.Equal(t, errs.KindValidation, res.Kind)
	assert.Contains(t, res.Error, "route is required")
}

func TestNextJSAgent_IntegrateTailwind_MergesExistingManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"mine","version":"9.9.9","dependencies":{"next":"13.0.0"}}`)
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "integrate_tailwind", map[string]any{"output_path": dir})

	assert.Equal(t, "tailwind_css", out["configured"])
	assert.Equal(t, []string{
		"tailwind.config.js",
		"postcss.config.js",
		"app/globals.css",
		"package.json",
	}, generatedFiles(t, out, "files"))

	m := readManifest(t, dir)
	assert.Equal(t, "mine", m["name"])
	assert.Equal(t, "9.9.9", m["version"])
	assert.Equal(t, "13.0.0", manifest.StringMap(m["dependencies"])["next"])
	dev := manifest.StringMap(m["devDependencies"])
	assert.Contains(t, dev, "tailwindcss")
	assert.Contains(t, dev, "postcss")
	assert.Contains(t, dev, "autoprefixer")

	changes, ok := out["changes"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, changes["updated"])
	assert.Equal(t, 3, changes["created"])
}

func TestNextJSAgent_ConfigureTypeScript_WithoutManifest(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "configure_typescript", map[string]any{
		"output_path": dir,
		"typescript":  false,
	})

	assert.Equal(t, []string{"tsconfig.json", "package.json"}, generatedFiles(t, out, "files"))
	m := readManifest(t, dir)
	assert.Contains(t, manifest.StringMap(m["dependencies"]), "next")
	assert.Contains(t, manifest.StringMap(m["devDependencies"]), "typescript")
	assert.Contains(t, manifest.StringMap(m["devDependencies"]), "@types/react")
}

func TestNextJSAgent_SetupRouting(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent())

	out := runTask(t, a, "setup_routing", map[string]any{"output_path": dir})

	assert.Equal(t, "routing", out["configured"])
	assert.Equal(t, []string{"app/layout.tsx", "app/page.tsx"}, generatedFiles(t, out, "files"))
}

func TestNextJSAgent_GenerateApp_Coherent(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent(WithCoherence(graph.NewTreeSitterParser())))

	out := runTask(t, a, "generate_nextjs_app", map[string]any{
		"framework":   "nextjs",
		"output_path": dir,
	})

	assert.Empty(t, out["warnings"])
}
