package validation

import (
	"testing"
	"testing/fstest"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_ValidIgnoresWarnings(t *testing.T) {
	var r Result
	r.Warnf("w1")
	r.Warnf("w2")
	r.Infof("i1")
	assert.True(t, r.Valid())

	r.Errorf("e1")
	assert.False(t, r.Valid())
	assert.Equal(t, []string{"e1"}, r.Errors())
	assert.Equal(t, []string{"w1", "w2"}, r.Warnings())
	assert.Equal(t, 1, r.Count(SeverityInfo))
}

func TestIssue_String(t *testing.T) {
	is := Issue{Severity: SeverityWarning, Message: "unbalanced braces", File: "src/App.tsx", Line: 4, Suggestion: "close the block"}
	assert.Equal(t, "warning: src/App.tsx:4: unbalanced braces (close the block)", is.String())
}

func TestProjectName_ReservedAndInvalidCharacters(t *testing.T) {
	r := ProjectName("Node_Modules")
	require.False(t, r.Valid())
	assert.GreaterOrEqual(t, len(r.Errors()), 2)
	assert.Contains(t, r.Errors(), `project name "Node_Modules" is reserved`)
}

func TestProjectName_Valid(t *testing.T) {
	r := ProjectName("my-awesome-app")
	assert.True(t, r.Valid())
	assert.Empty(t, r.Issues)
}

func TestProjectName_Rules(t *testing.T) {
	cases := map[string]string{
		"ab":          "between 3 and 50",
		"-app":        "must not start with",
		".app":        "must not start with",
		"my app":      "invalid characters",
		"app-":        "must start with a lowercase letter",
		"1app":        "must start with a lowercase letter",
		"CONFIG":      "reserved",
		"":            "required",
		"a-very-long-project-name-that-goes-on-and-on-forever": "between 3 and 50",
	}
	for name, want := range cases {
		r := ProjectName(name)
		require.False(t, r.Valid(), name)
		joined := ""
		for _, e := range r.Errors() {
			joined += e + "\n"
		}
		assert.Contains(t, joined, want, name)
	}
}

func TestProjectName_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("well-formed names are valid unless reserved", prop.ForAll(
		func(name string) bool {
			return ProjectName(name).Valid() == !reservedProjectNames[name]
		},
		gen.RegexMatch(`[a-z][a-z0-9-]{1,20}[a-z0-9]`),
	))

	properties.Property("names with uppercase letters are never valid", prop.ForAll(
		func(name string) bool {
			return !ProjectName(name).Valid()
		},
		gen.RegexMatch(`[a-z]{2,10}[A-Z][a-z]{1,5}`),
	))

	properties.TestingRun(t)
}

func TestSuggestProjectName(t *testing.T) {
	assert.Equal(t, "my-app", SuggestProjectName("My App"))
	assert.Equal(t, "node-modules", SuggestProjectName("Node_Modules"))
	assert.Equal(t, "my-config", SuggestProjectName("Config"))
	assert.Equal(t, "my-app", SuggestProjectName("___"))
}

func TestComponentName(t *testing.T) {
	assert.True(t, ComponentName("UserCard").Valid())

	r := ComponentName("user-card")
	require.False(t, r.Valid())
	assert.Equal(t, "e.g. UserCard", r.Issues[0].Suggestion)

	assert.False(t, ComponentName("Fragment").Valid())
	assert.False(t, ComponentName("").Valid())
}

func TestHookName(t *testing.T) {
	assert.True(t, HookName("useCounter").Valid())
	assert.False(t, HookName("counter").Valid())
	assert.False(t, HookName("usecounter").Valid())
}

func TestPackageName(t *testing.T) {
	assert.True(t, PackageName("demo-app").Valid())
	assert.True(t, PackageName("@scope/demo").Valid())
	assert.False(t, PackageName("Demo App").Valid())
	assert.False(t, PackageName("").Valid())
}

func TestSanitizeComponentName(t *testing.T) {
	assert.Equal(t, "MyButton", SanitizeComponentName("my-button"))
	assert.Equal(t, "UserProfileCard", SanitizeComponentName("user_profile card"))
	assert.Equal(t, "Abc", SanitizeComponentName("123abc"))
	assert.Equal(t, "Component", SanitizeComponentName("!!!"))
}

func TestFrameworkConfig_Compatibility(t *testing.T) {
	r := FrameworkConfig("react", map[string]any{
		"build_tool":       "vue_cli",
		"state_management": "pinia",
		"ui_library":       "vuetify",
	})
	assert.Len(t, r.Errors(), 3)

	ok := FrameworkConfig("vue", map[string]any{
		"build_tool":       "vite",
		"state_management": "pinia",
		"ui_library":       "vuetify",
	})
	assert.True(t, ok.Valid())
	assert.Empty(t, ok.Issues)
}

func TestFrameworkConfig_Warnings(t *testing.T) {
	r := FrameworkConfig("nextjs", map[string]any{"app_router": false, "accessibility": false})
	assert.True(t, r.Valid())
	assert.Len(t, r.Warnings(), 2)

	vue2 := FrameworkConfig("vue", map[string]any{"vue_version": "2"})
	assert.Len(t, vue2.Warnings(), 1)
}

func TestFrameworkConfig_Unsupported(t *testing.T) {
	r := FrameworkConfig("ember", nil)
	require.False(t, r.Valid())
	assert.Contains(t, r.Errors()[0], "unsupported framework")
	assert.True(t, FrameworkConfig("Svelte", nil).Valid())
}

func TestPackageJSON_Valid(t *testing.T) {
	r := PackageJSON([]byte(`{
		"name": "demo-app",
		"version": "0.1.0",
		"private": true,
		"scripts": {"dev": "next dev", "build": "next build"},
		"dependencies": {"next": "^14.0.0", "react": "^18.0.0"},
		"devDependencies": {"typescript": "^5.0.0", "local-lib": "file:../lib"}
	}`))
	assert.True(t, r.Valid())
	assert.Empty(t, r.Issues)
}

func TestPackageJSON_SchemaErrors(t *testing.T) {
	r := PackageJSON([]byte(`{"dependencies": {"react": 18}}`))
	require.False(t, r.Valid())
	assert.GreaterOrEqual(t, len(r.Errors()), 2)
}

func TestPackageJSON_Warnings(t *testing.T) {
	r := PackageJSON([]byte(`{
		"name": "demo-app",
		"version": "1.0.0",
		"dependencies": {"vuex": "^4.1.0", "pinia": "^2.1.0", "broken": "not-a-version"},
		"devDependencies": {"pinia": "^2.1.0"}
	}`))
	assert.True(t, r.Valid())
	warnings := r.Warnings()
	assert.Contains(t, warnings, `missing "dev" script`)
	assert.Contains(t, warnings, `missing "build" script`)
	assert.Contains(t, warnings, `"pinia" is listed in both dependencies and devDependencies`)
	assert.Contains(t, warnings, `"vuex" and "pinia" are usually not used together`)
	assert.Contains(t, warnings, `dependency "broken": invalid version range "not-a-version"`)
}

func TestPackageJSON_NotJSON(t *testing.T) {
	r := PackageJSON([]byte(`{name:`))
	assert.False(t, r.Valid())
}

func TestTSConfig(t *testing.T) {
	good := TSConfig([]byte(`{
		// comments are fine
		"compilerOptions": {"strict": true, "noEmit": true, "jsx": "preserve",},
	}`))
	assert.True(t, good.Valid())
	assert.Empty(t, good.Issues)

	loose := TSConfig([]byte(`{"compilerOptions": {"jsx": "react"}}`))
	assert.True(t, loose.Valid())
	assert.Len(t, loose.Warnings(), 2)
	assert.Equal(t, 1, loose.Count(SeverityInfo))

	missing := TSConfig([]byte(`{}`))
	assert.False(t, missing.Valid())
}

func TestCode_EmptyIsInvalid(t *testing.T) {
	assert.False(t, Code("  \n", "tsx", nil).Valid())
}

func TestCode_HeuristicsOnlyWarn(t *testing.T) {
	r := Code("export function App() {", "tsx", nil)
	assert.True(t, r.Valid())
	assert.Contains(t, r.Warnings(), "unbalanced braces")

	vue := Code("<script setup lang=\"ts\"></script>", "vue", nil)
	assert.True(t, vue.Valid())
	assert.Contains(t, vue.Warnings(), "Vue component has no <template> block")

	comp := Code("const x = 1", "component", nil)
	assert.Contains(t, comp.Warnings(), "component source exports nothing")
}

type stubSyntax struct{ issues []Issue }

func (s stubSyntax) SyntaxIssues([]byte, string) ([]Issue, bool) { return s.issues, true }

func TestCode_SyntaxErrorsDowngradedToWarnings(t *testing.T) {
	r := Code("export const a = ;", "typescript", stubSyntax{issues: []Issue{
		{Severity: SeverityError, Message: "syntax error", Line: 1},
	}})
	assert.True(t, r.Valid())
	assert.Equal(t, 1, r.Count(SeverityWarning))
}

func TestProjectStructure(t *testing.T) {
	fsys := fstest.MapFS{
		"package.json":   {Data: []byte(`{"name":"demo-app","version":"0.1.0","scripts":{"dev":"next dev","build":"next build"}}`)},
		"next.config.js": {Data: []byte("module.exports = {}")},
		"app/page.tsx":   {Data: []byte("export default function Page() { return null }")},
	}
	r := ProjectStructure(fsys, "nextjs")
	assert.True(t, r.Valid(), r.Issues)

	empty := ProjectStructure(fstest.MapFS{}, "react")
	assert.False(t, empty.Valid())
	assert.Len(t, empty.Errors(), 3)
}
