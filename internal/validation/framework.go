package validation

import (
	"fmt"
	"sort"
	"strings"
)

// SupportedFrameworks is the global set of frameworks the generator knows.
var SupportedFrameworks = []string{"nextjs", "react", "vue", "angular", "svelte"}

var compatibleBuildTools = map[string][]string{
	"nextjs": {"webpack", "turbopack"},
	"react":  {"vite", "webpack", "parcel", "rollup"},
	"vue":    {"vite", "webpack", "vue_cli"},
}

var compatibleStateManagement = map[string][]string{
	"nextjs": {"redux_toolkit", "zustand", "context_api", "mobx"},
	"react":  {"redux_toolkit", "zustand", "context_api", "mobx", "recoil"},
	"vue":    {"pinia", "vuex", "composition_api"},
}

// uiLibraryFrameworks lists, per UI library, the frameworks it works with.
// Libraries not listed are framework-neutral.
var uiLibraryFrameworks = map[string][]string{
	"vuetify":      {"vue"},
	"quasar":       {"vue"},
	"element_plus": {"vue"},
	"naive_ui":     {"vue"},
	"material_ui":  {"react", "nextjs"},
	"chakra_ui":    {"react", "nextjs"},
	"mantine":      {"react", "nextjs"},
}

// IsSupportedFramework reports whether name is in SupportedFrameworks.
func IsSupportedFramework(name string) bool {
	return contains(SupportedFrameworks, strings.ToLower(name))
}

// FrameworkConfig checks a parameter bag for cross-field compatibility with
// the given framework. Unknown keys are ignored.
func FrameworkConfig(framework string, params map[string]any) Result {
	var r Result
	fw := strings.ToLower(framework)
	if !IsSupportedFramework(fw) {
		r.Add(Issue{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("unsupported framework %q", framework),
			Suggestion: "one of " + strings.Join(SupportedFrameworks, ", "),
		})
		return r
	}

	if bt, ok := params["build_tool"].(string); ok && bt != "" {
		if allowed, known := compatibleBuildTools[fw]; known && !contains(allowed, bt) {
			r.Errorf("build tool %q is not compatible with %s (expected one of %s)", bt, fw, strings.Join(allowed, ", "))
		}
	}
	if sm, ok := params["state_management"].(string); ok && sm != "" {
		if allowed, known := compatibleStateManagement[fw]; known && !contains(allowed, sm) {
			r.Errorf("state management %q is not compatible with %s (expected one of %s)", sm, fw, strings.Join(allowed, ", "))
		}
	}
	for _, key := range []string{"ui_library", "component_library"} {
		lib, ok := params[key].(string)
		if !ok || lib == "" {
			continue
		}
		if fws, known := uiLibraryFrameworks[lib]; known && !contains(fws, fw) {
			r.Errorf("UI library %q only works with %s", lib, strings.Join(fws, ", "))
		}
	}

	switch fw {
	case "nextjs":
		if v, ok := params["app_router"].(bool); ok && !v {
			r.Add(Issue{
				Severity:   SeverityWarning,
				Message:    "the Pages Router is legacy",
				Suggestion: "set app_router to true",
			})
		}
	case "vue":
		if v := fmt.Sprint(params["vue_version"]); v == "2" {
			r.Add(Issue{
				Severity:   SeverityWarning,
				Message:    "Vue 2 reached end of life",
				Suggestion: "set vue_version to \"3\"",
			})
		}
	}
	if v, ok := params["accessibility"].(bool); ok && !v {
		r.Warnf("accessibility support is disabled")
	}
	if v, ok := params["typescript"].(bool); ok && !v {
		r.Infof("TypeScript is disabled; generated sources will be plain JavaScript")
	}
	return r
}

// AllowedBuildTools returns the build tools compatible with framework, sorted.
func AllowedBuildTools(framework string) []string {
	out := append([]string(nil), compatibleBuildTools[strings.ToLower(framework)]...)
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
