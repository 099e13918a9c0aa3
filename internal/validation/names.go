package validation

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	projectNameMin = 3
	projectNameMax = 50
)

var (
	projectNamePattern   = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)
	projectNameForbidden = regexp.MustCompile(`[^a-z0-9-]`)
	componentNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	hookNamePattern      = regexp.MustCompile(`^use[A-Z][A-Za-z0-9]*$`)
	npmNamePattern       = regexp.MustCompile(`^(?:@[a-z0-9~][a-z0-9._~\-]*/)?[a-z0-9~][a-z0-9._~\-]*$`)
	nonAlnum             = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

var reservedProjectNames = map[string]bool{
	"node_modules": true, "public": true, "src": true, "build": true, "dist": true,
	"test": true, "tests": true, "next": true, "react": true, "vue": true,
	"angular": true, "svelte": true, "vite": true, "webpack": true, "main": true,
	"index": true, "app": true, "www": true, "static": true, "assets": true,
	"config": true,
}

var reservedComponentNames = map[string]bool{
	"React": true, "Component": true, "Element": true, "Fragment": true,
	"StrictMode": true, "Suspense": true, "Provider": true, "Consumer": true,
	"Context": true, "Ref": true, "Vue": true, "VueComponent": true,
	"App": true, "Router": true, "Store": true,
}

// ProjectName checks a project directory/package name. All problems are
// reported together.
func ProjectName(name string) Result {
	var r Result
	if name == "" {
		r.Errorf("project name is required")
		return r
	}
	if n := len(name); n < projectNameMin || n > projectNameMax {
		r.Errorf("project name must be between %d and %d characters, got %d", projectNameMin, projectNameMax, n)
	}
	if reservedProjectNames[strings.ToLower(name)] {
		r.Errorf("project name %q is reserved", name)
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		r.Errorf("project name must not start with '.' or '-'")
	}
	if bad := projectNameForbidden.FindAllString(name, -1); len(bad) > 0 {
		r.Add(Issue{
			Severity:   SeverityError,
			Message:    "project name contains invalid characters: " + uniqueJoin(bad),
			Suggestion: "use lowercase letters, digits and hyphens",
		})
	}
	if !projectNamePattern.MatchString(name) {
		r.Add(Issue{
			Severity:   SeverityError,
			Message:    "project name must start with a lowercase letter and end with a letter or digit",
			Suggestion: "e.g. " + SuggestProjectName(name),
		})
	}
	return r
}

// SuggestProjectName rewrites name into a form ProjectName accepts where possible.
func SuggestProjectName(name string) string {
	s := strings.ToLower(name)
	s = strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if s == "" {
		return "my-app"
	}
	if reservedProjectNames[s] {
		s = "my-" + s
	}
	return s
}

// ComponentName checks a PascalCase component identifier.
func ComponentName(name string) Result {
	var r Result
	if name == "" {
		r.Errorf("component name is required")
		return r
	}
	if !componentNamePattern.MatchString(name) {
		r.Add(Issue{
			Severity:   SeverityError,
			Message:    "component name must be PascalCase",
			Suggestion: "e.g. " + SanitizeComponentName(name),
		})
	}
	if reservedComponentNames[name] {
		r.Errorf("component name %q is reserved", name)
	}
	return r
}

// HookName checks a composable or hook identifier such as useCounter.
func HookName(name string) Result {
	var r Result
	if !hookNamePattern.MatchString(name) {
		r.Errorf("hook name %q must be camelCase and start with \"use\"", name)
	}
	return r
}

// PackageName checks an npm package name.
func PackageName(name string) Result {
	var r Result
	switch {
	case name == "":
		r.Errorf("package name is required")
	case len(name) > 214:
		r.Errorf("package name must be at most 214 characters")
	case !npmNamePattern.MatchString(name):
		r.Errorf("package name %q is not a valid npm package name", name)
	}
	return r
}

// SanitizeComponentName converts arbitrary text to a PascalCase identifier.
func SanitizeComponentName(name string) string {
	name = strings.TrimLeftFunc(name, func(r rune) bool { return !unicode.IsLetter(r) })
	parts := nonAlnum.Split(name, -1)
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		runes := []rune(p)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}
	if sb.Len() == 0 {
		return "Component"
	}
	return sb.String()
}

func uniqueJoin(items []string) string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, "'"+it+"'")
		}
	}
	return strings.Join(out, ", ")
}
