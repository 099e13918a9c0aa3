package validation

import (
	"strings"
)

// SyntaxChecker parses source in the given language and reports syntax
// problems. It returns ok=false when it does not support the language.
type SyntaxChecker interface {
	SyntaxIssues(source []byte, language string) (issues []Issue, ok bool)
}

// Code annotates generated source. Empty code is the only error; every
// heuristic mismatch is a warning so generation is never blocked.
func Code(code, language string, syntax SyntaxChecker) Result {
	var r Result
	if strings.TrimSpace(code) == "" {
		r.Errorf("generated code is empty")
		return r
	}

	lang := strings.ToLower(language)
	switch lang {
	case "typescript", "ts", "tsx":
		if n := strings.Count(code, "interface "); n > 0 && strings.Count(code, "{") < n {
			r.Warnf("possible syntax problem in interface declarations")
		}
		checkBraces(&r, code)
	case "javascript", "js", "jsx":
		checkBraces(&r, code)
	case "vue":
		if !strings.Contains(code, "<template") {
			r.Warnf("Vue component has no <template> block")
		}
		if !strings.Contains(code, "<script") {
			r.Infof("Vue component has no <script> block")
		}
	case "component":
		if !strings.Contains(code, "export") {
			r.Warnf("component source exports nothing")
		}
	case "json":
		checkBraces(&r, code)
	}

	if syntax != nil {
		if issues, ok := syntax.SyntaxIssues([]byte(code), lang); ok {
			for _, is := range issues {
				if is.Severity == SeverityError {
					is.Severity = SeverityWarning
				}
				r.Add(is)
			}
		}
	}
	return r
}

func checkBraces(r *Result, code string) {
	if open, closed := strings.Count(code, "{"), strings.Count(code, "}"); open != closed {
		r.Add(Issue{
			Severity: SeverityWarning,
			Message:  "unbalanced braces",
		})
	}
}
