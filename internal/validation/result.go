// Package validation checks requests, configurations, manifests and generated
// sources. Every check accumulates issues; only error-severity issues make a
// result invalid.
package validation

import (
	"fmt"
	"strings"
)

// Severity ranks an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding.
type Issue struct {
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	File       string   `json:"file,omitempty"`
	Line       int      `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString(string(i.Severity))
	sb.WriteString(": ")
	if i.File != "" {
		sb.WriteString(i.File)
		if i.Line > 0 {
			fmt.Fprintf(&sb, ":%d", i.Line)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(i.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Result collects issues from one or more checks.
type Result struct {
	Issues []Issue `json:"issues"`
}

// Valid reports whether the result holds no error-severity issues.
func (r Result) Valid() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Add appends issues.
func (r *Result) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// Errorf appends an error-severity issue.
func (r *Result) Errorf(format string, args ...any) {
	r.Add(Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning.
func (r *Result) Warnf(format string, args ...any) {
	r.Add(Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof appends an informational issue.
func (r *Result) Infof(format string, args ...any) {
	r.Add(Issue{Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all issues of other.
func (r *Result) Merge(other Result) {
	r.Add(other.Issues...)
}

// InFile stamps every issue without a file with path.
func (r *Result) InFile(path string) {
	for i := range r.Issues {
		if r.Issues[i].File == "" {
			r.Issues[i].File = path
		}
	}
}

// Errors returns the messages of error-severity issues.
func (r Result) Errors() []string { return r.messages(SeverityError) }

// Warnings returns the messages of warning-severity issues.
func (r Result) Warnings() []string { return r.messages(SeverityWarning) }

func (r Result) messages(sev Severity) []string {
	var out []string
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i.Message)
		}
	}
	return out
}

// Count returns the number of issues with the given severity.
func (r Result) Count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}
