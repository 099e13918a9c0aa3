// Package errs defines the closed set of failure kinds reported by agents.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure for programmatic handling.
type Kind string

const (
	KindNone                 Kind = ""
	KindValidation           Kind = "validation"
	KindUnsupportedFramework Kind = "unsupported_framework"
	KindGeneration           Kind = "generation_backend"
	KindFileSystem           Kind = "filesystem"
	KindConfiguration        Kind = "configuration"
	KindUnknownOperation     Kind = "unknown_operation"
	KindInternal             Kind = "internal"
)

// Error is a failure with a kind, the operation that produced it and,
// for accumulated failures, every individual problem.
type Error struct {
	Kind     Kind
	Op       string
	Problems []string
	Err      error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	switch {
	case len(e.Problems) > 0:
		sb.WriteString(kindLabel(e.Kind))
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Problems, "; "))
	case e.Err != nil:
		sb.WriteString(e.Err.Error())
	default:
		sb.WriteString(kindLabel(e.Kind))
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

func kindLabel(k Kind) string {
	switch k {
	case KindValidation:
		return "validation failed"
	case KindUnsupportedFramework:
		return "unsupported framework"
	case KindConfiguration:
		return "invalid configuration"
	case KindFileSystem:
		return "file system error"
	case KindUnknownOperation:
		return "operation not recognized"
	case KindGeneration:
		return "generation backend failure"
	default:
		return "internal error"
	}
}

// New returns an error of the given kind wrapping err.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Validation reports every accumulated problem at once.
func Validation(op string, problems []string) error {
	return &Error{Kind: KindValidation, Op: op, Problems: append([]string(nil), problems...)}
}

// Configuration reports every invalid configuration value at once.
func Configuration(op string, problems []string) error {
	return &Error{Kind: KindConfiguration, Op: op, Problems: append([]string(nil), problems...)}
}

// FileSystem wraps an I/O failure for path.
func FileSystem(op, path string, err error) error {
	return &Error{Kind: KindFileSystem, Op: op, Err: fmt.Errorf("%s: %w", path, err)}
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal
// for any other non-nil error and KindNone for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ProblemsOf returns the accumulated problems carried by err, or a single
// entry holding err's message.
func ProblemsOf(err error) []string {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && len(e.Problems) > 0 {
		return append([]string(nil), e.Problems...)
	}
	return []string{err.Error()}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Format renders problems as an indented bullet list.
func Format(problems []string) string {
	if len(problems) == 0 {
		return "no problems"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d problem(s):\n", len(problems))
	for _, p := range problems {
		sb.WriteString("  - ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Categorize groups errors by kind. Nil errors are skipped.
func Categorize(list []error) map[Kind][]string {
	out := make(map[Kind][]string)
	for _, err := range list {
		if err == nil {
			continue
		}
		k := KindOf(err)
		out[k] = append(out[k], err.Error())
	}
	return out
}

// Kinds returns the kinds present in a categorization, sorted.
func Kinds(groups map[Kind][]string) []Kind {
	kinds := make([]Kind, 0, len(groups))
	for k := range groups {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
