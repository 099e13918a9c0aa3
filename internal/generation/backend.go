// Package generation adapts text-generation backends to a typed outcome so
// callers branch on Success, Unavailable or Malformed instead of inspecting
// generated text.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// Format is the shape the caller expects back.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Request is a single generation call.
type Request struct {
	Prompt         string
	Context        map[string]any
	Specialization string
	Format         Format
}

// Backend produces text for a prompt. Implementations may fail for any
// reason; callers never surface those failures.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f BackendFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ErrNotConfigured is reported when no backend is available.
var ErrNotConfigured = errors.New("generation backend not configured")

// Status classifies an Outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusUnavailable
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one generation attempt. Text is set only for
// StatusSuccess; Err explains the other statuses.
type Outcome struct {
	Status Status
	Text   string
	Err    error
}

// Success wraps usable text.
func Success(text string) Outcome { return Outcome{Status: StatusSuccess, Text: text} }

// Unavailable reports a backend that could not answer.
func Unavailable(err error) Outcome {
	if err == nil {
		err = ErrNotConfigured
	}
	return Outcome{Status: StatusUnavailable, Err: err}
}

// Malformed reports an answer that cannot be used.
func Malformed(err error) Outcome { return Outcome{Status: StatusMalformed, Err: err} }

// OK reports whether the outcome carries usable text.
func (o Outcome) OK() bool { return o.Status == StatusSuccess }
