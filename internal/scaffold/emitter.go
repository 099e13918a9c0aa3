package scaffold

import (
	"errors"
	"io/fs"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dusk-indust/frontgen/internal/errs"
)

// ChangeKind classifies one emission against what was on disk before.
type ChangeKind string

const (
	ChangeCreated   ChangeKind = "created"
	ChangeUpdated   ChangeKind = "updated"
	ChangeUnchanged ChangeKind = "unchanged"
)

// Change records one emitted file. Added and Deleted count lines.
type Change struct {
	Path    string     `json:"path"`
	Kind    ChangeKind `json:"kind"`
	Added   int        `json:"added,omitempty"`
	Deleted int        `json:"deleted,omitempty"`
}

// Summary counts changes by kind.
type Summary struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// Emitter writes artifacts through a Repo and remembers what it wrote, in
// order. Emitting the same path twice lists it once; the last write wins.
type Emitter struct {
	repo *Repo

	mu      sync.Mutex
	files   []string
	changes map[string]Change
}

// NewEmitter creates an emitter over repo.
func NewEmitter(repo *Repo) *Emitter {
	return &Emitter{repo: repo, changes: make(map[string]Change)}
}

// Repo returns the underlying repository.
func (e *Emitter) Repo() *Repo { return e.repo }

// Emit writes content to rel and returns the cleaned relative path. A file
// whose content is already identical is not rewritten.
func (e *Emitter) Emit(rel, content string) (string, error) {
	cleaned, err := Clean(rel)
	if err != nil {
		return "", errs.FileSystem("emit", rel, err)
	}

	change := Change{Path: cleaned, Kind: ChangeCreated}
	previous, readErr := e.repo.Read(cleaned)
	switch {
	case readErr == nil && previous == content:
		change.Kind = ChangeUnchanged
	case readErr == nil:
		change.Kind = ChangeUpdated
		change.Added, change.Deleted = lineDelta(previous, content)
	case !errors.Is(readErr, fs.ErrNotExist):
		return "", readErr
	}

	if change.Kind != ChangeUnchanged {
		if _, err := e.repo.Write(cleaned, content); err != nil {
			return "", err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, seen := e.changes[cleaned]; !seen {
		e.files = append(e.files, cleaned)
	}
	e.changes[cleaned] = change
	return cleaned, nil
}

// Files lists emitted paths in first-emission order.
func (e *Emitter) Files() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.files...)
}

// Changes returns the change record per file, in Files order.
func (e *Emitter) Changes() []Change {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Change, 0, len(e.files))
	for _, f := range e.files {
		out = append(out, e.changes[f])
	}
	return out
}

// Summary counts emitted files by change kind.
func (e *Emitter) Summary() Summary {
	var s Summary
	for _, c := range e.Changes() {
		switch c.Kind {
		case ChangeCreated:
			s.Created++
		case ChangeUpdated:
			s.Updated++
		case ChangeUnchanged:
			s.Unchanged++
		}
	}
	return s
}

func lineDelta(before, after string) (added, deleted int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if !strings.HasSuffix(d.Text, "\n") {
			n++
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			deleted += n
		}
	}
	return added, deleted
}
