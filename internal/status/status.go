// Package status compares an output root against the artifact list a
// generation plan would emit.
package status

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

// FileState is the state of one planned artifact.
type FileState string

const (
	StatePresent FileState = "present"
	StateMissing FileState = "missing"
)

// DefaultIgnore lists build output and tooling files never reported as extra.
var DefaultIgnore = []string{
	"dist/**",
	"build/**",
	".next/**",
	"coverage/**",
	"**.log",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
}

// FileStatus describes one planned artifact.
type FileStatus struct {
	Path  string    `json:"path"`
	State FileState `json:"state"`
}

// Report is the outcome of Check.
type Report struct {
	Root    string       `json:"root"`
	Files   []FileStatus `json:"files"`
	Present int          `json:"present"`
	Missing int          `json:"missing"`
	// Extra lists files under the root that the plan does not name.
	Extra []string `json:"extra"`
}

// Complete reports whether every planned artifact exists.
func (r *Report) Complete() bool { return r.Missing == 0 }

// MissingPaths lists the planned artifacts that do not exist, in plan order.
func (r *Report) MissingPaths() []string {
	var out []string
	for _, f := range r.Files {
		if f.State == StateMissing {
			out = append(out, f.Path)
		}
	}
	return out
}

// Percent is the share of planned artifacts present, 0 to 100.
func (r *Report) Percent() int {
	if len(r.Files) == 0 {
		return 100
	}
	return r.Present * 100 / len(r.Files)
}

// Summary is a one-line description such as "18/20 files present".
func (r *Report) Summary() string {
	return fmt.Sprintf("%d/%d files present", r.Present, len(r.Files))
}

// Options tunes Check.
type Options struct {
	// Ignore holds globs of unplanned files left out of Report.Extra. Nil
	// means DefaultIgnore.
	Ignore []string
}

// Check stats every planned path under root. A missing root reports every
// artifact as missing.
func Check(root string, planned []string, opts Options) (*Report, error) {
	repo, err := scaffold.NewRepo(root)
	if err != nil {
		return nil, err
	}
	ignorePatterns := opts.Ignore
	if ignorePatterns == nil {
		ignorePatterns = DefaultIgnore
	}
	ignore := make([]glob.Glob, 0, len(ignorePatterns))
	for _, p := range ignorePatterns {
		g, err := scaffold.CompileGlob(p)
		if err != nil {
			return nil, err
		}
		ignore = append(ignore, g)
	}

	report := &Report{Root: repo.Root(), Files: make([]FileStatus, 0, len(planned)), Extra: []string{}}
	want := make(map[string]bool, len(planned))
	for _, p := range planned {
		rel, err := scaffold.Clean(p)
		if err != nil {
			return nil, errs.FileSystem("status", p, err)
		}
		want[rel] = true
		state := StateMissing
		if repo.Exists(rel) {
			state = StatePresent
			report.Present++
		} else {
			report.Missing++
		}
		report.Files = append(report.Files, FileStatus{Path: rel, State: state})
	}

	all, err := repo.List()
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if want[f] || ignored(ignore, f) {
			continue
		}
		report.Extra = append(report.Extra, f)
	}
	return report, nil
}

func ignored(globs []glob.Glob, rel string) bool {
	return slices.ContainsFunc(globs, func(g glob.Glob) bool { return g.Match(rel) })
}

// Format renders the report as a checklist, missing files first.
func Format(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d%%)\n", r.Summary(), r.Percent())
	for _, f := range r.Files {
		if f.State == StateMissing {
			fmt.Fprintf(&sb, "  [ ] %s\n", f.Path)
		}
	}
	for _, f := range r.Files {
		if f.State == StatePresent {
			fmt.Fprintf(&sb, "  [x] %s\n", f.Path)
		}
	}
	for _, f := range r.Extra {
		fmt.Fprintf(&sb, "  [+] %s\n", f)
	}
	return sb.String()
}
