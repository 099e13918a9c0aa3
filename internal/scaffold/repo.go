// Package scaffold is the only file I/O surface of generation: a rooted
// repository, directory scaffolding and a tracking emitter.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/dusk-indust/frontgen/internal/errs"
)

// ErrOutsideRoot is wrapped by errors for paths that escape the root.
var ErrOutsideRoot = errors.New("path escapes output root")

// Repo reads and writes files below a root directory. Every path is relative
// to the root and uses forward slashes; absolute paths, paths that leave
// the root and paths routed out of it through a symlink are rejected.
type Repo struct {
	root string
}

// NewRepo roots a repository at dir. The directory need not exist yet.
func NewRepo(dir string) (*Repo, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errs.Newf(errs.KindFileSystem, "scaffold", "output root is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.FileSystem("scaffold", dir, err)
	}
	return &Repo{root: abs}, nil
}

// Root returns the absolute root directory.
func (r *Repo) Root() string { return r.root }

// Clean normalizes rel and checks it stays below the root.
func Clean(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path: %w", ErrOutsideRoot)
	}
	slashed := filepath.ToSlash(rel)
	if path.IsAbs(slashed) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("absolute path %q: %w", rel, ErrOutsideRoot)
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return cleaned, nil
}

// Resolve returns the absolute path for rel.
func (r *Repo) Resolve(rel string) (string, error) {
	_, full, err := r.locate("resolve", rel)
	return full, err
}

// Write creates parent directories and writes content, overwriting any
// existing file. It returns the cleaned relative path.
func (r *Repo) Write(rel, content string) (string, error) {
	cleaned, full, err := r.locate("write", rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errs.FileSystem("write", cleaned, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return "", errs.FileSystem("write", cleaned, err)
	}
	return cleaned, nil
}

// locate cleans rel and joins it to the root. Symlinks already on disk
// below the root must not lead out of it.
func (r *Repo) locate(op, rel string) (string, string, error) {
	cleaned, err := Clean(rel)
	if err != nil {
		return "", "", errs.FileSystem(op, rel, err)
	}
	full := filepath.Join(r.root, filepath.FromSlash(cleaned))
	if err := r.contained(full); err != nil {
		return "", "", errs.FileSystem(op, cleaned, err)
	}
	return cleaned, full, nil
}

// contained resolves the deepest existing ancestor of full, stopping at the
// root, and checks the result is still below the resolved root.
func (r *Repo) contained(full string) error {
	p := full
	for {
		if _, err := os.Lstat(p); err == nil {
			break
		}
		if p == r.root {
			return nil
		}
		p = filepath.Dir(p)
	}
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// dangling link: its target is unknown until written through
			return fmt.Errorf("dangling symlink %q: %w", p, ErrOutsideRoot)
		}
		return err
	}
	root, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return err
	}
	within, err := filepath.Rel(root, resolved)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q resolves to %q: %w", full, resolved, ErrOutsideRoot)
	}
	return nil
}

// Read returns the content of rel.
func (r *Repo) Read(rel string) (string, error) {
	full, err := r.Resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", errs.FileSystem("read", rel, err)
	}
	return string(data), nil
}

// Exists reports whether rel exists below the root.
func (r *Repo) Exists(rel string) bool {
	full, err := r.Resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// MkdirAll creates rel and its parents. Existing directories are fine.
func (r *Repo) MkdirAll(rel string) error {
	full, err := r.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return errs.FileSystem("mkdir", rel, err)
	}
	return nil
}

// List returns every regular file below the root, sorted. A missing root
// lists as empty.
func (r *Repo) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == r.root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errs.FileSystem("list", r.root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Glob lists files matching a pattern such as "src/**.tsx". "**" crosses
// directories; "*" does not.
func (r *Repo) Glob(pattern string) ([]string, error) {
	m, err := CompileGlob(pattern)
	if err != nil {
		return nil, err
	}
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if m.Match(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// CompileGlob compiles a slash-separated glob.
func CompileGlob(pattern string) (glob.Glob, error) {
	m, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return m, nil
}

// FS exposes the root as an fs.FS.
func (r *Repo) FS() fs.FS { return os.DirFS(r.root) }
