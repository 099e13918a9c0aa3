// Package render is the template backend: named text/template files,
// embedded in the binary and optionally overridden from a directory on disk.
// Rendering fails on any missing context key.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

//go:embed templates
var embedded embed.FS

const ext = ".tmpl"

// Engine renders templates by name ("nextjs/page", "common/gitignore").
type Engine struct {
	templates map[string]*template.Template
}

// Option configures New.
type Option func(*options)

type options struct {
	dir string
}

// WithDir layers templates from dir over the embedded set. Files use the
// same layout: <dir>/<framework>/<name>.tmpl.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// New parses the embedded templates and any overrides.
func New(opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{templates: make(map[string]*template.Template)}
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("open embedded templates: %w", err)
	}
	if err := e.load(sub); err != nil {
		return nil, err
	}
	if o.dir != "" {
		if err := e.load(os.DirFS(o.dir)); err != nil {
			return nil, fmt.Errorf("load templates from %s: %w", o.dir, err)
		}
	}
	return e, nil
}

func (e *Engine) load(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		name := strings.TrimSuffix(p, ext)
		t, err := template.New(path.Base(name)).
			Option("missingkey=error").
			Funcs(funcs).
			Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}
		e.templates[name] = t
		return nil
	})
}

// Has reports whether a template exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.templates[name]
	return ok
}

// Names lists template names in sorted order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.templates))
	for n := range e.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render executes the named template against data.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	t, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"pascal": Pascal,
	"camel":  Camel,
	"kebab":  Kebab,
	"snake":  Snake,
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"jsbool": func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	},
}

var (
	nonAlnum  = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	words     = regexp.MustCompile(`[a-zA-Z0-9]+`)
	humpStart = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Kebab converts "My App" and "MyApp" to "my-app".
func Kebab(s string) string {
	s = humpStart.ReplaceAllString(s, "${1}-${2}")
	return strings.Trim(strings.ToLower(nonAlnum.ReplaceAllString(s, "-")), "-")
}

// Snake converts "My App" and "MyApp" to "my_app".
func Snake(s string) string {
	s = humpStart.ReplaceAllString(s, "${1}_${2}")
	return strings.Trim(strings.ToLower(nonAlnum.ReplaceAllString(s, "_")), "_")
}

// Pascal converts "my-app" to "MyApp". Inner capitals are kept.
func Pascal(s string) string {
	var sb strings.Builder
	for _, w := range words.FindAllString(s, -1) {
		sb.WriteString(strings.ToUpper(w[:1]))
		sb.WriteString(w[1:])
	}
	return sb.String()
}

// Camel converts "my-app" to "myApp".
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}
