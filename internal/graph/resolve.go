package graph

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ImportClass says where an import specifier points.
type ImportClass string

const (
	ImportLocal    ImportClass = "local"    // a file of the project
	ImportDangling ImportClass = "dangling" // a project path with no file behind it
	ImportExternal ImportClass = "external" // an npm package
	ImportBuiltin  ImportClass = "builtin"  // node: or virtual: modules
)

// Resolution is the outcome of resolving one specifier.
type Resolution struct {
	Class ImportClass
	// Target is the project file for local imports and the attempted path
	// for dangling ones.
	Target string
	// Package is the npm package name for external imports.
	Package string
}

// probeSuffixes are tried in order after the bare specifier.
var probeSuffixes = []string{
	".ts", ".tsx", ".js", ".jsx", ".vue", ".d.ts",
	"/index.ts", "/index.tsx", "/index.js", "/index.jsx",
}

var nodeBuiltins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "crypto": true,
	"events": true, "fs": true, "http": true, "https": true, "module": true,
	"net": true, "os": true, "path": true, "process": true, "stream": true,
	"url": true, "util": true, "zlib": true,
}

// Resolver maps raw import specifiers onto project files. Paths are
// slash-separated and relative to the project root.
type Resolver struct {
	files   map[string]bool
	aliases []alias
}

type alias struct {
	prefix string
	target string
}

// NewResolver builds a Resolver for the given project files. aliases maps
// a specifier prefix such as "@/" to a directory prefix such as "src/".
func NewResolver(files []string, aliases map[string]string) *Resolver {
	r := &Resolver{files: make(map[string]bool, len(files))}
	for _, f := range files {
		r.files[f] = true
	}
	for prefix, target := range aliases {
		r.aliases = append(r.aliases, alias{prefix: prefix, target: target})
	}
	// Longest prefix first so "@/components/" beats "@/".
	sort.Slice(r.aliases, func(i, j int) bool {
		if len(r.aliases[i].prefix) != len(r.aliases[j].prefix) {
			return len(r.aliases[i].prefix) > len(r.aliases[j].prefix)
		}
		return r.aliases[i].prefix < r.aliases[j].prefix
	})
	return r
}

// Resolve classifies specifier as imported from the file at from.
func (r *Resolver) Resolve(from, specifier string) Resolution {
	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"), specifier == ".", specifier == "..":
		return r.probe(path.Join(path.Dir(from), specifier))
	case strings.HasPrefix(specifier, "/"):
		return r.probe(strings.TrimPrefix(path.Clean(specifier), "/"))
	case strings.HasPrefix(specifier, "node:"), strings.HasPrefix(specifier, "virtual:"):
		return Resolution{Class: ImportBuiltin}
	}
	for _, a := range r.aliases {
		if strings.HasPrefix(specifier, a.prefix) {
			return r.probe(path.Join(a.target, strings.TrimPrefix(specifier, a.prefix)))
		}
	}
	pkg := PackageName(specifier)
	if nodeBuiltins[pkg] {
		return Resolution{Class: ImportBuiltin}
	}
	return Resolution{Class: ImportExternal, Package: pkg}
}

func (r *Resolver) probe(base string) Resolution {
	base = strings.TrimPrefix(path.Clean(base), "./")
	if r.files[base] {
		return Resolution{Class: ImportLocal, Target: base}
	}
	for _, suffix := range probeSuffixes {
		if candidate := base + suffix; r.files[candidate] {
			return Resolution{Class: ImportLocal, Target: candidate}
		}
	}
	return Resolution{Class: ImportDangling, Target: base}
}

// PackageName returns the npm package a bare specifier names:
// "@scope/pkg/sub" -> "@scope/pkg", "next/link" -> "next".
func PackageName(specifier string) string {
	parts := strings.SplitN(specifier, "/", 3)
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// DefaultAliases are the path aliases the generated projects configure:
// Next.js maps "@/" to the project root, Vite projects map it to src/.
func DefaultAliases(framework string) map[string]string {
	switch framework {
	case "nextjs":
		return map[string]string{"@/": ""}
	case "react", "vue":
		return map[string]string{"@/": "src/"}
	}
	return nil
}

// TSConfigAliases reads compilerOptions.paths from a tsconfig.json.
// Comments and trailing commas are tolerated. Only wildcard entries of the
// form "prefix/*": ["dir/*"] are returned.
func TSConfigAliases(data []byte) (map[string]string, error) {
	var cfg struct {
		CompilerOptions struct {
			BaseURL string              `json:"baseUrl"`
			Paths   map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return nil, fmt.Errorf("parse tsconfig: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &cfg); err != nil {
			return nil, fmt.Errorf("parse tsconfig: %w", err)
		}
	}

	out := make(map[string]string)
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if !strings.HasSuffix(pattern, "/*") || len(targets) == 0 || !strings.HasSuffix(targets[0], "/*") {
			continue
		}
		dir := path.Join(cfg.CompilerOptions.BaseURL, strings.TrimSuffix(targets[0], "/*"))
		dir = strings.TrimPrefix(path.Clean(dir), "./")
		if dir == "." {
			dir = ""
		} else {
			dir += "/"
		}
		out[strings.TrimSuffix(pattern, "*")] = dir
	}
	return out, nil
}
