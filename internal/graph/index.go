package graph

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/dusk-indust/frontgen/internal/manifest"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

// DanglingImport is a project-relative import with no file behind it.
type DanglingImport struct {
	File      string `json:"file"`
	Specifier string `json:"specifier"`
	Line      int    `json:"line"`
}

func (d DanglingImport) String() string {
	return fmt.Sprintf("%s:%d: unresolved import %q", d.File, d.Line, d.Specifier)
}

// UndeclaredPackage is an npm import missing from package.json.
type UndeclaredPackage struct {
	File    string `json:"file"`
	Package string `json:"package"`
}

func (u UndeclaredPackage) String() string {
	return fmt.Sprintf("%s: package %q is not declared in package.json", u.File, u.Package)
}

// Report summarizes one indexing pass.
type Report struct {
	Files       int                 `json:"files"`
	Symbols     int                 `json:"symbols"`
	Edges       int                 `json:"edges"`
	Dangling    []DanglingImport    `json:"dangling,omitempty"`
	Undeclared  []UndeclaredPackage `json:"undeclared,omitempty"`
	ParseErrors []string            `json:"parseErrors,omitempty"`
}

// Coherent reports whether every import resolved.
func (r *Report) Coherent() bool {
	return len(r.Dangling) == 0 && len(r.Undeclared) == 0
}

// Problems lists dangling and undeclared imports as messages.
func (r *Report) Problems() []string {
	var out []string
	for _, d := range r.Dangling {
		out = append(out, d.String())
	}
	for _, u := range r.Undeclared {
		out = append(out, u.String())
	}
	return out
}

// ProjectAliases returns DefaultAliases for framework overlaid with the
// paths declared in the project's tsconfig.json, if any.
func ProjectAliases(repo *scaffold.Repo, framework string) map[string]string {
	out := make(map[string]string)
	maps.Copy(out, DefaultAliases(framework))
	if !repo.Exists("tsconfig.json") {
		return out
	}
	data, err := repo.Read("tsconfig.json")
	if err != nil {
		return out
	}
	if fromConfig, err := TSConfigAliases([]byte(data)); err == nil {
		maps.Copy(out, fromConfig)
	}
	return out
}

// IndexOptions tunes Index.
type IndexOptions struct {
	// Aliases maps specifier prefixes to directories, e.g. "@/" -> "src/".
	Aliases map[string]string
	// Include restricts indexing to files matching a glob. Empty indexes
	// every file with a known language.
	Include string
}

// Index parses every source file of repo into store and checks that each
// import resolves to a project file or a declared package. Files that fail
// to parse are recorded and skipped.
func Index(ctx context.Context, repo *scaffold.Repo, store Store, parser Parser, opts IndexOptions) (*Report, error) {
	if err := store.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("graph: init schema: %w", err)
	}

	var all []string
	var err error
	if opts.Include != "" {
		all, err = repo.Glob(opts.Include)
	} else {
		all, err = repo.List()
	}
	if err != nil {
		return nil, fmt.Errorf("graph: list files: %w", err)
	}

	report := &Report{}
	resolver := NewResolver(all, opts.Aliases)
	declared, haveManifest := declaredPackages(repo)

	// Files first: edges need both endpoints stored.
	var parsed []*ParseResult
	for _, rel := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lang, ok := LanguageFor(rel)
		if !ok {
			continue
		}
		src, err := repo.Read(rel)
		if err != nil {
			return nil, fmt.Errorf("graph: %w", err)
		}
		res, err := parser.Parse(ctx, rel, []byte(src), lang)
		if err != nil {
			report.ParseErrors = append(report.ParseErrors, err.Error())
			continue
		}
		if err := store.AddFile(ctx, res.File); err != nil {
			return nil, fmt.Errorf("graph: add file %s: %w", rel, err)
		}
		parsed = append(parsed, res)
	}
	report.Files = len(parsed)

	for _, res := range parsed {
		from := res.File.Path
		for _, sym := range res.Symbols {
			if err := store.AddSymbol(ctx, sym); err != nil {
				return nil, fmt.Errorf("graph: add symbol %s: %w", sym.Name, err)
			}
			if err := store.AddEdge(ctx, Edge{SourceID: from, TargetID: symbolID(from, sym.Name), Kind: EdgeKindDefines}); err != nil {
				return nil, fmt.Errorf("graph: add edge: %w", err)
			}
		}
		report.Symbols += len(res.Symbols)

		undeclared := map[string]bool{}
		for _, imp := range res.Imports {
			r := resolver.Resolve(from, imp.Specifier)
			switch r.Class {
			case ImportLocal:
				if r.Target == from {
					continue
				}
				// Non-source targets (stylesheets, assets) are files but not nodes.
				if _, ok := LanguageFor(r.Target); !ok {
					continue
				}
				if err := store.AddEdge(ctx, Edge{SourceID: from, TargetID: r.Target, Kind: EdgeKindImports}); err != nil {
					return nil, fmt.Errorf("graph: add edge: %w", err)
				}
			case ImportDangling:
				report.Dangling = append(report.Dangling, DanglingImport{File: from, Specifier: imp.Specifier, Line: imp.Line})
			case ImportExternal:
				if haveManifest && !declared[r.Package] && !undeclared[r.Package] {
					undeclared[r.Package] = true
					report.Undeclared = append(report.Undeclared, UndeclaredPackage{File: from, Package: r.Package})
				}
			}
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: stats: %w", err)
	}
	report.Edges = stats.EdgeCount
	sort.SliceStable(report.Undeclared, func(i, j int) bool {
		if report.Undeclared[i].File != report.Undeclared[j].File {
			return report.Undeclared[i].File < report.Undeclared[j].File
		}
		return report.Undeclared[i].Package < report.Undeclared[j].Package
	})
	return report, nil
}

// declaredPackages reads dependency names from the root package.json. The
// second result is false when there is no readable manifest.
func declaredPackages(repo *scaffold.Repo) (map[string]bool, bool) {
	if !repo.Exists("package.json") {
		return nil, false
	}
	data, err := repo.Read("package.json")
	if err != nil {
		return nil, false
	}
	m, err := manifest.Decode([]byte(data))
	if err != nil {
		return nil, false
	}
	declared := map[string]bool{}
	for _, key := range []string{"dependencies", "devDependencies", "peerDependencies"} {
		for name := range manifest.StringMap(m[key]) {
			declared[name] = true
		}
	}
	return declared, true
}
