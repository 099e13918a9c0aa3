package validation

import (
	"errors"
	"io/fs"
	"strings"
)

var requiredFiles = map[string][]string{
	"nextjs": {"package.json", "next.config.js"},
	"react":  {"package.json", "index.html"},
	"vue":    {"package.json", "index.html"},
}

var requiredDirs = map[string][]string{
	"react": {"src"},
	"vue":   {"src"},
}

// ProjectStructure checks that a generated project tree holds the files a
// framework's tooling expects.
func ProjectStructure(fsys fs.FS, framework string) Result {
	var r Result
	fw := strings.ToLower(framework)
	if !IsSupportedFramework(fw) {
		r.Errorf("unsupported framework %q", framework)
		return r
	}

	files, ok := requiredFiles[fw]
	if !ok {
		files = []string{"package.json"}
	}
	for _, f := range files {
		info, err := fs.Stat(fsys, f)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.Add(Issue{Severity: SeverityError, Message: "missing required file", File: f})
		case err != nil:
			r.Add(Issue{Severity: SeverityError, Message: err.Error(), File: f})
		case info.IsDir():
			r.Add(Issue{Severity: SeverityError, Message: "expected a file, found a directory", File: f})
		}
	}
	for _, d := range requiredDirs[fw] {
		info, err := fs.Stat(fsys, d)
		if err != nil || !info.IsDir() {
			r.Add(Issue{Severity: SeverityError, Message: "missing required directory", File: d})
		}
	}

	if fw == "nextjs" {
		_, appErr := fs.Stat(fsys, "app")
		_, pagesErr := fs.Stat(fsys, "pages")
		if appErr != nil && pagesErr != nil {
			r.Add(Issue{
				Severity:   SeverityError,
				Message:    "neither app/ nor pages/ exists",
				Suggestion: "Next.js needs a router directory",
			})
		}
	}
	if _, err := fs.Stat(fsys, "tsconfig.json"); err == nil {
		if data, err := fs.ReadFile(fsys, "tsconfig.json"); err == nil {
			ts := TSConfig(data)
			ts.InFile("tsconfig.json")
			r.Merge(ts)
		}
	}
	if data, err := fs.ReadFile(fsys, "package.json"); err == nil {
		pkg := PackageJSON(data)
		pkg.InFile("package.json")
		r.Merge(pkg)
	}
	return r
}
