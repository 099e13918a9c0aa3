package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var packageSchemaBytes []byte

var (
	packageSchema     *jsonschema.Schema
	packageSchemaOnce sync.Once
	packageSchemaErr  error
	printer           = message.NewPrinter(language.English)
)

// conflictingDependencies are pairs that solve the same problem.
var conflictingDependencies = [][2]string{
	{"styled-components", "@emotion/styled"},
	{"redux", "zustand"},
	{"@reduxjs/toolkit", "zustand"},
	{"vuex", "pinia"},
}

func getPackageSchema() (*jsonschema.Schema, error) {
	packageSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(packageSchemaBytes))
		if err != nil {
			packageSchemaErr = fmt.Errorf("unmarshaling package schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			packageSchemaErr = fmt.Errorf("adding package schema: %w", err)
			return
		}
		packageSchema, packageSchemaErr = c.Compile("package.schema.json")
	})
	return packageSchema, packageSchemaErr
}

// PackageJSON validates raw package.json bytes. Schema violations are
// errors; missing scripts, duplicated or conflicting dependencies and
// unparsable version ranges are warnings.
func PackageJSON(data []byte) Result {
	var r Result
	schema, err := getPackageSchema()
	if err != nil {
		r.Errorf("loading package schema: %v", err)
		return r
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		r.Errorf("package.json is not valid JSON: %v", err)
		return r
	}
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			r.Errorf("validating package.json: %v", err)
			return r
		}
		for _, leaf := range schemaLeaves(ve) {
			r.Add(Issue{Severity: SeverityError, Message: leaf})
		}
		return r
	}

	var pkg struct {
		Name            string            `json:"name"`
		Scripts         map[string]string `json:"scripts"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		r.Errorf("decoding package.json: %v", err)
		return r
	}

	r.Merge(PackageName(pkg.Name))
	for _, script := range []string{"dev", "build"} {
		if _, ok := pkg.Scripts[script]; !ok {
			r.Add(Issue{
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("missing %q script", script),
				Suggestion: "add a " + script + " script",
			})
		}
	}
	for _, name := range sortedKeys(pkg.Dependencies) {
		if _, dup := pkg.DevDependencies[name]; dup {
			r.Warnf("%q is listed in both dependencies and devDependencies", name)
		}
	}

	all := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.DevDependencies {
		all[k] = v
	}
	for k, v := range pkg.Dependencies {
		all[k] = v
	}
	for _, pair := range conflictingDependencies {
		_, a := all[pair[0]]
		_, b := all[pair[1]]
		if a && b {
			r.Warnf("%q and %q are usually not used together", pair[0], pair[1])
		}
	}
	for _, name := range sortedKeys(all) {
		if msg := checkVersionRange(all[name]); msg != "" {
			r.Add(Issue{Severity: SeverityWarning, Message: fmt.Sprintf("dependency %q: %s", name, msg)})
		}
	}
	return r
}

// checkVersionRange returns a problem description for spec, or "" when spec
// is a valid semver range or a non-registry specifier.
func checkVersionRange(spec string) string {
	s := strings.TrimSpace(spec)
	switch {
	case s == "":
		return "empty version"
	case s == "*" || s == "latest" || s == "next":
		return ""
	case strings.Contains(s, ":") || strings.Contains(s, "/"):
		// workspace:, file:, npm:, git and tarball URLs, github shorthands
		return ""
	}
	if _, err := semver.NewConstraint(s); err != nil {
		return fmt.Sprintf("invalid version range %q", spec)
	}
	return ""
}

// schemaLeaves flattens a validation error tree into leaf messages.
func schemaLeaves(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			msg := e.Error()
			if e.ErrorKind != nil {
				msg = e.ErrorKind.LocalizedString(printer)
			}
			out = append(out, fmt.Sprintf("package.json%s: %s", strings.TrimSuffix(loc, "/"), msg))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
