package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/validation"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseSets turns key=value pairs into a parameter bag. Values are read as
// YAML scalars, so "true" is a bool and "3" an int; a,b,c style values stay
// strings.
func parseSets(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", p)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}

// printOutcome renders an operation result as a short human summary.
func printOutcome(w io.Writer, success bool, result map[string]any, errMsg, kind string) {
	if !success {
		fmt.Fprintf(w, "%s %s %s\n", red("failed:"), errMsg, gray("("+kind+")"))
		return
	}
	if path, ok := result["output_path"].(string); ok {
		fmt.Fprintf(w, "%s %s\n", green("generated"), bold(path))
	}
	for _, key := range []string{"generated_files", "files"} {
		for _, f := range stringList(result[key]) {
			fmt.Fprintf(w, "  %s %s\n", green("+"), f)
		}
	}
	if f, ok := result["file"].(string); ok {
		fmt.Fprintf(w, "%s %s\n", green("created"), f)
	}
	if c, ok := result["configured"].(string); ok {
		fmt.Fprintf(w, "%s %s\n", green("configured"), c)
	}
	for _, warn := range stringList(result["warnings"]) {
		fmt.Fprintf(w, "%s %s\n", yellow("warning:"), warn)
	}
	if cmds, ok := result["run_commands"].(map[string]string); ok && len(cmds) > 0 {
		fmt.Fprintln(w, bold("\nRun:"))
		for _, name := range slices.Sorted(maps.Keys(cmds)) {
			fmt.Fprintf(w, "  %-8s %s\n", name, cyan(cmds[name]))
		}
	}
	if steps := stringList(result["next_steps"]); len(steps) > 0 {
		fmt.Fprintln(w, bold("\nNext steps:"))
		for i, s := range steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// printValidation renders a validation result; it reports whether the
// result is valid.
func printValidation(w io.Writer, subject string, r validation.Result) bool {
	if r.Valid() {
		fmt.Fprintf(w, "%s %s\n", green("valid:"), subject)
	} else {
		fmt.Fprintf(w, "%s %s\n", red("invalid:"), subject)
	}
	for _, issue := range r.Issues {
		mark := gray("-")
		switch issue.Severity {
		case validation.SeverityError:
			mark = red("x")
		case validation.SeverityWarning:
			mark = yellow("!")
		}
		fmt.Fprintf(w, "  %s %s\n", mark, issue.String())
	}
	return r.Valid()
}

// progressPrinter reports artifact progress events as they arrive.
func progressPrinter(w io.Writer) func(pipeline.ProgressEvent) {
	return func(ev pipeline.ProgressEvent) {
		switch ev.Status {
		case pipeline.ProgressComplete:
			fmt.Fprintf(w, "  %s %s %s\n", green("done"), ev.Artifact, gray(string(ev.Tier)))
		case pipeline.ProgressFailed:
			fmt.Fprintf(w, "  %s %s %s\n", red("fail"), ev.Artifact, ev.Message)
		}
	}
}
