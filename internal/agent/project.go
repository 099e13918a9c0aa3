package agent

import (
	"context"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/dusk-indust/frontgen/internal/generation"
	"github.com/dusk-indust/frontgen/internal/manifest"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

// project is what every artifact of one generation call shares.
type project struct {
	framework string
	output    string
	schema    projectcfg.ProjectSchema
	config    map[string]any
}

// prepare validates params, strictly extracts the framework config and
// reads the schema. Validation problems are reported before configuration
// problems and nothing is written in either case.
func prepare[T any](b *BaseAgent, op string, builder projectcfg.Builder[T], params map[string]any) (project, T, error) {
	var zero T
	if err := b.checkRequest(op, params); err != nil {
		return project{}, zero, err
	}
	cfg, err := builder.Extract(params)
	if err != nil {
		return project{}, zero, err
	}
	return project{
		framework: builder.Framework(),
		output:    stringParam(params, "output_path"),
		schema:    projectcfg.SchemaFrom(params),
		config:    projectcfg.Echo(cfg),
	}, cfg, nil
}

// withFramework defaults params["framework"] to the agent's own
// specialization for operations where naming the framework is optional.
func (b *BaseAgent) withFramework(params map[string]any) map[string]any {
	if b.specialization == SpecUIDesign || stringParam(params, "framework") != "" {
		return params
	}
	out := maps.Clone(params)
	if out == nil {
		out = map[string]any{}
	}
	out["framework"] = string(b.specialization)
	return out
}

// planBuilder assembles a plan and remembers the concern each artifact
// belongs to so setup operations can emit a single concern.
type planBuilder struct {
	project  project
	plan     pipeline.Plan
	concerns []string
	flags    string
}

func newPlanBuilder(p project, dirs []string) *planBuilder {
	keys := slices.Sorted(maps.Keys(p.config))
	flags := make([]string, 0, len(keys))
	for _, k := range keys {
		flags = append(flags, fmt.Sprintf("%s=%v", k, p.config[k]))
	}
	return &planBuilder{
		project: p,
		plan:    pipeline.Plan{Framework: p.framework, Dirs: dirs},
		flags:   strings.Join(flags, ", "),
	}
}

// add appends an artifact produced from body unless a backend does better.
func (pb *planBuilder) add(concern, file string, body func() string) {
	pb.addTemplate(concern, file, "", nil, body)
}

// addTemplate appends an artifact that renders tmpl first. extra is merged
// over the project's template data.
func (pb *planBuilder) addTemplate(concern, file, tmpl string, extra map[string]any, body func() string) {
	base := maps.Clone(pb.project.config)
	if base == nil {
		base = map[string]any{}
	}
	base["project_name"] = pb.project.schema.Name
	base["description"] = pb.project.schema.Description
	maps.Copy(base, extra)

	name := path.Base(file)
	if tmpl != "" {
		name = path.Base(tmpl)
	}
	prompt := fmt.Sprintf("Generate the contents of %s for the %s project %q (%s). Configuration: %s. Reply with the file contents only.",
		file, pb.project.framework, pb.project.schema.Name, pb.project.schema.Description, pb.flags)
	art := pipeline.Artifact{
		Path:     file,
		Template: tmpl,
		Context:  render.Context(pb.project.framework, name, base),
		Prompt:   prompt,
		Language: languageOf(file),
		Fallback: body,
	}
	if path.Ext(file) == ".json" {
		art.Format = generation.FormatJSON
	}
	pb.plan.Add(art)
	pb.concerns = append(pb.concerns, concern)
}

// build returns the full plan.
func (pb *planBuilder) build() pipeline.Plan {
	return pb.plan
}

// only returns the artifacts of the given concerns, without directories.
func (pb *planBuilder) only(concerns ...string) pipeline.Plan {
	out := pipeline.Plan{Framework: pb.plan.Framework}
	for i, art := range pb.plan.Artifacts {
		if slices.Contains(concerns, pb.concerns[i]) {
			out.Add(art)
		}
	}
	return out
}

// languageOf maps a file to the language used for code annotation.
func languageOf(file string) string {
	switch path.Ext(file) {
	case ".ts":
		return "typescript"
	case ".tsx":
		return "tsx"
	case ".js", ".cjs", ".mjs":
		return "javascript"
	case ".jsx":
		return "jsx"
	case ".vue":
		return "vue"
	case ".json":
		return "json"
	}
	return ""
}

// manifestUpdate merges additions into the package.json already under
// output. Without one (or with one that does not parse) it writes base
// merged with additions.
func manifestUpdate(output string, base, additions manifest.Manifest) func() string {
	return func() string {
		if repo, err := scaffold.NewRepo(output); err == nil && repo.Exists("package.json") {
			if data, err := repo.Read("package.json"); err == nil {
				if current, err := manifest.Decode([]byte(data)); err == nil {
					return manifest.MustEncode(manifest.Merge(current, additions))
				}
			}
		}
		return manifest.MustEncode(manifest.Merge(base, additions))
	}
}

// addEntityTypes emits one interface per schema entity under dir.
func (pb *planBuilder) addEntityTypes(dir string) {
	for _, e := range pb.project.schema.Entities {
		pb.add("types", path.Join(dir, typeName(e.Name)+".ts"), func() string { return entityInterface(e) })
	}
}

func typeName(name string) string {
	return render.Pascal(name)
}

func entityInterface(e projectcfg.Entity) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s\nexport interface %s {\n", render.GeneratedBy, typeName(e.Name))
	fields := e.Fields
	if len(fields) == 0 {
		fields = []projectcfg.EntityField{{Name: "id", Type: "string"}}
	}
	for _, f := range fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		fmt.Fprintf(&sb, "  %s%s: %s\n", render.Camel(f.Name), opt, projectcfg.TSType(f.Type))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// projectResult is the summary returned by full-project operations.
func projectResult(p project, res *pipeline.Result, commands map[string]string) map[string]any {
	return map[string]any{
		"framework":       p.framework,
		"config":          p.config,
		"generated_files": res.Files,
		"directories":     res.Dirs,
		"output_path":     p.output,
		"next_steps":      nextSteps(p, commands),
		"run_commands":    commands,
		"sources":         sourceMap(res),
		"warnings":        warnings(res),
		"changes":         changes(res),
	}
}

// setupResult is the summary returned by setup operations.
func setupResult(concern string, res *pipeline.Result) map[string]any {
	return map[string]any{
		"configured": concern,
		"files":      res.Files,
		"sources":    sourceMap(res),
		"warnings":   warnings(res),
		"changes":    changes(res),
	}
}

// fileResult is the summary returned by single-file operations.
func fileResult(framework, name string, res *pipeline.Result) map[string]any {
	file := ""
	if len(res.Files) > 0 {
		file = res.Files[0]
	}
	return map[string]any{
		"file":      file,
		"framework": framework,
		"name":      name,
		"tier":      string(res.Sources[file]),
		"warnings":  warnings(res),
	}
}

func sourceMap(res *pipeline.Result) map[string]string {
	out := make(map[string]string, len(res.Sources))
	for k, v := range res.Sources {
		out[k] = string(v)
	}
	return out
}

func warnings(res *pipeline.Result) []string {
	if res.Warnings == nil {
		return []string{}
	}
	return res.Warnings
}

func changes(res *pipeline.Result) map[string]int {
	return map[string]int{
		"created":   res.Changes.Created,
		"updated":   res.Changes.Updated,
		"unchanged": res.Changes.Unchanged,
	}
}

func nextSteps(p project, commands map[string]string) []string {
	steps := []string{"cd " + p.output}
	if c, ok := commands["install"]; ok {
		steps = append(steps, c)
	}
	if c, ok := commands["dev"]; ok {
		steps = append(steps, c)
		steps = append(steps, fmt.Sprintf("Open http://localhost:%d", render.DevPort(p.framework)))
	}
	return steps
}

// npmCommands maps command names to npm invocations of package scripts.
func npmCommands(scripts map[string]string) map[string]string {
	out := map[string]string{"install": "npm install"}
	for name := range scripts {
		switch name {
		case "dev", "build", "lint", "preview":
			out[name] = "npm run " + name
		case "start", "test":
			out[name] = "npm " + name
		}
	}
	return out
}

// emitFile runs a single-artifact plan built by build after validating
// params and the name problems collected by the caller.
func (b *BaseAgent) emitFile(ctx context.Context, op, name string, params map[string]any, nameProblems []string, build func(pb *planBuilder)) (map[string]any, error) {
	params = b.withFramework(params)
	if err := b.checkRequest(op, params, nameProblems...); err != nil {
		return nil, err
	}
	p := project{
		framework: b.framework(),
		output:    stringParam(params, "output_path"),
		schema:    projectcfg.SchemaFrom(params),
		config:    map[string]any{"typescript": boolParam(params, "typescript", true)},
	}
	pb := newPlanBuilder(p, nil)
	build(pb)
	res, err := b.RunPlan(ctx, p.output, pb.build())
	if err != nil {
		return nil, err
	}
	return fileResult(p.framework, name, res), nil
}

// setup emits only the artifacts of concerns. Non-empty additions are merged
// into the project's package.json as part of the same run.
func (b *BaseAgent) setup(ctx context.Context, pb *planBuilder, label string, base, additions manifest.Manifest, concerns ...string) (map[string]any, error) {
	plan := pb.only(concerns...)
	if len(additions) > 0 {
		plan.Add(pipeline.Artifact{
			Path:          "package.json",
			Language:      "json",
			Fallback:      manifestUpdate(pb.project.output, base, additions),
			Deterministic: true,
		})
	}
	res, err := b.RunPlan(ctx, pb.project.output, plan)
	if err != nil {
		return nil, err
	}
	return setupResult(label, res), nil
}
