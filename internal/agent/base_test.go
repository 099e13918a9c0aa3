package agent

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/generation"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/render"
)

// testAgent returns a React-specialized BaseAgent with three operations:
// echo returns its params, explode panics and reject fails validation.
func testAgent(opts ...Option) *BaseAgent {
	b := NewBaseAgent(SpecReact, "Test Agent", opts...)
	b.RegisterOperation("echo", func(_ context.Context, params map[string]any) (map[string]any, error) {
		return params, nil
	})
	b.RegisterOperation("explode", func(context.Context, map[string]any) (map[string]any, error) {
		panic("boom")
	})
	b.RegisterOperation("reject", func(context.Context, map[string]any) (map[string]any, error) {
		return nil, errs.Validation("reject", []string{"first", "second"})
	})
	return b
}

func failingGenerator() *generation.Adapter {
	return generation.NewAdapter(generation.BackendFunc(func(context.Context, generation.Request) (string, error) {
		return "", errors.New("backend down")
	}))
}

func fixedGenerator(text string) *generation.Adapter {
	return generation.NewAdapter(generation.BackendFunc(func(context.Context, generation.Request) (string, error) {
		return text, nil
	}))
}

// nilMapTemplates is a template backend that panics on every render.
type nilMapTemplates struct{}

func (nilMapTemplates) Render(string, map[string]any) (string, error) {
	var m map[string]string
	m["x"] = "y"
	return "", nil
}

func TestBaseAgent_Identity(t *testing.T) {
	a := testAgent()
	b := testAgent()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "Test Agent", a.Name())
	assert.Equal(t, SpecReact, a.Specialization())
}

func TestBaseAgent_Capabilities(t *testing.T) {
	a := testAgent()
	a.AddCapability("routing")
	a.AddCapability("components")
	a.AddCapability("routing")

	assert.Equal(t, []string{"components", "routing"}, a.Capabilities())
	assert.True(t, a.HasCapability("routing"))
	assert.False(t, a.HasCapability("ssr"))
}

func TestBaseAgent_Metadata(t *testing.T) {
	a := testAgent()
	a.Initialize()

	assert.Equal(t, "react", a.GetMetadata("specialization", nil))
	assert.Equal(t, 3, a.GetMetadata("operations", nil))
	assert.Equal(t, "fallback", a.GetMetadata("missing", "fallback"))

	md := a.Metadata()
	md["name"] = "changed"
	assert.Equal(t, "Test Agent", a.GetMetadata("name", nil), "Metadata returns a copy")
}

func TestBaseAgent_Operations(t *testing.T) {
	a := testAgent()
	assert.Equal(t, []string{"echo", "explode", "reject"}, a.Operations())
	assert.Equal(t, []string{"echo", "explode", "reject"}, a.Handlers())
}

func TestBaseAgent_ExecuteTask_ExactName(t *testing.T) {
	a := testAgent()
	res := a.ExecuteTask(context.Background(), Task{ID: "t-1", Name: "Echo", Params: map[string]any{"k": "v"}})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "t-1", res.TaskID)
	assert.Equal(t, "v", res.Result["k"])
}

func TestBaseAgent_ExecuteTask_ContainedName(t *testing.T) {
	a := testAgent()
	res := a.ExecuteTask(context.Background(), Task{Name: "please echo this back"})

	require.True(t, res.Success, res.Error)
	assert.NotEmpty(t, res.TaskID, "an empty task id is replaced")
	assert.NotNil(t, res.Result)
}

func TestBaseAgent_ExecuteTask_UnknownTask(t *testing.T) {
	a := testAgent()
	res := a.ExecuteTask(context.Background(), Task{ID: "t-2", Name: "compile_everything"})

	assert.False(t, res.Success)
	assert.Equal(t, "t-2", res.TaskID)
	assert.Equal(t, errs.KindUnknownOperation, res.Kind)
	assert.Contains(t, res.Error, `task not recognized: "compile_everything"`)
}

func TestBaseAgent_ExecuteTask_RecoversPanic(t *testing.T) {
	a := testAgent()
	res := a.ExecuteTask(context.Background(), Task{Name: "explode"})

	assert.False(t, res.Success)
	assert.Equal(t, errs.KindInternal, res.Kind)
	assert.Contains(t, res.Error, "boom")
}

func TestBaseAgent_ExecuteTask_ReportsEveryProblem(t *testing.T) {
	a := testAgent()
	res := a.ExecuteTask(context.Background(), Task{Name: "reject"})

	assert.False(t, res.Success)
	assert.Equal(t, errs.KindValidation, res.Kind)
	assert.Contains(t, res.Error, "first")
	assert.Contains(t, res.Error, "second")
}

func TestBaseAgent_HandleRequest(t *testing.T) {
	a := testAgent()

	resp := a.HandleRequest(context.Background(), Request{ID: "r-1", Action: "echo", Data: map[string]any{"n": 1}})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "r-1", resp.RequestID)
	assert.Equal(t, 1, resp.Result["n"])

	resp = a.HandleRequest(context.Background(), Request{Action: "please echo"})
	assert.False(t, resp.Success, "requests never fall back to substring matching")
	assert.Equal(t, errs.KindUnknownOperation, resp.Kind)
	assert.Contains(t, resp.Error, `action not supported: "please echo"`)
	assert.NotEmpty(t, resp.RequestID)
}

func TestBaseAgent_RegisterHandler_LastWins(t *testing.T) {
	a := testAgent()
	a.RegisterHandler("echo", func(context.Context, map[string]any) (map[string]any, error) {
		return map[string]any{"replaced": true}, nil
	})

	resp := a.HandleRequest(context.Background(), Request{Action: "echo"})
	require.True(t, resp.Success)
	assert.Equal(t, true, resp.Result["replaced"])
}

func TestBaseAgent_NilResultBecomesEmptyMap(t *testing.T) {
	a := testAgent()
	a.RegisterOperation("noop", func(context.Context, map[string]any) (map[string]any, error) {
		return nil, nil
	})

	res := a.ExecuteTask(context.Background(), Task{Name: "noop"})
	require.True(t, res.Success)
	assert.NotNil(t, res.Result)
	assert.Empty(t, res.Result)
}

func TestBaseAgent_CanHandleFramework(t *testing.T) {
	a := NewBaseAgent(SpecNextJS, "Next.js Agent")
	tests := []struct {
		name string
		want bool
	}{
		{"nextjs", true},
		{"NextJS", true},
		{"next", true},
		{"js", true},
		{"react", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.CanHandleFramework(tt.name))
		})
	}
}

func TestBaseAgent_ValidateFrontendRequest(t *testing.T) {
	a := NewBaseAgent(SpecVue, "Vue Agent")

	assert.Equal(t, []string{"output_path is required", "framework is required"}, a.ValidateFrontendRequest(map[string]any{}))
	assert.Equal(t, []string{`framework "react" is not handled by the vue agent`},
		a.ValidateFrontendRequest(map[string]any{"output_path": "out", "framework": "react"}))
	assert.Empty(t, a.ValidateFrontendRequest(map[string]any{"output_path": "out", "framework": "vue"}))
}

func TestBaseAgent_ValidateFrontendRequest_UIDesign(t *testing.T) {
	a := NewBaseAgent(SpecUIDesign, "UI Design Agent")

	assert.Empty(t, a.ValidateFrontendRequest(map[string]any{"output_path": "out"}), "framework is optional")
	assert.Empty(t, a.ValidateFrontendRequest(map[string]any{"output_path": "out", "framework": "svelte"}))
	problems := a.ValidateFrontendRequest(map[string]any{"output_path": "out", "framework": "ember"})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "ember")
}

func TestBaseAgent_CheckRequest_Kinds(t *testing.T) {
	a := NewBaseAgent(SpecReact, "React Agent")

	err := a.checkRequest("op", map[string]any{"framework": "vue"})
	require.Error(t, err)
	assert.Equal(t, errs.KindUnsupportedFramework, errs.KindOf(err))
	assert.Len(t, errs.ProblemsOf(err), 2)

	err = a.checkRequest("op", map[string]any{"framework": "react", "output_path": "out"}, "name is required")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, []string{"name is required"}, errs.ProblemsOf(err))

	assert.NoError(t, a.checkRequest("op", map[string]any{"framework": "react", "output_path": "out"}))
}

func TestBaseAgent_CallLLMForGeneration(t *testing.T) {
	ctx := context.Background()
	genCtx := map[string]any{"component_name": "Card"}

	without := NewBaseAgent(SpecReact, "React Agent")
	out := without.CallLLMForGeneration(ctx, "make a card", genCtx)
	assert.Contains(t, out, "Card")

	failing := NewBaseAgent(SpecReact, "React Agent", WithGenerator(failingGenerator()))
	assert.Equal(t, out, failing.CallLLMForGeneration(ctx, "make a card", genCtx))

	working := NewBaseAgent(SpecReact, "React Agent", WithGenerator(fixedGenerator("export const Card = 1\n")))
	assert.Equal(t, "export const Card = 1\n", working.CallLLMForGeneration(ctx, "make a card", genCtx))
}

func TestBaseAgent_RenderTemplate(t *testing.T) {
	engine, err := render.New()
	require.NoError(t, err)
	ctx := context.Background()
	data := render.Context("react", "component", map[string]any{"component_name": "Card"})

	a := NewBaseAgent(SpecReact, "React Agent", WithTemplates(engine))
	assert.Contains(t, a.RenderTemplate(ctx, "react/component", data), "CardProps")

	out := a.RenderTemplate(ctx, "react/missing", data)
	assert.NotEmpty(t, out, "a missing template falls back to generation and then the placeholder")
}

func TestBaseAgent_RenderTemplate_PanickingBackend(t *testing.T) {
	ctx := context.Background()
	a := NewBaseAgent(SpecReact, "React Agent", WithTemplates(nilMapTemplates{}), WithGenerator(fixedGenerator("generated\n")))

	var out string
	require.NotPanics(t, func() { out = a.RenderTemplate(ctx, "react/component", nil) })
	assert.Equal(t, "generated\n", out)
}

func TestBaseAgent_ExecuteTask_PanickingTemplates(t *testing.T) {
	dir := t.TempDir()
	a := spawn(NewNextJSAgent(WithTemplates(nilMapTemplates{}), WithParallelism(4)))

	var res TaskResult
	require.NotPanics(t, func() {
		res = a.ExecuteTask(context.Background(), Task{Name: "generate_nextjs_app", Params: map[string]any{"output_path": dir}})
	})
	require.True(t, res.Success, res.Error)
	assert.FileExists(t, filepath.Join(dir, "package.json"))
}

func TestBaseAgent_Produce_Tiers(t *testing.T) {
	engine, err := render.New()
	require.NoError(t, err)
	ctx := context.Background()
	art := pipeline.Artifact{
		Path:     "src/components/Card.tsx",
		Template: "react/component",
		Context:  render.Context("react", "component", map[string]any{"component_name": "Card"}),
		Fallback: func() string { return "static body\n" },
	}

	tests := []struct {
		name  string
		opts  []Option
		art   pipeline.Artifact
		tier  pipeline.Tier
		check func(t *testing.T, out string)
	}{
		{
			name: "template first",
			opts: []Option{WithTemplates(engine), WithGenerator(fixedGenerator("generated\n"))},
			art:  art,
			tier: pipeline.TierTemplate,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "CardProps")
			},
		},
		{
			name: "generation without a template",
			opts: []Option{WithGenerator(fixedGenerator("generated\n"))},
			art:  art,
			tier: pipeline.TierGenerated,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "generated\n", out)
			},
		},
		{
			name: "static when generation fails",
			opts: []Option{WithGenerator(failingGenerator())},
			art:  art,
			tier: pipeline.TierStatic,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "static body\n", out)
			},
		},
		{
			name: "deterministic skips everything else",
			opts: []Option{WithTemplates(engine), WithGenerator(fixedGenerator("generated\n"))},
			art: func() pipeline.Artifact {
				a := art
				a.Deterministic = true
				return a
			}(),
			tier: pipeline.TierStatic,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "static body\n", out)
			},
		},
		{
			name: "panicking template falls through to generation",
			opts: []Option{WithTemplates(nilMapTemplates{}), WithGenerator(fixedGenerator("generated\n"))},
			art:  art,
			tier: pipeline.TierGenerated,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "generated\n", out)
			},
		},
		{
			name: "panicking static body becomes the placeholder",
			art: pipeline.Artifact{
				Path:     "x.tsx",
				Context:  map[string]any{"component_name": "Card"},
				Fallback: func() string { panic("no body") },
			},
			tier: pipeline.TierStatic,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "Card")
			},
		},
		{
			name: "placeholder without any body",
			art:  pipeline.Artifact{Path: "x.tsx", Context: map[string]any{"component_name": "Card"}},
			tier: pipeline.TierStatic,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "Card")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBaseAgent(SpecReact, "React Agent", tt.opts...)
			out, tier := a.Produce(ctx, tt.art)
			assert.Equal(t, tt.tier, tier)
			tt.check(t, out)
		})
	}
}

func TestBaseAgent_ValidateGeneratedCode(t *testing.T) {
	a := NewBaseAgent(SpecReact, "React Agent")
	empty := a.ValidateGeneratedCode("", "typescript")
	assert.False(t, empty.Valid())
	ok := a.ValidateGeneratedCode("export const x = 1\n", "typescript")
	assert.True(t, ok.Valid())
}

func TestBaseAgent_DispatchProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	a := testAgent()
	ctx := context.Background()

	properties.Property("task dispatch always answers with a task id", prop.ForAll(
		func(name string) bool {
			res := a.ExecuteTask(ctx, Task{Name: name})
			if res.TaskID == "" {
				return false
			}
			if res.Success {
				return true
			}
			return res.Error != "" && res.Kind != errs.KindNone
		},
		gen.AnyString(),
	))

	properties.Property("names containing an operation dispatch to it", prop.ForAll(
		func(prefix, suffix string) bool {
			res := a.ExecuteTask(ctx, Task{Name: prefix + " echo " + suffix})
			return res.Success
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestBaseAgent_FallbackProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	ctx := context.Background()
	agents := []*BaseAgent{
		NewBaseAgent(SpecNextJS, "Next.js Agent"),
		NewBaseAgent(SpecVue, "Vue Agent", WithGenerator(failingGenerator())),
		NewBaseAgent(SpecUIDesign, "UI Design Agent", WithGenerator(fixedGenerator("   "))),
	}

	properties.Property("generation never yields empty text", prop.ForAll(
		func(prompt, component string) bool {
			for _, a := range agents {
				out := a.CallLLMForGeneration(ctx, prompt, map[string]any{"component_name": component})
				if strings.TrimSpace(out) == "" {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("validation problems accumulate", prop.ForAll(
		func(framework string) bool {
			a := agents[0]
			problems := a.ValidateFrontendRequest(map[string]any{"framework": framework})
			// output_path is always missing here.
			return len(problems) >= 1 && problems[0] == "output_path is required"
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
