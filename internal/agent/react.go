package agent

import (
	"context"

	"github.com/dusk-indust/frontgen/internal/manifest"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// ReactAgent generates React single-page applications.
type ReactAgent struct {
	*BaseAgent
}

var _ Agent = (*ReactAgent)(nil)

// NewReactAgent creates the React agent with its operations registered.
func NewReactAgent(opts ...Option) *ReactAgent {
	a := &ReactAgent{BaseAgent: NewBaseAgent(SpecReact, "React Agent", opts...)}
	for _, c := range []string{"components", "hooks", "routing", "state_management", "testing", "pwa", "vite", "webpack"} {
		a.AddCapability(c)
	}
	a.RegisterOperation("generate_react_app", a.generateApp)
	a.RegisterOperation("generate_component", a.generateComponent)
	a.RegisterOperation("generate_hook", a.generateHook)
	a.RegisterOperation("setup_routing", a.setupRouting)
	a.RegisterOperation("setup_state_management", a.setupStateManagement)
	a.RegisterOperation("setup_testing", a.setupTesting)
	a.RegisterOperation("configure_pwa", a.configurePWA)
	a.RegisterOperation("setup_build_tool", a.setupBuildTool)
	return a
}

// Initialize records the React and Vite versions the agent targets.
func (a *ReactAgent) Initialize() {
	a.initialize(map[string]any{
		"react_version": "18.2.0",
		"vite_version":  "5.0.0",
	})
}

func reactDirs(cfg projectcfg.ReactConfig) []string {
	dirs := []string{
		"public",
		"src",
		"src/assets",
		"src/components/ui",
		"src/components/layout",
		"src/hooks",
		"src/styles",
		"src/types",
		"src/utils",
	}
	if cfg.Routing {
		dirs = append(dirs, "src/router")
	}
	if cfg.StateManagement != "" {
		dirs = append(dirs, "src/store")
	}
	if cfg.Testing {
		dirs = append(dirs, "src/__tests__")
	}
	return dirs
}

// plan lists every artifact of a React project in emission order.
func (a *ReactAgent) plan(p project, cfg projectcfg.ReactConfig) *planBuilder {
	pb := newPlanBuilder(p, reactDirs(cfg))
	name := p.schema.Name
	ts := cfg.TypeScript
	jsx := projectcfg.Ext(ts, true)
	mod := projectcfg.Ext(ts, false)

	pb.add("manifest", "package.json", func() string {
		return manifest.MustEncode(manifest.ForReact(render.Kebab(name), cfg))
	})
	switch cfg.BuildTool {
	case projectcfg.BuildVite:
		body := func() string { return reactViteConfig(cfg.Testing, ts) }
		if cfg.Testing {
			pb.add("build", "vite.config"+mod, body)
		} else {
			pb.addTemplate("build", "vite.config"+mod, "react/vite.config", nil, body)
		}
	default:
		// The manifest drives every non-Vite bundler through webpack.
		pb.add("build", "webpack.config.js", func() string { return webpackConfig(ts) })
	}
	if ts {
		pb.add("typescript", "tsconfig.json", reactTSConfig)
		if cfg.BuildTool == projectcfg.BuildVite {
			pb.add("typescript", "src/vite-env.d.ts", viteEnv)
		}
	}
	if cfg.TailwindCSS {
		pb.add("styling", "tailwind.config.js", func() string { return tailwindConfig(true, reactContent) })
		pb.add("styling", "postcss.config.js", func() string { return postcssConfig(true) })
	}

	pb.add("app", "index.html", func() string { return indexHTML(name, "root", "/src/main"+jsx) })
	pb.add("app", "src/main"+jsx, func() string { return reactMain(cfg) })
	pb.add("app", "src/App"+jsx, func() string { return reactApp(name, cfg.Routing) })
	pb.add("app", "src/App.css", reactAppCSS)
	pb.add("app", "src/components/layout/Header"+jsx, func() string { return reactHeader(name, cfg.Routing) })
	pb.add("components", "src/components/ui/Button"+jsx, func() string { return reactButton(ts) })

	if cfg.Routing {
		pb.add("routing", "src/router/index"+jsx, func() string { return reactRouter(p.schema) })
	}
	if file, body := reactStore(cfg.StateManagement, ts); file != "" {
		pb.add("state", file, body)
	}
	if cfg.Testing {
		pb.add("testing", "src/setupTests"+mod, reactSetupTests)
		pb.add("testing", "src/__tests__/App.test"+jsx, func() string { return reactAppTest(name, cfg.BuildTool == projectcfg.BuildVite) })
	}
	if cfg.PWA {
		pb.add("pwa", "public/manifest.json", func() string { return webManifest(name, p.schema.Description) })
	}

	pb.add("styling", "src/index.css", func() string { return globalsCSS(cfg.TailwindCSS) })
	if cfg.ESLint {
		pb.add("lint", ".eslintrc.json", func() string { return reactESLint(ts) })
	}
	if cfg.Prettier {
		pb.add("lint", ".prettierrc", prettierConfig)
	}
	pb.addTemplate("project", ".gitignore", "common/gitignore", nil, func() string { return gitignore("react") })
	pb.addEntityTypes("src/types")
	return pb
}

func reactCommands(cfg projectcfg.ReactConfig) map[string]string {
	return npmCommands(manifest.StringMap(manifest.ForReact("app", cfg)["scripts"]))
}

// PlanProject returns the plan generate_react_app would run for params.
func (a *ReactAgent) PlanProject(params map[string]any) (pipeline.Plan, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_react_app", projectcfg.React, a.withFramework(params))
	if err != nil {
		return pipeline.Plan{}, err
	}
	return a.plan(p, cfg).build(), nil
}

func (a *ReactAgent) generateApp(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_react_app", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	res, err := a.RunPlan(ctx, p.output, a.plan(p, cfg).build())
	if err != nil {
		return nil, err
	}
	return projectResult(p, res, reactCommands(cfg)), nil
}

func (a *ReactAgent) generateComponent(ctx context.Context, params map[string]any) (map[string]any, error) {
	name := firstParam(params, "component_name", "name")
	check := validation.ComponentName(name)
	return a.emitFile(ctx, "generate_component", name, params, check.Errors(), func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		file := "src/components/" + name + projectcfg.Ext(ts, true)
		body := func() string { return reactComponent(name, ts) }
		if ts {
			pb.addTemplate("component", file, "react/component", map[string]any{"component_name": name}, body)
			return
		}
		pb.add("component", file, body)
	})
}

func (a *ReactAgent) generateHook(ctx context.Context, params map[string]any) (map[string]any, error) {
	name := firstParam(params, "hook_name", "name")
	check := validation.HookName(name)
	return a.emitFile(ctx, "generate_hook", name, params, check.Errors(), func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		pb.add("hook", "src/hooks/"+name+projectcfg.Ext(ts, false), func() string { return reactHook(name, ts) })
	})
}

func (a *ReactAgent) setupRouting(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_routing", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.Routing = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForReact(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(manifest.RoutingDeps("react"), nil)
	return a.setup(ctx, a.plan(p, cfg), "routing", base, additions, "routing", "app")
}

func (a *ReactAgent) setupStateManagement(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_state_management", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	base := manifest.ForReact(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(manifest.StateDeps(string(cfg.StateManagement)), nil)
	return a.setup(ctx, a.plan(p, cfg), string(cfg.StateManagement), base, additions, "state", "app")
}

func (a *ReactAgent) setupTesting(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_testing", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.Testing = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForReact(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Testing("react", cfg.BuildTool == projectcfg.BuildVite)
	return a.setup(ctx, a.plan(p, cfg), "testing", base, additions, "testing", "build")
}

func (a *ReactAgent) configurePWA(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "configure_pwa", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.PWA = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForReact(render.Kebab(p.schema.Name), cfg)
	var additions manifest.Manifest
	if cfg.BuildTool == projectcfg.BuildVite {
		additions = manifest.Additions(nil, map[string]string{"vite-plugin-pwa": "^0.17.0"})
	}
	return a.setup(ctx, a.plan(p, cfg), "pwa", base, additions, "pwa")
}

func (a *ReactAgent) setupBuildTool(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_build_tool", projectcfg.React, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	base := manifest.ForReact(render.Kebab(p.schema.Name), cfg)
	dev := manifest.StringMap(base["devDependencies"])
	tools := pick(dev, "vite", "@vitejs/plugin-react", "webpack", "webpack-cli", "webpack-dev-server")
	additions := manifest.Additions(nil, tools)
	additions["scripts"] = pick(manifest.StringMap(base["scripts"]), "dev", "build", "preview")
	return a.setup(ctx, a.plan(p, cfg), string(cfg.BuildTool), base, additions, "build")
}

// pick returns the entries of m whose keys are listed.
func pick(m map[string]string, keys ...string) map[string]string {
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}
