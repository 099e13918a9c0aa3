package agent

import (
	"context"
	"path"
	"strings"

	"github.com/dusk-indust/frontgen/internal/manifest"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// NextJSAgent generates Next.js applications with the app or pages router.
type NextJSAgent struct {
	*BaseAgent
}

var _ Agent = (*NextJSAgent)(nil)

// NewNextJSAgent creates the Next.js agent with its operations registered.
func NewNextJSAgent(opts ...Option) *NextJSAgent {
	a := &NextJSAgent{BaseAgent: NewBaseAgent(SpecNextJS, "Next.js Agent", opts...)}
	for _, c := range []string{"app_router", "pages_router", "server_components", "api_routes", "typescript", "tailwind_css", "ssr", "ssg"} {
		a.AddCapability(c)
	}
	a.RegisterOperation("generate_nextjs_app", a.generateApp)
	a.RegisterOperation("generate_component", a.generateComponent)
	a.RegisterOperation("generate_page", a.generatePage)
	a.RegisterOperation("generate_layout", a.generateLayout)
	a.RegisterOperation("setup_routing", a.setupRouting)
	a.RegisterOperation("configure_typescript", a.configureTypeScript)
	a.RegisterOperation("integrate_tailwind", a.integrateTailwind)
	a.RegisterOperation("generate_api_route", a.generateAPIRoute)
	return a
}

// Initialize records the Next.js and React versions the agent targets.
func (a *NextJSAgent) Initialize() {
	a.initialize(map[string]any{
		"nextjs_version": "14.0.0",
		"react_version":  "18.0.0",
	})
}

func nextjsDirs(cfg projectcfg.NextJSConfig) []string {
	dirs := []string{
		"public",
		"styles",
		"components/ui",
		"components/layout",
		"components/features",
		"lib",
		"hooks",
		"types",
		"utils",
	}
	if cfg.AppRouter {
		return append(dirs, "app", "app/api", "app/components")
	}
	return append(dirs, "pages", "pages/api")
}

// plan lists every artifact of a Next.js project in emission order.
func (a *NextJSAgent) plan(p project, cfg projectcfg.NextJSConfig) *planBuilder {
	pb := newPlanBuilder(p, nextjsDirs(cfg))
	name := p.schema.Name
	compExt := projectcfg.Ext(cfg.TypeScript, true)
	pageExt := ".js"
	if cfg.TypeScript {
		pageExt = ".tsx"
	}

	pb.add("manifest", "package.json", func() string {
		return manifest.MustEncode(manifest.ForNextJS(render.Kebab(name), cfg))
	})
	pb.addTemplate("config", "next.config.js", "nextjs/next.config", nil, func() string { return nextConfig(cfg) })
	if cfg.TypeScript {
		pb.add("typescript", "tsconfig.json", nextTSConfig)
	}
	if cfg.TailwindCSS {
		pb.add("styling", "tailwind.config.js", func() string { return tailwindConfig(false, nextjsContent) })
		pb.add("styling", "postcss.config.js", func() string { return postcssConfig(false) })
	}

	if cfg.AppRouter {
		layout := func() string { return nextRootLayout(p.schema, cfg.TypeScript) }
		if cfg.TypeScript {
			pb.addTemplate("routing", "app/layout.tsx", "nextjs/layout", nil, layout)
		} else {
			pb.add("routing", "app/layout.js", layout)
		}
		pb.add("routing", "app/page"+pageExt, func() string { return nextHomePage(p.schema) })
	} else {
		pb.add("routing", "pages/_app"+pageExt, func() string { return nextPagesApp(cfg.TypeScript) })
		pb.add("routing", "pages/index"+pageExt, func() string { return nextPagesIndex(p.schema) })
	}

	pb.add("components", "components/layout/Header"+compExt, func() string { return nextHeader(name) })
	pb.add("components", "components/layout/Footer"+compExt, func() string { return nextFooter(name) })

	css := "styles/globals.css"
	if cfg.AppRouter {
		css = "app/globals.css"
	}
	pb.add("styling", css, func() string { return globalsCSS(cfg.TailwindCSS) })
	if cfg.ESLint {
		pb.add("lint", ".eslintrc.json", nextESLint)
	}
	pb.addTemplate("project", ".gitignore", "common/gitignore", nil, func() string { return gitignore("nextjs") })
	pb.addEntityTypes("types")
	return pb
}

func nextCommands(name string, cfg projectcfg.NextJSConfig) map[string]string {
	return npmCommands(manifest.StringMap(manifest.ForNextJS(name, cfg)["scripts"]))
}

// PlanProject returns the plan generate_nextjs_app would run for params.
func (a *NextJSAgent) PlanProject(params map[string]any) (pipeline.Plan, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_nextjs_app", projectcfg.NextJS, a.withFramework(params))
	if err != nil {
		return pipeline.Plan{}, err
	}
	return a.plan(p, cfg).build(), nil
}

func (a *NextJSAgent) generateApp(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_nextjs_app", projectcfg.NextJS, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	res, err := a.RunPlan(ctx, p.output, a.plan(p, cfg).build())
	if err != nil {
		return nil, err
	}
	return projectResult(p, res, nextCommands(p.schema.Name, cfg)), nil
}

func (a *NextJSAgent) generateComponent(ctx context.Context, params map[string]any) (map[string]any, error) {
	name := firstParam(params, "component_name", "name")
	check := validation.ComponentName(name)
	return a.emitFile(ctx, "generate_component", name, params, check.Errors(), func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		file := "components/" + name + projectcfg.Ext(ts, true)
		body := func() string { return nextComponent(name, ts) }
		if ts {
			pb.addTemplate("component", file, "nextjs/component", map[string]any{"component_name": name}, body)
			return
		}
		pb.add("component", file, body)
	})
}

func (a *NextJSAgent) generatePage(ctx context.Context, params map[string]any) (map[string]any, error) {
	route, problems := routeParam(params)
	return a.emitFile(ctx, "generate_page", route, params, problems, func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		page := path.Base(route)
		file := path.Join("app", route, "page"+pageExtension(ts))
		pb.addTemplate("page", file, "nextjs/page", map[string]any{"page_name": page}, func() string { return nextPage(page) })
	})
}

func (a *NextJSAgent) generateLayout(ctx context.Context, params map[string]any) (map[string]any, error) {
	route, problems := routeParam(params)
	return a.emitFile(ctx, "generate_layout", route, params, problems, func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		file := path.Join("app", route, "layout"+pageExtension(ts))
		pb.add("layout", file, func() string { return nextNestedLayout(path.Base(route), ts) })
	})
}

func (a *NextJSAgent) generateAPIRoute(ctx context.Context, params map[string]any) (map[string]any, error) {
	route, problems := routeParam(params)
	return a.emitFile(ctx, "generate_api_route", route, params, problems, func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		file := path.Join("app", "api", route, "route"+projectcfg.Ext(ts, false))
		pb.add("api", file, func() string { return nextAPIRoute(route, ts) })
	})
}

func (a *NextJSAgent) setupRouting(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_routing", projectcfg.NextJS, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	return a.setup(ctx, a.plan(p, cfg), "routing", nil, nil, "routing")
}

func (a *NextJSAgent) configureTypeScript(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "configure_typescript", projectcfg.NextJS, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.TypeScript = true
	p.config = projectcfg.Echo(cfg)
	dev := manifest.ReactTypes()
	dev["typescript"] = "^5.0.0"
	dev["@types/node"] = "^20.0.0"
	base := manifest.ForNextJS(render.Kebab(p.schema.Name), cfg)
	return a.setup(ctx, a.plan(p, cfg), "typescript", base, manifest.Additions(nil, dev), "typescript")
}

func (a *NextJSAgent) integrateTailwind(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "integrate_tailwind", projectcfg.NextJS, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.TailwindCSS = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForNextJS(render.Kebab(p.schema.Name), cfg)
	return a.setup(ctx, a.plan(p, cfg), "tailwind_css", base, manifest.Additions(nil, manifest.TailwindDeps()), "styling")
}

// routeParam reads params["route"] without surrounding slashes.
func routeParam(params map[string]any) (string, []string) {
	route := strings.Trim(firstParam(params, "route", "name"), "/")
	if route == "" {
		return "", []string{"route is required"}
	}
	return route, nil
}

func pageExtension(typescript bool) string {
	if typescript {
		return ".tsx"
	}
	return ".js"
}

func firstParam(params map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringParam(params, k); s != "" {
			return s
		}
	}
	return ""
}
