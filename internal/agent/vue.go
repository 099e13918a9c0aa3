package agent

import (
	"context"

	"github.com/dusk-indust/frontgen/internal/manifest"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// VueAgent generates Vue applications built with Vite.
type VueAgent struct {
	*BaseAgent
}

var _ Agent = (*VueAgent)(nil)

// NewVueAgent creates the Vue agent with its operations registered.
func NewVueAgent(opts ...Option) *VueAgent {
	a := &VueAgent{BaseAgent: NewBaseAgent(SpecVue, "Vue Agent", opts...)}
	for _, c := range []string{"composition_api", "single_file_components", "vue_router", "pinia", "vuex", "ui_libraries", "pwa", "vite"} {
		a.AddCapability(c)
	}
	a.RegisterOperation("generate_vue_app", a.generateApp)
	a.RegisterOperation("generate_component", a.generateComponent)
	a.RegisterOperation("generate_composable", a.generateComposable)
	a.RegisterOperation("setup_router", a.setupRouter)
	a.RegisterOperation("setup_state_management", a.setupStateManagement)
	a.RegisterOperation("integrate_ui_library", a.integrateUILibrary)
	a.RegisterOperation("configure_pwa", a.configurePWA)
	a.RegisterOperation("setup_testing", a.setupTesting)
	return a
}

// Initialize records the Vue and Vite versions the agent targets.
func (a *VueAgent) Initialize() {
	a.initialize(map[string]any{
		"vue_version":  "3.4.0",
		"vite_version": "5.0.0",
	})
}

func vueDirs(cfg projectcfg.VueConfig) []string {
	dirs := []string{
		"public",
		"src",
		"src/assets",
		"src/components/ui",
		"src/components/layout",
		"src/composables",
		"src/types",
		"src/utils",
	}
	if cfg.Router {
		dirs = append(dirs, "src/router", "src/views")
	}
	switch cfg.StateManagement {
	case projectcfg.StatePinia:
		dirs = append(dirs, "src/stores")
	case projectcfg.StateVuex:
		dirs = append(dirs, "src/store")
	}
	if vuePlugin(cfg.UILibrary) != "" {
		dirs = append(dirs, "src/plugins")
	}
	if cfg.Testing {
		dirs = append(dirs, "src/__tests__")
	}
	return dirs
}

// plan lists every artifact of a Vue project in emission order. Every
// build tool is served by Vite, which is what the manifest installs.
func (a *VueAgent) plan(p project, cfg projectcfg.VueConfig) *planBuilder {
	pb := newPlanBuilder(p, vueDirs(cfg))
	name := p.schema.Name
	mod := projectcfg.Ext(cfg.TypeScript, false)

	pb.add("manifest", "package.json", func() string {
		return manifest.MustEncode(manifest.ForVue(render.Kebab(name), cfg))
	})
	viteBody := func() string { return vueViteConfig(cfg) }
	if cfg.Testing || cfg.PWA {
		pb.add("build", "vite.config"+mod, viteBody)
	} else {
		pb.addTemplate("build", "vite.config"+mod, "vue/vite.config", nil, viteBody)
	}
	if cfg.TypeScript {
		pb.add("typescript", "tsconfig.json", vueTSConfig)
		pb.add("typescript", "src/env.d.ts", vueEnv)
	}
	if cfg.TailwindCSS {
		pb.add("styling", "tailwind.config.js", func() string { return tailwindConfig(true, vueContent) })
		pb.add("styling", "postcss.config.js", func() string { return postcssConfig(true) })
	}

	pb.add("app", "index.html", func() string { return indexHTML(name, "app", "/src/main"+mod) })
	pb.add("app", "src/main"+mod, func() string { return vueMain(cfg) })
	pb.add("app", "src/App.vue", func() string { return vueApp(name, cfg) })
	pb.add("app", "src/components/layout/Header.vue", func() string { return vueHeader(name, cfg.Router, cfg.TypeScript) })
	pb.add("components", "src/components/ui/Button.vue", func() string { return vueButton(cfg.TypeScript) })

	if cfg.Router {
		pb.add("routing", "src/router/index"+mod, vueRouter)
		pb.add("routing", "src/views/HomeView.vue", func() string { return vueHomeView(p.schema, cfg.TypeScript) })
		pb.add("routing", "src/views/AboutView.vue", func() string { return vueAboutView(p.schema) })
	}
	if file, body := vueStore(cfg.StateManagement, cfg.TypeScript); file != "" {
		pb.add("state", file, body)
	}
	if plugin := vuePlugin(cfg.UILibrary); plugin != "" {
		pb.add("ui_library", "src/plugins/"+plugin+mod, func() string { return vuePluginBody(cfg.UILibrary) })
	}
	if cfg.PWA {
		pb.add("pwa", "public/manifest.json", func() string { return webManifest(name, p.schema.Description) })
	}
	if cfg.Testing {
		pb.add("testing", "src/__tests__/App.spec"+mod, func() string { return vueAppSpec(name) })
	}

	pb.add("styling", "src/style.css", func() string { return globalsCSS(cfg.TailwindCSS) })
	if cfg.ESLint {
		pb.add("lint", ".eslintrc.cjs", func() string { return vueESLint(cfg.TypeScript) })
	}
	if cfg.Prettier {
		pb.add("lint", ".prettierrc", prettierConfig)
	}
	pb.addTemplate("project", ".gitignore", "common/gitignore", nil, func() string { return gitignore("vue") })
	pb.addEntityTypes("src/types")
	return pb
}

func vueCommands(cfg projectcfg.VueConfig) map[string]string {
	return npmCommands(manifest.StringMap(manifest.ForVue("app", cfg)["scripts"]))
}

// PlanProject returns the plan generate_vue_app would run for params.
func (a *VueAgent) PlanProject(params map[string]any) (pipeline.Plan, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_vue_app", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return pipeline.Plan{}, err
	}
	return a.plan(p, cfg).build(), nil
}

func (a *VueAgent) generateApp(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "generate_vue_app", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	res, err := a.RunPlan(ctx, p.output, a.plan(p, cfg).build())
	if err != nil {
		return nil, err
	}
	return projectResult(p, res, vueCommands(cfg)), nil
}

func (a *VueAgent) generateComponent(ctx context.Context, params map[string]any) (map[string]any, error) {
	name := firstParam(params, "component_name", "name")
	check := validation.ComponentName(name)
	return a.emitFile(ctx, "generate_component", name, params, check.Errors(), func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		file := "src/components/" + name + ".vue"
		body := func() string { return vueComponent(name, ts) }
		if ts {
			pb.addTemplate("component", file, "vue/component", map[string]any{"component_name": name}, body)
			return
		}
		pb.add("component", file, body)
	})
}

func (a *VueAgent) generateComposable(ctx context.Context, params map[string]any) (map[string]any, error) {
	name := firstParam(params, "composable_name", "name")
	check := validation.HookName(name)
	return a.emitFile(ctx, "generate_composable", name, params, check.Errors(), func(pb *planBuilder) {
		ts := boolParam(params, "typescript", true)
		pb.add("composable", "src/composables/"+name+projectcfg.Ext(ts, false), func() string { return vueComposable(name, ts) })
	})
}

func (a *VueAgent) setupRouter(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_router", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.Router = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForVue(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(manifest.RoutingDeps("vue"), nil)
	return a.setup(ctx, a.plan(p, cfg), "vue_router", base, additions, "routing", "app")
}

func (a *VueAgent) setupStateManagement(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_state_management", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	base := manifest.ForVue(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(manifest.StateDeps(string(cfg.StateManagement)), nil)
	return a.setup(ctx, a.plan(p, cfg), string(cfg.StateManagement), base, additions, "state", "app")
}

func (a *VueAgent) integrateUILibrary(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "integrate_ui_library", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	base := manifest.ForVue(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(manifest.UILibraryDeps(cfg.UILibrary), nil)
	return a.setup(ctx, a.plan(p, cfg), cfg.UILibrary, base, additions, "ui_library", "app")
}

func (a *VueAgent) configurePWA(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "configure_pwa", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.PWA = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForVue(render.Kebab(p.schema.Name), cfg)
	additions := manifest.Additions(nil, map[string]string{"vite-plugin-pwa": "^0.17.0"})
	return a.setup(ctx, a.plan(p, cfg), "pwa", base, additions, "pwa", "build")
}

func (a *VueAgent) setupTesting(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "setup_testing", projectcfg.Vue, a.withFramework(params))
	if err != nil {
		return nil, err
	}
	cfg.Testing = true
	p.config = projectcfg.Echo(cfg)
	base := manifest.ForVue(render.Kebab(p.schema.Name), cfg)
	return a.setup(ctx, a.plan(p, cfg), "testing", base, manifest.Testing("vue", true), "testing", "build")
}
