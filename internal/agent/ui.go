package agent

import (
	"context"

	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/projectcfg"
)

// uiComponents is the component library, in emission order.
var uiComponents = []string{
	"Button",
	"Input",
	"Select",
	"Checkbox",
	"Radio",
	"Switch",
	"Card",
	"Modal",
	"Alert",
	"Badge",
	"Avatar",
	"Spinner",
	"Progress",
	"Tooltip",
	"Dropdown",
}

const (
	tokensDir     = "src/styles/tokens"
	componentsDir = "src/components/ui"
)

// UIDesignAgent generates framework-agnostic design systems: tokens,
// a React component library, theming and documentation.
type UIDesignAgent struct {
	*BaseAgent
}

var _ Agent = (*UIDesignAgent)(nil)

// NewUIDesignAgent creates the design-system agent with its operations
// registered.
func NewUIDesignAgent(opts ...Option) *UIDesignAgent {
	a := &UIDesignAgent{BaseAgent: NewBaseAgent(SpecUIDesign, "UI Design Agent", opts...)}
	for _, c := range []string{"design_systems", "design_tokens", "color_palette_generation", "typography", "component_libraries", "dark_mode", "accessibility", "style_guides"} {
		a.AddCapability(c)
	}
	a.RegisterOperation("create_design_system", a.createDesignSystem)
	a.RegisterOperation("generate_color_palette", a.concernOp("generate_color_palette", "colors", nil, "colors"))
	a.RegisterOperation("create_component_library", a.concernOp("create_component_library", "components", nil, "components"))
	a.RegisterOperation("setup_typography", a.concernOp("setup_typography", "typography", nil, "typography"))
	a.RegisterOperation("implement_dark_mode", a.concernOp("implement_dark_mode", "dark_mode",
		func(cfg *projectcfg.UIDesignConfig) { cfg.DarkMode = true }, "dark_mode"))
	a.RegisterOperation("generate_design_tokens", a.concernOp("generate_design_tokens", "design_tokens", nil, "tokens", "colors", "typography"))
	a.RegisterOperation("optimize_accessibility", a.concernOp("optimize_accessibility", "accessibility",
		func(cfg *projectcfg.UIDesignConfig) { cfg.Accessibility = true }, "accessibility"))
	a.RegisterOperation("create_style_guide", a.concernOp("create_style_guide", "style_guide", nil, "docs"))
	return a
}

// Initialize records the palettes and design systems the agent offers.
func (a *UIDesignAgent) Initialize() {
	a.initialize(map[string]any{
		"color_palettes_available": projectcfg.UIDesign.Allowed("color_palette"),
		"design_systems_available": projectcfg.UIDesign.Allowed("design_system"),
	})
}

func uiDirs() []string {
	return []string{
		"src/styles",
		tokensDir,
		"src/styles/themes",
		"src/styles/components",
		"src/styles/utilities",
		componentsDir,
		"src/components/ui/forms",
		"src/components/ui/feedback",
		"src/components/ui/navigation",
		"src/components/ui/layout",
		"src/components/ui/typography",
		"src/hooks/ui",
		"src/types",
		"src/utils/ui",
		"docs/design-system",
	}
}

// plan lists every artifact of a design system in emission order.
func (a *UIDesignAgent) plan(p project, cfg projectcfg.UIDesignConfig) *planBuilder {
	pb := newPlanBuilder(p, uiDirs())
	palette := paletteFor(cfg.ColorPalette)

	pb.add("tokens", tokensDir+"/index.ts", func() string { return designTokens(cfg) })
	pb.add("colors", tokensDir+"/colors.ts", func() string { return colorTokens(palette) })
	pb.add("typography", tokensDir+"/typography.ts", func() string { return typographyTokens(cfg.TypographyScale) })

	for _, name := range uiComponents {
		body := func() string { return uiComponent(name) }
		if name == "Button" {
			body = uiButton
		}
		pb.addTemplate("components", componentsDir+"/"+name+".tsx", "ui/component", map[string]any{"component_name": name}, body)
	}
	pb.add("components", componentsDir+"/index.ts", func() string { return componentIndex(uiComponents) })

	if cfg.DarkMode {
		pb.add("dark_mode", "src/styles/themes/ThemeProvider.tsx", themeProvider)
	}
	if cfg.Animations {
		pb.add("animations", "src/styles/animations.css", animationsCSS)
	}
	if cfg.Accessibility {
		pb.add("accessibility", "src/utils/ui/accessibility.ts", accessibilityUtils)
	}
	pb.add("docs", "docs/design-system/README.md", func() string { return styleGuide(p.schema.Name, cfg, palette) })
	pb.addEntityTypes("src/types")
	return pb
}

// PlanProject returns the plan create_design_system would run for params.
func (a *UIDesignAgent) PlanProject(params map[string]any) (pipeline.Plan, error) {
	p, cfg, err := prepare(a.BaseAgent, "create_design_system", projectcfg.UIDesign, params)
	if err != nil {
		return pipeline.Plan{}, err
	}
	return a.plan(p, cfg).build(), nil
}

func (a *UIDesignAgent) createDesignSystem(ctx context.Context, params map[string]any) (map[string]any, error) {
	p, cfg, err := prepare(a.BaseAgent, "create_design_system", projectcfg.UIDesign, params)
	if err != nil {
		return nil, err
	}
	res, err := a.RunPlan(ctx, p.output, a.plan(p, cfg).build())
	if err != nil {
		return nil, err
	}
	out := projectResult(p, res, map[string]string{})
	out["design_system"] = cfg.DesignSystem
	out["color_palette"] = cfg.ColorPalette
	out["component_library"] = cfg.ComponentLibrary
	out["design_tokens_path"] = tokensDir
	out["components_path"] = componentsDir
	out["style_guide_path"] = "docs/design-system"
	return out, nil
}

// concernOp builds an operation that emits the artifacts of concerns after
// applying force to the extracted configuration.
func (a *UIDesignAgent) concernOp(op, label string, force func(*projectcfg.UIDesignConfig), concerns ...string) OperationFunc {
	return func(ctx context.Context, params map[string]any) (map[string]any, error) {
		p, cfg, err := prepare(a.BaseAgent, op, projectcfg.UIDesign, params)
		if err != nil {
			return nil, err
		}
		if force != nil {
			force(&cfg)
			p.config = projectcfg.Echo(cfg)
		}
		return a.setup(ctx, a.plan(p, cfg), label, nil, nil, concerns...)
	}
}
