package render

import (
	"maps"
	"strings"
)

// GeneratedBy is stamped into every rendered file header.
const GeneratedBy = "Generated by frontgen"

// Context builds the data map for a template: common keys, then the
// framework's defaults, then base, which wins on collisions.
func Context(framework, templateName string, base map[string]any) map[string]any {
	ctx := map[string]any{
		"framework":     framework,
		"template_type": templateName,
		"generated_by":  GeneratedBy,
		"version":       "1.0.0",
	}
	maps.Copy(ctx, FrameworkDefaults(framework))
	maps.Copy(ctx, base)
	return ctx
}

// FrameworkDefaults returns the template defaults for a framework.
func FrameworkDefaults(framework string) map[string]any {
	switch strings.ToLower(framework) {
	case "nextjs":
		return map[string]any{
			"node_version": "18",
			"next_version": "14.0.0",
			"typescript":   true,
			"app_router":   true,
			"tailwind_css": true,
			"port":         DevPort("nextjs"),
		}
	case "react":
		return map[string]any{
			"node_version":  "18",
			"react_version": "18.2.0",
			"vite_version":  "5.0.0",
			"typescript":    true,
			"build_tool":    "vite",
			"port":          DevPort("react"),
		}
	case "vue":
		return map[string]any{
			"node_version":    "18",
			"vue_version":     "3.4.0",
			"vite_version":    "5.0.0",
			"typescript":      true,
			"composition_api": true,
			"port":            DevPort("vue"),
		}
	case "ui", "ui_design":
		return map[string]any{
			"design_system": "custom",
			"color_palette": "blue",
			"dark_mode":     true,
			"accessibility": true,
		}
	}
	return map[string]any{}
}

// DevPort is the development server port for a framework.
func DevPort(framework string) int {
	if strings.ToLower(framework) == "vue" {
		return 5173
	}
	return 3000
}

// DefaultScripts are the package.json scripts for a framework.
func DefaultScripts(framework string) map[string]string {
	switch strings.ToLower(framework) {
	case "nextjs":
		return map[string]string{
			"dev":        "next dev",
			"build":      "next build",
			"start":      "next start",
			"lint":       "next lint",
			"type-check": "tsc --noEmit",
		}
	case "react":
		return map[string]string{
			"dev":        "vite",
			"build":      "vite build",
			"preview":    "vite preview",
			"lint":       "eslint src --ext .ts,.tsx",
			"type-check": "tsc --noEmit",
		}
	case "vue":
		return map[string]string{
			"dev":        "vite",
			"build":      "vue-tsc && vite build",
			"preview":    "vite preview",
			"lint":       "eslint src --ext .vue,.ts",
			"type-check": "vue-tsc --noEmit",
		}
	}
	return map[string]string{}
}
