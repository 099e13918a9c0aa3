package manifest

import (
	"maps"

	"github.com/dusk-indust/frontgen/internal/projectcfg"
)

var (
	tailwindDeps = map[string]string{
		"tailwindcss":  "^3.3.0",
		"autoprefixer": "^10.4.0",
		"postcss":      "^8.4.0",
	}
	reactTypes = map[string]string{
		"@types/react":     "^18.0.0",
		"@types/react-dom": "^18.0.0",
	}
)

func build(name, version string, module bool, scripts, deps, dev map[string]string) Manifest {
	m := Manifest{
		"name":            name,
		"private":         true,
		"version":         version,
		"scripts":         scripts,
		"dependencies":    deps,
		"devDependencies": dev,
	}
	if module {
		m["type"] = "module"
	}
	return m
}

// ForNextJS is the fallback manifest of a Next.js project.
func ForNextJS(name string, cfg projectcfg.NextJSConfig) Manifest {
	deps := map[string]string{
		"next":      "^14.0.0",
		"react":     "^18.0.0",
		"react-dom": "^18.0.0",
	}
	dev := map[string]string{}
	scripts := map[string]string{
		"dev":   "next dev",
		"build": "next build",
		"start": "next start",
		"lint":  "next lint",
	}
	if cfg.TypeScript {
		maps.Copy(dev, reactTypes)
		dev["typescript"] = "^5.0.0"
		dev["@types/node"] = "^20.0.0"
		scripts["type-check"] = "tsc --noEmit"
	}
	if cfg.TailwindCSS {
		maps.Copy(dev, tailwindDeps)
	}
	if cfg.ESLint {
		dev["eslint"] = "^8.0.0"
		dev["eslint-config-next"] = "^14.0.0"
	}
	return build(name, "0.1.0", false, scripts, deps, dev)
}

// ForReact is the fallback manifest of a React application.
func ForReact(name string, cfg projectcfg.ReactConfig) Manifest {
	vite := cfg.BuildTool == projectcfg.BuildVite
	deps := map[string]string{
		"react":     "^18.2.0",
		"react-dom": "^18.2.0",
	}
	dev := map[string]string{}
	scripts := map[string]string{}
	if vite {
		dev["vite"] = "^5.0.0"
		dev["@vitejs/plugin-react"] = "^4.0.0"
		scripts["dev"] = "vite"
		scripts["build"] = "vite build"
		scripts["preview"] = "vite preview"
	} else {
		dev["webpack"] = "^5.88.0"
		dev["webpack-cli"] = "^5.1.0"
		dev["webpack-dev-server"] = "^4.15.0"
		scripts["dev"] = "webpack serve"
		scripts["build"] = "webpack build"
		scripts["preview"] = "serve -s build"
	}
	if cfg.TypeScript {
		maps.Copy(dev, reactTypes)
		dev["typescript"] = "^5.0.0"
	}
	if cfg.Routing {
		maps.Copy(deps, RoutingDeps("react"))
	}
	maps.Copy(deps, StateDeps(string(cfg.StateManagement)))
	if cfg.TailwindCSS {
		maps.Copy(dev, tailwindDeps)
	}
	if cfg.StyledComponents {
		deps["styled-components"] = "^5.3.0"
	}
	if cfg.Testing {
		t := Testing("react", vite)
		maps.Copy(dev, StringMap(t["devDependencies"]))
		maps.Copy(scripts, StringMap(t["scripts"]))
	}
	if cfg.PWA && vite {
		dev["vite-plugin-pwa"] = "^0.17.0"
	}
	if cfg.ESLint {
		dev["eslint"] = "^8.0.0"
		dev["eslint-plugin-react-hooks"] = "^4.6.0"
		scripts["lint"] = "eslint src --ext .ts,.tsx"
	}
	if cfg.Prettier {
		dev["prettier"] = "^3.0.0"
	}
	return build(name, "0.0.0", true, scripts, deps, dev)
}

// ForVue is the fallback manifest of a Vue application.
func ForVue(name string, cfg projectcfg.VueConfig) Manifest {
	deps := map[string]string{"vue": "^3.4.0"}
	if cfg.VueVersion == "2" {
		deps["vue"] = "^2.7.0"
	}
	dev := map[string]string{
		"@vitejs/plugin-vue": "^5.0.0",
		"vite":               "^5.0.0",
	}
	scripts := map[string]string{
		"dev":     "vite",
		"build":   "vite build",
		"preview": "vite preview",
	}
	if cfg.TypeScript {
		dev["typescript"] = "^5.0.0"
		dev["vue-tsc"] = "^1.8.0"
		scripts["build"] = "vue-tsc && vite build"
	}
	if cfg.Router {
		maps.Copy(deps, RoutingDeps("vue"))
	}
	maps.Copy(deps, StateDeps(string(cfg.StateManagement)))
	maps.Copy(deps, UILibraryDeps(cfg.UILibrary))
	if cfg.TailwindCSS {
		maps.Copy(dev, tailwindDeps)
	}
	if cfg.PWA {
		dev["vite-plugin-pwa"] = "^0.17.0"
	}
	if cfg.Testing {
		t := Testing("vue", true)
		maps.Copy(dev, StringMap(t["devDependencies"]))
		maps.Copy(scripts, StringMap(t["scripts"]))
	}
	if cfg.ESLint {
		dev["eslint"] = "^8.0.0"
		dev["@vue/eslint-config-typescript"] = "^12.0.0"
		dev["eslint-plugin-vue"] = "^9.0.0"
		scripts["lint"] = "eslint src --ext .vue,.js,.ts"
	}
	if cfg.Prettier {
		dev["prettier"] = "^3.0.0"
	}
	return build(name, "0.0.0", true, scripts, deps, dev)
}

// RoutingDeps are the router packages for a framework.
func RoutingDeps(framework string) map[string]string {
	switch framework {
	case "react":
		return map[string]string{"react-router-dom": "^6.8.0"}
	case "vue":
		return map[string]string{"vue-router": "^4.2.0"}
	}
	return nil
}

// StateDeps are the packages for a state-management choice. Choices that
// need no package (context_api, composition_api) return nil.
func StateDeps(state string) map[string]string {
	switch projectcfg.StateManagement(state) {
	case projectcfg.StateReduxToolkit:
		return map[string]string{"@reduxjs/toolkit": "^1.9.0", "react-redux": "^8.0.0"}
	case projectcfg.StateZustand:
		return map[string]string{"zustand": "^4.3.0"}
	case projectcfg.StateMobX:
		return map[string]string{"mobx": "^6.10.0", "mobx-react-lite": "^4.0.0"}
	case projectcfg.StateRecoil:
		return map[string]string{"recoil": "^0.7.7"}
	case projectcfg.StatePinia:
		return map[string]string{"pinia": "^2.1.0"}
	case projectcfg.StateVuex:
		return map[string]string{"vuex": "^4.1.0"}
	}
	return nil
}

// UILibraryDeps are the packages for a Vue UI library.
func UILibraryDeps(lib string) map[string]string {
	switch lib {
	case "vuetify":
		return map[string]string{"vuetify": "^3.4.0", "@mdi/font": "^7.0.0"}
	case "quasar":
		return map[string]string{"quasar": "^2.14.0", "@quasar/extras": "^1.16.0"}
	case "element_plus":
		return map[string]string{"element-plus": "^2.4.0"}
	case "naive_ui":
		return map[string]string{"naive-ui": "^2.35.0"}
	}
	return nil
}

// Testing is the additions manifest for test tooling.
func Testing(framework string, vite bool) Manifest {
	dev := map[string]string{}
	scripts := map[string]string{}
	switch {
	case framework == "vue":
		dev["vitest"] = "^1.0.0"
		dev["@vue/test-utils"] = "^2.4.0"
		dev["jsdom"] = "^23.0.0"
		scripts["test"] = "vitest"
	case vite:
		dev["vitest"] = "^0.34.0"
		dev["jsdom"] = "^22.1.0"
		dev["@testing-library/react"] = "^13.4.0"
		dev["@testing-library/jest-dom"] = "^5.16.0"
		scripts["test"] = "vitest"
	default:
		dev["jest"] = "^29.0.0"
		dev["@testing-library/react"] = "^13.4.0"
		dev["@testing-library/jest-dom"] = "^5.16.0"
		scripts["test"] = "jest"
	}
	return Manifest{"devDependencies": dev, "scripts": scripts}
}

// TailwindDeps are the Tailwind CSS build packages.
func TailwindDeps() map[string]string {
	return maps.Clone(tailwindDeps)
}

// ReactTypes are the React type declaration packages.
func ReactTypes() map[string]string {
	return maps.Clone(reactTypes)
}

// Additions wraps dependency maps as an additions manifest for Merge.
func Additions(deps, dev map[string]string) Manifest {
	m := Manifest{}
	if len(deps) > 0 {
		m["dependencies"] = deps
	}
	if len(dev) > 0 {
		m["devDependencies"] = dev
	}
	return m
}
