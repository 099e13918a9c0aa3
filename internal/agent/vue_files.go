package agent

import (
	"fmt"
	"html"
	"strings"

	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
)

func vueScriptTag(typescript bool) string {
	if typescript {
		return `<script setup lang="ts">`
	}
	return "<script setup>"
}

func vueViteConfig(cfg projectcfg.VueConfig) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	if cfg.Testing && cfg.TypeScript {
		sb.WriteString("/// <reference types=\"vitest\" />\n")
	}
	sb.WriteString("import { fileURLToPath, URL } from 'node:url'\nimport { defineConfig } from 'vite'\nimport vue from '@vitejs/plugin-vue'\n")
	plugins := "vue()"
	if cfg.PWA {
		sb.WriteString("import { VitePWA } from 'vite-plugin-pwa'\n")
		plugins += ", VitePWA({ registerType: 'autoUpdate', manifest: false })"
	}
	fmt.Fprintf(&sb, `
export default defineConfig({
  plugins: [%s],
  resolve: {
    alias: {
      '@': fileURLToPath(new URL('./src', import.meta.url)),
    },
  },
  server: {
    port: %d,
  },
`, plugins, render.DevPort("vue"))
	if cfg.Testing {
		sb.WriteString("  test: {\n    globals: true,\n    environment: 'jsdom',\n  },\n")
	}
	sb.WriteString("})\n")
	return sb.String()
}

func vueTSConfig() string {
	return `{
  "compilerOptions": {
    "target": "ES2020",
    "useDefineForClassFields": true,
    "module": "ESNext",
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "skipLibCheck": true,
    "moduleResolution": "bundler",
    "resolveJsonModule": true,
    "isolatedModules": true,
    "noEmit": true,
    "jsx": "preserve",
    "strict": true,
    "noUnusedLocals": true,
    "noUnusedParameters": true,
    "noFallthroughCasesInSwitch": true,
    "baseUrl": ".",
    "paths": {
      "@/*": ["./src/*"]
    }
  },
  "include": ["src/**/*.ts", "src/**/*.tsx", "src/**/*.vue"]
}
`
}

func vueEnv() string {
	return header("// %s\n") + `/// <reference types="vite/client" />

declare module '*.vue' {
  import type { DefineComponent } from 'vue'
  const component: DefineComponent<object, object, unknown>
  export default component
}
`
}

// vueMain is the entry module. Vue 2 projects get the Options API bootstrap
// without plugins.
func vueMain(cfg projectcfg.VueConfig) string {
	if cfg.VueVersion == "2" {
		return header("// %s\n") + `import Vue from 'vue'
import App from './App.vue'
import './style.css'

new Vue({
  render: (h) => h(App),
}).$mount('#app')
`
	}
	imports := []string{"import { createApp } from 'vue'"}
	var uses []string
	switch cfg.StateManagement {
	case projectcfg.StatePinia:
		imports = append(imports, "import { createPinia } from 'pinia'")
		uses = append(uses, "app.use(createPinia())")
	case projectcfg.StateVuex:
		imports = append(imports, "import store from './store'")
		uses = append(uses, "app.use(store)")
	}
	if cfg.Router {
		imports = append(imports, "import router from './router'")
		uses = append(uses, "app.use(router)")
	}
	if plugin := vuePlugin(cfg.UILibrary); plugin != "" {
		imports = append(imports, "import uiLibrary from './plugins/"+plugin+"'")
		uses = append(uses, "app.use(uiLibrary)")
	}
	imports = append(imports, "import App from './App.vue'", "import './style.css'")

	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	sb.WriteString(strings.Join(imports, "\n"))
	sb.WriteString("\n\nconst app = createApp(App)\n")
	for _, u := range uses {
		sb.WriteString(u + "\n")
	}
	sb.WriteString("app.mount('#app')\n")
	return sb.String()
}

func vueApp(name string, cfg projectcfg.VueConfig) string {
	imports := "import Header from './components/layout/Header.vue'\n"
	body := "      <RouterView />"
	if !cfg.Router {
		imports += "import Button from './components/ui/Button.vue'\n"
		body = fmt.Sprintf("      <h1>%s</h1>\n      <Button>Get started</Button>", html.EscapeString(name))
	}
	return fmt.Sprintf(`<!-- %s -->
%s
%s</script>

<template>
  <div class="app">
    <Header />
    <main class="app-main">
%s
    </main>
  </div>
</template>

<style scoped>
.app {
  display: flex;
  flex-direction: column;
  min-height: 100vh;
}

.app-main {
  flex: 1;
  width: 100%%;
  max-width: 1200px;
  margin: 0 auto;
  padding: 2rem 1rem;
}
</style>
`, render.GeneratedBy, vueScriptTag(cfg.TypeScript), imports, body)
}

func vueHeader(name string, router, typescript bool) string {
	nav := `      <a href="/">Home</a>`
	if router {
		nav = `      <RouterLink to="/">Home</RouterLink>
      <RouterLink to="/about">About</RouterLink>`
	}
	return fmt.Sprintf(`<!-- %s -->
%s
const title = %s
</script>

<template>
  <header class="app-header">
    <span class="brand">{{ title }}</span>
    <nav>
%s
    </nav>
  </header>
</template>

<style scoped>
.app-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 1rem;
  border-bottom: 1px solid #e5e7eb;
}

nav {
  display: flex;
  gap: 1.5rem;
}
</style>
`, render.GeneratedBy, vueScriptTag(typescript), jsString(name), nav)
}

func vueButton(typescript bool) string {
	props := "defineProps({\n  variant: { type: String, default: 'primary' },\n})"
	if typescript {
		props = "withDefaults(defineProps<{ variant?: 'primary' | 'secondary' }>(), {\n  variant: 'primary',\n})"
	}
	return fmt.Sprintf(`<!-- %s -->
%s
%s
</script>

<template>
  <button :class="['btn', 'btn-' + variant]">
    <slot />
  </button>
</template>

<style scoped>
.btn {
  padding: 0.5rem 1rem;
  border: none;
  border-radius: 0.375rem;
  font-weight: 500;
  cursor: pointer;
}

.btn-primary {
  color: #ffffff;
  background: #2563eb;
}

.btn-secondary {
  color: #111827;
  background: #e5e7eb;
}
</style>
`, render.GeneratedBy, vueScriptTag(typescript), props)
}

func vueRouter() string {
	return header("// %s\n") + `import { createRouter, createWebHistory } from 'vue-router'
import HomeView from '../views/HomeView.vue'

const router = createRouter({
  history: createWebHistory(import.meta.env.BASE_URL),
  routes: [
    {
      path: '/',
      name: 'home',
      component: HomeView,
    },
    {
      path: '/about',
      name: 'about',
      component: () => import('../views/AboutView.vue'),
    },
  ],
})

export default router
`
}

func vueHomeView(schema projectcfg.ProjectSchema, typescript bool) string {
	return fmt.Sprintf(`<!-- %s -->
%s
import Button from '../components/ui/Button.vue'
</script>

<template>
  <section>
    <h1>%s</h1>
    <p>%s</p>
    <Button>Get started</Button>
  </section>
</template>
`, render.GeneratedBy, vueScriptTag(typescript), html.EscapeString(schema.Name), html.EscapeString(schema.Description))
}

func vueAboutView(schema projectcfg.ProjectSchema) string {
	return fmt.Sprintf(`<!-- %s -->
<template>
  <section>
    <h1>About</h1>
    <p>%s</p>
  </section>
</template>
`, render.GeneratedBy, html.EscapeString(schema.Description))
}

// vueStore returns the store module for a state choice.
func vueStore(state projectcfg.StateManagement, typescript bool) (string, func() string) {
	mod := projectcfg.Ext(typescript, false)
	switch state {
	case projectcfg.StatePinia:
		return "src/stores/counter" + mod, piniaStore
	case projectcfg.StateVuex:
		return "src/store/index" + mod, func() string { return vuexStore(typescript) }
	case projectcfg.StateCompositionAPI:
		return "src/composables/useCounter" + mod, func() string { return vueComposable("useCounter", typescript) }
	}
	return "", nil
}

func piniaStore() string {
	return header("// %s\n") + `import { ref, computed } from 'vue'
import { defineStore } from 'pinia'

export const useCounterStore = defineStore('counter', () => {
  const count = ref(0)
  const doubleCount = computed(() => count.value * 2)

  function increment() {
    count.value++
  }

  return { count, doubleCount, increment }
})
`
}

func vuexStore(typescript bool) string {
	return fmt.Sprintf(`// %s
import { createStore } from 'vuex'

%sexport default createStore%s({
  state: () => ({ count: 0 }),
  getters: {
    doubleCount: (state) => state.count * 2,
  },
  mutations: {
    increment(state) {
      state.count++
    },
  },
  actions: {
    increment({ commit }) {
      commit('increment')
    },
  },
})
`, render.GeneratedBy, tsOnly(typescript, "export interface State {\n  count: number\n}\n\n"), tsOnly(typescript, "<State>"))
}

// vuePlugin maps a UI library to its plugin module name. The custom
// library has none.
func vuePlugin(lib string) string {
	switch lib {
	case "vuetify":
		return "vuetify"
	case "quasar":
		return "quasar"
	case "element_plus":
		return "element-plus"
	case "naive_ui":
		return "naive-ui"
	}
	return ""
}

func vuePluginBody(lib string) string {
	var body string
	switch lib {
	case "vuetify":
		body = `import 'vuetify/styles'
import '@mdi/font/css/materialdesignicons.css'
import { createVuetify } from 'vuetify'
import * as components from 'vuetify/components'
import * as directives from 'vuetify/directives'

export default createVuetify({
  components,
  directives,
})
`
	case "quasar":
		body = `import { Quasar } from 'quasar'
import '@quasar/extras/material-icons/material-icons.css'
import 'quasar/dist/quasar.css'

export default {
  install(app) {
    app.use(Quasar, { plugins: {} })
  },
}
`
	case "element_plus":
		body = `import ElementPlus from 'element-plus'
import 'element-plus/dist/index.css'

export default ElementPlus
`
	case "naive_ui":
		body = `import naive from 'naive-ui'

export default naive
`
	}
	return header("// %s\n") + body
}

func vueAppSpec(name string) string {
	return fmt.Sprintf(`// %s
import { describe, it, expect } from 'vitest'
import { mount } from '@vue/test-utils'
import App from '../App.vue'

describe('App', () => {
  it('renders the project name', () => {
    const wrapper = mount(App, {
      global: { stubs: ['RouterView', 'RouterLink'] },
    })
    expect(wrapper.text()).toContain(%s)
  })
})
`, render.GeneratedBy, jsQuote(name))
}

func vueESLint(typescript bool) string {
	extends := "'plugin:vue/vue3-essential', 'eslint:recommended'"
	if typescript {
		extends += ", '@vue/eslint-config-typescript'"
	}
	return fmt.Sprintf(`// %s
module.exports = {
  root: true,
  env: { browser: true, es2022: true, node: true },
  extends: [%s],
  parserOptions: { ecmaVersion: 'latest' },
  ignorePatterns: ['dist'],
}
`, render.GeneratedBy, extends)
}

func vueComponent(name string, typescript bool) string {
	class := render.Kebab(name)
	return fmt.Sprintf(`<!-- %[1]s -->
<template>
  <div class="%[2]s">
    <slot />
  </div>
</template>

%[3]s
defineOptions({ name: '%[4]s' })
</script>

<style scoped>
.%[2]s {
  display: block;
}
</style>
`, render.GeneratedBy, class, vueScriptTag(typescript), name)
}

func vueComposable(name string, typescript bool) string {
	return fmt.Sprintf(`// %[1]s
import { readonly, ref } from 'vue'

export function %[2]s(initial%[3]s = 0) {
  const count = ref(initial)

  function increment() {
    count.value++
  }

  function reset() {
    count.value = initial
  }

  return { count: readonly(count), increment, reset }
}

export default %[2]s
`, render.GeneratedBy, name, tsOnly(typescript, ": number"))
}
