package agent

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
)

// tsOnly returns s when typescript is set.
func tsOnly(typescript bool, s string) string {
	if typescript {
		return s
	}
	return ""
}

func reactViteConfig(testing, typescript bool) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	if testing && typescript {
		sb.WriteString("/// <reference types=\"vitest\" />\n")
	}
	sb.WriteString(`import { fileURLToPath, URL } from 'node:url'
import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
  resolve: {
    alias: {
      '@': fileURLToPath(new URL('./src', import.meta.url)),
    },
  },
  server: {
    port: 3000,
    open: true,
  },
  build: {
    outDir: 'dist',
    sourcemap: true,
  },
`)
	if testing {
		fmt.Fprintf(&sb, `  test: {
    globals: true,
    environment: 'jsdom',
    setupFiles: './src/setupTests%s',
  },
`, projectcfg.Ext(typescript, false))
	}
	sb.WriteString("})\n")
	return sb.String()
}

func webpackConfig(typescript bool) string {
	entry := "./src/main" + projectcfg.Ext(typescript, true)
	return fmt.Sprintf(`// %s
import path from 'node:path'
import { fileURLToPath } from 'node:url'

const root = path.dirname(fileURLToPath(import.meta.url))

export default {
  entry: '%s',
  output: {
    path: path.resolve(root, 'build'),
    filename: 'bundle.[contenthash].js',
    clean: true,
  },
  resolve: {
    extensions: ['.tsx', '.ts', '.jsx', '.js'],
    alias: {
      '@': path.resolve(root, 'src'),
    },
  },
  module: {
    rules: [
      {
        test: /\.[jt]sx?$/,
        exclude: /node_modules/,
        use: 'babel-loader',
      },
      {
        test: /\.css$/,
        use: ['style-loader', 'css-loader'],
      },
    ],
  },
  devServer: {
    port: 3000,
    historyApiFallback: true,
    static: './public',
  },
}
`, render.GeneratedBy, entry)
}

func reactTSConfig() string {
	return `{
  "compilerOptions": {
    "target": "ES2020",
    "useDefineForClassFields": true,
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "skipLibCheck": true,
    "moduleResolution": "bundler",
    "allowImportingTsExtensions": true,
    "resolveJsonModule": true,
    "isolatedModules": true,
    "noEmit": true,
    "jsx": "react-jsx",
    "strict": true,
    "noUnusedLocals": true,
    "noUnusedParameters": true,
    "noFallthroughCasesInSwitch": true,
    "baseUrl": ".",
    "paths": {
      "@/*": ["./src/*"]
    }
  },
  "include": ["src"]
}
`
}

func viteEnv() string {
	return header("// %s\n") + "/// <reference types=\"vite/client\" />\n"
}

// reactMain is the entry module. The state provider, when the chosen
// library needs one, wraps the application.
func reactMain(cfg projectcfg.ReactConfig) string {
	ts := cfg.TypeScript
	imports := []string{
		"import React from 'react'",
		"import ReactDOM from 'react-dom/client'",
	}
	open, closing := "", ""
	switch cfg.StateManagement {
	case projectcfg.StateReduxToolkit:
		imports = append(imports, "import { Provider } from 'react-redux'", "import { store } from './store'")
		open, closing = "<Provider store={store}>", "</Provider>"
	case projectcfg.StateRecoil:
		imports = append(imports, "import { RecoilRoot } from 'recoil'")
		open, closing = "<RecoilRoot>", "</RecoilRoot>"
	case projectcfg.StateContextAPI:
		imports = append(imports, "import { AppProvider } from './store/AppContext'")
		open, closing = "<AppProvider>", "</AppProvider>"
	}
	imports = append(imports, "import App from './App'", "import './index.css'")

	app := "    <App />"
	if open != "" {
		app = "    " + open + "\n      <App />\n    " + closing
	}
	return fmt.Sprintf(`// %s
%s

ReactDOM.createRoot(document.getElementById('root')%s).render(
  <React.StrictMode>
%s
  </React.StrictMode>,
)
`, render.GeneratedBy, strings.Join(imports, "\n"), tsOnly(ts, "!"), app)
}

// reactApp is the root component. With routing the router owns the page
// chrome because links need its context.
func reactApp(name string, routing bool) string {
	if routing {
		return fmt.Sprintf(`// %s
import AppRouter from './router'
import './App.css'

function App() {
  return (
    <div className="app">
      <AppRouter />
    </div>
  )
}

export default App
`, render.GeneratedBy)
	}
	return fmt.Sprintf(`// %s
import Header from './components/layout/Header'
import Button from './components/ui/Button'
import './App.css'

function App() {
  return (
    <div className="app">
      <Header />
      <main className="app-main">
        <h1>{%s}</h1>
        <Button>Get started</Button>
      </main>
    </div>
  )
}

export default App
`, render.GeneratedBy, jsString(name))
}

func reactAppCSS() string {
	return header("/* %s */\n") + `.app {
  display: flex;
  flex-direction: column;
  min-height: 100vh;
}

.app-main {
  flex: 1;
  width: 100%;
  max-width: 1200px;
  margin: 0 auto;
  padding: 2rem 1rem;
}

.app-header nav {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 1rem;
  border-bottom: 1px solid #e5e7eb;
}

.app-header ul {
  display: flex;
  gap: 1.5rem;
  margin: 0;
  padding: 0;
  list-style: none;
}

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
`
}

func reactHeader(name string, routing bool) string {
	if routing {
		return fmt.Sprintf(`// %s
import { Link } from 'react-router-dom'

const links = [
  { to: '/', label: 'Home' },
  { to: '/about', label: 'About' },
]

export default function Header() {
  return (
    <header className="app-header">
      <nav>
        <Link to="/">{%s}</Link>
        <ul>
          {links.map((link) => (
            <li key={link.to}>
              <Link to={link.to}>{link.label}</Link>
            </li>
          ))}
        </ul>
      </nav>
    </header>
  )
}
`, render.GeneratedBy, jsString(name))
	}
	return fmt.Sprintf(`// %s
export default function Header() {
  return (
    <header className="app-header">
      <nav>
        <a href="/">{%s}</a>
      </nav>
    </header>
  )
}
`, render.GeneratedBy, jsString(name))
}

func reactButton(typescript bool) string {
	props := tsOnly(typescript, `export interface ButtonProps extends React.ButtonHTMLAttributes<HTMLButtonElement> {
  variant?: 'primary' | 'secondary'
}

`)
	return fmt.Sprintf(`// %s
import React from 'react'

%sexport default function Button({ variant = 'primary', className = '', children, ...props }%s) {
  const classes = ['btn', 'btn-' + variant, className].filter(Boolean).join(' ')
  return (
    <button className={classes} {...props}>
      {children}
    </button>
  )
}
`, render.GeneratedBy, props, tsOnly(typescript, ": ButtonProps"))
}

func reactRouter(schema projectcfg.ProjectSchema) string {
	return fmt.Sprintf(`// %[1]s
import { BrowserRouter, Routes, Route } from 'react-router-dom'
import Header from '../components/layout/Header'
import Button from '../components/ui/Button'

function Home() {
  return (
    <section>
      <h1>{%[2]s}</h1>
      <p>{%[3]s}</p>
      <Button>Get started</Button>
    </section>
  )
}

function About() {
  return (
    <section>
      <h1>About</h1>
      <p>{%[3]s}</p>
    </section>
  )
}

export default function AppRouter() {
  return (
    <BrowserRouter>
      <Header />
      <main className="app-main">
        <Routes>
          <Route path="/" element={<Home />} />
          <Route path="/about" element={<About />} />
        </Routes>
      </main>
    </BrowserRouter>
  )
}
`, render.GeneratedBy, jsString(schema.Name), jsString(schema.Description))
}

// reactStore returns the store module for a state library, or an empty
// path when the library has none.
func reactStore(state projectcfg.StateManagement, typescript bool) (string, func() string) {
	mod := projectcfg.Ext(typescript, false)
	switch state {
	case projectcfg.StateReduxToolkit:
		return "src/store/index" + mod, func() string { return reduxStore(typescript) }
	case projectcfg.StateZustand:
		return "src/store/counterStore" + mod, func() string { return zustandStore(typescript) }
	case projectcfg.StateMobX:
		return "src/store/counterStore" + mod, mobxStore
	case projectcfg.StateRecoil:
		return "src/store/atoms" + mod, recoilAtoms
	case projectcfg.StateContextAPI:
		return "src/store/AppContext" + projectcfg.Ext(typescript, true), func() string { return contextStore(typescript) }
	}
	return "", nil
}

func reduxStore(typescript bool) string {
	return fmt.Sprintf(`// %s
import { configureStore, createSlice%s } from '@reduxjs/toolkit'

const counterSlice = createSlice({
  name: 'counter',
  initialState: { value: 0 },
  reducers: {
    increment: (state) => {
      state.value += 1
    },
    decrement: (state) => {
      state.value -= 1
    },
    incrementByAmount: (state, action%s) => {
      state.value += action.payload
    },
  },
})

export const { increment, decrement, incrementByAmount } = counterSlice.actions

export const store = configureStore({
  reducer: {
    counter: counterSlice.reducer,
  },
})
%s`, render.GeneratedBy, tsOnly(typescript, ", type PayloadAction"), tsOnly(typescript, ": PayloadAction<number>"), tsOnly(typescript, `
export type RootState = ReturnType<typeof store.getState>
export type AppDispatch = typeof store.dispatch
`))
}

func zustandStore(typescript bool) string {
	iface := tsOnly(typescript, `interface CounterState {
  count: number
  increment: () => void
  decrement: () => void
  reset: () => void
}

`)
	return fmt.Sprintf(`// %s
import { create } from 'zustand'

%sexport const useCounterStore = create%s((set) => ({
  count: 0,
  increment: () => set((state) => ({ count: state.count + 1 })),
  decrement: () => set((state) => ({ count: state.count - 1 })),
  reset: () => set({ count: 0 }),
}))
`, render.GeneratedBy, iface, tsOnly(typescript, "<CounterState>()"))
}

func mobxStore() string {
	return header("// %s\n") + `import { makeAutoObservable } from 'mobx'

class CounterStore {
  count = 0

  constructor() {
    makeAutoObservable(this)
  }

  increment() {
    this.count += 1
  }

  decrement() {
    this.count -= 1
  }

  reset() {
    this.count = 0
  }
}

export const counterStore = new CounterStore()
`
}

func recoilAtoms() string {
	return header("// %s\n") + `import { atom } from 'recoil'

export const counterState = atom({
  key: 'counterState',
  default: 0,
})
`
}

func contextStore(typescript bool) string {
	types := tsOnly(typescript, `interface AppState {
  count: number
  setCount: (count: number) => void
}

`)
	return fmt.Sprintf(`// %s
import { createContext, useContext, useState } from 'react'

%sconst AppContext = createContext%s(undefined)

export function AppProvider({ children }%s) {
  const [count, setCount] = useState(0)
  return <AppContext.Provider value={{ count, setCount }}>{children}</AppContext.Provider>
}

export function useAppContext() {
  const ctx = useContext(AppContext)
  if (!ctx) {
    throw new Error('useAppContext must be used within AppProvider')
  }
  return ctx
}
`, render.GeneratedBy, types, tsOnly(typescript, "<AppState | undefined>"), tsOnly(typescript, ": { children: React.ReactNode }"))
}

func reactSetupTests() string {
	return header("// %s\n") + "import '@testing-library/jest-dom'\n"
}

func reactAppTest(name string, vite bool) string {
	imports := "import { render, screen } from '@testing-library/react'\n"
	if vite {
		imports = "import { describe, it, expect } from 'vitest'\n" + imports
	}
	return fmt.Sprintf(`// %s
%simport App from '../App'

describe('App', () => {
  it('renders the project name', () => {
    render(<App />)
    expect(screen.getAllByText(%s).length).toBeGreaterThan(0)
  })
})
`, render.GeneratedBy, imports, jsString(name))
}

func reactESLint(typescript bool) string {
	parser := tsOnly(typescript, `
  "parser": "@typescript-eslint/parser",`)
	return `{
  "root": true,
  "env": { "browser": true, "es2020": true },` + parser + `
  "extends": ["eslint:recommended", "plugin:react-hooks/recommended"],
  "parserOptions": { "ecmaVersion": "latest", "sourceType": "module", "ecmaFeatures": { "jsx": true } },
  "ignorePatterns": ["dist", "build"]
}
`
}

func reactComponent(name string, typescript bool) string {
	props := tsOnly(typescript, fmt.Sprintf(`export interface %sProps {
  className?: string
  children?: React.ReactNode
}

`, name))
	return fmt.Sprintf(`// %[1]s
import React from 'react'

%[2]sexport function %[3]s({ className, children }%[4]s) {
  return <div className={className}>{children}</div>
}

export default %[3]s
`, render.GeneratedBy, props, name, tsOnly(typescript, ": "+name+"Props"))
}

func reactHook(name string, typescript bool) string {
	return fmt.Sprintf(`// %[1]s
import { useCallback, useState } from 'react'

export function %[2]s(initial%[3]s = false) {
  const [value, setValue] = useState(initial)
  const toggle = useCallback(() => setValue((v) => !v), [])
  return { value, setValue, toggle }
}

export default %[2]s
`, render.GeneratedBy, name, tsOnly(typescript, ": boolean"))
}
