package agent

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/dusk-indust/frontgen/internal/render"
)

// Static bodies shared by more than one framework.

var (
	nextjsContent = []string{
		"./app/**/*.{js,ts,jsx,tsx,mdx}",
		"./pages/**/*.{js,ts,jsx,tsx,mdx}",
		"./components/**/*.{js,ts,jsx,tsx,mdx}",
	}
	reactContent = []string{"./index.html", "./src/**/*.{js,ts,jsx,tsx}"}
	vueContent   = []string{"./index.html", "./src/**/*.{vue,js,ts,jsx,tsx}"}
)

func header(comment string) string {
	return fmt.Sprintf(comment, render.GeneratedBy)
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// jsQuote quotes s as a single-quoted JavaScript string literal, the
// style the generated sources use.
func jsQuote(s string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(jsString(s), `"`), `"`)
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, "'", `\'`)
	return "'" + inner + "'"
}

func tailwindConfig(esm bool, content []string) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	sb.WriteString("/** @type {import('tailwindcss').Config} */\n")
	if esm {
		sb.WriteString("export default {\n")
	} else {
		sb.WriteString("module.exports = {\n")
	}
	sb.WriteString("  content: [\n")
	for _, c := range content {
		fmt.Fprintf(&sb, "    '%s',\n", c)
	}
	sb.WriteString("  ],\n  theme: {\n    extend: {},\n  },\n  plugins: [],\n}\n")
	return sb.String()
}

func postcssConfig(esm bool) string {
	export := "module.exports ="
	if esm {
		export = "export default"
	}
	return header("// %s\n") + export + ` {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
}
`
}

func globalsCSS(tailwind bool) string {
	var sb strings.Builder
	sb.WriteString(header("/* %s */\n"))
	if tailwind {
		sb.WriteString("@tailwind base;\n@tailwind components;\n@tailwind utilities;\n\n")
	}
	sb.WriteString(`:root {
  --foreground: #171717;
  --background: #ffffff;
}

@media (prefers-color-scheme: dark) {
  :root {
    --foreground: #ededed;
    --background: #0a0a0a;
  }
}

* {
  box-sizing: border-box;
}

body {
  margin: 0;
  min-height: 100vh;
  color: var(--foreground);
  background: var(--background);
  font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;
}

a {
  color: inherit;
  text-decoration: none;
}
`)
	return sb.String()
}

func gitignore(framework string) string {
	var sb strings.Builder
	sb.WriteString(header("# %s\n"))
	sb.WriteString("node_modules/\ndist/\nbuild/\ncoverage/\n")
	if framework == "nextjs" {
		sb.WriteString(".next/\nout/\nnext-env.d.ts\n")
	}
	sb.WriteString(".env\n.env.local\n.env.*.local\n*.log\n.DS_Store\n.vscode/*\n!.vscode/extensions.json\n.idea/\n")
	return sb.String()
}

func prettierConfig() string {
	return `{
  "semi": false,
  "singleQuote": true,
  "trailingComma": "all",
  "printWidth": 100,
  "tabWidth": 2
}
`
}

func webManifest(name, description string) string {
	return fmt.Sprintf(`{
  "name": %[1]q,
  "short_name": %[1]q,
  "description": %[2]q,
  "start_url": "/",
  "display": "standalone",
  "background_color": "#ffffff",
  "theme_color": "#2563eb",
  "icons": []
}
`, name, description)
}

// indexHTML is the Vite entry page for React and Vue.
func indexHTML(title, rootID, entry string) string {
	return fmt.Sprintf(`<!doctype html>
<!-- %s -->
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="%s"></div>
    <script type="module" src="%s"></script>
  </body>
</html>
`, render.GeneratedBy, html.EscapeString(title), rootID, entry)
}
