package agent

import (
	"fmt"

	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
)

func nextConfig(cfg projectcfg.NextJSConfig) string {
	swc := ""
	if !cfg.AppRouter {
		swc = "\n  swcMinify: true,"
	}
	return header("// %s\n") + `/** @type {import('next').NextConfig} */
const nextConfig = {
  reactStrictMode: true,
  poweredByHeader: false,` + swc + `
}

module.exports = nextConfig
`
}

func nextTSConfig() string {
	return `{
  "compilerOptions": {
    "target": "ES2017",
    "lib": ["dom", "dom.iterable", "esnext"],
    "allowJs": true,
    "skipLibCheck": true,
    "strict": true,
    "noEmit": true,
    "esModuleInterop": true,
    "module": "esnext",
    "moduleResolution": "bundler",
    "resolveJsonModule": true,
    "isolatedModules": true,
    "jsx": "preserve",
    "incremental": true,
    "plugins": [{ "name": "next" }],
    "paths": {
      "@/*": ["./*"]
    }
  },
  "include": ["next-env.d.ts", "**/*.ts", "**/*.tsx", ".next/types/**/*.ts"],
  "exclude": ["node_modules"]
}
`
}

func nextRootLayout(schema projectcfg.ProjectSchema, typescript bool) string {
	metaType, childrenType, metaImport := "", "", ""
	if typescript {
		metaImport = "import type { Metadata } from 'next'\n"
		metaType = ": Metadata"
		childrenType = ": { children: React.ReactNode }"
	}
	return fmt.Sprintf(`// %[1]s
%[2]simport Header from '../components/layout/Header'
import Footer from '../components/layout/Footer'
import './globals.css'

export const metadata%[3]s = {
  title: %[4]s,
  description: %[5]s,
}

export default function RootLayout({ children }%[6]s) {
  return (
    <html lang="en">
      <body>
        <Header />
        <main>{children}</main>
        <Footer />
      </body>
    </html>
  )
}
`, render.GeneratedBy, metaImport, metaType, jsString(schema.Name), jsString(schema.Description), childrenType)
}

func nextHomePage(schema projectcfg.ProjectSchema) string {
	return fmt.Sprintf(`// %s
export default function Home() {
  return (
    <section className="container mx-auto px-4 py-16">
      <h1 className="text-4xl font-bold">{%s}</h1>
      <p className="mt-4 text-lg">{%s}</p>
    </section>
  )
}
`, render.GeneratedBy, jsString(schema.Name), jsString(schema.Description))
}

func nextPagesApp(typescript bool) string {
	typeImport, propsType := "", ""
	if typescript {
		typeImport = "import type { AppProps } from 'next/app'\n"
		propsType = ": AppProps"
	}
	return fmt.Sprintf(`// %s
%simport Header from '../components/layout/Header'
import Footer from '../components/layout/Footer'
import '../styles/globals.css'

export default function App({ Component, pageProps }%s) {
  return (
    <>
      <Header />
      <main>
        <Component {...pageProps} />
      </main>
      <Footer />
    </>
  )
}
`, render.GeneratedBy, typeImport, propsType)
}

func nextPagesIndex(schema projectcfg.ProjectSchema) string {
	return fmt.Sprintf(`// %[1]s
import Head from 'next/head'

export default function Home() {
  return (
    <>
      <Head>
        <title>{%[2]s}</title>
        <meta name="description" content={%[3]s} />
      </Head>
      <section className="container mx-auto px-4 py-16">
        <h1 className="text-4xl font-bold">{%[2]s}</h1>
        <p className="mt-4 text-lg">{%[3]s}</p>
      </section>
    </>
  )
}
`, render.GeneratedBy, jsString(schema.Name), jsString(schema.Description))
}

func nextHeader(name string) string {
	return fmt.Sprintf(`// %s
import Link from 'next/link'

const links = [
  { href: '/', label: 'Home' },
  { href: '/about', label: 'About' },
]

export default function Header() {
  return (
    <header className="border-b">
      <nav className="container mx-auto flex items-center justify-between px-4 py-4">
        <Link href="/" className="text-xl font-semibold">
          {%s}
        </Link>
        <ul className="flex gap-6">
          {links.map((link) => (
            <li key={link.href}>
              <Link href={link.href}>{link.label}</Link>
            </li>
          ))}
        </ul>
      </nav>
    </header>
  )
}
`, render.GeneratedBy, jsString(name))
}

func nextFooter(name string) string {
	return fmt.Sprintf(`// %s
export default function Footer() {
  return (
    <footer className="border-t">
      <div className="container mx-auto px-4 py-6 text-sm">
        &copy; {new Date().getFullYear()} {%s}
      </div>
    </footer>
  )
}
`, render.GeneratedBy, jsString(name))
}

func nextESLint() string {
	return `{
  "extends": ["next/core-web-vitals"]
}
`
}

func nextComponent(name string, typescript bool) string {
	props, propsType := "", ""
	if typescript {
		props = fmt.Sprintf(`export interface %sProps {
  className?: string
  children?: React.ReactNode
}

`, name)
		propsType = ": " + name + "Props"
	}
	return fmt.Sprintf(`// %[1]s
%[2]sexport default function %[3]s({ className, children }%[4]s) {
  return <div className={className}>{children}</div>
}
`, render.GeneratedBy, props, name, propsType)
}

func nextPage(page string) string {
	return fmt.Sprintf(`// %s
export default function %sPage() {
  return (
    <main className="container mx-auto px-4 py-8">
      <h1 className="text-3xl font-bold">{%s}</h1>
    </main>
  )
}
`, render.GeneratedBy, render.Pascal(page), jsString(page))
}

func nextNestedLayout(segment string, typescript bool) string {
	childrenType := ""
	if typescript {
		childrenType = ": { children: React.ReactNode }"
	}
	return fmt.Sprintf(`// %s
export default function %sLayout({ children }%s) {
  return <section>{children}</section>
}
`, render.GeneratedBy, render.Pascal(segment), childrenType)
}

func nextAPIRoute(route string, typescript bool) string {
	reqType := ""
	if typescript {
		reqType = ": Request"
	}
	return fmt.Sprintf(`// %[1]s
import { NextResponse } from 'next/server'

export async function GET() {
  return NextResponse.json({ route: %[2]s, ok: true })
}

export async function POST(request%[3]s) {
  const body = await request.json()
  return NextResponse.json({ route: %[2]s, received: body }, { status: 201 })
}
`, render.GeneratedBy, jsString("/api/"+route), reqType)
}
