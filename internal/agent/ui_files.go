package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dusk-indust/frontgen/internal/projectcfg"
	"github.com/dusk-indust/frontgen/internal/render"
)

var shades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

// palette is a primary colour scale keyed like shades.
type palette []string

var palettes = map[string]palette{
	"blue":       {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"},
	"green":      {"#ecfdf5", "#d1fae5", "#a7f3d0", "#6ee7b7", "#34d399", "#10b981", "#059669", "#047857", "#065f46", "#064e3b"},
	"purple":     {"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7c3aed", "#6b21a8", "#581c87"},
	"orange":     {"#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12"},
	"monochrome": {"#fafafa", "#f5f5f5", "#e5e5e5", "#d4d4d4", "#a3a3a3", "#737373", "#525252", "#404040", "#262626", "#171717"},
}

// paletteFor returns the named palette; custom and unknown names get blue.
func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["blue"]
}

func (p palette) shade(s string) string {
	for i, k := range shades {
		if k == s {
			return p[i]
		}
	}
	return ""
}

func writeScale(sb *strings.Builder, name string, p palette) {
	fmt.Fprintf(sb, "  %s: {\n", name)
	for i, k := range shades {
		fmt.Fprintf(sb, "    %s: '%s',\n", k, p[i])
	}
	sb.WriteString("  },\n")
}

func colorTokens(primary palette) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	sb.WriteString("export const colors = {\n")
	writeScale(&sb, "primary", primary)
	writeScale(&sb, "gray", palette{"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827"})
	sb.WriteString(`  success: {
    50: '#ecfdf5',
    500: '#10b981',
    600: '#059669',
  },
  warning: {
    50: '#fffbeb',
    500: '#f59e0b',
    600: '#d97706',
  },
  error: {
    50: '#fef2f2',
    500: '#ef4444',
    600: '#dc2626',
  },
} as const

export type ColorName = keyof typeof colors

export default colors
`)
	return sb.String()
}

func typographyTokens(scale string) string {
	sans := "'Inter', 'system-ui', 'sans-serif'"
	if scale == "classic" {
		sans = "'Georgia', 'Times New Roman', 'serif'"
	}
	return fmt.Sprintf(`// %s
export const typography = {
  fontFamily: {
    sans: [%s],
    mono: ['Monaco', 'Consolas', 'monospace'],
  },
  fontSize: {
    xs: '0.75rem',
    sm: '0.875rem',
    base: '1rem',
    lg: '1.125rem',
    xl: '1.25rem',
    '2xl': '1.5rem',
    '3xl': '1.875rem',
    '4xl': '2.25rem',
    '5xl': '3rem',
    '6xl': '3.75rem',
  },
  fontWeight: {
    light: '300',
    normal: '400',
    medium: '500',
    semibold: '600',
    bold: '700',
    extrabold: '800',
  },
  lineHeight: {
    tight: '1.2',
    normal: '1.5',
    relaxed: '1.75',
  },
  letterSpacing: {
    tight: '-0.025em',
    normal: '0',
    wide: '0.025em',
  },
} as const

export default typography
`, render.GeneratedBy, sans)
}

// spacingUnit reads the pixel base of a spacing scale such as "8px".
func spacingUnit(scale string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(scale), "px"))
	if err != nil || n <= 0 {
		return 8
	}
	return n
}

func designTokens(cfg projectcfg.UIDesignConfig) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	sb.WriteString("import { colors } from './colors'\nimport { typography } from './typography'\n\n")

	unit := spacingUnit(cfg.SpacingScale)
	sb.WriteString("export const spacing = {\n")
	for _, step := range []struct {
		name   string
		factor float64
	}{{"xs", 0.5}, {"sm", 1}, {"md", 2}, {"lg", 3}, {"xl", 4}, {"'2xl'", 6}, {"'3xl'", 8}} {
		fmt.Fprintf(&sb, "  %s: '%gpx',\n", step.name, float64(unit)*step.factor)
	}
	sb.WriteString("} as const\n\n")

	fmt.Fprintf(&sb, `export const borderRadius = {
  none: '0px',
  sm: '4px',
  md: %s,
  lg: '12px',
  xl: '16px',
  full: '9999px',
} as const
`, jsString(cfg.BorderRadius))

	members := []string{"colors", "typography", "spacing", "borderRadius"}
	if cfg.Shadows {
		members = append(members, "shadows")
		sb.WriteString(`
export const shadows = {
  sm: '0 1px 2px 0 rgb(0 0 0 / 0.05)',
  md: '0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)',
  lg: '0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)',
  xl: '0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)',
} as const
`)
	}
	if cfg.Animations {
		members = append(members, "animations")
		sb.WriteString(`
export const animations = {
  duration: {
    fast: '150ms',
    normal: '300ms',
    slow: '500ms',
  },
  easing: {
    easeInOut: 'cubic-bezier(0.4, 0, 0.2, 1)',
    easeOut: 'cubic-bezier(0, 0, 0.2, 1)',
    easeIn: 'cubic-bezier(0.4, 0, 1, 1)',
  },
} as const
`)
	}
	fmt.Fprintf(&sb, "\nexport const designTokens = {\n  %s,\n}\n\nexport { colors, typography }\nexport default designTokens\n",
		strings.Join(members, ",\n  "))
	return sb.String()
}

func uiButton() string {
	return header("// %s\n") + `import React from 'react'

export interface ButtonProps extends React.ButtonHTMLAttributes<HTMLButtonElement> {
  variant?: 'primary' | 'secondary' | 'outline' | 'ghost'
  size?: 'sm' | 'md' | 'lg'
}

const base =
  'inline-flex items-center justify-center font-medium rounded-md transition-colors duration-200 ' +
  'focus:outline-none focus:ring-2 focus:ring-offset-2 disabled:opacity-50 disabled:cursor-not-allowed'

const variants = {
  primary: 'bg-primary-600 text-white hover:bg-primary-700 focus:ring-primary-500',
  secondary: 'bg-gray-600 text-white hover:bg-gray-700 focus:ring-gray-500',
  outline: 'border border-gray-300 text-gray-700 hover:bg-gray-50 focus:ring-gray-500',
  ghost: 'text-gray-700 hover:bg-gray-100 focus:ring-gray-500',
}

const sizes = {
  sm: 'px-3 py-1.5 text-sm',
  md: 'px-4 py-2 text-base',
  lg: 'px-6 py-3 text-lg',
}

const Button = React.forwardRef<HTMLButtonElement, ButtonProps>(
  ({ variant = 'primary', size = 'md', type = 'button', disabled = false, className = '', ...props }, ref) => (
    <button
      ref={ref}
      type={type}
      disabled={disabled}
      aria-disabled={disabled}
      className={[base, variants[variant], sizes[size], className].filter(Boolean).join(' ')}
      {...props}
    />
  ),
)

Button.displayName = 'Button'

export default Button
`
}

func uiComponent(name string) string {
	return fmt.Sprintf(`// %[1]s
import React from 'react'

export interface %[2]sProps extends React.HTMLAttributes<HTMLDivElement> {
  variant?: 'primary' | 'secondary'
}

const %[2]s = React.forwardRef<HTMLDivElement, %[2]sProps>(
  ({ variant = 'primary', className = '', ...props }, ref) => (
    <div ref={ref} data-variant={variant} className={['%[3]s', className].filter(Boolean).join(' ')} {...props} />
  ),
)

%[2]s.displayName = '%[2]s'

export default %[2]s
`, render.GeneratedBy, name, render.Kebab(name))
}

func componentIndex(names []string) string {
	var sb strings.Builder
	sb.WriteString(header("// %s\n"))
	for _, n := range names {
		fmt.Fprintf(&sb, "export { default as %[1]s } from './%[1]s'\n", n)
	}
	return sb.String()
}

func themeProvider() string {
	return header("// %s\n") + `import React, { createContext, useContext, useEffect, useState } from 'react'

type Theme = 'light' | 'dark'

interface ThemeContextValue {
  theme: Theme
  toggleTheme: () => void
}

const ThemeContext = createContext<ThemeContextValue | undefined>(undefined)

export function useTheme() {
  const ctx = useContext(ThemeContext)
  if (!ctx) {
    throw new Error('useTheme must be used within a ThemeProvider')
  }
  return ctx
}

export function ThemeProvider({ children }: { children: React.ReactNode }) {
  const [theme, setTheme] = useState<Theme>('light')

  useEffect(() => {
    const saved = localStorage.getItem('theme')
    if (saved === 'light' || saved === 'dark') {
      setTheme(saved)
    } else if (window.matchMedia('(prefers-color-scheme: dark)').matches) {
      setTheme('dark')
    }
  }, [])

  useEffect(() => {
    localStorage.setItem('theme', theme)
    document.documentElement.classList.toggle('dark', theme === 'dark')
  }, [theme])

  const toggleTheme = () => setTheme((prev) => (prev === 'light' ? 'dark' : 'light'))

  return <ThemeContext.Provider value={{ theme, toggleTheme }}>{children}</ThemeContext.Provider>
}

export default ThemeProvider
`
}

func animationsCSS() string {
	return header("/* %s */\n") + `@keyframes fadeIn {
  from {
    opacity: 0;
  }
  to {
    opacity: 1;
  }
}

@keyframes slideInUp {
  from {
    transform: translateY(100%);
    opacity: 0;
  }
  to {
    transform: translateY(0);
    opacity: 1;
  }
}

@keyframes slideInDown {
  from {
    transform: translateY(-100%);
    opacity: 0;
  }
  to {
    transform: translateY(0);
    opacity: 1;
  }
}

@keyframes scaleIn {
  from {
    transform: scale(0.9);
    opacity: 0;
  }
  to {
    transform: scale(1);
    opacity: 1;
  }
}

@keyframes spin {
  to {
    transform: rotate(360deg);
  }
}

.animate-fade-in {
  animation: fadeIn 0.3s ease-in-out;
}

.animate-slide-in-up {
  animation: slideInUp 0.3s ease-out;
}

.animate-slide-in-down {
  animation: slideInDown 0.3s ease-out;
}

.animate-scale-in {
  animation: scaleIn 0.2s ease-out;
}

.animate-spin {
  animation: spin 1s linear infinite;
}

.transition-fast {
  transition: all 0.15s ease;
}

.transition-normal {
  transition: all 0.3s ease;
}

.transition-slow {
  transition: all 0.5s ease;
}

@media (prefers-reduced-motion: reduce) {
  *,
  *::before,
  *::after {
    animation-duration: 0.01ms !important;
    transition-duration: 0.01ms !important;
  }
}
`
}

func accessibilityUtils() string {
	return header("// %s\n") + `export const screenReaderOnly = {
  position: 'absolute',
  width: '1px',
  height: '1px',
  padding: '0',
  margin: '-1px',
  overflow: 'hidden',
  clip: 'rect(0, 0, 0, 0)',
  whiteSpace: 'nowrap',
  border: '0',
} as const

export const focusRing = {
  outline: '2px solid transparent',
  outlineOffset: '2px',
  boxShadow: '0 0 0 2px rgba(59, 130, 246, 0.5)',
} as const

export function announceToScreenReader(message: string, timeout = 1000) {
  const node = document.createElement('div')
  node.setAttribute('aria-live', 'polite')
  node.setAttribute('aria-atomic', 'true')
  Object.assign(node.style, screenReaderOnly)
  node.textContent = message
  document.body.appendChild(node)
  setTimeout(() => node.remove(), timeout)
}

const focusable =
  'a[href], button:not([disabled]), textarea, input:not([disabled]), select, [tabindex]:not([tabindex="-1"])'

export function trapFocus(element: HTMLElement) {
  const handleTab = (e: KeyboardEvent) => {
    if (e.key !== 'Tab') {
      return
    }
    const nodes = element.querySelectorAll<HTMLElement>(focusable)
    if (nodes.length === 0) {
      return
    }
    const first = nodes[0]
    const last = nodes[nodes.length - 1]
    if (e.shiftKey && document.activeElement === first) {
      last.focus()
      e.preventDefault()
    } else if (!e.shiftKey && document.activeElement === last) {
      first.focus()
      e.preventDefault()
    }
  }
  element.addEventListener('keydown', handleTab)
  return () => element.removeEventListener('keydown', handleTab)
}

function luminance(hex: string) {
  const rgb = hex
    .replace('#', '')
    .match(/.{2}/g)!
    .map((c) => parseInt(c, 16) / 255)
    .map((c) => (c <= 0.03928 ? c / 12.92 : Math.pow((c + 0.055) / 1.055, 2.4)))
  return 0.2126 * rgb[0] + 0.7152 * rgb[1] + 0.0722 * rgb[2]
}

// contrastRatio implements the WCAG 2.1 relative luminance ratio.
export function contrastRatio(foreground: string, background: string) {
  const a = luminance(foreground)
  const b = luminance(background)
  return (Math.max(a, b) + 0.05) / (Math.min(a, b) + 0.05)
}

export function meetsAA(foreground: string, background: string, largeText = false) {
  return contrastRatio(foreground, background) >= (largeText ? 3 : 4.5)
}
`
}

func styleGuide(name string, cfg projectcfg.UIDesignConfig, p palette) string {
	darkMode := "Dark mode is not enabled in this configuration."
	if cfg.DarkMode {
		darkMode = "The design system supports dark mode. Wrap the application in ThemeProvider and call useTheme().toggleTheme() to switch."
	}
	var components strings.Builder
	for _, c := range uiComponents {
		fmt.Fprintf(&components, "- %s\n", c)
	}
	unit := spacingUnit(cfg.SpacingScale)
	return fmt.Sprintf(`<!-- %[1]s -->
# %[2]s Design System

Design system: %[3]s. Component library: %[4]s. Palette: %[5]s.

## Color Palette

### Primary
- Primary 500: %[6]s
- Primary 600: %[7]s

### Semantic
- Success: #10b981
- Warning: #f59e0b
- Error: #ef4444

## Typography

Scale: %[8]s. Sans-serif and monospace families are defined in src/styles/tokens/typography.ts.

## Spacing

Spacing is based on a %[9]dpx grid. Border radius: %[10]s.

## Components

%[11]s
## Dark Mode

%[12]s

## Accessibility

- Components target WCAG 2.1 AA.
- Utilities in src/utils/ui/accessibility.ts cover focus trapping, announcements and contrast checks.

## Usage

1. Use design tokens for colors, spacing and typography.
2. Import components from src/components/ui.
3. Test components in light and dark themes.
`, render.GeneratedBy, name, cfg.DesignSystem, cfg.ComponentLibrary, cfg.ColorPalette, p.shade("500"), p.shade("600"),
		cfg.TypographyScale, unit, cfg.BorderRadius, components.String(), darkMode)
}
