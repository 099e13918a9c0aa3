package projectcfg

// BuildTool selects the bundler.
type BuildTool string

const (
	BuildVite    BuildTool = "vite"
	BuildWebpack BuildTool = "webpack"
	BuildParcel  BuildTool = "parcel"
	BuildRollup  BuildTool = "rollup"
	BuildVueCLI  BuildTool = "vue_cli"
)

// StateManagement selects the state library.
type StateManagement string

const (
	StateReduxToolkit   StateManagement = "redux_toolkit"
	StateZustand        StateManagement = "zustand"
	StateContextAPI     StateManagement = "context_api"
	StateMobX           StateManagement = "mobx"
	StateRecoil         StateManagement = "recoil"
	StatePinia          StateManagement = "pinia"
	StateVuex           StateManagement = "vuex"
	StateCompositionAPI StateManagement = "composition_api"
)

// NextJSConfig configures a Next.js project.
type NextJSConfig struct {
	TypeScript   bool     `param:"typescript"`
	AppRouter    bool     `param:"app_router"`
	SrcDirectory bool     `param:"src_directory"`
	TailwindCSS  bool     `param:"tailwind_css"`
	ESLint       bool     `param:"eslint"`
	ImportAlias  string   `param:"import_alias"`
	Features     []string `param:"features"`
}

// ReactConfig configures a React single-page application.
type ReactConfig struct {
	TypeScript       bool            `param:"typescript"`
	BuildTool        BuildTool       `param:"build_tool" oneof:"vite webpack parcel rollup"`
	StateManagement  StateManagement `param:"state_management" oneof:"redux_toolkit zustand context_api mobx recoil"`
	Routing          bool            `param:"routing"`
	Testing          bool            `param:"testing"`
	PWA              bool            `param:"pwa"`
	StyledComponents bool            `param:"styled_components"`
	TailwindCSS      bool            `param:"tailwind_css"`
	ESLint           bool            `param:"eslint"`
	Prettier         bool            `param:"prettier"`
}

// VueConfig configures a Vue application.
type VueConfig struct {
	VueVersion      string          `param:"vue_version" oneof:"2 3"`
	TypeScript      bool            `param:"typescript"`
	BuildTool       BuildTool       `param:"build_tool" oneof:"vite webpack vue_cli"`
	StateManagement StateManagement `param:"state_management" oneof:"pinia vuex composition_api"`
	UILibrary       string          `param:"ui_library" oneof:"vuetify quasar element_plus naive_ui custom"`
	Router          bool            `param:"router"`
	PWA             bool            `param:"pwa"`
	SSR             bool            `param:"ssr"`
	Testing         bool            `param:"testing"`
	ESLint          bool            `param:"eslint"`
	Prettier        bool            `param:"prettier"`
	TailwindCSS     bool            `param:"tailwind_css"`
	CompositionAPI  bool            `param:"composition_api"`
}

// UIDesignConfig configures a framework-agnostic design system.
type UIDesignConfig struct {
	DesignSystem     string `param:"design_system" oneof:"material_design apple_hig fluent carbon custom"`
	ColorPalette     string `param:"color_palette" oneof:"blue green purple orange monochrome custom"`
	ComponentLibrary string `param:"component_library" oneof:"material_ui chakra_ui mantine headless_ui shadcn_ui custom"`
	TypographyScale  string `param:"typography_scale"`
	SpacingScale     string `param:"spacing_scale"`
	BorderRadius     string `param:"border_radius"`
	Shadows          bool   `param:"shadows"`
	Animations       bool   `param:"animations"`
	DarkMode         bool   `param:"dark_mode"`
	Responsive       bool   `param:"responsive"`
	Accessibility    bool   `param:"accessibility"`
}

var (
	NextJS = NewBuilder("nextjs", func() NextJSConfig {
		return NextJSConfig{
			TypeScript:  true,
			AppRouter:   true,
			TailwindCSS: true,
			ESLint:      true,
			ImportAlias: "@/*",
		}
	})

	React = NewBuilder("react", func() ReactConfig {
		return ReactConfig{
			TypeScript:      true,
			BuildTool:       BuildVite,
			StateManagement: StateReduxToolkit,
			Routing:         true,
			Testing:         true,
			TailwindCSS:     true,
			ESLint:          true,
			Prettier:        true,
		}
	})

	Vue = NewBuilder("vue", func() VueConfig {
		return VueConfig{
			VueVersion:      "3",
			TypeScript:      true,
			BuildTool:       BuildVite,
			StateManagement: StatePinia,
			UILibrary:       "custom",
			Router:          true,
			Testing:         true,
			ESLint:          true,
			Prettier:        true,
			TailwindCSS:     true,
			CompositionAPI:  true,
		}
	})

	UIDesign = NewBuilder("ui", func() UIDesignConfig {
		return UIDesignConfig{
			DesignSystem:     "custom",
			ColorPalette:     "blue",
			ComponentLibrary: "custom",
			TypographyScale:  "modern",
			SpacingScale:     "8px",
			BorderRadius:     "8px",
			Shadows:          true,
			Animations:       true,
			DarkMode:         true,
			Responsive:       true,
			Accessibility:    true,
		}
	})
)

// Ext returns the source extension for components given the TypeScript flag.
func Ext(typescript bool, jsx bool) string {
	switch {
	case typescript && jsx:
		return ".tsx"
	case typescript:
		return ".ts"
	case jsx:
		return ".jsx"
	default:
		return ".js"
	}
}
