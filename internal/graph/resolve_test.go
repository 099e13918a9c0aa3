package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	files := []string{
		"src/App.tsx",
		"src/components/Button.tsx",
		"src/components/index.ts",
		"src/components/layout/Header.vue",
		"src/utils/format.ts",
		"src/index.css",
		"lib/api.ts",
	}
	r := NewResolver(files, map[string]string{"@/": "src/", "~lib/": "lib/"})

	tests := []struct {
		from, spec string
		want       Resolution
	}{
		{"src/App.tsx", "./components/Button", Resolution{Class: ImportLocal, Target: "src/components/Button.tsx"}},
		{"src/App.tsx", "./components", Resolution{Class: ImportLocal, Target: "src/components/index.ts"}},
		{"src/App.tsx", "./components/layout/Header.vue", Resolution{Class: ImportLocal, Target: "src/components/layout/Header.vue"}},
		{"src/App.tsx", "./index.css", Resolution{Class: ImportLocal, Target: "src/index.css"}},
		{"src/components/Button.tsx", "../utils/format", Resolution{Class: ImportLocal, Target: "src/utils/format.ts"}},
		{"src/components/Button.tsx", "@/utils/format", Resolution{Class: ImportLocal, Target: "src/utils/format.ts"}},
		{"src/App.tsx", "~lib/api", Resolution{Class: ImportLocal, Target: "lib/api.ts"}},
		{"src/App.tsx", "./missing", Resolution{Class: ImportDangling, Target: "src/missing"}},
		{"src/App.tsx", "@/nope/thing", Resolution{Class: ImportDangling, Target: "src/nope/thing"}},
		{"src/App.tsx", "react", Resolution{Class: ImportExternal, Package: "react"}},
		{"src/App.tsx", "next/link", Resolution{Class: ImportExternal, Package: "next"}},
		{"src/App.tsx", "@vitejs/plugin-react", Resolution{Class: ImportExternal, Package: "@vitejs/plugin-react"}},
		{"src/App.tsx", "node:url", Resolution{Class: ImportBuiltin}},
		{"src/App.tsx", "path", Resolution{Class: ImportBuiltin}},
		{"src/App.tsx", "virtual:pwa-register", Resolution{Class: ImportBuiltin}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.from, tt.spec))
		})
	}
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "react", PackageName("react"))
	assert.Equal(t, "react-dom", PackageName("react-dom/client"))
	assert.Equal(t, "@scope/pkg", PackageName("@scope/pkg/sub/path"))
	assert.Equal(t, "@scope", PackageName("@scope"))
}

func TestDefaultAliases(t *testing.T) {
	assert.Equal(t, map[string]string{"@/": ""}, DefaultAliases("nextjs"))
	assert.Equal(t, map[string]string{"@/": "src/"}, DefaultAliases("vue"))
	assert.Nil(t, DefaultAliases("svelte"))
}

func TestTSConfigAliases(t *testing.T) {
	data := []byte(`{
  // comments are fine
  "compilerOptions": {
    "baseUrl": ".",
    "paths": {
      "@/*": ["./src/*"],
      "#root/*": ["./*"],
      "exact": ["./src/exact.ts"],
    },
  },
}`)
	aliases, err := TSConfigAliases(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"@/": "src/", "#root/": ""}, aliases)

	empty, err := TSConfigAliases([]byte(`{"compilerOptions": {}}`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
