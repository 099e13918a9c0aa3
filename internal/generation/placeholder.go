package generation

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/frontgen/internal/validation"
)

// Placeholder returns deterministic skeleton source for ctx["framework"]
// (defaulting to fallbackFramework) and ctx["component_name"]. The result is
// never empty. author names the producer in the header comment.
func Placeholder(author, fallbackFramework string, ctx map[string]any) string {
	framework, _ := ctx["framework"].(string)
	if framework == "" {
		framework = fallbackFramework
	}
	framework = strings.ToLower(framework)

	raw, _ := ctx["component_name"].(string)
	name := validation.SanitizeComponentName(raw)
	if author == "" {
		author = "frontgen"
	}

	switch framework {
	case "nextjs", "react":
		return fmt.Sprintf(reactPlaceholder, author, name)
	case "vue":
		return fmt.Sprintf(vuePlaceholder, author, name)
	default:
		if framework == "" {
			framework = "unknown framework"
		}
		return fmt.Sprintf("// Generated by frontgen - %s\n// Skeleton for %s: %s\nexport {}\n", author, framework, name)
	}
}

const reactPlaceholder = `// Generated by frontgen - %[1]s
import React from 'react'

interface %[2]sProps {
  className?: string
}

const %[2]s: React.FC<%[2]sProps> = ({ className }) => {
  return (
    <div className={className}>
      <h1>%[2]s</h1>
    </div>
  )
}

export default %[2]s
`

const vuePlaceholder = `<!-- Generated by frontgen - %[1]s -->
<template>
  <div class="%[2]s">
    <h1>%[2]s</h1>
  </div>
</template>

<script setup lang="ts">
defineOptions({ name: '%[2]s' })
</script>

<style scoped>
</style>
`
